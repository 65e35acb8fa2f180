package core

// validation.go checks form input before it reaches the service.
//
// Structs carry two tags: `form` is the input name used to key errors back
// to the form, `label` is the Spanish field name used in messages.

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

// custom validation tags
const (
	notBlankTag   = "notblank"
	roleTag       = "role"
	evalTypeTag   = "evaltype"
	ticketTypeTag = "tickettype"
)

func init() {
	validate = validator.New()

	_es := es.New()
	uni := ut.New(_es, _es)
	translator, _ = uni.GetTranslator("es")
	_ = es_translations.RegisterDefaultTranslations(validate, translator)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return fld.Name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = validate.RegisterValidation(roleTag, roleValidation)
	_ = validate.RegisterValidation(evalTypeTag, evalTypeValidation)
	_ = validate.RegisterValidation(ticketTypeTag, ticketTypeValidation)

	registerCustomTranslations(notBlankTag, roleTag, evalTypeTag, ticketTypeTag)
}

// registerCustomTranslations registers messages for the custom tags. The
// register func is a noop because the messages are built directly.
func registerCustomTranslations(tags ...string) {
	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range tags {
		_ = validate.RegisterTranslation(tag, translator, registerFn, translateCustomErrs)
	}
}

func translateCustomErrs(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return fmt.Sprintf("%s no puede estar vacío", fe.Field())
	case roleTag:
		return "Selecciona un rol válido"
	case evalTypeTag:
		return "Selecciona un tipo de evaluación válido"
	case ticketTypeTag:
		return "Selecciona un tipo de solicitud válido"
	default:
		return ""
	}
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func roleValidation(fl validator.FieldLevel) bool {
	r, ok := ParseRole(fl.Field().String())
	return ok && r.Valid()
}

func evalTypeValidation(fl validator.FieldLevel) bool {
	_, ok := ParseEvaluationType(fl.Field().String())
	return ok
}

func ticketTypeValidation(fl validator.FieldLevel) bool {
	_, ok := ParseTicketType(fl.Field().String())
	return ok
}

// FieldErrors maps form input names to translated messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e[k]
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e FieldErrors) Unwrap() error { return ErrInvalidInput }

// Validate checks v against its struct tags and returns FieldErrors on failure.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	t := reflect.Indirect(reflect.ValueOf(v)).Type()
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		key := fe.StructField()
		if f, ok := t.FieldByName(fe.StructField()); ok && f.Tag.Get("form") != "" {
			key = f.Tag.Get("form")
		}
		if _, seen := out[key]; !seen {
			out[key] = fe.Translate(translator)
		}
	}
	return out
}

// LoginForm is the sign-in form. Email and password are optional for the
// demo login but must be well formed when given.
type LoginForm struct {
	Email    string `form:"email" label:"correo electrónico" validate:"omitempty,email"`
	Password string `form:"password" label:"contraseña" validate:"omitempty,min=6"`
	Role     string `form:"role" label:"rol" validate:"required,role"`
}

// NewEvaluation is the create-evaluation form.
type NewEvaluation struct {
	Name            string    `form:"nombre" label:"nombre" validate:"required,notblank,max=120"`
	Course          string    `form:"curso" label:"curso" validate:"required,notblank"`
	Type            string    `form:"tipo" label:"tipo" validate:"required,evaltype"`
	Deadline        time.Time `form:"deadline" label:"fecha de cierre" validate:"required"`
	DurationMinutes int       `form:"duracion" label:"duración" validate:"gte=0,lte=600"`
	Attempts        int       `form:"intentos" label:"intentos" validate:"gte=0,lte=10"`
	Publish         bool      `form:"publicar"`
}

// NewTicket is the PQRS form.
type NewTicket struct {
	Type        string `form:"tipo" label:"tipo" validate:"required,tickettype"`
	Subject     string `form:"asunto" label:"asunto" validate:"required,notblank,max=150"`
	Description string `form:"descripcion" label:"descripción" validate:"required,notblank,max=2000"`
	Course      string `form:"curso" label:"curso" validate:"max=20"`
}

// GradeInput is the grading form for one submission.
type GradeInput struct {
	Score   float64 `form:"calificacion" label:"calificación" validate:"gte=0,lte=5"`
	Comment string  `form:"comentario" label:"comentario" validate:"max=1000"`
}

// AnswerInput is one autosaved exam response.
type AnswerInput struct {
	Response string `form:"respuesta" label:"respuesta" validate:"max=4000"`
}

// ParseEvaluationType matches an evaluation type name in any case.
func ParseEvaluationType(s string) (EvaluationType, bool) {
	i := slices.IndexFunc(EvaluationTypes, func(t EvaluationType) bool { return equalFold(string(t), s) })
	if i < 0 {
		return "", false
	}
	return EvaluationTypes[i], true
}

// ParseTicketType matches a ticket type name in any case.
func ParseTicketType(s string) (TicketType, bool) {
	i := slices.IndexFunc(TicketTypes, func(t TicketType) bool { return equalFold(string(t), s) })
	if i < 0 {
		return "", false
	}
	return TicketTypes[i], true
}
