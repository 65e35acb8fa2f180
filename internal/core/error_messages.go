package core

// User-facing error messages with codes for support reference.
//
//	AUTH001  session missing or expired       ErrUnauthenticated, "session expired"
//	AUTH002  role may not open this section   ErrForbidden, "forbidden"
//	NF001    record not found                 ErrNotFound, "not found"
//	VAL001   form has invalid fields          ErrInvalidInput, "invalid input"
//	VAL002   invalid date                     "invalid date"
//	VAL003   invalid number                   "invalid number"
//	RATE001  too many requests                "rate limit"
//	EXAM001  attempt already sent or expired  ErrAttemptClosed, "attempt closed"
//	EXAM002  evaluation not open to students  ErrEvaluationUnavailable, "evaluation not available"
//	SYS001   anything else
//
// Sentinel errors are matched with errors.Is first; plain errors fall back
// to case-insensitive substring patterns, first match wins.

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the service and the web layer.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("session expired")
	ErrForbidden       = errors.New("forbidden")

	ErrAttemptClosed         = errors.New("attempt closed")
	ErrEvaluationUnavailable = errors.New("evaluation not available")
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgUnauthenticated = UserMessage{
		Message: "Tu sesión ha expirado",
		Action:  "Por favor, inicia sesión nuevamente.",
		Code:    "AUTH001",
	}
	msgForbidden = UserMessage{
		Message: "No tienes permisos para acceder a esta sección",
		Action:  "Vuelve al dashboard o contacta al coordinador.",
		Code:    "AUTH002",
	}
	msgNotFound = UserMessage{
		Message: "El registro solicitado no existe",
		Action:  "Actualiza la página e intenta de nuevo.",
		Code:    "NF001",
	}
	msgInvalidInput = UserMessage{
		Message: "El formulario tiene campos inválidos",
		Action:  "Revisa los campos marcados e intenta de nuevo.",
		Code:    "VAL001",
	}
	msgAttemptClosed = UserMessage{
		Message: "Esta evaluación ya fue enviada o el tiempo terminó",
		Action:  "Revisa su estado en Mis Evaluaciones.",
		Code:    "EXAM001",
	}
	msgEvaluationUnavailable = UserMessage{
		Message: "Esta evaluación no está abierta",
		Action:  "Consulta las fechas en Mis Evaluaciones.",
		Code:    "EXAM002",
	}
	defaultMessage = UserMessage{
		Message: "Ocurrió un error inesperado",
		Action:  "Intenta de nuevo o contacta a soporte.",
		Code:    "SYS001",
	}
)

type sentinelMessage struct {
	err error
	msg UserMessage
}

var sentinelMessages = []sentinelMessage{
	{ErrUnauthenticated, msgUnauthenticated},
	{ErrForbidden, msgForbidden},
	{ErrNotFound, msgNotFound},
	{ErrInvalidInput, msgInvalidInput},
	{ErrAttemptClosed, msgAttemptClosed},
	{ErrEvaluationUnavailable, msgEvaluationUnavailable},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{pattern: "session expired", msg: msgUnauthenticated},
	{pattern: "forbidden", msg: msgForbidden},
	{pattern: "not found", msg: msgNotFound},
	{pattern: "attempt closed", msg: msgAttemptClosed},
	{pattern: "evaluation not available", msg: msgEvaluationUnavailable},
	{
		pattern: "invalid date",
		msg: UserMessage{
			Message: "La fecha no tiene un formato válido",
			Action:  "Usa el formato AAAA-MM-DD HH:MM.",
			Code:    "VAL002",
		},
	},
	{
		pattern: "invalid number",
		msg: UserMessage{
			Message: "El número no tiene un formato válido",
			Action:  "Usa solo dígitos y punto decimal.",
			Code:    "VAL003",
		},
	},
	{pattern: "invalid input", msg: msgInvalidInput},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Demasiadas solicitudes",
			Action:  "Espera un momento antes de intentar de nuevo.",
			Code:    "RATE001",
		},
	},
}

// MapError converts an error into a message safe to show to users.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.err) {
			return sm.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display:
// "Message (Código: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Código: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the generic fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
