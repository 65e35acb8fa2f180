package templates

import (
	"fmt"
	"time"

	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/a-h/templ"
)

// StatCards renders the dashboard summary grid.
func StatCards(stats []core.Stat) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<div class="stats">`)
		for _, s := range stats {
			hw.printf(`<div class="card stat tone-%s">`, esc(s.Tone))
			hw.render(Icon(s.Icon))
			hw.printf(`<div><p class="text-muted">%s</p><p class="stat-value">%s</p></div></div>`, esc(s.Label), esc(s.Value))
		}
		hw.raw(`</div>`)
	})
}

// Section renders a titled card around body.
func Section(title, description string, body templ.Component) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.printf(`<section class="card"><div class="card-header"><h3>%s</h3>`, esc(title))
		if description != "" {
			hw.printf(`<p class="text-muted">%s</p>`, esc(description))
		}
		hw.raw(`</div><div class="card-body">`)
		hw.render(body)
		hw.raw(`</div></section>`)
	})
}

// Badge renders a pill with a variant: default, success, warning, info, danger.
func Badge(label, variant string) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.printf(`<span class="badge badge-%s">%s</span>`, esc(variant), esc(label))
	})
}

// StatusVariant maps evaluation, ticket, user and submission states to a
// badge variant.
func StatusVariant(status string) string {
	switch status {
	// Pending submissions share the ticket label.
	case string(core.EvalActive), string(core.TicketPending):
		return "warning"
	case string(core.EvalClosed), string(core.TicketResolved), string(core.UserActive), string(core.SubmissionGraded):
		return "success"
	case string(core.EvalScheduled), string(core.TicketInProgress):
		return "info"
	case string(core.UserBlocked):
		return "danger"
	}
	return "default"
}

// StatusBadge renders a status with its variant and icon.
func StatusBadge(status string) templ.Component {
	return component(func(hw *htmlWriter) {
		variant := StatusVariant(status)
		icon := "clock"
		switch variant {
		case "success":
			icon = "check-circle"
		case "info", "danger":
			icon = "alert-circle"
		}
		hw.printf(`<span class="badge badge-%s">`, variant)
		hw.render(Icon(icon))
		hw.printf(`%s</span>`, esc(status))
	})
}

// ProgressBar renders a 0-100 bar with its percentage.
func ProgressBar(percent int) templ.Component {
	return component(func(hw *htmlWriter) {
		p := max(0, min(percent, 100))
		hw.printf(`<div class="progress" role="progressbar" aria-valuenow="%d" aria-valuemin="0" aria-valuemax="100">`, p)
		hw.printf(`<div class="progress-fill" style="width: %d%%"></div></div><span class="text-muted">%d%%</span>`, p, p)
	})
}

// Grade renders score/max colored by how close it is to the maximum.
func Grade(score, maxScore float64) templ.Component {
	return component(func(hw *htmlWriter) {
		tone := "danger"
		if maxScore > 0 {
			switch pct := score / maxScore * 100; {
			case pct >= 80:
				tone = "success"
			case pct >= 60:
				tone = "warning"
			}
		}
		hw.printf(`<span class="grade grade-%s">%s</span>`, tone, esc(core.FormatGrade(score, maxScore)))
	})
}

// ErrorAlert renders an inline error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<div class="alert alert-error" role="alert">`)
		hw.render(Icon("alert-triangle"))
		hw.printf(`<div><p><strong>%s</strong></p>`, esc(message))
		if action != "" {
			hw.printf(`<p>%s</p>`, esc(action))
		}
		if code != "" {
			hw.printf(`<p class="text-muted">Código: %s</p>`, esc(code))
		}
		hw.raw(`</div></div>`)
	})
}

// AccessDenied is the body shown when a role may not open a page.
func AccessDenied(message string) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<div class="card access-denied">`)
		hw.render(Icon("shield"))
		hw.printf(`<h2>Acceso denegado</h2><p>%s</p>`, esc(message))
		hw.raw(`<a href="/dashboard" class="btn btn-primary">Volver al inicio</a></div>`)
	})
}

// Option is one choice in a select.
type Option struct {
	Value string
	Label string
}

// Select is a named dropdown in a filter bar.
type Select struct {
	Name     string
	Label    string
	Options  []Option
	Selected string
}

// FilterBar is a search box plus dropdowns. Changing any input reloads the
// table fragment at Target through the page endpoint.
type FilterBar struct {
	ID          string
	Action      string
	Target      string
	Search      string
	Placeholder string
	Selects     []Select
}

// Filters renders a FilterBar form.
func Filters(f FilterBar) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.printf(`<form id="%s" class="filters" hx-get="%s" hx-target="#%s" hx-swap="outerHTML" hx-trigger="input changed delay:300ms from:find input, change">`,
			esc(f.ID), esc(f.Action), esc(f.Target))
		if f.Placeholder != "" {
			hw.printf(`<input type="search" name="q" value="%s" placeholder="%s" aria-label="%s">`,
				esc(f.Search), esc(f.Placeholder), esc(f.Placeholder))
		}
		for _, s := range f.Selects {
			hw.printf(`<select name="%s" aria-label="%s">`, esc(s.Name), esc(s.Label))
			for _, o := range s.Options {
				selected := ""
				if o.Value == s.Selected {
					selected = " selected"
				}
				hw.printf(`<option value="%s"%s>%s</option>`, esc(o.Value), selected, esc(o.Label))
			}
			hw.raw(`</select>`)
		}
		hw.raw(`</form>`)
	})
}

// StringOptions builds options for a list of values preceded by an "all"
// choice with an empty value.
func StringOptions[S ~string](all string, values []S) []Option {
	opts := []Option{{Value: "", Label: all}}
	for _, v := range values {
		opts = append(opts, Option{Value: string(v), Label: string(v)})
	}
	return opts
}

// ButtonLink renders an anchor styled as a button.
func ButtonLink(href, label, icon string) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.printf(`<a href="%s" class="btn btn-primary">`, esc(href))
		if icon != "" {
			hw.render(Icon(icon))
		}
		hw.printf(`%s</a>`, esc(label))
	})
}

// UserActions renders the block/unblock and delete buttons of a user row.
// Buttons stop the click from reaching the row.
func UserActions(u core.User) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<div class="row-actions" onclick="event.stopPropagation()">`)
		if u.Status == core.UserBlocked {
			hw.printf(`<button type="button" class="btn btn-ghost" hx-post="/usuarios/%d/desbloquear" hx-target="#table-usuarios" hx-swap="outerHTML" hx-include="#filters-usuarios" aria-label="Desbloquear a %s">Desbloquear</button>`,
				u.ID, esc(u.Name))
		} else {
			hw.printf(`<button type="button" class="btn btn-ghost" hx-post="/usuarios/%d/bloquear" hx-target="#table-usuarios" hx-swap="outerHTML" hx-include="#filters-usuarios" aria-label="Bloquear a %s">Bloquear</button>`,
				u.ID, esc(u.Name))
		}
		hw.printf(`<button type="button" class="btn btn-danger" hx-delete="/usuarios/%d" hx-target="#table-usuarios" hx-swap="outerHTML" hx-include="#filters-usuarios" hx-confirm="%s" aria-label="Eliminar a %s">Eliminar</button>`,
			u.ID, esc(fmt.Sprintf("¿Eliminar a %s? Esta acción no se puede deshacer.", u.Name)), esc(u.Name))
		hw.raw(`</div>`)
	})
}

// UserCell renders the avatar and name of a user.
func UserCell(u core.User) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.printf(`<div class="user-cell"><span class="avatar">%s</span><span>%s</span></div>`, esc(u.Initial()), esc(u.Name))
	})
}

// DeadlineCell renders a deadline, flagged when it is near or past.
func DeadlineCell(deadline, now time.Time) templ.Component {
	return component(func(hw *htmlWriter) {
		class := "deadline"
		switch {
		case core.IsDatePast(deadline, now):
			class = "deadline text-muted"
		case core.IsDateNear(deadline, now, 3):
			class = "deadline text-warning"
		}
		hw.printf(`<span class="%s">%s</span>`, class, esc(core.FormatDateTime(deadline)))
	})
}
