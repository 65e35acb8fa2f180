package templates

import (
	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/a-h/templ"
)

// Toast is a transient notification. It is sent to HTMX clients in the
// HX-Trigger header and to full page loads as a flash.
type Toast struct {
	Kind    string `json:"kind"` // success, error, info
	Title   string `json:"title"`
	Message string `json:"message,omitempty"`
}

// NavItem is one sidebar link.
type NavItem struct {
	Label string
	Href  string
	Icon  string
}

// Crumb is one breadcrumb; the last crumb has no Href.
type Crumb struct {
	Label string
	Href  string
}

// Page is everything the layout needs around a page body.
type Page struct {
	Title  string
	User   core.User
	Active string
	Crumbs []Crumb
	Toasts []Toast
	Body   templ.Component
}

// NavFor returns the sidebar links for role.
func NavFor(role core.Role) []NavItem {
	switch role {
	case core.RoleTeacher:
		return []NavItem{
			{Label: "Dashboard", Href: "/dashboard", Icon: "home"},
			{Label: "Evaluaciones", Href: "/evaluaciones", Icon: "file-text"},
			{Label: "Calificar", Href: "/calificar", Icon: "clipboard-list"},
			{Label: "Reportes", Href: "/reportes", Icon: "bar-chart"},
			{Label: "PQRS", Href: "/pqrs", Icon: "message-square"},
		}
	case core.RoleStudent:
		return []NavItem{
			{Label: "Dashboard", Href: "/dashboard", Icon: "home"},
			{Label: "Mis Cursos", Href: "/mis-cursos", Icon: "book-open"},
			{Label: "Mis Evaluaciones", Href: "/mis-evaluaciones", Icon: "file-text"},
			{Label: "Historial", Href: "/historial", Icon: "clipboard-list"},
			{Label: "PQRS", Href: "/pqrs", Icon: "message-square"},
		}
	case core.RoleCoordinator:
		return []NavItem{
			{Label: "Dashboard", Href: "/dashboard", Icon: "home"},
			{Label: "Reportes", Href: "/reportes", Icon: "bar-chart"},
			{Label: "Usuarios", Href: "/usuarios", Icon: "users"},
			{Label: "Auditoría", Href: "/auditoria", Icon: "shield"},
			{Label: "PQRS", Href: "/pqrs", Icon: "message-square"},
		}
	}
	return nil
}

func head(hw *htmlWriter, title string) {
	hw.raw(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8">`)
	hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	hw.printf(`<title>%s · QuimbayaEVAL</title>`, esc(title))
	hw.raw(`<link rel="stylesheet" href="/static/app.css">`)
	hw.raw(`<script src="https://unpkg.com/htmx.org@2.0.4" defer></script>`)
	hw.raw(`<script src="/static/app.js" defer></script>`)
	hw.raw(`</head>`)
}

func toastRegion(hw *htmlWriter, toasts []Toast) {
	hw.raw(`<div id="toasts" class="toasts" aria-live="polite">`)
	for _, t := range toasts {
		hw.render(ToastItem(t))
	}
	hw.raw(`</div>`)
}

// ToastItem renders one toast; app.js removes it after a few seconds.
func ToastItem(t Toast) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.printf(`<div class="toast toast-%s" role="status"><strong>%s</strong>`, esc(t.Kind), esc(t.Title))
		if t.Message != "" {
			hw.printf(`<p>%s</p>`, esc(t.Message))
		}
		hw.raw(`</div>`)
	})
}

// Layout renders a signed-in page with header, sidebar and breadcrumbs.
func Layout(p Page) templ.Component {
	return component(func(hw *htmlWriter) {
		head(hw, p.Title)
		hw.raw(`<body class="app">`)

		hw.raw(`<header class="topbar"><div class="brand"><span class="brand-logo" role="img" aria-label="Logo QuimbayaEVAL">`)
		hw.render(Icon("book-open"))
		hw.raw(`</span><h1>QuimbayaEVAL</h1></div>`)
		hw.printf(`<div class="user"><span class="avatar">%s</span><div><p>%s</p><p class="text-muted">%s</p></div>`,
			esc(p.User.Initial()), esc(p.User.Name), esc(p.User.Role.DisplayName()))
		hw.raw(`<form method="post" action="/logout"><button type="submit" class="btn btn-ghost" aria-label="Cerrar sesión">`)
		hw.render(Icon("log-out"))
		hw.raw(`</button></form></div></header>`)

		hw.raw(`<div class="shell"><aside class="sidebar"><nav aria-label="Navegación principal">`)
		for _, item := range NavFor(p.User.Role) {
			if item.Href == p.Active {
				hw.printf(`<a href="%s" class="nav-item active" aria-current="page">`, esc(item.Href))
			} else {
				hw.printf(`<a href="%s" class="nav-item">`, esc(item.Href))
			}
			hw.render(Icon(item.Icon))
			hw.printf(`<span>%s</span></a>`, esc(item.Label))
		}
		hw.raw(`</nav></aside><main class="content">`)

		if len(p.Crumbs) > 0 {
			hw.raw(`<nav class="crumbs" aria-label="Breadcrumb"><ol>`)
			for _, c := range p.Crumbs {
				if c.Href == "" {
					hw.printf(`<li aria-current="page">%s</li>`, esc(c.Label))
				} else {
					hw.printf(`<li><a href="%s">%s</a></li>`, esc(c.Href), esc(c.Label))
				}
			}
			hw.raw(`</ol></nav>`)
		}

		hw.render(p.Body)
		hw.raw(`</main></div>`)
		toastRegion(hw, p.Toasts)
		hw.raw(`</body></html>`)
	})
}

// Header renders a page title with an optional subtitle and action slot.
func Header(title, subtitle string, actions templ.Component) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.printf(`<div class="page-header"><div><h2>%s</h2>`, esc(title))
		if subtitle != "" {
			hw.printf(`<p class="text-muted">%s</p>`, esc(subtitle))
		}
		hw.raw(`</div>`)
		if actions != nil {
			hw.raw(`<div class="page-actions">`)
			hw.render(actions)
			hw.raw(`</div>`)
		}
		hw.raw(`</div>`)
	})
}
