package web

import (
	"net/http"

	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/JonMunkholm/quimbayaeval/internal/web/templates"
)

var auditActions = []core.AuditAction{
	core.ActionLogin,
	core.ActionUserBlock,
	core.ActionUserUnblock,
	core.ActionUserDelete,
	core.ActionEvaluationCreate,
	core.ActionTicketCreate,
	core.ActionSubmissionGrade,
}

func auditFilter(r *http.Request) core.AuditLogFilter {
	return core.AuditLogFilter{
		Action: core.AuditAction(formValue(r, "accion")),
		Entity: formValue(r, "entidad"),
	}
}

// handleAuditLog lists recorded actions, newest first.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	t := mount(pageSession(r), tableDef[core.AuditEntry]{
		name:     "auditoria",
		key:      auditKey,
		columns:  auditColumns(),
		rows:     func(r *http.Request) []core.AuditEntry { return s.service.AuditLog(auditFilter(r)) },
		empty:    "No hay acciones registradas",
		icon:     "shield",
		pageSize: s.cfg.Table.PageSize,
		filters:  true,
	})

	entities := templates.StringOptions("Todas las entidades", []string{"session", "user", "evaluation", "ticket", "submission"})

	s.renderPage(w, r, templates.Page{
		Title:  "Auditoría",
		Crumbs: []templates.Crumb{{Label: "Dashboard", Href: "/dashboard"}, {Label: "Auditoría"}},
		Body: templates.Stack(
			templates.Header("Registro de Auditoría", "Acciones realizadas en el sistema", templates.ButtonLink(exportHref("auditoria", r), "Exportar CSV", "download")),
			templates.Filters(templates.FilterBar{
				ID:     filtersID("auditoria"),
				Action: pageURL("auditoria", 1),
				Target: tableID("auditoria"),
				Selects: []templates.Select{
					{Name: "accion", Label: "Acción", Options: templates.StringOptions("Todas las acciones", auditActions), Selected: formValue(r, "accion")},
					{Name: "entidad", Label: "Entidad", Options: entities, Selected: formValue(r, "entidad")},
				},
			}),
			t.fragment(r, 1),
		),
	})
}
