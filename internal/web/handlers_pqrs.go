package web

import (
	"net/http"
	"strconv"

	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/JonMunkholm/quimbayaeval/internal/web/templates"
	"github.com/a-h/templ"
)

const ticketsRegion = "pqrs-region"

var ticketFields = []string{"tipo", "asunto", "descripcion", "curso"}

func ticketFilter(r *http.Request) core.TicketFilter {
	return core.TicketFilter{
		Status: core.TicketStatus(formValue(r, "estado")),
		Type:   core.TicketType(formValue(r, "tipo")),
		Search: formValue(r, "q"),
	}
}

// handleTickets shows the PQRS form next to the list of requests.
func (s *Server) handleTickets(w http.ResponseWriter, r *http.Request) {
	s.renderTickets(w, r, http.StatusOK, templates.FormState{})
}

func (s *Server) renderTickets(w http.ResponseWriter, r *http.Request, status int, f templates.FormState) {
	ss := pageSession(r)
	t := mount(ss, tableDef[core.Ticket]{
		name:     "pqrs",
		key:      ticketKey,
		columns:  ticketColumns(),
		rows:     func(r *http.Request) []core.Ticket { return s.service.Tickets(ticketFilter(r)) },
		onClick:  func(t core.Ticket) { ss.redirectTo("/pqrs/" + strconv.Itoa(t.ID)) },
		empty:    "No hay solicitudes registradas",
		icon:     "message-square",
		pageSize: s.cfg.Table.PageSize,
		filters:  true,
	})

	s.renderPageStatus(w, r, status, templates.Page{
		Title:  "PQRS",
		Active: "/pqrs",
		Crumbs: []templates.Crumb{{Label: "Dashboard", Href: "/dashboard"}, {Label: "PQRS"}},
		Body: templates.Stack(
			templates.Header("PQRS", "Preguntas, quejas, reclamos y sugerencias", nil),
			templates.Columns(
				templates.Section("Nueva solicitud", "Te responderemos lo antes posible", templates.TicketForm(f)),
				templates.Section("Mis solicitudes", "", templates.Stack(
					templates.Filters(templates.FilterBar{
						ID:          filtersID("pqrs"),
						Action:      pageURL("pqrs", 1),
						Target:      tableID("pqrs"),
						Search:      formValue(r, "q"),
						Placeholder: "Buscar solicitud",
						Selects: []templates.Select{
							{Name: "estado", Label: "Estado", Options: templates.StringOptions("Todos los estados", core.TicketStatuses), Selected: formValue(r, "estado")},
							{Name: "tipo", Label: "Tipo", Options: templates.StringOptions("Todos los tipos", core.TicketTypes)},
						},
					}),
					templates.Region(ticketsRegion, t.fragment(r, 1)),
				)),
			),
		),
	})
}

// handleCreateTicket files a PQRS request.
func (s *Server) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	f := formState(r, ticketFields...)
	ticket, err := s.service.CreateTicket(r.Context(), core.NewTicket{
		Type:        formValue(r, "tipo"),
		Subject:     formValue(r, "asunto"),
		Description: formValue(r, "descripcion"),
		Course:      formValue(r, "curso"),
	})
	if err != nil {
		state, ok := withErrors(f, err)
		if !ok {
			s.respondError(w, r, err, statusFor(err))
			return
		}
		if isHTMX(r) {
			s.renderStatus(w, r, http.StatusUnprocessableEntity, templates.TicketForm(state))
			return
		}
		s.renderTickets(w, r, http.StatusUnprocessableEntity, state)
		return
	}

	toast := success("Solicitud enviada", "Radicado #"+strconv.Itoa(ticket.ID))
	if !isHTMX(r) {
		flash(r, toast)
		redirect(w, r, "/pqrs")
		return
	}

	// The form's fields are posted in place of the list filters, so the
	// refreshed list is unfiltered.
	triggerToast(w, toast)
	parts := []templ.Component{templates.TicketForm(templates.FormState{})}
	if ss, ok := sessionFromContext(r.Context()); ok {
		if t, ok := ss.table("pqrs"); ok {
			r.Form.Del("tipo")
			parts = append(parts, templates.OutOfBand(ticketsRegion, t.fragment(r, 1)))
		}
	}
	s.render(w, r, templates.Stack(parts...))
}

// handleTicketDetail shows one request and its response.
func (s *Server) handleTicketDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	t, err := s.service.TicketByID(id)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	s.renderPage(w, r, templates.Page{
		Title:  t.Subject,
		Active: "/pqrs",
		Crumbs: []templates.Crumb{
			{Label: "Dashboard", Href: "/dashboard"},
			{Label: "PQRS", Href: "/pqrs"},
			{Label: "#" + strconv.Itoa(t.ID)},
		},
		Body: templates.Stack(
			templates.Header(t.Subject, string(t.Type), nil),
			templates.TicketDetail(t),
		),
	})
}
