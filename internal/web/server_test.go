package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/quimbayaeval/internal/config"
	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/JonMunkholm/quimbayaeval/internal/datatable"
	"github.com/google/go-cmp/cmp"
)

var testNow = time.Date(2025, 10, 17, 9, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{RequestTimeout: 5 * time.Second},
		Session: config.SessionConfig{
			CookieName:    "qe_test",
			TTL:           time.Hour,
			SweepInterval: time.Minute,
		},
		Table:    config.TableConfig{PageSize: 2},
		Rate:     config.RateLimitConfig{RequestsPerMinute: 100, LoginLimit: 10},
		Security: config.SecurityConfig{EnableCSP: true},
	}
}

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *Server {
	t.Helper()
	cfg := testConfig()
	for _, m := range mutate {
		m(cfg)
	}
	svc := core.NewService(core.WithClock(func() time.Time { return testNow }))
	return NewServer(cfg, svc)
}

type request struct {
	method string
	path   string
	form   url.Values
	htmx   bool
	cookie *http.Cookie
	header map[string]string
}

func (s *Server) do(t *testing.T, req request) *httptest.ResponseRecorder {
	t.Helper()
	method := req.method
	if method == "" {
		method = http.MethodGet
	}

	var r *http.Request
	if req.form != nil && method != http.MethodGet {
		r = httptest.NewRequest(method, req.path, strings.NewReader(req.form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		r = httptest.NewRequest(method, req.path, nil)
	}
	if req.htmx {
		r.Header.Set("HX-Request", "true")
	}
	if req.cookie != nil {
		r.AddCookie(req.cookie)
	}
	for k, v := range req.header {
		r.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, r)
	return rec
}

// login signs in as role and returns the session cookie.
func login(t *testing.T, s *Server, role core.Role) *http.Cookie {
	t.Helper()
	rec := s.do(t, request{
		method: http.MethodPost,
		path:   "/login",
		form:   url.Values{"role": {string(role)}},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login as %s: status = %d, want %d", role, rec.Code, http.StatusSeeOther)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == s.cfg.Session.CookieName {
			return c
		}
	}
	t.Fatalf("login as %s: no session cookie", role)
	return nil
}

func sessionOf(t *testing.T, s *Server, c *http.Cookie) *session {
	t.Helper()
	ss, ok := s.sessions.get(c.Value)
	if !ok {
		t.Fatalf("session %s not found", c.Value)
	}
	return ss
}

// rowKeys returns the data-key attributes of a rendered table in order.
func rowKeys(body string) []string {
	var keys []string
	for _, part := range strings.Split(body, `data-key="`)[1:] {
		key, _, _ := strings.Cut(part, `"`)
		keys = append(keys, key)
	}
	return keys
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	c := login(t, s, core.RoleCoordinator)
	ss := sessionOf(t, s, c)
	if ss.User.Role != core.RoleCoordinator {
		t.Errorf("session role = %s, want %s", ss.User.Role, core.RoleCoordinator)
	}
	if len(ss.flash) != 1 {
		t.Errorf("flash = %d toasts, want 1", len(ss.flash))
	}

	rec := s.do(t, request{path: "/", cookie: c})
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/dashboard" {
		t.Errorf("GET / signed in: %d %q, want redirect to /dashboard", rec.Code, rec.Header().Get("Location"))
	}

	rec = s.do(t, request{path: "/dashboard", cookie: c})
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /dashboard: status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Bienvenido") {
		t.Error("dashboard does not show the welcome flash")
	}
	if len(ss.takeFlash()) != 0 {
		t.Error("flash not drained by page render")
	}
}

func TestLogin_Invalid(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		form url.Values
	}{
		{"missing role", url.Values{}},
		{"unknown role", url.Values{"role": {"rector"}}},
		{"bad email", url.Values{"role": {"maestro"}, "email": {"no-es-correo"}}},
		{"short password", url.Values{"role": {"maestro"}, "password": {"123"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, request{method: http.MethodPost, path: "/login", form: tt.form})
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
			}
			if !strings.Contains(rec.Body.String(), `aria-invalid="true"`) {
				t.Error("form re-rendered without field errors")
			}
		})
	}
}

func TestLogout(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s, core.RoleStudent)

	rec := s.do(t, request{method: http.MethodPost, path: "/logout", cookie: c})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("logout: status = %d", rec.Code)
	}
	if _, ok := s.sessions.get(c.Value); ok {
		t.Error("session survived logout")
	}

	rec = s.do(t, request{path: "/dashboard", cookie: c})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("dashboard after logout: status = %d, want 401", rec.Code)
	}
}

func TestRoleGate(t *testing.T) {
	s := newTestServer(t)
	cookies := map[core.Role]*http.Cookie{}
	for _, role := range core.AllRoles {
		cookies[role] = login(t, s, role)
	}

	tests := []struct {
		path string
		role core.Role // empty for anonymous
		want int
	}{
		{"/dashboard", "", http.StatusUnauthorized},
		{"/dashboard", core.RoleStudent, http.StatusOK},
		{"/dashboard", core.RoleTeacher, http.StatusOK},
		{"/dashboard", core.RoleCoordinator, http.StatusOK},
		{"/mis-cursos", core.RoleStudent, http.StatusOK},
		{"/mis-cursos", core.RoleTeacher, http.StatusForbidden},
		{"/historial", core.RoleStudent, http.StatusOK},
		{"/historial/1", core.RoleStudent, http.StatusOK},
		{"/historial/99", core.RoleStudent, http.StatusNotFound},
		{"/evaluaciones", core.RoleTeacher, http.StatusOK},
		{"/evaluaciones", core.RoleCoordinator, http.StatusOK},
		{"/evaluaciones", core.RoleStudent, http.StatusForbidden},
		{"/evaluaciones/1", core.RoleTeacher, http.StatusOK},
		{"/evaluaciones/nueva", core.RoleTeacher, http.StatusOK},
		{"/evaluaciones/nueva", core.RoleCoordinator, http.StatusForbidden},
		{"/calificar", core.RoleTeacher, http.StatusOK},
		{"/calificar?evaluacion=1&entrega=3", core.RoleTeacher, http.StatusOK},
		{"/reportes", core.RoleCoordinator, http.StatusOK},
		{"/usuarios", core.RoleCoordinator, http.StatusOK},
		{"/usuarios", core.RoleStudent, http.StatusForbidden},
		{"/usuarios", "", http.StatusUnauthorized},
		{"/auditoria", core.RoleCoordinator, http.StatusOK},
		{"/auditoria", core.RoleTeacher, http.StatusForbidden},
		{"/pqrs", core.RoleStudent, http.StatusOK},
		{"/pqrs/2", core.RoleTeacher, http.StatusOK},
		{"/pqrs/abc", core.RoleTeacher, http.StatusBadRequest},
	}
	for _, tt := range tests {
		name := string(tt.role)
		if name == "" {
			name = "anonymous"
		}
		t.Run(tt.path+"/"+name, func(t *testing.T) {
			rec := s.do(t, request{path: tt.path, cookie: cookies[tt.role]})
			if rec.Code != tt.want {
				t.Errorf("GET %s as %s: status = %d, want %d", tt.path, name, rec.Code, tt.want)
			}
		})
	}
}

func TestRoleGate_HTMXErrorToast(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s, core.RoleStudent)

	rec := s.do(t, request{path: "/usuarios", cookie: c, htmx: true})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	trigger := rec.Header().Get("HX-Trigger")
	if !strings.Contains(trigger, "showToast") || !strings.Contains(trigger, `"kind":"error"`) {
		t.Errorf("HX-Trigger = %q, want an error toast", trigger)
	}
}

func usersTable(t *testing.T, ss *session) *mountedTable[core.User] {
	t.Helper()
	h, ok := ss.table("usuarios")
	if !ok {
		t.Fatal("usuarios table not mounted")
	}
	mt, ok := h.(*mountedTable[core.User])
	if !ok {
		t.Fatalf("usuarios table is %T", h)
	}
	return mt
}

func TestTableSort_Cycle(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s, core.RoleCoordinator)
	if rec := s.do(t, request{path: "/usuarios", cookie: c}); rec.Code != http.StatusOK {
		t.Fatalf("GET /usuarios: status = %d", rec.Code)
	}
	mt := usersTable(t, sessionOf(t, s, c))

	steps := []struct {
		dir      datatable.Direction
		ariaSort string
		keys     []string
	}{
		{datatable.DirAsc, "ascending", []string{"2", "3"}},
		{datatable.DirDesc, "descending", []string{"5", "4"}},
		{datatable.DirNone, "none", []string{"1", "2"}},
	}
	for _, step := range steps {
		rec := s.do(t, request{method: http.MethodPost, path: "/tables/usuarios/sort/nombre", cookie: c, htmx: true})
		if rec.Code != http.StatusOK {
			t.Fatalf("sort: status = %d", rec.Code)
		}
		body := rec.Body.String()

		if got := mt.table.State().Direction(); got != step.dir {
			t.Errorf("direction = %v, want %v", got, step.dir)
		}
		if !strings.Contains(body, `aria-sort="`+step.ariaSort+`"`) {
			t.Errorf("%v: header missing aria-sort=%q", step.dir, step.ariaSort)
		}
		if diff := cmp.Diff(step.keys, rowKeys(body)); diff != "" {
			t.Errorf("%v: row keys mismatch (-want +got):\n%s", step.dir, diff)
		}
	}
}

func TestTableSort_SwitchColumnAndIgnoreUnknown(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s, core.RoleCoordinator)
	s.do(t, request{path: "/usuarios", cookie: c})
	mt := usersTable(t, sessionOf(t, s, c))

	s.do(t, request{method: http.MethodPost, path: "/tables/usuarios/sort/nombre", cookie: c, htmx: true})
	s.do(t, request{method: http.MethodPost, path: "/tables/usuarios/sort/nombre", cookie: c, htmx: true})
	s.do(t, request{method: http.MethodPost, path: "/tables/usuarios/sort/email", cookie: c, htmx: true})

	want := datatable.NewSortState("email", datatable.DirAsc)
	if got := mt.table.State(); got != want {
		t.Errorf("state = %v/%v, want email/asc", got.Column(), got.Direction())
	}

	for _, col := range []string{"acciones", "inexistente"} {
		rec := s.do(t, request{method: http.MethodPost, path: "/tables/usuarios/sort/" + col, cookie: c, htmx: true})
		if rec.Code != http.StatusOK {
			t.Errorf("sort %s: status = %d", col, rec.Code)
		}
		if got := mt.table.State(); got != want {
			t.Errorf("sort %s changed state to %v/%v", col, got.Column(), got.Direction())
		}
	}
}

func TestTableSort_ResetOnPageLoad(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s, core.RoleCoordinator)
	s.do(t, request{path: "/usuarios", cookie: c})
	s.do(t, request{method: http.MethodPost, path: "/tables/usuarios/sort/nombre", cookie: c, htmx: true})

	s.do(t, request{path: "/usuarios", cookie: c})
	if usersTable(t, sessionOf(t, s, c)).table.State().Active() {
		t.Error("full page load kept the previous sort")
	}
}

func TestTablePage_KeepsSort(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s, core.RoleCoordinator)
	s.do(t, request{path: "/usuarios", cookie: c})

	rec := s.do(t, request{path: "/tables/usuarios/page/2", cookie: c, htmx: true})
	if diff := cmp.Diff([]string{"3", "4"}, rowKeys(rec.Body.String())); diff != "" {
		t.Errorf("unsorted page 2 (-want +got):\n%s", diff)
	}

	s.do(t, request{method: http.MethodPost, path: "/tables/usuarios/sort/nombre", cookie: c, htmx: true})
	rec = s.do(t, request{path: "/tables/usuarios/page/3", cookie: c, htmx: true})
	if diff := cmp.Diff([]string{"5"}, rowKeys(rec.Body.String())); diff != "" {
		t.Errorf("sorted page 3 (-want +got):\n%s", diff)
	}
	if !strings.Contains(rec.Body.String(), "Página 3 de 3") {
		t.Error("pager does not show page 3 of 3")
	}
}

func TestTablePage_Filters(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s, core.RoleCoordinator)
	s.do(t, request{path: "/usuarios", cookie: c})

	rec := s.do(t, request{path: "/tables/usuarios/page/1?rol=maestro", cookie: c, htmx: true})
	if diff := cmp.Diff([]string{"1", "4"}, rowKeys(rec.Body.String())); diff != "" {
		t.Errorf("teachers (-want +got):\n%s", diff)
	}

	rec = s.do(t, request{path: "/tables/usuarios/page/1?q=zzz", cookie: c, htmx: true})
	if !strings.Contains(rec.Body.String(), "No se encontraron usuarios") {
		t.Error("empty result does not show the empty message")
	}
}

func TestTable_NotMounted(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s, core.RoleCoordinator)

	rec := s.do(t, request{method: http.MethodPost, path: "/tables/usuarios/sort/nombre", cookie: c, htmx: true})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	rec = s.do(t, request{method: http.MethodPost, path: "/tables/usuarios/sort/nombre", htmx: true})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want 401", rec.Code)
	}
}

func TestTableRow_Redirect(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s, core.RoleStudent)
	s.do(t, request{path: "/pqrs", cookie: c})

	rec := s.do(t, request{method: http.MethodPost, path: "/tables/pqrs/rows/2", cookie: c, htmx: true})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("HX-Redirect"); got != "/pqrs/2" {
		t.Errorf("HX-Redirect = %q, want /pqrs/2", got)
	}

	rec = s.do(t, request{method: http.MethodPost, path: "/tables/pqrs/rows/99", cookie: c, htmx: true})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown row: status = %d, want 404", rec.Code)
	}
}

func TestTableRow_NotClickable(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s, core.RoleCoordinator)
	rec := s.do(t, request{path: "/usuarios", cookie: c})
	if strings.Contains(rec.Body.String(), "/tables/usuarios/rows/") {
		t.Error("rows of a table without a click handler are clickable")
	}

	rec = s.do(t, request{method: http.MethodPost, path: "/tables/usuarios/rows/1", cookie: c, htmx: true})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestTableExport(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s, core.RoleCoordinator)
	s.do(t, request{path: "/usuarios", cookie: c})
	s.do(t, request{method: http.MethodPost, path: "/tables/usuarios/sort/nombre", cookie: c, htmx: true})

	rec := s.do(t, request{path: "/tables/usuarios/export?estado=Activo", cookie: c})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "usuarios_20251017_090000.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if got, want := lines[0], "Usuario,Correo,Rol,Estado,Último Acceso,Acciones"; got != want {
		t.Errorf("header = %q, want %q", got, want)
	}
	// Four active users, all pages, sorted by name.
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	if !strings.HasPrefix(lines[1], "Ana López,") {
		t.Errorf("first row = %q, want Ana López first", lines[1])
	}
}

func TestTableExport_Busy(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) {
		c.Table.MaxConcurrentExports = 1
		c.Table.ExportWait = 10 * time.Millisecond
	})
	c := login(t, s, core.RoleCoordinator)
	s.do(t, request{path: "/usuarios", cookie: c})

	if !s.exports.TryAcquire() {
		t.Fatal("no free export slot")
	}
	rec := s.do(t, request{path: "/tables/usuarios/export", cookie: c, header: map[string]string{"Accept": "application/json"}})
	s.exports.Release()

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "5" {
		t.Errorf("Retry-After = %q", got)
	}

	rec = s.do(t, request{path: "/tables/usuarios/export", cookie: c})
	if rec.Code != http.StatusOK {
		t.Errorf("status after release = %d", rec.Code)
	}
	if got := s.exports.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount = %d, slot leaked", got)
	}
}

func TestBlockUser_HTMX(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s, core.RoleCoordinator)
	s.do(t, request{path: "/usuarios", cookie: c})

	rec := s.do(t, request{method: http.MethodPost, path: "/usuarios/2/bloquear", cookie: c, htmx: true})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "Usuario bloqueado") {
		t.Errorf("HX-Trigger = %q", rec.Header().Get("HX-Trigger"))
	}
	if !strings.Contains(rec.Body.String(), `id="table-usuarios"`) {
		t.Error("response is not the refreshed table")
	}
	u, err := s.service.UserByID(2)
	if err != nil {
		t.Fatal(err)
	}
	if u.Status != core.UserBlocked {
		t.Errorf("status = %s, want %s", u.Status, core.UserBlocked)
	}

	rec = s.do(t, request{method: http.MethodDelete, path: "/usuarios/99", cookie: c, htmx: true})
	if rec.Code != http.StatusNotFound {
		t.Errorf("delete unknown: status = %d, want 404", rec.Code)
	}
}

func TestDeleteUser_Redirect(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s, core.RoleCoordinator)

	rec := s.do(t, request{method: http.MethodDelete, path: "/usuarios/4", cookie: c})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/usuarios" {
		t.Errorf("got %d %q, want redirect to /usuarios", rec.Code, rec.Header().Get("Location"))
	}
	if _, err := s.service.UserByID(4); err == nil {
		t.Error("user 4 still exists")
	}
}

func TestCreateTicket(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s, core.RoleStudent)
	s.do(t, request{path: "/pqrs", cookie: c})

	rec := s.do(t, request{method: http.MethodPost, path: "/pqrs", cookie: c, htmx: true, form: url.Values{
		"tipo":        {"Pregunta"},
		"asunto":      {"Horario de tutorías"},
		"descripcion": {"¿Cuándo son las tutorías de cálculo?"},
	}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `hx-swap-oob="true"`) || !strings.Contains(body, `data-key="4"`) {
		t.Error("response does not refresh the list with the new ticket")
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "Radicado #4") {
		t.Errorf("HX-Trigger = %q", rec.Header().Get("HX-Trigger"))
	}

	rec = s.do(t, request{method: http.MethodPost, path: "/pqrs", cookie: c, htmx: true, form: url.Values{"tipo": {"Pregunta"}}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("invalid ticket: status = %d, want 422", rec.Code)
	}
}

func TestGradeSubmission(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s, core.RoleTeacher)
	s.do(t, request{path: "/calificar", cookie: c})

	tests := []struct {
		name  string
		score string
		want  int
	}{
		{"not a number", "cuatro", http.StatusUnprocessableEntity},
		{"out of range", "7", http.StatusUnprocessableEntity},
		{"valid", "4.5", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, request{method: http.MethodPost, path: "/calificar/1", cookie: c, htmx: true, form: url.Values{
				"calificacion": {tt.score},
				"comentario":   {"Buen trabajo"},
				"evaluacion":   {"1"},
			}})
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}

	sub, err := s.service.SubmissionByID(1)
	if err != nil {
		t.Fatal(err)
	}
	if sub.Status != core.SubmissionGraded || sub.Score == nil || *sub.Score != 4.5 {
		t.Errorf("submission = %+v, want graded 4.5", sub)
	}

	rec := s.do(t, request{method: http.MethodPost, path: "/calificar/99", cookie: c, htmx: true, form: url.Values{"calificacion": {"3"}}})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown submission: status = %d, want 404", rec.Code)
	}
}

func TestCreateEvaluation(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s, core.RoleTeacher)

	rec := s.do(t, request{method: http.MethodPost, path: "/evaluaciones", cookie: c, htmx: true, form: url.Values{
		"nombre":   {"Quiz 4 - Integrales"},
		"curso":    {"MAT-301"},
		"tipo":     {"Quiz"},
		"deadline": {"2025-10-30T23:59"},
		"duracion": {"30"},
		"intentos": {"1"},
	}})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("HX-Redirect"); got != "/evaluaciones/6" {
		t.Errorf("HX-Redirect = %q, want /evaluaciones/6", got)
	}

	rec = s.do(t, request{method: http.MethodPost, path: "/evaluaciones", cookie: c, htmx: true, form: url.Values{
		"nombre":   {"Sin fecha"},
		"deadline": {"mañana"},
	}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("invalid form: status = %d, want 422", rec.Code)
	}
}

func decodePage(t *testing.T, rec *httptest.ResponseRecorder) APIPage {
	t.Helper()
	var page APIPage
	if err := json.NewDecoder(rec.Body).Decode(&page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return page
}

func TestAPIList(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s, core.RoleCoordinator)

	rec := s.do(t, request{path: "/api/users?sort=nombre&dir=desc&pageSize=3", cookie: c})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	page := decodePage(t, rec)
	if page.Resource != "users" || page.Sort != "nombre" || page.Dir != "desc" {
		t.Errorf("page = %s/%s/%s", page.Resource, page.Sort, page.Dir)
	}
	if page.TotalRows != 5 || page.TotalPages != 2 || page.PageSize != 3 {
		t.Errorf("pagination = %d rows, %d pages, size %d", page.TotalRows, page.TotalPages, page.PageSize)
	}
	var names []any
	for _, rec := range page.Data {
		names = append(names, rec["nombre"])
	}
	if diff := cmp.Diff([]any{"Pedro Ruiz", "María Torres", "Juan García"}, names); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	if _, ok := page.Data[0]["acciones"]; ok {
		t.Error("render-only column exported as data")
	}
}

func TestAPIList_Errors(t *testing.T) {
	s := newTestServer(t)
	student := login(t, s, core.RoleStudent)
	coordinator := login(t, s, core.RoleCoordinator)

	tests := []struct {
		name   string
		path   string
		cookie *http.Cookie
		want   int
	}{
		{"anonymous", "/api/users", nil, http.StatusUnauthorized},
		{"wrong role", "/api/users", student, http.StatusForbidden},
		{"open resource", "/api/tickets", student, http.StatusOK},
		{"unknown resource", "/api/notas", coordinator, http.StatusNotFound},
		{"unknown sort column", "/api/users?sort=salario", coordinator, http.StatusBadRequest},
		{"render-only sort column", "/api/users?sort=acciones", coordinator, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, request{path: tt.path, cookie: tt.cookie})
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Errorf("Content-Type = %q, want JSON", ct)
			}
		})
	}
}

func TestAPIList_APIKey(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Security.RequireAPIKey = true
		cfg.Security.APIKeys = []string{"clave-uno", "clave-dos"}
	})

	tests := []struct {
		name   string
		header map[string]string
		want   int
	}{
		{"missing key", nil, http.StatusUnauthorized},
		{"wrong key", map[string]string{"X-API-Key": "otra"}, http.StatusForbidden},
		{"header key", map[string]string{"X-API-Key": "clave-dos"}, http.StatusOK},
		{"bearer token", map[string]string{"Authorization": "Bearer clave-uno"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, request{path: "/api/audit", header: tt.header})
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Rate.Enabled = true
		cfg.Rate.RequestsPerMinute = 2
	})

	for i := 0; i < 2; i++ {
		if rec := s.do(t, request{path: "/healthz"}); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, rec.Code)
		}
	}
	rec := s.do(t, request{path: "/healthz", header: map[string]string{"Accept": "application/json"}})
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After = %q, want 60", got)
	}
	var body ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Code != "RATE001" {
		t.Errorf("code = %q, want RATE001", body.Code)
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	now := testNow
	rl := newRateLimiter(1, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.allow("192.0.2.1") {
		t.Fatal("first request denied")
	}
	if rl.allow("192.0.2.1") {
		t.Error("second request in window allowed")
	}
	if !rl.allow("192.0.2.2") {
		t.Error("other client denied")
	}
	now = now.Add(61 * time.Second)
	if !rl.allow("192.0.2.1") {
		t.Error("request after window denied")
	}
}

func TestSessionStore_Expiry(t *testing.T) {
	now := testNow
	st := newSessionStore(time.Minute)
	st.now = func() time.Time { return now }

	a := st.create(core.User{Name: "a"})
	b := st.create(core.User{Name: "b"})

	now = now.Add(45 * time.Second)
	if _, ok := st.get(a.ID); !ok {
		t.Fatal("live session not found")
	}

	// a was extended by the get above; b was not.
	now = now.Add(30 * time.Second)
	if _, ok := st.get(b.ID); ok {
		t.Error("expired session returned")
	}
	if n := st.sweep(); n != 1 {
		t.Errorf("sweep removed %d, want 1", n)
	}
	if _, ok := st.get(a.ID); !ok {
		t.Error("extended session swept")
	}
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, request{path: "/healthz"})

	for _, h := range []string{"X-Content-Type-Options", "X-Frame-Options", "Referrer-Policy", "Content-Security-Policy"} {
		if rec.Header().Get(h) == "" {
			t.Errorf("missing %s", h)
		}
	}
}
