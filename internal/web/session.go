package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/JonMunkholm/quimbayaeval/internal/core"
	"github.com/JonMunkholm/quimbayaeval/internal/logging"
	"github.com/JonMunkholm/quimbayaeval/internal/web/templates"
	"github.com/google/uuid"
)

// session is one signed-in browser. It owns the table instances mounted by
// the pages that browser has loaded.
type session struct {
	ID   string
	User core.User

	mu       sync.Mutex
	expires  time.Time
	tables   map[string]tableHandle
	flash    []templates.Toast
	redirect string
}

func (ss *session) mount(name string, t tableHandle) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.tables[name] = t
}

func (ss *session) table(name string) (tableHandle, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	t, ok := ss.tables[name]
	return t, ok
}

// addFlash queues a toast for the next full page render.
func (ss *session) addFlash(t templates.Toast) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.flash = append(ss.flash, t)
}

func (ss *session) takeFlash() []templates.Toast {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	f := ss.flash
	ss.flash = nil
	return f
}

// redirectTo records a navigation requested by a row activation.
func (ss *session) redirectTo(path string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.redirect = path
}

func (ss *session) takeRedirect() string {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	r := ss.redirect
	ss.redirect = ""
	return r
}

// sessionStore keeps sessions in memory keyed by a random id.
type sessionStore struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

func (st *sessionStore) create(u core.User) *session {
	ss := &session{
		ID:      uuid.NewString(),
		User:    u,
		expires: st.now().Add(st.ttl),
		tables:  make(map[string]tableHandle),
	}
	st.mu.Lock()
	st.sessions[ss.ID] = ss
	st.mu.Unlock()
	return ss
}

// get returns a live session and extends its expiry.
func (st *sessionStore) get(id string) (*session, bool) {
	st.mu.RLock()
	ss, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()
	now := st.now()
	if now.After(ss.expires) {
		return nil, false
	}
	ss.expires = now.Add(st.ttl)
	return ss, true
}

func (st *sessionStore) delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// sweep removes expired sessions and reports how many were removed.
func (st *sessionStore) sweep() int {
	now := st.now()
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, ss := range st.sessions {
		ss.mu.Lock()
		expired := now.After(ss.expires)
		ss.mu.Unlock()
		if expired {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// runSweeper sweeps every interval until ctx is cancelled.
func (st *sessionStore) runSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.sweep(); n > 0 {
				logging.FromContext(ctx).Debug("expired sessions removed", "count", n)
			}
		}
	}
}

type sessionCtxKey struct{}

// withSession resolves the session cookie. Signed-in requests carry the
// session and its user in the context; anonymous requests pass through.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(s.cfg.Session.CookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		ss, ok := s.sessions.get(c.Value)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), sessionCtxKey{}, ss)
		ctx = core.ContextWithUser(ctx, ss.User)
		ctx, _ = logging.WithFields(ctx, "role", ss.User.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFromContext(ctx context.Context) (*session, bool) {
	ss, ok := ctx.Value(sessionCtxKey{}).(*session)
	return ss, ok
}

func (s *Server) setSessionCookie(w http.ResponseWriter, ss *session) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.Session.CookieName,
		Value:    ss.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.cfg.Session.TTL.Seconds()),
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Session.Secure,
		MaxAge:   -1,
	})
}
