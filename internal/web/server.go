// Package web provides the HTTP server and handlers for the evaluation
// dashboard.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/JonMunkholm/quimbayaeval/internal/config"
	"github.com/JonMunkholm/quimbayaeval/internal/core"
	mw "github.com/JonMunkholm/quimbayaeval/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed static
var staticFiles embed.FS

// errRateLimited is mapped to RATE001 by core.MapError.
var errRateLimited = errors.New("rate limit exceeded")

// Server is the HTTP server for the dashboard.
type Server struct {
	cfg          *config.Config
	service      *core.Service
	sessions     *sessionStore
	router       *chi.Mux
	server       *http.Server
	limiter      *rateLimiter
	loginLimiter *rateLimiter
	exports      *core.ExportLimiter
}

// NewServer creates a new Server instance.
func NewServer(cfg *config.Config, service *core.Service) *Server {
	s := &Server{
		cfg:          cfg,
		service:      service,
		sessions:     newSessionStore(cfg.Session.TTL),
		router:       chi.NewRouter(),
		limiter:      newRateLimiter(cfg.Rate.RequestsPerMinute, time.Minute),
		loginLimiter: newRateLimiter(cfg.Rate.LoginLimit, time.Minute),
		exports:      core.NewExportLimiter(cfg.Table.MaxConcurrentExports, cfg.Table.ExportWait),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		s.router.Use(s.rateLimit(s.limiter))
	}

	s.router.Use(s.withSession)
}

// setupRoutes configures all HTTP routes. Role gates follow the portal each
// page belongs to.
func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.router.Get("/", s.handleLoginPage)
	s.router.Get("/healthz", s.handleHealth)
	if s.cfg.Rate.Enabled {
		s.router.With(s.rateLimit(s.loginLimiter)).Post("/login", s.handleLogin)
	} else {
		s.router.Post("/login", s.handleLogin)
	}
	s.router.Post("/logout", s.handleLogout)

	// Any signed-in role
	s.router.Group(func(r chi.Router) {
		r.Use(mw.RequireRole(s.denyAccess))
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/pqrs", s.handleTickets)
		r.Post("/pqrs", s.handleCreateTicket)
		r.Get("/pqrs/{id}", s.handleTicketDetail)

		r.Route("/tables/{table}", func(r chi.Router) {
			r.Post("/sort/{column}", s.handleTableSort)
			r.Get("/page/{page}", s.handleTablePage)
			r.Post("/rows/{key}", s.handleTableRow)
			r.Get("/export", s.handleTableExport)
		})
	})

	// Student portal
	s.router.Group(func(r chi.Router) {
		r.Use(mw.RequireRole(s.denyAccess, core.RoleStudent))
		r.Get("/mis-cursos", s.handleMyCourses)
		r.Get("/mis-evaluaciones", s.handleMyEvaluations)
		r.Get("/historial", s.handleHistory)
		r.Get("/historial/{id}", s.handleHistoryDetail)
		r.Get("/realizar-evaluacion/{id}", s.handleTakeEvaluation)
		r.Post("/realizar-evaluacion/{id}/respuestas/{q}", s.handleSaveAnswer)
		r.Post("/realizar-evaluacion/{id}/enviar", s.handleSubmitEvaluation)
	})

	// Teacher and coordinator
	s.router.Group(func(r chi.Router) {
		r.Use(mw.RequireRole(s.denyAccess, core.RoleTeacher, core.RoleCoordinator))
		r.Get("/evaluaciones", s.handleEvaluations)
		r.Get("/evaluaciones/{id}", s.handleEvaluationDetail)
		r.Get("/reportes", s.handleReports)
	})

	// Teacher portal
	s.router.Group(func(r chi.Router) {
		r.Use(mw.RequireRole(s.denyAccess, core.RoleTeacher))
		r.Get("/evaluaciones/nueva", s.handleNewEvaluation)
		r.Post("/evaluaciones", s.handleCreateEvaluation)
		r.Get("/calificar", s.handleGrading)
		r.Post("/calificar/{id}", s.handleGradeSubmission)
	})

	// Coordinator portal
	s.router.Group(func(r chi.Router) {
		r.Use(mw.RequireRole(s.denyAccess, core.RoleCoordinator))
		r.Get("/usuarios", s.handleUsers)
		r.Post("/usuarios/{id}/bloquear", s.handleBlockUser)
		r.Post("/usuarios/{id}/desbloquear", s.handleUnblockUser)
		r.Delete("/usuarios/{id}", s.handleDeleteUser)
		r.Get("/auditoria", s.handleAuditLog)
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Use(s.apiAuth)
		r.Get("/{resource}", s.handleAPIList)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusFound)
	})
}

// RunBackground starts the session sweeper and rate limiter cleanup. They
// stop when ctx is cancelled.
func (s *Server) RunBackground(ctx context.Context) {
	go s.sessions.runSweeper(ctx, s.cfg.Session.SweepInterval)
	go s.limiter.cleanup(ctx)
	go s.loginLimiter.cleanup(ctx)
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	return s.exports.WaitForDrain(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":  "ok",
		"exports": s.exports.Status(),
	})
}

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			// htmx is loaded from unpkg; row action buttons use inline handlers.
			if enableCSP {
				w.Header().Set("Content-Security-Policy",
					"default-src 'self'; script-src 'self' 'unsafe-inline' https://unpkg.com; style-src 'self' 'unsafe-inline'; img-src 'self' data:; font-src 'self'")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimiter implements a fixed-window request limit per client IP.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int           // requests per window
	window   time.Duration // time window
	now      func() time.Time
}

type visitor struct {
	tokens    int
	lastReset time.Time
}

func newRateLimiter(rate int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
		now:      time.Now,
	}
}

// cleanup removes stale visitor entries every window until ctx is done.
func (rl *rateLimiter) cleanup(ctx context.Context) {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := rl.now()
			rl.mu.Lock()
			for ip, v := range rl.visitors {
				if now.Sub(v.lastReset) > rl.window*2 {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// allow checks if the request should be allowed and consumes a token if so.
func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, exists := rl.visitors[ip]
	if !exists || now.Sub(v.lastReset) > rl.window {
		rl.visitors[ip] = &visitor{tokens: rl.rate - 1, lastReset: now}
		return true
	}

	if v.tokens <= 0 {
		return false
	}
	v.tokens--
	return true
}

// rateLimit returns middleware that limits requests per client IP. The
// client IP was resolved by TrustedRealIP.
func (s *Server) rateLimit(rl *rateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := core.GetIPAddressFromContext(r.Context())
			if ip == "" {
				ip, _, _ = net.SplitHostPort(r.RemoteAddr)
			}

			if !rl.allow(ip) {
				w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
				s.respondError(w, r, errRateLimited, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
