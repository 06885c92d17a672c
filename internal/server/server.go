package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/me/baraza/internal/api"
	"github.com/me/baraza/internal/cache"
	"github.com/me/baraza/internal/config"
	"github.com/me/baraza/internal/storage"
	"github.com/me/baraza/internal/store"
	"github.com/me/baraza/pkg/model"
)

// Server is the Baraza console server. It fronts the platform API,
// owns the cookie sessions, and serves the role dashboards.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	platform  *api.Client
	sessions  *SessionManager
	store     store.Store
	cache     cache.Cache      // optional; dashboard aggregates
	uploader  storage.Uploader // optional; document uploads
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithCache sets the cache used for dashboard aggregates.
func WithCache(c cache.Cache) Option {
	return func(s *Server) {
		s.cache = c
	}
}

// WithUploader sets the object store used for document uploads.
func WithUploader(u storage.Uploader) Option {
	return func(s *Server) {
		s.uploader = u
	}
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, st store.Store, platform *api.Client, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		platform:  platform,
		sessions:  NewSessionManager(st, cfg.SessionTTL),
		store:     st,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))
	r.Use(sessionMiddleware(s.sessions, s.logger))

	// Dashboard views. A signed-in user who hits someone else's
	// dashboard is sent home, never to an error page.
	r.Get("/", s.handleRoot)
	r.Get("/login", s.handleLoginPage)
	r.With(requireView(model.RoleAdmin)).Get("/admin", s.handleAdminDashboard)
	r.With(requireView(model.RoleSales)).Get("/sales", s.handleSalesDashboard)
	r.With(requireView(model.RolePM)).Get("/pm", s.handlePMDashboard)
	r.With(requireView(model.RoleClient)).Get("/client", s.handleClientDashboard)

	// API routes (JSON)
	r.Route("/api/v1", func(r chi.Router) {
		// Health
		r.Get("/health", s.handleHealth)

		// Auth
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.handleLogin)
			r.Post("/logout", s.handleLogout)
			r.With(requireRoles()).Get("/session", s.handleSessionInfo)
		})

		// Clients
		r.Route("/clients", func(r chi.Router) {
			r.With(requireRoles(model.RoleAdmin, model.RoleSales)).Get("/", s.handleListClients)
			r.With(requireRoles(model.RoleAdmin, model.RoleSales)).Post("/", s.handleOnboardClient)
		})

		// Projects
		r.Route("/projects", func(r chi.Router) {
			r.With(requireRoles()).Get("/", s.handleListProjects)
			r.With(requireRoles(model.RoleAdmin, model.RolePM)).Post("/", s.handleCreateProject)
		})

		// Documents
		r.Route("/documents", func(r chi.Router) {
			r.With(requireRoles()).Get("/", s.handleListDocuments)
			r.With(requireRoles()).Post("/", s.handleUploadDocument)
		})

		// Payments
		r.Route("/payments", func(r chi.Router) {
			r.With(requireRoles()).Get("/", s.handleListPayments)
			r.With(requireRoles(model.RoleAdmin, model.RoleClient)).Post("/", s.handleInitiatePayment)
		})

		// Tokenization
		r.Route("/tokenization", func(r chi.Router) {
			r.With(requireRoles()).Get("/results", s.handleTokenizationResults)
			r.With(requireRoles(model.RoleAdmin, model.RoleClient)).Post("/requests", s.handleRequestTokenization)
		})

		// Marketplace
		r.Route("/listings", func(r chi.Router) {
			r.With(requireRoles()).Get("/", s.handleListListings)
			r.With(requireRoles(model.RoleAdmin)).Post("/", s.handleCreateListing)
		})

		// Audit
		r.With(requireRoles(model.RoleAdmin)).Get("/audit/logins", s.handleListLoginEvents)
	})
}

// handleRoot sends a signed-in user to their dashboard and everyone
// else to the login page.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if sess := SessionFromContext(r.Context()); sess != nil {
		http.Redirect(w, r, sess.Session.Role.LandingPath(), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// platformFor returns a platform client bound to the session's token.
func (s *Server) platformFor(sess *model.ServerSession) *api.Client {
	return s.platform.WithToken(sess.Session.Token)
}
