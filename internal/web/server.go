// Package web provides the HTTP API and HTML view for sheets.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/gridtable/internal/config"
	"github.com/JonMunkholm/gridtable/internal/core"
	"github.com/JonMunkholm/gridtable/internal/grid"
	mw "github.com/JonMunkholm/gridtable/internal/web/middleware"
)

// Server is the HTTP server for the sheet service.
type Server struct {
	service *core.Service
	router  *chi.Mux
	server  *http.Server
	cfg     config.ServerConfig

	align grid.Alignment
	style grid.Style
}

// NewServer wires routes for service. Rendering defaults come from cfg.Render.
func NewServer(service *core.Service, cfg *config.Config) *Server {
	align, style := cfg.RenderDefaults()
	s := &Server{
		service: service,
		router:  chi.NewRouter(),
		cfg:     cfg.Server,
		align:   align,
		style:   style,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	if s.cfg.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}
	s.router.Use(securityHeaders)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	// Pages
	s.router.Get("/sheets/{id}", s.handleSheetPage)

	s.router.Route("/api/sheets", func(r chi.Router) {
		r.Get("/", s.handleListSheets)
		r.Post("/", s.handleCreateSheet)
		r.Post("/import", s.handleImportSheet)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSheet)
			r.Delete("/", s.handleDeleteSheet)

			// Output
			r.Get("/render", s.handleRender)
			r.Get("/csv", s.handleCSV)

			// Structure
			r.Post("/grow", s.handleGrow)
			r.Post("/rows", s.handleInsert(grid.Row))
			r.Post("/columns", s.handleInsert(grid.Column))
			r.Get("/rows/{index}", s.handleGetLine(grid.Row))
			r.Get("/columns/{index}", s.handleGetLine(grid.Column))
			r.Delete("/rows/{index}", s.handleDeleteLine(grid.Row))
			r.Delete("/columns/{index}", s.handleDeleteLine(grid.Column))

			// Cells
			r.Get("/cells/{row}/{col}", s.handleGetCell)
			r.Put("/cells/{row}/{col}", s.handleSetCell)
		})
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// writeJSON encodes v as JSON with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
