package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phototext/phototext/internal/config"
	"github.com/phototext/phototext/internal/render"
	"github.com/phototext/phototext/internal/store"
)

// Server is the HTTP surface of the document service. It stores and returns
// document JSON verbatim and exposes rendering and conversion on top of it.
type Server struct {
	router chi.Router
	store  *store.Store
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(st *store.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store: st,
		log:   log,
		cfg:   cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/documents", s.handleCreateDocument)
		r.Get("/api/documents", s.handleListDocuments)
		r.Get("/api/documents/{docID}", s.handleGetDocument)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)

		r.Get("/api/documents/{docID}/html", s.handleRenderHTML)
		r.Get("/api/documents/{docID}/markdown", s.handleRenderMarkdown)
		r.Get("/api/documents/{docID}/outline", s.handleOutline)
		r.Get("/api/documents/{docID}/toc", s.handleTOC)
		r.Get("/api/documents/{docID}/images", s.handleImages)

		r.Post("/api/convert/hierarchize", s.handleHierarchize)
		r.Post("/api/convert/flatten", s.handleFlatten)
		r.Post("/api/import/html", s.handleImportHTML)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// renderOptions builds the server-wide rendering configuration. When
// IMAGE_BASE_URL is set, image ids resolve to URLs under it; otherwise
// output keeps the placeholder scheme.
func (s *Server) renderOptions() render.Options {
	opts := render.Options{
		IncludeCSS: s.cfg.IncludeCSS,
		CSSClass:   s.cfg.CSSClass,
	}
	if base := strings.TrimSuffix(s.cfg.ImageBaseURL, "/"); base != "" {
		opts.Resolver = func(imageID string) string {
			return base + "/" + imageID
		}
	}
	return opts
}
