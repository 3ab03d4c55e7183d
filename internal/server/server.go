package server

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/meltforce/fitrec/internal/recommend"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	svc    *recommend.Service
	log    *slog.Logger
	router chi.Router
}

// Option customizes a Server.
type Option func(*serverOptions)

type serverOptions struct {
	corsOrigins []string
}

// WithCORSOrigins restricts CORS to the given origins. With none, any origin
// is allowed.
func WithCORSOrigins(origins ...string) Option {
	return func(o *serverOptions) { o.corsOrigins = origins }
}

// New creates a new Server with all routes configured.
func New(svc *recommend.Service, log *slog.Logger, opts ...Option) *Server {
	var o serverOptions
	for _, opt := range opts {
		opt(&o)
	}
	s := &Server{
		svc:    svc,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes(o)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes(o serverOptions) {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(Recoverer(s.log, "Internal server error"))
	s.router.Use(CORS(o.corsOrigins...))

	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	// Older front-ends post to /recommend.
	recommendHandler := Recoverer(s.log, recommend.MsgInternalFilter)(http.HandlerFunc(s.handleRecommend))
	s.router.Method(http.MethodPost, "/api/recommend", recommendHandler)
	s.router.Method(http.MethodPost, "/recommend", recommendHandler)

	s.router.Post("/api/recommendations", s.handleRecommendations)

	s.router.Get("/api/catalog", s.handleCatalog)
	s.router.Get("/api/catalog/types", s.handleCatalogTypes)

	s.router.NotFound(s.handleNotFound)
}

// MountMCP serves an MCP transport under /mcp.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Mount("/mcp", h)
}

// SetFrontend mounts the embedded SPA filesystem.
// Unmatched GET routes serve index.html for client-side routing.
func (s *Server) SetFrontend(webFS fs.FS) {
	fileServer := http.FileServerFS(webFS)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			s.handleNotFound(w, r)
			return
		}
		// Try to serve the exact file first
		if info, err := fs.Stat(webFS, r.URL.Path[1:]); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		// Fallback to index.html for SPA routing
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	})
}
