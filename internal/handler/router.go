package handler

import (
	"io/fs"
	"net/http"
	"time"

	"glossgraph/internal/logger"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// ViewerRoutes holds what the viewer router serves besides the API
type ViewerRoutes struct {
	Events      http.Handler // SSE stream, usually *hub.Hub
	Metrics     http.Handler // prometheus exposition; omitted when nil
	Recorder    RequestRecorder
	Static      fs.FS // page assets served at /
	CORSOrigins []string
}

// NewViewerRouter builds the viewer server's routes
func NewViewerRouter(h *ViewerHandler, routes ViewerRoutes, log *zap.Logger) http.Handler {
	router := chi.NewRouter()
	useCommon(router, routes.Recorder, routes.CORSOrigins, log)

	router.Get("/health", h.Health)
	router.Get("/graph.svg", h.GetSVG)
	if routes.Events != nil {
		router.Method(http.MethodGet, "/events", routes.Events)
	}
	if routes.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", routes.Metrics)
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(30 * time.Second))
		r.Get("/view", h.GetView)
		r.Get("/graph", h.GetGraph)
		r.Post("/search", h.Search)
		r.Post("/reset", h.Reset)
		r.Post("/reload", h.Reload)
		r.Route("/nodes/{id}", func(r chi.Router) {
			r.Post("/click", h.ClickNode)
			r.Post("/drag", h.DragNode)
		})
	})

	if routes.Static != nil {
		router.Handle("/*", http.FileServer(http.FS(routes.Static)))
	}
	return router
}

// NewSourceRouter builds the glossary source server's routes
func NewSourceRouter(h *SourceHandler, rec RequestRecorder, metrics http.Handler, log *zap.Logger) http.Handler {
	router := chi.NewRouter()
	useCommon(router, rec, nil, log)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})
	if metrics != nil {
		router.Method(http.MethodGet, "/metrics", metrics)
	}
	router.Route("/api", func(r chi.Router) {
		r.Get("/graph", h.GetGraph)
		r.Get("/terms", h.ListTerms)
		r.Get("/terms/{id}", h.GetTerm)
	})
	return router
}

// useCommon installs the middleware both servers share. No origins means
// any origin.
func useCommon(router chi.Router, rec RequestRecorder, origins []string, log *zap.Logger) {
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(Logger(logger.OrNop(log)))
	if rec != nil {
		router.Use(Metrics(rec))
	}

	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
}
