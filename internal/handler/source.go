package handler

import (
	"net/http"

	"glossgraph/internal/domain"
	"glossgraph/internal/logger"
	"glossgraph/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SourceHandler serves a stored glossary as the graph endpoint the viewer
// fetches from
type SourceHandler struct {
	catalog repository.Catalog
	logger  *zap.Logger
}

// NewSourceHandler creates a handler over a catalog
func NewSourceHandler(catalog repository.Catalog, log *zap.Logger) *SourceHandler {
	return &SourceHandler{catalog: catalog, logger: logger.OrNop(log)}
}

// GetGraph returns one node per term and one edge per link
func (h *SourceHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	terms, err := h.catalog.ListTerms(r.Context())
	if err != nil {
		h.logger.Error("Failed to list terms", zap.Error(err))
		writeError(w, "Failed to get graph", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, domain.PayloadFromTerms(terms), http.StatusOK)
}

// ListTerms returns every term in catalog order
func (h *SourceHandler) ListTerms(w http.ResponseWriter, r *http.Request) {
	terms, err := h.catalog.ListTerms(r.Context())
	if err != nil {
		h.logger.Error("Failed to list terms", zap.Error(err))
		writeError(w, "Failed to list terms", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, terms, http.StatusOK)
}

// GetTerm returns one term
func (h *SourceHandler) GetTerm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	term, err := h.catalog.GetTerm(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get term", zap.String("id", id), zap.Error(err))
		writeError(w, "Failed to get term", err.Error(), http.StatusInternalServerError)
		return
	}
	if term == nil {
		writeError(w, "Not found", "term "+id+" not found", http.StatusNotFound)
		return
	}
	writeJSON(w, term, http.StatusOK)
}
