package handler

import (
	"net/http"
	"strings"

	"glossgraph/internal/controller"
	"glossgraph/internal/logger"
	"glossgraph/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ViewerHandler serves the interactive glossary view
type ViewerHandler struct {
	session *service.Session
	clients ClientCounter
	logger  *zap.Logger
}

// ClientCounter reports connected event-stream clients; hub.Hub implements it
type ClientCounter interface {
	ClientCount() int
}

// NewViewerHandler creates a handler over a running session
func NewViewerHandler(session *service.Session, log *zap.Logger) *ViewerHandler {
	return &ViewerHandler{session: session, logger: logger.OrNop(log)}
}

// WithClients adds the event-stream client count to /health
func (h *ViewerHandler) WithClients(c ClientCounter) *ViewerHandler {
	h.clients = c
	return h
}

// SearchRequest is the body of POST /api/search
type SearchRequest struct {
	Value string `json:"value"`
}

// DragRequest is the body of POST /api/nodes/{id}/drag
type DragRequest struct {
	Phase controller.DragPhase `json:"phase"`
	X     float64              `json:"x"`
	Y     float64              `json:"y"`
}

// GetView returns everything the page needs to draw itself
func (h *ViewerHandler) GetView(w http.ResponseWriter, r *http.Request) {
	view, err := h.session.Snapshot(r.Context())
	if err != nil {
		h.fail(w, "Failed to get view", err)
		return
	}
	writeJSON(w, view, http.StatusOK)
}

// GetGraph returns the normalized graph with current positions
func (h *ViewerHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	graph, err := h.session.Graph(r.Context())
	if err != nil {
		h.fail(w, "Failed to get graph", err)
		return
	}
	writeJSON(w, graph, http.StatusOK)
}

// ClickNode selects a node
func (h *ViewerHandler) ClickNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.session.Click(r.Context(), id); err != nil {
		h.fail(w, "Failed to select node", err)
		return
	}
	h.writeState(w, r)
}

// Search updates the search term
func (h *ViewerHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.session.Search(r.Context(), req.Value); err != nil {
		h.fail(w, "Failed to search", err)
		return
	}
	h.writeState(w, r)
}

// Reset clears selection and search
func (h *ViewerHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Reset(r.Context()); err != nil {
		h.fail(w, "Failed to reset", err)
		return
	}
	h.writeState(w, r)
}

// DragNode applies one drag step to a node
func (h *ViewerHandler) DragNode(w http.ResponseWriter, r *http.Request) {
	var req DragRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	ev := controller.DragEvent{
		NodeID: chi.URLParam(r, "id"),
		Phase:  controller.DragPhase(strings.ToLower(string(req.Phase))),
		X:      req.X,
		Y:      req.Y,
	}
	if err := h.session.Drag(r.Context(), ev); err != nil {
		h.fail(w, "Failed to drag node", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reload fetches the graph again. A failed reload keeps the previous graph
// and reports the error.
func (h *ViewerHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Reload(r.Context()); err != nil {
		h.fail(w, "Failed to reload graph", err)
		return
	}
	status, err := h.session.Status(r.Context())
	if err != nil {
		h.fail(w, "Failed to get status", err)
		return
	}
	writeJSON(w, status, http.StatusOK)
}

// GetSVG renders the current scene
func (h *ViewerHandler) GetSVG(w http.ResponseWriter, r *http.Request) {
	// The session buffers the document, so nothing reaches w on failure.
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := h.session.WriteSVG(r.Context(), w); err != nil {
		h.fail(w, "Failed to render graph", err)
	}
}

// Health reports the load state. It answers 200 even while loading or after
// a failed load so the page stays reachable for a retry.
func (h *ViewerHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, err := h.session.Status(r.Context())
	if err != nil {
		h.fail(w, "Session unavailable", err)
		return
	}
	body := map[string]interface{}{
		"status": "ok",
		"graph":  status,
	}
	if h.clients != nil {
		body["clients"] = h.clients.ClientCount()
	}
	writeJSON(w, body, http.StatusOK)
}

func (h *ViewerHandler) writeState(w http.ResponseWriter, r *http.Request) {
	view, err := h.session.Snapshot(r.Context())
	if err != nil {
		h.fail(w, "Failed to get view", err)
		return
	}
	writeJSON(w, view.State, http.StatusOK)
}

func (h *ViewerHandler) fail(w http.ResponseWriter, msg string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Warn(msg, zap.Error(err))
	}
	writeError(w, msg, err.Error(), status)
}
