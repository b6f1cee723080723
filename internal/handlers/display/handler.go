package display

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/makehaven/tasks-display/internal/metrics"
	"github.com/makehaven/tasks-display/internal/services"
	"github.com/makehaven/tasks-display/internal/views"
	"github.com/makehaven/tasks-display/pkg/debug"
	"github.com/makehaven/tasks-display/pkg/httputil"
)

// ViewNotFoundMessage is the body returned when the tasks view is missing.
const ViewNotFoundMessage = "View not found."

// Handler serves the kiosk page and its fragment.
type Handler struct {
	service *services.DisplayService
	metrics *metrics.Metrics
}

// NewHandler creates a new display handler
func NewHandler(service *services.DisplayService, m *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		metrics: m,
	}
}

// GetPage serves GET /display/tasks/{code_word}.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	codeWord := mux.Vars(r)["code_word"]

	page, err := h.service.GetFullPage(r.Context(), codeWord)
	if err != nil {
		h.writeError(w, metrics.EndpointPage, err)
		return
	}

	h.metrics.ObserveDisplay(metrics.EndpointPage, metrics.ResultOK)
	w.Header().Set("Cache-Control", "no-store")
	httputil.RespondWithHTML(w, http.StatusOK, page)
}

// GetFragment serves GET /display/tasks/fragment/{code_word}.
func (h *Handler) GetFragment(w http.ResponseWriter, r *http.Request) {
	codeWord := mux.Vars(r)["code_word"]

	html, err := h.service.GetFragment(r.Context(), codeWord)
	if err != nil {
		h.writeError(w, metrics.EndpointFragment, err)
		return
	}

	h.metrics.ObserveDisplay(metrics.EndpointFragment, metrics.ResultOK)
	w.Header().Set("Cache-Control", "no-store")
	httputil.RespondWithHTML(w, http.StatusOK, []byte(html))
}

func (h *Handler) writeError(w http.ResponseWriter, endpoint string, err error) {
	switch {
	case errors.Is(err, services.ErrAccessDenied):
		h.metrics.ObserveDisplay(endpoint, metrics.ResultDenied)
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, views.ErrViewNotFound):
		debug.Error("Tasks view is not registered: %v", err)
		h.metrics.ObserveDisplay(endpoint, metrics.ResultNotFound)
		httputil.RespondWithText(w, http.StatusNotFound, ViewNotFoundMessage)
	default:
		debug.Error("Failed to serve tasks display %s: %v", endpoint, err)
		h.metrics.ObserveDisplay(endpoint, metrics.ResultError)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
