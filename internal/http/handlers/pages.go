package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/practice-booking/internal/confirmation"
	"github.com/wolfman30/practice-booking/internal/session"
	"github.com/wolfman30/practice-booking/internal/web"
	"github.com/wolfman30/practice-booking/pkg/logging"
)

// PagesHandler serves the static pages and the confirmation view.
type PagesHandler struct {
	store    session.Store
	renderer *web.Renderer
	logger   *logging.Logger
}

// NewPagesHandler creates the handler for the home, confirmation and 404 pages.
func NewPagesHandler(store session.Store, renderer *web.Renderer, logger *logging.Logger) *PagesHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &PagesHandler{store: store, renderer: renderer, logger: logger}
}

// Home renders the practitioner profile.
func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, web.PageHome, web.Page{})
}

// Confirmation renders the booking identified by {id}. Without an id, or
// when the record is missing or unreadable, only the loading view is shown.
func (h *PagesHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	var rec *session.Confirmation
	if id := strings.TrimSpace(chi.URLParam(r, "id")); id != "" {
		var err error
		rec, err = h.store.LoadConfirmation(r.Context(), id)
		if err != nil {
			h.logger.Warn("failed to load confirmation", "error", err, "confirmation_id", id)
			rec = nil
		}
	}
	page := web.Page{Title: "Appointment Confirmed", Content: confirmation.New(rec)}
	h.render(w, r, http.StatusOK, web.PageConfirmation, page)
}

// NotFound renders the 404 page inside the layout.
func (h *PagesHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, web.PageNotFound, web.Page{Title: "Page not found"})
}

func (h *PagesHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, p web.Page) {
	if err := h.renderer.Render(w, status, name, p); err != nil {
		h.logger.Error("render failed", "error", err, "page", name, "path", r.URL.Path)
		http.Error(w, "something went wrong, please try again", http.StatusInternalServerError)
	}
}
