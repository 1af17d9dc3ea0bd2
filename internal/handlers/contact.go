package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"folio.dev/internal/models"
	"folio.dev/internal/page"
	"folio.dev/internal/services"
)

const maxContactBody = 1 << 20

// ContactHandler forwards contact form posts to the backend
type ContactHandler struct {
	pages  *services.PageService
	logger *zap.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(pages *services.PageService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{pages: pages, logger: logger}
}

// Submit handles POST /contact. AJAX callers (X-Requested-With:
// XMLHttpRequest) get the backend's verdict as JSON; plain form posts get
// the page back with the status message filled in.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBody)
	if err := r.ParseMultipartForm(maxContactBody); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		respondError(w, r, http.StatusBadRequest, "Invalid form body")
		return
	}

	ajax := r.Header.Get("X-Requested-With") == "XMLHttpRequest"

	var (
		p   *page.Page
		err error
	)
	if ajax {
		p, err = h.pages.Bind()
	} else {
		p, err = h.pages.Load(r.Context())
	}
	if err != nil {
		h.logger.Error("loading page", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "Failed to load page")
		return
	}
	if p.Contact == nil {
		respondError(w, r, http.StatusNotFound, "Contact form not available")
		return
	}

	// Every request binds its own form, so it is never already submitting.
	res, _ := p.Submit(r.Context(), r.Form)

	status := http.StatusOK
	if !res.OK {
		status = http.StatusBadRequest
	}
	if ajax {
		respondJSON(w, r, status, models.ContactReply{Success: res.OK, Message: res.Message})
		return
	}
	writePage(w, r, h.logger, status, p)
}
