package handlers

import (
	"bytes"
	"net/http"

	"go.uber.org/zap"

	"folio.dev/internal/page"
	"folio.dev/internal/services"
)

// PageHandler serves the rendered portfolio page
type PageHandler struct {
	pages  *services.PageService
	logger *zap.Logger
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(pages *services.PageService, logger *zap.Logger) *PageHandler {
	return &PageHandler{pages: pages, logger: logger}
}

// Index handles GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	p, err := h.pages.Load(r.Context())
	if err != nil {
		h.logger.Error("loading page", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "Failed to load page")
		return
	}
	writePage(w, r, h.logger, http.StatusOK, p)
}

// writePage renders p into a buffer first so a render failure can still
// produce a clean error response. The served markup carries no script, so
// every animatable element is revealed up front.
func writePage(w http.ResponseWriter, r *http.Request, logger *zap.Logger, status int, p *page.Page) {
	p.RevealAll()
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		logger.Error("rendering page", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "Failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Debug("writing page", zap.Error(err))
	}
}
