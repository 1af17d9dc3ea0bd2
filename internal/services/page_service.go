package services

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"folio.dev/internal/api"
	"folio.dev/internal/config"
	"folio.dev/internal/dom"
	"folio.dev/internal/layout"
	"folio.dev/internal/logging"
	"folio.dev/internal/page"
	"folio.dev/web"
)

// PageService builds pages from the configured shell and backend
type PageService struct {
	shell         []byte
	layout        layout.Layout
	client        *api.Client
	contactAction string
	logger        *zap.Logger
}

// NewPageService creates a new PageService
func NewPageService(cfg *config.Config, logger *zap.Logger) (*PageService, error) {
	shell := web.Index()
	if cfg.Page.Shell != "" {
		data, err := os.ReadFile(cfg.Page.Shell)
		if err != nil {
			return nil, fmt.Errorf("reading page shell: %w", err)
		}
		shell = data
	}

	var l layout.Layout = &layout.Static{}
	if cfg.Page.Layout != "" {
		static, err := layout.Load(cfg.Page.Layout)
		if err != nil {
			return nil, err
		}
		l = static
	}

	return &PageService{
		shell:         shell,
		layout:        l,
		client:        api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger.Named(logging.ComponentAPI)),
		contactAction: cfg.Contact.Action,
		logger:        logger.Named(logging.ComponentPage),
	}, nil
}

func (s *PageService) deps() page.Deps {
	return page.Deps{
		Client:        s.client,
		Layout:        s.layout,
		ContactAction: s.contactAction,
		Logger:        s.logger,
	}
}

// Load returns a fully rendered page
func (s *PageService) Load(ctx context.Context) (*page.Page, error) {
	return page.Load(ctx, bytes.NewReader(s.shell), s.deps())
}

// Bind returns the bare shell with its behaviours wired, skipping the
// section fetches
func (s *PageService) Bind() (*page.Page, error) {
	doc, err := dom.Parse(bytes.NewReader(s.shell))
	if err != nil {
		return nil, fmt.Errorf("loading page shell: %w", err)
	}
	return page.Bind(doc, s.deps()), nil
}

// Layout returns the geometry used for navigation and animations
func (s *PageService) Layout() layout.Layout {
	return s.layout
}
