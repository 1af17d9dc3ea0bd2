// Package page runs the lifecycle of one portfolio page: it binds the
// navigation, menu, animation and contact behaviours to the markup, fills
// every section from the backend, and then accepts user events.
package page

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"folio.dev/internal/animate"
	"folio.dev/internal/api"
	"folio.dev/internal/contact"
	"folio.dev/internal/dom"
	"folio.dev/internal/layout"
	"folio.dev/internal/logging"
	"folio.dev/internal/nav"
	"folio.dev/internal/render"
)

// Deps are the collaborators a page needs.
type Deps struct {
	Client *api.Client
	Layout layout.Layout
	// ContactAction overrides the contact form's action attribute.
	ContactAction string
	Logger        *zap.Logger
}

// Report records what each section renderer did during Load.
type Report map[string]render.Status

// Page is a loaded, interactive page.
type Page struct {
	Doc      *dom.Document
	Window   *nav.Window
	Menu     *nav.Menu
	Navbar   *nav.ScrollController
	Links    *nav.LinkHandler
	Observer *animate.Observer
	// Contact is nil when the page has no contact form.
	Contact *contact.Form
	Report  Report

	layout layout.Layout
	logger *zap.Logger
}

// Load parses the page shell, wires its behaviours and renders all sections.
// The six section fetches run concurrently and Load returns once all of
// them have settled. Only a malformed shell is an error: section failures
// end up as fallback content on the page.
func Load(ctx context.Context, shell io.Reader, deps Deps) (*Page, error) {
	doc, err := dom.Parse(shell)
	if err != nil {
		return nil, fmt.Errorf("loading page shell: %w", err)
	}

	p := Bind(doc, deps)
	if err := p.renderSections(ctx, deps.Client); err != nil {
		return nil, err
	}
	// Cards already in the first viewport are seen as soon as they exist.
	p.Reveal()
	return p, nil
}

// Bind wires the page behaviours to doc without fetching anything.
func Bind(doc *dom.Document, deps Deps) *Page {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	l := deps.Layout
	if l == nil {
		l = &layout.Static{}
	}

	p := &Page{
		Doc:      doc,
		Window:   nav.NewWindow(l.ViewportHeight()),
		Menu:     nav.NewMenu(doc),
		Navbar:   nav.NewScrollController(doc, l),
		Observer: animate.NewObserver(doc, animate.DefaultOptions()),
		Report:   Report{},
		layout:   l,
		logger:   logger,
	}
	p.Links = nav.NewLinkHandler(doc, l, p.Window, p.Menu)
	p.Window.OnScroll(p.Navbar.OnScroll)

	var (
		base   string
		client *http.Client
	)
	if deps.Client != nil {
		base = deps.Client.BaseURL()
		client = deps.Client.HTTPClient()
	}
	form, err := contact.Bind(doc, base, deps.ContactAction, client, logger.Named(logging.ComponentContact))
	switch {
	case errors.Is(err, contact.ErrNoForm):
	case err != nil:
		logger.Warn("contact form not bound", zap.Error(err))
	default:
		p.Contact = form
	}

	p.Observer.ObserveAll()
	p.Navbar.UpdateActive(p.Window.ScrollY())
	return p
}

func (p *Page) renderSections(ctx context.Context, client *api.Client) error {
	if client == nil {
		return errors.New("page needs an api client")
	}
	r := render.New(p.Doc, client, p.Observer, p.logger.Named(logging.ComponentRender))
	sections := []struct {
		name string
		run  func(context.Context) render.Status
	}{
		{"projects", r.Projects},
		{"skills", r.Skills},
		{"experience", r.Experience},
		{"education", r.Education},
		{"certifications", r.Certifications},
		{"stats", r.Stats},
	}

	statuses := make([]render.Status, len(sections))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range sections {
		g.Go(func() error {
			statuses[i] = s.run(gctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("rendering sections: %w", err)
	}

	for i, s := range sections {
		p.Report[s.name] = statuses[i]
	}
	p.logger.Debug("page loaded", zap.Any("sections", p.Report))
	return nil
}

// Scroll moves the window to y, as if the user scrolled there.
func (p *Page) Scroll(y int) {
	p.Window.ScrollTo(y, nav.BehaviorInstant)
	p.Reveal()
}

// Click clicks the nav link with the given href.
func (p *Page) Click(href string) bool {
	scrolled := p.Links.ClickHref(href)
	if scrolled {
		p.Reveal()
	}
	return scrolled
}

func (p *Page) ToggleMenu() { p.Menu.Toggle() }

func (p *Page) KeyDown(key string) { p.Menu.HandleKey(key) }

// Reveal runs the animation observer against the current window and
// returns the number of newly revealed elements.
func (p *Page) Reveal() int {
	return len(p.Observer.Check(p.Window.ScrollY(), p.Window.Height(), p.layout))
}

// RevealAll marks every animatable element as seen. Markup served without
// a client script calls this so no card stays hidden.
func (p *Page) RevealAll() int {
	return len(p.Observer.RevealAll())
}

// Submit fills the contact form with values and submits it. It reports
// false when the page has no contact form or a submission is in flight.
func (p *Page) Submit(ctx context.Context, values url.Values) (contact.Result, bool) {
	if p.Contact == nil {
		return contact.Result{}, false
	}
	return p.Contact.SubmitValues(ctx, values)
}

// ActiveSection is the id of the section the navbar currently highlights.
func (p *Page) ActiveSection() (string, bool) {
	return nav.ActiveSection(p.Window.ScrollY(), p.Navbar.Sections())
}

// Render writes the page markup.
func (p *Page) Render(w io.Writer) error {
	return p.Doc.Render(w)
}
