package nav

import (
	"strings"

	"folio.dev/internal/dom"
	"folio.dev/internal/layout"
)

// NavbarOffset is the fixed navbar height subtracted from scroll targets.
const NavbarOffset = 70

// LinkHandler performs in-page navigation for .nav-link clicks.
type LinkHandler struct {
	doc      *dom.Document
	layout   layout.Layout
	scroller Scroller
	menu     *Menu
}

func NewLinkHandler(doc *dom.Document, l layout.Layout, s Scroller, m *Menu) *LinkHandler {
	return &LinkHandler{doc: doc, layout: l, scroller: s, menu: m}
}

// Click handles a click on link. Default navigation never happens; the
// window scrolls to the target section when it exists, and the mobile menu
// closes either way. It reports whether a scroll was issued.
func (h *LinkHandler) Click(link *dom.Element) bool {
	if link == nil {
		return false
	}
	scrolled := false
	if top, ok := h.Target(link.Attr("href")); ok {
		h.scroller.ScrollTo(top, BehaviorSmooth)
		scrolled = true
	}
	h.menu.Close()
	return scrolled
}

// ClickHref finds the nav link with the given href and clicks it.
func (h *LinkHandler) ClickHref(href string) bool {
	for _, link := range h.doc.All("nav-link") {
		if link.Attr("href") == href {
			return h.Click(link)
		}
	}
	return false
}

// Target returns the scroll offset for a "#id" href.
func (h *LinkHandler) Target(href string) (int, bool) {
	id, ok := strings.CutPrefix(href, "#")
	if !ok || id == "" {
		return 0, false
	}
	section := h.doc.ByID(id)
	if section == nil {
		return 0, false
	}
	r, ok := h.layout.Bounds(section)
	if !ok {
		return 0, false
	}
	return r.Top - NavbarOffset, true
}
