// Package nav implements the navigation bar behaviour: scroll highlighting,
// in-page link scrolling and the mobile menu.
package nav

import (
	"folio.dev/internal/dom"
	"folio.dev/internal/layout"
)

const (
	// ScrolledThreshold is the offset past which the navbar gets its
	// "scrolled" look.
	ScrolledThreshold = 50
	// ActiveProbeOffset shifts the probe point below the top of the window
	// when deciding which section is current.
	ActiveProbeOffset = 100
)

// ScrollController keeps the navbar in sync with the scroll position.
type ScrollController struct {
	doc    *dom.Document
	layout layout.Layout
	navbar *dom.Element
	links  []*dom.Element
}

func NewScrollController(doc *dom.Document, l layout.Layout) *ScrollController {
	return &ScrollController{
		doc:    doc,
		layout: l,
		navbar: doc.ByID("navbar"),
		links:  doc.All("nav-link"),
	}
}

// OnScroll handles a scroll event at the given vertical offset.
func (c *ScrollController) OnScroll(scrollY int) {
	c.navbar.SetClass("scrolled", scrollY > ScrolledThreshold)
	c.UpdateActive(scrollY)
}

// Sections returns the page's <section> elements that have an id and a
// known geometry, in document order.
func (c *ScrollController) Sections() []layout.Section {
	var out []layout.Section
	for _, el := range c.doc.Tag("section") {
		id := el.Attr("id")
		if id == "" {
			continue
		}
		r, ok := c.layout.Section(id)
		if !ok {
			continue
		}
		out = append(out, layout.Section{ID: id, Rect: r})
	}
	return out
}

// UpdateActive marks the nav link of the current section active and clears
// the rest. It returns the current section id, if any.
func (c *ScrollController) UpdateActive(scrollY int) (string, bool) {
	id, ok := ActiveSection(scrollY, c.Sections())
	for _, link := range c.links {
		link.SetClass("active", ok && link.Attr("href") == "#"+id)
	}
	return id, ok
}

// ActiveSection returns the section containing scrollY+ActiveProbeOffset.
// Sections are checked in order and a later match overrides an earlier one.
func ActiveSection(scrollY int, sections []layout.Section) (string, bool) {
	probe := scrollY + ActiveProbeOffset
	var (
		id    string
		found bool
	)
	for _, s := range sections {
		if s.ID != "" && s.Contains(probe) {
			id, found = s.ID, true
		}
	}
	return id, found
}
