// Package layout supplies the geometry a browser would compute for a page:
// where each section sits and how tall the viewport is. The page runtime has
// no layout engine, so geometry comes from a static description.
package layout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"folio.dev/internal/dom"
)

// DefaultViewportHeight is used when a layout file omits the viewport.
const DefaultViewportHeight = 800

// Rect is a vertical extent in document coordinates.
type Rect struct {
	Top    int `yaml:"top"`
	Height int `yaml:"height"`
}

// Bottom is the first coordinate past the rectangle.
func (r Rect) Bottom() int { return r.Top + r.Height }

// Contains reports whether y falls in [Top, Bottom).
func (r Rect) Contains(y int) bool { return y >= r.Top && y < r.Bottom() }

// Section is a page section with its measured geometry.
type Section struct {
	ID string
	Rect
}

// Layout answers geometry questions about a rendered page.
type Layout interface {
	// Section returns the geometry of the element with the given id.
	Section(id string) (Rect, bool)
	// Bounds returns the geometry of an arbitrary element.
	Bounds(el *dom.Element) (Rect, bool)
	// ViewportHeight is the visible height of the window.
	ViewportHeight() int
}

// Static is a Layout read from configuration.
type Static struct {
	Viewport int             `yaml:"viewport"`
	Sections map[string]Rect `yaml:"sections"`
}

// Load reads a YAML layout file of the form
//
//	viewport: 800
//	sections:
//	  home: {top: 0, height: 700}
func Load(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout %s: %w", path, err)
	}
	var s Static
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing layout %s: %w", path, err)
	}
	return &s, nil
}

func (s *Static) Section(id string) (Rect, bool) {
	if s == nil || id == "" {
		return Rect{}, false
	}
	r, ok := s.Sections[id]
	return r, ok
}

// Bounds resolves an element by its own id, falling back to the enclosing
// <section>. Cards rendered into a section share that section's extent.
func (s *Static) Bounds(el *dom.Element) (Rect, bool) {
	if r, ok := s.Section(el.Attr("id")); ok {
		return r, true
	}
	return s.Section(el.Closest("section").Attr("id"))
}

func (s *Static) ViewportHeight() int {
	if s == nil || s.Viewport <= 0 {
		return DefaultViewportHeight
	}
	return s.Viewport
}
