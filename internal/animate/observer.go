// Package animate adds the "animate" class to cards and timeline items the
// first time they scroll into view.
package animate

import (
	"sync"

	"golang.org/x/net/html"

	"folio.dev/internal/dom"
	"folio.dev/internal/layout"
)

// Class is added to an element once it has been seen.
const Class = "animate"

// AnimatableSelectors are the classes of elements that animate on reveal.
var AnimatableSelectors = []string{
	"project-card",
	"certification-card",
	"experience-item",
	"education-item",
	"skill-category",
}

// Options mirror an intersection observer's threshold and bottom root margin.
type Options struct {
	// Threshold is the visible fraction that counts as seen.
	Threshold float64
	// RootMarginBottom grows (positive) or shrinks (negative) the bottom
	// edge of the viewport.
	RootMarginBottom int
}

// DefaultOptions fire when a tenth of an element is visible, 100px before
// it would reach the bottom of the window.
func DefaultOptions() Options {
	return Options{Threshold: 0.1, RootMarginBottom: -100}
}

// Geometry locates elements on the page.
type Geometry interface {
	Bounds(el *dom.Element) (layout.Rect, bool)
}

// Observer watches elements for visibility. Registration is idempotent and
// safe for concurrent use.
type Observer struct {
	mu      sync.Mutex
	doc     *dom.Document
	opts    Options
	seen    map[*html.Node]struct{}
	targets []*dom.Element
}

func NewObserver(doc *dom.Document, opts Options) *Observer {
	return &Observer{
		doc:  doc,
		opts: opts,
		seen: make(map[*html.Node]struct{}),
	}
}

// Observe starts watching el. It reports false when el was already watched.
func (o *Observer) Observe(el *dom.Element) bool {
	if el == nil {
		return false
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.seen[el.Node()]; ok {
		return false
	}
	o.seen[el.Node()] = struct{}{}
	o.targets = append(o.targets, el)
	return true
}

// ObserveMatching watches every element in els that carries one of the
// animatable classes.
func (o *Observer) ObserveMatching(els []*dom.Element) int {
	n := 0
	for _, el := range els {
		for _, class := range AnimatableSelectors {
			if el.HasClass(class) {
				if o.Observe(el) {
					n++
				}
				break
			}
		}
	}
	return n
}

// ObserveAll watches every element in the document with an animatable class.
func (o *Observer) ObserveAll() int {
	n := 0
	for _, class := range AnimatableSelectors {
		for _, el := range o.doc.All(class) {
			if o.Observe(el) {
				n++
			}
		}
	}
	return n
}

// Len is the number of watched elements.
func (o *Observer) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.targets)
}

// Check evaluates every watched element against the window at scrollY with
// the given height, and marks the visible ones. Elements that have left the
// document are forgotten. It returns the elements that became visible.
func (o *Observer) Check(scrollY, height int, geom Geometry) []*dom.Element {
	targets := o.attached()
	root := layout.Rect{Top: scrollY, Height: height + o.opts.RootMarginBottom}
	var revealed []*dom.Element
	for _, el := range targets {
		r, ok := geom.Bounds(el)
		if !ok {
			continue
		}
		ratio, intersecting := Intersection(r, root)
		if !intersecting || ratio < o.opts.Threshold {
			continue
		}
		if !el.HasClass(Class) {
			revealed = append(revealed, el)
		}
		el.AddClass(Class)
	}
	return revealed
}

// RevealAll marks every watched element as seen, as if the whole page had
// been scrolled through. It returns the elements that were not yet marked.
func (o *Observer) RevealAll() []*dom.Element {
	var revealed []*dom.Element
	for _, el := range o.attached() {
		if !el.HasClass(Class) {
			revealed = append(revealed, el)
		}
		el.AddClass(Class)
	}
	return revealed
}

// attached prunes elements that have left the document and returns the rest.
func (o *Observer) attached() []*dom.Element {
	o.mu.Lock()
	defer o.mu.Unlock()
	targets := make([]*dom.Element, 0, len(o.targets))
	for _, el := range o.targets {
		if o.doc.Attached(el) {
			targets = append(targets, el)
			continue
		}
		delete(o.seen, el.Node())
	}
	o.targets = targets
	return append([]*dom.Element(nil), targets...)
}

// Intersection returns the visible fraction of target inside root and
// whether the two overlap at all. A zero-height target inside root counts
// as fully visible.
func Intersection(target, root layout.Rect) (float64, bool) {
	if root.Height <= 0 {
		return 0, false
	}
	if target.Height <= 0 {
		if target.Top >= root.Top && target.Top <= root.Bottom() {
			return 1, true
		}
		return 0, false
	}
	top := max(target.Top, root.Top)
	bottom := min(target.Bottom(), root.Bottom())
	if bottom <= top {
		return 0, false
	}
	return float64(bottom-top) / float64(target.Height), true
}
