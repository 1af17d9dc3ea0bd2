package dom

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Element is a handle on one element of a Document.
//
// A nil *Element stands for "no such element": every method on it is a
// no-op that returns the zero value, so callers can chain lookups against
// pages that lack optional markup.
type Element struct {
	doc  *Document
	node *html.Node
}

// Same reports whether two handles point at the same node.
func (e *Element) Same(other *Element) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.node == other.node
}

// Node exposes the underlying node, mostly for use as a map key.
func (e *Element) Node() *html.Node {
	if e == nil {
		return nil
	}
	return e.node
}

// TagName returns the lower-case tag name.
func (e *Element) TagName() string {
	if e == nil {
		return ""
	}
	return e.node.Data
}

func (e *Element) HasClass(class string) bool {
	if e == nil {
		return false
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return hasClass(e.node, class)
}

func (e *Element) AddClass(class string) {
	e.SetClass(class, true)
}

func (e *Element) RemoveClass(class string) {
	e.SetClass(class, false)
}

// ToggleClass flips class and returns whether it is now present.
func (e *Element) ToggleClass(class string) bool {
	if e == nil {
		return false
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	on := !hasClass(e.node, class)
	setClass(e.node, class, on)
	return on
}

// SetClass adds class when on is true and removes it otherwise.
func (e *Element) SetClass(class string, on bool) {
	if e == nil {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	setClass(e.node, class, on)
}

func setClass(n *html.Node, class string, on bool) {
	classes := strings.Fields(getAttr(n, "class"))
	out := classes[:0]
	found := false
	for _, c := range classes {
		if c == class {
			if found || !on {
				continue
			}
			found = true
		}
		out = append(out, c)
	}
	if on && !found {
		out = append(out, class)
	}
	setAttr(n, "class", strings.Join(out, " "))
}

// Attr returns the attribute value, "" when absent.
func (e *Element) Attr(key string) string {
	v, _ := e.LookupAttr(key)
	return v
}

func (e *Element) LookupAttr(key string) (string, bool) {
	if e == nil {
		return "", false
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return lookupAttr(e.node, key)
}

func (e *Element) SetAttr(key, val string) {
	if e == nil {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	setAttr(e.node, key, val)
}

func (e *Element) RemoveAttr(key string) {
	if e == nil {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	removeAttr(e.node, key)
}

// Text returns the concatenated text content.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return textOf(e.node)
}

// SetText replaces all children with a single text node.
func (e *Element) SetText(text string) {
	if e == nil {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	removeChildren(e.node)
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// SetInnerHTML parses fragment in the context of e and replaces e's
// children with the result. It returns the new top-level elements.
func (e *Element) SetInnerHTML(fragment string) ([]*Element, error) {
	if e == nil {
		return nil, nil
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	nodes, err := html.ParseFragment(strings.NewReader(fragment), e.node)
	if err != nil {
		return nil, fmt.Errorf("parsing fragment for <%s>: %w", e.node.Data, err)
	}
	removeChildren(e.node)
	var added []*Element
	for _, n := range nodes {
		e.node.AppendChild(n)
		if n.Type == html.ElementNode {
			added = append(added, e.doc.wrap(n))
		}
	}
	return added, nil
}

// Children returns the element children.
func (e *Element) Children() []*Element {
	if e == nil {
		return nil
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// Find returns the first descendant carrying class.
func (e *Element) Find(class string) *Element {
	el, _ := e.QueryFirst(classSelector(class))
	return el
}

// FindAll returns every descendant carrying class.
func (e *Element) FindAll(class string) []*Element {
	els, _ := e.Query(classSelector(class))
	return els
}

// FindTag returns every descendant with the given tag name.
func (e *Element) FindTag(name string) []*Element {
	els, _ := e.Query(name)
	return els
}

// Query returns the descendants of e matching a CSS selector.
func (e *Element) Query(selector string) ([]*Element, error) {
	if e == nil {
		return nil, nil
	}
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.doc.wrapAll(cascadia.QueryAll(e.node, sel)), nil
}

// QueryFirst returns the first descendant of e matching a CSS selector.
func (e *Element) QueryFirst(selector string) (*Element, error) {
	if e == nil {
		return nil, nil
	}
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.doc.wrap(cascadia.Query(e.node, sel)), nil
}

// Closest walks up from e (inclusive) to the first element matching tag.
func (e *Element) Closest(tag string) *Element {
	if e == nil {
		return nil
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for n := e.node; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && n.Data == tag {
			return e.doc.wrap(n)
		}
	}
	return nil
}
