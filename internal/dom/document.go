// Package dom holds the page markup as a mutable HTML tree.
//
// Every read and write goes through the owning Document's lock, so section
// renderers running in parallel can replace their containers while the
// navigation and animation code toggles classes elsewhere in the tree.
package dom

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Document is a parsed HTML page.
type Document struct {
	mu   sync.Mutex
	root *html.Node
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Render writes the current tree as HTML.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("rendering document: %w", err)
	}
	return nil
}

// String renders the document, returning "" on failure.
func (d *Document) String() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

// ByID returns the element with the given id, or nil.
func (d *Document) ByID(id string) *Element {
	return d.QueryFirstOrNil(fmt.Sprintf("[id=%q]", id))
}

// First returns the first element carrying class, or nil.
func (d *Document) First(class string) *Element {
	return d.QueryFirstOrNil(classSelector(class))
}

// All returns every element carrying class, in document order.
func (d *Document) All(class string) []*Element {
	els, _ := d.Query(classSelector(class))
	return els
}

// Tag returns every element with the given tag name, in document order.
func (d *Document) Tag(name string) []*Element {
	els, _ := d.Query(name)
	return els
}

// NthChild returns the elements carrying class that are the n-th (1-based)
// element child of their parent, like the CSS ".class:nth-child(n)".
func (d *Document) NthChild(class string, n int) []*Element {
	els, _ := d.Query(fmt.Sprintf("%s:nth-child(%d)", classSelector(class), n))
	return els
}

// Query returns every element matching a CSS selector, in document order.
func (d *Document) Query(selector string) ([]*Element, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.wrapAll(cascadia.QueryAll(d.root, sel)), nil
}

// QueryFirst returns the first element matching a CSS selector. A valid
// selector without a match yields a nil element and no error.
func (d *Document) QueryFirst(selector string) (*Element, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.wrap(cascadia.Query(d.root, sel)), nil
}

// QueryFirstOrNil is QueryFirst with selector errors folded into nil.
func (d *Document) QueryFirstOrNil(selector string) *Element {
	el, _ := d.QueryFirst(selector)
	return el
}

// Attached reports whether el is still part of the tree. Elements removed
// by SetInnerHTML or SetText on an ancestor are detached.
func (d *Document) Attached(el *Element) bool {
	if el == nil || el.doc != d {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for n := el.node; n != nil; n = n.Parent {
		if n == d.root {
			return true
		}
	}
	return false
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	return &Element{doc: d, node: n}
}

func (d *Document) wrapAll(nodes []*html.Node) []*Element {
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, d.wrap(n))
	}
	return out
}

var selectors sync.Map // string -> cascadia.Selector

func compile(selector string) (cascadia.Selector, error) {
	if sel, ok := selectors.Load(selector); ok {
		return sel.(cascadia.Selector), nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("compiling selector %q: %w", selector, err)
	}
	selectors.Store(selector, sel)
	return sel, nil
}

func classSelector(class string) string {
	return "." + class
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
