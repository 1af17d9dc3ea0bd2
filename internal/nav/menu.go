package nav

import "folio.dev/internal/dom"

// EscapeKey is the key name that dismisses an open menu.
const EscapeKey = "Escape"

// Menu is the mobile navigation toggle. Its state lives in the markup:
// class "active" on the button and panel, plus aria-expanded on the button.
type Menu struct {
	button *dom.Element
	panel  *dom.Element
}

// NewMenu binds #hamburger and #nav-menu.
func NewMenu(doc *dom.Document) *Menu {
	return &Menu{
		button: doc.ByID("hamburger"),
		panel:  doc.ByID("nav-menu"),
	}
}

func (m *Menu) bound() bool {
	return m != nil && m.button != nil && m.panel != nil
}

func (m *Menu) IsOpen() bool {
	return m.bound() && m.panel.HasClass("active")
}

// Toggle opens a closed menu and closes an open one.
func (m *Menu) Toggle() {
	if !m.bound() {
		return
	}
	m.set(!m.button.HasClass("active"))
}

func (m *Menu) Close() {
	if !m.bound() {
		return
	}
	m.set(false)
}

// HandleKey closes the menu on Escape when it is open.
func (m *Menu) HandleKey(key string) {
	if key == EscapeKey && m.IsOpen() {
		m.Close()
	}
}

func (m *Menu) set(open bool) {
	m.button.SetClass("active", open)
	m.panel.SetClass("active", open)
	if open {
		m.button.SetAttr("aria-expanded", "true")
	} else {
		m.button.SetAttr("aria-expanded", "false")
	}
}
