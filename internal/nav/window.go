package nav

import "sync"

// Behavior is the scroll animation style.
type Behavior string

const (
	BehaviorInstant Behavior = "instant"
	BehaviorSmooth  Behavior = "smooth"
)

// Scroller moves the window.
type Scroller interface {
	ScrollTo(top int, behavior Behavior)
}

// Window is the scroll state of a page. Scrolling notifies the registered
// listeners, the way the browser fires "scroll" events.
type Window struct {
	mu        sync.Mutex
	scrollY   int
	height    int
	behavior  Behavior
	listeners []func(scrollY int)
}

func NewWindow(height int) *Window {
	return &Window{height: height, behavior: BehaviorInstant}
}

// OnScroll registers a scroll listener.
func (w *Window) OnScroll(fn func(scrollY int)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

// ScrollTo moves to top, clamped at zero, and fires the scroll listeners.
func (w *Window) ScrollTo(top int, behavior Behavior) {
	if top < 0 {
		top = 0
	}
	w.mu.Lock()
	w.scrollY = top
	w.behavior = behavior
	listeners := append([]func(int){}, w.listeners...)
	w.mu.Unlock()

	for _, fn := range listeners {
		fn(top)
	}
}

func (w *Window) ScrollY() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scrollY
}

func (w *Window) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

// LastBehavior is the behavior of the most recent ScrollTo.
func (w *Window) LastBehavior() Behavior {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.behavior
}
