// Package scroll emulates vertical scrolling from press-and-drag motion on
// a column.
//
// Terminals report a touch drag the same way as a mouse drag, so the same
// motion can mean "scroll this column" or "drag this card". The rule is:
// once a card drag has started, scroll emulation is suppressed until the
// drag ends. A press that never turns into a card drag scrolls.
package scroll

import "github.com/nibzard/doable-go/internal/pointer"

// Viewport is a scrollable surface. Implementations clamp the offset.
type Viewport interface {
	ScrollTop() int
	SetScrollTop(offset int)
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithSuppressor sets a function reporting whether another gesture owns
// the pointer. Move events are ignored while it returns true.
func WithSuppressor(fn func() bool) Option {
	return func(a *Adapter) {
		a.suppressed = fn
	}
}

// Adapter tracks press-and-drag motion over one column.
type Adapter struct {
	view       Viewport
	area       func() pointer.Rect
	suppressed func() bool

	tracking      bool
	startY        int
	initialOffset int

	unsubscribe func()
}

// New creates an adapter for view. area returns the column's current
// screen rectangle; presses outside it are ignored.
func New(view Viewport, area func() pointer.Rect, opts ...Option) *Adapter {
	a := &Adapter{view: view, area: area}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Mount attaches the adapter's listeners. Mounting an already mounted
// adapter first detaches the old listeners.
func (a *Adapter) Mount(d *pointer.Dispatcher) {
	a.Unmount()
	a.unsubscribe = d.Subscribe(a.handle, pointer.Press, pointer.Move, pointer.Release)
}

// Unmount detaches the listeners and forgets any tracked press.
func (a *Adapter) Unmount() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	a.tracking = false
}

// Mounted reports whether the listeners are attached.
func (a *Adapter) Mounted() bool {
	return a.unsubscribe != nil
}

// Tracking reports whether a press is being tracked.
func (a *Adapter) Tracking() bool {
	return a.tracking
}

func (a *Adapter) handle(ev pointer.Event) {
	switch ev.Kind {
	case pointer.Press:
		a.start(ev)
	case pointer.Move:
		a.move(ev)
	case pointer.Release:
		a.tracking = false
	}
}

func (a *Adapter) start(ev pointer.Event) {
	if a.area != nil && !a.area().Contains(ev.X, ev.Y) {
		a.tracking = false
		return
	}
	a.tracking = true
	a.startY = ev.Y
	a.initialOffset = a.view.ScrollTop()
}

func (a *Adapter) move(ev pointer.Event) {
	if !a.tracking {
		return
	}
	if a.suppressed != nil && a.suppressed() {
		return
	}
	delta := a.startY - ev.Y
	a.view.SetScrollTop(a.initialOffset + delta)
}
