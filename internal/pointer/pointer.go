// Package pointer routes pointer events to listeners with scoped lifetimes.
//
// Views subscribe when they mount and call the returned unsubscribe
// function when they unmount. Unsubscribing more than once is harmless;
// only the first call removes the listener.
package pointer

import "sync"

// Kind is the type of a pointer event.
type Kind int

const (
	Press Kind = iota
	Move
	Release
	WheelUp
	WheelDown
)

func (k Kind) String() string {
	switch k {
	case Press:
		return "press"
	case Move:
		return "move"
	case Release:
		return "release"
	case WheelUp:
		return "wheel-up"
	case WheelDown:
		return "wheel-down"
	}
	return "unknown"
}

// Event is a pointer event in screen cells.
type Event struct {
	Kind Kind
	X, Y int
}

// Rect is a screen rectangle in cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell at (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Handler receives dispatched events.
type Handler func(Event)

type listener struct {
	id      uint64
	kinds   map[Kind]bool
	handler Handler
}

// Dispatcher fans pointer events out to subscribed listeners in
// subscription order.
type Dispatcher struct {
	mu        sync.Mutex
	nextID    uint64
	listeners []listener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe registers handler for the given kinds, or for every kind when
// none are given. The returned function removes the listener exactly once.
func (d *Dispatcher) Subscribe(handler Handler, kinds ...Kind) (unsubscribe func()) {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	var set map[Kind]bool
	if len(kinds) > 0 {
		set = make(map[Kind]bool, len(kinds))
		for _, k := range kinds {
			set[k] = true
		}
	}
	d.listeners = append(d.listeners, listener{id: id, kinds: set, handler: handler})
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { d.remove(id) })
	}
}

func (d *Dispatcher) remove(id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, l := range d.listeners {
		if l.id == id {
			d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Dispatch delivers ev to every listener subscribed to its kind. Listeners
// removed by an earlier handler during the same dispatch are skipped.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.Lock()
	snapshot := make([]listener, len(d.listeners))
	copy(snapshot, d.listeners)
	d.mu.Unlock()

	for _, l := range snapshot {
		if l.kinds != nil && !l.kinds[ev.Kind] {
			continue
		}
		if !d.subscribed(l.id) {
			continue
		}
		l.handler(ev)
	}
}

func (d *Dispatcher) subscribed(id uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, l := range d.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

// Len returns the number of live listeners.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}
