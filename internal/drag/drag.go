// Package drag turns pointer gestures on task cards into move intents.
//
// A gesture starts on a card, travels over columns and ends with a drop
// on a column or a cancel outside any column. Each column tracks only its
// own hover flag; the columns share one transfer payload per gesture.
//
// The controller never edits the board. A completed drop becomes a single
// MoveTask call on the Mover, which ignores stale or same-column moves.
package drag

import (
	"github.com/nibzard/doable-go/internal/board"
	"github.com/nibzard/doable-go/internal/pointer"
)

// Mover applies a move intent.
type Mover interface {
	MoveTask(taskID string, from, to board.ColumnID)
}

// Payload is the data carried from the source card to the drop target.
type Payload struct {
	TaskID string
	Source board.ColumnID
}

// Proxy is the transient image of the dragged card. It has the card's
// size and keeps the pointer at the same offset it had within the card.
type Proxy struct {
	TaskID           string
	Width, Height    int
	OffsetX, OffsetY int
	X, Y             int
	attached         bool
}

// Anchor places the proxy so the pointer at (px, py) keeps its offset.
func (p *Proxy) Anchor(px, py int) {
	p.X = px - p.OffsetX
	p.Y = py - p.OffsetY
}

// Attached reports whether the proxy is still attached to the view.
func (p Proxy) Attached() bool {
	return p.attached
}

func (p *Proxy) detach() {
	p.attached = false
}

// Gesture is one drag from gesture start to drop or cancel.
type Gesture struct {
	payload *Payload
	proxy   *Proxy
}

// Payload returns the transfer payload, or false once the gesture ended.
func (g *Gesture) Payload() (Payload, bool) {
	if g == nil || g.payload == nil {
		return Payload{}, false
	}
	return *g.payload, true
}

// Proxy returns the gesture's proxy.
func (g *Gesture) Proxy() Proxy {
	return *g.proxy
}

// Position returns where the proxy's top-left corner belongs when the
// pointer is at (px, py).
func (g *Gesture) Position(px, py int) (x, y int) {
	return px - g.proxy.OffsetX, py - g.proxy.OffsetY
}

// Column is the per-column drop target state.
type Column struct {
	ID          board.ColumnID
	hoverActive bool
}

// HoverActive reports whether a dragged card is over this column.
func (c *Column) HoverActive() bool {
	return c.hoverActive
}

// Option configures a Controller.
type Option func(*Controller)

// WithProxyCapture sets the function that captures the proxy for
// rendering. The proxy is detached as soon as it returns.
func WithProxyCapture(fn func(Proxy)) Option {
	return func(c *Controller) {
		c.capture = fn
	}
}

// Controller coordinates drag gestures across the board's columns.
type Controller struct {
	mover   Mover
	columns []*Column
	active  *Gesture
	capture func(Proxy)
}

// NewController creates a controller with one drop target per column.
func NewController(mover Mover, opts ...Option) *Controller {
	c := &Controller{mover: mover}
	for _, col := range board.Columns() {
		c.columns = append(c.columns, &Column{ID: col.ID})
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins a gesture on the card of taskID in source. card is the
// card's screen rectangle and (px, py) the pointer position. Any gesture
// still in progress is abandoned.
func (c *Controller) Start(taskID string, source board.ColumnID, card pointer.Rect, px, py int) *Gesture {
	c.Cancel()

	proxy := &Proxy{
		TaskID:   taskID,
		Width:    card.Width,
		Height:   card.Height,
		OffsetX:  px - card.X,
		OffsetY:  py - card.Y,
		attached: true,
	}
	proxy.Anchor(px, py)
	if c.capture != nil {
		c.capture(*proxy)
	}
	proxy.detach()

	g := &Gesture{
		payload: &Payload{TaskID: taskID, Source: source},
		proxy:   proxy,
	}
	c.active = g
	return g
}

// Active returns the gesture in progress, if any.
func (c *Controller) Active() (*Gesture, bool) {
	return c.active, c.active != nil
}

// Dragging reports whether a gesture is in progress.
func (c *Controller) Dragging() bool {
	return c.active != nil
}

// Over marks the column as hovered and reports whether a drop is allowed.
func (c *Controller) Over(id board.ColumnID) bool {
	col := c.column(id)
	if col == nil || c.active == nil {
		return false
	}
	col.hoverActive = true
	return true
}

// Leave clears the column's hover flag.
func (c *Controller) Leave(id board.ColumnID) {
	if col := c.column(id); col != nil {
		col.hoverActive = false
	}
}

// Drop ends the gesture on the target column. It reports whether a move
// intent was issued.
func (c *Controller) Drop(target board.ColumnID) bool {
	g := c.finish()
	payload, ok := g.Payload()
	if g != nil {
		g.payload = nil
	}
	if !ok || payload.TaskID == "" || payload.Source == target || !target.Valid() {
		return false
	}
	c.mover.MoveTask(payload.TaskID, payload.Source, target)
	return true
}

// Cancel ends the gesture without a move, as for a drop outside any
// column.
func (c *Controller) Cancel() {
	if g := c.finish(); g != nil {
		g.payload = nil
	}
}

// Hovered returns the column currently marked as hovered.
func (c *Controller) Hovered() (board.ColumnID, bool) {
	for _, col := range c.columns {
		if col.hoverActive {
			return col.ID, true
		}
	}
	return "", false
}

// Column returns the drop target state for id.
func (c *Controller) Column(id board.ColumnID) *Column {
	return c.column(id)
}

func (c *Controller) column(id board.ColumnID) *Column {
	for _, col := range c.columns {
		if col.ID == id {
			return col
		}
	}
	return nil
}

// finish detaches the active gesture and clears every hover flag.
func (c *Controller) finish() *Gesture {
	g := c.active
	c.active = nil
	for _, col := range c.columns {
		col.hoverActive = false
	}
	return g
}
