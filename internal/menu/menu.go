// Package menu implements the board-wide move menu.
//
// At most one task's move menu is open at a time. The open task id is a
// single value owned by the board view and read by every card; cards ask
// to open, close or select through the Coordinator instead of keeping
// their own flags.
package menu

import (
	"github.com/nibzard/doable-go/internal/board"
	"github.com/nibzard/doable-go/internal/pointer"
)

// Board is what the coordinator needs from the board store.
type Board interface {
	MoveTask(taskID string, from, to board.ColumnID)
	Locate(taskID string) (board.ColumnID, bool)
}

// Coordinator holds the Closed / OpenFor(task) state.
type Coordinator struct {
	board      Board
	dispatcher *pointer.Dispatcher

	openFor string
	trigger pointer.Rect
	region  pointer.Rect

	unsubscribe func()
}

// New creates a closed coordinator. When dispatcher is non-nil, presses
// outside the open menu and its trigger close the menu.
func New(b Board, dispatcher *pointer.Dispatcher) *Coordinator {
	return &Coordinator{board: b, dispatcher: dispatcher}
}

// OpenTask returns the task whose menu is open.
func (c *Coordinator) OpenTask() (string, bool) {
	return c.openFor, c.openFor != ""
}

// IsOpen reports whether taskID's menu is open.
func (c *Coordinator) IsOpen(taskID string) bool {
	return taskID != "" && c.openFor == taskID
}

// Toggle handles activation of taskID's move control. An open menu for
// the same task closes; otherwise any other menu is closed first and
// taskID's menu opens.
func (c *Coordinator) Toggle(taskID string) {
	if taskID == "" {
		return
	}
	if c.openFor == taskID {
		c.Close()
		return
	}
	c.Close()
	c.openFor = taskID
	c.listen()
}

// Select moves the open menu's task to target and closes the menu. It
// does nothing when no menu is open.
func (c *Coordinator) Select(target board.ColumnID) {
	taskID := c.openFor
	if taskID == "" {
		return
	}
	if from, ok := c.board.Locate(taskID); ok {
		c.board.MoveTask(taskID, from, target)
	}
	c.Close()
}

// Close closes any open menu.
func (c *Coordinator) Close() {
	c.openFor = ""
	c.trigger = pointer.Rect{}
	c.region = pointer.Rect{}
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// SetRegions records the screen areas of the open menu's trigger and
// option list, used for outside-press detection.
func (c *Coordinator) SetRegions(trigger, region pointer.Rect) {
	if c.openFor == "" {
		return
	}
	c.trigger = trigger
	c.region = region
}

// Options returns the columns the task can move to: every column except
// the one holding it.
func (c *Coordinator) Options(taskID string) []board.Column {
	current, ok := c.board.Locate(taskID)
	if !ok {
		return nil
	}
	var out []board.Column
	for _, col := range board.Columns() {
		if col.ID != current {
			out = append(out, col)
		}
	}
	return out
}

// Listening reports whether the outside-press listener is attached.
func (c *Coordinator) Listening() bool {
	return c.unsubscribe != nil
}

func (c *Coordinator) listen() {
	if c.dispatcher == nil || c.unsubscribe != nil {
		return
	}
	c.unsubscribe = c.dispatcher.Subscribe(c.handlePress, pointer.Press)
}

func (c *Coordinator) handlePress(ev pointer.Event) {
	if c.openFor == "" {
		return
	}
	if c.trigger.Contains(ev.X, ev.Y) || c.region.Contains(ev.X, ev.Y) {
		return
	}
	c.Close()
}
