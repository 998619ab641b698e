package ui

import (
	"github.com/nibzard/doable-go/internal/board"
	"github.com/nibzard/doable-go/internal/pointer"
)

// Screen geometry, in cells.
const (
	boardTop        = 2 // title row and a blank row
	footerHeight    = 2 // status row and key hints
	columnGap       = 1
	cardBaseHeight  = 5 // borders, title, description, move button
	minColumnHeight = 12
	minColumnWidth  = 16
	wheelStep       = 2

	defaultWidth  = 100
	defaultHeight = 30
)

// geometry is the board layout for one terminal size.
type geometry struct {
	colWidth  int
	colHeight int
}

func (m *Model) geometry() geometry {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	w := m.columnWidth
	if fit := (width - 2*columnGap) / len(board.Columns()); fit < w && fit >= minColumnWidth {
		w = fit
	}
	h := height - boardTop - footerHeight
	if h < minColumnHeight {
		h = minColumnHeight
	}
	return geometry{colWidth: w, colHeight: h}
}

// columnRect is the whole column box including its border.
func (g geometry) columnRect(i int) pointer.Rect {
	return pointer.Rect{
		X:      i * (g.colWidth + columnGap),
		Y:      boardTop,
		Width:  g.colWidth,
		Height: g.colHeight,
	}
}

// bodyRect is the scrollable card area inside a column. The todo column
// gives its last row to the add button.
func (g geometry) bodyRect(i int) pointer.Rect {
	r := g.columnRect(i)
	body := pointer.Rect{X: r.X + 1, Y: r.Y + 3, Width: r.Width - 2, Height: r.Height - 4}
	if board.Columns()[i].ID == board.ColumnTodo {
		body.Height--
	}
	return body
}

// addButtonRect is the "+ Add Task" row of the todo column.
func (g geometry) addButtonRect() pointer.Rect {
	r := g.columnRect(0)
	return pointer.Rect{X: r.X + 1, Y: r.Y + r.Height - 2, Width: r.Width - 2, Height: 1}
}

// cardWidth is the outer width of a card.
func (g geometry) cardWidth() int {
	return g.colWidth - 2
}

// boardWidth is the width of all columns side by side.
func (g geometry) boardWidth() int {
	n := len(board.Columns())
	return n*g.colWidth + (n-1)*columnGap
}

// columnAt returns the index of the column containing (x, y).
func (g geometry) columnAt(x, y int) (int, bool) {
	for i := range board.Columns() {
		if g.columnRect(i).Contains(x, y) {
			return i, true
		}
	}
	return 0, false
}

// slot is a card's place in its column's content, in content rows.
type slot struct {
	task    board.Task
	start   int
	height  int
	options []board.Column // non-nil while the card's move menu is open
}

// slots lays out the cards of column i top to bottom.
func (m *Model) slots(b board.Board, i int) []slot {
	id := board.Columns()[i].ID
	tasks := b.Tasks(id)
	out := make([]slot, 0, len(tasks))
	row := 0
	for _, t := range tasks {
		s := slot{task: t, start: row, height: cardBaseHeight}
		if m.menu.IsOpen(t.ID) {
			s.options = m.menu.Options(t.ID)
			s.height += len(s.options)
		}
		out = append(out, s)
		row += s.height
	}
	return out
}

// contentHeight is the height of all cards in column i.
func (m *Model) contentHeight(b board.Board, i int) int {
	slots := m.slots(b, i)
	if len(slots) == 0 {
		return 0
	}
	last := slots[len(slots)-1]
	return last.start + last.height
}

// cardRect is the screen rectangle of a card, possibly partly scrolled
// out of its column.
func (m *Model) cardRect(g geometry, i int, s slot) pointer.Rect {
	body := g.bodyRect(i)
	return pointer.Rect{
		X:      body.X,
		Y:      body.Y + s.start - m.views[i].offset,
		Width:  g.cardWidth(),
		Height: s.height,
	}
}

type hitKind int

const (
	hitNone hitKind = iota
	hitColumn
	hitCard
	hitDelete
	hitMove
	hitOption
	hitAdd
)

// hit is what lies under a screen cell.
type hit struct {
	kind   hitKind
	column int
	taskID string
	option board.ColumnID
	card   pointer.Rect
}

// hitTest resolves the cell at (x, y) against the current layout.
func (m *Model) hitTest(x, y int) hit {
	g := m.geometry()
	i, ok := g.columnAt(x, y)
	if !ok {
		return hit{kind: hitNone}
	}
	if board.Columns()[i].ID == board.ColumnTodo && g.addButtonRect().Contains(x, y) {
		return hit{kind: hitAdd, column: i}
	}
	body := g.bodyRect(i)
	if !body.Contains(x, y) {
		return hit{kind: hitColumn, column: i}
	}

	b := m.store.Snapshot()
	row := y - body.Y + m.views[i].offset
	localX := x - body.X
	for _, s := range m.slots(b, i) {
		if row < s.start || row >= s.start+s.height {
			continue
		}
		h := hit{kind: hitCard, column: i, taskID: s.task.ID, card: m.cardRect(g, i, s)}
		local := row - s.start
		inner := g.cardWidth() - 2
		switch {
		case local == 1 && localX >= inner-1 && localX <= inner:
			h.kind = hitDelete
		case local == 3 && localX >= 1 && localX <= inner:
			h.kind = hitMove
		case local >= 4 && local < 4+len(s.options) && localX >= 1 && localX <= inner:
			h.kind = hitOption
			h.option = s.options[local-4].ID
		}
		return h
	}
	return hit{kind: hitColumn, column: i}
}

// menuRegions returns the trigger row and option rows of the open menu.
func (m *Model) menuRegions() (trigger, region pointer.Rect, ok bool) {
	taskID, open := m.menu.OpenTask()
	if !open {
		return pointer.Rect{}, pointer.Rect{}, false
	}
	g := m.geometry()
	b := m.store.Snapshot()
	for i := range board.Columns() {
		for _, s := range m.slots(b, i) {
			if s.task.ID != taskID {
				continue
			}
			card := m.cardRect(g, i, s)
			trigger = pointer.Rect{X: card.X, Y: card.Y + 3, Width: card.Width, Height: 1}
			region = pointer.Rect{X: card.X, Y: card.Y + 4, Width: card.Width, Height: len(s.options)}
			return trigger, region, true
		}
	}
	return pointer.Rect{}, pointer.Rect{}, false
}

// columnView is the scroll state of one column.
type columnView struct {
	offset int
	limit  func() int
}

// ScrollTop implements scroll.Viewport.
func (v *columnView) ScrollTop() int {
	return v.offset
}

// SetScrollTop implements scroll.Viewport, clamping to the content.
func (v *columnView) SetScrollTop(offset int) {
	max := 0
	if v.limit != nil {
		max = v.limit()
	}
	if offset > max {
		offset = max
	}
	if offset < 0 {
		offset = 0
	}
	v.offset = offset
}
