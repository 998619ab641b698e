package drag

import (
	"testing"

	"github.com/nibzard/doable-go/internal/board"
	"github.com/nibzard/doable-go/internal/pointer"
)

type moveCall struct {
	taskID   string
	from, to board.ColumnID
}

type fakeMover struct {
	calls []moveCall
}

func (f *fakeMover) MoveTask(taskID string, from, to board.ColumnID) {
	f.calls = append(f.calls, moveCall{taskID, from, to})
}

func TestStartBuildsDetachedProxy(t *testing.T) {
	var captured []Proxy
	c := NewController(&fakeMover{}, WithProxyCapture(func(p Proxy) {
		captured = append(captured, p)
	}))

	card := pointer.Rect{X: 10, Y: 5, Width: 20, Height: 4}
	g := c.Start("t1", board.ColumnTodo, card, 14, 6)

	if len(captured) != 1 {
		t.Fatalf("captures: got %d, want 1", len(captured))
	}
	p := captured[0]
	if !p.Attached() {
		t.Error("proxy should be attached while captured")
	}
	if p.Width != 20 || p.Height != 4 {
		t.Errorf("size: got %dx%d, want 20x4", p.Width, p.Height)
	}
	if p.OffsetX != 4 || p.OffsetY != 1 {
		t.Errorf("offset: got (%d, %d), want (4, 1)", p.OffsetX, p.OffsetY)
	}
	if p.X != 10 || p.Y != 5 {
		t.Errorf("anchor: got (%d, %d), want (10, 5)", p.X, p.Y)
	}
	if g.Proxy().Attached() {
		t.Error("proxy should be detached after capture")
	}
	if x, y := g.Position(30, 12); x != 26 || y != 11 {
		t.Errorf("Position: got (%d, %d), want (26, 11)", x, y)
	}
	payload, ok := g.Payload()
	if !ok || payload.TaskID != "t1" || payload.Source != board.ColumnTodo {
		t.Errorf("payload: got %+v (%v)", payload, ok)
	}
}

func TestDropMovesAcrossColumns(t *testing.T) {
	m := &fakeMover{}
	c := NewController(m)

	c.Start("t1", board.ColumnTodo, pointer.Rect{Width: 10, Height: 3}, 1, 1)
	if !c.Over(board.ColumnDoing) {
		t.Fatal("Over should allow a move during a gesture")
	}
	if !c.Column(board.ColumnDoing).HoverActive() {
		t.Error("doing should be hovered")
	}
	if !c.Drop(board.ColumnDoing) {
		t.Fatal("Drop should issue a move")
	}

	want := []moveCall{{"t1", board.ColumnTodo, board.ColumnDoing}}
	if len(m.calls) != 1 || m.calls[0] != want[0] {
		t.Errorf("calls: got %+v, want %+v", m.calls, want)
	}
	if _, ok := c.Hovered(); ok {
		t.Error("hover flags should be cleared after drop")
	}
	if c.Dragging() {
		t.Error("gesture should end on drop")
	}
}

func TestDropNoOps(t *testing.T) {
	tests := []struct {
		name  string
		start bool
		drop  board.ColumnID
	}{
		{"same column", true, board.ColumnTodo},
		{"unknown column", true, "archive"},
		{"no gesture", false, board.ColumnDone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeMover{}
			c := NewController(m)
			if tt.start {
				c.Start("t1", board.ColumnTodo, pointer.Rect{Width: 5, Height: 3}, 0, 0)
				c.Over(board.ColumnTodo)
			}
			if c.Drop(tt.drop) {
				t.Error("Drop should report no move")
			}
			if len(m.calls) != 0 {
				t.Errorf("calls: got %+v, want none", m.calls)
			}
			if _, ok := c.Hovered(); ok {
				t.Error("hover flags should be cleared")
			}
		})
	}
}

func TestOverWithoutGesture(t *testing.T) {
	c := NewController(&fakeMover{})
	if c.Over(board.ColumnDone) {
		t.Error("Over should refuse without a gesture")
	}
	if c.Column(board.ColumnDone).HoverActive() {
		t.Error("column should not be hovered")
	}
}

func TestLeaveClearsOnlyThatColumn(t *testing.T) {
	c := NewController(&fakeMover{})
	c.Start("t1", board.ColumnTodo, pointer.Rect{Width: 5, Height: 3}, 0, 0)
	c.Over(board.ColumnDoing)
	c.Over(board.ColumnDone)
	c.Leave(board.ColumnDoing)

	if c.Column(board.ColumnDoing).HoverActive() {
		t.Error("doing should not be hovered after leave")
	}
	if !c.Column(board.ColumnDone).HoverActive() {
		t.Error("done should still be hovered")
	}
}

func TestCancelDiscardsPayload(t *testing.T) {
	m := &fakeMover{}
	c := NewController(m)
	g := c.Start("t1", board.ColumnTodo, pointer.Rect{Width: 5, Height: 3}, 0, 0)
	c.Over(board.ColumnDone)
	c.Cancel()

	if _, ok := g.Payload(); ok {
		t.Error("payload should be discarded on cancel")
	}
	if c.Drop(board.ColumnDone) {
		t.Error("drop after cancel should not move")
	}
	if len(m.calls) != 0 {
		t.Errorf("calls: got %+v, want none", m.calls)
	}
}

func TestSequentialGesturesDoNotLeak(t *testing.T) {
	m := &fakeMover{}
	c := NewController(m)

	first := c.Start("t1", board.ColumnTodo, pointer.Rect{Width: 5, Height: 3}, 0, 0)
	second := c.Start("t2", board.ColumnDoing, pointer.Rect{Width: 5, Height: 3}, 0, 0)

	if _, ok := first.Payload(); ok {
		t.Error("starting a new gesture should abandon the previous payload")
	}
	c.Drop(board.ColumnDone)
	if _, ok := second.Payload(); ok {
		t.Error("payload should be consumed by drop")
	}

	c.Start("t3", board.ColumnDone, pointer.Rect{Width: 5, Height: 3}, 0, 0)
	c.Drop(board.ColumnTodo)

	want := []moveCall{
		{"t2", board.ColumnDoing, board.ColumnDone},
		{"t3", board.ColumnDone, board.ColumnTodo},
	}
	if len(m.calls) != len(want) {
		t.Fatalf("calls: got %+v, want %+v", m.calls, want)
	}
	for i := range want {
		if m.calls[i] != want[i] {
			t.Errorf("call %d: got %+v, want %+v", i, m.calls[i], want[i])
		}
	}
}

func TestDropAfterTaskDeletedIsSafe(t *testing.T) {
	var notified int
	store := board.NewStore(board.New(map[board.ColumnID][]board.Task{
		board.ColumnTodo: {{ID: "t1", Title: "X"}},
	}), board.WithOnChange(func(board.Board) { notified++ }))
	c := NewController(store)

	c.Start("t1", board.ColumnTodo, pointer.Rect{Width: 5, Height: 3}, 0, 0)
	store.DeleteTask("t1")
	notified = 0
	c.Over(board.ColumnDoing)
	c.Drop(board.ColumnDoing)

	if got := store.Snapshot().Len(); got != 0 {
		t.Errorf("board size: got %d, want 0", got)
	}
	if notified != 0 {
		t.Errorf("notifications after drop: got %d, want 0", notified)
	}
}

func TestDropOutsideLeavesBoardUnchanged(t *testing.T) {
	seed := board.New(map[board.ColumnID][]board.Task{
		board.ColumnTodo: {{ID: "t1", Title: "X"}},
	})
	var notified int
	store := board.NewStore(seed, board.WithOnChange(func(board.Board) { notified++ }))
	c := NewController(store)

	c.Start("t1", board.ColumnTodo, pointer.Rect{Width: 5, Height: 3}, 0, 0)
	c.Over(board.ColumnDoing)
	c.Leave(board.ColumnDoing)
	c.Cancel()

	if !store.Snapshot().Equal(seed) {
		t.Errorf("board changed: %v", store.Snapshot().Map())
	}
	if notified != 0 {
		t.Errorf("notifications: got %d, want 0", notified)
	}
}
