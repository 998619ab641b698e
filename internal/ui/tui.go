// Package ui is the terminal board view.
//
// The model owns the view state only: selection, scroll offsets, the drag
// controller, the move menu and the editor. Every change to the board goes
// through the board store, and the view re-reads the store's snapshot when
// it renders.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/doable-go/internal/board"
	"github.com/nibzard/doable-go/internal/drag"
	"github.com/nibzard/doable-go/internal/menu"
	"github.com/nibzard/doable-go/internal/pointer"
	"github.com/nibzard/doable-go/internal/scroll"
)

// New task defaults used by the add button.
const (
	NewTaskTitle       = "New Task"
	NewTaskDescription = "Click to edit this task"
)

// Options configures the board view.
type Options struct {
	ColumnWidth int
	Mouse       bool
	Logger      *log.Logger
}

// RunTUI runs the board view until the user quits or ctx is done.
func RunTUI(ctx context.Context, store *board.Store, opts Options) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	return runProgram(ctx, NewModel(store, opts), opts.Mouse)
}

func runProgram(ctx context.Context, model *Model, mouse bool) error {
	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(model, programOpts...)
	_, err := program.Run()
	model.unmount()
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// pendingPress is a press on a card that has not moved yet. It becomes a
// drag on the first motion, or a click on release.
type pendingPress struct {
	taskID string
	column board.ColumnID
	card   pointer.Rect
	x, y   int
}

// Model is the bubbletea model of the board view.
type Model struct {
	store       *board.Store
	logger      *log.Logger
	columnWidth int

	pointer *pointer.Dispatcher
	drag    *drag.Controller
	menu    *menu.Coordinator
	views   []*columnView
	scrolls []*scroll.Adapter
	unwheel func()

	width, height int

	selCol int
	selIdx int

	press    *pendingPress
	proxy    []string
	px, py   int
	editor   *editor
	showHelp bool
	status   string
	quitting bool
}

// NewModel creates the board view for store.
func NewModel(store *board.Store, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	width := opts.ColumnWidth
	if width < minColumnWidth {
		width = minColumnWidth
	}

	m := &Model{
		store:       store,
		logger:      logger,
		columnWidth: width,
		pointer:     pointer.NewDispatcher(),
	}
	m.drag = drag.NewController(store, drag.WithProxyCapture(m.captureProxy))
	m.menu = menu.New(store, m.pointer)
	for i := range board.Columns() {
		v := &columnView{}
		v.limit = func() int {
			max := m.contentHeight(m.store.Snapshot(), i) - m.geometry().bodyRect(i).Height
			if max < 0 {
				return 0
			}
			return max
		}
		m.views = append(m.views, v)
		m.scrolls = append(m.scrolls, scroll.New(v,
			func() pointer.Rect { return m.geometry().columnRect(i) },
			scroll.WithSuppressor(m.drag.Dragging),
		))
	}
	return m
}

// mount attaches the column scroll adapters and the wheel listener.
func (m *Model) mount() {
	for _, a := range m.scrolls {
		a.Mount(m.pointer)
	}
	if m.unwheel == nil {
		m.unwheel = m.pointer.Subscribe(m.handleWheel, pointer.WheelUp, pointer.WheelDown)
	}
}

// unmount detaches every pointer listener the view attached.
func (m *Model) unmount() {
	for _, a := range m.scrolls {
		a.Unmount()
	}
	if m.unwheel != nil {
		m.unwheel()
		m.unwheel = nil
	}
	m.drag.Cancel()
	m.menu.Close()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.mount()
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampScroll()
		return m, nil
	case tea.MouseMsg:
		if m.editor != nil {
			return m, nil
		}
		if ev, ok := pointerEvent(msg); ok {
			m.handlePointer(ev)
		}
		return m, nil
	case tea.KeyMsg:
		if m.editor != nil {
			return m, m.updateEditor(msg)
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.unmount()
	return tea.Quit
}

// pointerEvent translates a terminal mouse message.
func pointerEvent(msg tea.MouseMsg) (pointer.Event, bool) {
	ev := pointer.Event{X: msg.X, Y: msg.Y}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		ev.Kind = pointer.WheelUp
	case msg.Button == tea.MouseButtonWheelDown:
		ev.Kind = pointer.WheelDown
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		ev.Kind = pointer.Press
	case msg.Action == tea.MouseActionMotion:
		ev.Kind = pointer.Move
	case msg.Action == tea.MouseActionRelease:
		ev.Kind = pointer.Release
	default:
		return pointer.Event{}, false
	}
	return ev, true
}

func (m *Model) handlePointer(ev pointer.Event) {
	switch ev.Kind {
	case pointer.Press:
		m.handlePress(ev)
	case pointer.Move:
		m.handleMove(ev)
	case pointer.Release:
		m.handleRelease(ev)
	default:
		m.pointer.Dispatch(ev)
	}
}

func (m *Model) handlePress(ev pointer.Event) {
	// Resolve against the layout the user saw before listeners react.
	h := m.hitTest(ev.X, ev.Y)
	if trigger, region, ok := m.menuRegions(); ok {
		m.menu.SetRegions(trigger, region)
	}
	m.press = nil
	m.pointer.Dispatch(ev)

	col := board.Columns()[h.column].ID
	switch h.kind {
	case hitDelete:
		m.deleteTask(col, h.taskID)
	case hitMove:
		m.selectTask(h.taskID)
		m.menu.Toggle(h.taskID)
		m.logger.Debug("move menu toggled", "task", h.taskID, "open", m.menu.IsOpen(h.taskID))
	case hitOption:
		taskID, _ := m.menu.OpenTask()
		m.menu.Select(h.option)
		m.afterMove(taskID, h.option)
	case hitAdd:
		m.addTask()
	case hitCard:
		m.selectTask(h.taskID)
		m.press = &pendingPress{taskID: h.taskID, column: col, card: h.card, x: ev.X, y: ev.Y}
	}
}

func (m *Model) handleMove(ev pointer.Event) {
	if p := m.press; p != nil && !m.drag.Dragging() && (ev.X != p.x || ev.Y != p.y) {
		m.press = nil
		m.menu.Close()
		m.drag.Start(p.taskID, p.column, p.card, p.x, p.y)
		m.logger.Debug("drag started", "task", p.taskID, "from", p.column)
	}
	m.px, m.py = ev.X, ev.Y
	m.pointer.Dispatch(ev)

	if !m.drag.Dragging() {
		return
	}
	g := m.geometry()
	over, inside := g.columnAt(ev.X, ev.Y)
	for i, col := range board.Columns() {
		if inside && i == over {
			m.drag.Over(col.ID)
		} else {
			m.drag.Leave(col.ID)
		}
	}
}

func (m *Model) handleRelease(ev pointer.Event) {
	m.pointer.Dispatch(ev)

	if g, ok := m.drag.Active(); ok {
		payload, _ := g.Payload()
		if i, inside := m.geometry().columnAt(ev.X, ev.Y); inside {
			target := board.Columns()[i].ID
			if m.drag.Drop(target) {
				m.afterMove(payload.TaskID, target)
			}
		} else {
			m.drag.Cancel()
			m.logger.Debug("drag cancelled", "task", payload.TaskID)
		}
		m.proxy = nil
		return
	}

	if p := m.press; p != nil {
		m.press = nil
		m.openEditor(p.taskID)
	}
}

func (m *Model) handleWheel(ev pointer.Event) {
	i, ok := m.geometry().columnAt(ev.X, ev.Y)
	if !ok {
		return
	}
	v := m.views[i]
	switch ev.Kind {
	case pointer.WheelUp:
		v.SetScrollTop(v.ScrollTop() - wheelStep)
	case pointer.WheelDown:
		v.SetScrollTop(v.ScrollTop() + wheelStep)
	}
}

// captureProxy renders the dragged card's image when a drag starts.
func (m *Model) captureProxy(p drag.Proxy) {
	task, _, ok := m.store.Snapshot().Find(p.TaskID)
	if !ok {
		m.proxy = nil
		return
	}
	m.proxy = renderCard(task, p.Width, cardDragging, nil)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if m.showHelp && key != "ctrl+c" && key != "q" {
		m.showHelp = false
		return nil
	}

	switch key {
	case "ctrl+c", "q":
		return m.quit()
	case "?":
		m.showHelp = true
	case "esc":
		if m.drag.Dragging() {
			m.drag.Cancel()
			m.proxy = nil
		}
		m.menu.Close()
	case "left", "h":
		m.moveSelection(-1, 0)
	case "right", "l":
		m.moveSelection(1, 0)
	case "up", "k":
		m.moveSelection(0, -1)
	case "down", "j":
		m.moveSelection(0, 1)
	case "a":
		m.addTask()
	case "x", "delete":
		if t, ok := m.selected(); ok {
			m.deleteTask(t.Status, t.ID)
		}
	case "e", "enter":
		if t, ok := m.selected(); ok {
			m.openEditor(t.ID)
		}
	case "m":
		if t, ok := m.selected(); ok {
			m.menu.Toggle(t.ID)
		}
	case "1", "2", "3":
		m.selectMenuOption(int(key[0] - '1'))
	case "H":
		m.shiftSelected(-1)
	case "L":
		m.shiftSelected(1)
	}
	return nil
}

// selected returns the task under the keyboard cursor.
func (m *Model) selected() (board.Task, bool) {
	tasks := m.store.Snapshot().Tasks(board.Columns()[m.selCol].ID)
	if m.selIdx < 0 || m.selIdx >= len(tasks) {
		return board.Task{}, false
	}
	return tasks[m.selIdx], true
}

func (m *Model) moveSelection(dCol, dIdx int) {
	n := len(board.Columns())
	m.selCol = (m.selCol + dCol + n) % n
	m.selIdx += dIdx
	m.clampSelection()
	m.ensureVisible()
}

// selectTask moves the cursor to taskID wherever it is.
func (m *Model) selectTask(taskID string) {
	b := m.store.Snapshot()
	for i, col := range board.Columns() {
		for j, t := range b.Tasks(col.ID) {
			if t.ID == taskID {
				m.selCol, m.selIdx = i, j
				m.ensureVisible()
				return
			}
		}
	}
}

func (m *Model) clampSelection() {
	count := m.store.Snapshot().Count(board.Columns()[m.selCol].ID)
	if m.selIdx >= count {
		m.selIdx = count - 1
	}
	if m.selIdx < 0 {
		m.selIdx = 0
	}
}

// ensureVisible scrolls the selected column so the cursor card shows.
func (m *Model) ensureVisible() {
	slots := m.slots(m.store.Snapshot(), m.selCol)
	if m.selIdx < 0 || m.selIdx >= len(slots) {
		return
	}
	s := slots[m.selIdx]
	v := m.views[m.selCol]
	bodyHeight := m.geometry().bodyRect(m.selCol).Height
	switch {
	case s.start < v.offset:
		v.SetScrollTop(s.start)
	case s.start+s.height > v.offset+bodyHeight:
		v.SetScrollTop(s.start + s.height - bodyHeight)
	}
}

func (m *Model) clampScroll() {
	for _, v := range m.views {
		v.SetScrollTop(v.offset)
	}
}

func (m *Model) addTask() {
	task := m.store.NewTask(NewTaskTitle, NewTaskDescription)
	m.store.AddTask(board.ColumnTodo, task)
	m.selectTask(task.ID)
	m.status = "Added " + task.Title
	m.logger.Info("task added", "task", task.ID)
}

func (m *Model) deleteTask(col board.ColumnID, taskID string) {
	task, _, ok := m.store.Snapshot().Find(taskID)
	if !ok {
		return
	}
	m.store.DeleteTaskIn(col, taskID)
	if _, still := m.store.Locate(taskID); still {
		return
	}
	if m.menu.IsOpen(taskID) {
		m.menu.Close()
	}
	m.clampSelection()
	m.clampScroll()
	m.status = "Deleted " + task.Title
	m.logger.Info("task deleted", "task", taskID, "column", col)
}

// afterMove follows a task the board may have moved to target.
func (m *Model) afterMove(taskID string, target board.ColumnID) {
	if col, ok := m.store.Locate(taskID); !ok || col != target {
		return
	}
	task, _, _ := m.store.Snapshot().Find(taskID)
	m.selectTask(taskID)
	m.clampScroll()
	m.status = fmt.Sprintf("Moved %s to %s", task.Title, target.Title())
	m.logger.Info("task moved", "task", taskID, "to", target)
}

func (m *Model) selectMenuOption(n int) {
	taskID, ok := m.menu.OpenTask()
	if !ok {
		return
	}
	options := m.menu.Options(taskID)
	if n < 0 || n >= len(options) {
		return
	}
	m.menu.Select(options[n].ID)
	m.afterMove(taskID, options[n].ID)
}

// shiftSelected moves the selected task one column left or right.
func (m *Model) shiftSelected(delta int) {
	t, ok := m.selected()
	if !ok {
		return
	}
	target := m.selCol + delta
	if target < 0 || target >= len(board.Columns()) {
		return
	}
	to := board.Columns()[target].ID
	m.store.MoveTask(t.ID, t.Status, to)
	m.afterMove(t.ID, to)
}

func (m *Model) openEditor(taskID string) {
	task, _, ok := m.store.Snapshot().Find(taskID)
	if !ok {
		return
	}
	m.menu.Close()
	m.editor = newEditor(task, m.geometry().colWidth*2)
}

func (m *Model) updateEditor(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	result, cmd := m.editor.update(msg)
	switch result {
	case editorSave:
		updated := m.editor.task()
		m.editor = nil
		if updated.Title == "" {
			m.status = "Title cannot be empty"
			return nil
		}
		before := m.store.Snapshot()
		m.store.EditTask(updated)
		if !m.store.Snapshot().Equal(before) {
			m.selectTask(updated.ID)
			m.clampScroll()
			m.status = "Saved " + updated.Title
			m.logger.Info("task edited", "task", updated.ID, "status", updated.Status)
		}
		return nil
	case editorCancel:
		m.editor = nil
		return nil
	}
	return cmd
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
