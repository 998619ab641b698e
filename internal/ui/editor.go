package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/doable-go/internal/board"
)

type editorField int

const (
	fieldTitle editorField = iota
	fieldDescription
	fieldStatus
	fieldCount
)

// editor edits one task's title, description and column.
type editor struct {
	taskID      string
	title       textinput.Model
	description textinput.Model
	status      int // index into board.Columns()
	focus       editorField
}

func newEditor(t board.Task, width int) *editor {
	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "Title"
	title.CharLimit = 120
	title.Width = width
	title.SetValue(t.Title)

	desc := textinput.New()
	desc.Prompt = ""
	desc.Placeholder = "Description"
	desc.CharLimit = 500
	desc.Width = width
	desc.SetValue(t.Description)

	e := &editor{
		taskID:      t.ID,
		title:       title,
		description: desc,
	}
	for i, col := range board.Columns() {
		if col.ID == t.Status {
			e.status = i
		}
	}
	e.setFocus(fieldTitle)
	return e
}

func (e *editor) setFocus(f editorField) {
	e.focus = f
	e.title.Blur()
	e.description.Blur()
	switch f {
	case fieldTitle:
		e.title.Focus()
	case fieldDescription:
		e.description.Focus()
	}
}

// task returns the edited task.
func (e *editor) task() board.Task {
	return board.Task{
		ID:          e.taskID,
		Title:       strings.TrimSpace(e.title.Value()),
		Description: strings.TrimSpace(e.description.Value()),
		Status:      board.Columns()[e.status].ID,
	}
}

type editorResult int

const (
	editorContinue editorResult = iota
	editorSave
	editorCancel
)

// update handles a key press while the editor is open.
func (e *editor) update(msg tea.KeyMsg) (editorResult, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return editorCancel, nil
	case "enter":
		return editorSave, nil
	case "tab", "down":
		e.setFocus((e.focus + 1) % fieldCount)
		return editorContinue, nil
	case "shift+tab", "up":
		e.setFocus((e.focus + fieldCount - 1) % fieldCount)
		return editorContinue, nil
	}

	var cmd tea.Cmd
	switch e.focus {
	case fieldTitle:
		e.title, cmd = e.title.Update(msg)
	case fieldDescription:
		e.description, cmd = e.description.Update(msg)
	case fieldStatus:
		n := len(board.Columns())
		switch msg.String() {
		case "left", "h":
			e.status = (e.status + n - 1) % n
		case "right", "l", " ":
			e.status = (e.status + 1) % n
		case "1", "2", "3":
			if i := int(msg.String()[0] - '1'); i < n {
				e.status = i
			}
		}
	}
	return editorContinue, cmd
}
