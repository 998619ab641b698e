package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/nibzard/doable-go/internal/board"
)

var (
	appTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle    = lipgloss.NewStyle().Bold(true)
	countStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	addStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	taskTitleStyle = lipgloss.NewStyle().Bold(true)
	deleteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	moveStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	optionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	columnBorder      = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	columnHoverBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(0, 1)
)

type cardStyle int

const (
	cardNormal cardStyle = iota
	cardSelected
	cardDragging
	cardGhost // the source card while its drag is in progress
)

func (s cardStyle) border() lipgloss.Style {
	switch s {
	case cardSelected:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	case cardDragging:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	case cardGhost:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Faint(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
}

// fit truncates or pads s to exactly w cells.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = ansi.Truncate(s, w, "…")
	if pad := w - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// renderCard draws a task card of the given outer width. options lists
// the move menu entries when the card's menu is open.
func renderCard(t board.Task, width int, style cardStyle, options []board.Column) []string {
	border := lipgloss.RoundedBorder()
	bs := style.border()
	inner := width - 2
	faint := style == cardGhost
	text := func(s lipgloss.Style) lipgloss.Style {
		if faint {
			return s.Faint(true)
		}
		return s
	}
	row := func(content string) string {
		return bs.Render(border.Left) + content + bs.Render(border.Right)
	}

	lines := make([]string, 0, cardBaseHeight+len(options))
	lines = append(lines, bs.Render(border.TopLeft+strings.Repeat(border.Top, inner)+border.TopRight))
	lines = append(lines, row(text(taskTitleStyle).Render(fit(t.Title, inner-2))+" "+text(deleteStyle).Render("×")))
	lines = append(lines, row(text(mutedStyle).Render(fit(t.Description, inner))))
	moveLabel := "Move to..."
	if len(options) > 0 {
		moveLabel = "Move to... ▾"
	}
	lines = append(lines, row(text(moveStyle).Render(fit(moveLabel, inner))))
	for _, col := range options {
		lines = append(lines, row(optionStyle.Render(fit("  → "+col.Title, inner))))
	}
	lines = append(lines, bs.Render(border.BottomLeft+strings.Repeat(border.Bottom, inner)+border.BottomRight))
	return lines
}

// emptyMessage is shown in a column without tasks.
func emptyMessage(id board.ColumnID) string {
	if id == board.ColumnTodo {
		return "No tasks yet. Add one below!"
	}
	return "Drop tasks here"
}

// renderColumn draws column i as exactly g.colHeight lines of g.colWidth
// cells.
func (m *Model) renderColumn(b board.Board, g geometry, i int) []string {
	col := board.Columns()[i]
	border := lipgloss.RoundedBorder()
	bs := columnBorder
	if m.drag.Column(col.ID).HoverActive() {
		bs = columnHoverBorder
	}
	inner := g.colWidth - 2
	row := func(content string) string {
		return bs.Render(border.Left) + content + bs.Render(border.Right)
	}

	lines := make([]string, 0, g.colHeight)
	lines = append(lines, bs.Render(border.TopLeft+strings.Repeat(border.Top, inner)+border.TopRight))

	count := fmt.Sprintf("%d", b.Count(col.ID))
	title := fit(col.Title, inner-len(count)-1)
	lines = append(lines, row(headerStyle.Render(title)+" "+countStyle.Render(count)))
	lines = append(lines, bs.Render(border.MiddleLeft+strings.Repeat(border.Top, inner)+border.MiddleRight))

	body := g.bodyRect(i)
	var content []string
	slots := m.slots(b, i)
	if len(slots) == 0 {
		content = append(content, emptyStyle.Render(fit(emptyMessage(col.ID), inner)))
	}
	dragged := ""
	if gesture, ok := m.drag.Active(); ok {
		if p, ok := gesture.Payload(); ok {
			dragged = p.TaskID
		}
	}
	for j, s := range slots {
		style := cardNormal
		switch {
		case s.task.ID == dragged:
			style = cardGhost
		case i == m.selCol && j == m.selIdx:
			style = cardSelected
		}
		content = append(content, renderCard(s.task, g.cardWidth(), style, s.options)...)
	}

	offset := m.views[i].offset
	blank := strings.Repeat(" ", inner)
	for r := 0; r < body.Height; r++ {
		if k := offset + r; k < len(content) {
			lines = append(lines, row(content[k]))
		} else {
			lines = append(lines, row(blank))
		}
	}

	if col.ID == board.ColumnTodo {
		lines = append(lines, row(addStyle.Render(fit("+ Add Task", inner))))
	}
	lines = append(lines, bs.Render(border.BottomLeft+strings.Repeat(border.Bottom, inner)+border.BottomRight))
	return lines
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	b := m.store.Snapshot()
	g := m.geometry()

	lines := []string{
		fit(appTitleStyle.Render("doable")+"  "+mutedStyle.Render(fmt.Sprintf("%d tasks", b.Len())), g.boardWidth()),
		"",
	}

	blocks := make([]string, 0, 2*len(board.Columns())-1)
	gap := strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", columnGap)+"\n", g.colHeight), "\n")
	for i := range board.Columns() {
		if i > 0 {
			blocks = append(blocks, gap)
		}
		blocks = append(blocks, strings.Join(m.renderColumn(b, g, i), "\n"))
	}
	lines = append(lines, strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, blocks...), "\n")...)
	lines = append(lines, m.statusLine(b, g), mutedStyle.Render(fit(keyHints, g.boardWidth())))

	if gesture, ok := m.drag.Active(); ok && len(m.proxy) > 0 {
		x, y := gesture.Position(m.px, m.py)
		lines = overlay(lines, m.proxy, x, y, m.width)
	}
	if m.editor != nil {
		lines = overlayCentered(lines, m.renderEditor(), g.boardWidth())
	}
	if m.showHelp {
		lines = overlayCentered(lines, renderHelp(), g.boardWidth())
	}
	return strings.Join(lines, "\n")
}

const keyHints = "←↓↑→ select · a add · e edit · x delete · m move · H/L shift · ? help · q quit"

func (m *Model) statusLine(b board.Board, g geometry) string {
	if gesture, ok := m.drag.Active(); ok {
		if p, ok := gesture.Payload(); ok {
			t, _, _ := b.Find(p.TaskID)
			return statusStyle.Render(fit("Dragging "+t.Title+": release over a column to drop", g.boardWidth()))
		}
	}
	return statusStyle.Render(fit(m.status, g.boardWidth()))
}

func (m *Model) renderEditor() []string {
	e := m.editor
	label := func(f editorField, s string) string {
		if e.focus == f {
			return headerStyle.Render(s)
		}
		return mutedStyle.Render(s)
	}
	var statuses []string
	for i, col := range board.Columns() {
		if i == e.status {
			statuses = append(statuses, optionStyle.Render("["+col.Title+"]"))
		} else {
			statuses = append(statuses, " "+col.Title+" ")
		}
	}
	content := strings.Join([]string{
		appTitleStyle.Render("Edit task"),
		"",
		label(fieldTitle, "Title:       ") + e.title.View(),
		label(fieldDescription, "Description: ") + e.description.View(),
		label(fieldStatus, "Status:      ") + strings.Join(statuses, " "),
		"",
		mutedStyle.Render("enter save · esc cancel · tab next field · ←/→ change status"),
	}, "\n")
	return strings.Split(boxStyle.Render(content), "\n")
}

func renderHelp() []string {
	content := strings.Join([]string{
		appTitleStyle.Render("Keyboard Shortcuts"),
		"",
		"  ←↓↑→, hjkl   Select a card",
		"  a            Add a task to To Do",
		"  e, enter     Edit the selected task",
		"  x            Delete the selected task",
		"  m            Open or close the move menu",
		"  1-3          Pick a move menu entry",
		"  H, L         Move the task left or right",
		"  esc          Close the menu or cancel a drag",
		"  ?            Toggle this help",
		"  q, ctrl+c    Quit",
		"",
		mutedStyle.Render("Mouse: drag cards between columns, click a card to edit it,"),
		mutedStyle.Render("drag an empty part of a column or use the wheel to scroll."),
	}, "\n")
	return strings.Split(boxStyle.Render(content), "\n")
}

// overlay draws img over base with its top-left cell at (x, y), clipping
// to maxWidth when it is positive.
func overlay(base, img []string, x, y, maxWidth int) []string {
	out := make([]string, len(base))
	copy(out, base)
	for r, seg := range img {
		row := y + r
		if row < 0 || row >= len(out) {
			continue
		}
		sx := x
		if sx < 0 {
			seg = ansi.TruncateLeft(seg, -sx, "")
			sx = 0
		}
		if maxWidth > 0 {
			if sx >= maxWidth {
				continue
			}
			seg = ansi.Truncate(seg, maxWidth-sx, "")
		}
		segWidth := ansi.StringWidth(seg)

		line := out[row]
		lineWidth := ansi.StringWidth(line)
		if lineWidth < sx {
			line += strings.Repeat(" ", sx-lineWidth)
			lineWidth = sx
		}
		left := ansi.Truncate(line, sx, "")
		right := ""
		if lineWidth > sx+segWidth {
			right = ansi.TruncateLeft(line, sx+segWidth, "")
		}
		out[row] = left + seg + right
	}
	return out
}

// overlayCentered draws img centered over base within width.
func overlayCentered(base, img []string, width int) []string {
	imgWidth := 0
	for _, l := range img {
		if w := ansi.StringWidth(l); w > imgWidth {
			imgWidth = w
		}
	}
	x := (width - imgWidth) / 2
	if x < 0 {
		x = 0
	}
	y := (len(base) - len(img)) / 2
	if y < 0 {
		y = 0
	}
	return overlay(base, img, x, y, 0)
}
