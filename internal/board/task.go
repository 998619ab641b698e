package board

// ColumnID identifies one of the fixed board columns.
type ColumnID string

const (
	ColumnTodo  ColumnID = "todo"
	ColumnDoing ColumnID = "doing"
	ColumnDone  ColumnID = "done"
)

// Column describes a fixed board column.
type Column struct {
	ID    ColumnID `json:"id"`
	Title string   `json:"title"`
}

var columns = [...]Column{
	{ID: ColumnTodo, Title: "To Do"},
	{ID: ColumnDoing, Title: "Doing"},
	{ID: ColumnDone, Title: "Done"},
}

// Columns returns the column definitions in display order.
func Columns() []Column {
	out := make([]Column, len(columns))
	copy(out, columns[:])
	return out
}

// Valid reports whether id names one of the fixed columns.
func (id ColumnID) Valid() bool {
	return id.index() >= 0
}

// Title returns the display title, or the raw id for unknown columns.
func (id ColumnID) Title() string {
	if i := id.index(); i >= 0 {
		return columns[i].Title
	}
	return string(id)
}

func (id ColumnID) index() int {
	for i, c := range columns {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Task is a single unit of work on the board.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      ColumnID `json:"status"`
}

// IsZero returns true if the task has no ID.
func (t Task) IsZero() bool {
	return t.ID == ""
}
