package board

import (
	"encoding/json"
	"fmt"
)

// Board is an immutable snapshot of the three columns and their tasks.
// The zero value is an empty board.
type Board struct {
	lists [len(columns)][]Task
}

// New builds a board from a column mapping. Unknown column keys are
// dropped, every task's Status is set to its containing column, and a task
// whose id already appeared earlier in column order is dropped.
func New(cols map[ColumnID][]Task) Board {
	var b Board
	seen := make(map[string]bool)
	for i, c := range columns {
		src := cols[c.ID]
		list := make([]Task, 0, len(src))
		for _, t := range src {
			if t.ID == "" || seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			t.Status = c.ID
			list = append(list, t)
		}
		b.lists[i] = list
	}
	return b
}

// Tasks returns a copy of the tasks in the given column.
func (b Board) Tasks(id ColumnID) []Task {
	i := id.index()
	if i < 0 {
		return nil
	}
	out := make([]Task, len(b.lists[i]))
	copy(out, b.lists[i])
	return out
}

// Count returns the number of tasks in the given column.
func (b Board) Count(id ColumnID) int {
	i := id.index()
	if i < 0 {
		return 0
	}
	return len(b.lists[i])
}

// Len returns the number of tasks on the board.
func (b Board) Len() int {
	n := 0
	for _, list := range b.lists {
		n += len(list)
	}
	return n
}

// Find locates a task by id.
func (b Board) Find(taskID string) (Task, ColumnID, bool) {
	for i, list := range b.lists {
		if idx := indexOf(list, taskID); idx >= 0 {
			return list[idx], columns[i].ID, true
		}
	}
	return Task{}, "", false
}

// Map returns a copy of the board as a column mapping.
func (b Board) Map() map[ColumnID][]Task {
	out := make(map[ColumnID][]Task, len(columns))
	for _, c := range columns {
		out[c.ID] = b.Tasks(c.ID)
	}
	return out
}

// Equal reports whether both boards hold the same tasks in the same order.
func (b Board) Equal(other Board) bool {
	for i := range b.lists {
		if len(b.lists[i]) != len(other.lists[i]) {
			return false
		}
		for j := range b.lists[i] {
			if b.lists[i][j] != other.lists[i][j] {
				return false
			}
		}
	}
	return true
}

// Check verifies the board invariants and returns the first violation.
func (b Board) Check() error {
	seen := make(map[string]ColumnID)
	for i, list := range b.lists {
		col := columns[i].ID
		for _, t := range list {
			if prev, ok := seen[t.ID]; ok {
				return fmt.Errorf("task %q appears in %s and %s", t.ID, prev, col)
			}
			seen[t.ID] = col
			if t.Status != col {
				return fmt.Errorf("task %q has status %q in column %s", t.ID, t.Status, col)
			}
		}
	}
	return nil
}

type boardJSON struct {
	Todo  []Task `json:"todo"`
	Doing []Task `json:"doing"`
	Done  []Task `json:"done"`
}

// MarshalJSON encodes the board as {"todo":[...],"doing":[...],"done":[...]}.
func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{
		Todo:  b.Tasks(ColumnTodo),
		Doing: b.Tasks(ColumnDoing),
		Done:  b.Tasks(ColumnDone),
	})
}

// UnmarshalJSON decodes the MarshalJSON shape, normalizing it like New.
func (b *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = New(map[ColumnID][]Task{
		ColumnTodo:  raw.Todo,
		ColumnDoing: raw.Doing,
		ColumnDone:  raw.Done,
	})
	return nil
}

// withList returns a copy of b with column i replaced by list.
func (b Board) withList(i int, list []Task) Board {
	b.lists[i] = list
	return b
}

func indexOf(list []Task, taskID string) int {
	for i, t := range list {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}

// appended returns a new slice holding list followed by t.
func appended(list []Task, t Task) []Task {
	out := make([]Task, len(list), len(list)+1)
	copy(out, list)
	return append(out, t)
}

// without returns a new slice holding list minus the element at idx.
func without(list []Task, idx int) []Task {
	out := make([]Task, 0, len(list)-1)
	out = append(out, list[:idx]...)
	return append(out, list[idx+1:]...)
}

// replaced returns a new slice holding list with element idx set to t.
func replaced(list []Task, idx int, t Task) []Task {
	out := make([]Task, len(list))
	copy(out, list)
	out[idx] = t
	return out
}
