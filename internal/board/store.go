package board

import "sync"

// ChangeFunc receives the full board after every change.
type ChangeFunc func(Board)

// Option configures a Store.
type Option func(*Store)

// WithOnChange sets the change notification callback.
func WithOnChange(fn ChangeFunc) Option {
	return func(s *Store) {
		s.onChange = fn
	}
}

// WithIDGenerator overrides the task id generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

// Store owns the current board and applies mutations to it.
//
// Each operation replaces the snapshot as a whole and then calls the
// change callback with the new snapshot, outside the lock. Callers that
// mutate from several goroutines get no ordering guarantee between their
// notifications; the UI mutates from a single goroutine.
type Store struct {
	mu       sync.Mutex
	board    Board
	ids      IDGenerator
	onChange ChangeFunc
}

// NewStore creates a store seeded with the given board.
func NewStore(seed Board, opts ...Option) *Store {
	s := &Store{
		board: seed,
		ids:   UUIDGenerator{Prefix: DefaultIDPrefix},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current board.
func (s *Store) Snapshot() Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board
}

// Locate returns the column currently holding the task.
func (s *Store) Locate(taskID string) (ColumnID, bool) {
	_, col, ok := s.Snapshot().Find(taskID)
	return col, ok
}

// NewTask builds a todo task with a freshly generated id.
func (s *Store) NewTask(title, description string) Task {
	return Task{
		ID:          s.ids.NewID(),
		Title:       title,
		Description: description,
		Status:      ColumnTodo,
	}
}

// AddTask appends task to the given column with its Status set to that
// column. An empty id is replaced by a generated one. Unknown columns and
// ids already on the board are ignored.
func (s *Store) AddTask(columnID ColumnID, task Task) {
	s.apply(func(b Board) (Board, bool) {
		i := columnID.index()
		if i < 0 {
			return b, false
		}
		if task.ID == "" {
			task.ID = s.ids.NewID()
		}
		if _, _, exists := b.Find(task.ID); exists {
			return b, false
		}
		task.Status = columnID
		return b.withList(i, appended(b.lists[i], task)), true
	})
}

// DeleteTask removes the task from whichever column holds it.
func (s *Store) DeleteTask(taskID string) {
	s.apply(func(b Board) (Board, bool) {
		for i, list := range b.lists {
			if idx := indexOf(list, taskID); idx >= 0 {
				return b.withList(i, without(list, idx)), true
			}
		}
		return b, false
	})
}

// DeleteTaskIn removes the task from the given column only. A task held
// by a different column is left alone.
func (s *Store) DeleteTaskIn(columnID ColumnID, taskID string) {
	s.apply(func(b Board) (Board, bool) {
		i := columnID.index()
		if i < 0 {
			return b, false
		}
		idx := indexOf(b.lists[i], taskID)
		if idx < 0 {
			return b, false
		}
		return b.withList(i, without(b.lists[i], idx)), true
	})
}

// EditTask replaces the task with the same id. An empty Status keeps the
// current column; a different valid Status moves the task to the end of
// that column. Unknown ids and unknown statuses are ignored.
func (s *Store) EditTask(updated Task) {
	s.apply(func(b Board) (Board, bool) {
		_, current, ok := b.Find(updated.ID)
		if !ok {
			return b, false
		}
		if updated.Status == "" {
			updated.Status = current
		}
		to := updated.Status.index()
		if to < 0 {
			return b, false
		}
		from := current.index()
		idx := indexOf(b.lists[from], updated.ID)
		if from == to {
			if b.lists[from][idx] == updated {
				return b, false
			}
			return b.withList(from, replaced(b.lists[from], idx, updated)), true
		}
		b = b.withList(from, without(b.lists[from], idx))
		return b.withList(to, appended(b.lists[to], updated)), true
	})
}

// MoveTask moves the task from one column to the end of another, updating
// its Status. It does nothing if the task is not in from, if either column
// is unknown, or if from equals to.
func (s *Store) MoveTask(taskID string, from, to ColumnID) {
	s.apply(func(b Board) (Board, bool) {
		fi, ti := from.index(), to.index()
		if fi < 0 || ti < 0 || fi == ti {
			return b, false
		}
		idx := indexOf(b.lists[fi], taskID)
		if idx < 0 {
			return b, false
		}
		task := b.lists[fi][idx]
		task.Status = to
		b = b.withList(fi, without(b.lists[fi], idx))
		return b.withList(ti, appended(b.lists[ti], task)), true
	})
}

// apply runs fn against the current board and commits the result when fn
// reports a change.
func (s *Store) apply(fn func(Board) (Board, bool)) {
	s.mu.Lock()
	next, changed := fn(s.board)
	if changed {
		s.board = next
	}
	notify := s.onChange
	s.mu.Unlock()

	if changed && notify != nil {
		notify(next)
	}
}
