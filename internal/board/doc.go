// Package board holds the Kanban board data model and its store.
//
// A board has exactly three columns, in this order:
//
//	todo   "To Do"
//	doing  "Doing"
//	done   "Done"
//
// Each column holds an ordered list of tasks. Order is insertion or move
// order; tasks are not reordered within a column.
//
// # Snapshots
//
// A Board value is immutable. Every mutation on a Store builds a new Board
// and hands it to the change callback, so callers may keep or share a
// snapshot without copying it.
//
// # Invariants
//
// After every Store operation:
//   - every task id appears in exactly one column
//   - a task's Status equals the id of the column holding it
//   - the column set is exactly todo, doing, done
//
// # Malformed references
//
// Store operations never return errors. Unknown task ids and unknown
// column ids turn the call into a no-op, and a no-op does not notify.
package board
