package seed

import "github.com/nibzard/doable-go/internal/board"

// Sample returns the board shown when no seed file is configured.
func Sample() board.Board {
	return board.New(map[board.ColumnID][]board.Task{
		board.ColumnTodo: {
			{ID: "task-1", Title: "Design new feature", Description: "Create mockups for the new dashboard"},
			{ID: "task-2", Title: "Fix navigation bug", Description: "Menu not closing on mobile"},
		},
		board.ColumnDoing: {
			{ID: "task-3", Title: "Implement API integration", Description: "Connect frontend to the new endpoints"},
		},
		board.ColumnDone: {
			{ID: "task-4", Title: "Setup project", Description: "Initial project configuration"},
			{ID: "task-5", Title: "Create login page", Description: "Design and implement login form"},
		},
	})
}
