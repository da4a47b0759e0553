package transport

import (
	"github.com/tasksync/backend/domain"
	"github.com/tasksync/backend/usecase/resolver"
	"github.com/tasksync/backend/usecase/view"
)

// BoardResponse is the composed task view handed to the presentation
// layer: both partitions sorted, each row carrying its resolved assignee.
type BoardResponse struct {
	Mine      []TaskRow `json:"my_tasks"`
	Assigned  []TaskRow `json:"assigned_tasks"`
	SortBy    string    `json:"sort_by"`
	SortOrder string    `json:"sort_order"`
}

// TaskRow pairs a task with its assignee resolution. Assignee is null
// when the referenced user record is missing or its lookup failed.
type TaskRow struct {
	Task           domain.Task  `json:"task"`
	Assignee       *domain.User `json:"assignee"`
	AssigneeFailed bool         `json:"assignee_failed,omitempty"`
}

// NewBoardResponse flattens a view.Board for the wire.
func NewBoardResponse(board *view.Board, sortState view.SortState) BoardResponse {
	return BoardResponse{
		Mine:      rows(board.Mine, board.Assignees),
		Assigned:  rows(board.Assigned, board.Assignees),
		SortBy:    sortState.By,
		SortOrder: sortState.Order,
	}
}

func rows(tasks []domain.Task, assignees map[string]resolver.Resolution) []TaskRow {
	out := make([]TaskRow, 0, len(tasks))
	for _, task := range tasks {
		row := TaskRow{Task: task}
		if res, ok := assignees[task.ID]; ok {
			row.Assignee = res.User
			row.AssigneeFailed = res.State == resolver.Failed
		}
		out = append(out, row)
	}
	return out
}
