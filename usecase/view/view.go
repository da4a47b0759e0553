// Package view composes the per-user task board: the "my tasks" /
// "assigned to me" partition, column sorting and row edit state.
package view

import (
	"sort"

	"github.com/tasksync/backend/domain"
)

// Sortable columns.
const (
	ColumnDueDate = "due_date"
	ColumnStatus  = "status"
	ColumnTitle   = "title"
)

// Sort orders.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// SortState captures the active column and direction. The zero value is
// not valid; use DefaultSort.
type SortState struct {
	By    string
	Order string
}

// DefaultSort is due date ascending.
func DefaultSort() SortState {
	return SortState{By: ColumnDueDate, Order: OrderAsc}
}

// Toggle returns the state after a click on column: the active column
// flips direction, a new column starts ascending.
func (s SortState) Toggle(column string) SortState {
	if s.By == column {
		if s.Order == OrderAsc {
			return SortState{By: column, Order: OrderDesc}
		}
		return SortState{By: column, Order: OrderAsc}
	}
	return SortState{By: column, Order: OrderAsc}
}

// Normalize falls back to the default for unknown columns or orders.
func (s SortState) Normalize() SortState {
	switch s.By {
	case ColumnDueDate, ColumnStatus, ColumnTitle:
	default:
		s.By = ColumnDueDate
	}
	if s.Order != OrderDesc {
		s.Order = OrderAsc
	}
	return s
}

// Partition splits tasks into the two disjoint board views for uid:
// tasks whose creator snapshot matches, and tasks assigned to uid by
// someone else. A self-assigned task lands in "my tasks" only.
func Partition(tasks []domain.Task, uid string) (mine, assigned []domain.Task) {
	for _, task := range tasks {
		switch {
		case task.User.UID == uid:
			mine = append(mine, task)
		case task.AssignedUser == uid:
			assigned = append(assigned, task)
		}
	}
	return mine, assigned
}

// Sort orders tasks in place. Due dates compare as calendar dates so
// lexical-vs-chronological mismatches cannot occur; other columns
// compare as case-sensitive strings. The sort is stable: ties keep
// their prior relative order.
func Sort(tasks []domain.Task, state SortState) {
	state = state.Normalize()

	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := &tasks[i], &tasks[j]
		if state.Order == OrderDesc {
			a, b = b, a
		}
		switch state.By {
		case ColumnDueDate:
			return a.Due().Before(b.Due())
		case ColumnStatus:
			return a.Status < b.Status
		default:
			return a.Title < b.Title
		}
	})
}

// EditTracker records which rows have their edit modal open, keyed by
// the task's stable id so a re-sort never desynchronizes modal state
// from its task.
type EditTracker struct {
	open map[string]bool
}

// NewEditTracker creates an empty tracker.
func NewEditTracker() *EditTracker {
	return &EditTracker{open: make(map[string]bool)}
}

func (t *EditTracker) Open(taskID string) {
	t.open[taskID] = true
}

func (t *EditTracker) Close(taskID string) {
	delete(t.open, taskID)
}

func (t *EditTracker) IsOpen(taskID string) bool {
	return t.open[taskID]
}

// Prune drops state for ids no longer present, e.g. after a delete.
func (t *EditTracker) Prune(tasks []domain.Task) {
	present := make(map[string]struct{}, len(tasks))
	for _, task := range tasks {
		present[task.ID] = struct{}{}
	}
	for id := range t.open {
		if _, ok := present[id]; !ok {
			delete(t.open, id)
		}
	}
}
