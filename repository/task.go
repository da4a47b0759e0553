package repository

import (
	"context"

	"github.com/tasksync/backend/domain"
)

// CreateTaskInput carries the caller-supplied fields of a new task.
// Everything else (id, status, creator snapshot) is assigned by the
// repository.
type CreateTaskInput struct {
	Title        string
	Description  string
	DueDate      string
	AssignedUser string
	Priority     string
}

// FieldPatch is a partial update of the editable task fields. Nil fields
// are left untouched. Status has its own operation; id, assigned_user
// and the creator snapshot are immutable.
type FieldPatch struct {
	Title       *string
	Description *string
	DueDate     *string
}

// Empty reports whether the patch changes nothing.
func (p FieldPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListAll(ctx context.Context) ([]domain.Task, error)
	Create(ctx context.Context, input CreateTaskInput, creator domain.Identity) (*domain.Task, error)
	UpdateFields(ctx context.Context, id string, patch FieldPatch) error
	UpdateStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error
}
