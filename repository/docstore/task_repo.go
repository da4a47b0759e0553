// Package docstore implements the repositories on top of the document
// store port. Partial updates are read-modify-write: the store has no
// merge primitive, so a concurrent writer between the read and the write
// is silently overwritten. Last write wins.
package docstore

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tasksync/backend/domain"
	"github.com/tasksync/backend/repository"
	"github.com/tasksync/backend/store"
)

const tasksNode = "tasks"

type taskRepository struct {
	store  store.Client
	logger *zap.Logger
}

// NewTaskRepository returns a document-store backed TaskRepository.
func NewTaskRepository(client store.Client, logger *zap.Logger) repository.TaskRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &taskRepository{store: client, logger: logger}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	doc, ok, err := r.store.Get(ctx, taskPath(id))
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeStore, "task read failed", err)
	}
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	var task domain.Task
	if err := json.Unmarshal(doc, &task); err != nil {
		return nil, domain.WrapError(domain.ErrCodeStore, "task record corrupt", err)
	}
	return &task, nil
}

func (r *taskRepository) ListAll(ctx context.Context) ([]domain.Task, error) {
	docs, err := r.store.List(ctx, tasksNode)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeStore, "task scan failed", err)
	}

	tasks := make([]domain.Task, 0, len(docs))
	for id, doc := range docs {
		var task domain.Task
		if err := json.Unmarshal(doc, &task); err != nil {
			r.logger.Warn("skipping undecodable task record",
				zap.String("task_id", id), zap.Error(err))
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (r *taskRepository) Create(ctx context.Context, input repository.CreateTaskInput, creator domain.Identity) (*domain.Task, error) {
	if input.Title == "" || input.AssignedUser == "" || creator.UID == "" {
		return nil, domain.ErrInvalidPayload
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityLow
	}
	if !domain.ValidPriority(priority) {
		return nil, domain.ErrInvalidPayload
	}

	task := &domain.Task{
		ID:           uuid.NewString(),
		Title:        input.Title,
		Description:  input.Description,
		DueDate:      input.DueDate,
		Status:       domain.StatusPending,
		Priority:     priority,
		AssignedUser: input.AssignedUser,
		User:         creator,
	}

	if err := r.store.Set(ctx, taskPath(task.ID), task); err != nil {
		return nil, domain.WrapError(domain.ErrCodeStore, "task write failed", err)
	}
	return task, nil
}

func (r *taskRepository) UpdateFields(ctx context.Context, id string, patch repository.FieldPatch) error {
	if patch.Empty() {
		return nil
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if patch.Title != nil {
		current.Title = *patch.Title
	}
	if patch.Description != nil {
		current.Description = *patch.Description
	}
	if patch.DueDate != nil {
		current.DueDate = *patch.DueDate
	}

	if err := r.store.Set(ctx, taskPath(id), current); err != nil {
		return domain.WrapError(domain.ErrCodeStore, "task write failed", err)
	}
	return nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	if !domain.ValidStatus(status) {
		return domain.ErrInvalidPayload
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	current.Status = status

	if err := r.store.Set(ctx, taskPath(id), current); err != nil {
		return domain.WrapError(domain.ErrCodeStore, "task write failed", err)
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	// Removing a missing id is a success at this layer.
	if err := r.store.Remove(ctx, taskPath(id)); err != nil {
		return domain.WrapError(domain.ErrCodeStore, "task delete failed", err)
	}
	return nil
}

func taskPath(id string) string {
	return store.Join(tasksNode, id)
}
