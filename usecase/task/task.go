package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/tasksync/backend/domain"
	"github.com/tasksync/backend/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

func (uc *UseCase) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return uc.tasks.ListAll(ctx)
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

func (uc *UseCase) CreateTask(ctx context.Context, input repository.CreateTaskInput, creator domain.Identity) (*domain.Task, error) {
	created, err := uc.tasks.Create(ctx, input, creator)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("task created",
		zap.String("task_id", created.ID),
		zap.String("creator", creator.UID),
		zap.String("assignee", created.AssignedUser))
	return created, nil
}

func (uc *UseCase) UpdateTaskFields(ctx context.Context, id string, patch repository.FieldPatch) error {
	return uc.tasks.UpdateFields(ctx, id, patch)
}

func (uc *UseCase) UpdateTaskStatus(ctx context.Context, id string, status string) error {
	if err := uc.tasks.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	uc.logger.Info("task status changed",
		zap.String("task_id", id), zap.String("status", status))
	return nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	return uc.tasks.Delete(ctx, id)
}
