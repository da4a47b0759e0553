package view

import (
	"context"

	"go.uber.org/zap"

	"github.com/tasksync/backend/domain"
	"github.com/tasksync/backend/repository"
	"github.com/tasksync/backend/usecase/resolver"
)

// Board is a user's composed task view: both partitions sorted, plus the
// assignee resolution for every row.
type Board struct {
	Mine      []domain.Task
	Assigned  []domain.Task
	Assignees map[string]resolver.Resolution
}

// Engine produces boards from the full task collection. The store has no
// query support, so scoping by user happens here, after a full scan.
type Engine struct {
	tasks    repository.TaskRepository
	resolver *resolver.Resolver
	logger   *zap.Logger
}

// NewEngine creates a board engine.
func NewEngine(tasks repository.TaskRepository, res *resolver.Resolver, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		tasks:    tasks,
		resolver: res,
		logger:   logger,
	}
}

// Board builds the view for the given identity. Assignee lookup failures
// degrade individual rows, never the board; they surface as a warning in
// the log only.
func (e *Engine) Board(ctx context.Context, uid string, sortState SortState) (*Board, error) {
	all, err := e.tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	mine, assigned := Partition(all, uid)
	Sort(mine, sortState)
	Sort(assigned, sortState)

	visible := make([]domain.Task, 0, len(mine)+len(assigned))
	visible = append(visible, mine...)
	visible = append(visible, assigned...)

	assignees, warn := e.resolver.ResolveAssignees(ctx, visible)
	if warn != nil {
		e.logger.Warn("board assembled with degraded assignee rows",
			zap.String("uid", uid), zap.Error(warn))
	}

	return &Board{
		Mine:      mine,
		Assigned:  assigned,
		Assignees: assignees,
	}, nil
}
