// Package resolver enriches task batches with their assignees' profile
// records.
package resolver

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tasksync/backend/domain"
	"github.com/tasksync/backend/repository"
)

// ResolutionState classifies a per-task lookup outcome.
type ResolutionState int

const (
	// Found means the assignee's profile record exists.
	Found ResolutionState = iota
	// Missing means no record exists for the referenced id. A dangling
	// reference is data to render, not a failure.
	Missing
	// Failed means the lookup itself errored.
	Failed
)

// Resolution is the outcome of resolving one task's assigned user.
type Resolution struct {
	State ResolutionState
	User  *domain.User
	Err   error
}

// Resolver batches assignee lookups against the user repository.
type Resolver struct {
	users  repository.UserRepository
	logger *zap.Logger
}

// New creates a Resolver.
func New(users repository.UserRepository, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{users: users, logger: logger}
}

// ResolveAssignees maps each task's id to the resolution of its assigned
// user. Tasks sharing an assignee share a single lookup. Lookups run
// concurrently and are all joined before the mapping is returned; an
// individual failure downgrades to a Failed entry and an aggregated
// warning instead of aborting the batch.
func (r *Resolver) ResolveAssignees(ctx context.Context, tasks []domain.Task) (map[string]Resolution, error) {
	distinct := make(map[string]struct{}, len(tasks))
	for _, task := range tasks {
		if task.AssignedUser != "" {
			distinct[task.AssignedUser] = struct{}{}
		}
	}

	var mu sync.Mutex
	byUser := make(map[string]Resolution, len(distinct))

	g, gctx := errgroup.WithContext(ctx)
	for userID := range distinct {
		userID := userID
		g.Go(func() error {
			res := r.lookup(gctx, userID)
			mu.Lock()
			byUser[userID] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	var warnings *multierror.Error
	result := make(map[string]Resolution, len(tasks))
	for _, task := range tasks {
		res, ok := byUser[task.AssignedUser]
		if !ok {
			res = Resolution{State: Missing}
		}
		result[task.ID] = res
		if res.State == Failed {
			warnings = multierror.Append(warnings, res.Err)
		}
	}
	return result, warnings.ErrorOrNil()
}

// ListCandidates returns every user except excludeID, for assignment
// pickers. Order is unspecified.
func (r *Resolver) ListCandidates(ctx context.Context, excludeID string) ([]domain.User, error) {
	users, err := r.users.List(ctx)
	if err != nil {
		return nil, err
	}

	candidates := users[:0]
	for _, user := range users {
		if user.ID != excludeID {
			candidates = append(candidates, user)
		}
	}
	return candidates, nil
}

func (r *Resolver) lookup(ctx context.Context, userID string) Resolution {
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return Resolution{State: Missing}
		}
		r.logger.Warn("assignee lookup failed",
			zap.String("user_id", userID), zap.Error(err))
		return Resolution{State: Failed, Err: err}
	}
	return Resolution{State: Found, User: user}
}
