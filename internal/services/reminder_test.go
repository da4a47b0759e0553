package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tasksync/backend/domain"
	"github.com/tasksync/backend/repository"
)

type mockTaskRepo struct {
	repository.TaskRepository

	listAllFn func(ctx context.Context) ([]domain.Task, error)
}

func (m *mockTaskRepo) ListAll(ctx context.Context) ([]domain.Task, error) {
	return m.listAllFn(ctx)
}

func fixedNow(t *testing.T, value string) func() time.Time {
	t.Helper()
	now, err := time.Parse(domain.DueDateLayout, value)
	if err != nil {
		t.Fatalf("parse now: %v", err)
	}
	return func() time.Time { return now }
}

func TestOverdue_FiltersPendingPastDue(t *testing.T) {
	r := NewReminder(nil, zap.NewNop(), ReminderConfig{Interval: time.Hour})
	r.now = fixedNow(t, "2024-02-10")

	tasks := []domain.Task{
		{ID: "t1", Status: domain.StatusPending, DueDate: "2024-02-09"},
		{ID: "t2", Status: domain.StatusPending, DueDate: "2024-02-10"},
		{ID: "t3", Status: domain.StatusPending, DueDate: "2024-02-11"},
		{ID: "t4", Status: domain.StatusCompleted, DueDate: "2024-01-01"},
		{ID: "t5", Status: domain.StatusPending, DueDate: "not-a-date"},
		{ID: "t6", Status: domain.StatusPending, DueDate: "2023-12-31"},
	}

	overdue := r.Overdue(tasks)
	if len(overdue) != 2 {
		t.Fatalf("expected 2 overdue tasks, got %d", len(overdue))
	}
	if overdue[0].ID != "t1" || overdue[1].ID != "t6" {
		t.Errorf("unexpected overdue set: %v, %v", overdue[0].ID, overdue[1].ID)
	}
}

func TestSweep_PropagatesListFailure(t *testing.T) {
	listErr := errors.New("list failed")
	repo := &mockTaskRepo{
		listAllFn: func(ctx context.Context) ([]domain.Task, error) {
			return nil, listErr
		},
	}

	r := NewReminder(repo, zap.NewNop(), ReminderConfig{Interval: time.Hour})
	if err := r.Sweep(context.Background()); !errors.Is(err, listErr) {
		t.Errorf("expected list error, got %v", err)
	}
}

func TestSweep_LogsWithoutError(t *testing.T) {
	repo := &mockTaskRepo{
		listAllFn: func(ctx context.Context) ([]domain.Task, error) {
			return []domain.Task{
				{ID: "t1", Status: domain.StatusPending, DueDate: "2000-01-01"},
			}, nil
		},
	}

	r := NewReminder(repo, zap.NewNop(), ReminderConfig{Interval: time.Hour})
	if err := r.Sweep(context.Background()); err != nil {
		t.Errorf("sweep: %v", err)
	}
}
