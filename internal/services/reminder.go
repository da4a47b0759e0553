// Package services hosts background jobs that run beside the HTTP
// surface.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/tasksync/backend/domain"
	"github.com/tasksync/backend/repository"
)

// ReminderConfig controls the overdue sweep schedule.
type ReminderConfig struct {
	Interval time.Duration
}

// Reminder periodically scans the task collection and logs pending tasks
// whose due date has passed.
type Reminder struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
	cron   *cron.Cron
	cfg    ReminderConfig

	// now is swappable for tests.
	now func() time.Time
}

func NewReminder(tasks repository.TaskRepository, logger *zap.Logger, cfg ReminderConfig) *Reminder {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Reminder{
		tasks:  tasks,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
		now:    time.Now,
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = r.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := r.Sweep(ctx); err != nil {
			r.logger.Error("overdue sweep failed", zap.Error(err))
		}
	})

	return r
}

// Start launches the cron scheduler.
func (r *Reminder) Start() {
	if r == nil || r.cron == nil {
		return
	}
	r.cron.Start()
	r.logger.Info("reminder started", zap.Duration("interval", r.cfg.Interval))
}

// Stop gracefully stops the scheduler.
func (r *Reminder) Stop(ctx context.Context) {
	if r == nil || r.cron == nil {
		return
	}
	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	r.logger.Info("reminder stopped")
}

// Sweep scans the collection once and returns the overdue tasks it
// flagged.
func (r *Reminder) Sweep(ctx context.Context) error {
	tasks, err := r.tasks.ListAll(ctx)
	if err != nil {
		return err
	}

	overdue := r.Overdue(tasks)
	for _, task := range overdue {
		r.logger.Warn("task overdue",
			zap.String("task_id", task.ID),
			zap.String("title", task.Title),
			zap.String("due_date", task.DueDate),
			zap.String("assignee", task.AssignedUser))
	}
	if len(overdue) > 0 {
		r.logger.Info("overdue sweep finished", zap.Int("overdue", len(overdue)))
	}
	return nil
}

// Overdue filters pending tasks due strictly before today. Tasks with
// unparseable due dates are skipped.
func (r *Reminder) Overdue(tasks []domain.Task) []domain.Task {
	today := r.now().Truncate(24 * time.Hour)

	var overdue []domain.Task
	for _, task := range tasks {
		if task.Status != domain.StatusPending {
			continue
		}
		due := task.Due()
		if due.IsZero() {
			continue
		}
		if due.Before(today) {
			overdue = append(overdue, task)
		}
	}
	return overdue
}
