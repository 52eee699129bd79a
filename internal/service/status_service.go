package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"lifeflow/internal/dateutil"
	"lifeflow/internal/model"
)

// StatusService drives the instance lifecycle:
// scheduled -> pending -> completed | cancelled | skipped.
// The scheduled->pending hop is time-driven via Sweep; everything else is an
// explicit user action.
type StatusService struct {
	tasks TaskStore
}

func NewStatusService(tasks TaskStore) *StatusService {
	return &StatusService{tasks: tasks}
}

// Sweep advances every scheduled instance dated today or earlier to pending.
// It filters on the scheduled status only, so re-running it never regresses
// an instance that already moved on.
func (s *StatusService) Sweep(ctx context.Context, now time.Time) (int64, error) {
	updated, err := s.tasks.MarkPendingThrough(ctx, dateutil.EndOfDay(now))
	if err != nil {
		return 0, fmt.Errorf("status sweep: %w", err)
	}
	if updated > 0 {
		log.Printf("[info] status sweep moved %d tasks to pending", updated)
	}
	return updated, nil
}

// Complete marks an instance done and stamps the completion time.
func (s *StatusService) Complete(ctx context.Context, taskID string, now time.Time) (*model.Task, error) {
	return s.transition(ctx, taskID, model.StatusCompleted, &now)
}

// Cancel marks an instance cancelled.
func (s *StatusService) Cancel(ctx context.Context, taskID string) (*model.Task, error) {
	return s.transition(ctx, taskID, model.StatusCancelled, nil)
}

// Skip marks an instance skipped.
func (s *StatusService) Skip(ctx context.Context, taskID string) (*model.Task, error) {
	return s.transition(ctx, taskID, model.StatusSkipped, nil)
}

func (s *StatusService) transition(ctx context.Context, taskID string, to model.Status, completedAt *time.Time) (*model.Task, error) {
	task, err := s.tasks.FindInstance(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.Status == to {
		return task, nil
	}
	if task.Status.Terminal() {
		return nil, fmt.Errorf("task %s is already %s", taskID, task.Status)
	}

	task.Status = to
	task.CompletedAt = completedAt
	if err := s.tasks.UpdateInstance(ctx, task); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	return task, nil
}
