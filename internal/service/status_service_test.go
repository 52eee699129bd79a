package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeflow/internal/model"
)

func seedTask(t *testing.T, tasks *fakeTaskStore, day time.Time, status model.Status) *model.Task {
	t.Helper()
	task := &model.Task{
		Title:     "Stretch",
		Date:      day,
		StartTime: day.Add(8 * time.Hour),
		Status:    status,
	}
	require.NoError(t, tasks.CreateInstance(context.Background(), task))
	return task
}

func TestSweep_MovesDueScheduledToPending(t *testing.T) {
	tasks := newFakeTaskStore()
	svc := NewStatusService(tasks)
	now := date(2024, time.March, 6)

	yesterday := seedTask(t, tasks, date(2024, time.March, 5), model.StatusScheduled)
	today := seedTask(t, tasks, date(2024, time.March, 6), model.StatusScheduled)
	tomorrow := seedTask(t, tasks, date(2024, time.March, 7), model.StatusScheduled)

	updated, err := svc.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	assert.Equal(t, model.StatusPending, tasks.tasks[yesterday.ID].Status)
	assert.Equal(t, model.StatusPending, tasks.tasks[today.ID].Status)
	assert.Equal(t, model.StatusScheduled, tasks.tasks[tomorrow.ID].Status)
}

func TestSweep_NeverRegressesAdvancedStatuses(t *testing.T) {
	tasks := newFakeTaskStore()
	svc := NewStatusService(tasks)
	day := date(2024, time.March, 5)

	completed := seedTask(t, tasks, day, model.StatusCompleted)
	cancelled := seedTask(t, tasks, day, model.StatusCancelled)
	skipped := seedTask(t, tasks, day, model.StatusSkipped)
	pending := seedTask(t, tasks, day, model.StatusPending)

	updated, err := svc.Sweep(context.Background(), date(2024, time.March, 6))
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)

	assert.Equal(t, model.StatusCompleted, tasks.tasks[completed.ID].Status)
	assert.Equal(t, model.StatusCancelled, tasks.tasks[cancelled.ID].Status)
	assert.Equal(t, model.StatusSkipped, tasks.tasks[skipped.ID].Status)
	assert.Equal(t, model.StatusPending, tasks.tasks[pending.ID].Status)
}

func TestSweep_IsIdempotent(t *testing.T) {
	tasks := newFakeTaskStore()
	svc := NewStatusService(tasks)
	now := date(2024, time.March, 6)
	seedTask(t, tasks, date(2024, time.March, 5), model.StatusScheduled)

	first, err := svc.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, err := svc.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), second)
}

func TestComplete_StampsCompletionTime(t *testing.T) {
	tasks := newFakeTaskStore()
	svc := NewStatusService(tasks)
	task := seedTask(t, tasks, date(2024, time.March, 5), model.StatusPending)

	now := time.Date(2024, time.March, 5, 18, 30, 0, 0, time.Local)
	done, err := svc.Complete(context.Background(), task.ID, now)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, now, *done.CompletedAt)
	assert.Equal(t, model.StatusCompleted, tasks.tasks[task.ID].Status)
}

func TestCancelAndSkip_LeaveNoCompletionTime(t *testing.T) {
	tasks := newFakeTaskStore()
	svc := NewStatusService(tasks)

	first := seedTask(t, tasks, date(2024, time.March, 5), model.StatusPending)
	cancelled, err := svc.Cancel(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, cancelled.Status)
	assert.Nil(t, cancelled.CompletedAt)

	second := seedTask(t, tasks, date(2024, time.March, 5), model.StatusScheduled)
	skipped, err := svc.Skip(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSkipped, skipped.Status)
	assert.Nil(t, skipped.CompletedAt)
}

func TestTransition_SameStatusIsANoOp(t *testing.T) {
	tasks := newFakeTaskStore()
	svc := NewStatusService(tasks)
	task := seedTask(t, tasks, date(2024, time.March, 5), model.StatusPending)

	now := time.Date(2024, time.March, 5, 18, 0, 0, 0, time.Local)
	done, err := svc.Complete(context.Background(), task.ID, now)
	require.NoError(t, err)

	again, err := svc.Complete(context.Background(), task.ID, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, again.Status)
	require.NotNil(t, again.CompletedAt)
	assert.Equal(t, *done.CompletedAt, *again.CompletedAt, "repeat completion must not re-stamp")
}

func TestTransition_RejectsLeavingTerminalStatus(t *testing.T) {
	tasks := newFakeTaskStore()
	svc := NewStatusService(tasks)
	task := seedTask(t, tasks, date(2024, time.March, 5), model.StatusCancelled)

	_, err := svc.Complete(context.Background(), task.ID, time.Now())
	assert.Error(t, err)
	assert.Equal(t, model.StatusCancelled, tasks.tasks[task.ID].Status)

	_, err = svc.Skip(context.Background(), task.ID)
	assert.Error(t, err)
}

func TestTransition_UnknownTask(t *testing.T) {
	svc := NewStatusService(newFakeTaskStore())
	_, err := svc.Cancel(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
