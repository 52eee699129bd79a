package service

import (
	"context"
	"fmt"
	"time"

	"lifeflow/internal/dateutil"
	"lifeflow/internal/model"
)

// TaskInput represents data required to create a one-off task.
type TaskInput struct {
	Title         string
	Description   string
	Date          time.Time
	StartTime     string // HH:MM
	EndTime       *string
	CategoryID    string
	SubcategoryID *string
}

// TaskService wraps business logic for one-off calendar tasks.
type TaskService struct {
	tasks      TaskStore
	categories CategoryStore
}

func NewTaskService(tasks TaskStore, categories CategoryStore) *TaskService {
	return &TaskService{tasks: tasks, categories: categories}
}

// Create validates and persists a standalone task. The instance has no
// template reference; it is never touched by recurring cascades.
func (s *TaskService) Create(ctx context.Context, input TaskInput) (*model.Task, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("date is required")
	}
	if _, err := s.categories.FindCategory(ctx, input.CategoryID); err != nil {
		return nil, fmt.Errorf("category %s: %w", input.CategoryID, err)
	}

	day := dateutil.StartOfDay(input.Date)
	start, err := dateutil.Combine(day, input.StartTime)
	if err != nil {
		return nil, err
	}
	var end *time.Time
	if input.EndTime != nil {
		e, err := dateutil.Combine(day, *input.EndTime)
		if err != nil {
			return nil, err
		}
		end = &e
	}

	task := &model.Task{
		Title:         input.Title,
		Description:   input.Description,
		StartTime:     start,
		EndTime:       end,
		Date:          day,
		CategoryID:    input.CategoryID,
		SubcategoryID: input.SubcategoryID,
		Status:        model.StatusScheduled,
	}
	if err := s.tasks.CreateInstance(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// Get returns a task by id.
func (s *TaskService) Get(ctx context.Context, taskID string) (*model.Task, error) {
	return s.tasks.FindInstance(ctx, taskID)
}

// ListRange returns tasks dated within [from, to], ordered by start time.
func (s *TaskService) ListRange(ctx context.Context, from, to time.Time) ([]model.Task, error) {
	return s.tasks.ListByDateRange(ctx, dateutil.StartOfDay(from), dateutil.EndOfDay(to))
}
