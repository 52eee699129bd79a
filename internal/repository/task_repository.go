package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lifeflow/internal/dateutil"
	"lifeflow/internal/model"
	"lifeflow/internal/service"
)

// TaskRepository persists task instances.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) CreateInstance(ctx context.Context, task *model.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindInstance(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &task, nil
}

func (r *TaskRepository) UpdateInstance(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (r *TaskRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("start_time ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) ListByRule(ctx context.Context, recurringID string) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("recurring_id = ?", recurringID).
		Order("date ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) ListRecurring(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("recurring_id IS NOT NULL").
		Order("date ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// BulkUpdateFrom rewrites every instance of the rule dated on or after
// dateFrom inside one transaction. Clock strings are recombined with each
// row's own date, so a cascade edit moves every future instance to the new
// wall-clock time without shifting its calendar day.
func (r *TaskRepository) BulkUpdateFrom(ctx context.Context, recurringID string, dateFrom time.Time, patch service.InstancePatch) (int64, error) {
	var updated int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tasks []model.Task
		if err := tx.Where("recurring_id = ? AND date >= ?", recurringID, dateutil.StartOfDay(dateFrom)).
			Find(&tasks).Error; err != nil {
			return err
		}

		for i := range tasks {
			task := &tasks[i]
			start, err := dateutil.Combine(task.Date, patch.StartClock)
			if err != nil {
				return fmt.Errorf("task %s: %w", task.ID, err)
			}
			var end *time.Time
			if patch.EndClock != nil {
				e, err := dateutil.Combine(task.Date, *patch.EndClock)
				if err != nil {
					return fmt.Errorf("task %s: %w", task.ID, err)
				}
				end = &e
			}

			task.Title = patch.Title
			task.Description = patch.Description
			task.StartTime = start
			task.EndTime = end
			task.CategoryID = patch.CategoryID
			task.SubcategoryID = patch.SubcategoryID
			task.Status = patch.Status
			task.CompletedAt = patch.CompletedAt

			if err := tx.Save(task).Error; err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("bulk update tasks: %w", err)
	}
	return updated, nil
}

func (r *TaskRepository) CancelByRule(ctx context.Context, recurringID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("recurring_id = ?", recurringID).
		Updates(map[string]interface{}{
			"status":       model.StatusCancelled,
			"completed_at": nil,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("cancel tasks: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *TaskRepository) MarkPendingThrough(ctx context.Context, day time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("status = ? AND date <= ?", model.StatusScheduled, day).
		Update("status", model.StatusPending)
	if res.Error != nil {
		return 0, fmt.Errorf("mark tasks pending: %w", res.Error)
	}
	return res.RowsAffected, nil
}
