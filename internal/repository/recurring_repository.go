package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lifeflow/internal/model"
)

// RecurringRepository persists recurring-task templates.
type RecurringRepository struct {
	db *gorm.DB
}

func NewRecurringRepository(db *gorm.DB) *RecurringRepository {
	return &RecurringRepository{db: db}
}

func (r *RecurringRepository) CreateRule(ctx context.Context, rule *model.RecurringTask) error {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(rule).Error; err != nil {
		return fmt.Errorf("create recurring task: %w", err)
	}
	return nil
}

func (r *RecurringRepository) FindRule(ctx context.Context, id string) (*model.RecurringTask, error) {
	var rule model.RecurringTask
	if err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &rule, nil
}

func (r *RecurringRepository) UpdateRule(ctx context.Context, rule *model.RecurringTask) error {
	if err := r.db.WithContext(ctx).Save(rule).Error; err != nil {
		return fmt.Errorf("update recurring task: %w", err)
	}
	return nil
}

// DeactivateRule soft-deletes a template. Templates are never removed so
// historical instances keep a valid reference.
func (r *RecurringRepository) DeactivateRule(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&model.RecurringTask{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("deactivate recurring task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return translateNotFound(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *RecurringRepository) ListRules(ctx context.Context) ([]model.RecurringTask, error) {
	var rules []model.RecurringTask
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *RecurringRepository) ListActiveRules(ctx context.Context) ([]model.RecurringTask, error) {
	var rules []model.RecurringTask
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).
		Order("created_at DESC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}
