package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lifeflow/internal/model"
)

// CategoryRepository persists categories and subcategories.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, category *model.Category) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) FindCategory(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &category, nil
}

func (r *CategoryRepository) ListActiveCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).
		Order("`order` ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) DeactivateCategory(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("deactivate category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return translateNotFound(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *CategoryRepository) CreateSubcategory(ctx context.Context, sub *model.Subcategory) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("create subcategory: %w", err)
	}
	return nil
}

func (r *CategoryRepository) ListSubcategories(ctx context.Context, categoryID string) ([]model.Subcategory, error) {
	var subs []model.Subcategory
	if err := r.db.WithContext(ctx).
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Order("`order` ASC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}
