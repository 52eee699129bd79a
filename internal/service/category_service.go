package service

import (
	"context"
	"fmt"

	"lifeflow/internal/model"
)

// CategoryInput represents data required to create a category.
type CategoryInput struct {
	Name        string
	Description string
	Icon        string
	Color       string
	WeeklyGoal  float64 // hours per week
}

// CategoryService provides helpers around categories and subcategories.
type CategoryService struct {
	store CategoryStore
}

func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{store: store}
}

func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*model.Category, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	existing, err := s.store.ListActiveCategories(ctx)
	if err != nil {
		return nil, err
	}
	nextOrder := 0
	for _, cat := range existing {
		if cat.Order >= nextOrder {
			nextOrder = cat.Order + 1
		}
	}

	category := &model.Category{
		Name:        input.Name,
		Description: input.Description,
		Icon:        input.Icon,
		Color:       input.Color,
		WeeklyGoal:  input.WeeklyGoal,
		IsActive:    true,
		Order:       nextOrder,
	}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	return s.store.FindCategory(ctx, id)
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.store.ListActiveCategories(ctx)
}

func (s *CategoryService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.store.FindCategory(ctx, id); err != nil {
		return err
	}
	return s.store.DeactivateCategory(ctx, id)
}

func (s *CategoryService) AddSubcategory(ctx context.Context, categoryID, name, description string) (*model.Subcategory, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if _, err := s.store.FindCategory(ctx, categoryID); err != nil {
		return nil, fmt.Errorf("category %s: %w", categoryID, err)
	}

	existing, err := s.store.ListSubcategories(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	nextOrder := 0
	for _, sub := range existing {
		if sub.Order >= nextOrder {
			nextOrder = sub.Order + 1
		}
	}

	sub := &model.Subcategory{
		CategoryID:  categoryID,
		Name:        name,
		Description: description,
		IsActive:    true,
		Order:       nextOrder,
	}
	if err := s.store.CreateSubcategory(ctx, sub); err != nil {
		return nil, fmt.Errorf("create subcategory: %w", err)
	}
	return sub, nil
}

func (s *CategoryService) ListSubcategories(ctx context.Context, categoryID string) ([]model.Subcategory, error) {
	return s.store.ListSubcategories(ctx, categoryID)
}
