package service

import (
	"context"
	"errors"
	"time"

	"lifeflow/internal/model"
)

// ErrNotFound is returned when an edit or lookup targets a missing record.
var ErrNotFound = errors.New("record not found")

// InstancePatch is the set of instance fields a cascading edit overwrites.
// Clock fields are wall-clock HH:MM strings; the store recombines them with
// each instance's own date so every row keeps its calendar position.
type InstancePatch struct {
	Title         string
	Description   string
	StartClock    string
	EndClock      *string
	CategoryID    string
	SubcategoryID *string
	Status        model.Status
	CompletedAt   *time.Time
}

// RecurringStore persists recurring-task templates.
type RecurringStore interface {
	CreateRule(ctx context.Context, rule *model.RecurringTask) error
	FindRule(ctx context.Context, id string) (*model.RecurringTask, error)
	UpdateRule(ctx context.Context, rule *model.RecurringTask) error
	DeactivateRule(ctx context.Context, id string) error
	ListRules(ctx context.Context) ([]model.RecurringTask, error)
}

// TaskStore persists task instances.
type TaskStore interface {
	CreateInstance(ctx context.Context, task *model.Task) error
	FindInstance(ctx context.Context, id string) (*model.Task, error)
	UpdateInstance(ctx context.Context, task *model.Task) error
	ListByDateRange(ctx context.Context, from, to time.Time) ([]model.Task, error)
	ListByRule(ctx context.Context, recurringID string) ([]model.Task, error)
	ListRecurring(ctx context.Context) ([]model.Task, error)

	// BulkUpdateFrom applies patch to every instance of the rule dated on or
	// after dateFrom, atomically, and returns the number of rows touched.
	BulkUpdateFrom(ctx context.Context, recurringID string, dateFrom time.Time, patch InstancePatch) (int64, error)

	// CancelByRule cancels every instance linked to the rule.
	CancelByRule(ctx context.Context, recurringID string) (int64, error)

	// MarkPendingThrough advances scheduled instances dated up to and
	// including day to pending.
	MarkPendingThrough(ctx context.Context, day time.Time) (int64, error)
}

// CategoryStore persists categories and subcategories.
type CategoryStore interface {
	CreateCategory(ctx context.Context, category *model.Category) error
	FindCategory(ctx context.Context, id string) (*model.Category, error)
	ListActiveCategories(ctx context.Context) ([]model.Category, error)
	DeactivateCategory(ctx context.Context, id string) error
	CreateSubcategory(ctx context.Context, sub *model.Subcategory) error
	ListSubcategories(ctx context.Context, categoryID string) ([]model.Subcategory, error)
}

// SettingsStore persists the single application settings row.
type SettingsStore interface {
	GetOrCreate(ctx context.Context) (*model.Settings, error)
	Update(ctx context.Context, settings *model.Settings) error
}
