package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"lifeflow/internal/dateutil"
	"lifeflow/internal/model"
)

// fakeRecurringStore is an in-memory RecurringStore for service tests.
type fakeRecurringStore struct {
	rules  map[string]model.RecurringTask
	nextID int
}

func newFakeRecurringStore() *fakeRecurringStore {
	return &fakeRecurringStore{rules: make(map[string]model.RecurringTask)}
}

func (f *fakeRecurringStore) CreateRule(_ context.Context, rule *model.RecurringTask) error {
	if rule.ID == "" {
		f.nextID++
		rule.ID = fmt.Sprintf("rule-%d", f.nextID)
	}
	f.rules[rule.ID] = *rule
	return nil
}

func (f *fakeRecurringStore) FindRule(_ context.Context, id string) (*model.RecurringTask, error) {
	rule, ok := f.rules[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rule, nil
}

func (f *fakeRecurringStore) UpdateRule(_ context.Context, rule *model.RecurringTask) error {
	if _, ok := f.rules[rule.ID]; !ok {
		return ErrNotFound
	}
	f.rules[rule.ID] = *rule
	return nil
}

func (f *fakeRecurringStore) DeactivateRule(_ context.Context, id string) error {
	rule, ok := f.rules[id]
	if !ok {
		return ErrNotFound
	}
	rule.IsActive = false
	f.rules[id] = rule
	return nil
}

func (f *fakeRecurringStore) ListRules(_ context.Context) ([]model.RecurringTask, error) {
	out := make([]model.RecurringTask, 0, len(f.rules))
	for _, rule := range f.rules {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeTaskStore is an in-memory TaskStore. failDates makes CreateInstance
// reject specific dates to exercise partial-failure reporting.
type fakeTaskStore struct {
	tasks     map[string]model.Task
	nextID    int
	failDates map[string]error // keyed by YYYY-MM-DD
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[string]model.Task), failDates: make(map[string]error)}
}

func (f *fakeTaskStore) CreateInstance(_ context.Context, task *model.Task) error {
	if err, ok := f.failDates[task.Date.Format("2006-01-02")]; ok {
		return err
	}
	if task.ID == "" {
		f.nextID++
		task.ID = fmt.Sprintf("task-%d", f.nextID)
	}
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeTaskStore) FindInstance(_ context.Context, id string) (*model.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &task, nil
}

func (f *fakeTaskStore) UpdateInstance(_ context.Context, task *model.Task) error {
	if _, ok := f.tasks[task.ID]; !ok {
		return ErrNotFound
	}
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeTaskStore) ListByDateRange(_ context.Context, from, to time.Time) ([]model.Task, error) {
	var out []model.Task
	for _, task := range f.tasks {
		if !task.Date.Before(from) && !task.Date.After(to) {
			out = append(out, task)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeTaskStore) ListByRule(_ context.Context, recurringID string) ([]model.Task, error) {
	var out []model.Task
	for _, task := range f.tasks {
		if task.RecurringID != nil && *task.RecurringID == recurringID {
			out = append(out, task)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeTaskStore) ListRecurring(_ context.Context) ([]model.Task, error) {
	var out []model.Task
	for _, task := range f.tasks {
		if task.RecurringID != nil {
			out = append(out, task)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTaskStore) BulkUpdateFrom(_ context.Context, recurringID string, dateFrom time.Time, patch InstancePatch) (int64, error) {
	var updated int64
	from := dateutil.StartOfDay(dateFrom)
	for id, task := range f.tasks {
		if task.RecurringID == nil || *task.RecurringID != recurringID || task.Date.Before(from) {
			continue
		}
		start, err := dateutil.Combine(task.Date, patch.StartClock)
		if err != nil {
			return 0, err
		}
		task.Title = patch.Title
		task.Description = patch.Description
		task.StartTime = start
		task.EndTime = nil
		if patch.EndClock != nil {
			end, err := dateutil.Combine(task.Date, *patch.EndClock)
			if err != nil {
				return 0, err
			}
			task.EndTime = &end
		}
		task.CategoryID = patch.CategoryID
		task.SubcategoryID = patch.SubcategoryID
		task.Status = patch.Status
		task.CompletedAt = patch.CompletedAt
		f.tasks[id] = task
		updated++
	}
	return updated, nil
}

func (f *fakeTaskStore) CancelByRule(_ context.Context, recurringID string) (int64, error) {
	var cancelled int64
	for id, task := range f.tasks {
		if task.RecurringID != nil && *task.RecurringID == recurringID {
			task.Status = model.StatusCancelled
			task.CompletedAt = nil
			f.tasks[id] = task
			cancelled++
		}
	}
	return cancelled, nil
}

func (f *fakeTaskStore) MarkPendingThrough(_ context.Context, day time.Time) (int64, error) {
	var updated int64
	for id, task := range f.tasks {
		if task.Status == model.StatusScheduled && !task.Date.After(day) {
			task.Status = model.StatusPending
			f.tasks[id] = task
			updated++
		}
	}
	return updated, nil
}

func (f *fakeTaskStore) byRule(recurringID string) []model.Task {
	out, _ := f.ListByRule(context.Background(), recurringID)
	return out
}

// fakeCategoryStore is an in-memory CategoryStore.
type fakeCategoryStore struct {
	categories map[string]model.Category
	subs       map[string]model.Subcategory
	nextID     int
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{
		categories: make(map[string]model.Category),
		subs:       make(map[string]model.Subcategory),
	}
}

func (f *fakeCategoryStore) CreateCategory(_ context.Context, category *model.Category) error {
	if category.ID == "" {
		f.nextID++
		category.ID = fmt.Sprintf("cat-%d", f.nextID)
	}
	f.categories[category.ID] = *category
	return nil
}

func (f *fakeCategoryStore) FindCategory(_ context.Context, id string) (*model.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &category, nil
}

func (f *fakeCategoryStore) ListActiveCategories(_ context.Context) ([]model.Category, error) {
	var out []model.Category
	for _, category := range f.categories {
		if category.IsActive {
			out = append(out, category)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *fakeCategoryStore) DeactivateCategory(_ context.Context, id string) error {
	category, ok := f.categories[id]
	if !ok {
		return ErrNotFound
	}
	category.IsActive = false
	f.categories[id] = category
	return nil
}

func (f *fakeCategoryStore) CreateSubcategory(_ context.Context, sub *model.Subcategory) error {
	if sub.ID == "" {
		f.nextID++
		sub.ID = fmt.Sprintf("sub-%d", f.nextID)
	}
	f.subs[sub.ID] = *sub
	return nil
}

func (f *fakeCategoryStore) ListSubcategories(_ context.Context, categoryID string) ([]model.Subcategory, error) {
	var out []model.Subcategory
	for _, sub := range f.subs {
		if sub.CategoryID == categoryID && sub.IsActive {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

// fakeSettingsStore is an in-memory SettingsStore.
type fakeSettingsStore struct {
	settings model.Settings
}

func newFakeSettingsStore() *fakeSettingsStore {
	return &fakeSettingsStore{settings: model.Settings{
		ID:                      1,
		CompletionThresholdLow:  50,
		CompletionThresholdHigh: 100,
		MinimumDataDays:         3,
		ShowAlerts:              true,
	}}
}

func (f *fakeSettingsStore) GetOrCreate(_ context.Context) (*model.Settings, error) {
	settings := f.settings
	return &settings, nil
}

func (f *fakeSettingsStore) Update(_ context.Context, settings *model.Settings) error {
	f.settings = *settings
	return nil
}
