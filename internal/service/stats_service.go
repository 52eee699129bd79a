package service

import (
	"context"
	"sort"
	"time"

	"lifeflow/internal/dateutil"
	"lifeflow/internal/model"
)

// CategoryStats is one category's completion figures for a week.
type CategoryStats struct {
	Category       model.Category
	TrackedHours   float64
	GoalHours      float64
	CompletionRate float64 // percent of the weekly goal; 0 when no goal is set
	BelowThreshold bool
}

// WeeklyReport aggregates per-category completion for one week.
type WeeklyReport struct {
	WeekStart  time.Time
	WeekEnd    time.Time
	Categories []CategoryStats
	DataDays   int  // distinct days in the week carrying completed work
	Alerting   bool // false when alerts are disabled or data is too thin
}

// Alerts returns the categories whose completion fell below the threshold.
func (r *WeeklyReport) Alerts() []CategoryStats {
	if !r.Alerting {
		return nil
	}
	var out []CategoryStats
	for _, c := range r.Categories {
		if c.BelowThreshold {
			out = append(out, c)
		}
	}
	return out
}

// StatsService computes completion statistics over stored task records.
type StatsService struct {
	tasks      TaskStore
	categories CategoryStore
	settings   SettingsStore
}

func NewStatsService(tasks TaskStore, categories CategoryStore, settings SettingsStore) *StatsService {
	return &StatsService{tasks: tasks, categories: categories, settings: settings}
}

// WeeklySummary tallies completed hours per category for the week containing
// now (Monday through Sunday) and flags categories under the configured
// completion threshold. Alerts stay off until the week holds at least the
// settings' minimum days of data.
func (s *StatsService) WeeklySummary(ctx context.Context, now time.Time) (*WeeklyReport, error) {
	settings, err := s.settings.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.ListActiveCategories(ctx)
	if err != nil {
		return nil, err
	}

	weekStart := dateutil.StartOfWeek(now)
	weekEnd := dateutil.AddDays(weekStart, 6)
	tasks, err := s.tasks.ListByDateRange(ctx, weekStart, dateutil.EndOfDay(weekEnd))
	if err != nil {
		return nil, err
	}

	tracked := make(map[string]float64)
	days := make(map[string]bool)
	for _, task := range tasks {
		if task.Status != model.StatusCompleted {
			continue
		}
		tracked[task.CategoryID] += taskHours(task)
		days[task.Date.Format("2006-01-02")] = true
	}

	report := &WeeklyReport{
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		DataDays:  len(days),
		Alerting:  settings.ShowAlerts && len(days) >= settings.MinimumDataDays,
	}

	for _, cat := range categories {
		stats := CategoryStats{
			Category:     cat,
			TrackedHours: tracked[cat.ID],
			GoalHours:    cat.WeeklyGoal,
		}
		if cat.WeeklyGoal > 0 {
			stats.CompletionRate = stats.TrackedHours / cat.WeeklyGoal * 100
			stats.BelowThreshold = stats.CompletionRate < settings.CompletionThresholdLow
		}
		report.Categories = append(report.Categories, stats)
	}

	sort.SliceStable(report.Categories, func(i, j int) bool {
		return report.Categories[i].Category.Order < report.Categories[j].Category.Order
	})
	return report, nil
}

// taskHours measures a task's tracked time. Tasks without an end time count
// for nothing; there is no duration to attribute.
func taskHours(task model.Task) float64 {
	if task.EndTime == nil {
		return 0
	}
	return task.EndTime.Sub(task.StartTime).Hours()
}
