package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"lifeflow/internal/dateutil"
	"lifeflow/internal/model"
	"lifeflow/internal/recurrence"
)

// EditScope selects how far an edit to a recurring instance propagates.
// The caller chooses explicitly; nothing is inferred from the edit itself.
type EditScope string

const (
	// EditThisOnly mutates the targeted instance and nothing else.
	EditThisOnly EditScope = "thisOnly"
	// EditThisAndFuture rewrites the template and every same-or-later-dated
	// sibling instance. Past instances are historical record and stay put.
	EditThisAndFuture EditScope = "thisAndFuture"
)

// RecurringInput is the data required to create a recurring task.
type RecurringInput struct {
	Title          string
	Description    string
	StartTime      string // HH:MM
	EndTime        *string
	Frequency      model.Frequency
	DayOfWeek      *int
	DayOfMonth     *int
	DurationMonths int // 0 means the configured default
	StartDate      time.Time
	CategoryID     string
	SubcategoryID  *string
}

// InstanceEdit carries the editable fields of an instance edit. The rule
// fields (Frequency, DayOfWeek, DayOfMonth, DurationMonths) only apply when
// the edit cascades to the template; nil leaves the template value alone.
type InstanceEdit struct {
	Title          string
	Description    string
	StartClock     string // HH:MM
	EndClock       *string
	CategoryID     string
	SubcategoryID  *string
	Status         model.Status
	Frequency      *model.Frequency
	DayOfWeek      *int
	DayOfMonth     *int
	DurationMonths *int
}

// FailedDate records one occurrence the store refused to persist.
type FailedDate struct {
	Date time.Time
	Err  error
}

// CreationReport is the aggregate outcome of bulk instance creation. Partial
// failure is not an error: the template and every successfully created
// instance stand, and the caller decides whether to warn the user.
type CreationReport struct {
	Created []model.Task
	Failed  []FailedDate
}

// Warning flags a stored instance that disagrees with its template. Warnings
// are advisory: auto-correcting could silently destroy user data.
type Warning struct {
	TaskID      string
	RecurringID string
	Reason      string
}

// RecurringService keeps recurring-task templates and their generated
// instances consistent: creation generates the full instance set up front,
// edits propagate by explicit scope, deactivation cascades.
type RecurringService struct {
	rules    RecurringStore
	tasks    TaskStore
	expander *recurrence.Expander
}

func NewRecurringService(rules RecurringStore, tasks TaskStore, expander *recurrence.Expander) *RecurringService {
	return &RecurringService{rules: rules, tasks: tasks, expander: expander}
}

// Create validates and persists a recurring template, then materializes one
// instance per occurrence date. The template is created first so instances
// hold a valid reference. Configuration errors abort before anything is
// written; per-date store failures are collected into the report and logged,
// never retried.
func (s *RecurringService) Create(ctx context.Context, input RecurringInput) (*model.RecurringTask, *CreationReport, error) {
	if input.Title == "" {
		return nil, nil, fmt.Errorf("title is required")
	}
	if input.CategoryID == "" {
		return nil, nil, fmt.Errorf("category is required")
	}

	rule := recurrence.Rule{
		Frequency:      input.Frequency,
		DayOfWeek:      input.DayOfWeek,
		DayOfMonth:     input.DayOfMonth,
		DurationMonths: input.DurationMonths,
		StartDate:      input.StartDate,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
	}
	dates, err := s.expander.OccurrenceDates(rule)
	if err != nil {
		return nil, nil, err
	}

	template := &model.RecurringTask{
		Title:          input.Title,
		Description:    input.Description,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		Frequency:      input.Frequency,
		DayOfWeek:      input.DayOfWeek,
		DayOfMonth:     input.DayOfMonth,
		DurationMonths: input.DurationMonths,
		StartDate:      dateutil.StartOfDay(input.StartDate),
		EndDate:        s.expander.EndDate(rule),
		CategoryID:     input.CategoryID,
		SubcategoryID:  input.SubcategoryID,
		IsActive:       true,
	}
	if err := s.rules.CreateRule(ctx, template); err != nil {
		return nil, nil, fmt.Errorf("create recurring task: %w", err)
	}

	report := &CreationReport{}
	for _, date := range dates {
		task, err := recurrence.Materialize(template, date)
		if err != nil {
			report.Failed = append(report.Failed, FailedDate{Date: date, Err: err})
			continue
		}
		if err := s.tasks.CreateInstance(ctx, &task); err != nil {
			log.Printf("[warn] create instance %s of %s: %v", date.Format("2006-01-02"), template.ID, err)
			report.Failed = append(report.Failed, FailedDate{Date: date, Err: err})
			continue
		}
		report.Created = append(report.Created, task)
	}

	log.Printf("[info] recurring task created id=%s freq=%s instances=%d failed=%d",
		template.ID, template.Frequency, len(report.Created), len(report.Failed))
	return template, report, nil
}

// UpdateInstance applies an edit to the given instance under the chosen
// scope. An instance without a template always takes the thisOnly path.
func (s *RecurringService) UpdateInstance(ctx context.Context, taskID string, edit InstanceEdit, scope EditScope) (*model.Task, error) {
	task, err := s.tasks.FindInstance(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if scope != EditThisAndFuture || task.RecurringID == nil {
		return s.updateSingle(ctx, task, edit)
	}
	return s.updateThisAndFuture(ctx, task, edit)
}

func (s *RecurringService) updateSingle(ctx context.Context, task *model.Task, edit InstanceEdit) (*model.Task, error) {
	start, err := dateutil.Combine(task.Date, edit.StartClock)
	if err != nil {
		return nil, err
	}
	var end *time.Time
	if edit.EndClock != nil {
		e, err := dateutil.Combine(task.Date, *edit.EndClock)
		if err != nil {
			return nil, err
		}
		end = &e
	}

	task.Title = edit.Title
	task.Description = edit.Description
	task.StartTime = start
	task.EndTime = end
	task.CategoryID = edit.CategoryID
	task.SubcategoryID = edit.SubcategoryID
	applyStatus(task, edit.Status, time.Now())

	if err := s.tasks.UpdateInstance(ctx, task); err != nil {
		return nil, fmt.Errorf("update instance: %w", err)
	}
	return task, nil
}

func (s *RecurringService) updateThisAndFuture(ctx context.Context, task *model.Task, edit InstanceEdit) (*model.Task, error) {
	template, err := s.rules.FindRule(ctx, *task.RecurringID)
	if err != nil {
		return nil, err
	}

	template.Title = edit.Title
	template.Description = edit.Description
	template.StartTime = edit.StartClock
	template.EndTime = edit.EndClock
	template.CategoryID = edit.CategoryID
	template.SubcategoryID = edit.SubcategoryID
	if edit.Frequency != nil {
		template.Frequency = *edit.Frequency
	}
	if edit.DayOfWeek != nil {
		template.DayOfWeek = edit.DayOfWeek
	}
	if edit.DayOfMonth != nil {
		template.DayOfMonth = edit.DayOfMonth
	}
	if edit.DurationMonths != nil {
		template.DurationMonths = *edit.DurationMonths
	}

	rule := recurrence.RuleFromTemplate(template)
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	template.EndDate = s.expander.EndDate(rule)

	if err := s.rules.UpdateRule(ctx, template); err != nil {
		return nil, fmt.Errorf("update recurring task: %w", err)
	}

	patch := InstancePatch{
		Title:         edit.Title,
		Description:   edit.Description,
		StartClock:    edit.StartClock,
		EndClock:      edit.EndClock,
		CategoryID:    edit.CategoryID,
		SubcategoryID: edit.SubcategoryID,
		Status:        model.StatusScheduled,
	}
	if edit.Status == model.StatusCompleted {
		now := time.Now()
		patch.Status = model.StatusCompleted
		patch.CompletedAt = &now
	}

	updated, err := s.tasks.BulkUpdateFrom(ctx, template.ID, task.Date, patch)
	if err != nil {
		return nil, fmt.Errorf("cascade update: %w", err)
	}
	log.Printf("[info] cascade edit rule=%s from=%s updated=%d", template.ID, task.Date.Format("2006-01-02"), updated)

	return s.tasks.FindInstance(ctx, task.ID)
}

// Deactivate soft-deletes a template and cancels every instance linked to
// it. The cascade is unconditional; there is no scope choice.
func (s *RecurringService) Deactivate(ctx context.Context, ruleID string) error {
	if _, err := s.rules.FindRule(ctx, ruleID); err != nil {
		return err
	}
	if err := s.rules.DeactivateRule(ctx, ruleID); err != nil {
		return fmt.Errorf("deactivate recurring task: %w", err)
	}
	cancelled, err := s.tasks.CancelByRule(ctx, ruleID)
	if err != nil {
		return fmt.Errorf("cancel instances: %w", err)
	}
	log.Printf("[info] recurring task deactivated id=%s cancelled=%d", ruleID, cancelled)
	return nil
}

// CheckConsistency audits stored instances against their templates: a
// reference to a missing template, or a date off the template's cadence
// (possible after an anchor edit that did not cascade), is reported and
// logged. Nothing is corrected automatically.
func (s *RecurringService) CheckConsistency(ctx context.Context) ([]Warning, error) {
	rules, err := s.rules.ListRules(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.RecurringTask, len(rules))
	for i := range rules {
		byID[rules[i].ID] = &rules[i]
	}

	instances, err := s.tasks.ListRecurring(ctx)
	if err != nil {
		return nil, err
	}

	var warnings []Warning
	for _, task := range instances {
		template, ok := byID[*task.RecurringID]
		if !ok {
			warnings = append(warnings, Warning{
				TaskID:      task.ID,
				RecurringID: *task.RecurringID,
				Reason:      "references a missing recurring task",
			})
			continue
		}
		if !recurrence.RuleFromTemplate(template).Matches(task.Date) {
			warnings = append(warnings, Warning{
				TaskID:      task.ID,
				RecurringID: template.ID,
				Reason:      fmt.Sprintf("date %s does not match the %s cadence", task.Date.Format("2006-01-02"), template.Frequency),
			})
		}
	}

	for _, w := range warnings {
		log.Printf("[warn] inconsistent instance task=%s rule=%s: %s", w.TaskID, w.RecurringID, w.Reason)
	}
	return warnings, nil
}

// applyStatus sets the status implied by an edit: explicit completion stamps
// CompletedAt, anything else clears it.
func applyStatus(task *model.Task, status model.Status, now time.Time) {
	if status == "" {
		status = model.StatusScheduled
	}
	task.Status = status
	if status == model.StatusCompleted {
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}
}
