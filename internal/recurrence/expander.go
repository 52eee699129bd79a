package recurrence

import (
	"time"

	"lifeflow/internal/dateutil"
	"lifeflow/internal/model"
)

// Expander turns rules into ordered occurrence dates.
type Expander struct {
	limits Limits
}

// NewExpander builds an expander with the given limits. Zero-valued limit
// fields fall back to DefaultLimits.
func NewExpander(limits Limits) *Expander {
	if limits.MaxOccurrences <= 0 {
		limits.MaxOccurrences = DefaultLimits.MaxOccurrences
	}
	if limits.DefaultDurationMonths <= 0 {
		limits.DefaultDurationMonths = DefaultLimits.DefaultDurationMonths
	}
	return &Expander{limits: limits}
}

// EndDate returns the last date the rule can emit: start plus duration in
// calendar months, with the expander's default applied when unset.
func (e *Expander) EndDate(rule Rule) time.Time {
	months := rule.DurationMonths
	if months == 0 {
		months = e.limits.DefaultDurationMonths
	}
	return dateutil.AddMonths(dateutil.StartOfDay(rule.StartDate), months)
}

// OccurrenceDates expands the rule into every date it occurs on, ordered and
// normalized to local midnight. It is deterministic: the same rule yields the
// same dates. A rule that would emit more than the configured maximum is a
// configuration error and yields nothing.
func (e *Expander) OccurrenceDates(rule Rule) ([]time.Time, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	endDate := e.EndDate(rule)
	cursor := dateutil.StartOfDay(rule.StartDate)

	var dates []time.Time
	for !cursor.After(endDate) && len(dates) < e.limits.MaxOccurrences {
		if rule.matches(cursor) {
			dates = append(dates, cursor)
		}
		cursor = e.advance(rule, cursor)
	}

	if !cursor.After(endDate) {
		return nil, configErrorf("rule emits more than %d occurrences", e.limits.MaxOccurrences)
	}
	return dates, nil
}

// advance moves the cursor to the next candidate date for the rule's cadence.
func (e *Expander) advance(rule Rule, cursor time.Time) time.Time {
	switch rule.Frequency {
	case model.FrequencyDaily:
		return dateutil.AddDays(cursor, 1)

	case model.FrequencyWeekly:
		return nextWeekdayAfter(cursor, *rule.DayOfWeek, 7)

	case model.FrequencyBiweekly:
		// No parity anchoring: the next aligned date is always 14 days
		// out, so the biweekly phase follows the start date.
		return nextWeekdayAfter(cursor, *rule.DayOfWeek, 14)

	case model.FrequencyMonthly:
		// A plain month-add drifts once clamping shortens the day
		// (Jan 31 -> Feb 29 -> Mar 29), so snap back onto the anchor
		// after every jump.
		next := dateutil.AddMonths(cursor, 1)
		anchor := *rule.DayOfMonth
		if last := dateutil.DaysInMonth(next.Year(), next.Month()); anchor > last {
			anchor = last
		}
		return time.Date(next.Year(), next.Month(), anchor, 0, 0, 0, 0, next.Location())
	}
	return dateutil.AddDays(cursor, 1)
}

// nextWeekdayAfter returns the next date strictly after cursor that falls on
// weekday (0=Sunday). When cursor is already aligned it jumps a full cycle.
func nextWeekdayAfter(cursor time.Time, weekday, cycleDays int) time.Time {
	days := (weekday - dateutil.Weekday(cursor) + 7) % 7
	if days == 0 {
		days = cycleDays
	}
	return dateutil.AddDays(cursor, days)
}

// Materialize builds the concrete task instance for one occurrence of a
// template. The instance's Date is midnight-normalized so date-only
// comparisons cannot shift across day boundaries, and its timestamps combine
// the occurrence date with the template's wall-clock times.
func Materialize(rt *model.RecurringTask, date time.Time) (model.Task, error) {
	day := dateutil.StartOfDay(date)
	start, err := dateutil.Combine(day, rt.StartTime)
	if err != nil {
		return model.Task{}, configErrorf("start time: %v", err)
	}

	var end *time.Time
	if rt.EndTime != nil {
		e, err := dateutil.Combine(day, *rt.EndTime)
		if err != nil {
			return model.Task{}, configErrorf("end time: %v", err)
		}
		end = &e
	}

	return model.Task{
		Title:         rt.Title,
		Description:   rt.Description,
		StartTime:     start,
		EndTime:       end,
		Date:          day,
		CategoryID:    rt.CategoryID,
		SubcategoryID: rt.SubcategoryID,
		RecurringID:   &rt.ID,
		Status:        model.StatusScheduled,
	}, nil
}
