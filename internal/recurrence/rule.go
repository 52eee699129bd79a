// Package recurrence expands recurring-task templates into concrete dated
// occurrences. It is pure: the same rule always yields the same dates, and
// nothing here touches storage.
package recurrence

import (
	"fmt"
	"time"

	"lifeflow/internal/dateutil"
	"lifeflow/internal/model"
)

// ConfigurationError marks a rule that can never be expanded safely: a
// missing anchor, a non-positive duration, or a blown occurrence ceiling.
// Generation aborts before anything is persisted.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "recurrence configuration: " + e.Reason
}

func configErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// Rule carries the fields of a recurring-task template that drive expansion.
type Rule struct {
	Frequency      model.Frequency
	DayOfWeek      *int // 0=Sunday .. 6=Saturday; weekly and biweekly only
	DayOfMonth     *int // 1-31; monthly only
	DurationMonths int
	StartDate      time.Time
	StartTime      string // HH:MM
	EndTime        *string
}

// RuleFromTemplate extracts the expansion rule from a stored template.
func RuleFromTemplate(rt *model.RecurringTask) Rule {
	return Rule{
		Frequency:      rt.Frequency,
		DayOfWeek:      rt.DayOfWeek,
		DayOfMonth:     rt.DayOfMonth,
		DurationMonths: rt.DurationMonths,
		StartDate:      rt.StartDate,
		StartTime:      rt.StartTime,
		EndTime:        rt.EndTime,
	}
}

// Validate checks the rule against its frequency's requirements.
func (r Rule) Validate() error {
	switch r.Frequency {
	case model.FrequencyDaily:
	case model.FrequencyWeekly, model.FrequencyBiweekly:
		if r.DayOfWeek == nil {
			return configErrorf("%s frequency requires a day of week", r.Frequency)
		}
		if *r.DayOfWeek < 0 || *r.DayOfWeek > 6 {
			return configErrorf("day of week %d out of range 0-6", *r.DayOfWeek)
		}
	case model.FrequencyMonthly:
		if r.DayOfMonth == nil {
			return configErrorf("monthly frequency requires a day of month")
		}
		if *r.DayOfMonth < 1 || *r.DayOfMonth > 31 {
			return configErrorf("day of month %d out of range 1-31", *r.DayOfMonth)
		}
	default:
		return configErrorf("unknown frequency %q", r.Frequency)
	}

	if r.DurationMonths < 0 {
		return configErrorf("duration must be positive, got %d months", r.DurationMonths)
	}
	if r.StartDate.IsZero() {
		return configErrorf("start date is required")
	}
	if _, _, err := dateutil.ParseClock(r.StartTime); err != nil {
		return configErrorf("start time: %v", err)
	}
	if r.EndTime != nil {
		if _, _, err := dateutil.ParseClock(*r.EndTime); err != nil {
			return configErrorf("end time: %v", err)
		}
	}
	return nil
}

// matches is the cadence predicate: does date qualify as an occurrence?
// For monthly rules the anchor is clamped to the month's last day, so an
// anchor of 31 matches Feb 29 in a leap year.
func (r Rule) matches(date time.Time) bool {
	switch r.Frequency {
	case model.FrequencyDaily:
		return true
	case model.FrequencyWeekly, model.FrequencyBiweekly:
		return dateutil.Weekday(date) == *r.DayOfWeek
	case model.FrequencyMonthly:
		anchor := *r.DayOfMonth
		if last := dateutil.DaysInMonth(date.Year(), date.Month()); anchor > last {
			anchor = last
		}
		return dateutil.DayOfMonth(date) == anchor
	}
	return false
}

// Matches reports whether date satisfies the rule's cadence predicate.
// Callers use it to audit stored instances against their template.
func (r Rule) Matches(date time.Time) bool {
	if r.Validate() != nil {
		return false
	}
	return r.matches(date)
}
