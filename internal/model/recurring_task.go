package model

import "time"

// Frequency is the cadence of a recurring task.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// RecurringTask is the template a set of task instances is generated from.
// Times are naive wall-clock "HH:MM" strings; DayOfWeek uses 0=Sunday.
// Templates are deactivated, never hard-deleted, so past instances keep a
// valid reference.
type RecurringTask struct {
	ID             string `gorm:"primaryKey"`
	Title          string
	Description    string
	StartTime      string // HH:MM
	EndTime        *string
	Frequency      Frequency
	DayOfWeek      *int // 0-6, weekly/biweekly only
	DayOfMonth     *int // 1-31, monthly only
	DurationMonths int
	StartDate      time.Time
	EndDate        time.Time // StartDate + DurationMonths
	CategoryID     string    `gorm:"index"`
	SubcategoryID  *string
	IsActive       bool `gorm:"default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Tasks []Task `gorm:"foreignKey:RecurringID"`
}
