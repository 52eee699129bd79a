package model

import "time"

// Status describes where a task instance is in its lifecycle.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusSkipped   Status = "skipped"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusPending, StatusCompleted, StatusCancelled, StatusSkipped:
		return true
	}
	return false
}

// Terminal reports whether no further automatic transition applies to s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusSkipped
}

// Task is a single dated entry on the calendar. Instances generated from a
// recurring task carry the owning template's id in RecurringID; one-off tasks
// leave it nil.
type Task struct {
	ID            string `gorm:"primaryKey"`
	Title         string
	Description   string
	StartTime     time.Time
	EndTime       *time.Time
	Date          time.Time `gorm:"index"` // local midnight
	CategoryID    string    `gorm:"index"`
	SubcategoryID *string
	RecurringID   *string `gorm:"index"`
	Status        Status  `gorm:"default:scheduled"`
	CompletedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsRecurring reports whether the task was generated from a recurring
// template. The template reference is the single source of truth; there is no
// separate flag to fall out of sync with it.
func (t *Task) IsRecurring() bool {
	return t.RecurringID != nil
}
