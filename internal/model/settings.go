package model

import "time"

// Settings is the single-row application configuration for alerting.
type Settings struct {
	ID                      uint    `gorm:"primaryKey"`
	CompletionThresholdLow  float64 `gorm:"default:50"`  // percent; below this a category is flagged
	CompletionThresholdHigh float64 `gorm:"default:100"` // percent; at or above this a category is on track
	MinimumDataDays         int     `gorm:"default:3"`   // days of data required before alerting
	ShowAlerts              bool    `gorm:"default:true"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
