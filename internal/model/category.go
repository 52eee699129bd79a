package model

import "time"

// Category is a life area (work, fitness, studies, ...) with a weekly-hour goal.
type Category struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex"`
	Description string
	Icon        string
	Color       string
	WeeklyGoal  float64 // target hours per week
	IsActive    bool    `gorm:"default:true"`
	Order       int
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Subcategories []Subcategory `gorm:"foreignKey:CategoryID"`
	Tasks         []Task        `gorm:"foreignKey:CategoryID"`
}

// Subcategory subdivides a category (e.g. Work -> Meetings).
type Subcategory struct {
	ID          string `gorm:"primaryKey"`
	CategoryID  string `gorm:"index"`
	Name        string
	Description string
	IsActive    bool `gorm:"default:true"`
	Order       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
