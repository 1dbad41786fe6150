package models

import "time"

// Category groups blog posts. IDs are slug-like strings ("engineering",
// "design", ...) drawn from a fixed allow-list seeded at startup.
type Category struct {
	ID          string    `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Description string    `json:"description" db:"description" gorm:"type:text"`
	Icon        string    `json:"icon" db:"icon" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
