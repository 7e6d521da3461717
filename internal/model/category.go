package model

import "time"

// Category groups news items. Name is the natural key; matching is
// case-insensitive and the casing recorded at first creation is canonical.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
