package model

import "time"

// News is a published news item. Category carries the canonical category
// name as a denormalized copy, not a foreign key; deleting a category does
// not cascade.
type News struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Category  string    `json:"category" gorm:"index;size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
}
