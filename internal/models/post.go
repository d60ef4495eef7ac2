package models

import (
	"time"
)

// Post represents a blog post. Image holds the filename of the stored upload,
// addressed under the public images route; every persisted post references a
// file that exists in the image store.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Category  string    `gorm:"not null" json:"category"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Image     string    `gorm:"not null" json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
