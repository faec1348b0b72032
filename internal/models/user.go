package models

import "time"

// User is keyed by a surrogate id; Email is the natural key used by every tool.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
