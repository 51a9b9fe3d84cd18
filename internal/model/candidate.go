package model

import (
	"time"

	"gorm.io/gorm"
)

// Candidate is created lazily on first submission; email is the natural key.
type Candidate struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Email     string         `json:"email" gorm:"not null;uniqueIndex"`
	Name      string         `json:"name" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
