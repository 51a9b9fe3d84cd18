package model

import (
	"time"

	"gorm.io/gorm"
)

type Recruiter struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Email     string         `json:"email" gorm:"not null;uniqueIndex"`
	Name      string         `json:"name" gorm:"not null"`
	Password  string         `json:"-" gorm:"not null"` // stored as-is, hardening is out of scope
	Jobs      []Job          `json:"jobs,omitempty" gorm:"foreignKey:RecruiterID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
