package model

import (
	"time"

	"gorm.io/gorm"
)

type Job struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	RecruiterID  uint           `json:"recruiter_id" gorm:"not null;index"`
	Title        string         `json:"title" gorm:"not null"`
	Description  string         `json:"description,omitempty" gorm:"type:text"`
	LinkID       string         `json:"link_id" gorm:"not null;uniqueIndex"` // shareable interview link token
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	Questions    []Question     `json:"questions,omitempty" gorm:"foreignKey:JobID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Applications []Application  `json:"applications,omitempty" gorm:"foreignKey:JobID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
