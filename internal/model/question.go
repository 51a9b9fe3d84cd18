package model

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	JobID        uint           `json:"job_id" gorm:"not null;index"`
	QuestionText string         `json:"question_text" gorm:"type:text;not null"`
	TimeLimit    int            `json:"time_limit" gorm:"not null"` // seconds
	OrderIndex   int            `json:"order_index" gorm:"not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
