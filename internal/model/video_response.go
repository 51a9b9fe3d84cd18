package model

import (
	"time"

	"gorm.io/gorm"
)

// VideoResponse is the durable artifact for one (application, question) pair.
// The composite unique index lets a retried submission replace its artifact
// instead of creating a duplicate row.
type VideoResponse struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	ApplicationID uint           `json:"application_id" gorm:"not null;uniqueIndex:idx_video_responses_application_question"`
	QuestionID    uint           `json:"question_id" gorm:"not null;uniqueIndex:idx_video_responses_application_question"`
	Question      Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	FilePath      string         `json:"file_path" gorm:"not null"` // relative URL under the upload root
	Duration      int            `json:"duration"`                  // seconds
	FileSize      int64          `json:"file_size"`
	MimeType      string         `json:"mime_type"`
	RecordedAt    time.Time      `json:"recorded_at" gorm:"autoCreateTime"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
