package model

import (
	"time"

	"gorm.io/gorm"
)

// Application pairs one candidate with one job. The composite unique index is
// what makes concurrent find-or-create safe; CompletedAt is set once by the
// completion endpoint and never cleared.
type Application struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	CandidateID    uint            `json:"candidate_id" gorm:"not null;uniqueIndex:idx_applications_candidate_job"`
	JobID          uint            `json:"job_id" gorm:"not null;uniqueIndex:idx_applications_candidate_job"`
	Candidate      Candidate       `json:"candidate,omitempty" gorm:"foreignKey:CandidateID"`
	Job            Job             `json:"job,omitempty" gorm:"foreignKey:JobID"`
	StartedAt      time.Time       `json:"started_at" gorm:"autoCreateTime"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	VideoResponses []VideoResponse `json:"video_responses,omitempty" gorm:"foreignKey:ApplicationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}
