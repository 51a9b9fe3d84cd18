package dto

import "time"

// QuestionCreateDTO is used when a recruiter creates or replaces the question
// set of a job. Time limits are bounded to the configured 10-30s range.
type QuestionCreateDTO struct {
	QuestionText string `json:"question_text" binding:"required"`
	TimeLimit    int    `json:"time_limit" binding:"required,min=10,max=30"`
	OrderIndex   int    `json:"order_index" binding:"required,min=1"`
}

// JobCreateDTO is for a recruiter to create a job posting with its questions.
type JobCreateDTO struct {
	RecruiterID uint                `json:"recruiter_id" binding:"required"`
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description,omitempty"`
	Questions   []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// JobUpdateDTO replaces a job's metadata and its entire question set.
// Questions are immutable once an interview is underway, so updates are
// rejected when the job already has applications.
type JobUpdateDTO struct {
	JobID       uint                `json:"job_id" binding:"required"`
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description,omitempty"`
	Questions   []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// JobDetailDTO is the recruiter-facing view of a job.
type JobDetailDTO struct {
	ID               uint                  `json:"id"`
	RecruiterID      uint                  `json:"recruiter_id"`
	Title            string                `json:"title"`
	Description      string                `json:"description,omitempty"`
	LinkID           string                `json:"link_id"`
	IsActive         bool                  `json:"is_active"`
	Questions        []QuestionResponseDTO `json:"questions,omitempty"`
	ApplicationCount int                   `json:"application_count"`
	CreatedAt        time.Time             `json:"created_at"`
}

// CandidateDTO identifies a candidate in recruiter views.
type CandidateDTO struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SubmissionSummaryDTO is one application row in the submissions list.
type SubmissionSummaryDTO struct {
	ID             uint               `json:"id"`
	JobID          uint               `json:"job_id"`
	Candidate      CandidateDTO       `json:"candidate"`
	StartedAt      time.Time          `json:"started_at"`
	CompletedAt    *time.Time         `json:"completed_at,omitempty"`
	VideoResponses []VideoResponseDTO `json:"video_responses,omitempty"`
}

// SubmissionDetailDTO is one candidate's full submission for review: the job
// with its ordered questions plus the selected video per question.
type SubmissionDetailDTO struct {
	ID             uint               `json:"id"`
	Candidate      CandidateDTO       `json:"candidate"`
	Job            JobDetailDTO       `json:"job"`
	StartedAt      time.Time          `json:"started_at"`
	CompletedAt    *time.Time         `json:"completed_at,omitempty"`
	VideoResponses []VideoResponseDTO `json:"video_responses,omitempty"`
}
