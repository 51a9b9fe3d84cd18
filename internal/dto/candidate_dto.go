package dto

import "time"

// QuestionResponseDTO is one interview question as shown to a candidate.
type QuestionResponseDTO struct {
	ID           uint   `json:"id"`
	JobID        uint   `json:"job_id"`
	QuestionText string `json:"question_text"`
	TimeLimit    int    `json:"time_limit"`
	OrderIndex   int    `json:"order_index"`
}

// JobResponseDTO is the interview definition fetched via a share link.
// Questions are ordered by OrderIndex ascending.
type JobResponseDTO struct {
	ID          uint                  `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Questions   []QuestionResponseDTO `json:"questions"`
}

// CompleteApplicationDTO is the completion handshake payload, sent once after
// every per-question upload has been acknowledged.
type CompleteApplicationDTO struct {
	CandidateEmail string `json:"candidateEmail" binding:"required,email"`
	JobID          uint   `json:"jobId" binding:"required"`
}

// VideoResponseDTO is the durable record returned for each uploaded take.
type VideoResponseDTO struct {
	ID            uint      `json:"id"`
	ApplicationID uint      `json:"application_id"`
	QuestionID    uint      `json:"question_id"`
	FilePath      string    `json:"file_path"`
	Duration      int       `json:"duration"`
	FileSize      int64     `json:"file_size"`
	MimeType      string    `json:"mime_type"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// ApplicationResponseDTO is returned by the completion endpoint.
type ApplicationResponseDTO struct {
	ID          uint       `json:"id"`
	CandidateID uint       `json:"candidate_id"`
	JobID       uint       `json:"job_id"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
