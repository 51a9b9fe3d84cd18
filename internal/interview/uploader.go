package interview

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Submission is one multipart payload: the selected take for one question plus
// the identity fields the server needs to reconcile records.
type Submission struct {
	JobID          uint
	QuestionID     uint
	CandidateName  string
	CandidateEmail string
	Filename       string
	MimeType       string
	Duration       int
	Data           []byte
}

// Submitter is the network surface the orchestrator drives. The HTTP client
// implements it; tests substitute fakes.
type Submitter interface {
	SubmitResponse(ctx context.Context, sub Submission) error
	CompleteApplication(ctx context.Context, candidateEmail string, jobID uint) error
}

// UnloadGuard mirrors the browser's beforeunload warning: engaged while an
// upload sequence is in progress, released only once everything is complete.
type UnloadGuard interface {
	Engage()
	Release()
}

// ProgressFunc observes the sequence: done items acknowledged out of total.
// Invoked after each individual upload succeeds.
type ProgressFunc func(done, total int)

// Uploader drives the strictly sequential submission of the finalized takes,
// in question order, followed by exactly one completion call. On any failure
// the sequence halts immediately; a retry resumes from the first item the
// server has not acknowledged, never re-uploading acknowledged ones.
type Uploader struct {
	client     Submitter
	onProgress ProgressFunc
	guard      UnloadGuard

	mu        sync.Mutex
	items     []Submission
	acked     int
	completed bool
}

type UploaderOption func(*Uploader)

func WithProgress(fn ProgressFunc) UploaderOption {
	return func(u *Uploader) { u.onProgress = fn }
}

func WithUnloadGuard(guard UnloadGuard) UploaderOption {
	return func(u *Uploader) { u.guard = guard }
}

func NewUploader(client Submitter, opts ...UploaderOption) *Uploader {
	u := &Uploader{client: client}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Upload submits the finalized responses for one application and, on full
// success, issues the completion handshake. Calling it again after a failure
// resumes the same sequence.
func (u *Uploader) Upload(ctx context.Context, jobID uint, candidateName, candidateEmail string, responses []FinalizedResponse) error {
	if len(responses) == 0 {
		return ErrNothingToUpload
	}

	u.mu.Lock()
	if u.completed {
		u.mu.Unlock()
		return nil
	}
	// The payloads are rebuilt on every call: between retries the candidate
	// may re-record and re-select a take for a question the server has not
	// acknowledged yet, and the stale bytes must never win. Only the ack
	// counter carries over, and only while the question sequence is unchanged.
	if !u.resumesLocked(responses) {
		u.acked = 0
	}
	u.items = buildSubmissions(jobID, candidateName, candidateEmail, responses)
	items := u.items
	start := u.acked
	u.mu.Unlock()

	total := len(items)
	if u.guard != nil {
		u.guard.Engage()
	}

	for i := start; i < total; i++ {
		if err := u.client.SubmitResponse(ctx, items[i]); err != nil {
			log.Error().Err(err).Int("position", i+1).Int("total", total).Msg("upload halted")
			return &UploadError{Position: i + 1, Total: total, Err: err}
		}
		u.mu.Lock()
		u.acked = i + 1
		u.mu.Unlock()
		if u.onProgress != nil {
			u.onProgress(i+1, total)
		}
	}

	// Completion is issued only after every per-question upload has been
	// acknowledged by the server.
	if err := u.client.CompleteApplication(ctx, candidateEmail, jobID); err != nil {
		log.Error().Err(err).Msg("completion call failed")
		return &UploadError{Position: total + 1, Total: total, Err: fmt.Errorf("completing application: %w", err)}
	}

	u.mu.Lock()
	u.completed = true
	u.mu.Unlock()
	if u.guard != nil {
		u.guard.Release()
	}
	log.Info().Int("responses", total).Msg("all uploads acknowledged, application completed")
	return nil
}

// Acked reports how many items the server has acknowledged so far.
func (u *Uploader) Acked() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.acked
}

// Completed reports whether the completion handshake succeeded.
func (u *Uploader) Completed() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.completed
}

// resumesLocked decides whether a new Upload call continues the in-progress
// sequence, keeping the ack counter, or starts a fresh one.
func (u *Uploader) resumesLocked(responses []FinalizedResponse) bool {
	if len(u.items) != len(responses) {
		return false
	}
	for i, r := range responses {
		if u.items[i].QuestionID != r.Question.ID {
			return false
		}
	}
	return true
}

func buildSubmissions(jobID uint, name, email string, responses []FinalizedResponse) []Submission {
	items := make([]Submission, 0, len(responses))
	for i, r := range responses {
		mimeType := r.Take.MimeType
		if mimeType == "" {
			mimeType = "video/webm"
		}
		items = append(items, Submission{
			JobID:          jobID,
			QuestionID:     r.Question.ID,
			CandidateName:  name,
			CandidateEmail: email,
			Filename:       fmt.Sprintf("question-%d.webm", i),
			MimeType:       mimeType,
			Duration:       r.Take.Duration,
			Data:           r.Take.Data,
		})
	}
	return items
}
