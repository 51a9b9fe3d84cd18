package service

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"hireview/internal/model"
	"hireview/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "hireview.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	err = db.AutoMigrate(
		&model.Recruiter{},
		&model.Job{},
		&model.Question{},
		&model.Candidate{},
		&model.Application{},
		&model.VideoResponse{},
	)
	if err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

// fakeMediaStore hands back unique URLs and records removals.
type fakeMediaStore struct {
	saves   int
	removed []string
}

func (s *fakeMediaStore) Save(data []byte, candidateID, questionID uint) (string, error) {
	s.saves++
	return fmt.Sprintf("/uploads/videos/%d-%d-%d.webm", s.saves, candidateID, questionID), nil
}

func (s *fakeMediaStore) Remove(url string) error {
	s.removed = append(s.removed, url)
	return nil
}

func newSubmissionFixture(t *testing.T) (SubmissionService, *gorm.DB, *fakeMediaStore, *model.Job) {
	t.Helper()
	db := newTestDB(t)
	job := &model.Job{
		RecruiterID: 1,
		Title:       "Backend Engineer",
		LinkID:      "link-1",
		IsActive:    true,
		Questions: []model.Question{
			{QuestionText: "Tell us about yourself", TimeLimit: 30, OrderIndex: 0},
			{QuestionText: "Describe a hard bug", TimeLimit: 20, OrderIndex: 1},
		},
	}
	if err := db.Create(job).Error; err != nil {
		t.Fatalf("seeding job: %v", err)
	}

	store := &fakeMediaStore{}
	svc := NewSubmissionService(
		repository.NewJobRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewCandidateRepository(db),
		repository.NewApplicationRepository(db),
		repository.NewVideoResponseRepository(db),
		store,
	)
	return svc, db, store, job
}

func submitInput(job *model.Job, questionIdx int) SubmitResponseInput {
	return SubmitResponseInput{
		JobID:          job.ID,
		QuestionID:     job.Questions[questionIdx].ID,
		CandidateName:  "Ada Lovelace",
		CandidateEmail: "ada@example.com",
		Duration:       12,
		MimeType:       "video/webm",
		Data:           []byte("webm-bytes"),
	}
}

func TestSubmitResponseCreatesRecordsOnce(t *testing.T) {
	svc, db, _, job := newSubmissionFixture(t)

	if _, err := svc.SubmitResponse(submitInput(job, 0)); err != nil {
		t.Fatalf("first submission: %v", err)
	}
	if _, err := svc.SubmitResponse(submitInput(job, 1)); err != nil {
		t.Fatalf("second submission: %v", err)
	}

	var candidates, applications, videos int64
	db.Model(&model.Candidate{}).Count(&candidates)
	db.Model(&model.Application{}).Count(&applications)
	db.Model(&model.VideoResponse{}).Count(&videos)
	if candidates != 1 || applications != 1 || videos != 2 {
		t.Errorf("candidates=%d applications=%d videos=%d, want 1/1/2", candidates, applications, videos)
	}

	var candidate model.Candidate
	if err := db.First(&candidate, "email = ?", "ada@example.com").Error; err != nil {
		t.Fatalf("candidate row missing: %v", err)
	}
	if candidate.Name != "Ada Lovelace" {
		t.Errorf("candidate name = %q", candidate.Name)
	}
}

func TestSubmitResponseRetryReplacesRow(t *testing.T) {
	svc, db, store, job := newSubmissionFixture(t)

	first, err := svc.SubmitResponse(submitInput(job, 0))
	if err != nil {
		t.Fatalf("first submission: %v", err)
	}

	retry := submitInput(job, 0)
	retry.Duration = 20
	second, err := svc.SubmitResponse(retry)
	if err != nil {
		t.Fatalf("retried submission: %v", err)
	}

	var videos int64
	db.Model(&model.VideoResponse{}).Count(&videos)
	if videos != 1 {
		t.Fatalf("videos = %d, retry must not duplicate the row", videos)
	}

	var row model.VideoResponse
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("video row: %v", err)
	}
	if row.Duration != 20 {
		t.Errorf("duration = %d, retry payload not applied", row.Duration)
	}
	if row.FilePath == first.FilePath {
		t.Errorf("file path unchanged after retry: %s", row.FilePath)
	}
	if len(store.removed) != 1 || store.removed[0] != first.FilePath {
		t.Errorf("superseded artifact not removed: removed=%v", store.removed)
	}
	if second.FilePath != row.FilePath {
		t.Errorf("returned DTO path %q does not match the stored row %q", second.FilePath, row.FilePath)
	}
}

func TestSubmitResponseValidation(t *testing.T) {
	svc, db, _, job := newSubmissionFixture(t)

	input := submitInput(job, 0)
	input.JobID = 999
	if _, err := svc.SubmitResponse(input); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("unknown job: got %v, want ErrJobNotFound", err)
	}

	input = submitInput(job, 0)
	input.QuestionID = 999
	if _, err := svc.SubmitResponse(input); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("unknown question: got %v, want ErrQuestionNotFound", err)
	}

	// A question belonging to a different job is rejected the same way.
	other := &model.Job{
		RecruiterID: 1,
		Title:       "Other role",
		LinkID:      "link-2",
		Questions:   []model.Question{{QuestionText: "Why us?", TimeLimit: 15, OrderIndex: 0}},
	}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("seeding second job: %v", err)
	}
	input = submitInput(job, 0)
	input.QuestionID = other.Questions[0].ID
	if _, err := svc.SubmitResponse(input); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("cross-job question: got %v, want ErrQuestionNotFound", err)
	}
}

func TestCompleteApplicationIdempotent(t *testing.T) {
	svc, db, _, job := newSubmissionFixture(t)

	if _, err := svc.SubmitResponse(submitInput(job, 0)); err != nil {
		t.Fatalf("submission: %v", err)
	}

	first, err := svc.CompleteApplication("ada@example.com", job.ID)
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if first.CompletedAt == nil {
		t.Fatal("CompletedAt not set")
	}

	time.Sleep(10 * time.Millisecond)
	second, err := svc.CompleteApplication("ada@example.com", job.ID)
	if err != nil {
		t.Fatalf("repeated completion: %v", err)
	}
	// A re-stamped timestamp would land after the sleep; set-if-unset keeps it.
	if second.CompletedAt == nil || second.CompletedAt.After(first.CompletedAt.Add(5*time.Millisecond)) {
		t.Errorf("repeated completion moved the timestamp: %v vs %v", second.CompletedAt, first.CompletedAt)
	}

	var applications int64
	db.Model(&model.Application{}).Count(&applications)
	if applications != 1 {
		t.Errorf("applications = %d, want 1", applications)
	}
}

func TestCompleteApplicationUnknownRecords(t *testing.T) {
	svc, _, _, job := newSubmissionFixture(t)

	if _, err := svc.CompleteApplication("nobody@example.com", job.ID); !errors.Is(err, ErrCandidateNotFound) {
		t.Errorf("unknown candidate: got %v, want ErrCandidateNotFound", err)
	}

	if _, err := svc.SubmitResponse(submitInput(job, 0)); err != nil {
		t.Fatalf("submission: %v", err)
	}
	if _, err := svc.CompleteApplication("ada@example.com", 999); !errors.Is(err, ErrApplicationNotFound) {
		t.Errorf("unknown application: got %v, want ErrApplicationNotFound", err)
	}
}
