package service

import (
	"errors"
	"fmt"
	"time"

	"hireview/internal/dto"
	"hireview/internal/model"
	"hireview/internal/repository"
	"hireview/internal/storage"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SubmitResponseInput carries one decoded multipart submission: the selected
// take for a single question plus the identity fields that let the server
// establish candidate and application records lazily.
type SubmitResponseInput struct {
	JobID          uint
	QuestionID     uint
	CandidateName  string
	CandidateEmail string
	Duration       int
	MimeType       string
	Data           []byte
}

// SubmissionService is the server-side reconciler for the candidate pipeline:
// it links candidate/application/video-response records for each uploaded take
// and stamps the application finished on the completion handshake.
type SubmissionService interface {
	SubmitResponse(input SubmitResponseInput) (*dto.VideoResponseDTO, error)
	CompleteApplication(candidateEmail string, jobID uint) (*dto.ApplicationResponseDTO, error)
}

type submissionService struct {
	jobRepo         repository.JobRepository
	questionRepo    repository.QuestionRepository
	candidateRepo   repository.CandidateRepository
	applicationRepo repository.ApplicationRepository
	videoRepo       repository.VideoResponseRepository
	mediaStore      storage.MediaStore
}

func NewSubmissionService(
	jobRepo repository.JobRepository,
	questionRepo repository.QuestionRepository,
	candidateRepo repository.CandidateRepository,
	applicationRepo repository.ApplicationRepository,
	videoRepo repository.VideoResponseRepository,
	mediaStore storage.MediaStore,
) SubmissionService {
	return &submissionService{
		jobRepo:         jobRepo,
		questionRepo:    questionRepo,
		candidateRepo:   candidateRepo,
		applicationRepo: applicationRepo,
		videoRepo:       videoRepo,
		mediaStore:      mediaStore,
	}
}

func (s *submissionService) SubmitResponse(input SubmitResponseInput) (*dto.VideoResponseDTO, error) {
	if _, err := s.jobRepo.FindByID(input.JobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("looking up job %d: %w", input.JobID, err)
	}

	question, err := s.questionRepo.FindByID(input.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("looking up question %d: %w", input.QuestionID, err)
	}
	if question.JobID != input.JobID {
		// A question id from another job is as invalid as an unknown one.
		return nil, ErrQuestionNotFound
	}

	candidate, err := s.candidateRepo.FindOrCreate(input.CandidateEmail, input.CandidateName)
	if err != nil {
		return nil, fmt.Errorf("resolving candidate %s: %w", input.CandidateEmail, err)
	}

	application, err := s.applicationRepo.FindOrCreate(candidate.ID, input.JobID)
	if err != nil {
		return nil, fmt.Errorf("resolving application for candidate %d, job %d: %w", candidate.ID, input.JobID, err)
	}

	// Remember any prior artifact for this (application, question) so a retried
	// submission does not leave an orphaned file behind.
	var previousPath string
	if prior, err := s.videoRepo.FindByApplicationAndQuestion(application.ID, question.ID); err == nil {
		previousPath = prior.FilePath
	}

	url, err := s.mediaStore.Save(input.Data, candidate.ID, question.ID)
	if err != nil {
		return nil, fmt.Errorf("storing media: %w", err)
	}

	videoResponse := model.VideoResponse{
		ApplicationID: application.ID,
		QuestionID:    question.ID,
		FilePath:      url,
		Duration:      input.Duration,
		FileSize:      int64(len(input.Data)),
		MimeType:      input.MimeType,
		RecordedAt:    time.Now(),
	}
	if err := s.videoRepo.Upsert(&videoResponse); err != nil {
		log.Error().Err(err).Uint("applicationID", application.ID).Uint("questionID", question.ID).Msg("SubmitResponse: failed to persist video response")
		return nil, fmt.Errorf("persisting video response: %w", err)
	}

	if previousPath != "" && previousPath != videoResponse.FilePath {
		if err := s.mediaStore.Remove(previousPath); err != nil {
			log.Warn().Err(err).Str("path", previousPath).Msg("SubmitResponse: could not remove superseded artifact")
		}
	}

	log.Info().
		Uint("applicationID", application.ID).
		Uint("questionID", question.ID).
		Int64("bytes", videoResponse.FileSize).
		Msg("Video response stored")

	var resp dto.VideoResponseDTO
	if err := copier.Copy(&resp, &videoResponse); err != nil {
		return nil, fmt.Errorf("preparing response: %w", err)
	}
	return &resp, nil
}

func (s *submissionService) CompleteApplication(candidateEmail string, jobID uint) (*dto.ApplicationResponseDTO, error) {
	candidate, err := s.candidateRepo.FindByEmail(candidateEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("looking up candidate %s: %w", candidateEmail, err)
	}

	application, err := s.applicationRepo.FindByCandidateAndJob(candidate.ID, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("looking up application for candidate %d, job %d: %w", candidate.ID, jobID, err)
	}

	// Set-if-unset: a repeated completion call neither errors nor moves the
	// timestamp.
	if application.CompletedAt == nil {
		now := time.Now()
		application.CompletedAt = &now
		if err := s.applicationRepo.Update(application); err != nil {
			return nil, fmt.Errorf("completing application %d: %w", application.ID, err)
		}
		log.Info().Uint("applicationID", application.ID).Msg("Application marked complete")
	}

	var resp dto.ApplicationResponseDTO
	if err := copier.Copy(&resp, application); err != nil {
		return nil, fmt.Errorf("preparing response: %w", err)
	}
	return &resp, nil
}
