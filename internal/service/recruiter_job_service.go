package service

import (
	"errors"
	"fmt"

	"hireview/config"
	"hireview/internal/dto"
	"hireview/internal/model"
	"hireview/internal/repository"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// RecruiterJobService owns the job/question CRUD surface for recruiters.
type RecruiterJobService interface {
	CreateJob(req dto.JobCreateDTO) (*dto.JobDetailDTO, error)
	ListJobs(recruiterID uint) ([]dto.JobDetailDTO, error)
	UpdateJob(req dto.JobUpdateDTO) (*dto.JobDetailDTO, error)
	DeleteJob(jobID uint) error
}

type recruiterJobService struct {
	jobRepo repository.JobRepository
	cfg     *config.Config
}

func NewRecruiterJobService(jobRepo repository.JobRepository, cfg *config.Config) RecruiterJobService {
	return &recruiterJobService{jobRepo: jobRepo, cfg: cfg}
}

func (s *recruiterJobService) validateQuestions(questions []dto.QuestionCreateDTO) ([]model.Question, error) {
	orderSeen := make(map[int]bool)
	models := make([]model.Question, 0, len(questions))

	for _, q := range questions {
		if orderSeen[q.OrderIndex] {
			return nil, fmt.Errorf("duplicate order index %d in questions", q.OrderIndex)
		}
		orderSeen[q.OrderIndex] = true

		if q.TimeLimit < s.cfg.Interview.MinTimeLimit || q.TimeLimit > s.cfg.Interview.MaxTimeLimit {
			return nil, fmt.Errorf("question time limit %ds outside allowed range %d-%ds",
				q.TimeLimit, s.cfg.Interview.MinTimeLimit, s.cfg.Interview.MaxTimeLimit)
		}

		var questionModel model.Question
		if err := copier.Copy(&questionModel, &q); err != nil {
			return nil, fmt.Errorf("copying question: %w", err)
		}
		models = append(models, questionModel)
	}
	return models, nil
}

func (s *recruiterJobService) CreateJob(req dto.JobCreateDTO) (*dto.JobDetailDTO, error) {
	questions, err := s.validateQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	job := model.Job{
		RecruiterID: req.RecruiterID,
		Title:       req.Title,
		Description: req.Description,
		LinkID:      uuid.NewString(),
		IsActive:    true,
		Questions:   questions,
	}
	if err := s.jobRepo.Create(&job); err != nil {
		log.Error().Err(err).Msg("CreateJob: failed to create job")
		return nil, fmt.Errorf("creating job: %w", err)
	}

	created, err := s.jobRepo.FindByIDWithQuestions(job.ID)
	if err != nil {
		created = &job
	}

	var resp dto.JobDetailDTO
	if err := copier.Copy(&resp, created); err != nil {
		return nil, fmt.Errorf("preparing job response: %w", err)
	}
	return &resp, nil
}

func (s *recruiterJobService) ListJobs(recruiterID uint) ([]dto.JobDetailDTO, error) {
	jobsWithCount, err := s.jobRepo.FindAllByRecruiterWithApplicationCount(recruiterID)
	if err != nil {
		log.Error().Err(err).Uint("recruiterID", recruiterID).Msg("ListJobs: repository error")
		return nil, fmt.Errorf("fetching jobs: %w", err)
	}

	dtos := make([]dto.JobDetailDTO, 0, len(jobsWithCount))
	for _, jwc := range jobsWithCount {
		var d dto.JobDetailDTO
		if err := copier.Copy(&d, &jwc.Job); err != nil {
			continue
		}
		d.ApplicationCount = jwc.ApplicationCount
		dtos = append(dtos, d)
	}
	return dtos, nil
}

func (s *recruiterJobService) UpdateJob(req dto.JobUpdateDTO) (*dto.JobDetailDTO, error) {
	job, err := s.jobRepo.FindByID(req.JobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("looking up job %d: %w", req.JobID, err)
	}

	// Questions are immutable once candidates have started interviewing.
	count, err := s.jobRepo.CountApplications(job.ID)
	if err != nil {
		return nil, fmt.Errorf("counting applications for job %d: %w", job.ID, err)
	}
	if count > 0 {
		return nil, ErrJobLocked
	}

	questions, err := s.validateQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	job.Title = req.Title
	job.Description = req.Description
	if err := s.jobRepo.ReplaceQuestions(job, questions); err != nil {
		log.Error().Err(err).Uint("jobID", job.ID).Msg("UpdateJob: failed to replace questions")
		return nil, fmt.Errorf("updating job: %w", err)
	}

	updated, err := s.jobRepo.FindByIDWithQuestions(job.ID)
	if err != nil {
		updated = job
	}

	var resp dto.JobDetailDTO
	if err := copier.Copy(&resp, updated); err != nil {
		return nil, fmt.Errorf("preparing job response: %w", err)
	}
	return &resp, nil
}

func (s *recruiterJobService) DeleteJob(jobID uint) error {
	if _, err := s.jobRepo.FindByID(jobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJobNotFound
		}
		return fmt.Errorf("looking up job %d: %w", jobID, err)
	}
	return s.jobRepo.Delete(jobID)
}
