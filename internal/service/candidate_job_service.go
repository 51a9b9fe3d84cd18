package service

import (
	"errors"
	"fmt"

	"hireview/internal/dto"
	"hireview/internal/repository"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CandidateJobService resolves interview share links for candidates.
type CandidateJobService interface {
	GetJobByLink(linkID string) (*dto.JobResponseDTO, error)
}

type candidateJobService struct {
	jobRepo repository.JobRepository
}

func NewCandidateJobService(jobRepo repository.JobRepository) CandidateJobService {
	return &candidateJobService{jobRepo: jobRepo}
}

func (s *candidateJobService) GetJobByLink(linkID string) (*dto.JobResponseDTO, error) {
	job, err := s.jobRepo.FindActiveByLinkID(linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Inactive links look the same as unknown ones to the candidate.
			return nil, ErrJobNotFound
		}
		log.Error().Err(err).Str("linkID", linkID).Msg("GetJobByLink: repository error")
		return nil, fmt.Errorf("fetching job by link: %w", err)
	}

	var resp dto.JobResponseDTO
	if err := copier.Copy(&resp, job); err != nil {
		return nil, fmt.Errorf("preparing job response: %w", err)
	}
	return &resp, nil
}
