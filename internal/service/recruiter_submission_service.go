package service

import (
	"errors"
	"fmt"
	"sort"

	"hireview/internal/dto"
	"hireview/internal/repository"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// RecruiterSubmissionService is the review side: listing who applied to a job
// and replaying one candidate's selected take per question.
type RecruiterSubmissionService interface {
	ListByJob(jobID uint) ([]dto.SubmissionSummaryDTO, error)
	GetDetail(candidateID, jobID uint) (*dto.SubmissionDetailDTO, error)
}

type recruiterSubmissionService struct {
	applicationRepo repository.ApplicationRepository
}

func NewRecruiterSubmissionService(applicationRepo repository.ApplicationRepository) RecruiterSubmissionService {
	return &recruiterSubmissionService{applicationRepo: applicationRepo}
}

func (s *recruiterSubmissionService) ListByJob(jobID uint) ([]dto.SubmissionSummaryDTO, error) {
	applications, err := s.applicationRepo.FindAllByJobWithDetails(jobID)
	if err != nil {
		log.Error().Err(err).Uint("jobID", jobID).Msg("ListByJob: repository error")
		return nil, fmt.Errorf("fetching submissions for job %d: %w", jobID, err)
	}

	dtos := make([]dto.SubmissionSummaryDTO, 0, len(applications))
	for _, application := range applications {
		var summary dto.SubmissionSummaryDTO
		if err := copier.Copy(&summary, &application); err != nil {
			log.Error().Err(err).Uint("applicationID", application.ID).Msg("ListByJob: copy error")
			continue
		}
		dtos = append(dtos, summary)
	}
	return dtos, nil
}

func (s *recruiterSubmissionService) GetDetail(candidateID, jobID uint) (*dto.SubmissionDetailDTO, error) {
	application, err := s.applicationRepo.FindByCandidateAndJobWithDetails(candidateID, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("fetching submission for candidate %d, job %d: %w", candidateID, jobID, err)
	}

	var resp dto.SubmissionDetailDTO
	if err := copier.Copy(&resp, application); err != nil {
		return nil, fmt.Errorf("preparing submission detail: %w", err)
	}

	// Present video responses in interview order so the reviewer walks the
	// questions the way the candidate did.
	orderByQuestion := make(map[uint]int, len(application.Job.Questions))
	for _, q := range application.Job.Questions {
		orderByQuestion[q.ID] = q.OrderIndex
	}
	sort.SliceStable(resp.VideoResponses, func(i, j int) bool {
		return orderByQuestion[resp.VideoResponses[i].QuestionID] < orderByQuestion[resp.VideoResponses[j].QuestionID]
	})

	return &resp, nil
}
