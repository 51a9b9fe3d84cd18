package repository

import (
	"hireview/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository interface {
	// FindOrCreate resolves the application for (candidate, job), creating it
	// lazily on first submission. Same ON CONFLICT DO NOTHING + re-fetch
	// pattern as candidates, keyed on the composite unique index.
	FindOrCreate(candidateID, jobID uint) (*model.Application, error)
	FindByCandidateAndJob(candidateID, jobID uint) (*model.Application, error)
	FindByCandidateAndJobWithDetails(candidateID, jobID uint) (*model.Application, error)
	FindAllByJobWithDetails(jobID uint) ([]model.Application, error)
	Update(application *model.Application) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) FindOrCreate(candidateID, jobID uint) (*model.Application, error) {
	application := model.Application{CandidateID: candidateID, JobID: jobID}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "candidate_id"}, {Name: "job_id"}},
		DoNothing: true,
	}).Create(&application).Error
	if err != nil {
		return nil, err
	}
	return r.FindByCandidateAndJob(candidateID, jobID)
}

func (r *applicationRepository) FindByCandidateAndJob(candidateID, jobID uint) (*model.Application, error) {
	var application model.Application
	err := r.db.Where("candidate_id = ? AND job_id = ?", candidateID, jobID).First(&application).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) FindByCandidateAndJobWithDetails(candidateID, jobID uint) (*model.Application, error) {
	var application model.Application
	err := r.db.
		Preload("Candidate").
		Preload("Job.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_index ASC")
		}).
		Preload("VideoResponses.Question").
		Where("candidate_id = ? AND job_id = ?", candidateID, jobID).
		First(&application).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) FindAllByJobWithDetails(jobID uint) ([]model.Application, error) {
	var applications []model.Application
	err := r.db.
		Preload("Candidate").
		Preload("VideoResponses.Question").
		Where("job_id = ?", jobID).
		Order("started_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *applicationRepository) Update(application *model.Application) error {
	return r.db.Save(application).Error
}
