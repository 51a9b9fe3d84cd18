package repository

import (
	"hireview/internal/model"

	"gorm.io/gorm"
)

type JobRepository interface {
	Create(job *model.Job) error
	FindByID(id uint) (*model.Job, error)
	FindByIDWithQuestions(id uint) (*model.Job, error)
	// FindActiveByLinkID resolves a candidate share link to a live job with
	// its questions ordered by OrderIndex.
	FindActiveByLinkID(linkID string) (*model.Job, error)
	FindAllByRecruiterWithApplicationCount(recruiterID uint) ([]struct {
		model.Job
		ApplicationCount int
	}, error)
	ReplaceQuestions(job *model.Job, questions []model.Question) error
	Delete(id uint) error
	CountApplications(jobID uint) (int64, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(job *model.Job) error {
	// Create with associations also persists job.Questions via the foreign key.
	return r.db.Create(job).Error
}

func (r *jobRepository) FindByID(id uint) (*model.Job, error) {
	var job model.Job
	if err := r.db.First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) FindByIDWithQuestions(id uint) (*model.Job, error) {
	var job model.Job
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_index ASC")
	}).First(&job, id).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) FindActiveByLinkID(linkID string) (*model.Job, error) {
	var job model.Job
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_index ASC")
	}).Where("link_id = ? AND is_active = ?", linkID, true).First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) FindAllByRecruiterWithApplicationCount(recruiterID uint) ([]struct {
	model.Job
	ApplicationCount int
}, error) {
	var results []struct {
		model.Job
		ApplicationCount int
	}
	err := r.db.Model(&model.Job{}).
		Select("jobs.*, (SELECT COUNT(*) FROM applications WHERE applications.job_id = jobs.id AND applications.deleted_at IS NULL) as application_count").
		Where("jobs.recruiter_id = ? AND jobs.deleted_at IS NULL", recruiterID).
		Order("jobs.created_at DESC").
		Scan(&results).Error
	return results, err
}

// ReplaceQuestions swaps out the job's entire question set atomically, along
// with any pending metadata changes on the job itself.
func (r *jobRepository) ReplaceQuestions(job *model.Job, questions []model.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", job.ID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].JobID = job.ID
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		job.Questions = questions
		return tx.Save(job).Error
	})
}

func (r *jobRepository) Delete(id uint) error {
	return r.db.Delete(&model.Job{}, id).Error
}

func (r *jobRepository) CountApplications(jobID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Application{}).Where("job_id = ?", jobID).Count(&count).Error
	return count, err
}
