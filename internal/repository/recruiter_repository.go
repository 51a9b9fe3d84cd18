package repository

import (
	"hireview/internal/model"

	"gorm.io/gorm"
)

type RecruiterRepository interface {
	Create(recruiter *model.Recruiter) error
	FindByID(id uint) (*model.Recruiter, error)
	FindByEmail(email string) (*model.Recruiter, error)
}

type recruiterRepository struct {
	db *gorm.DB
}

func NewRecruiterRepository(db *gorm.DB) RecruiterRepository {
	return &recruiterRepository{db: db}
}

func (r *recruiterRepository) Create(recruiter *model.Recruiter) error {
	return r.db.Create(recruiter).Error
}

func (r *recruiterRepository) FindByID(id uint) (*model.Recruiter, error) {
	var recruiter model.Recruiter
	if err := r.db.First(&recruiter, id).Error; err != nil {
		return nil, err
	}
	return &recruiter, nil
}

func (r *recruiterRepository) FindByEmail(email string) (*model.Recruiter, error) {
	var recruiter model.Recruiter
	if err := r.db.Where("email = ?", email).First(&recruiter).Error; err != nil {
		return nil, err
	}
	return &recruiter, nil
}
