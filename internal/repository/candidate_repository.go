package repository

import (
	"hireview/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CandidateRepository interface {
	// FindOrCreate resolves a candidate by email, creating the row on first
	// contact. Concurrent callers racing on the same email all converge on
	// one row: the insert uses ON CONFLICT DO NOTHING against the unique
	// email index and the row is re-fetched afterwards.
	FindOrCreate(email, name string) (*model.Candidate, error)
	FindByEmail(email string) (*model.Candidate, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) FindOrCreate(email, name string) (*model.Candidate, error) {
	candidate := model.Candidate{Email: email, Name: name}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&candidate).Error
	if err != nil {
		return nil, err
	}
	// DoNothing leaves the struct without an ID when the row already existed.
	return r.FindByEmail(email)
}

func (r *candidateRepository) FindByEmail(email string) (*model.Candidate, error) {
	var candidate model.Candidate
	if err := r.db.Where("email = ?", email).First(&candidate).Error; err != nil {
		return nil, err
	}
	return &candidate, nil
}
