package repository

import (
	"hireview/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository interface {
	FindByID(id uint) (*model.Question, error)
	FindByJobID(jobID uint) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByJobID(jobID uint) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("job_id = ?", jobID).Order("order_index ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}
