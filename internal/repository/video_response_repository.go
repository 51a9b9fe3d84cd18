package repository

import (
	"hireview/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VideoResponseRepository interface {
	// Upsert writes the artifact row for (application, question). A retried
	// submission for the same pair updates the existing row in place instead
	// of creating a duplicate.
	Upsert(response *model.VideoResponse) error
	FindByApplicationAndQuestion(applicationID, questionID uint) (*model.VideoResponse, error)
	FindAllByApplication(applicationID uint) ([]model.VideoResponse, error)
}

type videoResponseRepository struct {
	db *gorm.DB
}

func NewVideoResponseRepository(db *gorm.DB) VideoResponseRepository {
	return &videoResponseRepository{db: db}
}

func (r *videoResponseRepository) Upsert(response *model.VideoResponse) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "application_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"file_path", "duration", "file_size", "mime_type", "recorded_at", "updated_at"}),
	}).Create(response).Error
	if err != nil {
		return err
	}
	// On conflict the struct keeps a zero ID; reload so callers see the row.
	existing, err := r.FindByApplicationAndQuestion(response.ApplicationID, response.QuestionID)
	if err != nil {
		return err
	}
	*response = *existing
	return nil
}

func (r *videoResponseRepository) FindByApplicationAndQuestion(applicationID, questionID uint) (*model.VideoResponse, error) {
	var response model.VideoResponse
	err := r.db.Where("application_id = ? AND question_id = ?", applicationID, questionID).First(&response).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *videoResponseRepository) FindAllByApplication(applicationID uint) ([]model.VideoResponse, error) {
	var responses []model.VideoResponse
	err := r.db.Where("application_id = ?", applicationID).Find(&responses).Error
	return responses, err
}
