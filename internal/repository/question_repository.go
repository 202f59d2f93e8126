package repository

import (
	"errors"
	"study_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// FindByIDForUser 校验题目归属：只有所属文档的拥有者能访问
func (r *QuestionRepository) FindByIDForUser(id, userID uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.Joins("JOIN documents ON documents.id = questions.document_id").
		Where("questions.id = ? AND documents.user_id = ?", id, userID).
		First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) ListByDocument(documentID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("document_id = ?", documentID).
		Order("id ASC").
		Find(&questions).Error
	return questions, err
}
