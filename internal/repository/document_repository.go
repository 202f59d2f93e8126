package repository

import (
	"errors"
	"study_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type DocumentRepository struct {
	DB *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

// DocumentStats 文档列表项携带的聚合进度
type DocumentStats struct {
	QuestionsCount int64 `json:"questionsCount"`
	CompletedCount int64 `json:"completedCount"`
}

// CreateWithQuestions 在同一事务中落库文档与生成的题目，
// 任一失败全部回滚，保证不会留下没有题目的半成品文档
func (r *DocumentRepository) CreateWithQuestions(doc *model.Document, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(doc).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].DocumentID = doc.ID
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		doc.Questions = questions
		return nil
	})
}

// FindByIDAndUser 只返回属于该用户的文档，越权访问按不存在处理
func (r *DocumentRepository) FindByIDAndUser(id, userID uint) (*model.Document, error) {
	var doc model.Document
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) ListByUser(userID uint) ([]model.Document, error) {
	var docs []model.Document
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}

// Stats 统计某文档的题目总数与当前用户已掌握数
func (r *DocumentRepository) Stats(documentID, userID uint) (*DocumentStats, error) {
	var stats DocumentStats

	err := r.DB.Model(&model.Question{}).
		Where("document_id = ?", documentID).
		Count(&stats.QuestionsCount).Error
	if err != nil {
		return nil, err
	}

	err = r.DB.Model(&model.QuestionProgress{}).
		Joins("JOIN questions ON questions.id = question_progresses.question_id").
		Where("questions.document_id = ? AND question_progresses.user_id = ? AND question_progresses.completed = ?",
			documentID, userID, true).
		Count(&stats.CompletedCount).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// Delete 物理删除文档，题目与进度经外键级联一并清除
func (r *DocumentRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&model.Document{}, id).Error
}
