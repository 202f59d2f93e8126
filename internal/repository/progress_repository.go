package repository

import (
	"study_quiz_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// ApplyVerdict 以单条upsert原子地推进 (user, question) 的连对状态，
// 避免两个并发评测（如两个浏览器标签页）之间的丢失更新。
// 答对：times_correct 自增，达到阈值置 completed；答错：只刷新 last_attempted_at。
// completed 一旦为真不再回退，调整阈值不影响已落库的标记
func (r *ProgressRepository) ApplyVerdict(userID, questionID uint, correct bool, threshold int) (*model.QuestionProgress, error) {
	now := time.Now()

	progress := model.QuestionProgress{
		UserID:          userID,
		QuestionID:      questionID,
		LastAttemptedAt: &now,
	}

	conflictColumns := []clause.Column{{Name: "user_id"}, {Name: "question_id"}}

	var err error
	if correct {
		progress.TimesCorrect = 1
		progress.Completed = threshold <= 1
		err = r.DB.Clauses(clause.OnConflict{
			Columns: conflictColumns,
			// completed 的赋值排在 times_correct 之前：MySQL 按语句顺序求值，
			// 两个表达式都基于旧的 times_correct，SQLite 的 DO UPDATE 同样取旧行值
			DoUpdates: clause.Set{
				{Column: clause.Column{Name: "completed"}, Value: gorm.Expr("completed OR times_correct + 1 >= ?", threshold)},
				{Column: clause.Column{Name: "times_correct"}, Value: gorm.Expr("times_correct + 1")},
				{Column: clause.Column{Name: "last_attempted_at"}, Value: now},
				{Column: clause.Column{Name: "updated_at"}, Value: now},
			},
		}).Create(&progress).Error
	} else {
		err = r.DB.Clauses(clause.OnConflict{
			Columns: conflictColumns,
			DoUpdates: clause.Set{
				{Column: clause.Column{Name: "last_attempted_at"}, Value: now},
				{Column: clause.Column{Name: "updated_at"}, Value: now},
			},
		}).Create(&progress).Error
	}
	if err != nil {
		return nil, err
	}

	return r.Get(userID, questionID)
}

func (r *ProgressRepository) Get(userID, questionID uint) (*model.QuestionProgress, error) {
	var progress model.QuestionProgress
	err := r.DB.Where("user_id = ? AND question_id = ?", userID, questionID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// ListByUserAndQuestions 拉取用户在一组题目上的全部进度记录
func (r *ProgressRepository) ListByUserAndQuestions(userID uint, questionIDs []uint) ([]model.QuestionProgress, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}
	var records []model.QuestionProgress
	err := r.DB.Where("user_id = ? AND question_id IN ?", userID, questionIDs).
		Find(&records).Error
	return records, err
}
