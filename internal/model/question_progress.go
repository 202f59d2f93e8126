package model

import (
	"time"

	"gorm.io/gorm"
)

// QuestionProgress 记录某用户在某道题上的连对次数与掌握状态，
// (user_id, question_id) 唯一，首次作答时惰性创建
// swagger:model QuestionProgress
type QuestionProgress struct {
	ID              uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint           `gorm:"uniqueIndex:idx_user_question;not null" json:"userId"`
	User            User           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	QuestionID      uint           `gorm:"uniqueIndex:idx_user_question;not null" json:"questionId"`
	Question        Question       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	TimesCorrect    int            `gorm:"not null;default:0" json:"timesCorrect"`
	Completed       bool           `gorm:"not null;default:false" json:"completed"`
	LastAttemptedAt *time.Time     `json:"lastAttemptedAt,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (QuestionProgress) TableName() string {
	return "question_progresses"
}

// ApplyVerdict 按一次评测结果推进状态机：
// 答对则连对数加一，达到阈值标记为已掌握；答错只刷新时间，不回退连对数
func (p *QuestionProgress) ApplyVerdict(correct bool, threshold int, now time.Time) {
	p.LastAttemptedAt = &now
	if !correct {
		return
	}
	p.TimesCorrect++
	if p.TimesCorrect >= threshold {
		p.Completed = true
	}
}

// Mastered 判断在给定阈值下该题是否已掌握（用于会话过滤，不回写 Completed）
func (p *QuestionProgress) Mastered(threshold int) bool {
	return p.TimesCorrect >= threshold
}
