package service

import (
	"fmt"
	"math/rand"
	"study_quiz_backend/internal/model"
	"study_quiz_backend/internal/util"
	"time"

	"github.com/google/uuid"
)

// SessionState 会话视图状态机：出题中 → 展示评语 → 出题中 / 已完成
type SessionState string

const (
	StateQuestion  SessionState = "question"
	StateAnswer    SessionState = "answer"
	StateCompleted SessionState = "completed"
)

// SessionQuestion 会话活跃集中的一道题，连对数从落库进度快照而来，随会话内作答推进
type SessionQuestion struct {
	ID           uint   `json:"id"`
	Question     string `json:"question"`
	TimesCorrect int    `json:"timesCorrect"`
}

// QuizSession 一次答题会话。活跃集 = 连对数未达阈值的题目，
// 只会收缩不会增长；活跃集清空即会话完成
type QuizSession struct {
	ID                 string            `json:"id"`
	UserID             uint              `json:"userId"`
	DocumentID         uint              `json:"documentId"`
	Threshold          int               `json:"threshold"`
	Active             []SessionQuestion `json:"active"`
	TotalQuestions     int               `json:"totalQuestions"`
	CompletedQuestions int               `json:"completedQuestions"`
	State              SessionState      `json:"state"`
	CurrentID          uint              `json:"currentId"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// NewQuizSession 从全量题目加各自进度构建会话，过滤掉已达阈值的题。
// 活跃集为空时直接进入完成态，不出题
func NewQuizSession(userID, documentID uint, threshold int, questions []model.Question, progress map[uint]*model.QuestionProgress) *QuizSession {
	now := time.Now()
	s := &QuizSession{
		ID:             uuid.New().String(),
		UserID:         userID,
		DocumentID:     documentID,
		Threshold:      threshold,
		TotalQuestions: len(questions),
		State:          StateQuestion,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	for _, q := range questions {
		times := 0
		if p, ok := progress[q.ID]; ok {
			times = p.TimesCorrect
		}
		if times < threshold {
			s.Active = append(s.Active, SessionQuestion{
				ID:           q.ID,
				Question:     q.Question,
				TimesCorrect: times,
			})
		}
	}
	s.CompletedQuestions = s.TotalQuestions - len(s.Active)

	if len(s.Active) == 0 {
		s.State = StateCompleted
	}
	return s
}

// PickNext 在活跃集中均匀随机选题。不做防重复，立刻重复同一道题是可接受行为
func (s *QuizSession) PickNext() (*SessionQuestion, bool) {
	if len(s.Active) == 0 {
		s.State = StateCompleted
		s.CurrentID = 0
		return nil, false
	}
	picked := s.Active[rand.Intn(len(s.Active))]
	s.CurrentID = picked.ID
	s.State = StateQuestion
	s.UpdatedAt = time.Now()
	return &picked, true
}

// ApplyVerdict 把一次评测结果记入会话：答对推进该题连对数，
// 达到阈值则从活跃集移除；随后进入评语展示态
func (s *QuizSession) ApplyVerdict(questionID uint, correct bool) error {
	if s.State != StateQuestion {
		return fmt.Errorf("%w: session is not awaiting an answer", util.ErrInvalidInput)
	}
	if s.CurrentID != questionID {
		return fmt.Errorf("%w: question %d is not the current question", util.ErrInvalidInput, questionID)
	}

	if correct {
		for i := range s.Active {
			if s.Active[i].ID != questionID {
				continue
			}
			s.Active[i].TimesCorrect++
			if s.Active[i].TimesCorrect >= s.Threshold {
				s.Active = append(s.Active[:i], s.Active[i+1:]...)
				s.CompletedQuestions++
			}
			break
		}
	}

	s.State = StateAnswer
	s.UpdatedAt = time.Now()
	return nil
}

// Advance 评语展示态下用户点"下一题"：活跃集已空则收束到完成态，否则随机出下一题。
// 这是展示评语时唯一允许的状态迁移
func (s *QuizSession) Advance() (*SessionQuestion, bool) {
	if s.State == StateCompleted {
		return nil, false
	}
	return s.PickNext()
}

// SetThreshold 会话中途调整连对阈值。只重筛当前活跃集（降低阈值会移除已达标的题），
// 已移除的题不会回到活跃集，已落库的 completed 标记不受影响
func (s *QuizSession) SetThreshold(threshold int) {
	s.Threshold = threshold
	kept := s.Active[:0]
	for _, q := range s.Active {
		if q.TimesCorrect < threshold {
			kept = append(kept, q)
		} else {
			s.CompletedQuestions++
		}
	}
	s.Active = kept
	if len(s.Active) == 0 && s.State != StateCompleted {
		s.State = StateCompleted
		s.CurrentID = 0
	}
	s.UpdatedAt = time.Now()
}

// Finished 活跃集耗尽即会话完成
func (s *QuizSession) Finished() bool {
	return len(s.Active) == 0
}
