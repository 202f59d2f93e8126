package service

import (
	"context"
	"fmt"
	"study_quiz_backend/internal/config"
	"study_quiz_backend/internal/model"
	"study_quiz_backend/internal/repository"
	"study_quiz_backend/internal/util"
	"study_quiz_backend/pkg/logger"

	"go.uber.org/zap"
)

// QuizService 答题会话编排：开始会话、选题、会话内评测、调整阈值
type QuizService struct {
	documents  *repository.DocumentRepository
	questions  *repository.QuestionRepository
	progress   *repository.ProgressRepository
	evaluation *EvaluationService
	store      *SessionStore
	defaults   config.QuizConfig
}

func NewQuizService(
	documents *repository.DocumentRepository,
	questions *repository.QuestionRepository,
	progress *repository.ProgressRepository,
	evaluation *EvaluationService,
	store *SessionStore,
	defaults config.QuizConfig,
) *QuizService {
	return &QuizService{
		documents:  documents,
		questions:  questions,
		progress:   progress,
		evaluation: evaluation,
		store:      store,
		defaults:   defaults,
	}
}

// UpdateDefaults 配置热更新时替换默认出题参数，已开始的会话不受影响
func (s *QuizService) UpdateDefaults(defaults config.QuizConfig) {
	s.defaults = defaults
}

// SessionQuestionView 出给前端的题面，不携带参考答案
type SessionQuestionView struct {
	ID       uint   `json:"id"`
	Question string `json:"question"`
}

// SessionView 会话当前快照
type SessionView struct {
	SessionID          string               `json:"sessionId"`
	State              SessionState         `json:"state"`
	Question           *SessionQuestionView `json:"question,omitempty"`
	Threshold          int                  `json:"threshold"`
	TotalQuestions     int                  `json:"totalQuestions"`
	CompletedQuestions int                  `json:"completedQuestions"`
	ActiveQuestions    int                  `json:"activeQuestions"`
	Completed          bool                 `json:"completed"`
}

// AnswerResult 会话内一次作答的结果：评语 + 会话去向
type AnswerResult struct {
	Verdict
	Session SessionView `json:"session"`
}

func sessionView(s *QuizSession, current *SessionQuestion) SessionView {
	view := SessionView{
		SessionID:          s.ID,
		State:              s.State,
		Threshold:          s.Threshold,
		TotalQuestions:     s.TotalQuestions,
		CompletedQuestions: s.CompletedQuestions,
		ActiveQuestions:    len(s.Active),
		Completed:          s.Finished(),
	}
	if current != nil {
		view.Question = &SessionQuestionView{ID: current.ID, Question: current.Question}
	}
	return view
}

// StartSession 拉取文档全部题目及进度，过滤出活跃集并随机出第一题。
// 活跃集为空时立即返回完成态的会话，不出题
func (s *QuizService) StartSession(ctx context.Context, userID, documentID uint, threshold int) (*SessionView, error) {
	if threshold <= 0 {
		threshold = s.defaults.RequiredStreak
	}

	doc, err := s.documents.FindByIDAndUser(documentID, userID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, util.ErrNotFound
	}

	questions, err := s.questions.ListByDocument(documentID)
	if err != nil {
		return nil, err
	}

	progressMap, err := s.progressByQuestion(userID, questions)
	if err != nil {
		return nil, err
	}

	session := NewQuizSession(userID, documentID, threshold, questions, progressMap)

	var current *SessionQuestion
	if !session.Finished() {
		current, _ = session.PickNext()
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	logger.Log.Info("quiz session started",
		zap.String("sessionId", session.ID),
		zap.Uint("documentId", documentID),
		zap.Int("threshold", threshold),
		zap.Int("activeQuestions", len(session.Active)))

	view := sessionView(session, current)
	return &view, nil
}

// NextQuestion 评语展示态下推进到下一题；出题中则重复返回当前题面
func (s *QuizService) NextQuestion(ctx context.Context, userID uint, sessionID string) (*SessionView, error) {
	session, err := s.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	var current *SessionQuestion
	switch session.State {
	case StateCompleted:
		// 终态，照原样返回
	case StateQuestion:
		for i := range session.Active {
			if session.Active[i].ID == session.CurrentID {
				current = &session.Active[i]
				break
			}
		}
		if current == nil {
			current, _ = session.PickNext()
		}
	default:
		current, _ = session.Advance()
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	view := sessionView(session, current)
	return &view, nil
}

// AnswerCurrent 评测当前题的作答并推进会话。
// 落库进度用的是会话阈值，答对且达标的题从活跃集移除
func (s *QuizService) AnswerCurrent(ctx context.Context, userID uint, sessionID, answer string) (*AnswerResult, error) {
	session, err := s.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != StateQuestion {
		return nil, fmt.Errorf("%w: session is not awaiting an answer", util.ErrInvalidInput)
	}

	verdict, _, err := s.evaluation.Evaluate(ctx, userID, session.CurrentID, answer, session.Threshold)
	if err != nil {
		return nil, err
	}

	if err := session.ApplyVerdict(session.CurrentID, verdict.Correct); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	return &AnswerResult{
		Verdict: *verdict,
		Session: sessionView(session, nil),
	}, nil
}

// UpdateThreshold 会话中途调整连对阈值并重筛活跃集
func (s *QuizService) UpdateThreshold(ctx context.Context, userID uint, sessionID string, threshold int) (*SessionView, error) {
	if threshold <= 0 {
		return nil, fmt.Errorf("%w: threshold must be positive", util.ErrInvalidInput)
	}

	session, err := s.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	session.SetThreshold(threshold)

	var current *SessionQuestion
	if session.State == StateQuestion {
		for i := range session.Active {
			if session.Active[i].ID == session.CurrentID {
				current = &session.Active[i]
				break
			}
		}
		// 当前题刚好被重筛移除时直接换一题
		if current == nil {
			current, _ = session.PickNext()
		}
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	view := sessionView(session, current)
	return &view, nil
}

func (s *QuizService) loadSession(ctx context.Context, userID uint, sessionID string) (*QuizSession, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserID != userID {
		return nil, util.ErrNotFound
	}
	return session, nil
}

func (s *QuizService) progressByQuestion(userID uint, questions []model.Question) (map[uint]*model.QuestionProgress, error) {
	ids := make([]uint, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}

	records, err := s.progress.ListByUserAndQuestions(userID, ids)
	if err != nil {
		return nil, err
	}

	progressMap := make(map[uint]*model.QuestionProgress, len(records))
	for i := range records {
		progressMap[records[i].QuestionID] = &records[i]
	}
	return progressMap, nil
}
