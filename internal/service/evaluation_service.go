package service

import (
	"context"
	"fmt"
	"strings"
	"study_quiz_backend/internal/model"
	"study_quiz_backend/internal/repository"
	"study_quiz_backend/internal/util"
	"study_quiz_backend/pkg/logger"
	"study_quiz_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// EvaluationService 把一次自由文本作答交给大模型评分，并据判定推进连对进度
type EvaluationService struct {
	llm       *LLMService
	questions *repository.QuestionRepository
	progress  *repository.ProgressRepository
}

func NewEvaluationService(llm *LLMService, questions *repository.QuestionRepository, progress *repository.ProgressRepository) *EvaluationService {
	return &EvaluationService{
		llm:       llm,
		questions: questions,
		progress:  progress,
	}
}

// Verdict 单次评测结果，message 为面向用户展示的完整解释文本
type Verdict struct {
	Message string `json:"message"`
	Correct bool   `json:"correct"`
}

// ClassifyVerdict 按固定文本约定判定正误：
// 回复包含 "Correct!" 且不包含 "Incorrect" 才算答对。
// 两个标记同时出现时 "Incorrect" 否决，两个都没有按答错处理。
// 该约定与评测提示词中的起始标记指令配套，大小写和感叹号都不能变
func ClassifyVerdict(message string) bool {
	return strings.Contains(message, "Correct!") && !strings.Contains(message, "Incorrect")
}

// Evaluate 取题、构造评测提示词、调用网关、判定正误并原子更新进度。
// threshold 为本次生效的连对阈值（会话内答题用会话阈值，直接评测用配置默认值）
func (s *EvaluationService) Evaluate(ctx context.Context, userID, questionID uint, answer string, threshold int) (*Verdict, *model.QuestionProgress, error) {
	if strings.TrimSpace(answer) == "" {
		return nil, nil, fmt.Errorf("%w: answer must not be empty", util.ErrInvalidInput)
	}

	question, err := s.questions.FindByIDForUser(questionID, userID)
	if err != nil {
		return nil, nil, err
	}
	if question == nil {
		return nil, nil, util.ErrNotFound
	}

	systemPrompt, userPrompt := BuildEvaluationPrompt(question.Question, question.Answer, answer)
	message, err := s.llm.CompleteUser(ctx, systemPrompt, userPrompt, 0)
	if err != nil {
		return nil, nil, err
	}

	correct := ClassifyVerdict(message)
	monitoring.ObserveEvaluation(correct)

	progress, err := s.progress.ApplyVerdict(userID, questionID, correct, threshold)
	if err != nil {
		return nil, nil, err
	}

	logger.Log.Info("answer evaluated",
		zap.Uint("userId", userID),
		zap.Uint("questionId", questionID),
		zap.Bool("correct", correct),
		zap.Int("timesCorrect", progress.TimesCorrect),
		zap.Bool("completed", progress.Completed))

	return &Verdict{Message: message, Correct: correct}, progress, nil
}
