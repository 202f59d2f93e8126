package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"study_quiz_backend/internal/model"
	"study_quiz_backend/internal/util"
	"study_quiz_backend/pkg/logger"

	"go.uber.org/zap"
)

const generationMaxTokens = 4000

// GenerationService 出题相关的大模型编排：从文档生成问答对、
// 解析用户粘贴的原始问答文本、为缺失的答案补全、PDF文本抽取
type GenerationService struct {
	llm *LLMService
}

func NewGenerationService(llm *LLMService) *GenerationService {
	return &GenerationService{llm: llm}
}

// GenerateQuestions 按文档内容生成 count 个问答对。
// 模型输出不保证干净，经由JSON数组提取兜底；提取失败返回 ErrResponseParse
func (s *GenerationService) GenerateQuestions(ctx context.Context, content string, count int) ([]model.QAPair, error) {
	systemPrompt, userPrompt := BuildGenerationPrompt(content, count)
	reply, err := s.llm.CompleteUser(ctx, systemPrompt, userPrompt, generationMaxTokens)
	if err != nil {
		return nil, err
	}

	pairs, err := decodeQAPairs(reply)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("questions generated", zap.Int("requested", count), zap.Int("returned", len(pairs)))
	return pairs, nil
}

// ParseRawInput 把用户粘贴的问答文本整理成结构化问答对。
// 模型漏答的条目逐个用独立的补全请求补上答案，而不是整批失败
func (s *GenerationService) ParseRawInput(ctx context.Context, input string) ([]model.QAPair, error) {
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("%w: input text is empty", util.ErrInvalidInput)
	}

	systemPrompt, userPrompt := BuildParsePrompt(input)
	reply, err := s.llm.CompleteUser(ctx, systemPrompt, userPrompt, generationMaxTokens)
	if err != nil {
		return nil, err
	}

	pairs, err := decodeQAPairs(reply)
	if err != nil {
		return nil, err
	}

	for i := range pairs {
		if strings.TrimSpace(pairs[i].Answer) != "" {
			continue
		}
		answer, err := s.GenerateAnswer(ctx, pairs[i].Question)
		if err != nil {
			return nil, err
		}
		pairs[i].Answer = answer
	}
	return pairs, nil
}

// GenerateAnswer 为单个问题独立生成参考答案
func (s *GenerationService) GenerateAnswer(ctx context.Context, question string) (string, error) {
	systemPrompt := BuildAnswerPrompt(question)
	reply, err := s.llm.CompleteUser(ctx, systemPrompt, "", 0)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// ExtractPDFText 把PDF字节流base64后交给模型做尽力而为的文本抽取
func (s *GenerationService) ExtractPDFText(ctx context.Context, pdf []byte) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(pdf)
	systemPrompt, userPrompt := BuildPDFExtractionPrompt(encoded)
	return s.llm.CompleteUser(ctx, systemPrompt, userPrompt, generationMaxTokens)
}

// decodeQAPairs 从模型回复中提取并校验问答数组
func decodeQAPairs(reply string) ([]model.QAPair, error) {
	raw, err := util.ExtractJSONArray(reply)
	if err != nil {
		return nil, err
	}

	var pairs []model.QAPair
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrResponseParse, err)
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: model returned an empty question set", util.ErrResponseParse)
	}
	for _, p := range pairs {
		if strings.TrimSpace(p.Question) == "" {
			return nil, fmt.Errorf("%w: question text missing in model reply", util.ErrResponseParse)
		}
	}
	return pairs, nil
}
