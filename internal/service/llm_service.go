package service

import (
	"context"
	"errors"
	"fmt"
	"study_quiz_backend/internal/config"
	"study_quiz_backend/internal/util"
	"study_quiz_backend/pkg/logger"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// LLMService 包装对外部补全服务的单次同步调用。
// BaseURL 可指向任意 OpenAI 兼容端点，换供应商只需要改配置，
// 不涉及评测引擎和进度跟踪。没有重试、缓存和流式输出
type LLMService struct {
	client *openai.Client
	cfg    config.LLMConfig
}

func NewLLMService(cfg config.LLMConfig) *LLMService {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &LLMService{
		client: openai.NewClientWithConfig(clientCfg),
		cfg:    cfg,
	}
}

// Complete 发送一次补全请求并返回首个choice的文本。
// 超时返回 ErrUpstreamTimeout，非2xx响应包装为 UpstreamError 保留上游状态码
func (s *LLMService) Complete(ctx context.Context, systemPrompt string, userMessages []openai.ChatCompletionMessage, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = s.cfg.MaxTokens
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, 0, len(userMessages)+1)
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, userMessages...)

	start := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.cfg.Model,
		Messages:  messages,
		MaxTokens: maxTokens,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return "", util.ErrUpstreamTimeout
		}

		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &util.UpstreamError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return "", &util.UpstreamError{StatusCode: reqErr.HTTPStatusCode, Message: reqErr.Error()}
		}
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: llm returned no choices", util.ErrResponseParse)
	}

	logger.Log.Debug("llm completion finished",
		zap.String("model", s.cfg.Model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("promptMessages", len(messages)))

	return resp.Choices[0].Message.Content, nil
}

// CompleteUser 常见的"一条system一条user"调用形态
func (s *LLMService) CompleteUser(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	var messages []openai.ChatCompletionMessage
	if userPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: userPrompt,
		})
	}
	return s.Complete(ctx, systemPrompt, messages, maxTokens)
}
