package util

import (
	"errors"
	"fmt"
)

var (
	ErrEmailRegistered = errors.New("该邮箱已被注册")

	// 请求级错误分类，controller 据此映射HTTP状态码
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("resource not found")
	ErrResponseParse   = errors.New("failed to parse model response")
	ErrUpstreamTimeout = errors.New("llm request timed out")
)

// UpstreamError 大模型服务返回的非2xx响应，保留上游状态码与消息
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("llm upstream error (status %d): %s", e.StatusCode, e.Message)
}

// IsAuth 上游拒绝凭证（无效或过期的API key）
func (e *UpstreamError) IsAuth() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

func IsUpstreamAuth(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.IsAuth()
}
