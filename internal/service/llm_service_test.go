package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"study_quiz_backend/internal/config"
	"study_quiz_backend/internal/util"
	"testing"
	"time"
)

func newTestLLM(baseURL string, timeout time.Duration) *LLMService {
	return NewLLMService(config.LLMConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		Model:          "test-model",
		RequestTimeout: timeout,
		MaxTokens:      128,
	})
}

func TestCompleteUser_ReturnsFirstChoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [
				{"index": 0, "message": {"role": "assistant", "content": "Correct! Well done."}, "finish_reason": "stop"}
			]
		}`))
	}))
	defer srv.Close()

	llm := newTestLLM(srv.URL+"/v1", 5*time.Second)

	reply, err := llm.CompleteUser(context.Background(), "system", "user", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Correct! Well done." {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestCompleteUser_AuthErrorIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	llm := newTestLLM(srv.URL+"/v1", 5*time.Second)

	_, err := llm.CompleteUser(context.Background(), "system", "user", 0)
	if err == nil {
		t.Fatal("expected an error")
	}

	var ue *util.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %T: %v", err, err)
	}
	if !ue.IsAuth() {
		t.Errorf("expected an auth error, got status %d", ue.StatusCode)
	}
	if !util.IsUpstreamAuth(err) {
		t.Error("IsUpstreamAuth should detect the wrapped error")
	}
}

func TestCompleteUser_ServerErrorKeepsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "overloaded", "type": "server_error"}}`))
	}))
	defer srv.Close()

	llm := newTestLLM(srv.URL+"/v1", 5*time.Second)

	_, err := llm.CompleteUser(context.Background(), "system", "user", 0)

	var ue *util.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %T: %v", err, err)
	}
	if ue.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected upstream status preserved, got %d", ue.StatusCode)
	}
	if ue.IsAuth() {
		t.Error("a 500 is not an auth error")
	}
}

func TestCompleteUser_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	llm := newTestLLM(srv.URL+"/v1", 50*time.Millisecond)

	_, err := llm.CompleteUser(context.Background(), "system", "user", 0)
	if !errors.Is(err, util.ErrUpstreamTimeout) {
		t.Errorf("expected ErrUpstreamTimeout, got %v", err)
	}
}

func TestCompleteUser_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "chatcmpl-2", "object": "chat.completion", "choices": []}`))
	}))
	defer srv.Close()

	llm := newTestLLM(srv.URL+"/v1", 5*time.Second)

	_, err := llm.CompleteUser(context.Background(), "system", "user", 0)
	if !errors.Is(err, util.ErrResponseParse) {
		t.Errorf("expected ErrResponseParse for an empty choice list, got %v", err)
	}
}
