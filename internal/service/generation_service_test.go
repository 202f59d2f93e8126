package service

import (
	"errors"
	"study_quiz_backend/internal/util"
	"testing"
)

func TestDecodeQAPairs_CleanArray(t *testing.T) {
	pairs, err := decodeQAPairs(`[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0].Question != "Q1" || pairs[1].Answer != "A2" {
		t.Errorf("unexpected pairs: %+v", pairs)
	}
}

func TestDecodeQAPairs_FencedReply(t *testing.T) {
	reply := "Sure! Here you go:\n```json\n[{\"question\":\"Q\",\"answer\":\"A\"}]\n```"

	pairs, err := decodeQAPairs(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
}

func TestDecodeQAPairs_MissingAnswerIsAllowed(t *testing.T) {
	// Answers may be blank, the parse flow backfills them afterwards
	pairs, err := decodeQAPairs(`[{"question":"Q1","answer":""}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pairs[0].Answer != "" {
		t.Errorf("expected blank answer kept, got %q", pairs[0].Answer)
	}
}

func TestDecodeQAPairs_EmptyArray(t *testing.T) {
	_, err := decodeQAPairs(`[]`)
	if !errors.Is(err, util.ErrResponseParse) {
		t.Errorf("expected ErrResponseParse for an empty set, got %v", err)
	}
}

func TestDecodeQAPairs_MissingQuestion(t *testing.T) {
	_, err := decodeQAPairs(`[{"question":"","answer":"A"}]`)
	if !errors.Is(err, util.ErrResponseParse) {
		t.Errorf("expected ErrResponseParse for a blank question, got %v", err)
	}
}

func TestDecodeQAPairs_ProseOnly(t *testing.T) {
	_, err := decodeQAPairs("I couldn't parse anything from your input.")
	if !errors.Is(err, util.ErrResponseParse) {
		t.Errorf("expected ErrResponseParse, got %v", err)
	}
}
