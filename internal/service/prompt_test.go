package service

import (
	"strings"
	"testing"
)

func TestBuildGenerationPrompt(t *testing.T) {
	system, user := BuildGenerationPrompt("The mitochondria is the powerhouse of the cell.", 5)

	if !strings.Contains(system, "study questions") {
		t.Error("system prompt should instruct question generation")
	}
	if !strings.Contains(user, "Generate 5 study questions") {
		t.Error("user prompt should carry the requested count")
	}
	if !strings.Contains(user, "mitochondria") {
		t.Error("user prompt should embed the document content")
	}
	if !strings.Contains(user, `"question" and "answer"`) {
		t.Error("user prompt should pin the JSON field names")
	}
}

func TestBuildEvaluationPrompt_VerdictMarkers(t *testing.T) {
	system, user := BuildEvaluationPrompt("What is Go?", "A programming language", "a language from Google")

	// The classifier keys off these exact markers
	if !strings.Contains(system, `start your response with "Correct!"`) {
		t.Error("system prompt must demand the Correct! marker")
	}
	if !strings.Contains(system, `start your response with "Incorrect"`) {
		t.Error("system prompt must demand the Incorrect marker")
	}
	if !strings.Contains(system, "personal background") {
		t.Error("system prompt should keep the personal-background pass rule")
	}
	if !strings.Contains(user, `"What is Go?"`) || !strings.Contains(user, `"a language from Google"`) {
		t.Errorf("user prompt should quote question and answer: %s", user)
	}
}

func TestBuildParsePrompt(t *testing.T) {
	system, user := BuildParsePrompt("1. What is a goroutine?\n2. What is a channel? A typed conduit.")

	if !strings.Contains(system, "parse the input") {
		t.Error("system prompt should instruct parsing")
	}
	if !strings.Contains(user, "What is a goroutine?") {
		t.Error("user prompt should embed the raw input")
	}
	if !strings.Contains(user, "do not include the response in a code block") {
		t.Error("user prompt should forbid code fences")
	}
}

func TestBuildAnswerPrompt(t *testing.T) {
	system := BuildAnswerPrompt("What is a mutex?")

	if !strings.Contains(system, `"What is a mutex?"`) {
		t.Error("prompt should quote the question")
	}
	if !strings.Contains(system, "do not say anything other than the answer") {
		t.Error("prompt should demand a bare answer")
	}
}

func TestBuildPDFExtractionPrompt_TruncatesPayload(t *testing.T) {
	payload := strings.Repeat("A", maxPDFPayload+500)

	_, user := BuildPDFExtractionPrompt(payload)

	if strings.Contains(user, strings.Repeat("A", maxPDFPayload+1)) {
		t.Error("payload should be truncated to the limit")
	}
	if !strings.Contains(user, strings.Repeat("A", maxPDFPayload)) {
		t.Error("payload up to the limit should be preserved")
	}
}
