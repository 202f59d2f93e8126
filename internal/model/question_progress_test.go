package model

import (
	"testing"
	"time"
)

func TestApplyVerdict_CorrectIncrementsStreak(t *testing.T) {
	p := &QuestionProgress{UserID: 1, QuestionID: 1}
	now := time.Now()

	p.ApplyVerdict(true, 3, now)

	if p.TimesCorrect != 1 {
		t.Errorf("expected 1 correct, got %d", p.TimesCorrect)
	}
	if p.Completed {
		t.Error("should not be completed below threshold")
	}
	if p.LastAttemptedAt == nil || !p.LastAttemptedAt.Equal(now) {
		t.Error("expected last attempt timestamp to be set")
	}
}

func TestApplyVerdict_ReachingThresholdCompletes(t *testing.T) {
	p := &QuestionProgress{UserID: 1, QuestionID: 1}
	now := time.Now()

	p.ApplyVerdict(true, 3, now)
	p.ApplyVerdict(true, 3, now)
	p.ApplyVerdict(true, 3, now)

	if p.TimesCorrect != 3 {
		t.Errorf("expected 3 corrects, got %d", p.TimesCorrect)
	}
	if !p.Completed {
		t.Error("expected completed at threshold")
	}
}

func TestApplyVerdict_IncorrectDoesNotResetStreak(t *testing.T) {
	p := &QuestionProgress{UserID: 1, QuestionID: 1, TimesCorrect: 2}
	before := p.TimesCorrect
	now := time.Now()

	p.ApplyVerdict(false, 3, now)

	if p.TimesCorrect != before {
		t.Errorf("incorrect answer must not change streak: got %d", p.TimesCorrect)
	}
	if p.Completed {
		t.Error("incorrect answer must not complete the question")
	}
	if p.LastAttemptedAt == nil {
		t.Error("incorrect answer should still record the attempt time")
	}
}

func TestApplyVerdict_ThresholdOneCompletesImmediately(t *testing.T) {
	p := &QuestionProgress{UserID: 1, QuestionID: 1}

	p.ApplyVerdict(true, 1, time.Now())

	if !p.Completed {
		t.Error("threshold 1 should complete on the first correct answer")
	}
}

func TestApplyVerdict_CompletedNeverRegresses(t *testing.T) {
	p := &QuestionProgress{UserID: 1, QuestionID: 1, TimesCorrect: 3, Completed: true}

	// Raising the threshold after completion must not clear the flag
	p.ApplyVerdict(false, 5, time.Now())

	if !p.Completed {
		t.Error("completed flag must not regress")
	}
}

func TestMastered(t *testing.T) {
	p := &QuestionProgress{TimesCorrect: 2}

	if p.Mastered(3) {
		t.Error("2 of 3 is not mastered")
	}
	if !p.Mastered(2) {
		t.Error("2 of 2 is mastered")
	}
	if !p.Mastered(1) {
		t.Error("lowering the threshold below the streak counts as mastered")
	}
}
