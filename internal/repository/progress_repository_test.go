package repository

import "testing"

func TestApplyVerdict_FirstCorrectAnswer(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	doc := seedDocument(t, db, user.ID, 1)
	repo := NewProgressRepository(db)

	progress, err := repo.ApplyVerdict(user.ID, doc.Questions[0].ID, true, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if progress.TimesCorrect != 1 {
		t.Errorf("expected 1 correct, got %d", progress.TimesCorrect)
	}
	if progress.Completed {
		t.Error("should not be completed below threshold")
	}
	if progress.LastAttemptedAt == nil {
		t.Error("expected attempt timestamp")
	}
}

func TestApplyVerdict_StreakReachesThreshold(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	doc := seedDocument(t, db, user.ID, 1)
	repo := NewProgressRepository(db)
	questionID := doc.Questions[0].ID

	for i := 0; i < 3; i++ {
		if _, err := repo.ApplyVerdict(user.ID, questionID, true, 3); err != nil {
			t.Fatalf("unexpected error on attempt %d: %v", i+1, err)
		}
	}

	progress, err := repo.Get(user.ID, questionID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if progress.TimesCorrect != 3 {
		t.Errorf("expected 3 corrects, got %d", progress.TimesCorrect)
	}
	if !progress.Completed {
		t.Error("expected completed at threshold")
	}
}

func TestApplyVerdict_IncorrectKeepsStreak(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	doc := seedDocument(t, db, user.ID, 1)
	repo := NewProgressRepository(db)
	questionID := doc.Questions[0].ID

	if _, err := repo.ApplyVerdict(user.ID, questionID, true, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.ApplyVerdict(user.ID, questionID, true, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	progress, err := repo.ApplyVerdict(user.ID, questionID, false, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if progress.TimesCorrect != 2 {
		t.Errorf("incorrect answer must not change the streak, got %d", progress.TimesCorrect)
	}
	if progress.Completed {
		t.Error("incorrect answer must not complete the question")
	}
}

func TestApplyVerdict_IncorrectFirstAttemptCreatesRow(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	doc := seedDocument(t, db, user.ID, 1)
	repo := NewProgressRepository(db)

	progress, err := repo.ApplyVerdict(user.ID, doc.Questions[0].ID, false, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if progress.TimesCorrect != 0 {
		t.Errorf("expected 0 corrects, got %d", progress.TimesCorrect)
	}
	if progress.LastAttemptedAt == nil {
		t.Error("first attempt should record a timestamp")
	}
}

func TestApplyVerdict_ThresholdOneCompletesOnFirstCorrect(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	doc := seedDocument(t, db, user.ID, 1)
	repo := NewProgressRepository(db)

	progress, err := repo.ApplyVerdict(user.ID, doc.Questions[0].ID, true, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !progress.Completed {
		t.Error("threshold 1 should complete immediately")
	}
}

func TestApplyVerdict_CompletedSurvivesHigherThreshold(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	doc := seedDocument(t, db, user.ID, 1)
	repo := NewProgressRepository(db)
	questionID := doc.Questions[0].ID

	if _, err := repo.ApplyVerdict(user.ID, questionID, true, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Answering again under a raised threshold must not clear the flag
	progress, err := repo.ApplyVerdict(user.ID, questionID, true, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !progress.Completed {
		t.Error("completed flag must not regress when the threshold rises")
	}
	if progress.TimesCorrect != 2 {
		t.Errorf("expected 2 corrects, got %d", progress.TimesCorrect)
	}
}

func TestApplyVerdict_IndependentPerUser(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	other := seedUser2(t, db)
	doc := seedDocument(t, db, user.ID, 1)
	repo := NewProgressRepository(db)
	questionID := doc.Questions[0].ID

	if _, err := repo.ApplyVerdict(user.ID, questionID, true, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	progress, err := repo.ApplyVerdict(other.ID, questionID, true, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if progress.TimesCorrect != 1 {
		t.Errorf("each user tracks an independent streak, got %d", progress.TimesCorrect)
	}
}

func TestListByUserAndQuestions(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	doc := seedDocument(t, db, user.ID, 3)
	repo := NewProgressRepository(db)

	if _, err := repo.ApplyVerdict(user.ID, doc.Questions[0].ID, true, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.ApplyVerdict(user.ID, doc.Questions[2].ID, false, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := []uint{doc.Questions[0].ID, doc.Questions[1].ID, doc.Questions[2].ID}
	records, err := repo.ListByUserAndQuestions(user.ID, ids)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 progress records, got %d", len(records))
	}

	empty, err := repo.ListByUserAndQuestions(user.ID, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no records for an empty id list, got %d", len(empty))
	}
}
