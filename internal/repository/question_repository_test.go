package repository

import "testing"

func TestFindByIDForUser_OwnerGetsQuestion(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	doc := seedDocument(t, db, user.ID, 2)
	repo := NewQuestionRepository(db)

	q, err := repo.FindByIDForUser(doc.Questions[0].ID, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q == nil {
		t.Fatal("owner should get the question")
	}
	if q.Answer == "" {
		t.Error("repository result should carry the reference answer")
	}
}

func TestFindByIDForUser_StrangerGetsNothing(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	other := seedUser2(t, db)
	doc := seedDocument(t, db, user.ID, 1)
	repo := NewQuestionRepository(db)

	q, err := repo.FindByIDForUser(doc.Questions[0].ID, other.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q != nil {
		t.Error("a question in another user's document must look like it does not exist")
	}
}

func TestListByDocument(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	doc := seedDocument(t, db, user.ID, 3)
	repo := NewQuestionRepository(db)

	questions, err := repo.ListByDocument(doc.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}
	for i := 1; i < len(questions); i++ {
		if questions[i].ID < questions[i-1].ID {
			t.Error("expected questions in insertion order")
		}
	}
}
