package repository

import (
	"study_quiz_backend/internal/model"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试独立的内存库，打开外键以覆盖级联删除路径
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// 内存库只在单个连接上存在，连接池收紧为1
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access connection pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.User{},
		&model.Document{},
		&model.Question{},
		&model.QuestionProgress{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()

	user := &model.User{
		Name:     "tester",
		Email:    "tester@example.com",
		Password: "hashed",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedUser2(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()

	user := &model.User{
		Name:     "other",
		Email:    "other@example.com",
		Password: "hashed",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed second user: %v", err)
	}
	return user
}

func seedDocument(t *testing.T, db *gorm.DB, userID uint, questionCount int) *model.Document {
	t.Helper()

	doc := &model.Document{
		UserID:   userID,
		Title:    "Test Notes",
		Content:  "some study material",
		FileType: model.FileTypeText,
	}
	questions := make([]model.Question, questionCount)
	for i := range questions {
		questions[i] = model.Question{
			Question: "Question " + string(rune('A'+i)),
			Answer:   "Answer " + string(rune('A'+i)),
		}
	}

	repo := NewDocumentRepository(db)
	if err := repo.CreateWithQuestions(doc, questions); err != nil {
		t.Fatalf("failed to seed document: %v", err)
	}
	return doc
}
