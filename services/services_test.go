package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/inkwell-labs/inkwell-backend/database"
	"github.com/inkwell-labs/inkwell-backend/models"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// The pool is pinned to one connection so every query sees the same
// in-memory database and concurrent writes serialize instead of failing.
func setupTestDB(t *testing.T) (database.Database, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return database.New(db), db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := &models.User{
		Name:  name,
		Email: name + "@example.com",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, ownerID uuid.UUID) *models.BlogPost {
	t.Helper()

	author := &models.Author{
		UserID: &ownerID,
		Name:   "Test Author",
	}
	if err := db.Create(author).Error; err != nil {
		t.Fatalf("failed to create test author: %v", err)
	}

	category := &models.Category{ID: "general", Name: "General"}
	if err := db.Where("id = ?", category.ID).FirstOrCreate(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}

	post := &models.BlogPost{
		Title:      "Test Post",
		Slug:       "test-post-" + uuid.NewString()[:8],
		Excerpt:    "An excerpt",
		Content:    "Some content",
		AuthorID:   author.ID,
		CategoryID: category.ID,
		ReadTime:   1,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to create test post: %v", err)
	}
	return post
}
