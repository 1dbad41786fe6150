package database

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/inkwell-labs/inkwell-backend/models"
)

func openTestDB(t *testing.T) (Database, *gorm.DB) {
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

	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return New(db), db
}

func seedPost(t *testing.T, db *gorm.DB) (*models.User, *models.BlogPost) {
	t.Helper()

	user := &models.User{Name: "seed", Email: "seed-" + uuid.NewString()[:8] + "@example.com"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	author := &models.Author{UserID: &user.ID, Name: "Seed Author"}
	if err := db.Create(author).Error; err != nil {
		t.Fatalf("failed to create author: %v", err)
	}
	category := &models.Category{ID: "general", Name: "General"}
	if err := db.Where("id = ?", category.ID).FirstOrCreate(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	post := &models.BlogPost{
		Title:      "Seed Post",
		Slug:       "seed-post-" + uuid.NewString()[:8],
		Excerpt:    "seed",
		Content:    "seed content",
		AuthorID:   author.ID,
		CategoryID: category.ID,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	return user, post
}

func TestLikeInsertIsIdempotent(t *testing.T) {
	dbs, db := openTestDB(t)
	user, post := seedPost(t, db)

	inserted, err := dbs.LikeRepo().Insert(post.ID, user.ID)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if !inserted {
		t.Error("first insert should create a row")
	}

	// The conflict clause turns the duplicate into a no-op, not an error
	inserted, err = dbs.LikeRepo().Insert(post.ID, user.ID)
	if err != nil {
		t.Fatalf("duplicate insert errored: %v", err)
	}
	if inserted {
		t.Error("duplicate insert should report no row created")
	}

	count, err := dbs.LikeRepo().CountByPostID(post.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestLikeDeleteReportsExistence(t *testing.T) {
	dbs, db := openTestDB(t)
	user, post := seedPost(t, db)

	if _, err := dbs.LikeRepo().Insert(post.ID, user.ID); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	deleted, err := dbs.LikeRepo().Delete(post.ID, user.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !deleted {
		t.Error("delete of an existing like should report a deletion")
	}

	deleted, err = dbs.LikeRepo().Delete(post.ID, user.ID)
	if err != nil {
		t.Fatalf("second delete errored: %v", err)
	}
	if deleted {
		t.Error("delete of a missing like should report nothing deleted")
	}
}

func TestViewInsertIsIdempotent(t *testing.T) {
	dbs, db := openTestDB(t)
	user, post := seedPost(t, db)

	inserted, err := dbs.ViewRepo().Insert(post.ID, user.ID)
	if err != nil || !inserted {
		t.Fatalf("first view: inserted=%t err=%v", inserted, err)
	}
	inserted, err = dbs.ViewRepo().Insert(post.ID, user.ID)
	if err != nil {
		t.Fatalf("duplicate view errored: %v", err)
	}
	if inserted {
		t.Error("duplicate view should report no row created")
	}
}

func TestSavedPostListPreservesSaveOrder(t *testing.T) {
	dbs, db := openTestDB(t)
	user, first := seedPost(t, db)
	_, second := seedPost(t, db)

	if _, err := dbs.SavedPostRepo().Insert(user.ID, second.ID); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := dbs.SavedPostRepo().Insert(user.ID, first.ID); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	posts, err := dbs.SavedPostRepo().ListByUser(user.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("saved posts = %d, want 2", len(posts))
	}
	if posts[0].ID != first.ID || posts[1].ID != second.ID {
		t.Error("saved posts should list most recently saved first")
	}
}

func TestDeleteWithRepliesIsOneLevel(t *testing.T) {
	dbs, db := openTestDB(t)
	user, post := seedPost(t, db)

	top := &models.Comment{Content: "top", AuthorID: user.ID, PostID: post.ID}
	if err := dbs.CommentRepo().Add(top); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	reply := &models.Comment{Content: "reply", AuthorID: user.ID, PostID: post.ID, ParentID: &top.ID}
	if err := dbs.CommentRepo().Add(reply); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	// Deeper nesting is rejected upstream; insert directly to pin the
	// repo-level cascade at exactly one level
	nested := &models.Comment{Content: "nested", AuthorID: user.ID, PostID: post.ID, ParentID: &reply.ID}
	if err := dbs.CommentRepo().Add(nested); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := dbs.CommentRepo().DeleteWithReplies(top.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if got, _ := dbs.CommentRepo().FindByID(top.ID); got != nil {
		t.Error("top comment should be deleted")
	}
	if got, _ := dbs.CommentRepo().FindByID(reply.ID); got != nil {
		t.Error("direct reply should be deleted")
	}
	if got, _ := dbs.CommentRepo().FindByID(nested.ID); got == nil {
		t.Error("second-level reply should survive the one-level cascade")
	}
}

func TestBlogPostDeleteRemovesInteractions(t *testing.T) {
	dbs, db := openTestDB(t)
	user, post := seedPost(t, db)

	if _, err := dbs.LikeRepo().Insert(post.ID, user.ID); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if _, err := dbs.ViewRepo().Insert(post.ID, user.ID); err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if _, err := dbs.SavedPostRepo().Insert(user.ID, post.ID); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := dbs.CommentRepo().Add(&models.Comment{Content: "bye", AuthorID: user.ID, PostID: post.ID}); err != nil {
		t.Fatalf("comment failed: %v", err)
	}

	if err := dbs.BlogPostRepo().Delete(post.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if likes, _ := dbs.LikeRepo().CountByPostID(post.ID); likes != 0 {
		t.Errorf("likes = %d, want 0", likes)
	}
	if views, _ := dbs.ViewRepo().CountByPostID(post.ID); views != 0 {
		t.Errorf("views = %d, want 0", views)
	}
	if comments, _ := dbs.CommentRepo().CountByPostID(post.ID); comments != 0 {
		t.Errorf("comments = %d, want 0", comments)
	}
	if saved, _ := dbs.SavedPostRepo().ListByUser(user.ID); len(saved) != 0 {
		t.Errorf("saved = %d, want 0", len(saved))
	}
}

func TestBlogPostFindBySlug(t *testing.T) {
	dbs, db := openTestDB(t)
	_, post := seedPost(t, db)

	found, err := dbs.BlogPostRepo().FindBySlug(post.Slug)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found == nil || found.ID != post.ID {
		t.Errorf("found = %v, want the seeded post", found)
	}

	missing, err := dbs.BlogPostRepo().FindBySlug("no-such-slug")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if missing != nil {
		t.Error("missing slug should return nil, not an error")
	}
}

func TestUserUpsertSyncsFields(t *testing.T) {
	dbs, _ := openTestDB(t)

	id := uuid.New()
	if err := dbs.UserRepo().Upsert(&models.User{ID: id, Email: "old@example.com", Name: "Old"}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := dbs.UserRepo().Upsert(&models.User{ID: id, Email: "new@example.com", Name: "New"}); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	user, err := dbs.UserRepo().FindByID(id)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if user == nil || user.Email != "new@example.com" || user.Name != "New" {
		t.Errorf("user = %+v, want synced fields", user)
	}
}

func TestCategoryUpsertKeepsExisting(t *testing.T) {
	dbs, _ := openTestDB(t)

	if err := dbs.CategoryRepo().Upsert(&models.Category{ID: "design", Name: "Design"}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := dbs.CategoryRepo().Upsert(&models.Category{ID: "design", Name: "Renamed"}); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	category, err := dbs.CategoryRepo().FindByID("design")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if category == nil || category.Name != "Design" {
		t.Errorf("category = %+v, existing row should win", category)
	}
}
