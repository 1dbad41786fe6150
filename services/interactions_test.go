package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-labs/inkwell-backend/errs"
	"github.com/inkwell-labs/inkwell-backend/models"
)

func TestToggleLikeAlternates(t *testing.T) {
	dbs, gormDB := setupTestDB(t)
	user := createTestUser(t, gormDB, "viewer")
	post := createTestPost(t, gormDB, user.ID)
	svc := NewInteractionService(dbs, NewPostPageCache(time.Minute))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		liked, err := svc.ToggleLike(ctx, post.ID, user.ID)
		if err != nil {
			t.Fatalf("toggle %d failed: %v", i, err)
		}
		wantLiked := i%2 == 0
		if liked != wantLiked {
			t.Errorf("toggle %d: liked = %t, want %t", i, liked, wantLiked)
		}
	}

	// 5 toggles from a clean slate leave exactly one like
	count, err := dbs.LikeRepo().CountByPostID(post.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("like count = %d, want 1", count)
	}
}

func TestToggleLikeConcurrent(t *testing.T) {
	dbs, gormDB := setupTestDB(t)
	user := createTestUser(t, gormDB, "viewer")
	post := createTestPost(t, gormDB, user.ID)
	svc := NewInteractionService(dbs, NewPostPageCache(time.Minute))
	ctx := context.Background()

	const toggles = 8
	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.ToggleLike(ctx, post.ID, user.ID); err != nil {
				t.Errorf("concurrent toggle failed: %v", err)
			}
		}()
	}
	wg.Wait()

	// Whatever the interleaving, the unique index guarantees at most one row
	count, err := dbs.LikeRepo().CountByPostID(post.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count > 1 {
		t.Errorf("like count = %d, want at most 1", count)
	}

	liked, err := svc.HasLiked(ctx, post.ID, user.ID)
	if err != nil {
		t.Fatalf("HasLiked failed: %v", err)
	}
	if liked != (count == 1) {
		t.Errorf("HasLiked = %t but count = %d", liked, count)
	}
}

func TestToggleLikeRequiresAuth(t *testing.T) {
	dbs, gormDB := setupTestDB(t)
	user := createTestUser(t, gormDB, "viewer")
	post := createTestPost(t, gormDB, user.ID)
	svc := NewInteractionService(dbs, NewPostPageCache(time.Minute))

	_, err := svc.ToggleLike(context.Background(), post.ID, uuid.Nil)
	if !errs.IsUnauthorized(err) {
		t.Errorf("expected Unauthorized, got %v", err)
	}
}

func TestToggleLikeMissingPost(t *testing.T) {
	dbs, gormDB := setupTestDB(t)
	user := createTestUser(t, gormDB, "viewer")
	svc := NewInteractionService(dbs, NewPostPageCache(time.Minute))

	_, err := svc.ToggleLike(context.Background(), uuid.New(), user.ID)
	if !errs.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestToggleSaveRoundTrip(t *testing.T) {
	dbs, gormDB := setupTestDB(t)
	user := createTestUser(t, gormDB, "viewer")
	post := createTestPost(t, gormDB, user.ID)
	svc := NewInteractionService(dbs, NewPostPageCache(time.Minute))
	ctx := context.Background()

	saved, err := svc.ToggleSave(ctx, post.ID, user.ID)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !saved {
		t.Error("first toggle should save")
	}

	listed, err := dbs.SavedPostRepo().ListByUser(user.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != post.ID {
		t.Errorf("saved list = %v, want the toggled post", listed)
	}

	saved, err = svc.ToggleSave(ctx, post.ID, user.ID)
	if err != nil {
		t.Fatalf("unsave failed: %v", err)
	}
	if saved {
		t.Error("second toggle should unsave")
	}
}

func TestRecordViewDedupes(t *testing.T) {
	dbs, gormDB := setupTestDB(t)
	user := createTestUser(t, gormDB, "viewer")
	post := createTestPost(t, gormDB, user.ID)
	svc := NewInteractionService(dbs, NewPostPageCache(time.Minute))
	ctx := context.Background()

	counted, err := svc.RecordView(ctx, post.ID, user.ID)
	if err != nil {
		t.Fatalf("first view failed: %v", err)
	}
	if !counted {
		t.Error("first view should count")
	}

	counted, err = svc.RecordView(ctx, post.ID, user.ID)
	if err != nil {
		t.Fatalf("second view failed: %v", err)
	}
	if counted {
		t.Error("second view from the same viewer should not count")
	}

	views, err := dbs.ViewRepo().CountByPostID(post.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if views != 1 {
		t.Errorf("view count = %d, want 1", views)
	}
}

func TestRecordViewAnonymousVisitor(t *testing.T) {
	dbs, gormDB := setupTestDB(t)
	owner := createTestUser(t, gormDB, "owner")
	post := createTestPost(t, gormDB, owner.ID)
	svc := NewInteractionService(dbs, NewPostPageCache(time.Minute))
	ctx := context.Background()

	// A stable visitor id dedupes across requests like a user id does
	visitorID := uuid.New()
	counted, err := svc.RecordView(ctx, post.ID, visitorID)
	if err != nil || !counted {
		t.Fatalf("first anonymous view: counted=%t err=%v", counted, err)
	}
	counted, err = svc.RecordView(ctx, post.ID, visitorID)
	if err != nil {
		t.Fatalf("second anonymous view failed: %v", err)
	}
	if counted {
		t.Error("repeat anonymous view should not count")
	}

	// A missing visitor id is rejected rather than silently inflating views
	if _, err := svc.RecordView(ctx, post.ID, uuid.Nil); err == nil {
		t.Error("expected error for nil viewer id")
	}
}

func TestCounts(t *testing.T) {
	dbs, gormDB := setupTestDB(t)
	owner := createTestUser(t, gormDB, "owner")
	other := createTestUser(t, gormDB, "other")
	post := createTestPost(t, gormDB, owner.ID)
	svc := NewInteractionService(dbs, NewPostPageCache(time.Minute))
	ctx := context.Background()

	if _, err := svc.ToggleLike(ctx, post.ID, owner.ID); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if _, err := svc.ToggleLike(ctx, post.ID, other.ID); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if _, err := svc.RecordView(ctx, post.ID, owner.ID); err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if err := gormDB.Create(&models.Comment{Content: "hi", AuthorID: owner.ID, PostID: post.ID}).Error; err != nil {
		t.Fatalf("comment failed: %v", err)
	}

	counts, err := svc.Counts(ctx, post.ID)
	if err != nil {
		t.Fatalf("counts failed: %v", err)
	}
	if counts.Likes != 2 || counts.Views != 1 || counts.Comments != 1 {
		t.Errorf("counts = %+v, want likes=2 views=1 comments=1", counts)
	}
}
