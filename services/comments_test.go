package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-labs/inkwell-backend/errs"
	"github.com/inkwell-labs/inkwell-backend/models"
)

func TestBuildCommentTree(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	flat := []models.Comment{
		{ID: a, Content: "first"},
		{ID: uuid.New(), Content: "reply to first", ParentID: &a},
		{ID: b, Content: "second"},
		{ID: uuid.New(), Content: "another reply to first", ParentID: &a},
		{ID: uuid.New(), Content: "reply to second", ParentID: &b},
	}

	tree := BuildCommentTree(flat)

	if len(tree) != 2 {
		t.Fatalf("top-level count = %d, want 2", len(tree))
	}
	if tree[0].ID != a || tree[1].ID != b {
		t.Error("top-level order should match input order")
	}
	if len(tree[0].Replies) != 2 {
		t.Errorf("first comment replies = %d, want 2", len(tree[0].Replies))
	}
	if len(tree[1].Replies) != 1 {
		t.Errorf("second comment replies = %d, want 1", len(tree[1].Replies))
	}
	if tree[0].Replies[0].Content != "reply to first" {
		t.Error("reply order should match input order")
	}

	total := len(tree)
	for _, c := range tree {
		total += len(c.Replies)
	}
	if total != len(flat) {
		t.Errorf("tree holds %d comments, want %d (no drops, no duplicates)", total, len(flat))
	}
}

func TestBuildCommentTreeEmpty(t *testing.T) {
	if tree := BuildCommentTree(nil); len(tree) != 0 {
		t.Errorf("empty input should yield empty tree, got %v", tree)
	}
}

func TestSubmitCommentValidation(t *testing.T) {
	dbs, gormDB := setupTestDB(t)
	user := createTestUser(t, gormDB, "commenter")
	post := createTestPost(t, gormDB, user.ID)
	svc := NewCommentService(dbs, NewPostPageCache(time.Minute))
	ctx := context.Background()

	if _, err := svc.SubmitComment(ctx, post.ID, uuid.Nil, "hello", nil); !errs.IsUnauthorized(err) {
		t.Errorf("anonymous comment: expected Unauthorized, got %v", err)
	}
	if _, err := svc.SubmitComment(ctx, post.ID, user.ID, "   \n\t ", nil); !errs.IsBadRequest(err) {
		t.Errorf("whitespace comment: expected BadRequest, got %v", err)
	}
	tooLong := strings.Repeat("a", MaxCommentLength+1)
	if _, err := svc.SubmitComment(ctx, post.ID, user.ID, tooLong, nil); !errs.IsBadRequest(err) {
		t.Errorf("oversized comment: expected BadRequest, got %v", err)
	}
	if _, err := svc.SubmitComment(ctx, uuid.New(), user.ID, "hello", nil); !errs.IsNotFound(err) {
		t.Errorf("missing post: expected NotFound, got %v", err)
	}

	missingParent := uuid.New()
	if _, err := svc.SubmitComment(ctx, post.ID, user.ID, "hello", &missingParent); !errs.IsNotFound(err) {
		t.Errorf("missing parent: expected NotFound, got %v", err)
	}
}

func TestSubmitCommentTrimsContent(t *testing.T) {
	dbs, gormDB := setupTestDB(t)
	user := createTestUser(t, gormDB, "commenter")
	post := createTestPost(t, gormDB, user.ID)
	svc := NewCommentService(dbs, NewPostPageCache(time.Minute))

	comment, err := svc.SubmitComment(context.Background(), post.ID, user.ID, "  hello world  \n", nil)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if comment.Content != "hello world" {
		t.Errorf("content = %q, want trimmed", comment.Content)
	}
}

func TestSubmitCommentParentChecks(t *testing.T) {
	dbs, gormDB := setupTestDB(t)
	user := createTestUser(t, gormDB, "commenter")
	post := createTestPost(t, gormDB, user.ID)
	otherPost := createTestPost(t, gormDB, user.ID)
	svc := NewCommentService(dbs, NewPostPageCache(time.Minute))
	ctx := context.Background()

	parent, err := svc.SubmitComment(ctx, post.ID, user.ID, "top level", nil)
	if err != nil {
		t.Fatalf("submit parent failed: %v", err)
	}

	// Parent must belong to the post being commented on
	if _, err := svc.SubmitComment(ctx, otherPost.ID, user.ID, "cross-post reply", &parent.ID); !errs.IsBadRequest(err) {
		t.Errorf("cross-post reply: expected BadRequest, got %v", err)
	}

	reply, err := svc.SubmitComment(ctx, post.ID, user.ID, "a reply", &parent.ID)
	if err != nil {
		t.Fatalf("submit reply failed: %v", err)
	}

	// Threads are two tiers only
	if _, err := svc.SubmitComment(ctx, post.ID, user.ID, "reply to reply", &reply.ID); !errs.IsBadRequest(err) {
		t.Errorf("nested reply: expected BadRequest, got %v", err)
	}
}

func TestDeleteCommentCascadesToReplies(t *testing.T) {
	dbs, gormDB := setupTestDB(t)
	user := createTestUser(t, gormDB, "commenter")
	other := createTestUser(t, gormDB, "replier")
	post := createTestPost(t, gormDB, user.ID)
	svc := NewCommentService(dbs, NewPostPageCache(time.Minute))
	ctx := context.Background()

	parent, err := svc.SubmitComment(ctx, post.ID, user.ID, "parent", nil)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := svc.SubmitComment(ctx, post.ID, other.ID, "reply one", &parent.ID); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := svc.SubmitComment(ctx, post.ID, user.ID, "reply two", &parent.ID); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	sibling, err := svc.SubmitComment(ctx, post.ID, other.ID, "unrelated", nil)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := svc.DeleteComment(ctx, parent.ID, user.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	remaining, err := svc.ListComments(ctx, post.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != sibling.ID {
		t.Errorf("remaining = %v, want only the unrelated comment", remaining)
	}

	count, err := dbs.CommentRepo().CountByPostID(post.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("stored comment count = %d, want 1 (parent and replies deleted)", count)
	}
}

func TestDeleteCommentAuthorization(t *testing.T) {
	dbs, gormDB := setupTestDB(t)
	author := createTestUser(t, gormDB, "author")
	stranger := createTestUser(t, gormDB, "stranger")
	post := createTestPost(t, gormDB, author.ID)
	svc := NewCommentService(dbs, NewPostPageCache(time.Minute))
	ctx := context.Background()

	comment, err := svc.SubmitComment(ctx, post.ID, author.ID, "mine", nil)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := svc.DeleteComment(ctx, comment.ID, uuid.Nil); !errs.IsUnauthorized(err) {
		t.Errorf("anonymous delete: expected Unauthorized, got %v", err)
	}
	if err := svc.DeleteComment(ctx, comment.ID, stranger.ID); !errs.IsForbidden(err) {
		t.Errorf("stranger delete: expected Forbidden, got %v", err)
	}
	if err := svc.DeleteComment(ctx, uuid.New(), author.ID); !errs.IsNotFound(err) {
		t.Errorf("missing comment: expected NotFound, got %v", err)
	}

	if err := svc.DeleteComment(ctx, comment.ID, author.ID); err != nil {
		t.Errorf("author delete failed: %v", err)
	}
}

func TestListCommentsOrder(t *testing.T) {
	dbs, gormDB := setupTestDB(t)
	user := createTestUser(t, gormDB, "commenter")
	post := createTestPost(t, gormDB, user.ID)
	svc := NewCommentService(dbs, NewPostPageCache(time.Minute))
	ctx := context.Background()

	for _, content := range []string{"one", "two", "three"} {
		if _, err := svc.SubmitComment(ctx, post.ID, user.ID, content, nil); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	tree, err := svc.ListComments(ctx, post.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tree) != 3 {
		t.Fatalf("comment count = %d, want 3", len(tree))
	}
	for i, want := range []string{"one", "two", "three"} {
		if tree[i].Content != want {
			t.Errorf("comment %d = %q, want %q", i, tree[i].Content, want)
		}
	}
}
