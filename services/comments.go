package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-labs/inkwell-backend/database"
	"github.com/inkwell-labs/inkwell-backend/errs"
	"github.com/inkwell-labs/inkwell-backend/models"
)

// MaxCommentLength caps comment content after trimming.
const MaxCommentLength = 2000

// CommentService owns comment creation, cascading deletion and the
// flat-list to reply-tree reconstruction. Threads render as exactly two
// tiers: top-level comments and their replies. Replies to replies are
// rejected at submit time so the stored shape always matches what renders.
type CommentService struct {
	comments *database.CommentRepo
	posts    *database.BlogPostRepo
	cache    PageInvalidator
	logger   zerolog.Logger
}

func NewCommentService(db database.Database, cache PageInvalidator) *CommentService {
	return &CommentService{
		comments: db.CommentRepo(),
		posts:    db.BlogPostRepo(),
		cache:    cache,
		logger:   log.With().Str("serviceName", "commentService").Logger(),
	}
}

// SubmitComment creates a comment on a post. parentID may be nil for a
// top-level comment; when set, the parent must be a top-level comment on
// the same post.
func (s *CommentService) SubmitComment(ctx context.Context, postID, viewerID uuid.UUID, content string, parentID *uuid.UUID) (*models.Comment, error) {
	if viewerID == uuid.Nil {
		return nil, errs.NewUnauthorizedError("must be signed in to comment")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errs.NewBadRequestError("comment content cannot be empty")
	}
	if len(content) > MaxCommentLength {
		return nil, errs.NewBadRequestError("comment content exceeds maximum length")
	}

	exists, err := s.posts.Exists(postID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "blog post", err)
	}
	if !exists {
		return nil, errs.NewNotFoundError("blog post")
	}

	if parentID != nil {
		parent, err := s.comments.FindByID(*parentID)
		if err != nil {
			return nil, errs.NewDatabaseError("find", "parent comment", err)
		}
		if parent == nil {
			return nil, errs.NewNotFoundError("parent comment")
		}
		if parent.PostID != postID {
			return nil, errs.NewBadRequestError("parent comment belongs to a different post")
		}
		if parent.IsReply() {
			return nil, errs.NewBadRequestError("replies to replies are not supported")
		}
	}

	comment := &models.Comment{
		Content:  content,
		AuthorID: viewerID,
		PostID:   postID,
		ParentID: parentID,
	}
	if err := s.comments.Add(comment); err != nil {
		return nil, errs.NewDatabaseError("create", "comment", err)
	}

	s.cache.Invalidate(postID)
	return comment, nil
}

// DeleteComment removes a comment and its direct replies. Only the
// comment's author may delete it.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, viewerID uuid.UUID) error {
	if viewerID == uuid.Nil {
		return errs.NewUnauthorizedError("must be signed in to delete a comment")
	}

	comment, err := s.comments.FindByID(commentID)
	if err != nil {
		return errs.NewDatabaseError("find", "comment", err)
	}
	if comment == nil {
		return errs.NewNotFoundError("comment")
	}
	if comment.AuthorID != viewerID {
		return errs.NewForbiddenError("only the comment author can delete it")
	}

	if err := s.comments.DeleteWithReplies(commentID); err != nil {
		return errs.NewDatabaseError("delete", "comment", err)
	}

	s.cache.Invalidate(comment.PostID)
	return nil
}

// ListComments returns the reply tree for a post, top-level comments in
// insertion order with replies attached.
func (s *CommentService) ListComments(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	exists, err := s.posts.Exists(postID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "blog post", err)
	}
	if !exists {
		return nil, errs.NewNotFoundError("blog post")
	}

	flat, err := s.comments.FindByPostID(postID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "comments", err)
	}
	return BuildCommentTree(flat), nil
}

// BuildCommentTree partitions a flat comment list into top-level comments
// with their replies attached. Input order is preserved in both tiers; the
// function never duplicates or drops a comment whose parent is present.
func BuildCommentTree(flat []models.Comment) []models.Comment {
	replies := make(map[uuid.UUID][]models.Comment)
	for _, c := range flat {
		if c.ParentID != nil {
			replies[*c.ParentID] = append(replies[*c.ParentID], c)
		}
	}

	topLevel := make([]models.Comment, 0, len(flat))
	for _, c := range flat {
		if c.ParentID == nil {
			c.Replies = replies[c.ID]
			topLevel = append(topLevel, c)
		}
	}
	return topLevel
}
