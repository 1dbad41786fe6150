package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-labs/inkwell-backend/database"
	"github.com/inkwell-labs/inkwell-backend/errs"
)

// InteractionService owns the idempotent like/save toggles and
// once-per-viewer view counting. The toggles deliberately do not
// find-then-act: the insert runs first with an ON CONFLICT guard, so the
// composite unique index is the source of truth under concurrency.
type InteractionService struct {
	posts    *database.BlogPostRepo
	likes    *database.LikeRepo
	views    *database.ViewRepo
	saved    *database.SavedPostRepo
	comments *database.CommentRepo
	cache    PageInvalidator
	logger   zerolog.Logger
}

func NewInteractionService(db database.Database, cache PageInvalidator) *InteractionService {
	return &InteractionService{
		posts:    db.BlogPostRepo(),
		likes:    db.LikeRepo(),
		views:    db.ViewRepo(),
		saved:    db.SavedPostRepo(),
		comments: db.CommentRepo(),
		cache:    cache,
		logger:   log.With().Str("serviceName", "interactionService").Logger(),
	}
}

// ToggleLike flips the like state for (postID, viewerID) and returns the
// resulting state. Requires a signed-in viewer.
func (s *InteractionService) ToggleLike(ctx context.Context, postID, viewerID uuid.UUID) (bool, error) {
	if viewerID == uuid.Nil {
		return false, errs.NewUnauthorizedError("must be signed in to like a post")
	}
	if err := s.requirePost(postID); err != nil {
		return false, err
	}

	inserted, err := s.likes.Insert(postID, viewerID)
	if err != nil {
		return false, errs.NewDatabaseError("toggle", "like", err)
	}
	liked := inserted
	if !inserted {
		// Row already existed: this toggle is an unlike. A raced double
		// delete is harmless, the result is still "not liked".
		if _, err := s.likes.Delete(postID, viewerID); err != nil {
			return false, errs.NewDatabaseError("toggle", "like", err)
		}
	}

	s.cache.Invalidate(postID)
	return liked, nil
}

// ToggleSave flips the saved state for (postID, viewerID) and returns the
// resulting state. Requires a signed-in viewer.
func (s *InteractionService) ToggleSave(ctx context.Context, postID, viewerID uuid.UUID) (bool, error) {
	if viewerID == uuid.Nil {
		return false, errs.NewUnauthorizedError("must be signed in to save a post")
	}
	if err := s.requirePost(postID); err != nil {
		return false, err
	}

	inserted, err := s.saved.Insert(viewerID, postID)
	if err != nil {
		return false, errs.NewDatabaseError("toggle", "saved post", err)
	}
	savedNow := inserted
	if !inserted {
		if _, err := s.saved.Delete(viewerID, postID); err != nil {
			return false, errs.NewDatabaseError("toggle", "saved post", err)
		}
	}

	s.cache.Invalidate(postID)
	return savedNow, nil
}

// RecordView counts a view for (postID, viewerID) at most once. The viewer
// id may be a stable anonymous visitor id minted by the transport layer;
// either way a repeat view is a no-op and reports counted=false.
func (s *InteractionService) RecordView(ctx context.Context, postID, viewerID uuid.UUID) (bool, error) {
	if viewerID == uuid.Nil {
		return false, errs.NewBadRequestError("missing viewer identifier")
	}
	if err := s.requirePost(postID); err != nil {
		return false, err
	}

	counted, err := s.views.Insert(postID, viewerID)
	if err != nil {
		return false, errs.NewDatabaseError("record", "view", err)
	}
	if counted {
		s.cache.Invalidate(postID)
	}
	return counted, nil
}

// PostCounts holds the interaction counters for a post, computed from the
// join tables at read time.
type PostCounts struct {
	Likes    int64 `json:"likeCount"`
	Views    int64 `json:"viewCount"`
	Comments int64 `json:"commentCount"`
}

// Counts returns the current interaction counters for a post.
func (s *InteractionService) Counts(ctx context.Context, postID uuid.UUID) (PostCounts, error) {
	var counts PostCounts

	likes, err := s.likes.CountByPostID(postID)
	if err != nil {
		return counts, errs.NewDatabaseError("count", "likes", err)
	}
	views, err := s.views.CountByPostID(postID)
	if err != nil {
		return counts, errs.NewDatabaseError("count", "views", err)
	}
	comments, err := s.comments.CountByPostID(postID)
	if err != nil {
		return counts, errs.NewDatabaseError("count", "comments", err)
	}

	counts.Likes = likes
	counts.Views = views
	counts.Comments = comments
	return counts, nil
}

// HasLiked reports whether the viewer currently likes the post.
func (s *InteractionService) HasLiked(ctx context.Context, postID, viewerID uuid.UUID) (bool, error) {
	if viewerID == uuid.Nil {
		return false, nil
	}
	liked, err := s.likes.Exists(postID, viewerID)
	if err != nil {
		return false, errs.NewDatabaseError("check", "like", err)
	}
	return liked, nil
}

// HasSaved reports whether the viewer currently has the post saved.
func (s *InteractionService) HasSaved(ctx context.Context, postID, viewerID uuid.UUID) (bool, error) {
	if viewerID == uuid.Nil {
		return false, nil
	}
	saved, err := s.saved.Exists(viewerID, postID)
	if err != nil {
		return false, errs.NewDatabaseError("check", "saved post", err)
	}
	return saved, nil
}

func (s *InteractionService) requirePost(postID uuid.UUID) error {
	exists, err := s.posts.Exists(postID)
	if err != nil {
		return errs.NewDatabaseError("find", "blog post", err)
	}
	if !exists {
		return errs.NewNotFoundError("blog post")
	}
	return nil
}
