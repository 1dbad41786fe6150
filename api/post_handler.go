package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-labs/inkwell-backend/database"
	"github.com/inkwell-labs/inkwell-backend/errs"
	"github.com/inkwell-labs/inkwell-backend/models"
	"github.com/inkwell-labs/inkwell-backend/services"
)

type postHandler struct {
	responder    Responder
	logger       zerolog.Logger
	posts        *database.BlogPostRepo
	authors      *database.AuthorRepo
	categories   *database.CategoryRepo
	saved        *database.SavedPostRepo
	publisher    *services.PublishService
	interactions *services.InteractionService
	pageCache    *services.PostPageCache
}

func newPostHandler(db database.Database, publisher *services.PublishService, interactions *services.InteractionService, pageCache *services.PostPageCache) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		posts:        db.BlogPostRepo(),
		authors:      db.AuthorRepo(),
		categories:   db.CategoryRepo(),
		saved:        db.SavedPostRepo(),
		publisher:    publisher,
		interactions: interactions,
		pageCache:    pageCache,
	}
}

// PostWithCounts is the viewer-independent post page payload.
type PostWithCounts struct {
	Post   *models.BlogPost    `json:"post"`
	Counts services.PostCounts `json:"counts"`
}

// getAllPosts returns all posts, newest first
func (h postHandler) getAllPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.posts.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog posts", err))
			return
		}
		h.responder.WriteJSON(w, map[string]any{"posts": posts, "total": len(posts)})
	}
}

// getPost returns one post with its interaction counts. The payload is
// viewer-independent, so it is served from the page cache when possible.
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := parsePostID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if cached := h.pageCache.Get(postID); cached != nil {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Write(cached)
			return
		}

		post, err := h.posts.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post"))
			return
		}

		counts, err := h.interactions.Counts(r.Context(), postID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		payload, err := json.Marshal(PostWithCounts{Post: post, Counts: counts})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.pageCache.Set(postID, payload)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write(payload)
	}
}

// getViewerState returns the signed-in viewer's liked/saved state for a post
func (h postHandler) getViewerState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := parsePostID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		viewerID := userIDFromCtx(r.Context())
		liked, err := h.interactions.HasLiked(r.Context(), postID, viewerID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		saved, err := h.interactions.HasSaved(r.Context(), postID, viewerID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]bool{"liked": liked, "saved": saved})
	}
}

// publishPost runs the publication workflow on a draft
func (h postHandler) publishPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft services.Draft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode draft request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		result, err := h.publisher.Publish(r.Context(), userIDFromCtx(r.Context()), draft)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, result)
	}
}

// deletePost removes a post. Only the owning author may delete it.
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := parsePostID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		viewerID := userIDFromCtx(r.Context())
		if viewerID == uuid.Nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("must be signed in to delete a post"))
			return
		}

		post, err := h.posts.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post"))
			return
		}

		author, err := h.authors.FindByID(post.AuthorID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "author", err))
			return
		}
		if author == nil || author.UserID == nil || *author.UserID != viewerID {
			h.responder.WriteError(w, errs.NewForbiddenError("only the post author can delete it"))
			return
		}

		if err := h.posts.Delete(postID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "blog post", err))
			return
		}
		h.pageCache.Invalidate(postID)

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "blog post deleted successfully",
		})
	}
}

// getCategories returns the category list
func (h postHandler) getCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categories.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "categories", err))
			return
		}
		h.responder.WriteJSON(w, map[string]any{"categories": categories})
	}
}

// getPostsByCategory returns the posts filed under one category
func (h postHandler) getPostsByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := chi.URLParam(r, "categoryID")
		if categoryID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing categoryID"))
			return
		}

		category, err := h.categories.FindByID(categoryID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "category", err))
			return
		}
		if category == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("category"))
			return
		}

		posts, err := h.posts.FindByCategory(categoryID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog posts", err))
			return
		}
		h.responder.WriteJSON(w, map[string]any{"category": category, "posts": posts})
	}
}

// getSavedPosts returns the signed-in viewer's saved posts
func (h postHandler) getSavedPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := userIDFromCtx(r.Context())
		if viewerID == uuid.Nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("must be signed in to list saved posts"))
			return
		}

		posts, err := h.saved.ListByUser(viewerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "saved posts", err))
			return
		}
		h.responder.WriteJSON(w, map[string]any{"posts": posts, "total": len(posts)})
	}
}

func parsePostID(r *http.Request) (uuid.UUID, error) {
	postIDStr := chi.URLParam(r, "postID")
	if postIDStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing postID")
	}
	postID, err := uuid.Parse(postIDStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid postID")
	}
	return postID, nil
}
