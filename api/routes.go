package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// setupRoutes wires every endpoint. Auth is optional everywhere at the
// transport level; operations that require a signed-in viewer enforce it
// themselves so anonymous view recording keeps working.
func setupRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware, startupTime time.Time) {
	r.Get("/health", healthHandler(startupTime))

	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(auth.authenticate)
		r.Use(visitorCookieMiddleware)

		// Posts
		r.Get("/posts", handlers.postHandler.getAllPosts())
		r.Get("/posts/{postID}", handlers.postHandler.getPost())
		r.Get("/posts/{postID}/me", handlers.postHandler.getViewerState())
		r.Post("/posts", handlers.postHandler.publishPost())
		r.Delete("/posts/{postID}", handlers.postHandler.deletePost())

		// Categories and saved posts
		r.Get("/categories", handlers.postHandler.getCategories())
		r.Get("/categories/{categoryID}/posts", handlers.postHandler.getPostsByCategory())
		r.Get("/me/saved", handlers.postHandler.getSavedPosts())

		// Interactions
		r.Post("/posts/{postID}/like", handlers.interactionHandler.toggleLike())
		r.Post("/posts/{postID}/save", handlers.interactionHandler.toggleSave())
		r.Post("/posts/{postID}/view", handlers.interactionHandler.recordView())

		// Comments
		r.Get("/posts/{postID}/comments", handlers.commentHandler.listComments())
		r.Post("/posts/{postID}/comments", handlers.commentHandler.submitComment())
		r.Delete("/comments/{commentID}", handlers.commentHandler.deleteComment())

		// Draft tooling
		r.Post("/drafts/assess", handlers.draftHandler.assessQuality())
		r.Post("/drafts/suggest", handlers.draftHandler.generateSuggestions())
	})
}

func healthHandler(startupTime time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{"status":"ok","uptime":"` + time.Since(startupTime).Round(time.Second).String() + `"}`))
	}
}
