package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-labs/inkwell-backend/services"
)

type interactionHandler struct {
	responder    Responder
	logger       zerolog.Logger
	interactions *services.InteractionService
}

func newInteractionHandler(interactions *services.InteractionService) interactionHandler {
	logger := log.With().Str("handlerName", "interactionHandler").Logger()

	return interactionHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		interactions: interactions,
	}
}

// toggleLike flips the viewer's like on a post
func (h interactionHandler) toggleLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := parsePostID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		liked, err := h.interactions.ToggleLike(r.Context(), postID, userIDFromCtx(r.Context()))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]bool{"liked": liked})
	}
}

// toggleSave flips the viewer's saved state on a post
func (h interactionHandler) toggleSave() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := parsePostID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		saved, err := h.interactions.ToggleSave(r.Context(), postID, userIDFromCtx(r.Context()))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]bool{"saved": saved})
	}
}

// recordView counts a view once per viewer. Anonymous viewers are
// identified by the stable visitor cookie.
func (h interactionHandler) recordView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := parsePostID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		counted, err := h.interactions.RecordView(r.Context(), postID, viewerIDFromCtx(r.Context()))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]bool{"counted": counted})
	}
}
