package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-labs/inkwell-backend/errs"
	"github.com/inkwell-labs/inkwell-backend/services"
)

type draftHandler struct {
	responder Responder
	logger    zerolog.Logger
	gate      *services.QualityGate
}

func newDraftHandler(gate *services.QualityGate) draftHandler {
	logger := log.With().Str("handlerName", "draftHandler").Logger()

	return draftHandler{
		responder: NewResponder(logger),
		logger:    logger,
		gate:      gate,
	}
}

// DraftContentRequest carries the draft body for quality tooling
type DraftContentRequest struct {
	Content string `json:"content"`
}

// assessQuality scores a draft. Always succeeds: provider failures degrade
// to the heuristic assessment.
func (h draftHandler) assessQuality() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DraftContentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		h.responder.WriteJSON(w, h.gate.AssessQuality(r.Context(), req.Content))
	}
}

// generateSuggestions proposes publish metadata for a draft
func (h draftHandler) generateSuggestions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DraftContentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		h.responder.WriteJSON(w, h.gate.GenerateSuggestions(r.Context(), req.Content))
	}
}
