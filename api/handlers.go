package api

import (
	"time"

	"github.com/inkwell-labs/inkwell-backend/config"
	"github.com/inkwell-labs/inkwell-backend/database"
	"github.com/inkwell-labs/inkwell-backend/services"
)

// initializeHandlers creates the service graph and returns all handlers
// organized in a routeHandlers struct
func initializeHandlers(db database.Database, cfg map[string]string) *routeHandlers {
	pageCache := services.NewPostPageCache(config.GetDuration(cfg, "PAGE_CACHE_TTL_SECONDS", 60*time.Second))

	gate := services.NewQualityGate(cfg)
	mailer := services.NewResendMailer(cfg, nil)

	interactions := services.NewInteractionService(db, pageCache)
	comments := services.NewCommentService(db, pageCache)
	publisher := services.NewPublishService(db, gate, mailer, pageCache, cfg)

	return &routeHandlers{
		postHandler:        newPostHandler(db, publisher, interactions, pageCache),
		interactionHandler: newInteractionHandler(interactions),
		commentHandler:     newCommentHandler(comments),
		draftHandler:       newDraftHandler(gate),
	}
}
