package api

import (
	"context"

	"github.com/google/uuid"
)

type keyType string

const (
	userIDKey    keyType = "userID"
	visitorIDKey keyType = "visitorID"
)

// ctxWithUserID adds the signed-in user's ID to the context
func ctxWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// userIDFromCtx retrieves the signed-in user's ID, or uuid.Nil for
// anonymous requests
func userIDFromCtx(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(userIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// ctxWithVisitorID adds the stable anonymous visitor ID to the context
func ctxWithVisitorID(ctx context.Context, visitorID uuid.UUID) context.Context {
	return context.WithValue(ctx, visitorIDKey, visitorID)
}

// visitorIDFromCtx retrieves the anonymous visitor ID, or uuid.Nil when the
// cookie middleware did not run
func visitorIDFromCtx(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(visitorIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// viewerIDFromCtx resolves the identity used for view counting: the
// signed-in user when present, otherwise the stable visitor id.
func viewerIDFromCtx(ctx context.Context) uuid.UUID {
	if id := userIDFromCtx(ctx); id != uuid.Nil {
		return id
	}
	return visitorIDFromCtx(ctx)
}
