package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// actorIDKey is the key used to store the acting user's ID in the context.
const actorIDKey = contextKey("actorID")

// ActorMiddleware extracts the acting user from the X-Actor-ID header and
// stores it in the request context. Requests without an actor are rejected
// by the handlers, not here.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader("X-Actor-ID")
		if actorID != "" {
			ctx := context.WithValue(c.Request.Context(), actorIDKey, actorID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// GetActorIDFromContext retrieves the acting user ID from the Gin context.
// It returns the actor ID and a boolean indicating if it was found.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	actorID, ok := c.Request.Context().Value(actorIDKey).(string)
	if !ok || actorID == "" {
		return "", false
	}
	return actorID, true
}
