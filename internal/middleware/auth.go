package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"merchant-be/internal/common"
	"merchant-be/internal/entities"
)

// SessionResolver resolves a session token to its user
type SessionResolver interface {
	GetSession(ctx context.Context, token string) (*entities.User, error)
}

// AuthMiddleware requires a valid session cookie. The resolved user is stored
// under common.ContextUserKey and its id under common.ContextUserIDKey.
func AuthMiddleware(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(common.SessionCookie)
		if err != nil || token == "" || token == common.LoggedOutToken {
			abortUnauthorized(c, "You need to login first")
			return
		}

		user, err := sessions.GetSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrUnauthorized) {
				abortUnauthorized(c, "Unauthorized: Invalid token")
				return
			}
			slog.ErrorContext(c.Request.Context(), "session lookup failed", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": err.Error(),
			})
			return
		}

		c.Set(common.ContextUserKey, user)
		c.Set(common.ContextUserIDKey, user.ID.Hex())
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware
func CurrentUser(c *gin.Context) (*entities.User, bool) {
	v, ok := c.Get(common.ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entities.User)
	return user, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}
