package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotewall/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotewall/internal/domain"
	"github.com/jsamuelsen/quotewall/internal/platform/session"
)

// ContextKeyUserID is the gin context key for the authenticated user ID.
const ContextKeyUserID = "user_id"

// CurrentUser returns middleware that resolves the session cookie into a
// user ID. Requests without a valid session pass through anonymously;
// handlers that require a login pair this with RequireUser.
func CurrentUser(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(manager.CookieName())
		if err != nil || token == "" {
			c.Next()
			return
		}

		userID, err := manager.Verify(token)
		if err != nil {
			// Expired or tampered cookie, treat the request as anonymous.
			c.Next()
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Next()
	}
}

// RequireUser returns middleware that rejects anonymous requests.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == 0 {
			errResp := dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "login required")
			errResp.TraceID = dto.GetTraceID(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errResp)

			return
		}

		c.Next()
	}
}

// UserID returns the authenticated user ID from the gin context, or zero
// for anonymous requests.
func UserID(c *gin.Context) domain.UserID {
	if v, exists := c.Get(ContextKeyUserID); exists {
		if id, ok := v.(domain.UserID); ok {
			return id
		}
	}

	return 0
}
