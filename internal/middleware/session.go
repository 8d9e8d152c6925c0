package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cycle-nutrition/server/internal/auth"
	"github.com/cycle-nutrition/server/internal/schemas"
	"github.com/cycle-nutrition/server/internal/utils"
)

// SessionVerifier resolves a session token to the user id it belongs to.
type SessionVerifier interface {
	VerifySession(token string) (string, *auth.Error)
}

// RequireSession guards a route group. It expects a bearer token, verifies
// it and stores the subject under UserIdKey for the handlers behind it.
func RequireSession(verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, &schemas.ErrorDTO{Error: *schemas.Unauthorized})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		userId, authErr := verifier.VerifySession(token)
		if authErr != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, &schemas.ErrorDTO{Error: *authErr.Public})
			return
		}

		c.Set(utils.UserIdKey.String(), userId)
		c.Next()
	}
}
