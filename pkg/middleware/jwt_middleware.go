package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"routesync/pkg/utils"
)

// ContextKeyOwnerID holds the caller's opaque owner id once a token is verified.
const ContextKeyOwnerID = "owner_id"

// JWTAuthMiddleware verifies the identity-provider token and stores its
// subject under ContextKeyOwnerID. Handlers read it with OwnerID and hand
// it to the service explicitly.
func JWTAuthMiddleware(verifier *utils.TokenVerifier) gin.HandlerFunc {

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			utils.AbortWithError(c, http.StatusUnauthorized, utils.MsgAuthRequired)
			return
		}

		claims, err := verifier.ValidateToken(parts[1])
		if err != nil {
			utils.AbortWithError(c, http.StatusUnauthorized, utils.MsgAuthRequired)
			return
		}

		c.Set(ContextKeyOwnerID, claims.Subject)
		c.Next()
	}
}

// OwnerID returns the verified owner id, or "" when the request is anonymous.
func OwnerID(c *gin.Context) string {
	return c.GetString(ContextKeyOwnerID)
}
