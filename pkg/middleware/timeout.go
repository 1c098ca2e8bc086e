package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"routesync/pkg/utils"
)

// Timeout attaches a deadline to the request context and runs the chain
// synchronously. If the deadline passed and nothing was written, it
// answers 503. A handler blocked on something that ignores its context is
// not interrupted.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() != nil && !c.Writer.Written() {
			utils.AbortWithError(c, http.StatusServiceUnavailable, "request timed out")
		}
	}
}
