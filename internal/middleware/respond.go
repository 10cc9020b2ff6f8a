package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/thereayou/crocnet/internal/services"
)

// RespondError aborts the request with the {"error": message} envelope.
// Untyped errors become a 500 so internal details never reach the client.
func RespondError(c *gin.Context, err error) {
	e := services.AsError(err)
	if e == services.ErrInternal {
		c.Error(err)
	}
	c.AbortWithStatusJSON(e.Status, gin.H{"error": e.Message})
}

// NotFound answers unmatched routes.
func NotFound(c *gin.Context) {
	RespondError(c, services.ErrNotFound)
}
