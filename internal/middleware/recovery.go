package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shiva143-debug/backend-exp/internal/logger"
)

// ReplyRecovery recovers panics on routes whose clients expect the agent
// reply envelope instead of the error body.
func ReplyRecovery(message string) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Get().Errorw("panic recovered",
			"request_id", c.GetString(requestIDKey),
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"action": "reply",
			"reply":  message,
		})
	})
}
