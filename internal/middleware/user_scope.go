package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Shiva143-debug/backend-exp/internal/errors"
)

// UserIDKey is the gin context key holding the caller's user ID.
const UserIDKey = "userID"

// UserScope reads the user ID from the named path parameter and stores it in
// the context under UserIDKey. The ID is trusted as sent by the client.
func UserScope(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param(param)
		if raw == "" {
			abortWithAppError(c, apperrors.ErrUnauthorized)
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			abortWithAppError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param))
			return
		}

		c.Set(UserIDKey, id)
		c.Next()
	}
}

func abortWithAppError(c *gin.Context, appErr *apperrors.AppError) {
	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
