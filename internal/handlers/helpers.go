package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Shiva143-debug/backend-exp/internal/errors"
	"github.com/Shiva143-debug/backend-exp/internal/logger"
	"github.com/Shiva143-debug/backend-exp/internal/middleware"
	"github.com/Shiva143-debug/backend-exp/internal/services"
)

// getUserID returns the user ID placed in the context by middleware.UserScope.
func getUserID(c *gin.Context) (int64, error) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return 0, apperrors.ErrUnauthorized
	}
	id, ok := userID.(int64)
	if !ok || id <= 0 {
		return 0, apperrors.ErrUnauthorized
	}
	return id, nil
}

// parsePathID parses a positive integer path parameter.
//
//nolint:unparam // param is kept generic for reuse across handlers
func parsePathID(c *gin.Context, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parseDate parses a YYYY-MM-DD or RFC3339 date. Empty input yields the zero
// time so services can apply their default.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d, nil
	}
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date format, use YYYY-MM-DD")
	}
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), nil
}

// PeriodQuery holds the optional month/year filter of a ledger listing.
// Period ("2025-12") takes precedence over Month and Year.
type PeriodQuery struct {
	Month  *int   `form:"month" binding:"omitempty,min=1,max=12"`
	Year   *int   `form:"year" binding:"omitempty,min=1900,max=9999"`
	Period string `form:"period" binding:"omitempty,year_month"`
}

func (q PeriodQuery) filter() services.EntryFilter {
	if q.Period != "" {
		if t, err := time.Parse("2006-01", q.Period); err == nil {
			month, year := int(t.Month()), t.Year()
			return services.EntryFilter{Month: &month, Year: &year}
		}
	}
	return services.EntryFilter{Month: q.Month, Year: q.Year}
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"request_id", middleware.RequestID(c),
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"request_id", middleware.RequestID(c),
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message"`
}
