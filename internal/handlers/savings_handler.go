package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/Shiva143-debug/backend-exp/internal/errors"
	"github.com/Shiva143-debug/backend-exp/internal/pagination"
	"github.com/Shiva143-debug/backend-exp/internal/services"
)

// SavingsHandler handles savings-related requests.
type SavingsHandler struct {
	savingsService services.SavingsServicer
	auditService   services.AuditServicer
}

// NewSavingsHandler creates a new SavingsHandler.
func NewSavingsHandler(savingsService services.SavingsServicer, auditService services.AuditServicer) *SavingsHandler {
	return &SavingsHandler{savingsService: savingsService, auditService: auditService}
}

type CreateSavingsRequest struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"number" example:"2500"`
	Date   string          `json:"date" binding:"omitempty,ymd" example:"2025-12-01"`
	Note   *string         `json:"note" binding:"omitempty,max=500"`
}

type UpdateSavingsRequest struct {
	Amount *decimal.Decimal `json:"amount" swaggertype:"number"`
	Date   *string          `json:"date" binding:"omitempty,ymd"`
	Note   *string          `json:"note" binding:"omitempty,max=500"`
}

// CreateSavings records a savings deposit
// @Summary     Record savings
// @Tags        savings
// @Accept      json
// @Produce     json
// @Param       userId  path int                  true "User ID"
// @Param       request body CreateSavingsRequest true "Savings details"
// @Success     201 {object} models.Savings
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /users/{userId}/savings [post]
func (h *SavingsHandler) CreateSavings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateSavingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	savings, err := h.savingsService.CreateSavings(userID, req.Amount, date, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE", "savings", savings.ID, c.ClientIP(),
		map[string]any{"amount": savings.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"savings": savings})
}

// GetUserSavings lists the user's savings
// @Summary     List savings
// @Tags        savings
// @Produce     json
// @Param       userId    path  int true  "User ID"
// @Param       month     query int false "Month (1-12)"
// @Param       year      query int false "Year"
// @Param       period    query string false "Period as YYYY-MM"
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.Savings]
// @Router      /users/{userId}/savings [get]
func (h *SavingsHandler) GetUserSavings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	var period PeriodQuery
	if err := c.ShouldBindQuery(&period); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.savingsService.GetUserSavings(userID, page, period.filter())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateSavings updates a savings entry
// @Summary     Update savings
// @Tags        savings
// @Accept      json
// @Produce     json
// @Param       userId  path int                  true "User ID"
// @Param       id      path int                  true "Savings ID"
// @Param       request body UpdateSavingsRequest true "Fields to change"
// @Success     200 {object} models.Savings
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /users/{userId}/savings/{id} [put]
func (h *SavingsHandler) UpdateSavings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	savingsID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSavingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	upd := services.SavingsUpdate{Amount: req.Amount, Note: req.Note}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			respondWithError(c, err)
			return
		}
		upd.Date = &date
	}

	savings, err := h.savingsService.UpdateSavings(userID, savingsID, upd)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE", "savings", savingsID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"savings": savings})
}

// DeleteSavings deletes a savings entry
// @Summary     Delete savings
// @Tags        savings
// @Produce     json
// @Param       userId path int true "User ID"
// @Param       id     path int true "Savings ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /users/{userId}/savings/{id} [delete]
func (h *SavingsHandler) DeleteSavings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	savingsID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.savingsService.DeleteSavings(userID, savingsID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE", "savings", savingsID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Savings deleted successfully"})
}
