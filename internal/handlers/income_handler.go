package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/Shiva143-debug/backend-exp/internal/errors"
	"github.com/Shiva143-debug/backend-exp/internal/pagination"
	"github.com/Shiva143-debug/backend-exp/internal/services"
)

// IncomeHandler handles income-related requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
	auditService  services.AuditServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer, auditService services.AuditServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService, auditService: auditService}
}

// CreateIncomeRequest represents the request payload for recording income
type CreateIncomeRequest struct {
	Source string          `json:"source" binding:"required,max=100" example:"Salary"`
	Amount decimal.Decimal `json:"amount" swaggertype:"number" example:"50000"`
	Date   string          `json:"date" binding:"omitempty,ymd" example:"2025-12-01"`
}

// UpdateIncomeRequest represents the request payload for updating income
type UpdateIncomeRequest struct {
	Source *string          `json:"source" binding:"omitempty,max=100"`
	Amount *decimal.Decimal `json:"amount" swaggertype:"number"`
	Date   *string          `json:"date" binding:"omitempty,ymd"`
}

// CreateIncome records income
// @Summary     Record income
// @Tags        income
// @Accept      json
// @Produce     json
// @Param       userId  path int                 true "User ID"
// @Param       request body CreateIncomeRequest true "Income details"
// @Success     201 {object} models.Income
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /users/{userId}/income [post]
func (h *IncomeHandler) CreateIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	income, err := h.incomeService.CreateIncome(userID, req.Source, req.Amount, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE", "income", income.ID, c.ClientIP(),
		map[string]any{"source": income.Source, "amount": income.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"income": income})
}

// GetUserIncome lists the user's income
// @Summary     List income
// @Tags        income
// @Produce     json
// @Param       userId    path  int true  "User ID"
// @Param       month     query int false "Month (1-12)"
// @Param       year      query int false "Year"
// @Param       period    query string false "Period as YYYY-MM"
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.Income]
// @Router      /users/{userId}/income [get]
func (h *IncomeHandler) GetUserIncome(c *gin.Context) {
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

	result, err := h.incomeService.GetUserIncome(userID, page, period.filter())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateIncome updates an income entry
// @Summary     Update income
// @Tags        income
// @Accept      json
// @Produce     json
// @Param       userId  path int                 true "User ID"
// @Param       id      path int                 true "Income ID"
// @Param       request body UpdateIncomeRequest true "Fields to change"
// @Success     200 {object} models.Income
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /users/{userId}/income/{id} [put]
func (h *IncomeHandler) UpdateIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	upd := services.IncomeUpdate{Source: req.Source, Amount: req.Amount}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			respondWithError(c, err)
			return
		}
		upd.Date = &date
	}

	income, err := h.incomeService.UpdateIncome(userID, incomeID, upd)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE", "income", incomeID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"income": income})
}

// DeleteIncome deletes an income entry
// @Summary     Delete income
// @Tags        income
// @Produce     json
// @Param       userId path int true "User ID"
// @Param       id     path int true "Income ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /users/{userId}/income/{id} [delete]
func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.DeleteIncome(userID, incomeID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE", "income", incomeID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Income deleted successfully"})
}
