package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/Shiva143-debug/backend-exp/internal/errors"
	"github.com/Shiva143-debug/backend-exp/internal/models"
	"github.com/Shiva143-debug/backend-exp/internal/pagination"
	"github.com/Shiva143-debug/backend-exp/internal/services"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	auditService   services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, auditService: auditService}
}

// CreateExpenseRequest represents the request payload for creating an expense
type CreateExpenseRequest struct {
	Category    string           `json:"category" binding:"required,max=100"`
	Product     string           `json:"product" binding:"max=100"`
	Cost        decimal.Decimal  `json:"cost" swaggertype:"number" example:"250.50"`
	Date        string           `json:"p_date" binding:"omitempty,ymd" example:"2025-12-04"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
	IsTaxApp    string           `json:"is_tax_app" binding:"omitempty,yes_no" example:"no"`
	Percentage  *decimal.Decimal `json:"percentage" swaggertype:"number"`
	TaxAmount   *decimal.Decimal `json:"tax_amount" swaggertype:"number"`
}

// UpdateExpenseRequest represents the request payload for updating an expense
type UpdateExpenseRequest struct {
	Category    *string          `json:"category" binding:"omitempty,max=100"`
	Product     *string          `json:"product" binding:"omitempty,max=100"`
	Cost        *decimal.Decimal `json:"cost" swaggertype:"number"`
	Date        *string          `json:"p_date" binding:"omitempty,ymd"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
	IsTaxApp    *string          `json:"is_tax_app" binding:"omitempty,yes_no"`
	Percentage  *decimal.Decimal `json:"percentage" swaggertype:"number"`
	TaxAmount   *decimal.Decimal `json:"tax_amount" swaggertype:"number"`
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

// CreateExpense handles the creation of a new expense
// @Summary     Create an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       userId  path int                  true "User ID"
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/{userId}/expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.CreateExpense(userID, services.ExpenseInput{
		Category:    req.Category,
		Product:     req.Product,
		Cost:        req.Cost,
		Date:        date,
		Description: req.Description,
		TaxApp:      strings.EqualFold(req.IsTaxApp, models.TaxApplicable),
		Percentage:  nullDecimal(req.Percentage),
		TaxAmount:   nullDecimal(req.TaxAmount),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE", "expense", expense.ID, c.ClientIP(),
		map[string]any{"category": expense.Category, "cost": expense.Cost.String()})

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// GetUserExpenses lists the user's expenses
// @Summary     List expenses
// @Tags        expenses
// @Produce     json
// @Param       userId    path  int true  "User ID"
// @Param       month     query int false "Month (1-12)"
// @Param       year      query int false "Year"
// @Param       period    query string false "Period as YYYY-MM"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Expense]
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /users/{userId}/expenses [get]
func (h *ExpenseHandler) GetUserExpenses(c *gin.Context) {
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

	result, err := h.expenseService.GetUserExpenses(userID, page, period.filter())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateExpense updates fields of an expense
// @Summary     Update an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       userId  path int                  true "User ID"
// @Param       id      path int                  true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Fields to change"
// @Success     200 {object} models.Expense
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /users/{userId}/expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	upd := services.ExpenseUpdate{
		Category:    req.Category,
		Product:     req.Product,
		Cost:        req.Cost,
		Description: req.Description,
		Percentage:  req.Percentage,
		TaxAmount:   req.TaxAmount,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			respondWithError(c, err)
			return
		}
		upd.Date = &date
	}
	if req.IsTaxApp != nil {
		applicable := strings.EqualFold(*req.IsTaxApp, models.TaxApplicable)
		upd.TaxApp = &applicable
	}

	expense, err := h.expenseService.UpdateExpense(userID, expenseID, upd)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE", "expense", expenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense deletes an expense
// @Summary     Delete an expense
// @Tags        expenses
// @Produce     json
// @Param       userId path int true "User ID"
// @Param       id     path int true "Expense ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /users/{userId}/expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE", "expense", expenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}
