package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/Shiva143-debug/backend-exp/internal/errors"
	"github.com/Shiva143-debug/backend-exp/internal/models"
	"github.com/Shiva143-debug/backend-exp/internal/pagination"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// CreateExpense records a new expense. A missing product falls back to the
// category, and a missing tax amount is derived from the percentage.
func (s *expenseService) CreateExpense(userID int64, in ExpenseInput) (*models.Expense, error) {
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if !in.Cost.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	product := strings.TrimSpace(in.Product)
	if product == "" {
		product = category
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	expense := &models.Expense{
		UserID:      userID,
		Category:    category,
		Product:     product,
		Cost:        in.Cost,
		Description: in.Description,
		Percentage:  in.Percentage,
		TaxAmount:   in.TaxAmount,
	}
	expense.SetDate(date)
	expense.ApplyTax(in.TaxApp, !in.TaxAmount.Valid)

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// GetUserExpenses retrieves a paginated list of a user's expenses, newest first.
func (s *expenseService) GetUserExpenses(userID int64, page pagination.PageRequest, filter EntryFilter) (*pagination.PageResponse[models.Expense], error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	q := s.db.Model(&models.Expense{}).Where("user_id = ?", userID).Scopes(filter.Scope)
	return pagination.List[models.Expense](q, page, "p_date DESC, id DESC")
}

// GetExpenseByID retrieves an expense owned by the user.
func (s *expenseService) GetExpenseByID(userID, expenseID int64) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense applies the non-nil fields of upd.
func (s *expenseService) UpdateExpense(userID, expenseID int64, upd ExpenseUpdate) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	if upd.Category != nil {
		category := strings.TrimSpace(*upd.Category)
		if category == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category cannot be empty")
		}
		expense.Category = category
	}
	if upd.Product != nil {
		expense.Product = strings.TrimSpace(*upd.Product)
	}
	if upd.Cost != nil {
		if !upd.Cost.IsPositive() {
			return nil, apperrors.ErrInvalidAmount
		}
		expense.Cost = *upd.Cost
	}
	if upd.Date != nil {
		expense.SetDate(*upd.Date)
	}
	if upd.Description != nil {
		expense.Description = upd.Description
	}
	applicable := expense.Taxable()
	if upd.TaxApp != nil {
		applicable = *upd.TaxApp
	}
	if upd.Percentage != nil {
		expense.Percentage = decimal.NewNullDecimal(*upd.Percentage)
	}
	if upd.TaxAmount != nil {
		expense.TaxAmount = decimal.NewNullDecimal(*upd.TaxAmount)
	}
	// A new cost or rate invalidates the stored tax unless one was sent.
	expense.ApplyTax(applicable, upd.TaxAmount == nil && (upd.Cost != nil || upd.Percentage != nil))

	if err := s.db.Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// DeleteExpense deletes an expense owned by the user.
func (s *expenseService) DeleteExpense(userID, expenseID int64) error {
	result := s.db.Where("id = ? AND user_id = ?", expenseID, userID).Delete(&models.Expense{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrEntryNotFound
	}
	return nil
}
