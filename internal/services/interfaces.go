package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Shiva143-debug/backend-exp/internal/models"
	"github.com/Shiva143-debug/backend-exp/internal/pagination"
)

// EntryFilter narrows a ledger listing to a month and/or year.
type EntryFilter = pagination.Period

// ExpenseInput holds the fields of a new expense.
type ExpenseInput struct {
	Category    string
	Product     string
	Cost        decimal.Decimal
	Date        time.Time
	Description *string
	TaxApp      bool
	Percentage  decimal.NullDecimal
	TaxAmount   decimal.NullDecimal
}

// ExpenseUpdate holds the fields to change on an expense; nil leaves a field alone.
type ExpenseUpdate struct {
	Category    *string
	Product     *string
	Cost        *decimal.Decimal
	Date        *time.Time
	Description *string
	TaxApp      *bool
	Percentage  *decimal.Decimal
	TaxAmount   *decimal.Decimal
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID int64, in ExpenseInput) (*models.Expense, error)
	GetUserExpenses(userID int64, page pagination.PageRequest, filter EntryFilter) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID int64) (*models.Expense, error)
	UpdateExpense(userID, expenseID int64, upd ExpenseUpdate) (*models.Expense, error)
	DeleteExpense(userID, expenseID int64) error
}

// IncomeUpdate holds the fields to change on an income entry.
type IncomeUpdate struct {
	Source *string
	Amount *decimal.Decimal
	Date   *time.Time
}

// IncomeServicer defines the contract for income-related business logic.
type IncomeServicer interface {
	CreateIncome(userID int64, source string, amount decimal.Decimal, date time.Time) (*models.Income, error)
	GetUserIncome(userID int64, page pagination.PageRequest, filter EntryFilter) (*pagination.PageResponse[models.Income], error)
	GetIncomeByID(userID, incomeID int64) (*models.Income, error)
	UpdateIncome(userID, incomeID int64, upd IncomeUpdate) (*models.Income, error)
	DeleteIncome(userID, incomeID int64) error
}

// SavingsUpdate holds the fields to change on a savings entry.
type SavingsUpdate struct {
	Amount *decimal.Decimal
	Date   *time.Time
	Note   *string
}

// SavingsServicer defines the contract for savings-related business logic.
type SavingsServicer interface {
	CreateSavings(userID int64, amount decimal.Decimal, date time.Time, note *string) (*models.Savings, error)
	GetUserSavings(userID int64, page pagination.PageRequest, filter EntryFilter) (*pagination.PageResponse[models.Savings], error)
	GetSavingsByID(userID, savingsID int64) (*models.Savings, error)
	UpdateSavings(userID, savingsID int64, upd SavingsUpdate) (*models.Savings, error)
	DeleteSavings(userID, savingsID int64) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	GetUserCategories(userID int64, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	CreateCategory(userID int64, name string) (*models.Category, error)
	RenameCategory(userID, categoryID int64, name string) (*models.Category, error)
	DeleteCategory(userID, categoryID int64) error
}

// ProductServicer defines the contract for subcategory lookups and creation.
type ProductServicer interface {
	GetCategoryProducts(userID int64, category string) ([]models.Product, error)
	CreateProduct(userID int64, category, product string) (*models.Product, bool, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID int64, action, resourceType string, resourceID int64, ipAddress string, changes map[string]any)
}
