package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Shiva143-debug/backend-exp/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestCategory creates a category with the given name.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID int64, name string) *models.Category {
	t.Helper()

	if name == "" {
		name = fmt.Sprintf("CATEGORY %d", nextID())
	}
	category := &models.Category{UserID: userID, Category: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestProduct creates a subcategory under category.
func CreateTestProduct(t *testing.T, db *gorm.DB, userID int64, category, product string) *models.Product {
	t.Helper()

	p := &models.Product{UserID: userID, Category: category, Product: product}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return p
}

// CreateTestExpense creates an expense of cost on date.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID int64, category string, cost int64, date time.Time) *models.Expense {
	t.Helper()

	e := &models.Expense{
		UserID:   userID,
		Category: category,
		Product:  category,
		Cost:     decimal.NewFromInt(cost),
		IsTaxApp: models.TaxNotApplicable,
	}
	e.SetDate(date)
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return e
}

// CreateTestIncome creates an income row of amount on date.
func CreateTestIncome(t *testing.T, db *gorm.DB, userID int64, source string, amount int64, date time.Time) *models.Income {
	t.Helper()

	i := &models.Income{UserID: userID, Source: source, Amount: decimal.NewFromInt(amount)}
	i.SetDate(date)
	if err := db.Create(i).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return i
}

// CreateTestSavings creates a savings row of amount on date.
func CreateTestSavings(t *testing.T, db *gorm.DB, userID int64, amount int64, date time.Time) *models.Savings {
	t.Helper()

	s := &models.Savings{UserID: userID, Amount: decimal.NewFromInt(amount)}
	s.SetDate(date)
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("failed to create test savings: %v", err)
	}
	return s
}

// Date builds a UTC midnight date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
