package testutil_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Shiva143-debug/backend-exp/internal/errors"
	"github.com/Shiva143-debug/backend-exp/internal/models"
	"github.com/Shiva143-debug/backend-exp/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	for _, table := range []string{"category", "product", "expense", "source", "savings", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDBIsolation(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestCategory(t, first, 1, "FOOD")

	var count int64
	if err := second.Model(&models.Category{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected a fresh database, found %d categories", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	date := testutil.Date(2025, time.March, 14)

	expense := testutil.CreateTestExpense(t, db, 7, "FOOD", 250, date)
	if expense.ID == 0 {
		t.Fatal("expense should have a non-zero ID")
	}
	if expense.Month != 3 || expense.Year != 2025 {
		t.Errorf("expected period 3/2025, got %d/%d", expense.Month, expense.Year)
	}

	income := testutil.CreateTestIncome(t, db, 7, "Salary", 5000, date)
	if income.Month != 3 || income.Year != 2025 {
		t.Errorf("expected period 3/2025, got %d/%d", income.Month, income.Year)
	}

	product := testutil.CreateTestProduct(t, db, models.SharedUserID, "FOOD", "Snacks")
	if product.UserID != 0 {
		t.Errorf("expected shared product, got user %d", product.UserID)
	}
}

// recordingTB collects failures instead of failing the enclosing test.
type recordingTB struct {
	testing.TB
	failures []string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(format string, args ...any) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func (r *recordingTB) Fatalf(format string, args ...any) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrEntryNotFound, "custom message")
	appErr := testutil.AssertAppError(t, err, "ENTRY_NOT_FOUND")
	if appErr == nil || appErr.Message != "custom message" {
		t.Errorf("expected the matched error back, got %+v", appErr)
	}

	tests := []struct {
		name string
		err  error
	}{
		{name: "nil", err: nil},
		{name: "plain error", err: fmt.Errorf("boom")},
		{name: "other code", err: errors.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingTB{TB: t}
			testutil.AssertAppError(rec, tt.err, "ENTRY_NOT_FOUND")
			if len(rec.failures) != 1 {
				t.Errorf("expected one failure, got %q", rec.failures)
			}
		})
	}
}

func TestAssertMoney(t *testing.T) {
	tests := []struct {
		name     string
		got      decimal.NullDecimal
		want     string
		failures int
	}{
		{name: "scale ignored", got: decimal.NewNullDecimal(decimal.RequireFromString("180.00")), want: "180"},
		{name: "mismatch", got: decimal.NewNullDecimal(decimal.NewFromInt(179)), want: "180", failures: 1},
		{name: "null expected", got: decimal.NullDecimal{}, want: ""},
		{name: "null unexpected", got: decimal.NullDecimal{}, want: "180", failures: 1},
		{name: "value unexpected", got: decimal.NewNullDecimal(decimal.NewFromInt(1)), want: "", failures: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingTB{TB: t}
			testutil.AssertNullMoney(rec, tt.got, tt.want)
			if len(rec.failures) != tt.failures {
				t.Errorf("expected %d failures, got %q", tt.failures, rec.failures)
			}
		})
	}
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
