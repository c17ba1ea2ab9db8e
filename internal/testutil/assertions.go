package testutil

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "github.com/Shiva143-debug/backend-exp/internal/errors"
)

// AssertNoError stops the test on a non-nil err.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertAppError stops the test unless err wraps an *AppError carrying code.
func AssertAppError(t testing.TB, err error, code string) *apperrors.AppError {
	t.Helper()

	var appErr *apperrors.AppError
	switch {
	case err == nil:
		t.Fatalf("expected %s, got nil", code)
	case !errors.As(err, &appErr):
		t.Fatalf("expected %s, got %T: %v", code, err, err)
	case appErr.Code != code:
		t.Errorf("expected %s, got %s (%d: %s)", code, appErr.Code, appErr.StatusCode, appErr.Message)
	}
	return appErr
}

// AssertMoney compares an amount against its decimal text, ignoring scale,
// so "180" matches a stored 180.00.
func AssertMoney(t testing.TB, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("expected %s, got %s", want, got)
	}
}

// AssertNullMoney is AssertMoney for nullable columns. An empty want
// expects NULL.
func AssertNullMoney(t testing.TB, got decimal.NullDecimal, want string) {
	t.Helper()
	switch {
	case want == "" && got.Valid:
		t.Errorf("expected NULL, got %s", got.Decimal)
	case want == "":
	case !got.Valid:
		t.Errorf("expected %s, got NULL", want)
	default:
		AssertMoney(t, got.Decimal, want)
	}
}
