package pagination_test

import (
	"testing"
	"time"

	"github.com/Shiva143-debug/backend-exp/internal/models"
	"github.com/Shiva143-debug/backend-exp/internal/pagination"
	"github.com/Shiva143-debug/backend-exp/internal/testutil"
)

func intPtr(v int) *int { return &v }

func TestPageRequestDefaults(t *testing.T) {
	tests := []struct {
		name     string
		in       pagination.PageRequest
		wantPage int
		wantSize int
		offset   int
	}{
		{name: "empty", in: pagination.PageRequest{}, wantPage: 1, wantSize: pagination.DefaultPageSize, offset: 0},
		{name: "third page", in: pagination.PageRequest{Page: 3, PageSize: 10}, wantPage: 3, wantSize: 10, offset: 20},
		{name: "oversized page", in: pagination.PageRequest{Page: 1, PageSize: 500}, wantPage: 1, wantSize: pagination.MaxPageSize, offset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Defaults()
			if p.Page != tt.wantPage || p.PageSize != tt.wantSize {
				t.Errorf("expected %d/%d, got %d/%d", tt.wantPage, tt.wantSize, p.Page, p.PageSize)
			}
			if p.Offset() != tt.offset {
				t.Errorf("expected offset %d, got %d", tt.offset, p.Offset())
			}
		})
	}
}

func TestNewPageResponse(t *testing.T) {
	resp := pagination.NewPageResponse[int](nil, 1, 20, 41)
	if resp.Data == nil {
		t.Error("expected empty slice, got nil")
	}
	if resp.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", resp.TotalPages)
	}

	if empty := pagination.NewPageResponse([]int{}, 1, 20, 0); empty.TotalPages != 0 {
		t.Errorf("expected 0 pages, got %d", empty.TotalPages)
	}
}

func TestPeriodValidate(t *testing.T) {
	valid := []pagination.Period{
		{},
		{Month: intPtr(12)},
		{Month: intPtr(1), Year: intPtr(2025)},
	}
	for _, p := range valid {
		testutil.AssertNoError(t, p.Validate())
	}

	invalid := []pagination.Period{
		{Month: intPtr(0)},
		{Month: intPtr(13)},
		{Year: intPtr(1800)},
	}
	for _, p := range invalid {
		testutil.AssertAppError(t, p.Validate(), "INVALID_INPUT")
	}
}

func TestList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	testutil.CreateTestExpense(t, db, 1, "FOOD", 10, testutil.Date(2025, time.March, 1))
	testutil.CreateTestExpense(t, db, 1, "FOOD", 20, testutil.Date(2025, time.March, 5))
	testutil.CreateTestExpense(t, db, 1, "FOOD", 30, testutil.Date(2025, time.March, 9))
	testutil.CreateTestExpense(t, db, 1, "FOOD", 40, testutil.Date(2025, time.April, 1))
	testutil.CreateTestExpense(t, db, 2, "FOOD", 50, testutil.Date(2025, time.March, 2))

	t.Run("period_and_order", func(t *testing.T) {
		period := pagination.Period{Month: intPtr(3), Year: intPtr(2025)}
		q := db.Model(&models.Expense{}).Where("user_id = ?", 1).Scopes(period.Scope)

		page, err := pagination.List[models.Expense](q, pagination.PageRequest{PageSize: 2}, "p_date DESC, id DESC")
		testutil.AssertNoError(t, err)

		if page.TotalItems != 3 || page.TotalPages != 2 {
			t.Errorf("expected 3 items over 2 pages, got %d over %d", page.TotalItems, page.TotalPages)
		}
		if len(page.Data) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(page.Data))
		}
		if page.Data[0].PDate.Day() != 9 || page.Data[1].PDate.Day() != 5 {
			t.Errorf("expected newest first, got %s then %s", page.Data[0].PDate, page.Data[1].PDate)
		}
	})

	t.Run("past_last_page", func(t *testing.T) {
		q := db.Model(&models.Expense{}).Where("user_id = ?", 1)

		page, err := pagination.List[models.Expense](q, pagination.PageRequest{Page: 5, PageSize: 10}, "id")
		testutil.AssertNoError(t, err)

		if page.TotalItems != 4 || len(page.Data) != 0 {
			t.Errorf("expected 4 total and an empty page, got %d and %d rows", page.TotalItems, len(page.Data))
		}
		if page.Data == nil {
			t.Error("expected empty slice, got nil")
		}
	})
}
