package agent

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Shiva143-debug/backend-exp/internal/database"
	"github.com/Shiva143-debug/backend-exp/internal/models"
	"github.com/Shiva143-debug/backend-exp/internal/testutil"
)

type auditCall struct {
	userID       int64
	action       string
	resourceType string
	resourceID   int64
}

type fakeAuditor struct {
	calls []auditCall
}

func (f *fakeAuditor) Log(userID int64, action, resourceType string, resourceID int64, _ string, _ map[string]any) {
	f.calls = append(f.calls, auditCall{userID, action, resourceType, resourceID})
}

var fixedNow = time.Date(2025, time.December, 4, 9, 0, 0, 0, time.UTC)

const testUser int64 = 42

func setupInterpreter(t *testing.T) (*Interpreter, *gorm.DB, *fakeAuditor) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	audit := &fakeAuditor{}
	return NewInterpreter(database.NewGateway(db), audit, "₹"), db, audit
}

func testContext() AgentContext {
	return NewContext(testUser, "Asha", fixedNow)
}

// run decodes raw as model output and interprets it.
func run(t *testing.T, in *Interpreter, raw string) Response {
	t.Helper()
	obj, err := ParseResponse(raw)
	if err != nil {
		t.Fatalf("fixture is not valid JSON: %v", err)
	}
	action, err := DecodeAction(obj)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	return in.Interpret(context.Background(), testContext(), action)
}

func dataMap(t *testing.T, r Response) map[string]any {
	t.Helper()
	m, ok := r.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected map data, got %T (reply %q)", r.Data, r.Reply)
	}
	return m
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}

func TestInterpretReply(t *testing.T) {
	in, _, _ := setupInterpreter(t)
	r := run(t, in, `{"action":"reply","reply":"hello there"}`)
	if r.Action != KindReply || r.Reply != "hello there" {
		t.Errorf("unexpected response %#v", r)
	}
}

func TestInterpretPassthrough(t *testing.T) {
	in, _, _ := setupInterpreter(t)

	for _, raw := range []string{
		`{"action":"navigate","to":"/expenses"}`,
		`{"action":"openCamera","mode":"receipt"}`,
	} {
		r := run(t, in, raw)
		body, ok := r.Body().(map[string]any)
		if !ok {
			t.Fatalf("expected raw map body, got %T", r.Body())
		}
		var want map[string]any
		_ = json.Unmarshal([]byte(raw), &want)
		for k, v := range want {
			if body[k] != v {
				t.Errorf("expected %s=%v to be forwarded, got %v", k, v, body[k])
			}
		}
	}
}

func TestNeedDataTotals(t *testing.T) {
	t.Run("zero_rows_yield_zero", func(t *testing.T) {
		in, _, _ := setupInterpreter(t)

		r := run(t, in, `{"action":"need_data","call":"expense_monthly","params":{"month":6,"year":2024}}`)
		data := dataMap(t, r)
		total, ok := data["total"].(decimal.Decimal)
		if !ok {
			t.Fatalf("expected decimal total, got %T", data["total"])
		}
		if !total.IsZero() {
			t.Errorf("expected 0, got %s", total)
		}
		if !strings.Contains(r.Reply, "₹0.00") {
			t.Errorf("expected zero total in reply, got %q", r.Reply)
		}
	})

	t.Run("period_defaults_to_today", func(t *testing.T) {
		in, db, _ := setupInterpreter(t)
		testutil.CreateTestExpense(t, db, testUser, "FOOD", 120, testutil.Date(2025, time.December, 1))
		testutil.CreateTestExpense(t, db, testUser, "FOOD", 999, testutil.Date(2025, time.November, 30))

		r := run(t, in, `{"action":"need_data","call":"expense_monthly","params":{}}`)
		data := dataMap(t, r)
		if data["month"] != 12 || data["year"] != 2025 {
			t.Errorf("expected 12/2025, got %v/%v", data["month"], data["year"])
		}
		if total := data["total"].(decimal.Decimal); !total.Equal(decimal.NewFromInt(120)) {
			t.Errorf("expected 120, got %s", total)
		}
	})

	t.Run("period_string", func(t *testing.T) {
		in, db, _ := setupInterpreter(t)
		testutil.CreateTestIncome(t, db, testUser, "Salary", 5000, testutil.Date(2024, time.March, 1))

		r := run(t, in, `{"action":"need_data","call":"income_monthly","params":{"period":"2024-03"}}`)
		data := dataMap(t, r)
		if data["month"] != 3 || data["year"] != 2024 {
			t.Errorf("expected 3/2024, got %v/%v", data["month"], data["year"])
		}
		if total := data["total"].(decimal.Decimal); !total.Equal(decimal.NewFromInt(5000)) {
			t.Errorf("expected 5000, got %s", total)
		}
	})

	t.Run("scoped_to_user", func(t *testing.T) {
		in, db, _ := setupInterpreter(t)
		date := testutil.Date(2025, time.December, 2)
		testutil.CreateTestSavings(t, db, testUser, 100, date)
		testutil.CreateTestSavings(t, db, testUser+1, 700, date)

		r := run(t, in, `{"action":"need_data","call":"savings_monthly"}`)
		if total := dataMap(t, r)["total"].(decimal.Decimal); !total.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected 100, got %s", total)
		}
	})

	t.Run("monthly_items", func(t *testing.T) {
		in, db, _ := setupInterpreter(t)
		for day := 1; day <= 3; day++ {
			testutil.CreateTestExpense(t, db, testUser, "FOOD", int64(day*10), testutil.Date(2025, time.December, day))
		}

		r := run(t, in, `{"action":"need_data","call":"expense_monthly","params":{"limit":2}}`)
		items, ok := dataMap(t, r)["items"].([]expenseItem)
		if !ok {
			t.Fatalf("expected expense items, got %T", dataMap(t, r)["items"])
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		if !items[0].Cost.Equal(decimal.NewFromInt(30)) {
			t.Errorf("expected newest item first, got %s", items[0].Cost)
		}
	})

	t.Run("yearly_with_breakdown", func(t *testing.T) {
		in, db, _ := setupInterpreter(t)
		testutil.CreateTestExpense(t, db, testUser, "FOOD", 100, testutil.Date(2024, time.May, 1))
		testutil.CreateTestExpense(t, db, testUser, "FOOD", 50, testutil.Date(2025, time.May, 1))
		testutil.CreateTestExpense(t, db, testUser, "FOOD", 25, testutil.Date(2025, time.June, 1))

		r := run(t, in, `{"action":"need_data","call":"expense_yearly","params":{"year":2025}}`)
		data := dataMap(t, r)
		if total := data["total"].(decimal.Decimal); !total.Equal(decimal.NewFromInt(75)) {
			t.Errorf("expected 75, got %s", total)
		}
		years := data["years"].([]yearTotal)
		if len(years) != 2 || years[0].Year != 2025 || years[1].Year != 2024 {
			t.Errorf("expected years 2025, 2024 descending, got %+v", years)
		}
	})

	t.Run("all_months", func(t *testing.T) {
		in, db, _ := setupInterpreter(t)
		testutil.CreateTestIncome(t, db, testUser, "Salary", 100, testutil.Date(2025, time.January, 5))
		testutil.CreateTestIncome(t, db, testUser, "Bonus", 40, testutil.Date(2025, time.March, 5))
		testutil.CreateTestIncome(t, db, testUser, "Salary", 100, testutil.Date(2025, time.March, 6))

		r := run(t, in, `{"action":"need_data","call":"income_all_months","params":{"year":2025}}`)
		months := dataMap(t, r)["months"].([]monthTotal)
		if len(months) != 2 || months[0].Month != 3 || !months[0].Total.Equal(decimal.NewFromInt(140)) {
			t.Errorf("unexpected months %+v", months)
		}
		if !strings.Contains(r.Reply, "March") {
			t.Errorf("expected month names in reply, got %q", r.Reply)
		}
	})
}

func TestNeedDataCategories(t *testing.T) {
	t.Run("breakdown_ordered_by_total", func(t *testing.T) {
		in, db, _ := setupInterpreter(t)
		date := testutil.Date(2025, time.December, 2)
		testutil.CreateTestExpense(t, db, testUser, "FOOD", 100, date)
		testutil.CreateTestExpense(t, db, testUser, "BILLS", 500, date)
		testutil.CreateTestExpense(t, db, testUser, "FOOD", 50, date)

		r := run(t, in, `{"action":"need_data","call":"category_breakdown"}`)
		rows := dataMap(t, r)["categories"].([]categoryTotal)
		if len(rows) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(rows))
		}
		if rows[0].Category != "BILLS" || rows[1].Category != "FOOD" || !rows[1].Total.Equal(decimal.NewFromInt(150)) {
			t.Errorf("unexpected breakdown %+v", rows)
		}
	})

	t.Run("category_total_case_insensitive", func(t *testing.T) {
		in, db, _ := setupInterpreter(t)
		testutil.CreateTestExpense(t, db, testUser, "FOOD", 80, testutil.Date(2025, time.December, 2))
		testutil.CreateTestExpense(t, db, testUser, "Food", 20, testutil.Date(2025, time.February, 2))

		r := run(t, in, `{"action":"need_data","call":"category_month_total","params":{"category":"food"}}`)
		if total := dataMap(t, r)["total"].(decimal.Decimal); !total.Equal(decimal.NewFromInt(80)) {
			t.Errorf("expected 80, got %s", total)
		}

		r = run(t, in, `{"action":"need_data","call":"category_year_total","params":{"category":"fOOd","year":2025}}`)
		if total := dataMap(t, r)["total"].(decimal.Decimal); !total.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected 100, got %s", total)
		}
	})

	t.Run("category_total_requires_category", func(t *testing.T) {
		in, _, _ := setupInterpreter(t)
		r := run(t, in, `{"action":"need_data","call":"category_month_total","params":{}}`)
		if r.Action != KindReply || !strings.Contains(r.Reply, "Which category") {
			t.Errorf("expected clarifying reply, got %#v", r)
		}
	})

	t.Run("list_categories_includes_shared", func(t *testing.T) {
		in, db, _ := setupInterpreter(t)
		testutil.CreateTestCategory(t, db, testUser, "GADGETS")
		testutil.CreateTestCategory(t, db, models.SharedUserID, "FOOD")
		testutil.CreateTestCategory(t, db, testUser+1, "SECRET")

		r := run(t, in, `{"action":"need_data","call":"list_categories"}`)
		got := dataMap(t, r)["categories"].([]string)
		if len(got) != 2 || got[0] != "FOOD" || got[1] != "GADGETS" {
			t.Errorf("expected [FOOD GADGETS], got %v", got)
		}
	})

	t.Run("list_subcategories", func(t *testing.T) {
		in, db, _ := setupInterpreter(t)
		testutil.CreateTestProduct(t, db, testUser, "FOOD", "Snacks")
		testutil.CreateTestProduct(t, db, models.SharedUserID, "FOOD", "Groceries")
		testutil.CreateTestProduct(t, db, testUser, "BILLS", "Power")

		r := run(t, in, `{"action":"need_data","call":"list_subcategories","params":{"category":"food"}}`)
		got := dataMap(t, r)["subcategories"].([]string)
		if len(got) != 2 || got[0] != "Groceries" || got[1] != "Snacks" {
			t.Errorf("expected [Groceries Snacks], got %v", got)
		}

		r = run(t, in, `{"action":"need_data","call":"list_products"}`)
		counts := dataMap(t, r)["categories"].([]productCount)
		if len(counts) != 2 || counts[0].Category != "BILLS" || counts[1].Count != 2 {
			t.Errorf("unexpected counts %+v", counts)
		}
	})

	t.Run("all_years_data", func(t *testing.T) {
		in, db, _ := setupInterpreter(t)
		testutil.CreateTestExpense(t, db, testUser, "FOOD", 10, testutil.Date(2023, time.May, 1))
		testutil.CreateTestSavings(t, db, testUser, 300, testutil.Date(2024, time.May, 1))

		r := run(t, in, `{"action":"need_data","call":"all_years_data"}`)
		data := dataMap(t, r)
		if data["type"] != "expense" {
			t.Errorf("expected expense by default, got %v", data["type"])
		}
		if years := data["years"].([]yearTotal); len(years) != 1 || years[0].Year != 2023 {
			t.Errorf("unexpected years %+v", years)
		}

		r = run(t, in, `{"action":"need_data","call":"all_years_data","params":{"type":"savings"}}`)
		if years := dataMap(t, r)["years"].([]yearTotal); len(years) != 1 || !years[0].Total.Equal(decimal.NewFromInt(300)) {
			t.Errorf("unexpected savings years %+v", years)
		}

		r = run(t, in, `{"action":"need_data","call":"all_years_data","params":{"type":"crypto"}}`)
		if r.Data != nil || !strings.Contains(r.Reply, "expense, income or savings") {
			t.Errorf("expected clarifying reply, got %#v", r)
		}
	})

	t.Run("invalid_month_asks_again", func(t *testing.T) {
		in, _, _ := setupInterpreter(t)
		r := run(t, in, `{"action":"need_data","call":"expense_monthly","params":{"month":14,"year":2025}}`)
		if r.Data != nil || !strings.Contains(r.Reply, "valid month") {
			t.Errorf("expected clarifying reply, got %#v", r)
		}
	})

	t.Run("database_failure", func(t *testing.T) {
		in, db, _ := setupInterpreter(t)
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()

		r := run(t, in, `{"action":"need_data","call":"expense_monthly"}`)
		if r.Action != KindReply || r.Reply != msgFetchFailed {
			t.Errorf("expected fetch failure reply, got %#v", r)
		}
	})
}
