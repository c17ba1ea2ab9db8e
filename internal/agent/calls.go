package agent

import (
	"context"

	"github.com/Shiva143-debug/backend-exp/internal/models"
)

// reportQuery is a need_data request after period resolution.
type reportQuery struct {
	UserID   int64
	Month    int
	Year     int
	Category string
	Type     string
	Limit    int
}

// dataCall is one entry of the need_data vocabulary. The prompt renders
// Name, Params and Description from this table and the interpreter
// dispatches on it, so the two cannot drift apart.
type dataCall struct {
	Name        string
	Params      string
	Description string
	run         func(ctx context.Context, r *reports, q reportQuery) (Response, error)
}

const (
	periodParams   = `{"month": 1-12, "year": YYYY} or {"period": "YYYY-MM"}`
	yearParams     = `{"year": YYYY}`
	categoryParams = `{"category": string, "month": 1-12, "year": YYYY}`
)

var dataCalls = []dataCall{
	{
		Name: "expense_monthly", Params: `{"month": 1-12, "year": YYYY, "limit"?: number}`,
		Description: "total spent in a month and the most recent expense items",
		run: func(ctx context.Context, r *reports, q reportQuery) (Response, error) {
			return r.monthlyTotal(ctx, models.EntryTypeExpense, q)
		},
	},
	{
		Name: "expense_yearly", Params: yearParams,
		Description: "total spent in a year with a year-by-year breakdown",
		run: func(ctx context.Context, r *reports, q reportQuery) (Response, error) {
			return r.yearlyTotal(ctx, models.EntryTypeExpense, q)
		},
	},
	{
		Name: "expense_all_months", Params: yearParams,
		Description: "spending per month of a year",
		run: func(ctx context.Context, r *reports, q reportQuery) (Response, error) {
			return r.allMonths(ctx, models.EntryTypeExpense, q)
		},
	},
	{
		Name: "income_monthly", Params: periodParams,
		Description: "total income received in a month",
		run: func(ctx context.Context, r *reports, q reportQuery) (Response, error) {
			return r.monthlyTotal(ctx, models.EntryTypeIncome, q)
		},
	},
	{
		Name: "income_yearly", Params: yearParams,
		Description: "total income in a year with a year-by-year breakdown",
		run: func(ctx context.Context, r *reports, q reportQuery) (Response, error) {
			return r.yearlyTotal(ctx, models.EntryTypeIncome, q)
		},
	},
	{
		Name: "income_all_months", Params: yearParams,
		Description: "income per month of a year",
		run: func(ctx context.Context, r *reports, q reportQuery) (Response, error) {
			return r.allMonths(ctx, models.EntryTypeIncome, q)
		},
	},
	{
		Name: "savings_monthly", Params: periodParams,
		Description: "total saved in a month",
		run: func(ctx context.Context, r *reports, q reportQuery) (Response, error) {
			return r.monthlyTotal(ctx, models.EntryTypeSavings, q)
		},
	},
	{
		Name: "savings_yearly", Params: yearParams,
		Description: "total saved in a year with a year-by-year breakdown",
		run: func(ctx context.Context, r *reports, q reportQuery) (Response, error) {
			return r.yearlyTotal(ctx, models.EntryTypeSavings, q)
		},
	},
	{
		Name: "savings_all_months", Params: yearParams,
		Description: "savings per month of a year",
		run: func(ctx context.Context, r *reports, q reportQuery) (Response, error) {
			return r.allMonths(ctx, models.EntryTypeSavings, q)
		},
	},
	{
		Name: "category_breakdown", Params: periodParams,
		Description: "spending per category in a month, largest first",
		run: func(ctx context.Context, r *reports, q reportQuery) (Response, error) {
			return r.categoryBreakdown(ctx, q)
		},
	},
	{
		Name: "category_month_total", Params: categoryParams,
		Description: "spending in one category for a month",
		run: func(ctx context.Context, r *reports, q reportQuery) (Response, error) {
			return r.categoryTotal(ctx, q, true)
		},
	},
	{
		Name: "category_year_total", Params: `{"category": string, "year": YYYY}`,
		Description: "spending in one category for a year",
		run: func(ctx context.Context, r *reports, q reportQuery) (Response, error) {
			return r.categoryTotal(ctx, q, false)
		},
	},
	{
		Name: "list_categories", Params: `{}`,
		Description: "the user's categories including shared defaults",
		run: func(ctx context.Context, r *reports, q reportQuery) (Response, error) {
			return r.listCategories(ctx, q)
		},
	},
	{
		Name: "list_subcategories", Params: `{"category"?: string}`,
		Description: "subcategories of a category, or subcategory counts per category",
		run: func(ctx context.Context, r *reports, q reportQuery) (Response, error) {
			return r.listProducts(ctx, q)
		},
	},
	{
		Name: "list_products", Params: `{"category"?: string}`,
		Description: "same as list_subcategories",
		run: func(ctx context.Context, r *reports, q reportQuery) (Response, error) {
			return r.listProducts(ctx, q)
		},
	},
	{
		Name: "all_years_data", Params: `{"type": "expense" | "income" | "savings"}`,
		Description: "totals per year for one ledger, newest first",
		run: func(ctx context.Context, r *reports, q reportQuery) (Response, error) {
			return r.allYears(ctx, q)
		},
	},
}

var callIndex = func() map[string]int {
	idx := make(map[string]int, len(dataCalls))
	for i, c := range dataCalls {
		idx[c.Name] = i
	}
	return idx
}()

func lookupCall(name string) (dataCall, bool) {
	i, ok := callIndex[name]
	if !ok {
		return dataCall{}, false
	}
	return dataCalls[i], true
}

// CallNames lists the need_data vocabulary in prompt order.
func CallNames() []string {
	names := make([]string, len(dataCalls))
	for i, c := range dataCalls {
		names[i] = c.Name
	}
	return names
}
