package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Shiva143-debug/backend-exp/internal/database"
	"github.com/Shiva143-debug/backend-exp/internal/models"
)

const (
	defaultItemLimit = 50
	maxItemLimit     = 200
)

// ledger maps an entry type to its table. Table and column names in report
// SQL only ever come from here.
type ledger struct {
	table  string
	amount string
	date   string
	noun   string
}

var ledgers = map[models.EntryType]ledger{
	models.EntryTypeExpense: {table: "expense", amount: "cost", date: "p_date", noun: "expenses"},
	models.EntryTypeIncome:  {table: "source", amount: "amount", date: "date", noun: "income"},
	models.EntryTypeSavings: {table: "savings", amount: "amount", date: "date", noun: "savings"},
}

type totalRow struct {
	Total decimal.Decimal
}

type yearTotal struct {
	Year  int             `json:"year"`
	Total decimal.Decimal `json:"total"`
}

type monthTotal struct {
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
}

type categoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

type productCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type expenseItem struct {
	ID          int64           `json:"id"`
	Category    string          `json:"category"`
	Product     string          `json:"product"`
	Cost        decimal.Decimal `json:"cost"`
	PDate       time.Time       `gorm:"column:p_date" json:"p_date"`
	Description *string         `json:"description,omitempty"`
}

// reports runs the read-only need_data aggregations.
type reports struct {
	q        database.Querier
	currency string
}

func (r *reports) money(d decimal.Decimal) string {
	return r.currency + d.StringFixed(2)
}

func (r *reports) sum(ctx context.Context, query string, args ...any) (decimal.Decimal, error) {
	var row totalRow
	if err := r.q.Select(ctx, &row, query, args...); err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

func (r *reports) monthlyTotal(ctx context.Context, t models.EntryType, q reportQuery) (Response, error) {
	l := ledgers[t]
	total, err := r.sum(ctx,
		fmt.Sprintf("SELECT COALESCE(SUM(%s), 0) AS total FROM %s WHERE user_id = ? AND month = ? AND year = ?", l.amount, l.table),
		q.UserID, q.Month, q.Year)
	if err != nil {
		return Response{}, err
	}

	data := map[string]any{"month": q.Month, "year": q.Year, "total": total}
	text := fmt.Sprintf("Your total %s for %s %d: %s", l.noun, monthName(q.Month), q.Year, r.money(total))

	if t == models.EntryTypeExpense {
		limit := q.Limit
		if limit <= 0 {
			limit = defaultItemLimit
		}
		if limit > maxItemLimit {
			limit = maxItemLimit
		}
		var items []expenseItem
		if err := r.q.Select(ctx, &items,
			`SELECT id, category, COALESCE(product, '') AS product, cost, p_date, description
			 FROM expense WHERE user_id = ? AND month = ? AND year = ?
			 ORDER BY p_date DESC, id DESC LIMIT ?`,
			q.UserID, q.Month, q.Year, limit); err != nil {
			return Response{}, err
		}
		if items == nil {
			items = []expenseItem{}
		}
		data["items"] = items
	}

	return replyWithData(text, data), nil
}

func (r *reports) yearBreakdown(ctx context.Context, l ledger, userID int64) ([]yearTotal, error) {
	var years []yearTotal
	err := r.q.Select(ctx, &years,
		fmt.Sprintf("SELECT year, COALESCE(SUM(%s), 0) AS total FROM %s WHERE user_id = ? GROUP BY year ORDER BY year DESC", l.amount, l.table),
		userID)
	if years == nil {
		years = []yearTotal{}
	}
	return years, err
}

func (r *reports) yearlyTotal(ctx context.Context, t models.EntryType, q reportQuery) (Response, error) {
	l := ledgers[t]
	total, err := r.sum(ctx,
		fmt.Sprintf("SELECT COALESCE(SUM(%s), 0) AS total FROM %s WHERE user_id = ? AND year = ?", l.amount, l.table),
		q.UserID, q.Year)
	if err != nil {
		return Response{}, err
	}
	years, err := r.yearBreakdown(ctx, l, q.UserID)
	if err != nil {
		return Response{}, err
	}

	text := fmt.Sprintf("Your total %s for %d: %s", l.noun, q.Year, r.money(total))
	return replyWithData(text, map[string]any{"year": q.Year, "total": total, "years": years}), nil
}

func (r *reports) allMonths(ctx context.Context, t models.EntryType, q reportQuery) (Response, error) {
	l := ledgers[t]
	var months []monthTotal
	if err := r.q.Select(ctx, &months,
		fmt.Sprintf("SELECT month, COALESCE(SUM(%s), 0) AS total FROM %s WHERE user_id = ? AND year = ? GROUP BY month ORDER BY month DESC", l.amount, l.table),
		q.UserID, q.Year); err != nil {
		return Response{}, err
	}
	if months == nil {
		months = []monthTotal{}
	}

	data := map[string]any{"year": q.Year, "months": months}
	if len(months) == 0 {
		return replyWithData(fmt.Sprintf("No %s recorded in %d.", l.noun, q.Year), data), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your %s by month for %d:", l.noun, q.Year)
	for _, m := range months {
		fmt.Fprintf(&b, "\n- %s: %s", monthName(m.Month), r.money(m.Total))
	}
	return replyWithData(b.String(), data), nil
}

func (r *reports) categoryBreakdown(ctx context.Context, q reportQuery) (Response, error) {
	var rows []categoryTotal
	if err := r.q.Select(ctx, &rows,
		`SELECT category, COALESCE(SUM(cost), 0) AS total FROM expense
		 WHERE user_id = ? AND month = ? AND year = ?
		 GROUP BY category ORDER BY total DESC, category`,
		q.UserID, q.Month, q.Year); err != nil {
		return Response{}, err
	}
	if rows == nil {
		rows = []categoryTotal{}
	}

	data := map[string]any{"month": q.Month, "year": q.Year, "categories": rows}
	if len(rows) == 0 {
		return replyWithData(fmt.Sprintf("No expenses recorded for %s %d.", monthName(q.Month), q.Year), data), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Expense breakdown for %s %d:", monthName(q.Month), q.Year)
	for _, row := range rows {
		fmt.Fprintf(&b, "\n- %s: %s", row.Category, r.money(row.Total))
	}
	return replyWithData(b.String(), data), nil
}

func (r *reports) categoryTotal(ctx context.Context, q reportQuery, monthly bool) (Response, error) {
	if q.Category == "" {
		return reply("Which category would you like the total for?"), nil
	}

	var (
		total  decimal.Decimal
		err    error
		period string
		data   = map[string]any{"category": q.Category, "year": q.Year}
	)
	if monthly {
		total, err = r.sum(ctx,
			`SELECT COALESCE(SUM(cost), 0) AS total FROM expense
			 WHERE user_id = ? AND LOWER(category) = LOWER(?) AND month = ? AND year = ?`,
			q.UserID, q.Category, q.Month, q.Year)
		period = fmt.Sprintf("%s %d", monthName(q.Month), q.Year)
		data["month"] = q.Month
	} else {
		total, err = r.sum(ctx,
			`SELECT COALESCE(SUM(cost), 0) AS total FROM expense
			 WHERE user_id = ? AND LOWER(category) = LOWER(?) AND year = ?`,
			q.UserID, q.Category, q.Year)
		period = fmt.Sprintf("%d", q.Year)
	}
	if err != nil {
		return Response{}, err
	}
	data["total"] = total

	text := fmt.Sprintf("You spent %s on %s in %s.", r.money(total), q.Category, period)
	return replyWithData(text, data), nil
}

func (r *reports) listCategories(ctx context.Context, q reportQuery) (Response, error) {
	categories, err := r.categories(ctx, q.UserID)
	if err != nil {
		return Response{}, err
	}
	data := map[string]any{"categories": categories}
	if len(categories) == 0 {
		return replyWithData("You don't have any categories yet.", data), nil
	}
	return replyWithData("Your categories: "+strings.Join(categories, ", "), data), nil
}

func (r *reports) categories(ctx context.Context, userID int64) ([]string, error) {
	var categories []string
	err := r.q.Select(ctx, &categories,
		"SELECT DISTINCT category FROM category WHERE user_id = ? OR user_id = ? ORDER BY category",
		userID, models.SharedUserID)
	if categories == nil {
		categories = []string{}
	}
	return categories, err
}

func (r *reports) productsOf(ctx context.Context, userID int64, category string) ([]string, error) {
	var products []string
	err := r.q.Select(ctx, &products,
		`SELECT DISTINCT product FROM product
		 WHERE LOWER(category) = LOWER(?) AND (user_id = ? OR user_id = ?)
		 ORDER BY product`,
		category, userID, models.SharedUserID)
	if products == nil {
		products = []string{}
	}
	return products, err
}

func (r *reports) listProducts(ctx context.Context, q reportQuery) (Response, error) {
	if q.Category != "" {
		products, err := r.productsOf(ctx, q.UserID, q.Category)
		if err != nil {
			return Response{}, err
		}
		data := map[string]any{"category": q.Category, "subcategories": products}
		if len(products) == 0 {
			return replyWithData(fmt.Sprintf("No subcategories found under %s.", q.Category), data), nil
		}
		return replyWithData(fmt.Sprintf("Subcategories under %s: %s", q.Category, strings.Join(products, ", ")), data), nil
	}

	var counts []productCount
	if err := r.q.Select(ctx, &counts,
		`SELECT category, COUNT(DISTINCT product) AS count FROM product
		 WHERE user_id = ? OR user_id = ?
		 GROUP BY category ORDER BY category`,
		q.UserID, models.SharedUserID); err != nil {
		return Response{}, err
	}
	if counts == nil {
		counts = []productCount{}
	}

	data := map[string]any{"categories": counts}
	if len(counts) == 0 {
		return replyWithData("You don't have any subcategories yet.", data), nil
	}
	var b strings.Builder
	b.WriteString("Subcategories per category:")
	for _, c := range counts {
		fmt.Fprintf(&b, "\n- %s: %d", c.Category, c.Count)
	}
	return replyWithData(b.String(), data), nil
}

func (r *reports) allYears(ctx context.Context, q reportQuery) (Response, error) {
	t := models.EntryType(q.Type)
	if q.Type == "" {
		t = models.EntryTypeExpense
	}
	l, ok := ledgers[t]
	if !ok {
		return reply("Which data would you like by year: expense, income or savings?"), nil
	}

	years, err := r.yearBreakdown(ctx, l, q.UserID)
	if err != nil {
		return Response{}, err
	}

	data := map[string]any{"type": string(t), "years": years}
	if len(years) == 0 {
		return replyWithData(fmt.Sprintf("No %s recorded yet.", l.noun), data), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Your %s by year:", l.noun)
	for _, y := range years {
		fmt.Fprintf(&b, "\n- %d: %s", y.Year, r.money(y.Total))
	}
	return replyWithData(b.String(), data), nil
}
