package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Shiva143-debug/backend-exp/internal/database"
	"github.com/Shiva143-debug/backend-exp/internal/logger"
	"github.com/Shiva143-debug/backend-exp/internal/models"
)

const (
	msgBadDate   = "I couldn't understand the date. Please use the YYYY-MM-DD format."
	msgBadAmount = "Please provide a valid amount greater than zero, for example 250."
)

func (in *Interpreter) addEntry(ctx context.Context, ac AgentContext, a AddEntryAction) Response {
	switch a.Type {
	case models.EntryTypeIncome:
		return in.addIncome(ctx, ac, a.Entry)
	case models.EntryTypeSavings:
		return in.addSavings(ctx, ac, a.Entry)
	default:
		return in.addExpense(ctx, ac, a.Entry)
	}
}

// resolveDate reads the entry date, defaulting to today.
func resolveDate(e map[string]any, ac AgentContext) (time.Time, bool) {
	s := firstString(e, "date", "p_date")
	if s == "" {
		return ac.Today(), true
	}
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d, true
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, day := d.Date()
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// resolveTax reads the tax fields of a new expense: a true/"yes" flag or a
// positive percentage makes it taxable, and a missing tax amount is derived
// from the percentage.
func resolveTax(e map[string]any, amount decimal.Decimal) models.Expense {
	var applicable bool
	switch f := e["is_tax_app"].(type) {
	case bool:
		applicable = f
	case string:
		applicable = strings.EqualFold(strings.TrimSpace(f), models.TaxApplicable)
	}

	x := models.Expense{Cost: amount}
	if pct, ok := parseDecimal(e["percentage"]); ok && pct.IsPositive() {
		x.Percentage = decimal.NewNullDecimal(pct)
	}
	explicit, ok := parseDecimal(e["tax_amount"])
	ok = ok && !explicit.IsNegative()
	if ok {
		x.TaxAmount = decimal.NewNullDecimal(explicit)
	}
	x.ApplyTax(applicable, !ok)
	return x
}

func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (in *Interpreter) addExpense(ctx context.Context, ac AgentContext, e map[string]any) Response {
	date, ok := resolveDate(e, ac)
	if !ok {
		return reply(msgBadDate)
	}

	rep := in.reports()
	category := firstString(e, "category", "name")
	product := firstString(e, "product", "subcategory")

	if category == "" {
		resolved, resp, done := in.categoryFor(ctx, ac, product)
		if done {
			return resp
		}
		category = resolved
	}

	if product == "" {
		products, err := rep.productsOf(ctx, ac.UserID, category)
		if err != nil {
			logger.Get().Errorw("addEntry subcategory lookup failed", "user_id", ac.UserID, "category", category, "error", err)
			return reply(msgAddFailed)
		}
		switch len(products) {
		case 0:
			product = category
		case 1:
			product = products[0]
		default:
			text := fmt.Sprintf("I found multiple subcategories under %s: %s. Which one should I use? Reply with the subcategory name, for example \"use %s\".",
				category, strings.Join(products, ", "), products[0])
			return replyWithData(text, map[string]any{"category": category, "options": products})
		}
	}

	amount, ok := ParseAmount(e["amount"])
	if !ok {
		return reply(msgBadAmount)
	}

	tax := resolveTax(e, amount)
	description := optionalText(firstString(e, "note", "description"))
	month, year := models.Period(date)

	var id int64
	err := in.gw.Select(ctx, &id,
		`INSERT INTO expense (user_id, category, product, cost, p_date, description, is_tax_app, percentage, tax_amount, month, year)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		ac.UserID, category, product, amount, date, description, tax.IsTaxApp, tax.Percentage, tax.TaxAmount, month, year)
	if err != nil {
		logger.Get().Errorw("addEntry insert failed", "type", models.EntryTypeExpense, "user_id", ac.UserID, "error", err)
		return reply(msgAddFailed)
	}

	in.record(ac, "CREATE", "expense", id, map[string]any{"category": category, "product": product, "cost": amount.String()})

	var b strings.Builder
	fmt.Fprintf(&b, "Added expense of %s to %s", rep.money(amount), category)
	if !strings.EqualFold(product, category) {
		fmt.Fprintf(&b, " > %s", product)
	}
	fmt.Fprintf(&b, " on %s.", date.Format(time.DateOnly))
	if tax.Taxable() {
		switch {
		case tax.Percentage.Valid && tax.TaxAmount.Valid:
			fmt.Fprintf(&b, " Tax: %s%% (%s).", tax.Percentage.Decimal.String(), rep.money(tax.TaxAmount.Decimal))
		case tax.TaxAmount.Valid:
			fmt.Fprintf(&b, " Tax: %s.", rep.money(tax.TaxAmount.Decimal))
		default:
			b.WriteString(" Tax applicable.")
		}
	}
	if description != nil {
		fmt.Fprintf(&b, " Note: %s.", *description)
	}

	data := map[string]any{
		"id":         id,
		"type":       models.EntryTypeExpense,
		"category":   category,
		"product":    product,
		"amount":     amount,
		"date":       date.Format(time.DateOnly),
		"month":      month,
		"year":       year,
		"is_tax_app": tax.IsTaxApp,
	}
	if tax.TaxAmount.Valid {
		data["tax_amount"] = tax.TaxAmount.Decimal
	}
	return replyWithData(b.String(), data)
}

// categoryFor finds the category of an expense that named none. A product
// owned by exactly one category settles it; otherwise the user is asked.
func (in *Interpreter) categoryFor(ctx context.Context, ac AgentContext, product string) (string, Response, bool) {
	rep := in.reports()

	if product != "" {
		var owners []string
		err := in.gw.Select(ctx, &owners,
			`SELECT DISTINCT category FROM product
			 WHERE LOWER(product) = LOWER(?) AND (user_id = ? OR user_id = ?)
			 ORDER BY category`,
			product, ac.UserID, models.SharedUserID)
		if err != nil {
			logger.Get().Errorw("addEntry category lookup failed", "user_id", ac.UserID, "product", product, "error", err)
			return "", reply(msgAddFailed), true
		}
		switch len(owners) {
		case 1:
			return owners[0], Response{}, false
		case 0:
		default:
			text := fmt.Sprintf("%s exists under several categories: %s. Which one did you mean?", product, strings.Join(owners, ", "))
			return "", replyWithData(text, map[string]any{"product": product, "options": owners}), true
		}
	}

	categories, err := rep.categories(ctx, ac.UserID)
	if err != nil {
		logger.Get().Errorw("addEntry category listing failed", "user_id", ac.UserID, "error", err)
		return "", reply(msgAddFailed), true
	}
	text := "Which category does this expense belong to?"
	if len(categories) > 0 {
		text += " Your categories: " + strings.Join(categories, ", ")
	}
	return "", replyWithData(text, map[string]any{"options": categories}), true
}

func (in *Interpreter) addIncome(ctx context.Context, ac AgentContext, e map[string]any) Response {
	date, ok := resolveDate(e, ac)
	if !ok {
		return reply(msgBadDate)
	}
	source := firstString(e, "source", "category", "name")
	if source == "" {
		return reply("Where did this income come from? For example: salary or freelance.")
	}
	amount, ok := ParseAmount(e["amount"])
	if !ok {
		return reply(msgBadAmount)
	}
	month, year := models.Period(date)

	var id int64
	err := in.gw.Select(ctx, &id,
		"INSERT INTO source (user_id, source, amount, date, month, year) VALUES (?, ?, ?, ?, ?, ?) RETURNING id",
		ac.UserID, source, amount, date, month, year)
	if err != nil {
		logger.Get().Errorw("addEntry insert failed", "type", models.EntryTypeIncome, "user_id", ac.UserID, "error", err)
		return reply(msgAddFailed)
	}

	in.record(ac, "CREATE", "income", id, map[string]any{"source": source, "amount": amount.String()})

	text := fmt.Sprintf("Added income of %s from %s on %s.", in.reports().money(amount), source, date.Format(time.DateOnly))
	return replyWithData(text, map[string]any{
		"id": id, "type": models.EntryTypeIncome, "source": source, "amount": amount,
		"date": date.Format(time.DateOnly), "month": month, "year": year,
	})
}

func (in *Interpreter) addSavings(ctx context.Context, ac AgentContext, e map[string]any) Response {
	date, ok := resolveDate(e, ac)
	if !ok {
		return reply(msgBadDate)
	}
	amount, ok := ParseAmount(e["amount"])
	if !ok {
		return reply(msgBadAmount)
	}
	note := optionalText(firstString(e, "note", "description"))
	month, year := models.Period(date)

	var id int64
	err := in.gw.Select(ctx, &id,
		"INSERT INTO savings (user_id, amount, date, note, month, year) VALUES (?, ?, ?, ?, ?, ?) RETURNING id",
		ac.UserID, amount, date, note, month, year)
	if err != nil {
		logger.Get().Errorw("addEntry insert failed", "type", models.EntryTypeSavings, "user_id", ac.UserID, "error", err)
		return reply(msgAddFailed)
	}

	in.record(ac, "CREATE", "savings", id, map[string]any{"amount": amount.String()})

	text := fmt.Sprintf("Added savings of %s on %s.", in.reports().money(amount), date.Format(time.DateOnly))
	if note != nil {
		text += fmt.Sprintf(" Note: %s.", *note)
	}
	return replyWithData(text, map[string]any{
		"id": id, "type": models.EntryTypeSavings, "amount": amount,
		"date": date.Format(time.DateOnly), "month": month, "year": year,
	})
}

// updateStatements keeps every column COALESCE'd so omitted fields keep
// their stored value.
var updateStatements = map[models.EntryType]string{
	models.EntryTypeExpense: `UPDATE expense SET
		category = COALESCE(?, category),
		product = COALESCE(?, product),
		cost = COALESCE(?, cost),
		p_date = COALESCE(?, p_date),
		month = COALESCE(?, month),
		year = COALESCE(?, year),
		description = COALESCE(?, description),
		is_tax_app = COALESCE(?, is_tax_app),
		percentage = COALESCE(?, percentage),
		tax_amount = COALESCE(?, tax_amount)
		WHERE id = ? AND user_id = ?`,
	models.EntryTypeIncome: `UPDATE source SET
		source = COALESCE(?, source),
		amount = COALESCE(?, amount),
		date = COALESCE(?, date),
		month = COALESCE(?, month),
		year = COALESCE(?, year)
		WHERE id = ? AND user_id = ?`,
	models.EntryTypeSavings: `UPDATE savings SET
		amount = COALESCE(?, amount),
		date = COALESCE(?, date),
		month = COALESCE(?, month),
		year = COALESCE(?, year),
		note = COALESCE(?, note)
		WHERE id = ? AND user_id = ?`,
}

// entryUpdate holds the validated subset of an updates object. Nil means
// leave the column alone.
type entryUpdate struct {
	label       any
	product     any
	amount      any
	date        any
	month       any
	year        any
	description any
	taxFlag     any
	percentage  any
	taxAmount   any
	changed     []string
}

func (u *entryUpdate) set(field string, dst *any, v any) {
	*dst = v
	u.changed = append(u.changed, field)
}

// parseUpdates validates the fields the model asked to change. The returned
// string is a clarifying reply when something is unusable.
func parseUpdates(t models.EntryType, raw map[string]any) (*entryUpdate, string) {
	u := &entryUpdate{}

	if present(raw, "amount") || present(raw, "cost") {
		v := raw["amount"]
		if v == nil {
			v = raw["cost"]
		}
		d, ok := ParseAmount(v)
		if !ok {
			return nil, msgBadAmount
		}
		u.set("amount", &u.amount, d)
	}

	if s := firstString(raw, "date", "p_date"); s != "" {
		d, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return nil, msgBadDate
		}
		m, y := models.Period(d)
		u.set("date", &u.date, d)
		u.month, u.year = m, y
	}

	switch t {
	case models.EntryTypeIncome:
		if s := firstString(raw, "source", "category", "name"); s != "" {
			u.set("source", &u.label, s)
		}
	case models.EntryTypeSavings:
		if s := firstString(raw, "note", "description"); s != "" {
			u.set("note", &u.description, s)
		}
	default:
		if s := firstString(raw, "category", "name"); s != "" {
			u.set("category", &u.label, s)
		}
		if s := firstString(raw, "product", "subcategory"); s != "" {
			u.set("product", &u.product, s)
		}
		if s := firstString(raw, "note", "description"); s != "" {
			u.set("description", &u.description, s)
		}
		switch f := raw["is_tax_app"].(type) {
		case bool:
			flag := models.TaxNotApplicable
			if f {
				flag = models.TaxApplicable
			}
			u.set("is_tax_app", &u.taxFlag, flag)
		case string:
			if f = strings.ToLower(strings.TrimSpace(f)); f == models.TaxApplicable || f == models.TaxNotApplicable {
				u.set("is_tax_app", &u.taxFlag, f)
			}
		}
		if pct, ok := parseDecimal(raw["percentage"]); ok && pct.IsPositive() {
			u.set("percentage", &u.percentage, pct)
			if u.taxFlag == nil {
				u.taxFlag = models.TaxApplicable
			}
		}
		if tax, ok := parseDecimal(raw["tax_amount"]); ok && !tax.IsNegative() {
			u.set("tax_amount", &u.taxAmount, tax)
		}
	}

	if len(u.changed) == 0 {
		return nil, "I didn't find anything to change. Tell me the new amount, date, category or note."
	}
	return u, ""
}

func (u *entryUpdate) args(t models.EntryType, id, userID int64) []any {
	switch t {
	case models.EntryTypeIncome:
		return []any{u.label, u.amount, u.date, u.month, u.year, id, userID}
	case models.EntryTypeSavings:
		return []any{u.amount, u.date, u.month, u.year, u.description, id, userID}
	default:
		return []any{u.label, u.product, u.amount, u.date, u.month, u.year, u.description, u.taxFlag, u.percentage, u.taxAmount, id, userID}
	}
}

// taxBasis is the stored cost and rate a tax amount is computed from.
type taxBasis struct {
	Cost       decimal.Decimal
	Percentage decimal.NullDecimal
}

// deriveTax recomputes the tax amount of an expense whose cost or rate is
// changing, reading whatever the update leaves untouched from the stored row.
func (u *entryUpdate) deriveTax(ctx context.Context, q database.Querier, id, userID int64) error {
	var rows []taxBasis
	if err := q.Select(ctx, &rows, "SELECT cost, percentage FROM expense WHERE id = ? AND user_id = ?", id, userID); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	x := models.Expense{Cost: rows[0].Cost, Percentage: rows[0].Percentage}
	if d, ok := u.amount.(decimal.Decimal); ok {
		x.Cost = d
	}
	if d, ok := u.percentage.(decimal.Decimal); ok {
		x.Percentage = decimal.NewNullDecimal(d)
	}
	if !x.Percentage.Valid {
		return nil
	}
	u.set("tax_amount", &u.taxAmount, models.TaxOn(x.Cost, x.Percentage.Decimal))
	return nil
}

func (in *Interpreter) updateEntry(ctx context.Context, ac AgentContext, a UpdateEntryAction) Response {
	u, clarify := parseUpdates(a.Type, a.Updates)
	if clarify != "" {
		return reply(clarify)
	}

	var n int64
	err := in.gw.InTx(ctx, func(q database.Querier) error {
		if a.Type == models.EntryTypeExpense && u.taxAmount == nil && (u.amount != nil || u.percentage != nil) {
			if err := u.deriveTax(ctx, q, a.ID, ac.UserID); err != nil {
				return err
			}
		}
		var err error
		n, err = q.Exec(ctx, updateStatements[a.Type], u.args(a.Type, a.ID, ac.UserID)...)
		return err
	})
	if err != nil {
		logger.Get().Errorw("updateEntry failed", "type", a.Type, "id", a.ID, "user_id", ac.UserID, "error", err)
		return reply(msgUpdateFailed)
	}
	if n == 0 {
		return reply(msgEntryNotFound)
	}

	in.record(ac, "UPDATE", string(a.Type), a.ID, map[string]any{"fields": u.changed})

	return replyWithData(
		fmt.Sprintf("Updated %s entry #%d (%s).", a.Type, a.ID, strings.Join(u.changed, ", ")),
		map[string]any{"id": a.ID, "type": a.Type, "updated": u.changed},
	)
}

func (in *Interpreter) deleteEntry(ctx context.Context, ac AgentContext, a DeleteEntryAction) Response {
	l := ledgers[a.Type]
	n, err := in.gw.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ? AND user_id = ?", l.table), a.ID, ac.UserID)
	if err != nil {
		logger.Get().Errorw("deleteEntry failed", "type", a.Type, "id", a.ID, "user_id", ac.UserID, "error", err)
		return reply(msgDeleteFailed)
	}
	if n == 0 {
		return reply(msgEntryNotFound)
	}

	in.record(ac, "DELETE", string(a.Type), a.ID, nil)

	return replyWithData(fmt.Sprintf("Deleted %s entry #%d.", a.Type, a.ID), map[string]any{"id": a.ID, "type": a.Type})
}
