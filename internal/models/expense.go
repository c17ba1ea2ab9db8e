package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tax applicability flags as stored in is_tax_app.
const (
	TaxApplicable    = "yes"
	TaxNotApplicable = "no"
)

// Expense is a single spending record. Month and Year mirror PDate.
type Expense struct {
	Base
	UserID      int64               `gorm:"not null;index:idx_expense_user_period" json:"user_id"`
	Category    string              `gorm:"not null" json:"category"`
	Product     string              `json:"product"`
	Cost        decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"cost"`
	PDate       time.Time           `gorm:"column:p_date;type:date;not null" json:"p_date"`
	Description *string             `json:"description,omitempty"`
	IsTaxApp    string              `gorm:"column:is_tax_app;not null;default:no" json:"is_tax_app"`
	Percentage  decimal.NullDecimal `gorm:"type:numeric(5,2)" json:"percentage"`
	TaxAmount   decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"tax_amount"`
	Month       int                 `gorm:"not null;index:idx_expense_user_period" json:"month"`
	Year        int                 `gorm:"not null;index:idx_expense_user_period" json:"year"`
}

// TableName overrides the default pluralised table name.
func (Expense) TableName() string { return "expense" }

// SetDate stores the date and re-derives the period columns from it.
func (e *Expense) SetDate(d time.Time) {
	e.PDate = d
	e.Month, e.Year = Period(d)
}

var hundred = decimal.NewFromInt(100)

// TaxOn returns the tax owed on cost at percentage, rounded to cents.
func TaxOn(cost, percentage decimal.Decimal) decimal.Decimal {
	return cost.Mul(percentage).Div(hundred).Round(2)
}

// ApplyTax settles the tax columns. A true flag or a positive percentage
// makes the expense taxable. When derive is set and a percentage is stored,
// TaxAmount is recomputed from Cost.
func (e *Expense) ApplyTax(applicable, derive bool) {
	e.IsTaxApp = TaxNotApplicable
	if applicable || (e.Percentage.Valid && e.Percentage.Decimal.IsPositive()) {
		e.IsTaxApp = TaxApplicable
	}
	if derive && e.Percentage.Valid {
		e.TaxAmount = decimal.NewNullDecimal(TaxOn(e.Cost, e.Percentage.Decimal))
	}
}

// Taxable reports whether is_tax_app holds the applicable flag.
func (e *Expense) Taxable() bool {
	return strings.EqualFold(strings.TrimSpace(e.IsTaxApp), TaxApplicable)
}
