package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Savings is an amount set aside on a given date.
type Savings struct {
	Base
	UserID int64           `gorm:"not null;index:idx_savings_user_period" json:"user_id"`
	Amount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Date   time.Time       `gorm:"type:date;not null" json:"date"`
	Note   *string         `json:"note,omitempty"`
	Month  int             `gorm:"not null;index:idx_savings_user_period" json:"month"`
	Year   int             `gorm:"not null;index:idx_savings_user_period" json:"year"`
}

func (Savings) TableName() string { return "savings" }

// SetDate stores the date and re-derives the period columns from it.
func (s *Savings) SetDate(d time.Time) {
	s.Date = d
	s.Month, s.Year = Period(d)
}
