package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income is money received from a named source.
type Income struct {
	Base
	UserID int64           `gorm:"not null;index:idx_source_user_period" json:"user_id"`
	Source string          `gorm:"not null" json:"source"`
	Amount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Date   time.Time       `gorm:"type:date;not null" json:"date"`
	Month  int             `gorm:"not null;index:idx_source_user_period" json:"month"`
	Year   int             `gorm:"not null;index:idx_source_user_period" json:"year"`
}

func (Income) TableName() string { return "source" }

// SetDate stores the date and re-derives the period columns from it.
func (i *Income) SetDate(d time.Time) {
	i.Date = d
	i.Month, i.Year = Period(d)
}
