package models

import "time"

// Base contains the surrogate key shared by every table.
type Base struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`
}

// EntryType names one of the three ledgers an entry can live in.
type EntryType string

const (
	EntryTypeExpense EntryType = "expense"
	EntryTypeIncome  EntryType = "income"
	EntryTypeSavings EntryType = "savings"
)

// Valid reports whether t is a known ledger.
func (t EntryType) Valid() bool {
	switch t {
	case EntryTypeExpense, EntryTypeIncome, EntryTypeSavings:
		return true
	}
	return false
}

// SharedUserID owns the default categories and products every user sees.
const SharedUserID int64 = 0

// Period returns the month and year an entry dated d is filed under.
func Period(d time.Time) (month, year int) {
	return int(d.Month()), d.Year()
}
