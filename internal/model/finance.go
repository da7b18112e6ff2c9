// Package model defines the core domain types of the finance tracker.
package model

import (
	"time"
)

// DateLayout is the calendar-date representation used everywhere.
const DateLayout = "2006-01-02"

// FinanceData is the entire persisted state of one installation.
type FinanceData struct {
	Transactions []Transaction `json:"transactions"`
	Categories   []Category    `json:"categories"`
}

// NewFinanceData returns the state of a fresh installation.
func NewFinanceData() FinanceData {
	return FinanceData{
		Transactions: []Transaction{},
		Categories:   DefaultCategories(),
	}
}

// Clone returns a deep copy so callers can mutate it freely.
func (d FinanceData) Clone() FinanceData {
	out := FinanceData{
		Transactions: make([]Transaction, len(d.Transactions)),
		Categories:   make([]Category, len(d.Categories)),
	}
	copy(out.Transactions, d.Transactions)
	copy(out.Categories, d.Categories)
	return out
}

// HasTransaction reports whether a transaction with id exists.
func (d FinanceData) HasTransaction(id string) bool {
	for _, t := range d.Transactions {
		if t.ID == id {
			return true
		}
	}
	return false
}

// HasCategory reports whether a category with id exists.
func (d FinanceData) HasCategory(id string) bool {
	for _, c := range d.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// ParseDate parses a YYYY-MM-DD string in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders t as YYYY-MM-DD in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthKey returns the YYYY-MM bucket of a date string.
func MonthKey(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}
