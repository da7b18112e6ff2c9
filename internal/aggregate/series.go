package aggregate

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/hamyon/internal/model"
)

// DefaultMonthsBack is how many months the analytics chart shows.
const DefaultMonthsBack = 6

// MonthSummary is the income and expense of one calendar month.
type MonthSummary struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Balance is income minus expense for the month.
func (m MonthSummary) Balance() decimal.Decimal {
	return m.Income.Sub(m.Expense)
}

// MonthlySeries buckets transactions by YYYY-MM and returns the most recent
// monthsBack buckets in ascending order. Months without transactions are absent.
func MonthlySeries(txs []model.Transaction, monthsBack int) []MonthSummary {
	if monthsBack <= 0 {
		return []MonthSummary{}
	}

	buckets := make(map[string]*MonthSummary)
	for _, t := range txs {
		key := model.MonthKey(t.Date)
		b, ok := buckets[key]
		if !ok {
			b = &MonthSummary{Month: key, Income: decimal.Zero, Expense: decimal.Zero}
			buckets[key] = b
		}
		switch t.Type {
		case model.TypeIncome:
			b.Income = b.Income.Add(t.Amount)
		case model.TypeExpense:
			b.Expense = b.Expense.Add(t.Amount)
		}
	}

	series := make([]MonthSummary, 0, len(buckets))
	for _, b := range buckets {
		series = append(series, *b)
	}
	slices.SortFunc(series, func(a, b MonthSummary) int {
		return strings.Compare(a.Month, b.Month)
	})

	if len(series) > monthsBack {
		series = series[len(series)-monthsBack:]
	}
	return series
}
