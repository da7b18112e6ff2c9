// Package aggregate computes the derived views of a finance snapshot.
//
// Every function here is pure: it reads only its arguments and never
// touches storage. Empty input produces zero values, never an error.
package aggregate

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/hamyon/internal/model"
)

// Summary holds income and expense sums and their difference.
type Summary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// Totals sums income and expense over txs.
func Totals(txs []model.Transaction) Summary {
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range txs {
		switch t.Type {
		case model.TypeIncome:
			income = income.Add(t.Amount)
		case model.TypeExpense:
			expense = expense.Add(t.Amount)
		}
	}
	return Summary{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}

// ExpenseForDate sums expenses dated exactly date (YYYY-MM-DD).
func ExpenseForDate(txs []model.Transaction, date string) decimal.Decimal {
	return sumExpenses(txs, func(t model.Transaction) bool {
		return t.Date == date
	})
}

// ExpenseForMonth sums expenses whose date falls in yearMonth (YYYY-MM).
func ExpenseForMonth(txs []model.Transaction, yearMonth string) decimal.Decimal {
	if yearMonth == "" {
		return decimal.Zero
	}
	return sumExpenses(txs, func(t model.Transaction) bool {
		return strings.HasPrefix(t.Date, yearMonth)
	})
}

func sumExpenses(txs []model.Transaction, match func(model.Transaction) bool) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txs {
		if t.Type == model.TypeExpense && match(t) {
			sum = sum.Add(t.Amount)
		}
	}
	return sum
}
