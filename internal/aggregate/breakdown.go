package aggregate

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/hamyon/internal/model"
)

// CategoryAmount is one row of a category breakdown.
type CategoryAmount struct {
	Category string          `json:"category"`
	Icon     string          `json:"icon"`
	Amount   decimal.Decimal `json:"amount"`
}

// CategoryBreakdown groups transactions of type t by category name.
//
// Transactions whose category no longer exists are left out, as are
// groups without any transactions. Rows are ordered by amount, largest
// first, then by name.
func CategoryBreakdown(txs []model.Transaction, cats []model.Category, t model.TransactionType) []CategoryAmount {
	byID := make(map[string]model.Category, len(cats))
	for _, c := range cats {
		if _, dup := byID[c.ID]; !dup {
			byID[c.ID] = c
		}
	}

	index := make(map[string]int)
	var rows []CategoryAmount
	for _, tx := range txs {
		if tx.Type != t {
			continue
		}
		cat, ok := byID[tx.CategoryID]
		if !ok {
			continue
		}

		i, seen := index[cat.Name]
		if !seen {
			i = len(rows)
			index[cat.Name] = i
			rows = append(rows, CategoryAmount{Category: cat.Name, Icon: cat.Icon, Amount: decimal.Zero})
		}
		rows[i].Amount = rows[i].Amount.Add(tx.Amount)
	}

	slices.SortStableFunc(rows, func(a, b CategoryAmount) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})
	return rows
}

// Percentages returns each row's share of the breakdown total, in row order.
// It returns nil when there is nothing to divide by.
func Percentages(rows []CategoryAmount) []decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Amount)
	}
	if len(rows) == 0 || total.IsZero() {
		return nil
	}

	hundred := decimal.NewFromInt(100)
	out := make([]decimal.Decimal, len(rows))
	for i, r := range rows {
		out[i] = r.Amount.Div(total).Mul(hundred)
	}
	return out
}
