package testutil

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/hamyon/internal/model"
)

// ScenarioCategories is the single food category used by the worked examples.
func ScenarioCategories() []model.Category {
	return []model.Category{
		{ID: "exp-1", Name: "Ovqat", Icon: "🍕", Type: model.TypeExpense},
	}
}

// ScenarioTransactions is one expense and one income whose category (inc-1)
// is not in ScenarioCategories.
func ScenarioTransactions() []model.Transaction {
	return []model.Transaction{
		{ID: "1", Type: model.TypeExpense, CategoryID: "exp-1", Amount: decimal.NewFromInt(50000), Date: "2024-05-01"},
		{ID: "2", Type: model.TypeIncome, CategoryID: "inc-1", Amount: decimal.NewFromInt(2000000), Date: "2024-05-02"},
	}
}

// Tx builds a transaction tersely for table tests.
func Tx(id string, t model.TransactionType, categoryID string, amount int64, date string) model.Transaction {
	return model.Transaction{
		ID:         id,
		Type:       t,
		CategoryID: categoryID,
		Amount:     decimal.NewFromInt(amount),
		Date:       date,
	}
}

// RandomTransactions generates n transactions dated within 2023-2024.
// Roughly one in ten references a category id that does not exist.
func RandomTransactions(f *gofakeit.Faker, n int, cats []model.Category) []model.Transaction {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	out := make([]model.Transaction, 0, n)
	for i := 0; i < n; i++ {
		typ := model.TypeExpense
		if f.Bool() {
			typ = model.TypeIncome
		}

		categoryID := fmt.Sprintf("deleted-%d", i)
		if len(cats) > 0 && f.IntRange(0, 9) > 0 {
			categoryID = cats[f.IntRange(0, len(cats)-1)].ID
		}

		out = append(out, model.Transaction{
			ID:          fmt.Sprintf("rnd-%d", i),
			Type:        typ,
			CategoryID:  categoryID,
			Amount:      decimal.New(int64(f.IntRange(0, 5_000_000)), -2),
			Description: f.Word(),
			Date:        model.FormatDate(f.DateRange(start, end)),
		})
	}
	return out
}

// RandomInputs generates n valid transaction inputs against the default categories.
func RandomInputs(f *gofakeit.Faker, n int) []model.TransactionInput {
	txs := RandomTransactions(f, n, model.DefaultCategories())
	out := make([]model.TransactionInput, len(txs))
	for i, t := range txs {
		out[i] = model.TransactionInput{
			Type:        t.Type,
			CategoryID:  t.CategoryID,
			Amount:      t.Amount,
			Description: t.Description,
			Date:        t.Date,
		}
	}
	return out
}
