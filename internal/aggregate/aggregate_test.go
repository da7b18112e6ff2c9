package aggregate

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/hamyon/internal/common"
	"github.com/Veraticus/hamyon/internal/model"
	"github.com/Veraticus/hamyon/internal/testutil"
)

func assertAmount(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.NewFromInt(want).Equal(got), "want %d, got %s", want, got)
}

func ids(txs []model.Transaction) []string {
	out := make([]string, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}
	return out
}

func TestTotals(t *testing.T) {
	t.Run("scenario", func(t *testing.T) {
		got := Totals(testutil.ScenarioTransactions())
		assertAmount(t, 2000000, got.Income)
		assertAmount(t, 50000, got.Expense)
		assertAmount(t, 1950000, got.Balance)
	})

	t.Run("empty input is zero", func(t *testing.T) {
		got := Totals(nil)
		assert.True(t, got.Income.IsZero())
		assert.True(t, got.Expense.IsZero())
		assert.True(t, got.Balance.IsZero())
	})

	t.Run("balance is income minus expense", func(t *testing.T) {
		f := gofakeit.New(7)
		for i := 0; i < 20; i++ {
			txs := testutil.RandomTransactions(f, f.IntRange(0, 200), model.DefaultCategories())
			got := Totals(txs)
			assert.True(t, got.Balance.Equal(got.Income.Sub(got.Expense)))
		}
	})

	t.Run("negative balance", func(t *testing.T) {
		got := Totals([]model.Transaction{
			testutil.Tx("1", model.TypeIncome, "inc-1", 100, "2024-05-01"),
			testutil.Tx("2", model.TypeExpense, "exp-1", 250, "2024-05-01"),
		})
		assertAmount(t, -150, got.Balance)
	})
}

func TestExpenseForDateAndMonth(t *testing.T) {
	txs := append(testutil.ScenarioTransactions(),
		testutil.Tx("3", model.TypeExpense, "exp-2", 12000, "2024-05-31"),
		testutil.Tx("4", model.TypeExpense, "exp-2", 7000, "2024-06-01"),
	)

	assertAmount(t, 50000, ExpenseForDate(txs, "2024-05-01"))
	assertAmount(t, 0, ExpenseForDate(txs, "2024-05-02"))
	assertAmount(t, 0, ExpenseForDate(nil, "2024-05-01"))

	assertAmount(t, 62000, ExpenseForMonth(txs, "2024-05"))
	assertAmount(t, 7000, ExpenseForMonth(txs, "2024-06"))
	assertAmount(t, 0, ExpenseForMonth(txs, "2024-07"))
	assertAmount(t, 0, ExpenseForMonth(txs, ""))
}

func TestCategoryBreakdown(t *testing.T) {
	cats := model.DefaultCategories()

	t.Run("scenario excludes orphans and other types", func(t *testing.T) {
		rows := CategoryBreakdown(testutil.ScenarioTransactions(), testutil.ScenarioCategories(), model.TypeExpense)
		require.Len(t, rows, 1)
		assert.Equal(t, "Ovqat", rows[0].Category)
		assert.Equal(t, "🍕", rows[0].Icon)
		assertAmount(t, 50000, rows[0].Amount)

		income := CategoryBreakdown(testutil.ScenarioTransactions(), testutil.ScenarioCategories(), model.TypeIncome)
		assert.Empty(t, income)
	})

	t.Run("sorted by amount then name", func(t *testing.T) {
		txs := []model.Transaction{
			testutil.Tx("1", model.TypeExpense, "exp-2", 100, "2024-05-01"),
			testutil.Tx("2", model.TypeExpense, "exp-1", 300, "2024-05-01"),
			testutil.Tx("3", model.TypeExpense, "exp-3", 100, "2024-05-01"),
			testutil.Tx("4", model.TypeExpense, "exp-2", 50, "2024-05-02"),
			testutil.Tx("5", model.TypeExpense, "gone", 999, "2024-05-02"),
		}
		rows := CategoryBreakdown(txs, cats, model.TypeExpense)
		require.Len(t, rows, 3)
		assert.Equal(t, "Ovqat", rows[0].Category)
		assert.Equal(t, "Transport", rows[1].Category)
		assertAmount(t, 150, rows[1].Amount)
		assert.Equal(t, "Internet", rows[2].Category)
	})

	t.Run("ties broken by name", func(t *testing.T) {
		txs := []model.Transaction{
			testutil.Tx("1", model.TypeExpense, "exp-2", 100, "2024-05-01"),
			testutil.Tx("2", model.TypeExpense, "exp-3", 100, "2024-05-01"),
		}
		rows := CategoryBreakdown(txs, cats, model.TypeExpense)
		require.Len(t, rows, 2)
		assert.Equal(t, "Internet", rows[0].Category)
		assert.Equal(t, "Transport", rows[1].Category)
	})

	t.Run("categories sharing a name are merged", func(t *testing.T) {
		custom := append(model.DefaultCategories(), model.Category{ID: "c1", Name: "Ovqat", Icon: "🥗", Type: model.TypeExpense})
		txs := []model.Transaction{
			testutil.Tx("1", model.TypeExpense, "exp-1", 100, "2024-05-01"),
			testutil.Tx("2", model.TypeExpense, "c1", 20, "2024-05-01"),
		}
		rows := CategoryBreakdown(txs, custom, model.TypeExpense)
		require.Len(t, rows, 1)
		assert.Equal(t, "🍕", rows[0].Icon)
		assertAmount(t, 120, rows[0].Amount)
	})

	t.Run("sum matches resolvable expense total", func(t *testing.T) {
		f := gofakeit.New(11)
		for i := 0; i < 20; i++ {
			txs := testutil.RandomTransactions(f, f.IntRange(0, 150), cats)

			resolvable := make([]model.Transaction, 0, len(txs))
			for _, tx := range txs {
				if _, ok := FindCategory(cats, tx.CategoryID); ok {
					resolvable = append(resolvable, tx)
				}
			}

			sum := decimal.Zero
			for _, r := range CategoryBreakdown(txs, cats, model.TypeExpense) {
				assert.True(t, r.Amount.IsPositive() || r.Amount.IsZero())
				sum = sum.Add(r.Amount)
			}
			assert.True(t, Totals(resolvable).Expense.Equal(sum))
		}
	})

	t.Run("no zero groups", func(t *testing.T) {
		rows := CategoryBreakdown([]model.Transaction{
			testutil.Tx("1", model.TypeExpense, "exp-1", 10, "2024-05-01"),
		}, cats, model.TypeExpense)
		assert.Len(t, rows, 1)
	})
}

func TestPercentages(t *testing.T) {
	assert.Nil(t, Percentages(nil))
	assert.Nil(t, Percentages([]CategoryAmount{{Category: "Ovqat", Amount: decimal.Zero}}))

	got := Percentages([]CategoryAmount{
		{Category: "Ovqat", Amount: decimal.NewFromInt(75)},
		{Category: "Transport", Amount: decimal.NewFromInt(25)},
	})
	require.Len(t, got, 2)
	assertAmount(t, 75, got[0])
	assertAmount(t, 25, got[1])

	thirds := Percentages([]CategoryAmount{
		{Amount: decimal.NewFromInt(1)},
		{Amount: decimal.NewFromInt(1)},
		{Amount: decimal.NewFromInt(1)},
	})
	sum := decimal.Zero
	for _, p := range thirds {
		sum = sum.Add(p)
	}
	assert.InDelta(t, 100.0, sum.InexactFloat64(), 1e-9)
}

func TestMonthlySeries(t *testing.T) {
	txs := []model.Transaction{
		testutil.Tx("1", model.TypeIncome, "inc-1", 1000, "2024-03-10"),
		testutil.Tx("2", model.TypeExpense, "exp-1", 200, "2024-01-05"),
		testutil.Tx("3", model.TypeExpense, "exp-1", 300, "2024-03-11"),
		testutil.Tx("4", model.TypeIncome, "inc-1", 50, "2023-12-31"),
	}

	t.Run("ascending with gaps left out", func(t *testing.T) {
		series := MonthlySeries(txs, DefaultMonthsBack)
		require.Len(t, series, 3)
		assert.Equal(t, "2023-12", series[0].Month)
		assert.Equal(t, "2024-01", series[1].Month)
		assert.Equal(t, "2024-03", series[2].Month)
		assertAmount(t, 1000, series[2].Income)
		assertAmount(t, 300, series[2].Expense)
		assertAmount(t, 700, series[2].Balance())
	})

	t.Run("keeps the most recent months", func(t *testing.T) {
		series := MonthlySeries(txs, 2)
		require.Len(t, series, 2)
		assert.Equal(t, "2024-01", series[0].Month)
		assert.Equal(t, "2024-03", series[1].Month)
	})

	t.Run("non-positive months back", func(t *testing.T) {
		assert.Empty(t, MonthlySeries(txs, 0))
		assert.Empty(t, MonthlySeries(txs, -3))
	})

	t.Run("length bound and order hold for random data", func(t *testing.T) {
		f := gofakeit.New(3)
		for i := 0; i < 20; i++ {
			back := f.IntRange(1, 30)
			series := MonthlySeries(testutil.RandomTransactions(f, f.IntRange(0, 300), model.DefaultCategories()), back)
			assert.LessOrEqual(t, len(series), back)
			for j := 1; j < len(series); j++ {
				assert.Less(t, series[j-1].Month, series[j].Month)
			}
		}
	})
}

func TestFilterTransactions(t *testing.T) {
	txs := []model.Transaction{
		testutil.Tx("a", model.TypeExpense, "exp-1", 10, "2024-05-01"),
		testutil.Tx("b", model.TypeIncome, "inc-1", 20, "2024-05-03"),
		testutil.Tx("c", model.TypeExpense, "exp-2", 30, "2024-05-02"),
		testutil.Tx("d", model.TypeExpense, "exp-1", 40, "2024-05-02"),
		testutil.Tx("e", model.TypeExpense, "exp-1", 50, "not-a-date"),
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "no filter sorts newest first", filter: Filter{}, want: []string{"e", "b", "c", "d", "a"}},
		{name: "type", filter: Filter{Type: model.TypeIncome}, want: []string{"b"}},
		{name: "category", filter: Filter{CategoryID: "exp-1"}, want: []string{"e", "d", "a"}},
		{name: "single day", filter: Filter{StartDate: "2024-05-02", EndDate: "2024-05-02"}, want: []string{"c", "d"}},
		{name: "end date inclusive", filter: Filter{EndDate: "2024-05-02"}, want: []string{"c", "d", "a"}},
		{name: "start date inclusive", filter: Filter{StartDate: "2024-05-02"}, want: []string{"b", "c", "d"}},
		{name: "all of", filter: Filter{Type: model.TypeExpense, CategoryID: "exp-1", StartDate: "2024-05-01", EndDate: "2024-05-01"}, want: []string{"a"}},
		{name: "nothing matches", filter: Filter{StartDate: "2025-01-01"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterTransactions(txs, tt.filter)))
		})
	}

	t.Run("input is not reordered", func(t *testing.T) {
		before := ids(txs)
		FilterTransactions(txs, Filter{})
		assert.Equal(t, before, ids(txs))
	})

	t.Run("single day returns exactly that day for random data", func(t *testing.T) {
		f := gofakeit.New(5)
		random := testutil.RandomTransactions(f, 300, model.DefaultCategories())
		day := random[0].Date

		got := FilterTransactions(random, Filter{StartDate: day, EndDate: day})
		want := 0
		for _, tx := range random {
			if tx.Date == day {
				want++
			}
		}
		assert.Len(t, got, want)
		for _, tx := range got {
			assert.Equal(t, day, tx.Date)
		}

		all := FilterTransactions(random, Filter{})
		require.Len(t, all, len(random))
		for i := 1; i < len(all); i++ {
			assert.GreaterOrEqual(t, all[i-1].Date, all[i].Date)
		}
	})
}

func TestFilterValidate(t *testing.T) {
	assert.NoError(t, Filter{}.Validate())
	assert.NoError(t, Filter{Type: model.TypeExpense, StartDate: "2024-05-01"}.Validate())
	assert.ErrorIs(t, Filter{Type: "transfer"}.Validate(), common.ErrInvalidInput)
	assert.ErrorIs(t, Filter{EndDate: "2024/05/01"}.Validate(), common.ErrInvalidInput)
}

func TestRecent(t *testing.T) {
	txs := []model.Transaction{
		testutil.Tx("a", model.TypeExpense, "exp-1", 1, "2024-05-01"),
		testutil.Tx("b", model.TypeExpense, "exp-1", 1, "2024-05-04"),
		testutil.Tx("c", model.TypeExpense, "exp-1", 1, "2024-05-03"),
		testutil.Tx("d", model.TypeExpense, "exp-1", 1, "2024-05-04"),
	}

	assert.Equal(t, []string{"b", "d"}, ids(Recent(txs, 2)))
	assert.Equal(t, []string{"b", "d", "c", "a"}, ids(Recent(txs, DefaultRecent)))
	assert.Empty(t, Recent(txs, 0))
	assert.Empty(t, Recent(nil, 3))
	assert.Equal(t, "a", txs[0].ID)
}

func TestCategoryHelpers(t *testing.T) {
	cats := append(model.DefaultCategories(), model.Category{ID: "c1", Name: "Kitoblar", Icon: "📚", Type: model.TypeExpense})

	c, ok := FindCategory(cats, "exp-3")
	require.True(t, ok)
	assert.Equal(t, "Internet", c.Name)

	_, ok = FindCategory(cats, "deleted")
	assert.False(t, ok)

	assert.Len(t, CategoriesByType(cats, model.TypeIncome), 5)
	assert.Len(t, CategoriesByType(cats, model.TypeExpense), 8)

	defaults, custom := SplitDefault(cats)
	assert.Len(t, defaults, 12)
	require.Len(t, custom, 1)
	assert.Equal(t, "c1", custom[0].ID)
}

func TestDashboard(t *testing.T) {
	data := model.FinanceData{
		Categories: testutil.ScenarioCategories(),
		Transactions: append(testutil.ScenarioTransactions(),
			testutil.Tx("3", model.TypeExpense, "exp-1", 1500, "2024-05-02"),
			testutil.Tx("4", model.TypeExpense, "exp-1", 700, "2024-04-30"),
		),
	}
	now := time.Date(2024, 5, 2, 23, 30, 0, 0, time.Local)

	got := Dashboard(data, now, 3)
	assert.Equal(t, "2024-05-02", got.Today)
	assert.Equal(t, "2024-05", got.Month)
	assertAmount(t, 1500, got.TodayExpense)
	assertAmount(t, 51500, got.MonthExpense)
	assertAmount(t, 2000000, got.Income)
	assertAmount(t, 52200, got.Expense)
	assert.Equal(t, []string{"2", "3", "1"}, ids(got.Recent))
}
