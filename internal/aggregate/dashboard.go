package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/hamyon/internal/model"
)

// Overview is everything the dashboard screen shows.
type Overview struct {
	Summary
	Today        string              `json:"today"`
	TodayExpense decimal.Decimal     `json:"todayExpense"`
	Month        string              `json:"month"`
	MonthExpense decimal.Decimal     `json:"monthExpense"`
	Recent       []model.Transaction `json:"recent"`
}

// Dashboard builds the overview as of now. The calendar day is taken in
// now's location, so pass a local time for the user's "today".
func Dashboard(data model.FinanceData, now time.Time, recent int) Overview {
	today := model.FormatDate(now)
	month := model.MonthKey(today)

	return Overview{
		Summary:      Totals(data.Transactions),
		Today:        today,
		TodayExpense: ExpenseForDate(data.Transactions, today),
		Month:        month,
		MonthExpense: ExpenseForMonth(data.Transactions, month),
		Recent:       Recent(data.Transactions, recent),
	}
}
