package cli

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/hamyon/internal/model"
)

const displayDateLayout = "02.01.2006"

// FormatAmount groups thousands with spaces and appends the currency,
// e.g. "1 950 000 so'm". Fractions are shown only when present.
func FormatAmount(amount decimal.Decimal, currency string) string {
	amount = amount.Round(2)
	s := groupDigits(amount.Abs())
	if amount.IsNegative() {
		s = "-" + s
	}
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// FormatSigned prefixes the amount with + for income and - for expense.
func FormatSigned(t model.Transaction, currency string) string {
	sign := "-"
	if t.IsIncome() {
		sign = "+"
	}
	return sign + FormatAmount(t.Amount.Abs(), currency)
}

// StyleSigned is FormatSigned colored by transaction type.
func StyleSigned(t model.Transaction, currency string) string {
	s := FormatSigned(t, currency)
	if t.IsIncome() {
		return IncomeStyle.Render(s)
	}
	return ExpenseStyle.Render(s)
}

// StyleBalance colors a balance green when non-negative and red otherwise.
func StyleBalance(amount decimal.Decimal, currency string) string {
	s := FormatAmount(amount, currency)
	if amount.IsNegative() {
		return ExpenseStyle.Render(s)
	}
	return IncomeStyle.Render(s)
}

// groupDigits formats a non-negative amount already rounded to cents.
// The integer part goes through big.Int so large values stay exact.
func groupDigits(amount decimal.Decimal) string {
	whole := amount.Truncate(0)
	s := strings.ReplaceAll(humanize.BigComma(whole.BigInt()), ",", " ")
	if amount.Equal(whole) {
		return s
	}
	fixed := amount.StringFixed(2)
	return s + fixed[strings.IndexByte(fixed, '.'):]
}

// FormatDate shows a YYYY-MM-DD date as DD.MM.YYYY. Unparseable input is returned as is.
func FormatDate(date string) string {
	d, err := model.ParseDate(date)
	if err != nil {
		return date
	}
	return d.Format(displayDateLayout)
}

// FormatPercent renders a percentage with one decimal, e.g. "33.3%".
func FormatPercent(p decimal.Decimal) string {
	return p.StringFixed(1) + "%"
}

// Bar draws a horizontal bar filled to p percent of width cells.
func Bar(p decimal.Decimal, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(p.Mul(decimal.NewFromInt(int64(width))).Div(decimal.NewFromInt(100)).Round(0).IntPart())
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// CategoryLabel renders "icon name", or a placeholder for a deleted category.
func CategoryLabel(cat model.Category, ok bool) string {
	if !ok {
		return UnknownIcon + " Noma'lum"
	}
	return cat.Icon + " " + cat.Name
}
