package model

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Transaction is a single dated monetary event.
// CategoryID is a soft reference: the category may have been deleted since.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	CategoryID  string          `json:"categoryId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"` // YYYY-MM-DD
}

// IsIncome reports whether the transaction is income.
func (t Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// SignedAmount returns the amount as it affects the balance.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.IsIncome() {
		return t.Amount
	}
	return t.Amount.Neg()
}

// MaxDescriptionLength is the longest description, in runes, that validation accepts.
const MaxDescriptionLength = 500

// TruncateDescription trims s and shortens it to MaxDescriptionLength runes.
func TruncateDescription(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= MaxDescriptionLength {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:MaxDescriptionLength]))
}

// TransactionInput is a transaction before the store assigns it an id.
type TransactionInput struct {
	Type        TransactionType `json:"type" validate:"required,oneof=income expense"`
	CategoryID  string          `json:"categoryId" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0"`
	Description string          `json:"description" validate:"max=500"`
	Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
}

// Transaction materializes the input with the given id.
func (in TransactionInput) Transaction(id string) Transaction {
	return Transaction{
		ID:          id,
		Type:        in.Type,
		CategoryID:  in.CategoryID,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
	}
}
