package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/hamyon/internal/model"
)

// DefaultKey is the blob key the whole document lives under.
const DefaultKey = "finance_tracker_data"

// document is the persisted layout. Amounts are plain JSON numbers so
// documents written by earlier versions of the tracker load unchanged.
type document struct {
	Transactions []documentTransaction `json:"transactions"`
	Categories   []model.Category      `json:"categories"`
}

type documentTransaction struct {
	ID          string                `json:"id"`
	Type        model.TransactionType `json:"type"`
	CategoryID  string                `json:"categoryId"`
	Amount      json.Number           `json:"amount"`
	Description string                `json:"description"`
	Date        string                `json:"date"`
}

func encodeDocument(data model.FinanceData) ([]byte, error) {
	doc := document{
		Transactions: make([]documentTransaction, 0, len(data.Transactions)),
		Categories:   data.Categories,
	}
	if doc.Categories == nil {
		doc.Categories = []model.Category{}
	}

	for _, t := range data.Transactions {
		doc.Transactions = append(doc.Transactions, documentTransaction{
			ID:          t.ID,
			Type:        t.Type,
			CategoryID:  t.CategoryID,
			Amount:      json.Number(t.Amount.String()),
			Description: t.Description,
			Date:        t.Date,
		})
	}

	return json.Marshal(doc)
}

// decodeDocument parses a stored blob. Missing or empty categories fall
// back to the defaults; a missing transaction list is empty.
func decodeDocument(raw []byte) (model.FinanceData, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.FinanceData{}, fmt.Errorf("failed to parse document: %w", err)
	}

	data := model.FinanceData{
		Transactions: make([]model.Transaction, 0, len(doc.Transactions)),
		Categories:   doc.Categories,
	}
	if len(data.Categories) == 0 {
		data.Categories = model.DefaultCategories()
	}

	for i, t := range doc.Transactions {
		amount := decimal.Zero
		if t.Amount != "" {
			parsed, err := decimal.NewFromString(t.Amount.String())
			if err != nil {
				return model.FinanceData{}, fmt.Errorf("transaction at index %d: invalid amount %q: %w", i, t.Amount, err)
			}
			amount = parsed
		}

		data.Transactions = append(data.Transactions, model.Transaction{
			ID:          t.ID,
			Type:        t.Type,
			CategoryID:  t.CategoryID,
			Amount:      amount,
			Description: t.Description,
			Date:        t.Date,
		})
	}

	return data, nil
}
