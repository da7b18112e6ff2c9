// Package export writes the finance document in portable formats.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/hamyon/internal/aggregate"
	"github.com/Veraticus/hamyon/internal/common"
	"github.com/Veraticus/hamyon/internal/model"
)

// Format names an output encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatYAML}

// ParseFormat accepts a format name case-insensitively; "yml" means yaml.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q (want one of %v)", common.ErrInvalidInput, s, Formats)
	}
}

type transactionRow struct {
	ID          string `json:"id" yaml:"id"`
	Type        string `json:"type" yaml:"type"`
	Date        string `json:"date" yaml:"date"`
	CategoryID  string `json:"categoryId" yaml:"categoryId"`
	Category    string `json:"category" yaml:"category"`
	Amount      string `json:"amount" yaml:"amount"`
	Description string `json:"description" yaml:"description"`
}

type categoryRow struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Icon      string `json:"icon" yaml:"icon"`
	Type      string `json:"type" yaml:"type"`
	IsDefault bool   `json:"isDefault" yaml:"isDefault"`
}

type report struct {
	Totals       totalsRow        `json:"totals" yaml:"totals"`
	Transactions []transactionRow `json:"transactions" yaml:"transactions"`
	Categories   []categoryRow    `json:"categories" yaml:"categories"`
}

type totalsRow struct {
	Income  string `json:"income" yaml:"income"`
	Expense string `json:"expense" yaml:"expense"`
	Balance string `json:"balance" yaml:"balance"`
}

// Write encodes data to w. Transactions are listed newest first with their
// category name resolved; a deleted category leaves the name empty.
// Amounts are fixed two-decimal strings.
func Write(w io.Writer, data model.FinanceData, format Format) error {
	rep := build(data)

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: unknown export format %q", common.ErrInvalidInput, format)
	}
}

func build(data model.FinanceData) report {
	totals := aggregate.Totals(data.Transactions)
	rep := report{
		Totals: totalsRow{
			Income:  totals.Income.StringFixed(2),
			Expense: totals.Expense.StringFixed(2),
			Balance: totals.Balance.StringFixed(2),
		},
		Transactions: make([]transactionRow, 0, len(data.Transactions)),
		Categories:   make([]categoryRow, 0, len(data.Categories)),
	}

	for _, t := range aggregate.FilterTransactions(data.Transactions, aggregate.Filter{}) {
		cat, _ := aggregate.FindCategory(data.Categories, t.CategoryID)
		rep.Transactions = append(rep.Transactions, transactionRow{
			ID:          t.ID,
			Type:        t.Type.String(),
			Date:        t.Date,
			CategoryID:  t.CategoryID,
			Category:    cat.Name,
			Amount:      t.Amount.StringFixed(2),
			Description: t.Description,
		})
	}

	for _, c := range data.Categories {
		rep.Categories = append(rep.Categories, categoryRow{
			ID:        c.ID,
			Name:      c.Name,
			Icon:      c.Icon,
			Type:      c.Type.String(),
			IsDefault: c.IsDefault,
		})
	}
	return rep
}
