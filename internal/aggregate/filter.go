package aggregate

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Veraticus/hamyon/internal/common"
	"github.com/Veraticus/hamyon/internal/model"
)

// DefaultRecent is how many transactions the dashboard lists.
const DefaultRecent = 5

// Filter selects transactions. Zero-valued fields match everything.
// StartDate and EndDate are YYYY-MM-DD and both bounds are inclusive.
type Filter struct {
	Type       model.TransactionType
	CategoryID string
	StartDate  string
	EndDate    string
}

// Validate reports malformed date bounds or an unknown type.
func (f Filter) Validate() error {
	if f.Type != "" && !f.Type.Valid() {
		return fmt.Errorf("%w: unknown transaction type %q", common.ErrInvalidInput, f.Type)
	}
	if err := validateBound("start date", f.StartDate); err != nil {
		return err
	}
	return validateBound("end date", f.EndDate)
}

// FilterTransactions returns the transactions matching every set field of f,
// newest first. Equal dates keep their input order. A bound that does not
// parse is ignored; once a bound applies, transactions with an unparseable
// date are excluded.
func FilterTransactions(txs []model.Transaction, f Filter) []model.Transaction {
	start, hasStart := parseBound(f.StartDate)
	end, hasEnd := parseBound(f.EndDate)

	out := make([]model.Transaction, 0, len(txs))
	for _, t := range txs {
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.CategoryID != "" && t.CategoryID != f.CategoryID {
			continue
		}
		if hasStart || hasEnd {
			d, err := model.ParseDate(t.Date)
			if err != nil {
				continue
			}
			if hasStart && d.Before(start) {
				continue
			}
			if hasEnd && d.After(end) {
				continue
			}
		}
		out = append(out, t)
	}

	sortNewestFirst(out)
	return out
}

// Recent returns the n newest transactions.
func Recent(txs []model.Transaction, n int) []model.Transaction {
	if n <= 0 {
		return []model.Transaction{}
	}

	out := slices.Clone(txs)
	if out == nil {
		out = []model.Transaction{}
	}
	sortNewestFirst(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func validateBound(name, v string) error {
	if v == "" {
		return nil
	}
	if _, err := model.ParseDate(v); err != nil {
		return fmt.Errorf("%w: %s %q is not YYYY-MM-DD", common.ErrInvalidInput, name, v)
	}
	return nil
}

func parseBound(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// YYYY-MM-DD sorts lexically in date order.
func sortNewestFirst(txs []model.Transaction) {
	slices.SortStableFunc(txs, func(a, b model.Transaction) int {
		return strings.Compare(b.Date, a.Date)
	})
}
