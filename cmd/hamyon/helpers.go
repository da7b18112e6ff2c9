package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/hamyon/internal/aggregate"
	"github.com/Veraticus/hamyon/internal/cli"
	"github.com/Veraticus/hamyon/internal/common"
	"github.com/Veraticus/hamyon/internal/ledger"
	"github.com/Veraticus/hamyon/internal/model"
	"github.com/Veraticus/hamyon/internal/storage"
	"github.com/Veraticus/hamyon/internal/validation"
)

// openLedger opens the configured blob store and loads the document.
// The returned cleanup closes the store.
func (a *app) openLedger(ctx context.Context) (*ledger.Store, func(), error) {
	validator, err := validation.New()
	if err != nil {
		return nil, nil, err
	}

	blobs, err := storage.Open(ctx, storage.Options{
		Backend: a.cfg.Storage.Backend,
		Path:    a.cfg.Storage.Path,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}

	store := ledger.Open(ctx, blobs,
		ledger.WithKey(a.cfg.Storage.Key),
		ledger.WithValidator(validator),
		ledger.WithLogger(slog.Default()),
	)

	cleanup := func() {
		if err := blobs.Close(); err != nil {
			slog.Warn("failed to close storage", "error", err)
		}
	}
	return store, cleanup, nil
}

// parseAmount accepts "50000", "50 000", "50_000" and "12,5".
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer(" ", "", "\u00a0", "", "_", "").Replace(strings.TrimSpace(s))
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, common.NewUserError(fmt.Sprintf("%q is not an amount", s), common.ErrInvalidInput)
	}
	if d.IsNegative() {
		return decimal.Zero, common.NewUserError("amount must not be negative", common.ErrInvalidInput)
	}
	return d, nil
}

// resolveCategory finds a category of type t by id or by name, ignoring case.
// An empty ref selects the "Boshqa" fallback for t.
func resolveCategory(cats []model.Category, t model.TransactionType, ref string) (model.Category, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		ref = model.FallbackCategoryID(t)
	}

	candidates := aggregate.CategoriesByType(cats, t)
	for _, c := range candidates {
		if c.ID == ref {
			return c, nil
		}
	}
	for _, c := range candidates {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	return model.Category{}, common.NewUserError(
		fmt.Sprintf("no %s category %q; see 'hamyon categories list'", t, ref), common.ErrNotFound)
}

func parseType(s string) (model.TransactionType, error) {
	switch t := model.TransactionType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return "", nil
	case model.TypeIncome, model.TypeExpense:
		return t, nil
	default:
		return "", common.NewUserError(fmt.Sprintf("unknown type %q: use income or expense", s), common.ErrInvalidInput)
	}
}

func today() string {
	return model.FormatDate(time.Now())
}

func printTransactions(w io.Writer, txs []model.Transaction, cats []model.Category, currency string) error {
	if len(txs) == 0 {
		return writef(w, "%s\n", cli.SubtleStyle.Render("No transactions."))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		cli.BoldStyle.Render("DATE"),
		cli.BoldStyle.Render("CATEGORY"),
		cli.BoldStyle.Render("AMOUNT"),
		cli.BoldStyle.Render("DESCRIPTION"),
		cli.BoldStyle.Render("ID")); err != nil {
		return err
	}
	for _, t := range txs {
		cat, ok := aggregate.FindCategory(cats, t.CategoryID)
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			cli.FormatDate(t.Date),
			cli.CategoryLabel(cat, ok),
			cli.StyleSigned(t, currency),
			t.Description,
			cli.SubtleStyle.Render(t.ID)); err != nil {
			return err
		}
	}
	return tw.Flush()
}
