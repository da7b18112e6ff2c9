package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/hamyon/internal/common"
	"github.com/Veraticus/hamyon/internal/ledger"
	"github.com/Veraticus/hamyon/internal/model"
	"github.com/Veraticus/hamyon/internal/storage"
)

type harness struct {
	t   *testing.T
	dir string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	return &harness{t: t, dir: t.TempDir()}
}

func (h *harness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--backend", "file", "--data", h.dir, "--log-level", "error"}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run("", args...)
	require.NoError(h.t, err, out)
	return out
}

func (h *harness) snapshot() model.FinanceData {
	h.t.Helper()
	blobs, err := storage.NewFileStore(h.dir)
	require.NoError(h.t, err)
	return ledger.Open(context.Background(), blobs, ledger.WithLogger(common.DiscardLogger())).Snapshot()
}

func (h *harness) seedScenario() {
	h.t.Helper()
	h.mustRun("add", "expense", "50000", "--category", "exp-1", "--date", "2024-05-01")
	h.mustRun("add", "income", "2 000 000", "--category", "ish haqi", "--date", "2024-05-02", "-m", "May salary")
}

func TestAddAndList(t *testing.T) {
	h := newHarness(t)
	h.seedScenario()

	data := h.snapshot()
	require.Len(t, data.Transactions, 2)
	assert.Equal(t, "inc-1", data.Transactions[1].CategoryID)
	assert.Equal(t, "May salary", data.Transactions[1].Description)

	out := h.mustRun("list")
	assert.Contains(t, out, "-50 000 so'm")
	assert.Contains(t, out, "+2 000 000 so'm")
	assert.Contains(t, out, "net 1 950 000 so'm")
	assert.Less(t, strings.Index(out, "02.05.2024"), strings.Index(out, "01.05.2024"))

	out = h.mustRun("list", "--type", "expense", "--from", "2024-05-01", "--to", "2024-05-01")
	assert.Contains(t, out, "01.05.2024")
	assert.NotContains(t, out, "02.05.2024")

	out = h.mustRun("list", "--category", "Ovqat")
	assert.Contains(t, out, "🍕 Ovqat")
	assert.NotContains(t, out, "Ish haqi")
}

func TestRecent(t *testing.T) {
	h := newHarness(t)
	h.seedScenario()

	out := h.mustRun("recent", "-n", "1")
	assert.Contains(t, out, "02.05.2024")
	assert.NotContains(t, out, "01.05.2024")

	out = h.mustRun("recent")
	assert.Contains(t, out, "01.05.2024")
	assert.Contains(t, out, "02.05.2024")
}

func TestAddRejectsBadInput(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "add", "expense", "lots")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = h.run("", "add", "expense", "100", "--date", "01.05.2024")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = h.run("", "add", "expense", "100", "--category", "Ish haqi")
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.Empty(t, h.snapshot().Transactions)
}

func TestDashboardAndAnalytics(t *testing.T) {
	h := newHarness(t)
	h.seedScenario()

	out := h.mustRun("dashboard")
	assert.Contains(t, out, "1 950 000 so'm")
	assert.Contains(t, out, "Recent")

	out = h.mustRun("analytics")
	assert.Contains(t, out, "🍕 Ovqat")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "2024-05")

	out = h.mustRun("analytics", "--type", "income", "--months", "1")
	assert.Contains(t, out, "Ish haqi")
	assert.Contains(t, out, "Last 1 months")
}

func TestDelete(t *testing.T) {
	h := newHarness(t)
	h.seedScenario()
	id := h.snapshot().Transactions[0].ID

	out := h.mustRun("delete", id)
	assert.Contains(t, out, "Deleted "+id)
	assert.False(t, h.snapshot().HasTransaction(id))

	out = h.mustRun("delete", id)
	assert.Contains(t, out, "No transaction "+id)
	assert.Len(t, h.snapshot().Transactions, 1)
}

func TestCategories(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("categories", "add", "Kitoblar", "--icon", "📚")
	assert.Contains(t, out, "Created expense category 📚 Kitoblar")

	out = h.mustRun("categories", "list")
	assert.Contains(t, out, "Kitoblar")
	assert.Contains(t, out, "custom")
	assert.Contains(t, out, "INCOME")

	h.seedScenario()
	out = h.mustRun("categories", "delete", "exp-1")
	assert.Contains(t, out, "1 transactions keep their reference")

	data := h.snapshot()
	assert.False(t, data.HasCategory("exp-1"))
	assert.Len(t, data.Transactions, 2)

	out = h.mustRun("list")
	assert.Contains(t, out, "Noma'lum")
}

func TestReset(t *testing.T) {
	h := newHarness(t)
	h.seedScenario()

	out, err := h.run("n\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset canceled.")
	assert.Len(t, h.snapshot().Transactions, 2)

	out, err = h.run("y\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "All data removed")
	assert.Equal(t, model.NewFinanceData(), h.snapshot())
}

func TestExport(t *testing.T) {
	h := newHarness(t)
	h.seedScenario()

	out := h.mustRun("export", "--format", "yaml")
	assert.Contains(t, out, "categoryId: exp-1")
	assert.Contains(t, out, "balance: \"1950000.00\"")

	file := filepath.Join(t.TempDir(), "out.json")
	h.mustRun("export", "-o", file)
	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"category": "Ovqat"`)

	_, err = h.run("", "export", "--format", "csv")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

const statement = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240515120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>UZS
<BANKACCTFROM>
<BANKID>00014
<ACCTID>20208000900123456001
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240501120000[0:GMT]
<DTEND>20240531120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240510120000[0:GMT]
<TRNAMT>-12000.00
<FITID>1
<NAME>Yandex Go
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240511120000[0:GMT]
<TRNAMT>300000.00
<FITID>2
<NAME>Freelance payout
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>288000.00
<DTASOF>20240531120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestImport(t *testing.T) {
	h := newHarness(t)
	file := filepath.Join(t.TempDir(), "may.ofx")
	require.NoError(t, os.WriteFile(file, []byte(statement), 0o600))

	out := h.mustRun("import", file, "--dry-run", "--expense-category", "Transport")
	assert.Contains(t, out, "Would import 2 transactions")
	assert.Empty(t, h.snapshot().Transactions)

	out = h.mustRun("import", file, "--expense-category", "exp-2", "--income-category", "Freelance")
	assert.Contains(t, out, "Imported 2 transactions from 1 files")

	txs := h.snapshot().Transactions
	require.Len(t, txs, 2)
	assert.Equal(t, "exp-2", txs[0].CategoryID)
	assert.Equal(t, "inc-2", txs[1].CategoryID)
	assert.True(t, decimal.NewFromInt(12000).Equal(txs[0].Amount))

	_, err := h.run("", "import", filepath.Join(t.TempDir(), "missing.ofx"))
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, "hamyon dev\n", h.mustRun("version"))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "50000", want: "50000"},
		{in: "1 250 000", want: "1250000"},
		{in: "1_000", want: "1000"},
		{in: "12,5", want: "12.5"},
		{in: "0", want: "0"},
		{in: "-1", wantErr: true},
		{in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got))
		})
	}
}

func TestResolveCategory(t *testing.T) {
	cats := model.DefaultCategories()

	c, err := resolveCategory(cats, model.TypeExpense, "")
	require.NoError(t, err)
	assert.Equal(t, model.ExpenseFallbackID, c.ID)

	c, err = resolveCategory(cats, model.TypeIncome, "boshqa")
	require.NoError(t, err)
	assert.Equal(t, model.IncomeFallbackID, c.ID)

	c, err = resolveCategory(cats, model.TypeExpense, "exp-3")
	require.NoError(t, err)
	assert.Equal(t, "Internet", c.Name)

	_, err = resolveCategory(cats, model.TypeIncome, "exp-3")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCategoryFilterID(t *testing.T) {
	cats := model.DefaultCategories()

	tests := []struct {
		name    string
		typ     model.TransactionType
		ref     string
		want    string
		wantErr bool
	}{
		{name: "id", ref: "exp-1", want: "exp-1"},
		{name: "unique name", ref: "ovqat", want: "exp-1"},
		{name: "shared name narrowed to expense", typ: model.TypeExpense, ref: "Boshqa", want: model.ExpenseFallbackID},
		{name: "shared name narrowed to income", typ: model.TypeIncome, ref: "Boshqa", want: model.IncomeFallbackID},
		{name: "shared name without type", ref: "Boshqa", wantErr: true},
		{name: "deleted category id kept verbatim", ref: "exp-99", want: "exp-99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := categoryFilterID(cats, tt.typ, tt.ref)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListSharedCategoryName(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "expense", "7000", "--date", "2024-05-03")
	h.mustRun("add", "income", "9000", "--date", "2024-05-04")

	_, err := h.run("", "list", "--category", "Boshqa")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	out := h.mustRun("list", "--type", "expense", "--category", "Boshqa")
	assert.Contains(t, out, "03.05.2024")
	assert.NotContains(t, out, "04.05.2024")
}
