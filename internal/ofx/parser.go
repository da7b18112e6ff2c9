// Package ofx turns OFX/QFX bank statements into transaction inputs.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/hamyon/internal/model"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

var noisePrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
}

// Mapping assigns categories to imported lines by direction.
type Mapping struct {
	IncomeCategoryID  string
	ExpenseCategoryID string
}

// DefaultMapping files everything under the "Boshqa" seed categories.
func DefaultMapping() Mapping {
	return Mapping{
		IncomeCategoryID:  model.IncomeFallbackID,
		ExpenseCategoryID: model.ExpenseFallbackID,
	}
}

func (m Mapping) categoryFor(t model.TransactionType) string {
	id := m.ExpenseCategoryID
	if t == model.TypeIncome {
		id = m.IncomeCategoryID
	}
	if id == "" {
		return model.FallbackCategoryID(t)
	}
	return id
}

// Parser reads OFX statements.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a parser. A nil logger means slog.Default().
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger.With("component", "ofx")}
}

// preprocess fixes common formatting issues in bank-generated SGML.
func preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// Parse reads every bank and credit card statement line in r.
// Debits become expenses and credits become income, both with positive
// amounts. Zero-amount lines are skipped.
func (p *Parser) Parse(ctx context.Context, r io.Reader, mapping Mapping) ([]model.TransactionInput, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var inputs []model.TransactionInput
	var statements int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			statements++
			inputs = append(inputs, p.convertAll(stmt.BankTranList.Transactions, mapping)...)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			statements++
			inputs = append(inputs, p.convertAll(stmt.BankTranList.Transactions, mapping)...)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.logger.Info("parsed OFX file",
		"transactions", len(inputs),
		"statements", statements)
	return inputs, nil
}

func (p *Parser) convertAll(lines []ofxgo.Transaction, mapping Mapping) []model.TransactionInput {
	out := make([]model.TransactionInput, 0, len(lines))
	for _, line := range lines {
		in, ok := p.convert(line, mapping)
		if !ok {
			continue
		}
		out = append(out, in)
	}
	return out
}

func (p *Parser) convert(line ofxgo.Transaction, mapping Mapping) (model.TransactionInput, bool) {
	amount, err := decimal.NewFromString(line.TrnAmt.FloatString(2))
	if err != nil {
		p.logger.Warn("skipping line with unreadable amount", "fitid", string(line.FiTID), "error", err)
		return model.TransactionInput{}, false
	}
	if amount.IsZero() {
		p.logger.Debug("skipping zero-amount line", "fitid", string(line.FiTID))
		return model.TransactionInput{}, false
	}

	typ := model.TypeIncome
	if amount.IsNegative() {
		typ = model.TypeExpense
	}

	return model.TransactionInput{
		Type:        typ,
		CategoryID:  mapping.categoryFor(typ),
		Amount:      amount.Abs(),
		Description: describe(line),
		Date:        model.FormatDate(line.DtPosted.Time),
	}, true
}

// describe picks the cleanest human label a statement line offers.
func describe(line ofxgo.Transaction) string {
	if line.Payee != nil && line.Payee.Name != "" {
		return model.TruncateDescription(string(line.Payee.Name))
	}

	name := strings.TrimSpace(string(line.Name))
	if line.Memo != "" && (name == "" || isGeneric(name)) {
		name = strings.TrimSpace(string(line.Memo))
	}

	upper := strings.ToUpper(name)
	for _, prefix := range noisePrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Drop a leading MM/DD stamp.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = name[6:]
	}
	return model.TruncateDescription(name)
}

func isGeneric(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
