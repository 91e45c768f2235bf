// Package importer reads bank statement exports into transactions.
package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/famledger/internal/models"
	"github.com/mmynk/famledger/internal/storage"
)

// Row is one parsed statement line. Amount is always positive; Type says
// which way the money moved.
type Row struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        string
}

// Parser converts a statement file into rows.
type Parser interface {
	Parse(r io.Reader) ([]Row, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats lists registered formats in order.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&GenericParser{})
	r.Register(&ChaseParser{})
	return r
}

// Summary reports what Import wrote.
type Summary struct {
	Imported int
	Income   decimal.Decimal
	Expense  decimal.Decimal
}

// Import parses r with p and stores every row for userID with source "import".
// Rows are written one by one; an error stops the import and reports how far it got.
func Import(ctx context.Context, store storage.TransactionStore, userID string, p Parser, r io.Reader) (*Summary, error) {
	rows, err := p.Parse(r)
	if err != nil {
		return nil, err
	}

	sum := &Summary{}
	for i, row := range rows {
		txn := &models.Transaction{
			UserID:      userID,
			Type:        row.Type,
			Amount:      row.Amount,
			Description: row.Description,
			Date:        models.Day(row.Date),
			Source:      models.SourceImport,
		}
		if err := store.CreateTransaction(ctx, txn); err != nil {
			return sum, fmt.Errorf("row %d: %w", i+1, err)
		}
		sum.Imported++
		if row.Type == models.TypeIncome {
			sum.Income = sum.Income.Add(row.Amount)
		} else {
			sum.Expense = sum.Expense.Add(row.Amount)
		}
	}

	slog.Info("Imported statement", "user_id", userID, "format", p.Format(), "rows", sum.Imported)
	return sum, nil
}

// parseAmount accepts "1,234.56", "$-12.00" and "(12.00)".
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	s = strings.Trim(s, "()")
	s = strings.NewReplacer(",", "", "$", "", " ", "").Replace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// signedRow turns a signed amount into a positive amount plus type.
// An explicit type wins over the sign.
func signedRow(date time.Time, desc string, amount decimal.Decimal, typ string) (Row, error) {
	if amount.IsZero() {
		return Row{}, fmt.Errorf("zero amount")
	}
	typ = strings.ToLower(strings.TrimSpace(typ))
	switch {
	case typ == "":
		typ = models.TypeIncome
		if amount.IsNegative() {
			typ = models.TypeExpense
		}
	case !models.ValidType(typ):
		return Row{}, fmt.Errorf("unknown type %q", typ)
	}
	return Row{
		Date:        date,
		Description: strings.TrimSpace(desc),
		Amount:      amount.Abs(),
		Type:        typ,
	}, nil
}
