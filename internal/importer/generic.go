package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

var genericDateFormats = []string{"2006-01-02", "2006/01/02", "02.01.2006"}

// GenericParser reads "date,description,amount[,type]" with an optional
// header row. Without a type column, negative amounts are expenses.
type GenericParser struct{}

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse reads a generic CSV.
func (p *GenericParser) Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading generic CSV: %w", err)
	}
	if len(records) > 0 && strings.EqualFold(strings.TrimSpace(records[0][0]), "date") {
		records = records[1:]
	}

	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		row, err := parseGenericRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseGenericRow(rec []string) (Row, error) {
	if len(rec) < 3 || len(rec) > 4 {
		return Row{}, fmt.Errorf("expected 3 or 4 fields, got %d", len(rec))
	}
	date, err := parseGenericDate(rec[0])
	if err != nil {
		return Row{}, err
	}
	amount, err := parseAmount(rec[2])
	if err != nil {
		return Row{}, fmt.Errorf("parsing amount %q: %w", rec[2], err)
	}
	var typ string
	if len(rec) == 4 {
		typ = rec[3]
	}
	return signedRow(date, rec[1], amount, typ)
}

func parseGenericDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range genericDateFormats {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing date %q", s)
}
