package gateway

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"copro-billing/internal/classifier"
	"copro-billing/internal/domain"
)

// headerScanLimit bounds how many leading lines of a generic export are
// searched for the header row.
const headerScanLimit = 20

var dateLayouts = []string{"02/01/2006", "2/1/2006", "2006-01-02", "02-01-2006", "02.01.2006"}

// Column positions of the fixed bank export.
const (
	fixedPostingDate   = 1
	fixedCounterparty  = 5
	fixedTransaction   = 7
	fixedValueDate     = 8
	fixedAmount        = 9
	fixedCommunication = 11
	fixedMinColumns    = 10
)

// CSVStatementReader parses bank statement exports.
type CSVStatementReader struct{}

// NewCSVStatementReader creates a new reader instance.
func NewCSVStatementReader() *CSVStatementReader {
	return &CSVStatementReader{}
}

// ReadStatement parses r in the given layout. Row level problems are reported
// on each line; an error is returned only when the file itself is unreadable.
func (r *CSVStatementReader) ReadStatement(ctx context.Context, format domain.StatementFormat, src io.Reader) ([]domain.StatementLine, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read statement: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	switch format {
	case domain.FormatFixed:
		return readFixed(ctx, data)
	case domain.FormatGeneric, "":
		return readGeneric(ctx, data)
	default:
		return nil, &domain.ValidationError{Field: "format", Reason: fmt.Sprintf("unknown statement format %q", format)}
	}
}

func newReader(data []byte, delim rune) *csv.Reader {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	return reader
}

func readFixed(ctx context.Context, data []byte) ([]domain.StatementLine, error) {
	reader := newReader(data, ';')
	// Skip header
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &domain.ValidationError{Field: "file", Reason: "empty statement"}
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var lines []domain.StatementLine
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record: %w", err)
		}
		lineNo, _ := reader.FieldPos(0)
		if blank(record) {
			continue
		}

		line := domain.StatementLine{Line: lineNo}
		if len(record) < fixedMinColumns {
			line.Errors = append(line.Errors, &domain.ValidationError{
				Line:   lineNo,
				Field:  "columns",
				Reason: fmt.Sprintf("expected at least %d columns, got %d", fixedMinColumns, len(record)),
			})
			lines = append(lines, line)
			continue
		}

		line.Date = parseDateField(&line, "date", record[fixedValueDate])
		if posting := strings.TrimSpace(record[fixedPostingDate]); posting != "" {
			if d := parseDateField(&line, "posting_date", posting); !d.IsZero() {
				line.PostingDate = &d
			}
		}
		line.Amount = parseAmountField(&line, record[fixedAmount])
		line.Counterparty = strings.TrimSpace(record[fixedCounterparty])
		line.Description = joinText(record[fixedTransaction], field(record, fixedCommunication))
		lines = append(lines, line)
	}
	return lines, nil
}

// columns maps header roles to their positions in a generic export.
type columns struct {
	date, posting, amount, debit, credit, counterparty int
	description                                        []int
}

func (c columns) usable() bool {
	return c.date >= 0 && (c.amount >= 0 || c.debit >= 0 || c.credit >= 0)
}

func detectColumns(header []string) columns {
	c := columns{date: -1, posting: -1, amount: -1, debit: -1, credit: -1, counterparty: -1}
	for i, h := range header {
		name := classifier.Normalize(h)
		switch {
		case name == "":
		case containsAny(name, "valeur", "value", "comptable", "posting", "booking"):
			if c.posting < 0 {
				c.posting = i
			}
		case strings.Contains(name, "date"):
			if c.date < 0 {
				c.date = i
			}
		case containsAny(name, "montant", "amount"):
			if c.amount < 0 {
				c.amount = i
			}
		case containsAny(name, "debit"):
			c.debit = i
		case containsAny(name, "credit"):
			c.credit = i
		case containsAny(name, "compte", "account", "iban", "bic", "numero", "adresse", "address"):
			// Account numbers and addresses never name the counterparty.
		case containsAny(name, "contrepartie", "counterparty", "beneficiaire", "nom", "name"):
			if c.counterparty < 0 {
				c.counterparty = i
			}
		case containsAny(name, "libelle", "description", "communication", "details", "motif"):
			c.description = append(c.description, i)
		}
	}
	// A lone "date valeur" column still dates the movement.
	if c.date < 0 && c.posting >= 0 {
		c.date, c.posting = c.posting, -1
	}
	return c
}

// sniffDelimiter picks the separator used most in the first non-empty line.
func sniffDelimiter(data []byte) rune {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		first := scanner.Text()
		if strings.TrimSpace(first) == "" {
			continue
		}
		best, bestCount := ',', strings.Count(first, ",")
		for _, d := range []rune{';', '\t'} {
			if n := strings.Count(first, string(d)); n > bestCount {
				best, bestCount = d, n
			}
		}
		return best
	}
	return ','
}

func readGeneric(ctx context.Context, data []byte) ([]domain.StatementLine, error) {
	reader := newReader(data, sniffDelimiter(data))

	var cols columns
	found := false
	for i := 0; i < headerScanLimit; i++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading header: %w", err)
		}
		if c := detectColumns(record); c.usable() {
			cols, found = c, true
			break
		}
	}
	if !found {
		return nil, &domain.ValidationError{Field: "header", Reason: "no header row with date and amount columns"}
	}

	var lines []domain.StatementLine
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record: %w", err)
		}
		lineNo, _ := reader.FieldPos(0)
		if blank(record) {
			continue
		}

		line := domain.StatementLine{Line: lineNo}
		line.Date = parseDateField(&line, "date", field(record, cols.date))
		if cols.posting >= 0 {
			if posting := strings.TrimSpace(field(record, cols.posting)); posting != "" {
				if d := parseDateField(&line, "posting_date", posting); !d.IsZero() {
					line.PostingDate = &d
				}
			}
		}
		if cols.amount >= 0 {
			line.Amount = parseAmountField(&line, field(record, cols.amount))
		} else {
			line.Amount = debitCredit(&line, field(record, cols.debit), field(record, cols.credit))
		}
		line.Counterparty = strings.TrimSpace(field(record, cols.counterparty))
		parts := make([]string, 0, len(cols.description))
		for _, i := range cols.description {
			parts = append(parts, field(record, i))
		}
		line.Description = joinText(parts...)
		lines = append(lines, line)
	}
	return lines, nil
}

// debitCredit reads split debit and credit columns. Debits are stored as
// negative amounts whatever their sign in the file.
func debitCredit(line *domain.StatementLine, debit, credit string) decimal.Decimal {
	total := decimal.Zero
	if strings.TrimSpace(debit) != "" {
		total = total.Sub(parseAmountField(line, debit).Abs())
	}
	if strings.TrimSpace(credit) != "" {
		total = total.Add(parseAmountField(line, credit).Abs())
	}
	return total
}

func parseDateField(line *domain.StatementLine, name, raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		line.Errors = append(line.Errors, &domain.ValidationError{Line: line.Line, Field: name, Reason: "missing date"})
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return d
		}
	}
	line.Errors = append(line.Errors, &domain.ValidationError{Line: line.Line, Field: name, Reason: fmt.Sprintf("invalid date %q", raw)})
	return time.Time{}
}

func parseAmountField(line *domain.StatementLine, raw string) decimal.Decimal {
	amount, err := domain.ParseAmount(raw)
	if err != nil {
		line.Errors = append(line.Errors, &domain.ValidationError{Line: line.Line, Field: "amount", Reason: err.Error()})
		return decimal.Zero
	}
	return amount
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func joinText(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.Join(strings.Fields(p), " "); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " - ")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
