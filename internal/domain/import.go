package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementFormat names a supported bank statement layout.
type StatementFormat string

const (
	// FormatFixed is the bank export with fixed column positions.
	FormatFixed StatementFormat = "fixed"
	// FormatGeneric is any delimited export whose header row names the columns.
	FormatGeneric StatementFormat = "generic"
)

// StatementLine is one parsed row of a bank statement. Fields that failed to
// parse are left zero and reported in Errors.
type StatementLine struct {
	Line         int                `json:"line"`
	Date         time.Time          `json:"date"`
	PostingDate  *time.Time         `json:"posting_date,omitempty"`
	Amount       decimal.Decimal    `json:"amount"`
	Description  string             `json:"description"`
	Counterparty string             `json:"counterparty"`
	Errors       []*ValidationError `json:"errors,omitempty"`
}

// ImportRow is a statement line ready for operator review.
type ImportRow struct {
	Line        int                 `json:"line"`
	Transaction Transaction         `json:"transaction"`
	Valid       bool                `json:"valid"`
	Duplicate   bool                `json:"duplicate"`
	Fee         bool                `json:"fee"`
	Supplier    string              `json:"supplier,omitempty"`
	Errors      []*ValidationError  `json:"errors,omitempty"`
	Warning     *AttributionWarning `json:"warning,omitempty"`
}

// ImportPreview lists every row of a statement before anything is written.
type ImportPreview struct {
	Format     StatementFormat `json:"format"`
	Rows       []ImportRow     `json:"rows"`
	Total      int             `json:"total"`
	ValidCount int             `json:"valid_count"`
	Duplicates int             `json:"duplicates"`
	Invalid    int             `json:"invalid"`
}

// ImportResult reports what a committed import wrote.
type ImportResult struct {
	Imported int                `json:"imported"`
	Skipped  int                `json:"skipped"`
	Errors   []*ValidationError `json:"errors,omitempty"`
}
