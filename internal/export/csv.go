// Package export renders statements for spreadsheets and terminals.
package export

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"copro-billing/internal/domain"
)

// bom makes spreadsheet software read the file as UTF-8.
const bom = "\ufeff"

var statementHeader = []string{
	"Propriétaire",
	"Millièmes",
	"Quote-part",
	"Charges communes",
	"Frais",
	"Provisions versées",
	"Report à nouveau",
	"Ajustement",
	"Solde final",
	"Statut",
}

func statementRecord(st domain.AnnualStatement) []string {
	return []string{
		st.Owner.DisplayName(),
		strconv.Itoa(st.ShareUnits),
		st.ShareRatio.StringFixed(4),
		domain.FormatAmount(st.OwnerCommonCharges),
		domain.FormatAmount(st.OwnerFees),
		domain.FormatAmount(st.OwnerDeposits),
		domain.FormatAmount(st.OpeningBalance),
		domain.FormatAmount(st.Adjustment),
		domain.FormatAmount(st.FinalBalance),
		string(st.Status),
	}
}

// withCurrency appends the currency code to label when one is set.
func withCurrency(label, currency string) string {
	if currency == "" {
		return label
	}
	return label + " (" + currency + ")"
}

// writeQuoted writes one CSV record with every field quoted.
func writeQuoted(w *bufio.Writer, record []string) error {
	for i, f := range record {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(`"` + strings.ReplaceAll(f, `"`, `""`) + `"`); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\r\n")
	return err
}

// WriteCSV writes one row per owner statement, preceded by a header and
// followed by a totals row.
func WriteCSV(out io.Writer, report domain.BuildingReport) error {
	w := bufio.NewWriter(out)
	if _, err := w.WriteString(bom); err != nil {
		return err
	}
	if err := writeQuoted(w, statementHeader); err != nil {
		return err
	}
	for _, st := range report.Statements {
		if err := writeQuoted(w, statementRecord(st)); err != nil {
			return err
		}
	}
	s := report.Summary
	totals := []string{
		withCurrency("Total", s.Currency),
		strconv.Itoa(s.TotalShareUnits),
		"",
		domain.FormatAmount(s.TotalCommonCharges),
		domain.FormatAmount(s.TotalFees),
		domain.FormatAmount(s.TotalDeposits),
		"",
		"",
		domain.FormatAmount(s.GlobalBalance),
		"",
	}
	if err := writeQuoted(w, totals); err != nil {
		return err
	}
	return w.Flush()
}
