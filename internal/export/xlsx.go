package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"copro-billing/internal/domain"
)

// SummarySheet is the name of the first sheet of a statement workbook.
const SummarySheet = "Synthèse"

const maxSheetName = 31

var sheetNameCleaner = strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")")

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// sheetName returns a valid, unused sheet name for an owner.
func sheetName(o domain.Owner, used map[string]bool) string {
	base := strings.TrimSpace(sheetNameCleaner.Replace(o.DisplayName()))
	if base == "" {
		base = o.ID
	}
	name := truncate(base, maxSheetName)
	for i := 2; used[strings.ToLower(name)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		name = truncate(base, maxSheetName-len([]rune(suffix))) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// WriteXLSX writes a workbook with a summary sheet followed by one sheet per
// owner statement.
func WriteXLSX(out io.Writer, report domain.BuildingReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	if err := writeSummarySheet(f, report); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}

	used := map[string]bool{strings.ToLower(SummarySheet): true}
	for _, st := range report.Statements {
		name := sheetName(st.Owner, used)
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
		if err := writeOwnerSheet(f, name, st); err != nil {
			return fmt.Errorf("sheet %s: %w", name, err)
		}
	}
	f.SetActiveSheet(0)
	return f.Write(out)
}

func writeSummarySheet(f *excelize.File, report domain.BuildingReport) error {
	s := report.Summary
	rows := [][]interface{}{
		{"Exercice", s.Year},
		{"Millièmes", s.TotalShareUnits},
		{"Charges communes", money(s.TotalCommonCharges)},
		{"Frais", money(s.TotalFees)},
		{"Provisions versées", money(s.TotalDeposits)},
		{"Versements non attribués", money(s.UnattributedTotal)},
		{"Solde global", money(s.GlobalBalance)},
		{"Débiteurs", s.DebtorCount},
		{"Devise", s.Currency},
		{},
	}
	header := make([]interface{}, len(statementHeader))
	for i, h := range statementHeader {
		header[i] = h
	}
	rows = append(rows, header)
	for _, st := range report.Statements {
		rows = append(rows, []interface{}{
			st.Owner.DisplayName(),
			st.ShareUnits,
			st.ShareRatio.Round(4).InexactFloat64(),
			money(st.OwnerCommonCharges),
			money(st.OwnerFees),
			money(st.OwnerDeposits),
			money(st.OpeningBalance),
			money(st.Adjustment),
			money(st.FinalBalance),
			string(st.Status),
		})
	}
	if err := writeRows(f, SummarySheet, rows); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "A", "A", 28)
}

func writeOwnerSheet(f *excelize.File, sheet string, st domain.AnnualStatement) error {
	rows := [][]interface{}{
		{"Propriétaire", st.Owner.DisplayName()},
		{"Exercice", st.Year},
		{"Millièmes", fmt.Sprintf("%d / %d", st.ShareUnits, st.TotalShareUnits)},
		{"Charges communes de l'immeuble", money(st.TotalCommonCharges)},
		{"Quote-part charges communes", money(st.OwnerCommonCharges)},
		{"Quote-part frais", money(st.OwnerFees)},
		{"Provisions versées", money(st.OwnerDeposits)},
		{"Report à nouveau", money(st.OpeningBalance)},
		{"Ajustement", money(st.Adjustment)},
		{"Solde final", money(st.FinalBalance)},
		{"Statut", string(st.Status)},
		{},
		{"Date", "Libellé", "Montant"},
	}
	for _, d := range st.Deposits {
		label := strings.TrimSpace(d.Counterparty + " " + d.Description)
		rows = append(rows, []interface{}{d.EffectiveDate().Format(time.DateOnly), label, money(d.Amount)})
	}
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "B", 32)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}
	return nil
}
