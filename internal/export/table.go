package export

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"copro-billing/internal/domain"
)

const (
	colorRed     lipgloss.Color = "#f38ba8"
	colorGreen   lipgloss.Color = "#a6e3a1"
	colorSubtext lipgloss.Color = "#a6adc8"
	colorMauve   lipgloss.Color = "#cba6f7"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorMauve).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	debtorStyle = numberStyle.Foreground(colorRed)
	okStyle     = numberStyle.Foreground(colorGreen)
	noteStyle   = lipgloss.NewStyle().Foreground(colorSubtext)
)

// balanceColumn is the position of "Solde final" in statementHeader.
const balanceColumn = 8

// Table renders the statements of a building as a terminal table, followed by
// the building totals and any attribution warning.
func Table(report domain.BuildingReport) string {
	rows := make([][]string, 0, len(report.Statements))
	debtor := make([]bool, 0, len(report.Statements))
	for _, st := range report.Statements {
		rows = append(rows, statementRecord(st))
		debtor = append(debtor, st.Status == domain.StatusDebtor)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(noteStyle).
		Headers(statementHeader...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == balanceColumn && row >= 0 && row < len(debtor) && debtor[row]:
				return debtorStyle
			case col == balanceColumn:
				return okStyle
			case col == 0 || col == len(statementHeader)-1:
				return cellStyle
			default:
				return numberStyle
			}
		})

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")

	s := report.Summary
	fmt.Fprintf(&b, "%s · charges %s · frais %s · provisions %s · solde global %s · débiteurs %d\n",
		withCurrency(fmt.Sprintf("Exercice %d", s.Year), s.Currency),
		domain.FormatAmount(s.TotalCommonCharges),
		domain.FormatAmount(s.TotalFees),
		domain.FormatAmount(s.TotalDeposits),
		domain.FormatAmount(s.GlobalBalance),
		s.DebtorCount)
	if !s.UnattributedTotal.IsZero() {
		b.WriteString(noteStyle.Render("Versements non attribués: "+domain.FormatAmount(s.UnattributedTotal)) + "\n")
	}
	for _, w := range s.Warnings {
		b.WriteString(noteStyle.Render("! "+w.String()) + "\n")
	}
	return b.String()
}
