// Package reconcile computes the annual statement (décompte annuel) of the
// owners of a building. Everything here is a pure function of its inputs.
package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"

	"copro-billing/internal/classifier"
	"copro-billing/internal/domain"
)

// StatementInput carries the feeds needed for one owner's statement.
type StatementInput struct {
	BuildingID     string
	Year           int
	Transactions   []domain.Transaction // any year, filtered here
	Owners         []domain.Owner
	OwnerID        string
	OpeningBalance decimal.Decimal
	Adjustment     decimal.Decimal
	Classifier     *classifier.Classifier
}

// BuildingInput carries the feeds needed for every owner's statement.
// Owners missing from Openings or Adjustments default to zero.
type BuildingInput struct {
	BuildingID   string
	Year         int
	Transactions []domain.Transaction
	Owners       []domain.Owner
	Openings     map[string]decimal.Decimal
	Adjustments  map[string]decimal.Decimal
	Classifier   *classifier.Classifier
}

// Prorate returns total × units / totalUnits, or zero when totalUnits is not
// positive.
func Prorate(total decimal.Decimal, units, totalUnits int) decimal.Decimal {
	if totalUnits <= 0 {
		return decimal.Zero
	}
	return total.Mul(decimal.NewFromInt(int64(units))).Div(decimal.NewFromInt(int64(totalUnits)))
}

// ShareRatio returns units / totalUnits, or zero when totalUnits is not positive.
func ShareRatio(units, totalUnits int) decimal.Decimal {
	if totalUnits <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(units)).Div(decimal.NewFromInt(int64(totalUnits)))
}

// FilterYear returns the transactions whose effective date is in year.
func FilterYear(txs []domain.Transaction, year int) []domain.Transaction {
	var out []domain.Transaction
	for _, tx := range txs {
		if tx.InYear(year) {
			out = append(out, tx)
		}
	}
	return out
}

// ChargeTotal sums the magnitude of charges; bank debits may be signed either way.
func ChargeTotal(txs []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount.Abs())
	}
	return total
}

// attributedDeposit pairs a deposit with its owner attribution.
type attributedDeposit struct {
	tx  domain.Transaction
	att classifier.Attribution
}

// yearLedger is the building-wide view of one year, shared by every owner.
type yearLedger struct {
	buildingID      string
	year            int
	owners          []domain.Owner
	totalShareUnits int
	totalCommon     decimal.Decimal
	totalFees       decimal.Decimal
	deposits        []attributedDeposit
}

func newYearLedger(buildingID string, year int, txs []domain.Transaction, owners []domain.Owner, c *classifier.Classifier) (*yearLedger, error) {
	if c == nil {
		c = classifier.New(nil, nil)
	}
	inYear := FilterYear(txs, year)
	fees, common := c.Partition(inYear)

	l := &yearLedger{
		buildingID:      buildingID,
		year:            year,
		owners:          owners,
		totalShareUnits: domain.TotalShareUnits(owners),
		totalCommon:     ChargeTotal(common),
		totalFees:       ChargeTotal(fees),
	}
	for _, tx := range inYear {
		if tx.IsCharge() {
			continue
		}
		att := classifier.Attribute(tx, owners)
		if att.Method == classifier.AttributedUnknown {
			return nil, fmt.Errorf("transaction %s: %w %s", tx.ID, domain.ErrUnknownOwner, att.OwnerID)
		}
		l.deposits = append(l.deposits, attributedDeposit{tx: tx, att: att})
	}
	return l, nil
}

func (l *yearLedger) statement(owner domain.Owner, opening, adjustment decimal.Decimal) domain.AnnualStatement {
	st := domain.AnnualStatement{
		BuildingID:         l.buildingID,
		Year:               l.year,
		Owner:              owner,
		ShareUnits:         owner.ShareUnits,
		TotalShareUnits:    l.totalShareUnits,
		ShareRatio:         ShareRatio(owner.ShareUnits, l.totalShareUnits),
		TotalCommonCharges: l.totalCommon,
		TotalFees:          l.totalFees,
		OwnerCommonCharges: Prorate(l.totalCommon, owner.ShareUnits, l.totalShareUnits),
		OwnerFees:          Prorate(l.totalFees, owner.ShareUnits, l.totalShareUnits),
		OwnerDeposits:      decimal.Zero,
		OpeningBalance:     opening,
		Adjustment:         adjustment,
		Deposits:           []domain.Transaction{},
	}
	for _, d := range l.deposits {
		switch d.att.Method {
		case classifier.AttributedExplicit, classifier.AttributedByName:
			if d.att.OwnerID == owner.ID {
				st.OwnerDeposits = st.OwnerDeposits.Add(d.tx.Amount)
				st.Deposits = append(st.Deposits, d.tx)
			}
		case classifier.AttributedAmbiguous:
			if contains(d.att.Candidates, owner.ID) {
				if w, ok := d.att.Warning(d.tx); ok {
					st.Warnings = append(st.Warnings, w)
				}
			}
		}
	}
	st.FinalBalance = opening.Add(st.OwnerDeposits).Sub(st.OwnerCommonCharges).Sub(st.OwnerFees).Add(adjustment)
	st.Status = domain.StatusOf(st.FinalBalance)
	return st
}

// ComputeStatement produces the annual statement of in.OwnerID.
func ComputeStatement(in StatementInput) (domain.AnnualStatement, error) {
	owner, ok := domain.FindOwner(in.Owners, in.OwnerID)
	if !ok {
		return domain.AnnualStatement{}, fmt.Errorf("statement: %w %s", domain.ErrUnknownOwner, in.OwnerID)
	}
	l, err := newYearLedger(in.BuildingID, in.Year, in.Transactions, in.Owners, in.Classifier)
	if err != nil {
		return domain.AnnualStatement{}, fmt.Errorf("statement for owner %s: %w", in.OwnerID, err)
	}
	return l.statement(owner, in.OpeningBalance, in.Adjustment), nil
}

// ComputeBuilding produces every owner's statement and the building summary.
func ComputeBuilding(in BuildingInput) (domain.BuildingReport, error) {
	l, err := newYearLedger(in.BuildingID, in.Year, in.Transactions, in.Owners, in.Classifier)
	if err != nil {
		return domain.BuildingReport{}, fmt.Errorf("building statements: %w", err)
	}

	report := domain.BuildingReport{
		Summary: domain.BuildingSummary{
			BuildingID:         in.BuildingID,
			Year:               in.Year,
			TotalShareUnits:    l.totalShareUnits,
			TotalCommonCharges: l.totalCommon,
			TotalFees:          l.totalFees,
			TotalDeposits:      decimal.Zero,
			UnattributedTotal:  decimal.Zero,
		},
		Statements: make([]domain.AnnualStatement, 0, len(in.Owners)),
	}
	for _, d := range l.deposits {
		report.Summary.TotalDeposits = report.Summary.TotalDeposits.Add(d.tx.Amount)
		switch d.att.Method {
		case classifier.Unattributed:
			report.Summary.UnattributedTotal = report.Summary.UnattributedTotal.Add(d.tx.Amount)
		case classifier.AttributedAmbiguous:
			report.Summary.UnattributedTotal = report.Summary.UnattributedTotal.Add(d.tx.Amount)
			if w, ok := d.att.Warning(d.tx); ok {
				report.Summary.Warnings = append(report.Summary.Warnings, w)
			}
		}
	}
	report.Summary.GlobalBalance = report.Summary.TotalDeposits.Sub(l.totalCommon).Sub(l.totalFees)

	for _, o := range in.Owners {
		st := l.statement(o, in.Openings[o.ID], in.Adjustments[o.ID])
		if st.Status == domain.StatusDebtor {
			report.Summary.DebtorCount++
		}
		report.Statements = append(report.Statements, st)
	}
	return report, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
