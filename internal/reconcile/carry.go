package reconcile

import (
	"github.com/shopspring/decimal"

	"copro-billing/internal/domain"
)

// Openings returns the report à nouveau of every owner: the closing balance
// of the settled prior exercise, or zero.
func Openings(prior *domain.Exercise, owners []domain.Owner) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(owners))
	for _, o := range owners {
		out[o.ID] = domain.CarriedForward(prior, o.ID)
	}
	return out
}

// Adjustments returns the manual adjustments recorded on ex, keyed by owner.
func Adjustments(ex *domain.Exercise) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	if ex == nil {
		return out
	}
	for _, s := range ex.Soldes {
		if !s.Adjustment.IsZero() {
			out[s.OwnerID] = s.Adjustment
		}
	}
	return out
}

// Settle fills the soldes and totals of ex from report. The exercise status is
// left to the caller.
func Settle(ex domain.Exercise, report domain.BuildingReport) domain.Exercise {
	ex.Soldes = make([]domain.Solde, 0, len(report.Statements))
	for _, st := range report.Statements {
		ex.Soldes = append(ex.Soldes, st.Solde())
	}
	ex.TotalCharges = report.Summary.TotalCommonCharges.Add(report.Summary.TotalFees)
	ex.TotalProvisions = report.Summary.TotalDeposits
	ex.GlobalBalance = report.Summary.GlobalBalance
	return ex
}
