package domain

import "github.com/shopspring/decimal"

// BalanceStatus classifies an owner's final balance.
type BalanceStatus string

const (
	// StatusUpToDate covers creditor and exactly balanced owners.
	StatusUpToDate BalanceStatus = "up_to_date"
	// StatusDebtor flags a negative balance requiring regularization.
	StatusDebtor BalanceStatus = "debtor"
)

// StatusOf classifies a final balance. Zero is not alerting.
func StatusOf(balance decimal.Decimal) BalanceStatus {
	if balance.IsNegative() {
		return StatusDebtor
	}
	return StatusUpToDate
}

// AnnualStatement is the décompte annuel of one owner for one year.
type AnnualStatement struct {
	BuildingID         string               `json:"building_id"`
	Year               int                  `json:"year"`
	Owner              Owner                `json:"owner"`
	ShareUnits         int                  `json:"share_units"`
	TotalShareUnits    int                  `json:"total_share_units"`
	ShareRatio         decimal.Decimal      `json:"share_ratio"`
	TotalCommonCharges decimal.Decimal      `json:"total_common_charges"`
	TotalFees          decimal.Decimal      `json:"total_fees"`
	OwnerCommonCharges decimal.Decimal      `json:"owner_common_charges"`
	OwnerFees          decimal.Decimal      `json:"owner_fees"`
	OwnerDeposits      decimal.Decimal      `json:"owner_deposits"`
	OpeningBalance     decimal.Decimal      `json:"opening_balance"`
	Adjustment         decimal.Decimal      `json:"adjustment"`
	FinalBalance       decimal.Decimal      `json:"final_balance"`
	Status             BalanceStatus        `json:"status"`
	Deposits           []Transaction        `json:"deposits"`
	Warnings           []AttributionWarning `json:"warnings,omitempty"`
}

// Solde projects the statement onto an exercise solde record, recomputing
// the closing balance from its components.
func (s AnnualStatement) Solde() Solde {
	return Solde{
		OwnerID:         s.Owner.ID,
		OpeningBalance:  s.OpeningBalance,
		TotalProvisions: s.OwnerDeposits,
		TotalCharges:    s.OwnerCommonCharges.Add(s.OwnerFees),
		Adjustment:      s.Adjustment,
	}.Close()
}

// BuildingSummary aggregates the building-wide figures of a year.
type BuildingSummary struct {
	BuildingID         string               `json:"building_id"`
	Year               int                  `json:"year"`
	TotalShareUnits    int                  `json:"total_share_units"`
	TotalCommonCharges decimal.Decimal      `json:"total_common_charges"`
	TotalFees          decimal.Decimal      `json:"total_fees"`
	TotalDeposits      decimal.Decimal      `json:"total_deposits"`
	UnattributedTotal  decimal.Decimal      `json:"unattributed_total"`
	GlobalBalance      decimal.Decimal      `json:"global_balance"`
	DebtorCount        int                  `json:"debtor_count"`
	Currency           string               `json:"currency,omitempty"`
	Warnings           []AttributionWarning `json:"warnings,omitempty"`
}

// BuildingReport is the set of every owner's statement plus the summary.
type BuildingReport struct {
	Summary    BuildingSummary   `json:"summary"`
	Statements []AnnualStatement `json:"statements"`
}
