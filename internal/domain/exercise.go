package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ExerciseStatus is the lifecycle state of an accounting exercise.
type ExerciseStatus string

const (
	ExerciseDraft    ExerciseStatus = "draft"
	ExerciseOpen     ExerciseStatus = "open"
	ExerciseClosed   ExerciseStatus = "closed"
	ExerciseArchived ExerciseStatus = "archived"
)

// Settled reports whether the exercise can no longer change and its closing
// balances may be carried forward.
func (s ExerciseStatus) Settled() bool {
	return s == ExerciseClosed || s == ExerciseArchived
}

// Solde is the per-owner balance sheet of an exercise.
type Solde struct {
	OwnerID         string          `json:"owner_id"`
	OpeningBalance  decimal.Decimal `json:"opening_balance"`
	TotalProvisions decimal.Decimal `json:"total_provisions"`
	TotalCharges    decimal.Decimal `json:"total_charges"`
	Adjustment      decimal.Decimal `json:"adjustment"`
	ClosingBalance  decimal.Decimal `json:"closing_balance"`
}

// Close recomputes ClosingBalance from the other fields.
func (s Solde) Close() Solde {
	s.ClosingBalance = s.OpeningBalance.Add(s.TotalProvisions).Sub(s.TotalCharges).Add(s.Adjustment)
	return s
}

// Exercise is one fiscal year of a building.
type Exercise struct {
	ID              string          `json:"id"`
	BuildingID      string          `json:"building_id"`
	Year            int             `json:"year"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	Status          ExerciseStatus  `json:"status"`
	TotalCharges    decimal.Decimal `json:"total_charges"`
	TotalProvisions decimal.Decimal `json:"total_provisions"`
	GlobalBalance   decimal.Decimal `json:"global_balance"`
	Soldes          []Solde         `json:"soldes"`
	ClosedAt        *time.Time      `json:"closed_at,omitempty"`
}

// SoldeFor returns the solde of ownerID.
func (e Exercise) SoldeFor(ownerID string) (Solde, bool) {
	for _, s := range e.Soldes {
		if s.OwnerID == ownerID {
			return s, true
		}
	}
	return Solde{}, false
}

// ClosureConfirmation is the text an operator must type to close the exercise.
func ClosureConfirmation(year int) string {
	return fmt.Sprintf("CLOTURER %d", year)
}

// CarriedForward returns the opening balance of ownerID for the exercise that
// follows prior. A nil or unsettled prior exercise carries nothing.
func CarriedForward(prior *Exercise, ownerID string) decimal.Decimal {
	if prior == nil || !prior.Status.Settled() {
		return decimal.Zero
	}
	if s, ok := prior.SoldeFor(ownerID); ok {
		return s.ClosingBalance
	}
	return decimal.Zero
}
