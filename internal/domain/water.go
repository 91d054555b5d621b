package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MeterType distinguishes the building's main meter from per-unit meters.
type MeterType string

const (
	MeterPrincipal   MeterType = "principal"
	MeterDivisionary MeterType = "divisionary"
)

// Meter is a water meter installed in a building.
type Meter struct {
	ID         string    `json:"id"`
	BuildingID string    `json:"building_id"`
	Type       MeterType `json:"type"`
	Serial     string    `json:"serial"`
	Location   string    `json:"location"`
	OwnerID    *string   `json:"owner_id,omitempty"`
	Occupant   string    `json:"occupant,omitempty"`
	Headcount  int       `json:"headcount"`
}

// Reading is an index statement of a meter. Indexes are in m³.
type Reading struct {
	ID            string          `json:"id"`
	MeterID       string          `json:"meter_id"`
	Date          time.Time       `json:"date"`
	PreviousIndex decimal.Decimal `json:"previous_index"`
	CurrentIndex  decimal.Decimal `json:"current_index"`
}

// Consumption returns current minus previous index, never below zero.
func (r Reading) Consumption() decimal.Decimal {
	c := r.CurrentIndex.Sub(r.PreviousIndex)
	if c.IsNegative() {
		return decimal.Zero
	}
	return c
}

// Tariff prices water for one billing period.
type Tariff struct {
	UnitPrice decimal.Decimal `json:"unit_price"` // per m³
	FixedFee  decimal.Decimal `json:"fixed_fee"`  // per occupant for the period
}

// ApportionmentLine is one occupant's share of the water cost.
type ApportionmentLine struct {
	MeterID     string          `json:"meter_id,omitempty"`
	OwnerID     string          `json:"owner_id,omitempty"`
	Occupant    string          `json:"occupant"`
	Headcount   int             `json:"headcount"`
	Consumption decimal.Decimal `json:"consumption"`
	Variable    decimal.Decimal `json:"variable"`
	Fixed       decimal.Decimal `json:"fixed"`
	CommonShare decimal.Decimal `json:"common_share"`
	Total       decimal.Decimal `json:"total"`
}

// Apportionment is the computed répartition of a period's water cost.
type Apportionment struct {
	Mode              MeteringMode        `json:"mode"`
	From              time.Time           `json:"from"`
	To                time.Time           `json:"to"`
	TotalConsumption  decimal.Decimal     `json:"total_consumption"`
	CommonConsumption decimal.Decimal     `json:"common_consumption"`
	TotalCost         decimal.Decimal     `json:"total_cost"`
	Lines             []ApportionmentLine `json:"lines"`
	Anomalies         []string            `json:"anomalies,omitempty"`
}
