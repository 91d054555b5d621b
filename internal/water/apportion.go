// Package water computes meter consumption and the répartition of a period's
// water cost between the occupants of a building.
package water

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"copro-billing/internal/domain"
)

// DefaultAnomalyThreshold is the consumption, in m³, above which a reading is
// flagged for review.
var DefaultAnomalyThreshold = decimal.NewFromInt(1000)

// Check is the outcome of validating one reading.
type Check struct {
	Consumption decimal.Decimal `json:"consumption"`
	Anomaly     bool            `json:"anomaly"`
}

// ValidateReading rejects a current index below the previous one and flags,
// without rejecting, a consumption above threshold. A zero threshold selects
// DefaultAnomalyThreshold.
func ValidateReading(r domain.Reading, threshold decimal.Decimal) (Check, error) {
	if threshold.IsZero() {
		threshold = DefaultAnomalyThreshold
	}
	if r.PreviousIndex.IsNegative() {
		return Check{}, &domain.ValidationError{Field: "previous_index", Reason: "index cannot be negative"}
	}
	if r.CurrentIndex.LessThan(r.PreviousIndex) {
		return Check{}, &domain.ValidationError{
			Field:  "current_index",
			Reason: fmt.Sprintf("current index %s is lower than previous index %s", r.CurrentIndex, r.PreviousIndex),
		}
	}
	c := r.Consumption()
	return Check{Consumption: c, Anomaly: c.GreaterThan(threshold)}, nil
}

// Occupant is a party sharing the water cost, usually the household behind a
// divisionary meter.
type Occupant struct {
	ID        string
	OwnerID   string
	Name      string
	Headcount int
	MeterIDs  []string
}

// Input is everything needed to apportion one period.
type Input struct {
	Mode             domain.MeteringMode
	From, To         time.Time
	Tariff           domain.Tariff
	Meters           []domain.Meter
	Readings         []domain.Reading
	Occupants        []Occupant
	AnomalyThreshold decimal.Decimal
}

// Apportion splits the period cost between occupants according to the
// metering mode.
//
//   - collective: the principal meter volume is shared by headcount.
//   - divisionary: each occupant pays its own meters; the principal volume not
//     seen by any divisionary meter is shared by headcount.
//   - individual: each occupant pays its own meters only.
//
// Every occupant also pays the tariff's fixed fee.
func Apportion(in Input) (domain.Apportionment, error) {
	if !in.Mode.Valid() {
		return domain.Apportionment{}, &domain.ValidationError{Field: "mode", Reason: fmt.Sprintf("unknown metering mode %q", in.Mode)}
	}
	if len(in.Occupants) == 0 {
		return domain.Apportionment{}, &domain.ValidationError{Field: "occupants", Reason: "no occupant to apportion to"}
	}
	threshold := in.AnomalyThreshold
	if threshold.IsZero() {
		threshold = DefaultAnomalyThreshold
	}

	out := domain.Apportionment{Mode: in.Mode, From: in.From, To: in.To}

	meterType := make(map[string]domain.MeterType, len(in.Meters))
	for _, m := range in.Meters {
		meterType[m.ID] = m.Type
	}
	perMeter := make(map[string]decimal.Decimal)
	for _, r := range periodReadings(in.Readings, in.From, in.To) {
		if r.CurrentIndex.LessThan(r.PreviousIndex) {
			out.Anomalies = append(out.Anomalies, fmt.Sprintf("meter %s: index decreased on %s", r.MeterID, r.Date.Format(time.DateOnly)))
		}
		c := r.Consumption()
		if c.GreaterThan(threshold) {
			out.Anomalies = append(out.Anomalies, fmt.Sprintf("meter %s: consumption %s m³ above %s m³", r.MeterID, c, threshold))
		}
		perMeter[r.MeterID] = perMeter[r.MeterID].Add(c)
	}

	principal := decimal.Zero
	for id, c := range perMeter {
		if meterType[id] == domain.MeterPrincipal {
			principal = principal.Add(c)
		}
	}

	lines := make([]domain.ApportionmentLine, len(in.Occupants))
	private := decimal.Zero
	totalHeadcount := 0
	for i, occ := range in.Occupants {
		own := decimal.Zero
		for _, id := range occ.MeterIDs {
			if meterType[id] == domain.MeterDivisionary {
				own = own.Add(perMeter[id])
			}
		}
		lines[i] = domain.ApportionmentLine{
			MeterID:   firstOr(occ.MeterIDs, ""),
			OwnerID:   occ.OwnerID,
			Occupant:  occ.Name,
			Headcount: occ.Headcount,
			Fixed:     in.Tariff.FixedFee,
		}
		if in.Mode != domain.MeteringCollective {
			lines[i].Consumption = own
			lines[i].Variable = own.Mul(in.Tariff.UnitPrice)
			private = private.Add(own)
		}
		totalHeadcount += occ.Headcount
	}

	common := decimal.Zero
	switch in.Mode {
	case domain.MeteringCollective:
		common = principal
	case domain.MeteringDivisionary:
		if principal.GreaterThan(private) {
			common = principal.Sub(private)
		}
	}
	out.CommonConsumption = common
	out.TotalConsumption = private.Add(common)

	weights := make([]int, len(lines))
	for i := range lines {
		weights[i] = lines[i].Headcount
	}
	costShares := splitShares(common.Mul(in.Tariff.UnitPrice), weights, moneyPlaces)
	volumeShares := splitShares(common, weights, volumePlaces)
	for i := range lines {
		lines[i].CommonShare = costShares[i]
		if in.Mode == domain.MeteringCollective {
			lines[i].Consumption = volumeShares[i]
		}
		lines[i].Total = lines[i].Variable.Add(lines[i].Fixed).Add(lines[i].CommonShare)
	}

	out.Lines = lines
	out.TotalCost = out.TotalConsumption.Mul(in.Tariff.UnitPrice).Add(in.Tariff.FixedFee.Mul(decimal.NewFromInt(int64(len(lines)))))
	return out, nil
}

const (
	moneyPlaces  = 2
	volumePlaces = 3
)

// splitShares splits amount by weight, or equally when every weight is zero.
// Shares are rounded to places and the rounding remainder goes to the first
// largest weight, so the shares always add up to amount.
func splitShares(amount decimal.Decimal, weights []int, places int32) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(weights))
	if len(weights) == 0 {
		return shares
	}
	w := make([]int64, len(weights))
	var total int64
	for i, v := range weights {
		w[i] = int64(v)
		total += w[i]
	}
	if total == 0 {
		for i := range w {
			w[i] = 1
		}
		total = int64(len(w))
	}

	largest := 0
	allocated := decimal.Zero
	for i := range w {
		shares[i] = amount.Mul(decimal.NewFromInt(w[i])).Div(decimal.NewFromInt(total)).Round(places)
		allocated = allocated.Add(shares[i])
		if w[i] > w[largest] {
			largest = i
		}
	}
	shares[largest] = shares[largest].Add(amount.Sub(allocated))
	return shares
}

func periodReadings(readings []domain.Reading, from, to time.Time) []domain.Reading {
	var out []domain.Reading
	for _, r := range readings {
		if !from.IsZero() && r.Date.Before(from) {
			continue
		}
		if !to.IsZero() && r.Date.After(to) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// OccupantsFromMeters groups the divisionary meters of a building by occupant.
// Meters sharing an owner, or an occupant label when no owner is set, form one
// occupant.
func OccupantsFromMeters(meters []domain.Meter) []Occupant {
	index := make(map[string]int)
	var out []Occupant
	for _, m := range meters {
		if m.Type != domain.MeterDivisionary {
			continue
		}
		key := "meter:" + m.ID
		owner := ""
		if m.OwnerID != nil && *m.OwnerID != "" {
			owner = *m.OwnerID
			key = "owner:" + owner
		} else if m.Occupant != "" {
			key = "occupant:" + m.Occupant
		}
		if i, ok := index[key]; ok {
			out[i].MeterIDs = append(out[i].MeterIDs, m.ID)
			if m.Headcount > out[i].Headcount {
				out[i].Headcount = m.Headcount
			}
			continue
		}
		name := m.Occupant
		if name == "" {
			name = m.Location
		}
		index[key] = len(out)
		out = append(out, Occupant{ID: key, OwnerID: owner, Name: name, Headcount: m.Headcount, MeterIDs: []string{m.ID}})
	}
	return out
}

// OccupantsFromOwners makes one single-person occupant per owner, for
// buildings without divisionary meters.
func OccupantsFromOwners(owners []domain.Owner) []Occupant {
	out := make([]Occupant, 0, len(owners))
	for _, o := range owners {
		out = append(out, Occupant{ID: "owner:" + o.ID, OwnerID: o.ID, Name: o.DisplayName(), Headcount: 1})
	}
	return out
}

func firstOr(ids []string, def string) string {
	if len(ids) == 0 {
		return def
	}
	return ids[0]
}
