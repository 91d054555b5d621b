package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"copro-billing/internal/domain"
	"copro-billing/internal/water"
)

// WaterUseCase records meter readings and apportions water costs.
type WaterUseCase struct {
	buildings BuildingRepository
	owners    OwnerRepository
	water     WaterRepository
	threshold decimal.Decimal
	log       zerolog.Logger
}

// NewWaterUseCase creates a new instance of the usecase. A zero threshold
// selects water.DefaultAnomalyThreshold.
func NewWaterUseCase(buildings BuildingRepository, owners OwnerRepository, repo WaterRepository, threshold decimal.Decimal, log zerolog.Logger) *WaterUseCase {
	if threshold.IsZero() {
		threshold = water.DefaultAnomalyThreshold
	}
	return &WaterUseCase{buildings: buildings, owners: owners, water: repo, threshold: threshold, log: log}
}

// SaveMeter creates or updates a meter of buildingID.
func (uc *WaterUseCase) SaveMeter(ctx context.Context, buildingID string, m domain.Meter) (*domain.Meter, error) {
	if _, err := uc.buildings.GetBuilding(ctx, buildingID); err != nil {
		return nil, err
	}
	if m.Type == "" {
		m.Type = domain.MeterDivisionary
	}
	if m.Type != domain.MeterPrincipal && m.Type != domain.MeterDivisionary {
		return nil, &domain.ValidationError{Field: "type", Reason: fmt.Sprintf("unknown meter type %q", m.Type)}
	}
	if m.Headcount < 0 {
		return nil, &domain.ValidationError{Field: "headcount", Reason: "headcount cannot be negative"}
	}
	m.Serial = strings.TrimSpace(m.Serial)
	if m.OwnerID != nil && *m.OwnerID != "" {
		o, err := uc.owners.GetOwner(ctx, *m.OwnerID)
		if err != nil || o.BuildingID != buildingID {
			return nil, &domain.ValidationError{Field: "owner_id", Reason: fmt.Sprintf("owner %s does not belong to building %s", *m.OwnerID, buildingID)}
		}
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.BuildingID = buildingID
	if err := uc.water.SaveMeter(ctx, m); err != nil {
		return nil, fmt.Errorf("could not save meter: %w", err)
	}
	return &m, nil
}

// ListMeters returns the meters of a building.
func (uc *WaterUseCase) ListMeters(ctx context.Context, buildingID string) ([]domain.Meter, error) {
	return uc.water.ListMeters(ctx, buildingID)
}

// RecordReading stores a new index for a meter. When previous is nil the
// current index of the meter's last reading is used, or zero for a first
// reading. A decreasing index is rejected; a consumption above the anomaly
// threshold is stored and flagged.
func (uc *WaterUseCase) RecordReading(ctx context.Context, buildingID, meterID string, date time.Time, previous *decimal.Decimal, current decimal.Decimal) (*domain.Reading, water.Check, error) {
	m, err := uc.water.GetMeter(ctx, meterID)
	if err != nil {
		return nil, water.Check{}, err
	}
	if m.BuildingID != buildingID {
		return nil, water.Check{}, fmt.Errorf("meter %s: %w", meterID, domain.ErrNotFound)
	}
	if date.IsZero() {
		return nil, water.Check{}, &domain.ValidationError{Field: "date", Reason: "date is required"}
	}

	r := domain.Reading{ID: uuid.NewString(), MeterID: meterID, Date: date, CurrentIndex: current}
	if previous != nil {
		r.PreviousIndex = *previous
	} else {
		last, err := uc.water.LastReading(ctx, meterID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			r.PreviousIndex = decimal.Zero
		case err != nil:
			return nil, water.Check{}, &domain.DataLoadError{Resource: "last reading", Err: err}
		default:
			r.PreviousIndex = last.CurrentIndex
		}
	}

	check, err := water.ValidateReading(r, uc.threshold)
	if err != nil {
		return nil, water.Check{}, err
	}
	if err := uc.water.InsertReading(ctx, r); err != nil {
		return nil, water.Check{}, fmt.Errorf("could not save reading: %w", err)
	}
	if check.Anomaly {
		uc.log.Warn().
			Str("meter_id", meterID).
			Str("consumption", check.Consumption.String()).
			Str("threshold", uc.threshold.String()).
			Msg("water consumption above threshold")
	}
	return &r, check, nil
}

// Apportion splits the water cost of [from, to] between the occupants of a
// building according to its metering mode. Buildings without divisionary
// meters share between their owners, one person each.
func (uc *WaterUseCase) Apportion(ctx context.Context, buildingID string, from, to time.Time, tariff domain.Tariff) (*domain.Apportionment, error) {
	if !to.IsZero() && to.Before(from) {
		return nil, &domain.ValidationError{Field: "to", Reason: "period end is before its start"}
	}
	b, err := uc.buildings.GetBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	meters, err := uc.water.ListMeters(ctx, buildingID)
	if err != nil {
		return nil, &domain.DataLoadError{Resource: "meters", Err: err}
	}
	readings, err := uc.water.ListReadings(ctx, buildingID, from, to)
	if err != nil {
		return nil, &domain.DataLoadError{Resource: "readings", Err: err}
	}

	occupants := water.OccupantsFromMeters(meters)
	if len(occupants) == 0 {
		owners, err := uc.owners.ListOwners(ctx, buildingID)
		if err != nil {
			return nil, &domain.DataLoadError{Resource: "owners", Err: err}
		}
		occupants = water.OccupantsFromOwners(owners)
	}

	res, err := water.Apportion(water.Input{
		Mode:             b.MeteringMode,
		From:             from,
		To:               to,
		Tariff:           tariff,
		Meters:           meters,
		Readings:         readings,
		Occupants:        occupants,
		AnomalyThreshold: uc.threshold,
	})
	if err != nil {
		return nil, err
	}
	for _, a := range res.Anomalies {
		uc.log.Warn().Str("building_id", buildingID).Msg(a)
	}
	return &res, nil
}
