package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"copro-billing/internal/domain"
)

// BuildingUseCase manages the buildings themselves.
type BuildingUseCase struct {
	buildings         BuildingRepository
	defaultShareTotal int
}

// NewBuildingUseCase creates a new instance of the usecase. A non-positive
// defaultShareTotal selects domain.DefaultShareTotal.
func NewBuildingUseCase(buildings BuildingRepository, defaultShareTotal int) *BuildingUseCase {
	if defaultShareTotal <= 0 {
		defaultShareTotal = domain.DefaultShareTotal
	}
	return &BuildingUseCase{buildings: buildings, defaultShareTotal: defaultShareTotal}
}

// Save creates or updates a building. Missing share total and metering mode
// get their defaults.
func (uc *BuildingUseCase) Save(ctx context.Context, b domain.Building) (*domain.Building, error) {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "name is required"}
	}
	if b.TotalShares == 0 {
		b.TotalShares = uc.defaultShareTotal
	}
	if b.TotalShares < 0 {
		return nil, &domain.ValidationError{Field: "total_shares", Reason: "must be positive"}
	}
	if b.MeteringMode == "" {
		b.MeteringMode = domain.MeteringCollective
	}
	if !b.MeteringMode.Valid() {
		return nil, &domain.ValidationError{Field: "metering_mode", Reason: fmt.Sprintf("unknown metering mode %q", b.MeteringMode)}
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if err := uc.buildings.SaveBuilding(ctx, b); err != nil {
		return nil, fmt.Errorf("could not save building: %w", err)
	}
	return &b, nil
}

// Get returns a building by id.
func (uc *BuildingUseCase) Get(ctx context.Context, id string) (*domain.Building, error) {
	return uc.buildings.GetBuilding(ctx, id)
}
