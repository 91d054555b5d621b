package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"copro-billing/internal/domain"
)

// OwnerUseCase maintains the owners of a building and their share units.
type OwnerUseCase struct {
	buildings BuildingRepository
	owners    OwnerRepository
}

// NewOwnerUseCase creates a new instance of the usecase.
func NewOwnerUseCase(buildings BuildingRepository, owners OwnerRepository) *OwnerUseCase {
	return &OwnerUseCase{buildings: buildings, owners: owners}
}

// List returns the owners of a building.
func (uc *OwnerUseCase) List(ctx context.Context, buildingID string) ([]domain.Owner, error) {
	owners, err := uc.owners.ListOwners(ctx, buildingID)
	if err != nil {
		return nil, fmt.Errorf("could not list owners: %w", err)
	}
	return owners, nil
}

// Save creates or updates an owner of buildingID.
func (uc *OwnerUseCase) Save(ctx context.Context, buildingID string, o domain.Owner) (*domain.Owner, error) {
	if _, err := uc.buildings.GetBuilding(ctx, buildingID); err != nil {
		return nil, err
	}
	o.LastName = strings.TrimSpace(o.LastName)
	o.FirstName = strings.TrimSpace(o.FirstName)

	var errs domain.ValidationErrors
	if o.LastName == "" {
		errs = append(errs, &domain.ValidationError{Field: "last_name", Reason: "last name is required"})
	}
	if o.ShareUnits < 0 {
		errs = append(errs, &domain.ValidationError{Field: "share_units", Reason: "share units cannot be negative"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	if o.ID == "" {
		o.ID = uuid.NewString()
	} else {
		current, err := uc.owners.GetOwner(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		if current.BuildingID != buildingID {
			return nil, fmt.Errorf("owner %s: %w", o.ID, domain.ErrNotFound)
		}
	}
	o.BuildingID = buildingID
	if err := uc.owners.SaveOwner(ctx, o); err != nil {
		return nil, fmt.Errorf("could not save owner: %w", err)
	}
	return &o, nil
}

// Delete removes an owner that no transaction or meter references.
func (uc *OwnerUseCase) Delete(ctx context.Context, buildingID, ownerID string) error {
	o, err := uc.owners.GetOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	if o.BuildingID != buildingID {
		return fmt.Errorf("owner %s: %w", ownerID, domain.ErrNotFound)
	}
	referenced, err := uc.owners.OwnerReferenced(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("could not check owner references: %w", err)
	}
	if referenced {
		return &domain.PreconditionFailedError{Reason: fmt.Sprintf("owner %s is referenced by transactions, meters or soldes", o.DisplayName())}
	}
	return uc.owners.DeleteOwner(ctx, ownerID)
}

// CheckShareTotal compares the owners' share units with the building total.
func (uc *OwnerUseCase) CheckShareTotal(ctx context.Context, buildingID string) (domain.ShareCheck, error) {
	b, err := uc.buildings.GetBuilding(ctx, buildingID)
	if err != nil {
		return domain.ShareCheck{}, err
	}
	owners, err := uc.owners.ListOwners(ctx, buildingID)
	if err != nil {
		return domain.ShareCheck{}, fmt.Errorf("could not list owners: %w", err)
	}
	return domain.CheckShares(*b, owners), nil
}
