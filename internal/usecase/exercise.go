package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"copro-billing/internal/domain"
	"copro-billing/internal/reconcile"
)

// ExerciseUseCase drives the draft → open → closed → archived lifecycle.
type ExerciseUseCase struct {
	exercises      ExerciseRepository
	owners         OwnerRepository
	reconciliation *ReconciliationUseCase
	log            zerolog.Logger
	now            func() time.Time
}

// NewExerciseUseCase creates a new instance of the usecase.
func NewExerciseUseCase(exercises ExerciseRepository, owners OwnerRepository, reconciliation *ReconciliationUseCase, log zerolog.Logger) *ExerciseUseCase {
	return &ExerciseUseCase{
		exercises:      exercises,
		owners:         owners,
		reconciliation: reconciliation,
		log:            log,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Create registers a draft exercise covering the calendar year.
func (uc *ExerciseUseCase) Create(ctx context.Context, buildingID string, year int) (*domain.Exercise, error) {
	if year < 1900 || year > 9999 {
		return nil, &domain.ValidationError{Field: "year", Reason: fmt.Sprintf("invalid year %d", year)}
	}
	existing, err := uc.exercises.GetExercise(ctx, buildingID, year)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("could not check existing exercise: %w", err)
	}
	if existing != nil {
		return nil, &domain.PreconditionFailedError{Reason: fmt.Sprintf("exercise %d already exists", year)}
	}

	ex := domain.Exercise{
		ID:              uuid.NewString(),
		BuildingID:      buildingID,
		Year:            year,
		StartDate:       time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		Status:          domain.ExerciseDraft,
		TotalCharges:    decimal.Zero,
		TotalProvisions: decimal.Zero,
		GlobalBalance:   decimal.Zero,
	}
	if err := uc.exercises.SaveExercise(ctx, ex); err != nil {
		return nil, fmt.Errorf("could not save exercise: %w", err)
	}
	return &ex, nil
}

// Get returns the exercise of a year. Soldes of an exercise that is not yet
// closed are computed on the fly and not persisted.
func (uc *ExerciseUseCase) Get(ctx context.Context, buildingID string, year int) (*domain.Exercise, error) {
	ex, err := uc.exercises.GetExercise(ctx, buildingID, year)
	if err != nil {
		return nil, err
	}
	if ex.Status.Settled() {
		return ex, nil
	}
	f, err := uc.reconciliation.load(ctx, buildingID, year)
	if err != nil {
		return nil, fmt.Errorf("could not load statement feeds: %w", err)
	}
	report, err := uc.reconciliation.compute(buildingID, year, f)
	if err != nil {
		return nil, err
	}
	provisional := reconcile.Settle(*ex, report)
	return &provisional, nil
}

func (uc *ExerciseUseCase) get(ctx context.Context, buildingID, exerciseID string) (*domain.Exercise, error) {
	ex, err := uc.exercises.GetExerciseByID(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	if ex.BuildingID != buildingID {
		return nil, fmt.Errorf("exercise %s: %w", exerciseID, domain.ErrNotFound)
	}
	return ex, nil
}

func (uc *ExerciseUseCase) transition(ctx context.Context, buildingID, exerciseID string, from, to domain.ExerciseStatus) (*domain.Exercise, error) {
	ex, err := uc.get(ctx, buildingID, exerciseID)
	if err != nil {
		return nil, err
	}
	if ex.Status != from {
		return nil, &domain.PreconditionFailedError{Reason: fmt.Sprintf("exercise %d is %s, expected %s", ex.Year, ex.Status, from)}
	}
	ex.Status = to
	if err := uc.exercises.SaveExercise(ctx, *ex); err != nil {
		return nil, fmt.Errorf("could not save exercise: %w", err)
	}
	return ex, nil
}

// Open moves a draft exercise to open.
func (uc *ExerciseUseCase) Open(ctx context.Context, buildingID, exerciseID string) (*domain.Exercise, error) {
	return uc.transition(ctx, buildingID, exerciseID, domain.ExerciseDraft, domain.ExerciseOpen)
}

// Archive moves a closed exercise to archived.
func (uc *ExerciseUseCase) Archive(ctx context.Context, buildingID, exerciseID string) (*domain.Exercise, error) {
	return uc.transition(ctx, buildingID, exerciseID, domain.ExerciseClosed, domain.ExerciseArchived)
}

// Close settles an open exercise. confirmation must be exactly
// "CLOTURER <year>". The prior exercise, when it exists, must already be
// settled so its closing balances can be carried forward.
func (uc *ExerciseUseCase) Close(ctx context.Context, buildingID, exerciseID, confirmation string) (*domain.Exercise, error) {
	ex, err := uc.get(ctx, buildingID, exerciseID)
	if err != nil {
		return nil, err
	}
	if ex.Status != domain.ExerciseOpen {
		return nil, &domain.PreconditionFailedError{Reason: fmt.Sprintf("exercise %d is %s, only an open exercise can be closed", ex.Year, ex.Status)}
	}
	if want := domain.ClosureConfirmation(ex.Year); confirmation != want {
		return nil, &domain.PreconditionFailedError{Reason: fmt.Sprintf("confirmation must be exactly %q", want), Err: domain.ErrConfirmationMismatch}
	}

	f, err := uc.reconciliation.load(ctx, buildingID, ex.Year)
	if err != nil {
		return nil, fmt.Errorf("could not load statement feeds: %w", err)
	}
	if f.prior != nil && !f.prior.Status.Settled() {
		return nil, &domain.PreconditionFailedError{Reason: fmt.Sprintf("exercise %d must be closed first", f.prior.Year)}
	}
	f.current = ex
	report, err := uc.reconciliation.compute(buildingID, ex.Year, f)
	if err != nil {
		return nil, err
	}

	closed := reconcile.Settle(*ex, report)
	closed.Status = domain.ExerciseClosed
	closedAt := uc.now()
	closed.ClosedAt = &closedAt
	if err := uc.exercises.SaveExercise(ctx, closed); err != nil {
		return nil, fmt.Errorf("could not save closed exercise: %w", err)
	}

	uc.log.Info().
		Str("building_id", buildingID).
		Int("year", closed.Year).
		Str("global_balance", domain.FormatAmount(closed.GlobalBalance)).
		Int("debtors", report.Summary.DebtorCount).
		Msg("exercise closed")
	return &closed, nil
}

// SetAdjustment records a manual adjustment on an owner's solde. Settled
// exercises are immutable.
func (uc *ExerciseUseCase) SetAdjustment(ctx context.Context, buildingID, exerciseID, ownerID string, amount decimal.Decimal) (*domain.Exercise, error) {
	ex, err := uc.get(ctx, buildingID, exerciseID)
	if err != nil {
		return nil, err
	}
	if ex.Status.Settled() {
		return nil, &domain.PreconditionFailedError{Reason: fmt.Sprintf("exercise %d is %s", ex.Year, ex.Status)}
	}
	owner, err := uc.owners.GetOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner.BuildingID != buildingID {
		return nil, fmt.Errorf("owner %s: %w", ownerID, domain.ErrNotFound)
	}

	updated := false
	for i := range ex.Soldes {
		if ex.Soldes[i].OwnerID == ownerID {
			ex.Soldes[i].Adjustment = amount
			updated = true
		}
	}
	if !updated {
		ex.Soldes = append(ex.Soldes, domain.Solde{OwnerID: ownerID, Adjustment: amount})
	}
	if err := uc.exercises.SaveExercise(ctx, *ex); err != nil {
		return nil, fmt.Errorf("could not save exercise: %w", err)
	}
	return ex, nil
}
