package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"copro-billing/internal/domain"
)

// TransactionUseCase covers manual entry and editing of ledger movements.
type TransactionUseCase struct {
	transactions TransactionRepository
	owners       OwnerRepository
	exercises    ExerciseRepository
	now          func() time.Time
}

// NewTransactionUseCase creates a new instance of the usecase.
func NewTransactionUseCase(transactions TransactionRepository, owners OwnerRepository, exercises ExerciseRepository) *TransactionUseCase {
	return &TransactionUseCase{
		transactions: transactions,
		owners:       owners,
		exercises:    exercises,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// List returns the transactions of a building whose effective date falls in
// year. A zero year returns all of them.
func (uc *TransactionUseCase) List(ctx context.Context, buildingID string, year int) ([]domain.Transaction, error) {
	txs, err := uc.transactions.ListTransactions(ctx, buildingID, 0)
	if err != nil {
		return nil, fmt.Errorf("could not list transactions: %w", err)
	}
	if year == 0 {
		return txs, nil
	}
	out := make([]domain.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.InYear(year) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Create records a manual transaction. A missing type is derived from the
// sign of the amount; a charge entered as a positive amount is stored negative.
func (uc *TransactionUseCase) Create(ctx context.Context, buildingID string, t domain.Transaction) (*domain.Transaction, error) {
	var errs domain.ValidationErrors
	if t.Amount.IsZero() {
		errs = append(errs, &domain.ValidationError{Field: "amount", Reason: "amount must not be zero"})
	}
	if t.Date.IsZero() && (t.PostingDate == nil || t.PostingDate.IsZero()) {
		errs = append(errs, &domain.ValidationError{Field: "date", Reason: "date is required"})
	}
	if t.Type == "" {
		t.Type = domain.TransactionTypeDeposit
		if t.Amount.IsNegative() {
			t.Type = domain.TransactionTypeCharge
		}
	}
	if !t.Type.Valid() {
		errs = append(errs, &domain.ValidationError{Field: "type", Reason: fmt.Sprintf("unknown transaction type %q", t.Type)})
	}
	if len(errs) > 0 {
		return nil, errs
	}
	if t.IsCharge() && t.Amount.IsPositive() {
		t.Amount = t.Amount.Neg()
	}
	if err := uc.checkOwner(ctx, buildingID, t.OwnerID); err != nil {
		return nil, err
	}
	if err := ensureYearOpen(ctx, uc.exercises, buildingID, t.EffectiveDate().Year()); err != nil {
		return nil, err
	}

	t.ID = uuid.NewString()
	t.BuildingID = buildingID
	t.CreatedAt = uc.now()
	t.Source = domain.SourceManual
	t.Description = strings.TrimSpace(t.Description)
	if err := uc.transactions.InsertTransaction(ctx, t); err != nil {
		return nil, fmt.Errorf("could not save transaction: %w", err)
	}
	return &t, nil
}

// Update edits the description, category or owner of a transaction. Only the
// category of a transaction dated in a settled exercise may change.
func (uc *TransactionUseCase) Update(ctx context.Context, buildingID, id string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	t, err := uc.transactions.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.BuildingID != buildingID {
		return nil, fmt.Errorf("transaction %s: %w", id, domain.ErrNotFound)
	}
	if !patch.ClearOwner {
		if err := uc.checkOwner(ctx, buildingID, patch.OwnerID); err != nil {
			return nil, err
		}
	}
	if patch.ClearOwner || patch.OwnerID != nil || patch.Description != nil {
		if err := ensureYearOpen(ctx, uc.exercises, buildingID, t.EffectiveDate().Year()); err != nil {
			return nil, err
		}
	}
	updated := patch.Apply(*t)
	if err := uc.transactions.UpdateTransaction(ctx, updated); err != nil {
		return nil, fmt.Errorf("could not update transaction: %w", err)
	}
	return &updated, nil
}

func (uc *TransactionUseCase) checkOwner(ctx context.Context, buildingID string, ownerID *string) error {
	if ownerID == nil || *ownerID == "" {
		return nil
	}
	o, err := uc.owners.GetOwner(ctx, *ownerID)
	if err != nil {
		return &domain.ValidationError{Field: "owner_id", Reason: fmt.Sprintf("owner %s: %v", *ownerID, err)}
	}
	if o.BuildingID != buildingID {
		return &domain.ValidationError{Field: "owner_id", Reason: fmt.Sprintf("owner %s does not belong to building %s", *ownerID, buildingID)}
	}
	return nil
}

// ensureYearOpen fails with a precondition error when the exercise of year is
// closed or archived. A year without exercise is open.
func ensureYearOpen(ctx context.Context, exercises ExerciseRepository, buildingID string, year int) error {
	ex, err := exercises.GetExercise(ctx, buildingID, year)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return &domain.DataLoadError{Resource: fmt.Sprintf("exercise %d", year), Err: err}
	}
	if ex.Status.Settled() {
		return &domain.PreconditionFailedError{Reason: fmt.Sprintf("exercise %d is %s", year, ex.Status)}
	}
	return nil
}
