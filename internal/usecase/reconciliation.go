package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"copro-billing/internal/classifier"
	"copro-billing/internal/domain"
	"copro-billing/internal/reconcile"
)

// ReconciliationUseCase produces annual statements from the stored feeds.
type ReconciliationUseCase struct {
	transactions TransactionRepository
	owners       OwnerRepository
	exercises    ExerciseRepository
	classifier   *classifier.Classifier
	currency     string
	log          zerolog.Logger
}

// NewReconciliationUseCase creates a new instance of the usecase. Building
// reports are labelled with currency.
func NewReconciliationUseCase(transactions TransactionRepository, owners OwnerRepository, exercises ExerciseRepository, c *classifier.Classifier, currency string, log zerolog.Logger) *ReconciliationUseCase {
	if c == nil {
		c = classifier.New(nil, nil)
	}
	return &ReconciliationUseCase{
		transactions: transactions,
		owners:       owners,
		exercises:    exercises,
		classifier:   c,
		currency:     currency,
		log:          log,
	}
}

// feeds is what every statement computation loads first.
type feeds struct {
	transactions []domain.Transaction
	owners       []domain.Owner
	prior        *domain.Exercise
	current      *domain.Exercise
}

func (uc *ReconciliationUseCase) load(ctx context.Context, buildingID string, year int) (*feeds, error) {
	// Transactions of every year: the engine filters on the effective date,
	// which the store cannot index.
	txs, err := uc.transactions.ListTransactions(ctx, buildingID, 0)
	if err != nil {
		return nil, &domain.DataLoadError{Resource: "transactions", Err: err}
	}
	owners, err := uc.owners.ListOwners(ctx, buildingID)
	if err != nil {
		return nil, &domain.DataLoadError{Resource: "owners", Err: err}
	}
	prior, err := uc.optionalExercise(ctx, buildingID, year-1)
	if err != nil {
		return nil, err
	}
	current, err := uc.optionalExercise(ctx, buildingID, year)
	if err != nil {
		return nil, err
	}
	return &feeds{transactions: txs, owners: owners, prior: prior, current: current}, nil
}

func (uc *ReconciliationUseCase) optionalExercise(ctx context.Context, buildingID string, year int) (*domain.Exercise, error) {
	ex, err := uc.exercises.GetExercise(ctx, buildingID, year)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.DataLoadError{Resource: fmt.Sprintf("exercise %d", year), Err: err}
	}
	return ex, nil
}

// OwnerStatement computes the décompte annuel of one owner. The opening
// balance is carried forward from the prior exercise when it is closed.
func (uc *ReconciliationUseCase) OwnerStatement(ctx context.Context, buildingID string, year int, ownerID string) (*domain.AnnualStatement, error) {
	// Step 1: Data Ingestion
	f, err := uc.load(ctx, buildingID, year)
	if err != nil {
		return nil, fmt.Errorf("could not load statement feeds: %w", err)
	}

	// Step 2: Computation
	st, err := reconcile.ComputeStatement(reconcile.StatementInput{
		BuildingID:     buildingID,
		Year:           year,
		Transactions:   f.transactions,
		Owners:         f.owners,
		OwnerID:        ownerID,
		OpeningBalance: domain.CarriedForward(f.prior, ownerID),
		Adjustment:     reconcile.Adjustments(f.current)[ownerID],
		Classifier:     uc.classifier,
	})
	if err != nil {
		return nil, err
	}

	uc.logWarnings(buildingID, year, st.Warnings)
	return &st, nil
}

// BuildingStatements computes every owner's statement and the summary.
func (uc *ReconciliationUseCase) BuildingStatements(ctx context.Context, buildingID string, year int) (*domain.BuildingReport, error) {
	f, err := uc.load(ctx, buildingID, year)
	if err != nil {
		return nil, fmt.Errorf("could not load statement feeds: %w", err)
	}
	report, err := uc.compute(buildingID, year, f)
	if err != nil {
		return nil, err
	}
	report.Summary.Currency = uc.currency
	return &report, nil
}

func (uc *ReconciliationUseCase) compute(buildingID string, year int, f *feeds) (domain.BuildingReport, error) {
	report, err := reconcile.ComputeBuilding(reconcile.BuildingInput{
		BuildingID:   buildingID,
		Year:         year,
		Transactions: f.transactions,
		Owners:       f.owners,
		Openings:     reconcile.Openings(f.prior, f.owners),
		Adjustments:  reconcile.Adjustments(f.current),
		Classifier:   uc.classifier,
	})
	if err != nil {
		return domain.BuildingReport{}, err
	}
	uc.logWarnings(buildingID, year, report.Summary.Warnings)
	return report, nil
}

func (uc *ReconciliationUseCase) logWarnings(buildingID string, year int, warnings []domain.AttributionWarning) {
	for _, w := range warnings {
		uc.log.Warn().
			Str("building_id", buildingID).
			Int("year", year).
			Str("transaction_id", w.TransactionID).
			Strs("candidates", w.Candidates).
			Msg("ambiguous deposit attribution, left unattributed")
	}
}
