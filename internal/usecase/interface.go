package usecase

import (
	"context"
	"io"
	"time"

	"copro-billing/internal/domain"
)

// The usecase layer depends on these interfaces, not on a concrete store.
// Lookups of a single record return domain.ErrNotFound when it does not exist.
//
//go:generate mockgen -destination=mocks/mock_repository.go -package=mock_usecase -source=interface.go

// BuildingRepository stores buildings.
type BuildingRepository interface {
	GetBuilding(ctx context.Context, id string) (*domain.Building, error)
	SaveBuilding(ctx context.Context, b domain.Building) error
}

// OwnerRepository stores the owners of a building.
type OwnerRepository interface {
	ListOwners(ctx context.Context, buildingID string) ([]domain.Owner, error)
	GetOwner(ctx context.Context, id string) (*domain.Owner, error)
	SaveOwner(ctx context.Context, o domain.Owner) error
	DeleteOwner(ctx context.Context, id string) error
	OwnerReferenced(ctx context.Context, id string) (bool, error)
}

// TransactionRepository stores movements. A zero year lists every year.
type TransactionRepository interface {
	ListTransactions(ctx context.Context, buildingID string, year int) ([]domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	InsertTransaction(ctx context.Context, t domain.Transaction) error
	// InsertTransactions stores a batch atomically, skipping duplicates, and
	// returns the number inserted.
	InsertTransactions(ctx context.Context, txs []domain.Transaction) (int, error)
	UpdateTransaction(ctx context.Context, t domain.Transaction) error
}

// ExerciseRepository stores accounting exercises with their soldes.
type ExerciseRepository interface {
	GetExercise(ctx context.Context, buildingID string, year int) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, id string) (*domain.Exercise, error)
	SaveExercise(ctx context.Context, e domain.Exercise) error
}

// WaterRepository stores meters and their readings.
type WaterRepository interface {
	ListMeters(ctx context.Context, buildingID string) ([]domain.Meter, error)
	GetMeter(ctx context.Context, id string) (*domain.Meter, error)
	SaveMeter(ctx context.Context, meter domain.Meter) error
	LastReading(ctx context.Context, meterID string) (*domain.Reading, error)
	InsertReading(ctx context.Context, r domain.Reading) error
	ListReadings(ctx context.Context, buildingID string, from, to time.Time) ([]domain.Reading, error)
}

// StatementReader parses bank statement exports into lines.
type StatementReader interface {
	ReadStatement(ctx context.Context, format domain.StatementFormat, r io.Reader) ([]domain.StatementLine, error)
}
