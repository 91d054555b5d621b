// Package app wires the sqlite repositories into the use cases.
package app

import (
	"database/sql"

	"github.com/rs/zerolog"

	"copro-billing/internal/config"
	"copro-billing/internal/gateway"
	"copro-billing/internal/usecase"
)

// App holds every use case of the application.
type App struct {
	Buildings      *usecase.BuildingUseCase
	Owners         *usecase.OwnerUseCase
	Transactions   *usecase.TransactionUseCase
	Imports        *usecase.ImportUseCase
	Exercises      *usecase.ExerciseUseCase
	Reconciliation *usecase.ReconciliationUseCase
	Water          *usecase.WaterUseCase
}

// New builds the use cases over db. Migrations must already be applied.
func New(db *sql.DB, cfg config.Config, log zerolog.Logger) *App {
	buildings := gateway.NewSQLiteBuildingRepository(db)
	owners := gateway.NewSQLiteOwnerRepository(db)
	transactions := gateway.NewSQLiteTransactionRepository(db)
	exercises := gateway.NewSQLiteExerciseRepository(db)
	water := gateway.NewSQLiteWaterRepository(db)
	c := cfg.Classifier()

	reconciliation := usecase.NewReconciliationUseCase(transactions, owners, exercises, c, cfg.Billing.Currency, log)
	return &App{
		Buildings:      usecase.NewBuildingUseCase(buildings, cfg.Billing.DefaultShareTotal),
		Owners:         usecase.NewOwnerUseCase(buildings, owners),
		Transactions:   usecase.NewTransactionUseCase(transactions, owners, exercises),
		Imports:        usecase.NewImportUseCase(transactions, owners, exercises, gateway.NewCSVStatementReader(), c, log),
		Exercises:      usecase.NewExerciseUseCase(exercises, owners, reconciliation, log),
		Reconciliation: reconciliation,
		Water:          usecase.NewWaterUseCase(buildings, owners, water, cfg.Water.Threshold(), log),
	}
}
