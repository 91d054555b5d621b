package gateway

import (
	"context"
	"database/sql"

	"copro-billing/internal/database"
	"copro-billing/internal/domain"
)

// SQLiteExerciseRepository stores exercises with their soldes.
type SQLiteExerciseRepository struct {
	db *sql.DB
}

// NewSQLiteExerciseRepository creates a new repository instance.
func NewSQLiteExerciseRepository(db *sql.DB) *SQLiteExerciseRepository {
	return &SQLiteExerciseRepository{db: db}
}

const exerciseColumns = "id, building_id, year, start_date, end_date, status, total_charges, total_provisions, global_balance, closed_at"

func (r *SQLiteExerciseRepository) scanExercise(ctx context.Context, row scanner, key string) (*domain.Exercise, error) {
	var e domain.Exercise
	var closedAt sql.NullTime
	if err := row.Scan(&e.ID, &e.BuildingID, &e.Year, &e.StartDate, &e.EndDate, &e.Status,
		&e.TotalCharges, &e.TotalProvisions, &e.GlobalBalance, &closedAt); err != nil {
		return nil, notFound(err, "exercise", key)
	}
	e.StartDate = e.StartDate.UTC()
	e.EndDate = e.EndDate.UTC()
	e.ClosedAt = timePtr(closedAt)

	soldes, err := r.soldes(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	e.Soldes = soldes
	return &e, nil
}

func (r *SQLiteExerciseRepository) soldes(ctx context.Context, exerciseID string) ([]domain.Solde, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT s.owner_id, s.opening_balance, s.total_provisions, s.total_charges, s.adjustment, s.closing_balance
	FROM soldes s JOIN owners o ON o.id = s.owner_id
	WHERE s.exercise_id = ?
	ORDER BY o.last_name, o.first_name, s.owner_id
	`, exerciseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Solde
	for rows.Next() {
		var s domain.Solde
		if err := rows.Scan(&s.OwnerID, &s.OpeningBalance, &s.TotalProvisions, &s.TotalCharges, &s.Adjustment, &s.ClosingBalance); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteExerciseRepository) GetExercise(ctx context.Context, buildingID string, year int) (*domain.Exercise, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+exerciseColumns+` FROM exercises WHERE building_id = ? AND year = ?`, buildingID, year)
	return r.scanExercise(ctx, row, buildingID+"/"+itoa(year))
}

func (r *SQLiteExerciseRepository) GetExerciseByID(ctx context.Context, id string) (*domain.Exercise, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+exerciseColumns+` FROM exercises WHERE id = ?`, id)
	return r.scanExercise(ctx, row, id)
}

// SaveExercise upserts the exercise and replaces its soldes atomically.
func (r *SQLiteExerciseRepository) SaveExercise(ctx context.Context, e domain.Exercise) error {
	return database.WithTx(r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO exercises(`+exerciseColumns+`)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		 status = excluded.status, total_charges = excluded.total_charges,
		 total_provisions = excluded.total_provisions, global_balance = excluded.global_balance,
		 closed_at = excluded.closed_at;
		`, e.ID, e.BuildingID, e.Year, e.StartDate, e.EndDate, e.Status,
			e.TotalCharges.String(), e.TotalProvisions.String(), e.GlobalBalance.String(), nullTimePtr(e.ClosedAt))
		if err != nil {
			if isUniqueViolation(err) {
				return &domain.PreconditionFailedError{Reason: "exercise " + itoa(e.Year) + " already exists"}
			}
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM soldes WHERE exercise_id = ?`, e.ID); err != nil {
			return err
		}
		for _, s := range e.Soldes {
			_, err := tx.ExecContext(ctx, `
			INSERT INTO soldes(exercise_id, owner_id, opening_balance, total_provisions, total_charges, adjustment, closing_balance)
			VALUES(?, ?, ?, ?, ?, ?, ?);
			`, e.ID, s.OwnerID, s.OpeningBalance.String(), s.TotalProvisions.String(), s.TotalCharges.String(),
				s.Adjustment.String(), s.ClosingBalance.String())
			if err != nil {
				return err
			}
		}
		return nil
	})
}
