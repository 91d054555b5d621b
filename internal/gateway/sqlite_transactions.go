package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"copro-billing/internal/database"
	"copro-billing/internal/domain"
)

// SQLiteTransactionRepository stores ledger movements.
type SQLiteTransactionRepository struct {
	db *sql.DB
}

// NewSQLiteTransactionRepository creates a new repository instance.
func NewSQLiteTransactionRepository(db *sql.DB) *SQLiteTransactionRepository {
	return &SQLiteTransactionRepository{db: db}
}

const transactionColumns = "id, building_id, date, posting_date, created_at, amount, type, description, counterparty, owner_id, category, source, import_hash"

func scanTransaction(row scanner) (domain.Transaction, error) {
	var t domain.Transaction
	var date, posted sql.NullTime
	var owner, hash sql.NullString
	if err := row.Scan(&t.ID, &t.BuildingID, &date, &posted, &t.CreatedAt, &t.Amount, &t.Type,
		&t.Description, &t.Counterparty, &owner, &t.Category, &t.Source, &hash); err != nil {
		return domain.Transaction{}, err
	}
	if date.Valid {
		t.Date = date.Time.UTC()
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.PostingDate = timePtr(posted)
	t.OwnerID = stringPtr(owner)
	if hash.Valid {
		t.ImportHash = hash.String
	}
	return t, nil
}

// ListTransactions returns the movements of a building ordered by date. A
// non-zero year keeps those whose effective date falls in it.
func (r *SQLiteTransactionRepository) ListTransactions(ctx context.Context, buildingID string, year int) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE building_id = ?`
	args := []interface{}{buildingID}
	if year != 0 {
		query += ` AND CAST(substr(COALESCE(date, posting_date, created_at), 1, 4) AS INTEGER) = ?`
		args = append(args, year)
	}
	query += ` ORDER BY COALESCE(date, posting_date, created_at), created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteTransactionRepository) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	t, err := scanTransaction(r.db.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err, "transaction", id)
	}
	return &t, nil
}

// InsertTransaction returns domain.ErrDuplicate when the id or import hash is
// already stored.
func (r *SQLiteTransactionRepository) InsertTransaction(ctx context.Context, t domain.Transaction) error {
	return insertTransaction(ctx, r.db, t)
}

// InsertTransactions stores txs in a single transaction and returns how many
// were inserted. Duplicates are skipped; any other failure rolls back the batch.
func (r *SQLiteTransactionRepository) InsertTransactions(ctx context.Context, txs []domain.Transaction) (int, error) {
	inserted := 0
	err := database.WithTx(r.db, func(tx *sql.Tx) error {
		for _, t := range txs {
			err := insertTransaction(ctx, tx, t)
			if errors.Is(err, domain.ErrDuplicate) {
				continue
			}
			if err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertTransaction(ctx context.Context, db execer, t domain.Transaction) error {
	var hash sql.NullString
	if t.ImportHash != "" {
		hash = sql.NullString{String: t.ImportHash, Valid: true}
	}
	_, err := db.ExecContext(ctx, `
	INSERT INTO transactions(`+transactionColumns+`)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		t.ID, t.BuildingID, nullTime(t.Date), nullTimePtr(t.PostingDate), t.CreatedAt, t.Amount.String(), t.Type,
		t.Description, t.Counterparty, nullString(t.OwnerID), t.Category, t.Source, hash)
	if isUniqueViolation(err) {
		return fmt.Errorf("transaction %s: %w", t.ID, domain.ErrDuplicate)
	}
	return err
}

// UpdateTransaction rewrites the editable fields of a transaction.
func (r *SQLiteTransactionRepository) UpdateTransaction(ctx context.Context, t domain.Transaction) error {
	res, err := r.db.ExecContext(ctx, `UPDATE transactions SET description = ?, category = ?, owner_id = ? WHERE id = ?`,
		t.Description, t.Category, nullString(t.OwnerID), t.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("transaction %s: %w", t.ID, domain.ErrNotFound)
	}
	return nil
}
