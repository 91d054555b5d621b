package gateway

import (
	"context"
	"database/sql"
	"fmt"

	"copro-billing/internal/domain"
)

// SQLiteBuildingRepository stores buildings and their owners.
type SQLiteBuildingRepository struct {
	db *sql.DB
}

// NewSQLiteBuildingRepository creates a new repository instance.
func NewSQLiteBuildingRepository(db *sql.DB) *SQLiteBuildingRepository {
	return &SQLiteBuildingRepository{db: db}
}

func (r *SQLiteBuildingRepository) GetBuilding(ctx context.Context, id string) (*domain.Building, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, address, total_shares, metering_mode FROM buildings WHERE id = ?`, id)
	var b domain.Building
	if err := row.Scan(&b.ID, &b.Name, &b.Address, &b.TotalShares, &b.MeteringMode); err != nil {
		return nil, notFound(err, "building", id)
	}
	return &b, nil
}

func (r *SQLiteBuildingRepository) SaveBuilding(ctx context.Context, b domain.Building) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO buildings(id, name, address, total_shares, metering_mode)
	VALUES(?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name = excluded.name, address = excluded.address,
	 total_shares = excluded.total_shares, metering_mode = excluded.metering_mode;
	`, b.ID, b.Name, b.Address, b.TotalShares, b.MeteringMode)
	return err
}

// SQLiteOwnerRepository stores owners.
type SQLiteOwnerRepository struct {
	db *sql.DB
}

// NewSQLiteOwnerRepository creates a new repository instance.
func NewSQLiteOwnerRepository(db *sql.DB) *SQLiteOwnerRepository {
	return &SQLiteOwnerRepository{db: db}
}

const ownerColumns = "id, building_id, last_name, first_name, email, phone, share_units"

func scanOwner(row scanner) (domain.Owner, error) {
	var o domain.Owner
	err := row.Scan(&o.ID, &o.BuildingID, &o.LastName, &o.FirstName, &o.Email, &o.Phone, &o.ShareUnits)
	return o, err
}

func (r *SQLiteOwnerRepository) ListOwners(ctx context.Context, buildingID string) ([]domain.Owner, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+ownerColumns+` FROM owners WHERE building_id = ? ORDER BY last_name, first_name, id`, buildingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Owner
	for rows.Next() {
		o, err := scanOwner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *SQLiteOwnerRepository) GetOwner(ctx context.Context, id string) (*domain.Owner, error) {
	o, err := scanOwner(r.db.QueryRowContext(ctx, `SELECT `+ownerColumns+` FROM owners WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err, "owner", id)
	}
	return &o, nil
}

func (r *SQLiteOwnerRepository) SaveOwner(ctx context.Context, o domain.Owner) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO owners(`+ownerColumns+`)
	VALUES(?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 last_name = excluded.last_name, first_name = excluded.first_name,
	 email = excluded.email, phone = excluded.phone, share_units = excluded.share_units;
	`, o.ID, o.BuildingID, o.LastName, o.FirstName, o.Email, o.Phone, o.ShareUnits)
	return err
}

func (r *SQLiteOwnerRepository) DeleteOwner(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM owners WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("owner %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// OwnerReferenced reports whether a transaction, meter or solde points at the owner.
func (r *SQLiteOwnerRepository) OwnerReferenced(ctx context.Context, id string) (bool, error) {
	var referenced bool
	err := r.db.QueryRowContext(ctx, `
	SELECT EXISTS (SELECT 1 FROM transactions WHERE owner_id = ?)
	    OR EXISTS (SELECT 1 FROM meters WHERE owner_id = ?)
	    OR EXISTS (SELECT 1 FROM soldes WHERE owner_id = ?)
	`, id, id, id).Scan(&referenced)
	return referenced, err
}
