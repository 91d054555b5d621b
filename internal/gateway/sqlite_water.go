package gateway

import (
	"context"
	"database/sql"
	"time"

	"copro-billing/internal/domain"
)

// SQLiteWaterRepository stores meters and their readings.
type SQLiteWaterRepository struct {
	db *sql.DB
}

// NewSQLiteWaterRepository creates a new repository instance.
func NewSQLiteWaterRepository(db *sql.DB) *SQLiteWaterRepository {
	return &SQLiteWaterRepository{db: db}
}

const meterColumns = "id, building_id, type, serial, location, owner_id, occupant, headcount"

func scanMeter(row scanner) (domain.Meter, error) {
	var m domain.Meter
	var owner sql.NullString
	if err := row.Scan(&m.ID, &m.BuildingID, &m.Type, &m.Serial, &m.Location, &owner, &m.Occupant, &m.Headcount); err != nil {
		return domain.Meter{}, err
	}
	m.OwnerID = stringPtr(owner)
	return m, nil
}

func (r *SQLiteWaterRepository) ListMeters(ctx context.Context, buildingID string) ([]domain.Meter, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+meterColumns+` FROM meters WHERE building_id = ? ORDER BY type DESC, location, id`, buildingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Meter
	for rows.Next() {
		m, err := scanMeter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *SQLiteWaterRepository) GetMeter(ctx context.Context, id string) (*domain.Meter, error) {
	m, err := scanMeter(r.db.QueryRowContext(ctx, `SELECT `+meterColumns+` FROM meters WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err, "meter", id)
	}
	return &m, nil
}

func (r *SQLiteWaterRepository) SaveMeter(ctx context.Context, m domain.Meter) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO meters(`+meterColumns+`)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 type = excluded.type, serial = excluded.serial, location = excluded.location,
	 owner_id = excluded.owner_id, occupant = excluded.occupant, headcount = excluded.headcount;
	`, m.ID, m.BuildingID, m.Type, m.Serial, m.Location, nullString(m.OwnerID), m.Occupant, m.Headcount)
	return err
}

const readingColumns = "r.id, r.meter_id, r.date, r.previous_index, r.current_index"

func scanReading(row scanner) (domain.Reading, error) {
	var rd domain.Reading
	if err := row.Scan(&rd.ID, &rd.MeterID, &rd.Date, &rd.PreviousIndex, &rd.CurrentIndex); err != nil {
		return domain.Reading{}, err
	}
	rd.Date = rd.Date.UTC()
	return rd, nil
}

// LastReading returns the most recent reading of a meter.
func (r *SQLiteWaterRepository) LastReading(ctx context.Context, meterID string) (*domain.Reading, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+readingColumns+` FROM readings r WHERE r.meter_id = ? ORDER BY r.date DESC, r.rowid DESC LIMIT 1`, meterID)
	rd, err := scanReading(row)
	if err != nil {
		return nil, notFound(err, "reading of meter", meterID)
	}
	return &rd, nil
}

func (r *SQLiteWaterRepository) InsertReading(ctx context.Context, rd domain.Reading) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO readings(id, meter_id, date, previous_index, current_index) VALUES(?, ?, ?, ?, ?)`,
		rd.ID, rd.MeterID, rd.Date, rd.PreviousIndex.String(), rd.CurrentIndex.String())
	return err
}

// ListReadings returns the readings of a building's meters dated within
// [from, to]. Zero bounds are open.
func (r *SQLiteWaterRepository) ListReadings(ctx context.Context, buildingID string, from, to time.Time) ([]domain.Reading, error) {
	query := `SELECT ` + readingColumns + ` FROM readings r JOIN meters m ON m.id = r.meter_id WHERE m.building_id = ?`
	args := []interface{}{buildingID}
	if !from.IsZero() {
		query += ` AND r.date >= ?`
		args = append(args, from)
	}
	if !to.IsZero() {
		query += ` AND r.date <= ?`
		args = append(args, to)
	}
	query += ` ORDER BY r.date, r.rowid`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Reading
	for rows.Next() {
		rd, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rd)
	}
	return out, rows.Err()
}
