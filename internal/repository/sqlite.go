package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mr1hm/go-balloon-watch/internal/geo"
	"github.com/mr1hm/go-balloon-watch/internal/models"
)

// SQLiteDB holds the latest derived entity sets. The default DSN is an
// in-memory database: the store exists to serve the API between refresh
// cycles, not to persist anything across runs.
type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// A shared-cache in-memory database vanishes when its last connection
	// closes; one connection keeps it alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS positions (
			seq INTEGER NOT NULL,
			id TEXT PRIMARY KEY,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			altitude REAL,
			hour_index INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS advisories (
			seq INTEGER NOT NULL,
			id TEXT PRIMARY KEY,
			event TEXT,
			headline TEXT,
			description TEXT,
			area_desc TEXT,
			severity TEXT,
			urgency TEXT,
			onset DATETIME,
			expires DATETIME,
			tier TEXT NOT NULL,
			color TEXT NOT NULL,
			geometry TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_positions_seq ON positions(seq);
		CREATE INDEX IF NOT EXISTS idx_advisories_seq ON advisories(seq);
		CREATE INDEX IF NOT EXISTS idx_advisories_tier ON advisories(tier);
  	`

	_, err := s.db.Exec(schema)
	return err
}

// ReplacePositions swaps the stored position set for the given one in a
// single transaction. The slice order (merge insertion order) is recorded
// in seq so lists come back in the same order.
func (s *SQLiteDB) ReplacePositions(ctx context.Context, positions []models.Position) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM positions`); err != nil {
		return fmt.Errorf("error clearing positions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO positions (seq, id, latitude, longitude, altitude, hour_index)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("error preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range positions {
		var alt sql.NullFloat64
		if p.Altitude != nil {
			alt = sql.NullFloat64{Float64: *p.Altitude, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, i, p.ID, p.Latitude, p.Longitude, alt, p.HourIndex); err != nil {
			return fmt.Errorf("error inserting position %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteDB) ListPositions(ctx context.Context, opts Filter) ([]models.Position, error) {
	query := `SELECT id, latitude, longitude, altitude, hour_index FROM positions ORDER BY seq`
	args := []any{}
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing positions: %w", err)
	}
	defer rows.Close()

	var positions []models.Position
	for rows.Next() {
		var (
			p   models.Position
			alt sql.NullFloat64
		)
		if err := rows.Scan(&p.ID, &p.Latitude, &p.Longitude, &alt, &p.HourIndex); err != nil {
			return nil, fmt.Errorf("error scanning position: %w", err)
		}
		if alt.Valid {
			v := alt.Float64
			p.Altitude = &v
		}
		positions = append(positions, p)
	}

	return positions, rows.Err()
}

// ReplaceAdvisories swaps the stored advisory set, preserving the ranked
// order the classifier produced.
func (s *SQLiteDB) ReplaceAdvisories(ctx context.Context, advisories []models.Advisory) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM advisories`); err != nil {
		return fmt.Errorf("error clearing advisories: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO advisories (seq, id, event, headline, description, area_desc,
			severity, urgency, onset, expires, tier, color, geometry)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("error preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, a := range advisories {
		geom, err := json.Marshal(a.Geometry)
		if err != nil {
			return fmt.Errorf("error encoding geometry for %s: %w", a.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, i, a.ID, a.Event, a.Headline, a.Description,
			a.AreaDesc, a.Severity, a.Urgency, timeOrNil(a.Onset), timeOrNil(a.Expires), string(a.Tier),
			a.Color, string(geom)); err != nil {
			return fmt.Errorf("error inserting advisory %s: %w", a.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteDB) ListAdvisories(ctx context.Context, opts Filter) ([]models.Advisory, error) {
	query := `SELECT id, event, headline, description, area_desc, severity, urgency,
		onset, expires, tier, color, geometry FROM advisories`
	args := []any{}
	if opts.Tier != nil {
		query += ` WHERE tier = ?`
		args = append(args, string(*opts.Tier))
	}
	query += ` ORDER BY seq`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing advisories: %w", err)
	}
	defer rows.Close()

	var advisories []models.Advisory
	for rows.Next() {
		a, err := scanAdvisory(rows)
		if err != nil {
			return nil, err
		}
		advisories = append(advisories, a)
	}

	return advisories, rows.Err()
}

func (s *SQLiteDB) GetAdvisory(ctx context.Context, id string) (*models.Advisory, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, event, headline, description,
		area_desc, severity, urgency, onset, expires, tier, color, geometry
		FROM advisories WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("error getting advisory: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	a, err := scanAdvisory(rows)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanAdvisory(rows *sql.Rows) (models.Advisory, error) {
	var (
		a              models.Advisory
		tier, geomJSON string
		onset, expires sql.NullTime
	)
	if err := rows.Scan(&a.ID, &a.Event, &a.Headline, &a.Description, &a.AreaDesc,
		&a.Severity, &a.Urgency, &onset, &expires, &tier, &a.Color, &geomJSON); err != nil {
		return models.Advisory{}, fmt.Errorf("error scanning advisory: %w", err)
	}
	a.Tier = models.Tier(tier)
	if onset.Valid {
		a.Onset = onset.Time
	}
	if expires.Valid {
		a.Expires = expires.Time
	}

	var g geo.Geometry
	if err := json.Unmarshal([]byte(geomJSON), &g); err != nil {
		return models.Advisory{}, fmt.Errorf("error decoding geometry: %w", err)
	}
	a.Geometry = g

	return a, nil
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// timeOrNil avoids storing the zero time as a bogus DATETIME value.
func timeOrNil(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
