package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"meetup-point-service/internal/platform/db"
	"os"
	"strings"
)

var sqliteSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lat REAL NOT NULL,
        lng REAL NOT NULL
    );
	`,
	`
	CREATE TABLE IF NOT EXISTS meetups (
		meetup_id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		keyword TEXT NOT NULL,
		created_at_ns INTEGER NOT NULL,
		payload TEXT NOT NULL
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_meetups_created
    ON meetups(created_at_ns);
	`,
}

var postgresSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lat DOUBLE PRECISION NOT NULL,
        lng DOUBLE PRECISION NOT NULL
    );
	`,
	`
	CREATE TABLE IF NOT EXISTS meetups (
		meetup_id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		keyword TEXT NOT NULL,
		created_at_ns BIGINT NOT NULL,
		payload TEXT NOT NULL
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_meetups_created
    ON meetups(created_at_ns);
	`,
}

// Initialize the database schema for the given driver (db.DriverSQLite or db.DriverPostgres).
func InitSchema(ctx context.Context, conn *sql.DB, driver string) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	var statements []string
	switch driver {
	case db.DriverSQLite:
		statements = sqliteSchema
	case db.DriverPostgres:
		statements = postgresSchema
	default:
		return fmt.Errorf("init schema: unsupported driver %q", driver)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type GeocodeSeed struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Pre-populate the geocode cache from a JSON file of known addresses.
func SeedGeocodesFromJSON(ctx context.Context, conn *sql.DB, driver, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed geocodes: read %q: %w", jsonPath, err)
	}

	var data []GeocodeSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed geocodes: parse json: %w", err)
	}

	rows := make([]GeocodeSeed, 0, len(data))
	for i, item := range data {
		addr := strings.Join(strings.Fields(item.Address), " ")
		if addr == "" {
			return 0, fmt.Errorf("seed geocodes: item at index %d: address cannot be empty", i+1)
		}
		if item.Lat < -90 || item.Lat > 90 || item.Lng < -180 || item.Lng > 180 {
			return 0, fmt.Errorf("seed geocodes: item at index %d: coordinate out of range", i+1)
		}
		rows = append(rows, GeocodeSeed{Address: addr, Lat: item.Lat, Lng: item.Lng})
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed geocodes: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := rebind(driver, `
	INSERT INTO geocode_cache (address, lat, lng)
	VALUES (?, ?, ?)
	ON CONFLICT (address) DO UPDATE
	SET lat = EXCLUDED.lat,
		lng = EXCLUDED.lng;
	`)
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("seed geocodes: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.Address, r.Lat, r.Lng); err != nil {
			return 0, fmt.Errorf("seed geocodes: insert %q: %w", r.Address, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed geocodes: commit tx: %w", err)
	}

	return len(rows), nil
}

// rebind rewrites "?" placeholders to "$n" for Postgres.
func rebind(driver, query string) string {
	if driver != db.DriverPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
