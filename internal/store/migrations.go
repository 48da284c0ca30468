package store

import (
	"database/sql"
	"fmt"
	"log"
	"time"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "Initial warehouse schema",
		SQL: `
CREATE TABLE IF NOT EXISTS assets (
    asset_id TEXT PRIMARY KEY,
    capacity_mw REAL NOT NULL,
    asset_type TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS raw_weather (
    asset_id TEXT NOT NULL,
    timestamp DATETIME NOT NULL,
    wind_speed_mps REAL,
    wind_direction_deg REAL,
    ghi REAL,
    temperature_c REAL,
    pressure_hpa REAL,
    relative_humidity REAL,
    loaded_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (asset_id, timestamp)
);

CREATE TABLE IF NOT EXISTS raw_generation (
    asset_id TEXT NOT NULL,
    timestamp DATETIME NOT NULL,
    gross_generation_mwh REAL,
    net_generation_mwh REAL,
    curtailment_mwh REAL,
    availability_pct REAL,
    asset_capacity_mw REAL,
    loaded_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (asset_id, timestamp)
);

CREATE INDEX IF NOT EXISTS idx_raw_weather_ts ON raw_weather(timestamp);
CREATE INDEX IF NOT EXISTS idx_raw_generation_ts ON raw_generation(timestamp);
`,
	},
	{
		Version:     2,
		Description: "Daily per-asset mart summaries",
		SQL: `
CREATE TABLE IF NOT EXISTS daily_asset_summaries (
    date DATE NOT NULL,
    asset_id TEXT NOT NULL,
    gross_mwh REAL,
    net_mwh REAL,
    curtailment_mwh REAL,
    availability_avg REAL,
    capacity_mw REAL,
    capacity_factor REAL,
    PRIMARY KEY (date, asset_id)
);
`,
	},
}

func (s *Store) Migrate() error {
	if err := s.ensureMigrationsTable(); err != nil {
		return fmt.Errorf("ensure migrations table: %w", err)
	}

	applied, err := s.getAppliedMigrations()
	if err != nil {
		return fmt.Errorf("get applied migrations: %w", err)
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}

		log.Printf("migrations: applying %d - %s", m.Version, m.Description)

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("begin tx for migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)",
			m.Version, m.Description, time.Now().UTC(),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

func (s *Store) ensureMigrationsTable() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT,
			applied_at DATETIME
		)
	`)
	return err
}

func (s *Store) getAppliedMigrations() (map[int]bool, error) {
	rows, err := s.db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func (s *Store) MigrationVersion() (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, err
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}
