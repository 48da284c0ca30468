// Package store is the local SQLite warehouse. Raw tables carry the Parquet
// column contract with (asset_id, timestamp) as the merge key, so reloading a
// partition updates rows in place instead of duplicating them.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/renewgrid/renewperf/internal/models"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) UpsertAssets(assets []models.Asset) error {
	for _, a := range assets {
		_, err := s.db.Exec(`
			INSERT INTO assets (asset_id, capacity_mw, asset_type)
			VALUES (?, ?, ?)
			ON CONFLICT(asset_id) DO UPDATE SET
				capacity_mw = excluded.capacity_mw,
				asset_type = excluded.asset_type
		`, a.ID, a.CapacityMW, string(a.Type))
		if err != nil {
			return fmt.Errorf("upsert asset %s: %w", a.ID, err)
		}
	}
	return nil
}

func (s *Store) GetAssets() ([]models.Asset, error) {
	rows, err := s.db.Query(`SELECT asset_id, capacity_mw, asset_type FROM assets ORDER BY asset_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var a models.Asset
		var typ string
		if err := rows.Scan(&a.ID, &a.CapacityMW, &typ); err != nil {
			return nil, err
		}
		a.Type = models.AssetType(typ)
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// UpsertWeatherBatch merges weather rows in one transaction.
func (s *Store) UpsertWeatherBatch(records []models.WeatherRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO raw_weather (asset_id, timestamp, wind_speed_mps, wind_direction_deg, ghi, temperature_c, pressure_hpa, relative_humidity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(asset_id, timestamp) DO UPDATE SET
			wind_speed_mps = excluded.wind_speed_mps,
			wind_direction_deg = excluded.wind_direction_deg,
			ghi = excluded.ghi,
			temperature_c = excluded.temperature_c,
			pressure_hpa = excluded.pressure_hpa,
			relative_humidity = excluded.relative_humidity
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.AssetID, r.Timestamp.UTC(), r.WindSpeedMPS, r.WindDirectionDeg, r.GHI, r.TemperatureC, r.PressureHPA, r.RelativeHumidity); err != nil {
			return fmt.Errorf("upsert weather %s %s: %w", r.AssetID, r.Timestamp.Format(time.RFC3339), err)
		}
	}

	return tx.Commit()
}

// UpsertGenerationBatch merges generation rows in one transaction.
func (s *Store) UpsertGenerationBatch(records []models.GenerationRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO raw_generation (asset_id, timestamp, gross_generation_mwh, net_generation_mwh, curtailment_mwh, availability_pct, asset_capacity_mw)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(asset_id, timestamp) DO UPDATE SET
			gross_generation_mwh = excluded.gross_generation_mwh,
			net_generation_mwh = excluded.net_generation_mwh,
			curtailment_mwh = excluded.curtailment_mwh,
			availability_pct = excluded.availability_pct,
			asset_capacity_mw = excluded.asset_capacity_mw
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.AssetID, r.Timestamp.UTC(), r.GrossGenerationMWH, r.NetGenerationMWH, r.CurtailmentMWH, r.AvailabilityPct, r.AssetCapacityMW); err != nil {
			return fmt.Errorf("upsert generation %s %s: %w", r.AssetID, r.Timestamp.Format(time.RFC3339), err)
		}
	}

	return tx.Commit()
}

func (s *Store) WeatherCount() (int64, error) {
	var n int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM raw_weather`).Scan(&n)
	return n, err
}

func (s *Store) GenerationCount() (int64, error) {
	var n int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM raw_generation`).Scan(&n)
	return n, err
}

// GenerationDates returns the distinct calendar dates present in
// raw_generation, ascending.
func (s *Store) GenerationDates() ([]time.Time, error) {
	rows, err := s.db.Query(`SELECT DISTINCT DATE(SUBSTR(timestamp, 1, 19)) FROM raw_generation ORDER BY 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			return nil, fmt.Errorf("parse generation date %q: %w", d, err)
		}
		dates = append(dates, t)
	}
	return dates, rows.Err()
}

// ComputeDailyAssetSummaries aggregates raw_generation for one calendar date
// into per-asset totals. Capacity factor is net energy over the theoretical
// maximum for the hours observed that day.
func (s *Store) ComputeDailyAssetSummaries(date time.Time) ([]models.DailyAssetSummary, error) {
	day := date.Format("2006-01-02")

	rows, err := s.db.Query(`
		SELECT
			asset_id,
			SUM(gross_generation_mwh),
			SUM(net_generation_mwh),
			SUM(curtailment_mwh),
			AVG(availability_pct),
			MAX(asset_capacity_mw),
			COUNT(*)
		FROM raw_generation
		WHERE DATE(SUBSTR(timestamp, 1, 19)) = ?
		GROUP BY asset_id
		ORDER BY asset_id
	`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.DailyAssetSummary
	for rows.Next() {
		var sum models.DailyAssetSummary
		var hours float64
		if err := rows.Scan(&sum.AssetID, &sum.GrossMWH, &sum.NetMWH, &sum.CurtailmentMWH, &sum.AvailabilityAvg, &sum.CapacityMW, &hours); err != nil {
			return nil, err
		}
		sum.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		if sum.CapacityMW > 0 && hours > 0 {
			sum.CapacityFactor = sum.NetMWH / (sum.CapacityMW * hours)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

func (s *Store) UpsertDailyAssetSummary(sum models.DailyAssetSummary) error {
	_, err := s.db.Exec(`
		INSERT INTO daily_asset_summaries (date, asset_id, gross_mwh, net_mwh, curtailment_mwh, availability_avg, capacity_mw, capacity_factor)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date, asset_id) DO UPDATE SET
			gross_mwh = excluded.gross_mwh,
			net_mwh = excluded.net_mwh,
			curtailment_mwh = excluded.curtailment_mwh,
			availability_avg = excluded.availability_avg,
			capacity_mw = excluded.capacity_mw,
			capacity_factor = excluded.capacity_factor
	`, sum.Date, sum.AssetID, sum.GrossMWH, sum.NetMWH, sum.CurtailmentMWH, sum.AvailabilityAvg, sum.CapacityMW, sum.CapacityFactor)
	return err
}

func (s *Store) GetDailyAssetSummaries(date time.Time) ([]models.DailyAssetSummary, error) {
	rows, err := s.db.Query(`
		SELECT date, asset_id, gross_mwh, net_mwh, curtailment_mwh, availability_avg, capacity_mw, capacity_factor
		FROM daily_asset_summaries
		WHERE date = ?
		ORDER BY asset_id
	`, time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.DailyAssetSummary
	for rows.Next() {
		var sum models.DailyAssetSummary
		if err := rows.Scan(&sum.Date, &sum.AssetID, &sum.GrossMWH, &sum.NetMWH, &sum.CurtailmentMWH, &sum.AvailabilityAvg, &sum.CapacityMW, &sum.CapacityFactor); err != nil {
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}
