// Package ingest loads raw Parquet partitions into the warehouse with
// incremental merge semantics on (asset_id, timestamp).
package ingest

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/renewgrid/renewperf/internal/metrics"
	"github.com/renewgrid/renewperf/internal/rawfile"
	"github.com/renewgrid/renewperf/internal/store"
)

const busyRetryWindow = 30 * time.Second

type Loader struct {
	store *store.Store
}

func NewLoader(s *store.Store) *Loader {
	return &Loader{store: s}
}

// IngestWeatherDir loads every weather_*.parquet file under dir, in filename
// order, and returns the total row count merged.
func (l *Loader) IngestWeatherDir(dir string) (int, error) {
	files, err := rawfile.ListPartitions(dir, rawfile.WeatherPrefix)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, path := range files {
		started := time.Now()
		rows, err := rawfile.ReadWeatherFile(path)
		if err != nil {
			return total, err
		}
		if err := l.retryBusy(func() error { return l.store.UpsertWeatherBatch(rows) }); err != nil {
			return total, fmt.Errorf("merge %s: %w", filepath.Base(path), err)
		}
		total += len(rows)
		metrics.RowsIngested.WithLabelValues("weather").Add(float64(len(rows)))
		metrics.IngestDuration.WithLabelValues("weather").Observe(time.Since(started).Seconds())
		log.Printf("ingest: merged %d weather rows from %s", len(rows), filepath.Base(path))
	}

	return total, nil
}

// IngestGenerationDir loads every generation_*.parquet file under dir.
func (l *Loader) IngestGenerationDir(dir string) (int, error) {
	files, err := rawfile.ListPartitions(dir, rawfile.GenerationPrefix)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, path := range files {
		started := time.Now()
		rows, err := rawfile.ReadGenerationFile(path)
		if err != nil {
			return total, err
		}
		if err := l.retryBusy(func() error { return l.store.UpsertGenerationBatch(rows) }); err != nil {
			return total, fmt.Errorf("merge %s: %w", filepath.Base(path), err)
		}
		total += len(rows)
		metrics.RowsIngested.WithLabelValues("generation").Add(float64(len(rows)))
		metrics.IngestDuration.WithLabelValues("generation").Observe(time.Since(started).Seconds())
		log.Printf("ingest: merged %d generation rows from %s", len(rows), filepath.Base(path))
	}

	return total, nil
}

// RefreshDailySummaries recomputes the daily mart for every date present in
// raw_generation and returns the summary count written.
func (l *Loader) RefreshDailySummaries() (int, error) {
	dates, err := l.store.GenerationDates()
	if err != nil {
		return 0, err
	}

	written := 0
	for _, date := range dates {
		summaries, err := l.store.ComputeDailyAssetSummaries(date)
		if err != nil {
			return written, fmt.Errorf("summarize %s: %w", date.Format("2006-01-02"), err)
		}
		for _, sum := range summaries {
			if err := l.store.UpsertDailyAssetSummary(sum); err != nil {
				return written, fmt.Errorf("upsert summary %s %s: %w", sum.AssetID, date.Format("2006-01-02"), err)
			}
			written++
		}
	}

	return written, nil
}

// retryBusy retries a merge batch while SQLite reports lock contention;
// anything else fails immediately.
func (l *Loader) retryBusy(op func() error) error {
	wrapped := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if isBusy(err) {
			return err
		}
		return backoff.Permanent(err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = busyRetryWindow
	return backoff.Retry(wrapped, bo)
}

func isBusy(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
