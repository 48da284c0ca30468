// Package rawfile persists weather and generation tables as snappy-compressed
// Parquet, one file per calendar date or a single file for the whole range.
package rawfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/parquet-go/parquet-go"

	"github.com/renewgrid/renewperf/internal/metrics"
	"github.com/renewgrid/renewperf/internal/models"
)

const (
	WeatherPrefix    = "weather_"
	GenerationPrefix = "generation_"
)

type partitioned interface {
	PartitionDate() string
}

// SaveWeather writes a weather table under dir. With partitioning enabled it
// writes weather_{YYYY-MM-DD}.parquet per distinct date; otherwise a single
// weather_all.parquet. Existing files are overwritten, so rewriting the same
// table leaves the file count unchanged.
func SaveWeather(rows []models.WeatherRecord, dir string, partitionByDate bool) error {
	return save(rows, dir, WeatherPrefix, "weather", partitionByDate)
}

// SaveGeneration writes a generation table under dir, naming files with the
// generation_ prefix. Same partitioning behavior as SaveWeather.
func SaveGeneration(rows []models.GenerationRecord, dir string, partitionByDate bool) error {
	return save(rows, dir, GenerationPrefix, "generation", partitionByDate)
}

func save[T partitioned](rows []T, dir, prefix, dataset string, partitionByDate bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}

	if !partitionByDate {
		path := filepath.Join(dir, prefix+"all.parquet")
		if err := writeFile(path, rows); err != nil {
			return err
		}
		metrics.RowsWritten.WithLabelValues(dataset).Add(float64(len(rows)))
		metrics.PartitionsWritten.WithLabelValues(dataset).Inc()
		return nil
	}

	byDate := make(map[string][]T)
	for _, r := range rows {
		d := r.PartitionDate()
		byDate[d] = append(byDate[d], r)
	}
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, d := range dates {
		path := filepath.Join(dir, prefix+d+".parquet")
		if err := writeFile(path, byDate[d]); err != nil {
			return fmt.Errorf("write partition %s: %w", d, err)
		}
	}

	metrics.RowsWritten.WithLabelValues(dataset).Add(float64(len(rows)))
	metrics.PartitionsWritten.WithLabelValues(dataset).Add(float64(len(dates)))
	return nil
}

// writeFile writes rows to a temp file in the target directory and renames it
// into place, so a failed write never leaves a readable partial partition.
func writeFile[T any](path string, rows []T) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	w := parquet.NewGenericWriter[T](f, parquet.Compression(&parquet.Snappy))
	if _, err := w.Write(rows); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("close writer %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}

	return os.Rename(tmp, path)
}

// ReadWeatherFile loads one weather Parquet file.
func ReadWeatherFile(path string) ([]models.WeatherRecord, error) {
	rows, err := parquet.ReadFile[models.WeatherRecord](path)
	if err != nil {
		return nil, fmt.Errorf("read weather file %s: %w", path, err)
	}
	return rows, nil
}

// ReadGenerationFile loads one generation Parquet file.
func ReadGenerationFile(path string) ([]models.GenerationRecord, error) {
	rows, err := parquet.ReadFile[models.GenerationRecord](path)
	if err != nil {
		return nil, fmt.Errorf("read generation file %s: %w", path, err)
	}
	return rows, nil
}

// ListPartitions returns the sorted partition files for a dataset prefix.
func ListPartitions(dir, prefix string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, prefix+"*.parquet"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
