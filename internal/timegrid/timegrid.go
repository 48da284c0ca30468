// Package timegrid builds the hourly time grid and asset id list that both
// synthesizers cross-join over.
package timegrid

import (
	"fmt"
	"time"
)

const (
	DateFormat = "2006-01-02"

	// MaxAssets bounds the configurable fleet size.
	MaxAssets = 100
)

// ParseDate parses an ISO calendar date, interpreted at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// Hourly returns hourly timestamps from start to end inclusive, strictly
// increasing with no gaps.
func Hourly(start, end time.Time) ([]time.Time, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s before start date %s",
			end.Format(DateFormat), start.Format(DateFormat))
	}

	hours := int(end.Sub(start)/time.Hour) + 1
	grid := make([]time.Time, 0, hours)
	for t := start; !t.After(end); t = t.Add(time.Hour) {
		grid = append(grid, t)
	}
	return grid, nil
}

// AssetID names the nth asset, 1-based, zero-padded to 3 digits.
func AssetID(n int) string {
	return fmt.Sprintf("ASSET_%03d", n)
}

// AssetIDs returns the auto-named id list for a fleet of the given size.
func AssetIDs(count int) ([]string, error) {
	if count < 1 || count > MaxAssets {
		return nil, fmt.Errorf("asset count %d out of range [1,%d]", count, MaxAssets)
	}
	ids := make([]string, count)
	for i := range ids {
		ids[i] = AssetID(i + 1)
	}
	return ids, nil
}
