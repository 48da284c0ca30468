package synth

import (
	"reflect"
	"testing"
	"time"
)

func TestGenerateWeather_Shape(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 1, 3, 0, 0, 0, time.UTC)

	rows, err := GenerateWeather(start, end, 3, 123)
	if err != nil {
		t.Fatalf("GenerateWeather: %v", err)
	}

	// 4 hours × 3 assets
	if len(rows) != 12 {
		t.Fatalf("len(rows) = %d, want 12", len(rows))
	}

	assets := make(map[string]bool)
	for _, r := range rows {
		assets[r.AssetID] = true
	}
	if len(assets) != 3 {
		t.Errorf("distinct assets = %d, want 3", len(assets))
	}
	for _, id := range []string{"ASSET_001", "ASSET_002", "ASSET_003"} {
		if !assets[id] {
			t.Errorf("missing asset %s", id)
		}
	}
}

func TestGenerateWeather_Bounds(t *testing.T) {
	start := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC)

	rows, err := GenerateWeather(start, end, 5, 42)
	if err != nil {
		t.Fatalf("GenerateWeather: %v", err)
	}

	for _, r := range rows {
		if r.WindSpeedMPS < 0 || r.WindSpeedMPS > 25 {
			t.Fatalf("wind speed %v out of [0,25] at %v %s", r.WindSpeedMPS, r.Timestamp, r.AssetID)
		}
		if r.WindDirectionDeg < 0 || r.WindDirectionDeg >= 360 {
			t.Fatalf("wind direction %v out of [0,360) at %v %s", r.WindDirectionDeg, r.Timestamp, r.AssetID)
		}
		if r.GHI < 0 || r.GHI > 1000 {
			t.Fatalf("ghi %v out of [0,1000] at %v %s", r.GHI, r.Timestamp, r.AssetID)
		}
		if r.RelativeHumidity < 20 || r.RelativeHumidity > 95 {
			t.Fatalf("humidity %v out of [20,95] at %v %s", r.RelativeHumidity, r.Timestamp, r.AssetID)
		}
	}
}

func TestGenerateWeather_NightGHIIsZero(t *testing.T) {
	start := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 6, 2, 0, 0, 0, 0, time.UTC)

	rows, err := GenerateWeather(start, end, 2, 7)
	if err != nil {
		t.Fatalf("GenerateWeather: %v", err)
	}

	for _, r := range rows {
		h := r.Timestamp.Hour()
		if (h <= 6 || h >= 18) && r.GHI != 0 {
			t.Errorf("GHI = %v at hour %d, want 0 outside the daylight window", r.GHI, h)
		}
	}
}

func TestGenerateWeather_SortedAndUnique(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)

	rows, err := GenerateWeather(start, end, 4, 99)
	if err != nil {
		t.Fatalf("GenerateWeather: %v", err)
	}

	seen := make(map[string]bool, len(rows))
	for i, r := range rows {
		key := r.Timestamp.Format(time.RFC3339) + "|" + r.AssetID
		if seen[key] {
			t.Fatalf("duplicate key %s", key)
		}
		seen[key] = true

		if i == 0 {
			continue
		}
		prev := rows[i-1]
		if r.Timestamp.Before(prev.Timestamp) {
			t.Fatalf("rows not sorted by timestamp at %d", i)
		}
		if r.Timestamp.Equal(prev.Timestamp) && r.AssetID <= prev.AssetID {
			t.Fatalf("rows not sorted by asset_id within %v", r.Timestamp)
		}
	}
}

func TestGenerateWeather_Deterministic(t *testing.T) {
	start := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 5, 3, 0, 0, 0, 0, time.UTC)

	a, err := GenerateWeather(start, end, 3, 123)
	if err != nil {
		t.Fatalf("GenerateWeather: %v", err)
	}
	b, err := GenerateWeather(start, end, 3, 123)
	if err != nil {
		t.Fatalf("GenerateWeather: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different weather tables")
	}

	c, err := GenerateWeather(start, end, 3, 124)
	if err != nil {
		t.Fatalf("GenerateWeather: %v", err)
	}
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds produced identical weather tables")
	}
}

func TestGenerateWeather_InvalidInput(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		start, end time.Time
		assetCount int
	}{
		{"zero assets", start, end, 0},
		{"negative assets", start, end, -5},
		{"too many assets", start, end, 101},
		{"end before start", end, start, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := GenerateWeather(tt.start, tt.end, tt.assetCount, 42)
			if err == nil {
				t.Fatal("expected error")
			}
			if rows != nil {
				t.Error("partial table returned alongside error")
			}
		})
	}
}

func TestGenerateWeather_ColumnsPopulated(t *testing.T) {
	start := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 7, 1, 23, 0, 0, 0, time.UTC)

	rows, err := GenerateWeather(start, end, 1, 1)
	if err != nil {
		t.Fatalf("GenerateWeather: %v", err)
	}

	var sawGHI, sawWind bool
	for _, r := range rows {
		if r.GHI > 0 {
			sawGHI = true
		}
		if r.WindSpeedMPS > 0 {
			sawWind = true
		}
		if r.PressureHPA < 900 || r.PressureHPA > 1100 {
			t.Errorf("pressure %v implausible", r.PressureHPA)
		}
	}
	if !sawGHI {
		t.Error("no daylight GHI in a full summer day")
	}
	if !sawWind {
		t.Error("no nonzero wind speed in a full day")
	}
}
