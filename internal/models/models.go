package models

import (
	"time"
)

type AssetType string

const (
	AssetWind  AssetType = "wind"
	AssetSolar AssetType = "solar"
)

func (t AssetType) Valid() bool {
	return t == AssetWind || t == AssetSolar
}

// Asset is static metadata for one wind or solar site. Immutable for the
// duration of a generation run.
type Asset struct {
	ID         string
	CapacityMW float64
	Type       AssetType
}

// WeatherRecord is one hourly observation for one asset. Column names and
// types are the contract consumed by the warehouse loader; (asset_id,
// timestamp) is the natural key.
type WeatherRecord struct {
	Timestamp        time.Time `parquet:"timestamp,timestamp(millisecond)"`
	AssetID          string    `parquet:"asset_id"`
	WindSpeedMPS     float64   `parquet:"wind_speed_mps"`
	WindDirectionDeg float64   `parquet:"wind_direction_deg"`
	GHI              float64   `parquet:"ghi"`
	TemperatureC     float64   `parquet:"temperature_c"`
	PressureHPA      float64   `parquet:"pressure_hpa"`
	RelativeHumidity float64   `parquet:"relative_humidity"`
}

func (r WeatherRecord) PartitionDate() string {
	return r.Timestamp.Format("2006-01-02")
}

// GenerationRecord is one hourly generation row for one asset. Gross and net
// are both scaled by the availability factor; curtailment is reported as
// drawn, before that scaling.
type GenerationRecord struct {
	Timestamp          time.Time `parquet:"timestamp,timestamp(millisecond)"`
	AssetID            string    `parquet:"asset_id"`
	GrossGenerationMWH float64   `parquet:"gross_generation_mwh"`
	NetGenerationMWH   float64   `parquet:"net_generation_mwh"`
	CurtailmentMWH     float64   `parquet:"curtailment_mwh"`
	AvailabilityPct    float64   `parquet:"availability_pct"`
	AssetCapacityMW    float64   `parquet:"asset_capacity_mw"`
}

func (r GenerationRecord) PartitionDate() string {
	return r.Timestamp.Format("2006-01-02")
}

// DailyAssetSummary is one row of the daily mart: per-asset energy totals and
// capacity factor for a calendar date.
type DailyAssetSummary struct {
	Date            time.Time
	AssetID         string
	GrossMWH        float64
	NetMWH          float64
	CurtailmentMWH  float64
	AvailabilityAvg float64
	CapacityMW      float64
	CapacityFactor  float64
}

// DefaultAssets is the canonical ten-asset fleet used when no explicit asset
// configuration is supplied: five wind sites and five solar sites.
func DefaultAssets() []Asset {
	return []Asset{
		{ID: "ASSET_001", CapacityMW: 50.0, Type: AssetWind},
		{ID: "ASSET_002", CapacityMW: 75.0, Type: AssetWind},
		{ID: "ASSET_003", CapacityMW: 100.0, Type: AssetWind},
		{ID: "ASSET_004", CapacityMW: 45.0, Type: AssetWind},
		{ID: "ASSET_005", CapacityMW: 80.0, Type: AssetWind},
		{ID: "ASSET_006", CapacityMW: 30.0, Type: AssetSolar},
		{ID: "ASSET_007", CapacityMW: 50.0, Type: AssetSolar},
		{ID: "ASSET_008", CapacityMW: 40.0, Type: AssetSolar},
		{ID: "ASSET_009", CapacityMW: 60.0, Type: AssetSolar},
		{ID: "ASSET_010", CapacityMW: 35.0, Type: AssetSolar},
	}
}
