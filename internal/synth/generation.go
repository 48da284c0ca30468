package synth

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/renewgrid/renewperf/internal/models"
	"github.com/renewgrid/renewperf/internal/power"
	"github.com/renewgrid/renewperf/internal/timegrid"
)

const (
	performanceMin = 0.95
	performanceMax = 1.0

	lossFactorMin = 0.90
	lossFactorMax = 0.95

	// Curtailment is more likely when an asset runs near capacity:
	// p = gross/(capacity+eps) × 0.1, subtracting 5-15% of gross when drawn.
	curtailScale      = 0.1
	curtailFracMin    = 0.05
	curtailFracMax    = 0.15
	capacityEpsilon   = 1e-6
	availabilityBase  = 95.0
	availabilitySigma = 5.0
	availabilityFloor = 85.0
	availabilityCeil  = 100.0
)

type driverKey struct {
	unix    int64
	assetID string
}

// drivers are the two weather fields generation depends on.
type drivers struct {
	windMPS float64
	ghi     float64
}

func validateAssets(assets []models.Asset) error {
	if len(assets) == 0 {
		return fmt.Errorf("no assets configured")
	}
	if len(assets) > timegrid.MaxAssets {
		return fmt.Errorf("asset count %d out of range [1,%d]", len(assets), timegrid.MaxAssets)
	}
	seen := make(map[string]bool, len(assets))
	for _, a := range assets {
		if a.ID == "" {
			return fmt.Errorf("asset with empty id")
		}
		if seen[a.ID] {
			return fmt.Errorf("duplicate asset id %s", a.ID)
		}
		seen[a.ID] = true
		if a.CapacityMW <= 0 {
			return fmt.Errorf("asset %s: capacity %.2f MW must be positive", a.ID, a.CapacityMW)
		}
		if !a.Type.Valid() {
			return fmt.Errorf("asset %s: unknown type %q", a.ID, a.Type)
		}
	}
	return nil
}

// GenerateGeneration produces hourly generation rows for every (timestamp,
// asset) pair in the grid, driven by the supplied weather table when one is
// given and by inline synthetic drivers otherwise. The weather join is
// tolerant: pairs missing from the supplied table contribute zero driver
// input rather than an error. Output is sorted by (timestamp, asset_id).
//
// Draw order under the seed: inline wind noise and cloud factor (only when no
// weather table is supplied), then performance factor, loss factor,
// curtailment probability, curtailment magnitude, availability noise, each
// drawn as one whole vector over the full row set.
func GenerateGeneration(start, end time.Time, assets []models.Asset, weather []models.WeatherRecord, seed int64) ([]models.GenerationRecord, error) {
	if err := validateAssets(assets); err != nil {
		return nil, err
	}
	hours, err := timegrid.Hourly(start, end)
	if err != nil {
		return nil, err
	}

	sorted := make([]models.Asset, len(assets))
	copy(sorted, assets)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	n := len(hours) * len(sorted)
	g := newRNG(seed)

	var lookup map[driverKey]drivers
	var windNoise, cloud []float64
	if weather != nil {
		lookup = make(map[driverKey]drivers, len(weather))
		for _, w := range weather {
			lookup[driverKey{w.Timestamp.Unix(), w.AssetID}] = drivers{w.WindSpeedMPS, w.GHI}
		}
	} else {
		windNoise = g.normalVec(n, windNoiseSigma)
		cloud = g.uniformVec(n, cloudFactorMin, cloudFactorMax)
	}

	perf := g.uniformVec(n, performanceMin, performanceMax)
	loss := g.uniformVec(n, lossFactorMin, lossFactorMax)
	curtDraw := g.uniformVec(n, 0, 1)
	curtFrac := g.uniformVec(n, curtailFracMin, curtailFracMax)
	availNoise := g.normalVec(n, availabilitySigma)

	records := make([]models.GenerationRecord, 0, n)
	i := 0
	for _, ts := range hours {
		hour := float64(ts.Hour())
		doy := float64(ts.YearDay())

		for _, asset := range sorted {
			var d drivers
			if lookup != nil {
				d = lookup[driverKey{ts.Unix(), asset.ID}]
			} else {
				d.windMPS = clamp(windBase(doy, hour)+windNoise[i], 0, windSpeedMax)
				d.ghi = clamp(ghiClearSky(doy, hour)*cloud[i], 0, ghiMax)
			}

			var gross float64
			switch asset.Type {
			case models.AssetWind:
				gross = power.WindPower(d.windMPS, asset.CapacityMW)
			case models.AssetSolar:
				gross = power.SolarPower(d.ghi, asset.CapacityMW)
			}

			gross *= perf[i]
			net := gross * loss[i]

			var curtailment float64
			if curtDraw[i] < gross/(asset.CapacityMW+capacityEpsilon)*curtailScale {
				curtailment = curtFrac[i] * gross
			}
			net = math.Max(net-curtailment, 0)

			availability := clamp(availabilityBase+availNoise[i], availabilityFloor, availabilityCeil)
			factor := availability / 100

			records = append(records, models.GenerationRecord{
				Timestamp:          ts,
				AssetID:            asset.ID,
				GrossGenerationMWH: gross * factor,
				NetGenerationMWH:   net * factor,
				CurtailmentMWH:     curtailment,
				AvailabilityPct:    availability,
				AssetCapacityMW:    asset.CapacityMW,
			})
			i++
		}
	}

	return records, nil
}
