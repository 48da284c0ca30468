// Package synth generates deterministic synthetic weather and generation
// time series from seasonal and diurnal basis functions plus seeded noise.
package synth

import (
	"math"
	"time"

	"github.com/renewgrid/renewperf/internal/models"
	"github.com/renewgrid/renewperf/internal/timegrid"
)

const (
	seasonalPeriodDays = 365.0
	diurnalPeriodHours = 24.0

	// Wind speed model: seasonal mean/amplitude plus a day-peaking diurnal
	// component, bounded to the turbine's operating envelope.
	windSeasonalMean = 10.0
	windSeasonalAmp  = 3.0
	windDiurnalAmp   = 1.5
	windNoiseSigma   = 2.0
	windSpeedMax     = 25.0

	// Day 80 aligns the seasonal peak with the spring equinox.
	solarPhaseDays = 80.0

	// GHI model: seasonally varying noon peak with a parabolic daylight
	// profile, zero outside ±6h around solar noon.
	ghiPeakBase      = 900.0
	ghiPeakAmp       = 100.0
	solarNoonHour    = 12.0
	daylightHalfSpan = 6.0
	ghiProfileWidth  = 8.0
	ghiMax           = 1000.0
	cloudFactorMin   = 0.7
	cloudFactorMax   = 1.0

	tempSeasonalMean = 15.0
	tempSeasonalAmp  = 12.0
	tempDiurnalAmp   = 5.0
	tempNoiseSigma   = 2.0

	pressureBase        = 1013.0
	pressureSeasonalAmp = 5.0
	pressureNoiseSigma  = 5.0

	humidityBase       = 65.0
	humidityTempCoeff  = -0.5
	humidityGHICoeff   = -0.01
	humidityNoiseSigma = 10.0
	humidityMin        = 20.0
	humidityMax        = 95.0

	bearingNoiseSigma = 20.0

	// Diurnal components lag sunrise by 6 hours.
	diurnalPhaseHours = 6.0
)

// windBase is the deterministic wind speed component before noise.
func windBase(dayOfYear, hour float64) float64 {
	seasonal := windSeasonalMean + windSeasonalAmp*math.Sin(2*math.Pi*dayOfYear/seasonalPeriodDays)
	diurnal := windDiurnalAmp * math.Sin(2*math.Pi*(hour-diurnalPhaseHours)/diurnalPeriodHours)
	return seasonal + diurnal
}

// ghiClearSky is the cloud-free irradiance profile: a parabola centered on
// solar noon with the seasonally varying peak magnitude.
func ghiClearSky(dayOfYear, hour float64) float64 {
	solarHour := hour - solarNoonHour
	if math.Abs(solarHour) >= daylightHalfSpan {
		return 0
	}
	peak := ghiPeakBase + ghiPeakAmp*math.Sin(2*math.Pi*(dayOfYear-solarPhaseDays)/seasonalPeriodDays)
	return peak * (1 - (solarHour/ghiProfileWidth)*(solarHour/ghiProfileWidth))
}

// GenerateWeather produces the full hourly cross product of the [start, end]
// time grid and an auto-named fleet of assetCount assets, sorted by
// (timestamp, asset_id). The same seed, dates and asset count always yield an
// identical table: every stochastic layer draws one whole vector from a
// single seeded generator, in a fixed order.
func GenerateWeather(start, end time.Time, assetCount int, seed int64) ([]models.WeatherRecord, error) {
	ids, err := timegrid.AssetIDs(assetCount)
	if err != nil {
		return nil, err
	}
	hours, err := timegrid.Hourly(start, end)
	if err != nil {
		return nil, err
	}

	n := len(hours) * len(ids)
	g := newRNG(seed)

	// Pinned draw order: wind noise, per-asset base bearings, direction
	// noise, cloud factor, temperature noise, pressure noise, humidity noise.
	windNoise := g.normalVec(n, windNoiseSigma)
	bearings := make([]float64, len(ids))
	for i := range bearings {
		bearings[i] = g.uniform(0, 360)
	}
	dirNoise := g.normalVec(n, bearingNoiseSigma)
	cloud := g.uniformVec(n, cloudFactorMin, cloudFactorMax)
	tempNoise := g.normalVec(n, tempNoiseSigma)
	pressNoise := g.normalVec(n, pressureNoiseSigma)
	humNoise := g.normalVec(n, humidityNoiseSigma)

	records := make([]models.WeatherRecord, 0, n)
	i := 0
	for _, ts := range hours {
		hour := float64(ts.Hour())
		doy := float64(ts.YearDay())

		for a, id := range ids {
			wind := clamp(windBase(doy, hour)+windNoise[i], 0, windSpeedMax)

			dir := math.Mod(bearings[a]+dirNoise[i], 360)
			if dir < 0 {
				dir += 360
			}

			ghi := clamp(ghiClearSky(doy, hour)*cloud[i], 0, ghiMax)

			temp := tempSeasonalMean +
				tempSeasonalAmp*math.Sin(2*math.Pi*(doy-solarPhaseDays)/seasonalPeriodDays) +
				tempDiurnalAmp*math.Sin(2*math.Pi*(hour-diurnalPhaseHours)/diurnalPeriodHours) +
				tempNoise[i]

			pressure := pressureBase +
				pressureSeasonalAmp*math.Sin(2*math.Pi*doy/seasonalPeriodDays) +
				pressNoise[i]

			humidity := clamp(
				humidityBase+humidityTempCoeff*(temp-tempSeasonalMean)+humidityGHICoeff*ghi+humNoise[i],
				humidityMin, humidityMax)

			records = append(records, models.WeatherRecord{
				Timestamp:        ts,
				AssetID:          id,
				WindSpeedMPS:     wind,
				WindDirectionDeg: dir,
				GHI:              ghi,
				TemperatureC:     temp,
				PressureHPA:      pressure,
				RelativeHumidity: humidity,
			})
			i++
		}
	}

	return records, nil
}
