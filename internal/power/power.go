// Package power holds the physical conversion models mapping a weather
// driver and an asset capacity to power output. These are the only functions
// that know about capacity-normalized physical behavior.
package power

const (
	// Wind turbine operating thresholds in m/s.
	cutInSpeed  = 3.0
	ratedSpeed  = 12.0
	cutOutSpeed = 25.0

	// Inverter, soiling and temperature losses for solar PV.
	solarEfficiency = 0.85

	// Reference irradiance at standard test conditions, W/m².
	stcIrradiance = 1000.0
)

// WindPower converts a wind speed to turbine output in MW. Zero below cut-in,
// cubic ramp normalized over the 9 m/s span between cut-in and rated speed,
// full rated power up to cut-out, zero at and above cut-out.
func WindPower(speedMPS, capacityMW float64) float64 {
	switch {
	case speedMPS < cutInSpeed:
		return 0
	case speedMPS < ratedSpeed:
		frac := (speedMPS - cutInSpeed) / (ratedSpeed - cutInSpeed)
		return capacityMW * frac * frac * frac
	case speedMPS < cutOutSpeed:
		return capacityMW
	default:
		return 0
	}
}

// SolarPower converts global horizontal irradiance to PV output in MW,
// linear in GHI and clamped to [0, capacity]. Negative GHI clamps to zero
// rather than erroring.
func SolarPower(ghi, capacityMW float64) float64 {
	out := ghi / stcIrradiance * capacityMW * solarEfficiency
	if out < 0 {
		return 0
	}
	if out > capacityMW {
		return capacityMW
	}
	return out
}

// WindPowerCurve applies WindPower element-wise over a speed vector.
func WindPowerCurve(speedsMPS []float64, capacityMW float64) []float64 {
	out := make([]float64, len(speedsMPS))
	for i, s := range speedsMPS {
		out[i] = WindPower(s, capacityMW)
	}
	return out
}

// SolarPowerOutput applies SolarPower element-wise over a GHI vector.
func SolarPowerOutput(ghi []float64, capacityMW float64) []float64 {
	out := make([]float64, len(ghi))
	for i, g := range ghi {
		out[i] = SolarPower(g, capacityMW)
	}
	return out
}
