package weather

import "math"

// EstimateDewPoint computes a dew point in °C from temperature (°C) and
// relative humidity (%) using the Magnus-Tetens approximation. The humidity
// is clamped to [1,100] to keep the logarithm in domain. It reports ok=false
// when an input is non-finite or the result is non-finite; NaN is never
// returned as a value.
func EstimateDewPoint(tempC, humidityPct float64) (float64, bool) {
	if math.IsNaN(tempC) || math.IsInf(tempC, 0) ||
		math.IsNaN(humidityPct) || math.IsInf(humidityPct, 0) {
		return 0, false
	}

	rh := humidityPct
	if rh < 1 {
		rh = 1
	}
	if rh > 100 {
		rh = 100
	}

	gamma := (17.62*tempC)/(243.12+tempC) + math.Log(rh/100)
	dew := (243.12 * gamma) / (17.62 - gamma)

	if math.IsNaN(dew) || math.IsInf(dew, 0) {
		return 0, false
	}
	return dew, true
}
