package weather

import (
	"time"

	"github.com/krishimitra/farm-weather/internal/common"
	"github.com/krishimitra/farm-weather/internal/locale"
	"github.com/krishimitra/farm-weather/internal/openweather"
)

const (
	// coldWindSpeedMS and coldWindTempC gate the cold-wind condition:
	// wind above the speed threshold combined with temperature below the
	// temperature threshold.
	coldWindSpeedMS = 8.0
	coldWindTempC   = 20.0

	// maxAlertTimes caps the evidence collected per condition.
	maxAlertTimes = 5
)

// Analyze scans forecast slots in arrival order and derives the three
// planning conditions from strictly future-dated samples. Each condition
// collects at most five "weekday, time" labels; the scan stops early once
// all three are full, which yields the same result as scanning to the end.
func Analyze(samples []openweather.RawSample, now time.Time, tz *time.Location, lang locale.Lang) PlanningAlerts {
	if tz == nil {
		tz = time.UTC
	}

	var alerts PlanningAlerts
	cutoff := now.Unix()

	for _, s := range samples {
		if s.Dt <= cutoff {
			continue
		}

		local := time.Unix(s.Dt, 0).In(tz)
		cond := s.Condition().Main

		if common.ContainsAnyFold(cond, "rain", "drizzle", "thunder") {
			alerts.Rain = true
			if len(alerts.RainTimes) < maxAlertTimes {
				alerts.RainTimes = append(alerts.RainTimes, lang.WeekdayTime(local))
			}
		}

		if common.ContainsAnyFold(cond, "clear") {
			alerts.Sun = true
			if len(alerts.SunTimes) < maxAlertTimes {
				alerts.SunTimes = append(alerts.SunTimes, lang.WeekdayTime(local))
			}
		}

		if s.Main.Temp != nil && s.Wind.Speed > coldWindSpeedMS && *s.Main.Temp < coldWindTempC {
			alerts.ColdWind = true
			if len(alerts.ColdWindTimes) < maxAlertTimes {
				alerts.ColdWindTimes = append(alerts.ColdWindTimes, lang.WeekdayTime(local))
			}
		}

		if len(alerts.RainTimes) == maxAlertTimes &&
			len(alerts.SunTimes) == maxAlertTimes &&
			len(alerts.ColdWindTimes) == maxAlertTimes {
			break
		}
	}

	return alerts
}
