package weather

import (
	"sort"
	"time"

	"github.com/krishimitra/farm-weather/internal/locale"
	"github.com/krishimitra/farm-weather/internal/openweather"
)

const (
	// CoarseDays is the horizon of the 3-hour-step feed.
	CoarseDays = 5
	// RichDays is the horizon when the richer endpoint supplies true
	// per-day records.
	RichDays = 7

	// CoarseHours and RichHours bound the hourly projection.
	CoarseHours = 8
	RichHours   = 12
)

// usable reports whether a sample carries the critical fields required for
// aggregation. Malformed samples are excluded, not fatal.
func usable(s openweather.RawSample) bool {
	return s.Dt > 0 && s.Main.Temp != nil
}

// ToDaily partitions forecast slots by UTC calendar date, discards dates
// before now's date, keeps at most maxDays ascending dates, and reduces each
// group: min/max temperature bracketing the samples, mean pop (absent
// treated as 0), mean humidity and wind, and the icon of the sample whose
// local hour is closest to noon.
func ToDaily(samples []openweather.RawSample, now time.Time, tz *time.Location, lang locale.Lang, maxDays int, iconURL func(string) string) []DailySummary {
	if len(samples) == 0 {
		return nil
	}
	if tz == nil {
		tz = time.UTC
	}
	if maxDays <= 0 {
		maxDays = CoarseDays
	}

	today := now.UTC().Format("2006-01-02")

	groups := make(map[string][]openweather.RawSample)
	for _, s := range samples {
		if !usable(s) {
			continue
		}
		key := time.Unix(s.Dt, 0).UTC().Format("2006-01-02")
		if key < today {
			continue
		}
		groups[key] = append(groups[key], s)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > maxDays {
		keys = keys[:maxDays]
	}

	daily := make([]DailySummary, 0, len(keys))
	for _, k := range keys {
		daily = append(daily, reduceDay(k, groups[k], tz, lang, iconURL))
	}
	return daily
}

func reduceDay(dateKey string, group []openweather.RawSample, tz *time.Location, lang locale.Lang, iconURL func(string) string) DailySummary {
	var (
		tempMin, tempMax   float64
		sumPop, sumHum     float64
		sumWind            float64
		icon               string
		bestNoonDist       int
		haveTemp, haveIcon bool
		labelTime          time.Time
	)

	for _, s := range group {
		lo := *s.Main.Temp
		hi := *s.Main.Temp
		if s.Main.TempMin != nil && *s.Main.TempMin < lo {
			lo = *s.Main.TempMin
		}
		if s.Main.TempMax != nil && *s.Main.TempMax > hi {
			hi = *s.Main.TempMax
		}
		if !haveTemp {
			tempMin, tempMax = lo, hi
			haveTemp = true
		} else {
			if lo < tempMin {
				tempMin = lo
			}
			if hi > tempMax {
				tempMax = hi
			}
		}

		if s.Pop != nil {
			sumPop += *s.Pop
		}
		sumHum += s.Main.Humidity
		sumWind += s.Wind.Speed

		local := time.Unix(s.Dt, 0).In(tz)
		if labelTime.IsZero() {
			labelTime = local
		}
		dist := local.Hour() - 12
		if dist < 0 {
			dist = -dist
		}
		if !haveIcon || dist < bestNoonDist {
			icon = s.Condition().Icon
			bestNoonDist = dist
			haveIcon = true
		}
	}

	n := float64(len(group))
	d := DailySummary{
		Date:      dateKey,
		Label:     lang.DayLabel(labelTime),
		TempMin:   tempMin,
		TempMax:   tempMax,
		Pop:       sumPop / n,
		Humidity:  sumHum / n,
		WindSpeed: sumWind / n,
		Icon:      icon,
	}
	if iconURL != nil && icon != "" {
		d.IconURL = iconURL(icon)
	}
	return d
}

// ToHourly projects the first maxHours chronologically-ordered slots
// verbatim, with a locale-aware hour label. No aggregation happens here.
func ToHourly(samples []openweather.RawSample, tz *time.Location, lang locale.Lang, maxHours int, iconURL func(string) string) []HourlySummary {
	if tz == nil {
		tz = time.UTC
	}
	if maxHours <= 0 {
		maxHours = CoarseHours
	}

	hourly := make([]HourlySummary, 0, maxHours)
	for _, s := range samples {
		if len(hourly) >= maxHours {
			break
		}
		if !usable(s) {
			continue
		}

		local := time.Unix(s.Dt, 0).In(tz)
		h := HourlySummary{
			Timestamp: local,
			Label:     lang.HourLabel(local),
			Temp:      *s.Main.Temp,
			Icon:      s.Condition().Icon,
		}
		if s.Pop != nil {
			h.Pop = *s.Pop
		}
		if iconURL != nil && h.Icon != "" {
			h.IconURL = iconURL(h.Icon)
		}
		hourly = append(hourly, h)
	}
	return hourly
}

// dailyFromOneCall maps the richer endpoint's true per-day records straight
// into summaries, still discarding past days and capping at RichDays.
func dailyFromOneCall(days []openweather.OneCallDaily, now time.Time, tz *time.Location, lang locale.Lang, iconURL func(string) string) []DailySummary {
	if tz == nil {
		tz = time.UTC
	}
	today := now.UTC().Format("2006-01-02")

	daily := make([]DailySummary, 0, RichDays)
	for _, d := range days {
		if len(daily) >= RichDays {
			break
		}
		if d.Dt <= 0 {
			continue
		}
		key := time.Unix(d.Dt, 0).UTC().Format("2006-01-02")
		if key < today {
			continue
		}

		out := DailySummary{
			Date:      key,
			Label:     lang.DayLabel(time.Unix(d.Dt, 0).In(tz)),
			TempMin:   d.Temp.Min,
			TempMax:   d.Temp.Max,
			Humidity:  d.Humidity,
			WindSpeed: d.WindSpeed,
			Icon:      d.Icon(),
		}
		if d.Pop != nil {
			out.Pop = *d.Pop
		}
		if iconURL != nil && out.Icon != "" {
			out.IconURL = iconURL(out.Icon)
		}
		daily = append(daily, out)
	}

	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })
	return daily
}

// hourlyFromOneCall projects the richer endpoint's hourly slots, capped at
// RichHours.
func hourlyFromOneCall(hours []openweather.OneCallHourly, tz *time.Location, lang locale.Lang, iconURL func(string) string) []HourlySummary {
	if tz == nil {
		tz = time.UTC
	}

	hourly := make([]HourlySummary, 0, RichHours)
	for _, h := range hours {
		if len(hourly) >= RichHours {
			break
		}
		if h.Dt <= 0 || h.Temp == nil {
			continue
		}

		local := time.Unix(h.Dt, 0).In(tz)
		out := HourlySummary{
			Timestamp: local,
			Label:     lang.HourLabel(local),
			Temp:      *h.Temp,
			Icon:      h.Icon(),
		}
		if h.Pop != nil {
			out.Pop = *h.Pop
		}
		if iconURL != nil && out.Icon != "" {
			out.IconURL = iconURL(out.Icon)
		}
		hourly = append(hourly, out)
	}
	return hourly
}
