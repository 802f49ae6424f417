package openweather

// ConditionInfo is the provider's per-sample weather condition descriptor.
type ConditionInfo struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// MainMetrics groups the provider's core thermodynamic readings.
// Temperature fields are pointers so that absent values can be told apart
// from a genuine 0 °C reading.
type MainMetrics struct {
	Temp      *float64 `json:"temp"`
	FeelsLike float64  `json:"feels_like"`
	TempMin   *float64 `json:"temp_min"`
	TempMax   *float64 `json:"temp_max"`
	Pressure  float64  `json:"pressure"`
	Humidity  float64  `json:"humidity"`
}

// WindMetrics is the provider's wind reading.
type WindMetrics struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

// RawSample is one timestamped forecast slot from the 3-hour-step feed.
type RawSample struct {
	Dt         int64           `json:"dt"`
	Main       MainMetrics     `json:"main"`
	Weather    []ConditionInfo `json:"weather"`
	Wind       WindMetrics     `json:"wind"`
	Visibility int             `json:"visibility"`
	Pop        *float64        `json:"pop"`
}

// Condition returns the sample's leading condition descriptor, or a zero
// value when the provider sent none.
func (s RawSample) Condition() ConditionInfo {
	if len(s.Weather) == 0 {
		return ConditionInfo{}
	}
	return s.Weather[0]
}

// Current is the provider's current-conditions response.
type Current struct {
	Name    string          `json:"name"`
	Coord   Coord           `json:"coord"`
	Weather []ConditionInfo `json:"weather"`
	Main    MainMetrics     `json:"main"`
	Wind    WindMetrics     `json:"wind"`
	Sys     struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Visibility int   `json:"visibility"`
	Dt         int64 `json:"dt"`
	Timezone   int   `json:"timezone"` // shift in seconds from UTC
}

// Condition returns the leading condition descriptor.
func (c Current) Condition() ConditionInfo {
	if len(c.Weather) == 0 {
		return ConditionInfo{}
	}
	return c.Weather[0]
}

// Coord is a lat/lon pair as reported by the provider.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Forecast is the provider's 3-hour-step 5-day forecast response.
type Forecast struct {
	List []RawSample `json:"list"`
	City struct {
		Name     string `json:"name"`
		Country  string `json:"country"`
		Timezone int    `json:"timezone"` // shift in seconds from UTC
	} `json:"city"`
}

// OneCall is the optional richer endpoint's response. Its daily records are
// true per-day aggregates, so no local reduction is needed for them.
type OneCall struct {
	Current OneCallCurrent  `json:"current"`
	Hourly  []OneCallHourly `json:"hourly"`
	Daily   []OneCallDaily  `json:"daily"`
}

// OneCallCurrent carries the derived fields the coarse endpoints lack.
type OneCallCurrent struct {
	Dt       int64           `json:"dt"`
	DewPoint *float64        `json:"dew_point"`
	UVI      *float64        `json:"uvi"`
	Weather  []ConditionInfo `json:"weather"`
}

// OneCallHourly is one hourly slot from the richer endpoint.
type OneCallHourly struct {
	Dt      int64           `json:"dt"`
	Temp    *float64        `json:"temp"`
	Pop     *float64        `json:"pop"`
	Weather []ConditionInfo `json:"weather"`
}

// Icon returns the slot's icon code, or "" when absent.
func (h OneCallHourly) Icon() string {
	if len(h.Weather) == 0 {
		return ""
	}
	return h.Weather[0].Icon
}

// OneCallDaily is one per-day aggregate from the richer endpoint.
type OneCallDaily struct {
	Dt   int64 `json:"dt"`
	Temp struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"temp"`
	Pop       *float64        `json:"pop"`
	Humidity  float64         `json:"humidity"`
	WindSpeed float64         `json:"wind_speed"`
	Weather   []ConditionInfo `json:"weather"`
}

// Icon returns the day's icon code, or "" when absent.
func (d OneCallDaily) Icon() string {
	if len(d.Weather) == 0 {
		return ""
	}
	return d.Weather[0].Icon
}

// GeoPlace is one forward/reverse geocoding match.
type GeoPlace struct {
	Name    string  `json:"name"`
	State   string  `json:"state"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}
