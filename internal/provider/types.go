package provider

// Provider-shaped payloads as returned by the upstream weather API. These
// pass through the adapter unchanged; normalization happens downstream.

// PrecipVolume holds rain or snow volume for the trailing 1h/3h window.
type PrecipVolume struct {
	OneH   float64 `json:"1h"`
	ThreeH float64 `json:"3h"`
}

// WeatherDescriptor is the upstream condition descriptor.
type WeatherDescriptor struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// MainReadings holds the core temperature/pressure/humidity block.
type MainReadings struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Pressure  float64 `json:"pressure"`
	Humidity  float64 `json:"humidity"`
}

// WindReadings holds wind speed (m/s), direction (degrees) and gust (m/s).
type WindReadings struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
	Gust  float64 `json:"gust"`
}

// CurrentConditions is the current-weather snapshot.
type CurrentConditions struct {
	Name string `json:"name"`
	Dt   int64  `json:"dt"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main   MainReadings `json:"main"`
	Wind   WindReadings `json:"wind"`
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Visibility float64             `json:"visibility"`
	Rain       *PrecipVolume       `json:"rain,omitempty"`
	Snow       *PrecipVolume       `json:"snow,omitempty"`
	Weather    []WeatherDescriptor `json:"weather"`
}

// ForecastSample is one timestamped entry of the 5-day/3-hour forecast list.
type ForecastSample struct {
	Dt     int64        `json:"dt"`
	Main   MainReadings `json:"main"`
	Wind   WindReadings `json:"wind"`
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Visibility float64             `json:"visibility"`
	Rain       *PrecipVolume       `json:"rain,omitempty"`
	Snow       *PrecipVolume       `json:"snow,omitempty"`
	Weather    []WeatherDescriptor `json:"weather"`
}

// Payload bundles the results of the two upstream calls. ForecastMissing is
// set when current conditions succeeded but the forecast call did not; the
// caller is expected to synthesize the forecast portion.
type Payload struct {
	Current         CurrentConditions
	Samples         []ForecastSample
	ForecastMissing bool
}
