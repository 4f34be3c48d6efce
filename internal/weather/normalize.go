package weather

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/mausamlabs/mausam/internal/gazetteer"
	"github.com/mausamlabs/mausam/internal/provider"
)

// Normalizer converts raw provider payloads into canonical records. It is
// deterministic for a fixed input and clock; missing numeric inputs default
// to zero (visibility to 10000 m) before conversion.
type Normalizer struct {
	Now func() time.Time
}

func NewNormalizer() *Normalizer {
	return &Normalizer{Now: time.Now}
}

// Normalize builds the canonical record for a raw payload. The matched
// gazetteer record, when present, contributes pincode and explicit region.
// Forecast samples, if any, are bucketed by calendar date; a payload without
// samples yields an empty forecast for the caller to fill in.
func (n *Normalizer) Normalize(p provider.Payload, matched *gazetteer.LocationRecord) Record {
	loc := n.buildLocation(p.Current, matched)
	tz := tzLocation(loc.TzID)

	return Record{
		Location: loc,
		Current:  n.buildCurrent(p.Current, tz),
		Forecast: buildForecast(p.Samples, tz),
	}
}

func (n *Normalizer) buildLocation(c provider.CurrentConditions, matched *gazetteer.LocationRecord) Location {
	name := c.Name
	if name == "" && matched != nil {
		name = matched.Name
	}

	region := c.Sys.Country
	if matched != nil && matched.Region != "" {
		region = matched.Region
	} else if c.Sys.Country == "IN" {
		region = indianStateForCoords(c.Coord.Lat, c.Coord.Lon)
	}

	var pincode string
	if matched != nil {
		pincode = matched.Pincode
	}

	tzID := TimezoneID(c.Coord.Lat, c.Coord.Lon)

	return Location{
		Name:      name,
		Region:    region,
		Country:   c.Sys.Country,
		Pincode:   pincode,
		Lat:       c.Coord.Lat,
		Lon:       c.Coord.Lon,
		TzID:      tzID,
		Localtime: n.Now().In(tzLocation(tzID)).Format(localtimeLayout),
	}
}

func (n *Normalizer) buildCurrent(c provider.CurrentConditions, tz *time.Location) Current {
	tempC := math.Round(c.Main.Temp)
	feelsC := math.Round(c.Main.FeelsLike)

	precipMm := 0.0
	if c.Rain != nil {
		precipMm = c.Rain.OneH
		if precipMm == 0 {
			precipMm = c.Rain.ThreeH
		}
	}

	vis := c.Visibility
	if vis == 0 {
		vis = defaultVisibilityM
	}

	return Current{
		TempC:      tempC,
		TempF:      CToF(tempC),
		Condition:  conditionFromDescriptors(c.Weather),
		WindMph:    mpsToMph(c.Wind.Speed),
		WindKph:    mpsToKph(c.Wind.Speed),
		WindDir:    WindDirection(c.Wind.Deg),
		PressureMb: c.Main.Pressure,
		PressureIn: mbToInches(c.Main.Pressure),
		PrecipMm:   precipMm,
		PrecipIn:   mmToInches(precipMm),
		Humidity:   c.Main.Humidity,
		Cloud:      c.Clouds.All,
		FeelslikeC: feelsC,
		FeelslikeF: CToF(feelsC),
		VisKm:      visKm(vis),
		VisMiles:   visMiles(vis),
		UV:         EstimateUV(n.Now().In(tz)),
		GustMph:    mpsToMph(c.Wind.Gust),
		GustKph:    mpsToKph(c.Wind.Gust),
	}
}

// buildForecast groups samples by calendar date in the location's timezone
// and aggregates each bucket. Buckets come out in ascending date order,
// capped at 7 days of up to 24 entries each.
func buildForecast(samples []provider.ForecastSample, tz *time.Location) Forecast {
	if len(samples) == 0 {
		return Forecast{}
	}

	buckets := make(map[string][]provider.ForecastSample)
	for _, s := range samples {
		key := time.Unix(s.Dt, 0).In(tz).Format("2006-01-02")
		buckets[key] = append(buckets[key], s)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if len(keys) > 7 {
		keys = keys[:7]
	}

	days := make([]ForecastDay, 0, len(keys))
	for _, date := range keys {
		bucket := buckets[date]

		hourSamples := bucket
		if len(hourSamples) > 24 {
			hourSamples = hourSamples[:24]
		}
		hours := make([]Hour, 0, len(hourSamples))
		for _, s := range hourSamples {
			hours = append(hours, sampleToHour(s, tz))
		}

		dayStart, _ := time.ParseInLocation("2006-01-02", date, tz)

		days = append(days, ForecastDay{
			Date:      date,
			DateEpoch: dayStart.Unix(),
			Day:       aggregateDay(bucket, dayStart),
			Hour:      hours,
		})
	}

	return Forecast{Forecastday: days}
}

// aggregateDay reduces one date bucket to its daily summary. Max/min come
// from the true extremes of the raw temperature samples, not from the
// average; rain/snow chance is the share of samples carrying precipitation.
// The representative condition is the bucket's first sample.
func aggregateDay(bucket []provider.ForecastSample, dayStart time.Time) Day {
	var (
		maxTemp   = math.Inf(-1)
		minTemp   = math.Inf(1)
		sumTemp   float64
		maxWind   float64
		sumPrecip float64
		sumSnow   float64
		sumVis    float64
		sumHum    float64
		rainy     int
		snowy     int
	)

	for _, s := range bucket {
		maxTemp = math.Max(maxTemp, s.Main.Temp)
		minTemp = math.Min(minTemp, s.Main.Temp)
		sumTemp += s.Main.Temp
		maxWind = math.Max(maxWind, s.Wind.Speed)
		sumHum += s.Main.Humidity

		vis := s.Visibility
		if vis == 0 {
			vis = defaultVisibilityM
		}
		sumVis += vis

		if s.Rain != nil {
			rainy++
			sumPrecip += s.Rain.ThreeH
		}
		if s.Snow != nil {
			snowy++
			sumSnow += s.Snow.ThreeH
		}
	}

	n := float64(len(bucket))
	maxC := math.Round(maxTemp)
	minC := math.Round(minTemp)
	avgC := math.Round(sumTemp / n)

	willRain, willSnow := 0, 0
	if rainy > 0 {
		willRain = 1
	}
	if snowy > 0 {
		willSnow = 1
	}

	return Day{
		MaxtempC:          maxC,
		MaxtempF:          CToF(maxC),
		MintempC:          minC,
		MintempF:          CToF(minC),
		AvgtempC:          avgC,
		AvgtempF:          CToF(avgC),
		MaxwindMph:        mpsToMph(maxWind),
		MaxwindKph:        mpsToKph(maxWind),
		TotalprecipMm:     sumPrecip,
		TotalprecipIn:     mmToInches(sumPrecip),
		TotalsnowCm:       sumSnow / 10,
		AvgvisKm:          visKm(sumVis / n),
		AvgvisMiles:       visMiles(sumVis / n),
		Avghumidity:       math.Round(sumHum / n),
		DailyWillItRain:   willRain,
		DailyChanceOfRain: math.Round(float64(rainy) / n * 100),
		DailyWillItSnow:   willSnow,
		DailyChanceOfSnow: math.Round(float64(snowy) / n * 100),
		Condition:         conditionFromDescriptors(bucket[0].Weather),
		UV:                EstimateUV(dayStart.Add(12 * time.Hour)),
	}
}

func sampleToHour(s provider.ForecastSample, tz *time.Location) Hour {
	t := time.Unix(s.Dt, 0).In(tz)

	tempC := math.Round(s.Main.Temp)
	feelsC := math.Round(s.Main.FeelsLike)
	dewC := math.Round(s.Main.Temp - (100-s.Main.Humidity)/5)

	isDay := 0
	if IsDayHour(t.Hour()) {
		isDay = 1
	}

	var precipMm, rainChance float64
	willRain := 0
	if s.Rain != nil {
		precipMm = s.Rain.ThreeH
		rainChance = math.Min(100, math.Round(s.Rain.ThreeH*20))
		willRain = 1
	}
	var snowChance float64
	willSnow := 0
	if s.Snow != nil {
		snowChance = math.Min(100, math.Round(s.Snow.ThreeH*20))
		willSnow = 1
	}

	vis := s.Visibility
	if vis == 0 {
		vis = defaultVisibilityM
	}

	return Hour{
		TimeEpoch:    s.Dt,
		Time:         t.Format(localtimeLayout),
		TempC:        tempC,
		TempF:        CToF(tempC),
		IsDay:        isDay,
		Condition:    conditionFromDescriptors(s.Weather),
		WindMph:      mpsToMph(s.Wind.Speed),
		WindKph:      mpsToKph(s.Wind.Speed),
		WindDir:      WindDirection(s.Wind.Deg),
		PressureMb:   s.Main.Pressure,
		PressureIn:   mbToInches(s.Main.Pressure),
		PrecipMm:     precipMm,
		PrecipIn:     mmToInches(precipMm),
		Humidity:     s.Main.Humidity,
		Cloud:        s.Clouds.All,
		FeelslikeC:   feelsC,
		FeelslikeF:   CToF(feelsC),
		WindchillC:   feelsC - 2,
		WindchillF:   CToF(feelsC - 2),
		HeatindexC:   feelsC + 2,
		HeatindexF:   CToF(feelsC + 2),
		DewpointC:    dewC,
		DewpointF:    CToF(dewC),
		WillItRain:   willRain,
		ChanceOfRain: rainChance,
		WillItSnow:   willSnow,
		ChanceOfSnow: snowChance,
		VisKm:        visKm(vis),
		VisMiles:     visMiles(vis),
		GustMph:      mpsToMph(s.Wind.Gust),
		GustKph:      mpsToKph(s.Wind.Gust),
		UV:           EstimateUV(t),
	}
}

func conditionFromDescriptors(ws []provider.WeatherDescriptor) Condition {
	if len(ws) == 0 {
		return Condition{Text: "Clear", Icon: openWeatherIconURL("01d"), Code: 800}
	}
	return Condition{
		Text: capitalizeWords(ws[0].Description),
		Icon: openWeatherIconURL(ws[0].Icon),
		Code: ws[0].ID,
	}
}

func openWeatherIconURL(icon string) string {
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", icon)
}
