package weather

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/mausamlabs/mausam/internal/common"
	"github.com/mausamlabs/mausam/internal/gazetteer"
)

const (
	syntheticIconURL       = "https://cdn.weatherapi.com/weather/64x64/day/116.png"
	syntheticConditionCode = 1003
)

// Generator produces plausible fallback weather when the provider cannot.
// Randomness comes from the injected source so tests can pin exact outputs;
// the mutex makes the shared source safe under concurrent requests.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	Now func() time.Time
}

func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng, Now: time.Now}
}

// Generate builds a full synthetic record for a gazetteer location. The
// baseline temperature comes from the region keyword table; the condition is
// chosen once and held constant across every generated sample.
func (g *Generator) Generate(rec *gazetteer.LocationRecord) Record {
	g.mu.Lock()
	defer g.mu.Unlock()

	lat, lon := g.coordsFor(rec)
	base := g.baseTempForRegion(rec.Region)
	cond := g.pickCondition(rec.Region)

	loc := g.buildLocation(rec.Name, rec.Region, rec.Country, rec.Pincode, lat, lon)
	return g.build(loc, base, cond)
}

// GenerateAt builds a synthetic record for a bare coordinate pair. The
// baseline is latitude-driven: warmer toward the equator.
func (g *Generator) GenerateAt(lat, lon float64) Record {
	g.mu.Lock()
	defer g.mu.Unlock()

	name := fmt.Sprintf("Location (%.2f, %.2f)", lat, lon)
	base := 30 - math.Abs(lat)/90*25 + (g.rng.Float64()*10 - 5)
	cond := g.pickCondition("")

	loc := g.buildLocation(name, "Current Location", "Unknown", "", lat, lon)
	return g.build(loc, base, cond)
}

// ForecastFromCurrent synthesizes only the forecast portion from a real
// current-conditions block, for the case where the forecast fetch failed but
// current data is good. The current block itself is left untouched.
func (g *Generator) ForecastFromCurrent(loc Location, cur Current) Forecast {
	g.mu.Lock()
	defer g.mu.Unlock()

	tz := tzLocation(loc.TzID)
	now := g.Now().In(tz)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, tz)

	base := cur.TempC
	windMps := cur.WindKph / 3.6
	visM := cur.VisKm * 1000

	days := make([]ForecastDay, 0, 7)
	for i := 0; i < 7; i++ {
		dayStart := today.AddDate(0, 0, i)
		hours := make([]Hour, 0, 24)
		rainy := 0

		for h := 0; h < 24; h++ {
			t := dayStart.Add(time.Duration(h) * time.Hour)
			tempC := math.Round(base + 5*math.Sin(float64(h)/24*2*math.Pi))

			isDay := 0
			if IsDayHour(h) {
				isDay = 1
			}

			willRain := 0
			var rainChance float64
			if cur.PrecipMm > 0 {
				willRain = 1
				rainy++
				rainChance = math.Min(100, math.Round(cur.PrecipMm*20))
			}

			hours = append(hours, Hour{
				TimeEpoch:    t.Unix(),
				Time:         t.Format(localtimeLayout),
				TempC:        tempC,
				TempF:        CToF(tempC),
				IsDay:        isDay,
				Condition:    cur.Condition,
				WindMph:      cur.WindMph,
				WindKph:      cur.WindKph,
				WindDir:      cur.WindDir,
				PressureMb:   cur.PressureMb,
				PressureIn:   cur.PressureIn,
				PrecipMm:     cur.PrecipMm,
				PrecipIn:     cur.PrecipIn,
				Humidity:     cur.Humidity,
				Cloud:        cur.Cloud,
				FeelslikeC:   cur.FeelslikeC,
				FeelslikeF:   cur.FeelslikeF,
				WindchillC:   cur.FeelslikeC - 2,
				WindchillF:   CToF(cur.FeelslikeC - 2),
				HeatindexC:   cur.FeelslikeC + 2,
				HeatindexF:   CToF(cur.FeelslikeC + 2),
				DewpointC:    math.Round(tempC - (100-cur.Humidity)/5),
				DewpointF:    CToF(math.Round(tempC - (100-cur.Humidity)/5)),
				WillItRain:   willRain,
				ChanceOfRain: rainChance,
				VisKm:        cur.VisKm,
				VisMiles:     cur.VisMiles,
				GustMph:      cur.GustMph,
				GustKph:      cur.GustKph,
				UV:           EstimateUV(t),
			})
		}

		maxC := math.Round(base + g.rng.Float64()*6 - 3)
		if maxC < base {
			maxC = math.Round(base)
		}
		minC := math.Round(base - g.rng.Float64()*8)
		avgC := math.Round(base)
		maxMps := windMps + g.rng.Float64()*4.5
		totalMm := g.rng.Float64() * 5

		days = append(days, ForecastDay{
			Date:      dayStart.Format("2006-01-02"),
			DateEpoch: dayStart.Unix(),
			Day: Day{
				MaxtempC:          maxC,
				MaxtempF:          CToF(maxC),
				MintempC:          minC,
				MintempF:          CToF(minC),
				AvgtempC:          avgC,
				AvgtempF:          CToF(avgC),
				MaxwindMph:        mpsToMph(maxMps),
				MaxwindKph:        mpsToKph(maxMps),
				TotalprecipMm:     totalMm,
				TotalprecipIn:     mmToInches(totalMm),
				AvgvisKm:          visKm(visM),
				AvgvisMiles:       visMiles(visM),
				Avghumidity:       math.Round(cur.Humidity + g.rng.Float64()*20 - 10),
				DailyWillItRain:   boolToInt(rainy > 0),
				DailyChanceOfRain: math.Round(float64(rainy) / 24 * 100),
				Condition:         cur.Condition,
				UV:                EstimateUV(dayStart.Add(12 * time.Hour)),
			},
			Hour: hours,
		})
	}

	return Forecast{Forecastday: days}
}

// RandomLocation picks a pseudo-random record from a country subset, used
// when a text query matches nothing and the provider is unavailable.
func (g *Generator) RandomLocation(res *gazetteer.Resolver, country string) *gazetteer.LocationRecord {
	g.mu.Lock()
	defer g.mu.Unlock()

	recs := res.FilterByCountry(country)
	if len(recs) == 0 {
		return nil
	}
	return &recs[g.rng.Intn(len(recs))]
}

// baseTempForRegion picks the baseline temperature bracket by region keyword
// plus jitter in [-3, +3].
func (g *Generator) baseTempForRegion(region string) float64 {
	r := strings.ToLower(region)
	base := 25.0
	switch {
	case common.HasAny(r, "himachal", "uttarakhand", "kashmir", "ladakh", "sikkim"):
		base = 15 // hill stations
	case common.HasAny(r, "rajasthan", "gujarat"):
		base = 35 // desert
	case common.HasAny(r, "kerala", "goa", "tamil nadu"):
		base = 30 // coastal
	case common.HasAny(r, "punjab", "haryana", "delhi"):
		base = 32 // northern plains
	case common.HasAny(r, "west bengal", "odisha", "bihar"):
		base = 31
	case common.HasAny(r, "maharashtra", "madhya pradesh"):
		base = 28
	}
	return base + g.rng.Float64()*6 - 3
}

// pickCondition chooses one region-appropriate condition for the whole call.
func (g *Generator) pickCondition(region string) Condition {
	conds := []string{"Sunny", "Partly cloudy", "Cloudy", "Clear"}
	r := strings.ToLower(region)
	switch {
	case common.HasAny(r, "kerala", "goa"):
		conds = append(conds, "Light rain", "Humid")
	case common.HasAny(r, "rajasthan", "gujarat"):
		conds = append(conds, "Hot", "Very hot", "Dry")
	case common.HasAny(r, "himachal", "uttarakhand"):
		conds = append(conds, "Cool", "Pleasant", "Misty")
	}
	return Condition{
		Text: conds[g.rng.Intn(len(conds))],
		Icon: syntheticIconURL,
		Code: syntheticConditionCode,
	}
}

func (g *Generator) coordsFor(rec *gazetteer.LocationRecord) (float64, float64) {
	if rec.Lat != nil && rec.Lon != nil {
		return *rec.Lat, *rec.Lon
	}
	// Somewhere on the subcontinent.
	return 20 + g.rng.Float64()*15, 70 + g.rng.Float64()*20
}

func (g *Generator) buildLocation(name, region, country, pincode string, lat, lon float64) Location {
	tzID := TimezoneID(lat, lon)
	return Location{
		Name:      name,
		Region:    region,
		Country:   country,
		Pincode:   pincode,
		Lat:       lat,
		Lon:       lon,
		TzID:      tzID,
		Localtime: g.Now().In(tzLocation(tzID)).Format(localtimeLayout),
	}
}

// build assembles current conditions and a 7-day forecast around a baseline
// temperature. Hourly temperature follows a diurnal sine curve; every pair of
// derived units comes from a single underlying value.
func (g *Generator) build(loc Location, base float64, cond Condition) Record {
	tz := tzLocation(loc.TzID)
	now := g.Now().In(tz)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, tz)

	tempC := math.Round(base)
	feelsC := math.Round(base + g.rng.Float64()*4 - 2)
	windMps := g.rng.Float64() * 9
	windDeg := g.rng.Float64() * 360
	gustMps := g.rng.Float64() * 13
	pressureMb := 1013 + math.Round(g.rng.Float64()*20-10)
	precipMm := g.rng.Float64() * 2
	visM := (g.rng.Float64()*10 + 5) * 1000

	current := Current{
		TempC:      tempC,
		TempF:      CToF(tempC),
		Condition:  cond,
		WindMph:    mpsToMph(windMps),
		WindKph:    mpsToKph(windMps),
		WindDir:    WindDirection(windDeg),
		PressureMb: pressureMb,
		PressureIn: mbToInches(pressureMb),
		PrecipMm:   precipMm,
		PrecipIn:   mmToInches(precipMm),
		Humidity:   math.Round(g.rng.Float64()*40 + 40),
		Cloud:      math.Round(g.rng.Float64() * 100),
		FeelslikeC: feelsC,
		FeelslikeF: CToF(feelsC),
		VisKm:      visKm(visM),
		VisMiles:   visMiles(visM),
		UV:         EstimateUV(now),
		GustMph:    mpsToMph(gustMps),
		GustKph:    mpsToKph(gustMps),
	}

	days := make([]ForecastDay, 0, 7)
	for i := 0; i < 7; i++ {
		dayStart := today.AddDate(0, 0, i)
		days = append(days, g.buildDay(dayStart, base, cond, tz))
	}

	return Record{Location: loc, Current: current, Forecast: Forecast{Forecastday: days}}
}

// buildDay generates 24 hourly samples for one date and aggregates them with
// the same rules as real-forecast bucketing.
func (g *Generator) buildDay(dayStart time.Time, base float64, cond Condition, tz *time.Location) ForecastDay {
	var (
		rawTemps [24]float64
		maxMps   float64
		sumHum   float64
		sumVis   float64
		totalMm  float64
		rainy    int
	)

	hours := make([]Hour, 0, 24)
	for h := 0; h < 24; h++ {
		t := dayStart.Add(time.Duration(h) * time.Hour)
		raw := base + 5*math.Sin(float64(h)/24*2*math.Pi)
		rawTemps[h] = raw
		tempC := math.Round(raw)

		windMps := g.rng.Float64() * 9
		windDeg := g.rng.Float64() * 360
		gustMps := g.rng.Float64() * 13
		pressureMb := 1013 + math.Round(g.rng.Float64()*20-10)
		humidity := math.Round(g.rng.Float64()*40 + 40)
		visM := (g.rng.Float64()*10 + 5) * 1000
		feelsC := math.Round(raw + g.rng.Float64()*2 - 1)

		maxMps = math.Max(maxMps, windMps)
		sumHum += humidity
		sumVis += visM

		willRain := 0
		var precipMm, rainChance float64
		if g.rng.Float64() > 0.8 {
			willRain = 1
			rainy++
			precipMm = g.rng.Float64() * 2
			totalMm += precipMm
			rainChance = math.Min(100, math.Round(precipMm*20))
		}

		isDay := 0
		if IsDayHour(h) {
			isDay = 1
		}

		hours = append(hours, Hour{
			TimeEpoch:    t.Unix(),
			Time:         t.Format(localtimeLayout),
			TempC:        tempC,
			TempF:        CToF(tempC),
			IsDay:        isDay,
			Condition:    cond,
			WindMph:      mpsToMph(windMps),
			WindKph:      mpsToKph(windMps),
			WindDir:      WindDirection(windDeg),
			PressureMb:   pressureMb,
			PressureIn:   mbToInches(pressureMb),
			PrecipMm:     precipMm,
			PrecipIn:     mmToInches(precipMm),
			Humidity:     humidity,
			Cloud:        math.Round(g.rng.Float64() * 100),
			FeelslikeC:   feelsC,
			FeelslikeF:   CToF(feelsC),
			WindchillC:   tempC - 2,
			WindchillF:   CToF(tempC - 2),
			HeatindexC:   tempC + 2,
			HeatindexF:   CToF(tempC + 2),
			DewpointC:    tempC - 5,
			DewpointF:    CToF(tempC - 5),
			WillItRain:   willRain,
			ChanceOfRain: rainChance,
			VisKm:        visKm(visM),
			VisMiles:     visMiles(visM),
			GustMph:      mpsToMph(gustMps),
			GustKph:      mpsToKph(gustMps),
			UV:           EstimateUV(t),
		})
	}

	maxRaw, minRaw, sumRaw := math.Inf(-1), math.Inf(1), 0.0
	for _, raw := range rawTemps {
		maxRaw = math.Max(maxRaw, raw)
		minRaw = math.Min(minRaw, raw)
		sumRaw += raw
	}
	maxC := math.Round(maxRaw)
	minC := math.Round(minRaw)
	avgC := math.Round(sumRaw / 24)

	return ForecastDay{
		Date:      dayStart.Format("2006-01-02"),
		DateEpoch: dayStart.Unix(),
		Day: Day{
			MaxtempC:          maxC,
			MaxtempF:          CToF(maxC),
			MintempC:          minC,
			MintempF:          CToF(minC),
			AvgtempC:          avgC,
			AvgtempF:          CToF(avgC),
			MaxwindMph:        mpsToMph(maxMps),
			MaxwindKph:        mpsToKph(maxMps),
			TotalprecipMm:     totalMm,
			TotalprecipIn:     mmToInches(totalMm),
			AvgvisKm:          visKm(sumVis / 24),
			AvgvisMiles:       visMiles(sumVis / 24),
			Avghumidity:       math.Round(sumHum / 24),
			DailyWillItRain:   boolToInt(rainy > 0),
			DailyChanceOfRain: math.Round(float64(rainy) / 24 * 100),
			Condition:         cond,
			UV:                EstimateUV(dayStart.Add(12 * time.Hour)),
		},
		Hour: hours,
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
