package weather

import (
	"math"
	"strings"
	"time"
	"unicode"
)

// Derivation formulas shared by normalization and synthetic generation.
// Celsius, m/s, millibars, and millimeters are the source units; everything
// else is derived, never independently sourced.

var windDirections = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// WindDirection maps a degree value onto the 16-point compass.
func WindDirection(degrees float64) string {
	idx := int(math.Round(degrees/22.5)) % 16
	if idx < 0 {
		idx += 16
	}
	return windDirections[idx]
}

// CToF derives Fahrenheit from a Celsius value.
func CToF(c float64) float64 {
	return math.Round(c*9/5 + 32)
}

func mpsToKph(mps float64) float64 { return math.Round(mps * 3.6) }
func mpsToMph(mps float64) float64 { return math.Round(mps * 2.237) }

func mbToInches(mb float64) float64 { return math.Round(mb*0.02953*100) / 100 }
func mmToInches(mm float64) float64 { return math.Round(mm*0.0394*100) / 100 }

// defaultVisibilityM substitutes for an unreported visibility reading.
const defaultVisibilityM = 10000.0

func visKm(meters float64) float64    { return math.Round(meters / 1000) }
func visMiles(meters float64) float64 { return math.Round(meters / 1609) }

// IsDayHour reports whether an hour of day falls in the 06:00-18:00 window.
func IsDayHour(hour int) bool {
	return hour >= 6 && hour <= 18
}

// EstimateUV approximates the UV index for a local timestamp: zero outside
// the daylight window, peaking at solar noon, higher April through September.
func EstimateUV(t time.Time) float64 {
	hour := t.Hour()
	if !IsDayHour(hour) {
		return 0
	}

	timeFactor := 1 - math.Abs(12-float64(hour))/6
	seasonFactor := 0.8
	if m := int(t.Month()); m >= 4 && m <= 9 {
		seasonFactor = 1.2
	}

	return math.Round(math.Max(0, math.Min(11, timeFactor*seasonFactor*8)))
}

// stateBox maps a coordinate bounding box to an Indian state. Boxes are
// checked in order; first match wins.
type stateBox struct {
	minLat, maxLat float64
	minLon, maxLon float64
	name           string
}

var indianStateBoxes = []stateBox{
	{24, 27, 84, 88, "Bihar"},
	{18, 20, 72, 75, "Maharashtra"},
	{12, 14, 77, 78, "Karnataka"},
	{10, 12, 76, 78, "Tamil Nadu"},
	{8, 10, 76, 77, "Kerala"},
	{26, 30, 74, 78, "Rajasthan"},
	{21, 24, 68, 74, "Gujarat"},
	{28, 29, 76, 78, "Delhi"},
	{22, 25, 88, 89, "West Bengal"},
}

// indianStateForCoords resolves coordinates to a state name, falling back to
// the country itself outside all known boxes.
func indianStateForCoords(lat, lon float64) string {
	for _, b := range indianStateBoxes {
		if lat >= b.minLat && lat <= b.maxLat && lon >= b.minLon && lon <= b.maxLon {
			return b.name
		}
	}
	return "India"
}

// TimezoneID infers a timezone identifier from coordinates. A single broad
// box covers the subcontinent; everything else maps to UTC.
func TimezoneID(lat, lon float64) string {
	if lon >= 68 && lon <= 97 && lat >= 6 && lat <= 37 {
		return "Asia/Kolkata"
	}
	return "UTC"
}

var istZone = time.FixedZone("Asia/Kolkata", int((5*time.Hour + 30*time.Minute).Seconds()))

// tzLocation resolves an inferred identifier to a fixed offset, avoiding a
// runtime tzdata dependency.
func tzLocation(id string) *time.Location {
	if id == "Asia/Kolkata" {
		return istZone
	}
	return time.UTC
}

// localtimeLayout matches the dashboard's expected localtime format.
const localtimeLayout = "2006-01-02T15:04:05"

// capitalizeWords title-cases each word of a provider description.
func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
