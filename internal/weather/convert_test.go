package weather

import (
	"testing"
	"time"
)

func TestWindDirection(t *testing.T) {
	tests := []struct {
		degrees float64
		want    string
	}{
		{0, "N"},
		{90, "E"},
		{180, "S"},
		{270, "W"},
		{360, "N"},
		{22.5, "NNE"},
		{348.75, "N"}, // rounds up past NNW back to N
	}
	for _, tt := range tests {
		if got := WindDirection(tt.degrees); got != tt.want {
			t.Errorf("WindDirection(%v) = %q, want %q", tt.degrees, got, tt.want)
		}
	}
}

func TestWindDirectionAlwaysInCompassSet(t *testing.T) {
	valid := make(map[string]bool, 16)
	for _, d := range windDirections {
		valid[d] = true
	}
	for deg := 0.0; deg < 720; deg += 7.3 {
		if !valid[WindDirection(deg)] {
			t.Fatalf("WindDirection(%v) = %q not in compass set", deg, WindDirection(deg))
		}
	}
}

func TestCToF(t *testing.T) {
	tests := []struct{ c, f float64 }{
		{0, 32},
		{100, 212},
		{30, 86},
		{-40, -40},
		{37, 99}, // 98.6 rounds up
	}
	for _, tt := range tests {
		if got := CToF(tt.c); got != tt.f {
			t.Errorf("CToF(%v) = %v, want %v", tt.c, got, tt.f)
		}
	}
}

func TestEstimateUV(t *testing.T) {
	at := func(month time.Month, hour int) time.Time {
		return time.Date(2025, month, 10, hour, 0, 0, 0, istZone)
	}

	// Zero outside the 06:00-18:00 window regardless of season.
	for _, h := range []int{0, 3, 5, 19, 23} {
		if uv := EstimateUV(at(time.June, h)); uv != 0 {
			t.Errorf("EstimateUV at hour %d = %v, want 0", h, uv)
		}
	}

	// Solar-noon peak: summer 1.0*1.2*8 = 9.6 -> 10, winter 0.8*8 = 6.4 -> 6.
	if uv := EstimateUV(at(time.June, 12)); uv != 10 {
		t.Errorf("summer noon UV = %v, want 10", uv)
	}
	if uv := EstimateUV(at(time.January, 12)); uv != 6 {
		t.Errorf("winter noon UV = %v, want 6", uv)
	}

	// Window edges have a zero time factor.
	if uv := EstimateUV(at(time.June, 6)); uv != 0 {
		t.Errorf("UV at 06:00 = %v, want 0", uv)
	}
	if uv := EstimateUV(at(time.June, 18)); uv != 0 {
		t.Errorf("UV at 18:00 = %v, want 0", uv)
	}
}

func TestIndianStateForCoords(t *testing.T) {
	tests := []struct {
		lat, lon float64
		want     string
	}{
		{19.0, 73.0, "Maharashtra"},
		{25.0, 86.0, "Bihar"},
		{9.0, 76.5, "Kerala"},
		{22.0, 70.0, "Gujarat"},
		{50.0, 50.0, "India"}, // outside every box
	}
	for _, tt := range tests {
		if got := indianStateForCoords(tt.lat, tt.lon); got != tt.want {
			t.Errorf("indianStateForCoords(%v, %v) = %q, want %q", tt.lat, tt.lon, got, tt.want)
		}
	}
}

func TestTimezoneID(t *testing.T) {
	if got := TimezoneID(19.076, 72.8777); got != "Asia/Kolkata" {
		t.Errorf("Mumbai timezone = %q, want Asia/Kolkata", got)
	}
	if got := TimezoneID(51.5074, -0.1278); got != "UTC" {
		t.Errorf("London timezone = %q, want UTC", got)
	}
	// Box edges are inclusive.
	if got := TimezoneID(6, 68); got != "Asia/Kolkata" {
		t.Errorf("edge coordinate timezone = %q, want Asia/Kolkata", got)
	}
}

func TestCapitalizeWords(t *testing.T) {
	if got := capitalizeWords("scattered clouds"); got != "Scattered Clouds" {
		t.Errorf("capitalizeWords = %q", got)
	}
	if got := capitalizeWords("rain"); got != "Rain" {
		t.Errorf("capitalizeWords = %q", got)
	}
}
