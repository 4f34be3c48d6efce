package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mausamlabs/mausam/internal/gazetteer"
)

const currentBody = `{
	"name": "Mumbai",
	"dt": 1718000000,
	"sys": {"country": "IN"},
	"coord": {"lat": 19.076, "lon": 72.8777},
	"main": {"temp": 31.2, "feels_like": 35.1, "pressure": 1008, "humidity": 74},
	"wind": {"speed": 4.2, "deg": 250, "gust": 6.1},
	"clouds": {"all": 40},
	"visibility": 8000,
	"weather": [{"id": 802, "main": "Clouds", "description": "scattered clouds", "icon": "03d"}]
}`

const forecastBody = `{
	"list": [
		{"dt": 1718010000, "main": {"temp": 30.0, "feels_like": 33.0, "pressure": 1007, "humidity": 70},
		 "wind": {"speed": 3.0, "deg": 240}, "clouds": {"all": 20}, "visibility": 10000,
		 "weather": [{"id": 800, "main": "Clear", "description": "clear sky", "icon": "01d"}]}
	]
}`

// newTestClient points the client at a test server with fast backoff so
// retry paths do not slow the suite down.
func newTestClient(t *testing.T, handler http.Handler) (*OpenWeatherClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewOpenWeatherClient(srv.Client(), "test-key")
	c.baseURL = srv.URL
	c.httpCfg.Backoff = BackoffConfig{
		MaxRetries:      1,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
	}
	return c, srv
}

func TestFetchWithoutCredentialNeverTouchesNetwork(t *testing.T) {
	var hits atomic.Int64
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	c.apiKey = ""

	_, err := c.Fetch(context.Background(), nil, "Mumbai")
	if !errors.Is(err, ErrConfigMissing) {
		t.Fatalf("expected ErrConfigMissing, got %v", err)
	}
	if hits.Load() != 0 {
		t.Fatalf("expected no requests, got %d", hits.Load())
	}
}

func TestFetchAuthRejected(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.Fetch(context.Background(), nil, "Mumbai")
	if !errors.Is(err, ErrAuthRejected) {
		t.Fatalf("expected ErrAuthRejected, got %v", err)
	}
}

func TestFetchLocationNotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.Fetch(context.Background(), nil, "Xyzzystan")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchSuccess(t *testing.T) {
	lat, lon := 19.076, 72.8777
	loc := &gazetteer.LocationRecord{Name: "Mumbai", Lat: &lat, Lon: &lon}

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/weather":
			if r.URL.Query().Get("lat") == "" {
				t.Error("expected coordinate-based lookup for resolved location")
			}
			w.Write([]byte(currentBody))
		case "/forecast":
			w.Write([]byte(forecastBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	p, err := c.Fetch(context.Background(), loc, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ForecastMissing {
		t.Fatal("forecast should be present")
	}
	if p.Current.Name != "Mumbai" || p.Current.Main.Temp != 31.2 {
		t.Fatalf("unexpected current conditions: %+v", p.Current)
	}
	if len(p.Samples) != 1 || p.Samples[0].Main.Temp != 30.0 {
		t.Fatalf("unexpected forecast samples: %+v", p.Samples)
	}
}

func TestFetchForecastFailureDegradesGracefully(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/weather":
			w.Write([]byte(currentBody))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))

	p, err := c.Fetch(context.Background(), nil, "Mumbai")
	if err != nil {
		t.Fatalf("expected graceful degradation, got error: %v", err)
	}
	if !p.ForecastMissing {
		t.Fatal("expected ForecastMissing to be set")
	}
	if p.Current.Name != "Mumbai" {
		t.Fatalf("current conditions lost in degradation: %+v", p.Current)
	}
}
