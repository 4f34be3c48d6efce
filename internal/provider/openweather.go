package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/mausamlabs/mausam/internal/gazetteer"
)

// OpenWeatherClient fetches current conditions and the 5-day/3-hour forecast
// from OpenWeatherMap.
type OpenWeatherClient struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherClient(client *http.Client, apiKey string) *OpenWeatherClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherClient{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5",
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

func (c *OpenWeatherClient) Name() string {
	return c.name
}

// Fetch issues the current-conditions and forecast calls. Coordinate lookup
// is preferred when the resolved record carries lat/lon; otherwise the raw
// query text is sent. A forecast-only failure is not an error: the payload
// comes back with ForecastMissing set and valid current data.
func (c *OpenWeatherClient) Fetch(ctx context.Context, loc *gazetteer.LocationRecord, query string) (Payload, error) {
	if c.apiKey == "" {
		return Payload{}, ErrConfigMissing
	}

	current, err := c.fetchCurrent(ctx, loc, query)
	if err != nil {
		return Payload{}, err
	}

	// The forecast call always uses the coordinates echoed back by the
	// current-conditions response.
	samples, err := c.fetchForecast(ctx, current.Coord.Lat, current.Coord.Lon)
	if err != nil {
		log.Printf("provider %s: forecast fetch failed: %v; degrading to current only", c.name, err)
		return Payload{Current: current, ForecastMissing: true}, nil
	}

	return Payload{Current: current, Samples: samples}, nil
}

func (c *OpenWeatherClient) fetchCurrent(ctx context.Context, loc *gazetteer.LocationRecord, query string) (CurrentConditions, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", c.apiKey)
		values.Set("units", "metric")

		if loc != nil && loc.Lat != nil && loc.Lon != nil {
			values.Set("lat", fmt.Sprintf("%f", *loc.Lat))
			values.Set("lon", fmt.Sprintf("%f", *loc.Lon))
		} else {
			values.Set("q", query)
		}

		u := fmt.Sprintf("%s/weather?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return CurrentConditions{}, err
	}
	defer resp.Body.Close()

	var payload CurrentConditions
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return CurrentConditions{}, fmt.Errorf("decode current conditions: %w", err)
	}
	return payload, nil
}

func (c *OpenWeatherClient) fetchForecast(ctx context.Context, lat, lon float64) ([]ForecastSample, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", c.apiKey)
		values.Set("units", "metric")
		values.Set("lat", fmt.Sprintf("%f", lat))
		values.Set("lon", fmt.Sprintf("%f", lon))

		u := fmt.Sprintf("%s/forecast?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		List []ForecastSample `json:"list"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode forecast: %w", err)
	}
	return payload.List, nil
}
