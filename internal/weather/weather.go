// Package weather is the best-effort irrigation advisory. It geocodes
// a postal code and pulls a daily forecast from Open-Meteo (no API
// key), then turns the forecast plus the near-term task list into
// plain-text tips. Nothing in here is load-bearing: every failure
// surfaces as an error the caller logs and moves past.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	geocodeURL  = "https://geocoding-api.open-meteo.com/v1/search"
	forecastURL = "https://api.open-meteo.com/v1/forecast"
)

// Location is a geocoded postal code.
type Location struct {
	Zip  string  `json:"zip"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
}

// Forecast is the subset of the Open-Meteo daily response the advisory
// reads.
type Forecast struct {
	DailyUnits struct {
		Precipitation string `json:"precipitation_sum"`
		Temperature   string `json:"temperature_2m_max"`
		WindSpeed     string `json:"windspeed_10m_max"`
	} `json:"daily_units"`
	Daily struct {
		Time          []string  `json:"time"`
		TempMax       []float64 `json:"temperature_2m_max"`
		TempMin       []float64 `json:"temperature_2m_min"`
		Precipitation []float64 `json:"precipitation_sum"`
		WindMax       []float64 `json:"windspeed_10m_max"`
	} `json:"daily"`
}

// Client calls the Open-Meteo endpoints.
type Client struct {
	http *http.Client
}

// NewClient builds a client with a short timeout; the advisory must
// never hold the CLI hostage.
func NewClient() *Client {
	return &Client{http: &http.Client{Timeout: 10 * time.Second}}
}

// Geocode resolves a US postal code to coordinates.
func (c *Client) Geocode(ctx context.Context, zip string) (*Location, error) {
	q := url.Values{}
	q.Set("name", zip+" USA")
	q.Set("count", "1")
	q.Set("language", "en")
	q.Set("format", "json")
	q.Set("country_code", "US")

	var resp struct {
		Results []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Name      string  `json:"name"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, geocodeURL+"?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("geocode %s: %w", zip, err)
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("geocode %s: no result", zip)
	}
	r := resp.Results[0]
	return &Location{Zip: zip, Lat: r.Latitude, Lon: r.Longitude, Name: r.Name}, nil
}

// DailyForecast fetches the daily forecast for a location.
func (c *Client) DailyForecast(ctx context.Context, loc *Location) (*Forecast, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%f", loc.Lat))
	q.Set("longitude", fmt.Sprintf("%f", loc.Lon))
	q.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,windspeed_10m_max")
	q.Set("timezone", "auto")

	var f Forecast
	if err := c.getJSON(ctx, forecastURL+"?"+q.Encode(), &f); err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}
	return &f, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
