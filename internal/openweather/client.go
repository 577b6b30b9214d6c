// Package openweather implements the geo-resolution and current-conditions
// clients against the OpenWeatherMap API.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/userweather/apiserver/apperror"
	"github.com/userweather/apiserver/config"
	"github.com/userweather/apiserver/internal/observability"
	"github.com/userweather/apiserver/types"
)

const (
	geoEndpoint     = "/geo/1.0/zip"
	weatherEndpoint = "/data/2.5/weather"

	// DefaultCountry is assumed when callers resolve a bare zip code.
	DefaultCountry = "US"
)

// Client calls the OpenWeatherMap zip-geocoding and current-conditions
// endpoints. The API key and base URL are fixed at construction.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient constructs a Client from the OpenWeather config.
func NewClient(cfg config.OpenWeatherConfig, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// CleanZip normalizes a postal code for the geocoding endpoint: hyphens are
// stripped, and US codes longer than five characters are truncated to the
// first five (ZIP+4 input drops its extension). Non-US codes pass through.
func CleanZip(zipCode, countryCode string) string {
	clean := strings.ReplaceAll(zipCode, "-", "")
	if countryCode == DefaultCountry && len(clean) > 5 {
		clean = clean[:5]
	}
	return clean
}

// ResolveZip turns a postal code into coordinates, a timezone offset, and a
// place name. The coordinates and city come from the zip-geocoding endpoint;
// the timezone comes from a follow-up current-conditions call, which is the
// only place the free tier exposes it.
//
// A 404 from the geocoder is reported as the geo-not-found kind; every other
// failure on either call is the geo-lookup-failed kind. Both carry the zip
// code as the caller supplied it.
func (c *Client) ResolveZip(ctx context.Context, zipCode, countryCode string) (types.Location, error) {
	start := time.Now()

	params := url.Values{
		"zip":   {fmt.Sprintf("%s,%s", CleanZip(zipCode, countryCode), countryCode)},
		"appid": {c.apiKey},
	}

	var geo geoResponse
	status, err := c.getJSON(ctx, geoEndpoint, params, &geo)
	c.metrics.UpstreamDuration.WithLabelValues("geo").Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("geo", "error").Inc()
		c.logger.Warn("zip geocoding failed", "zip", zipCode, "error", err)
		return types.Location{}, apperror.GeoLookupFailed(zipCode, err)
	}
	if status == http.StatusNotFound {
		c.metrics.UpstreamRequests.WithLabelValues("geo", "not_found").Inc()
		return types.Location{}, apperror.GeoNotFound(zipCode)
	}
	if status != http.StatusOK {
		c.metrics.UpstreamRequests.WithLabelValues("geo", "error").Inc()
		return types.Location{}, apperror.GeoLookupFailed(zipCode, fmt.Errorf("geocoding status %d", status))
	}
	c.metrics.UpstreamRequests.WithLabelValues("geo", "success").Inc()

	conditions, err := c.currentConditions(ctx, geo.Lat, geo.Lon, false)
	if err != nil {
		c.logger.Warn("timezone lookup failed", "zip", zipCode, "error", err)
		return types.Location{}, apperror.GeoLookupFailed(zipCode, err)
	}

	return types.Location{
		Latitude:  geo.Lat,
		Longitude: geo.Lon,
		Timezone:  conditions.Timezone,
		CityName:  geo.Name,
	}, nil
}

// CurrentWeather fetches a metric current-conditions snapshot for the given
// coordinates. Any failure collapses to the weather-unavailable kind; the
// coordinates are trusted because they come from previously resolved records.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64) (types.WeatherReport, error) {
	conditions, err := c.currentConditions(ctx, lat, lon, true)
	if err != nil {
		c.logger.Warn("weather fetch failed", "lat", lat, "lon", lon, "error", err)
		return types.WeatherReport{}, apperror.WeatherUnavailable(err)
	}

	report := types.WeatherReport{
		Temperature: conditions.Main.Temp,
		Humidity:    conditions.Main.Humidity,
		WindSpeed:   conditions.Wind.Speed,
	}
	if len(conditions.Weather) > 0 {
		report.Description = conditions.Weather[0].Description
	}
	return report, nil
}

func (c *Client) currentConditions(ctx context.Context, lat, lon float64, metric bool) (weatherResponse, error) {
	start := time.Now()

	params := url.Values{
		"lat":   {fmt.Sprintf("%v", lat)},
		"lon":   {fmt.Sprintf("%v", lon)},
		"appid": {c.apiKey},
	}
	if metric {
		params.Set("units", "metric")
	}

	var conditions weatherResponse
	status, err := c.getJSON(ctx, weatherEndpoint, params, &conditions)
	c.metrics.UpstreamDuration.WithLabelValues("weather").Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("weather", "error").Inc()
		return weatherResponse{}, err
	}
	if status != http.StatusOK {
		c.metrics.UpstreamRequests.WithLabelValues("weather", "error").Inc()
		return weatherResponse{}, fmt.Errorf("current conditions status %d", status)
	}
	c.metrics.UpstreamRequests.WithLabelValues("weather", "success").Inc()
	return conditions, nil
}

// getJSON performs one GET and decodes a JSON body on 2xx. Non-2xx statuses
// are returned to the caller for classification, with the body drained.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

// OpenWeatherMap API response types.

type geoResponse struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
}

type weatherResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Timezone int `json:"timezone"`
}
