package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"go.uber.org/zap"
)

const DefaultOneCallURL = "https://api.openweathermap.org/data/2.5/onecall"

type OpenWeatherClient struct {
	*BaseClient
	apiKey  string
	baseURL string
}

// OneCallResponse is the subset of the One Call payload the proxy reads.
// Required fields are pointers so that missing values can be told apart
// from zeros.
type OneCallResponse struct {
	Lat      float64         `json:"lat"`
	Lon      float64         `json:"lon"`
	Timezone string          `json:"timezone"`
	Current  *OneCallCurrent `json:"current"`
	Daily    []OneCallDaily  `json:"daily"`
}

type OneCallCondition struct {
	ID          int     `json:"id"`
	Main        *string `json:"main"`
	Description string  `json:"description"`
	Icon        *string `json:"icon"`
}

type OneCallCurrent struct {
	Dt        *int64             `json:"dt"`
	Temp      *float64           `json:"temp"`
	Humidity  *float64           `json:"humidity"`
	WindSpeed *float64           `json:"wind_speed"`
	WindDeg   *float64           `json:"wind_deg"`
	Weather   []OneCallCondition `json:"weather"`
}

type OneCallDaily struct {
	Dt      *int64             `json:"dt"`
	Sunrise *int64             `json:"sunrise"`
	Sunset  *int64             `json:"sunset"`
	Temp    *OneCallTemp       `json:"temp"`
	Weather []OneCallCondition `json:"weather"`
}

type OneCallTemp struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

func NewOpenWeatherClient(apiKey, baseURL string, config ClientConfig, logger *zap.Logger) *OpenWeatherClient {
	if baseURL == "" {
		baseURL = DefaultOneCallURL
	}
	baseClient := NewBaseClient("openweather", config, logger)
	return &OpenWeatherClient{
		BaseClient: baseClient,
		apiKey:     apiKey,
		baseURL:    baseURL,
	}
}

// GetOneCall fetches current conditions and the daily forecast for lat/lon
// in imperial units. The coordinates are forwarded as given.
func (c *OpenWeatherClient) GetOneCall(ctx context.Context, lat, lon string) (*OneCallResponse, error) {
	query := url.Values{}
	query.Set("lat", lat)
	query.Set("lon", lon)
	query.Set("exclude", "minutely,hourly")
	query.Set("cnt", "7")
	query.Set("appid", c.apiKey)
	query.Set("units", "imperial")

	data, err := c.Get(ctx, c.baseURL+"?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}

	var response OneCallResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return &response, nil
}
