package services

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	"weather-proxy/internal/models"
	"weather-proxy/pkg/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadOneCall(t *testing.T) *client.OneCallResponse {
	t.Helper()

	data, err := os.ReadFile("testdata/onecall.json")
	require.NoError(t, err)

	var raw client.OneCallResponse
	require.NoError(t, json.Unmarshal(data, &raw))
	return &raw
}

func TestTranslateForecast(t *testing.T) {
	forecast, err := TranslateForecast(loadOneCall(t))
	require.NoError(t, err)

	assert.False(t, forecast.FakeData)
	assert.Equal(t, models.Coordinate(40.77), forecast.Latitude)
	assert.Equal(t, models.Coordinate(-73.97), forecast.Longitude)
	assert.Equal(t, "America/New_York", forecast.Timezone)

	assert.Equal(t, models.Current{
		Time:        1700050000,
		Summary:     "Clouds",
		Icon:        "partly-cloudy-day",
		Temperature: 47.3,
		Humidity:    58,
		WindSpeed:   8.05,
		WindBearing: 250,
	}, forecast.Currently)

	icons := []string{"clear-day", "partly-cloudy-day", "rain", "snow", "cloudy", "fog", "thunderstorm", ""}
	require.Len(t, forecast.Daily.Data, models.DailyDays)
	for i, day := range forecast.Daily.Data {
		dt := int64(1700049600 + i*86400)
		assert.Equal(t, models.DailyForecast{
			Time:            dt,
			Icon:            icons[i],
			SunriseTime:     dt - 18000,
			SunsetTime:      dt + 18000,
			TemperatureHigh: 55.5 + float64(i),
			TemperatureLow:  40.25 + float64(i),
		}, day, "day %d", i)
	}
}

func TestTranslateForecastUsesFirstEightDays(t *testing.T) {
	raw := loadOneCall(t)
	extra := raw.Daily[0]
	raw.Daily = append(raw.Daily, extra, extra)

	forecast, err := TranslateForecast(raw)
	require.NoError(t, err)
	assert.Len(t, forecast.Daily.Data, models.DailyDays)
	assert.Equal(t, *raw.Daily[7].Dt, forecast.Daily.Data[7].Time)
}

func TestTranslateForecastUnknownIconIsOmitted(t *testing.T) {
	forecast, err := TranslateForecast(loadOneCall(t))
	require.NoError(t, err)

	data, err := json.Marshal(forecast.Daily.Data[7])
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"icon"`)
}

func TestTranslateForecastMalformed(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(raw *client.OneCallResponse)
		field string
	}{
		{
			name:  "missing current",
			edit:  func(raw *client.OneCallResponse) { raw.Current = nil },
			field: "current",
		},
		{
			name:  "current without weather",
			edit:  func(raw *client.OneCallResponse) { raw.Current.Weather = nil },
			field: "current.weather[0]",
		},
		{
			name:  "current without temperature",
			edit:  func(raw *client.OneCallResponse) { raw.Current.Temp = nil },
			field: "current.temp",
		},
		{
			name:  "five daily entries",
			edit:  func(raw *client.OneCallResponse) { raw.Daily = raw.Daily[:5] },
			field: "daily[5] (got 5 entries)",
		},
		{
			name:  "no daily entries",
			edit:  func(raw *client.OneCallResponse) { raw.Daily = nil },
			field: "daily[0] (got 0 entries)",
		},
		{
			name:  "daily entry without temp",
			edit:  func(raw *client.OneCallResponse) { raw.Daily[3].Temp = nil },
			field: "daily[3].temp",
		},
		{
			name:  "daily entry without max",
			edit:  func(raw *client.OneCallResponse) { raw.Daily[6].Temp.Max = nil },
			field: "daily[6].temp.max",
		},
		{
			name:  "daily entry without weather",
			edit:  func(raw *client.OneCallResponse) { raw.Daily[7].Weather = nil },
			field: "daily[7].weather[0]",
		},
		{
			name:  "daily entry without sunset",
			edit:  func(raw *client.OneCallResponse) { raw.Daily[0].Sunset = nil },
			field: "daily[0].sunset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := loadOneCall(t)
			tt.edit(raw)

			forecast, err := TranslateForecast(raw)
			assert.Nil(t, forecast)
			require.Error(t, err)
			assert.True(t, errors.Is(err, client.ErrMalformedPayload))

			var translationErr *TranslationError
			require.True(t, errors.As(err, &translationErr))
			assert.Equal(t, tt.field, translationErr.Field)
		})
	}
}

func TestTranslateForecastNilPayload(t *testing.T) {
	_, err := TranslateForecast(nil)
	assert.ErrorIs(t, err, client.ErrMalformedPayload)
}

func TestTranslateForecastMissingJSONFields(t *testing.T) {
	raw := loadOneCall(t)

	// Round trip through JSON with a daily entry stripped of its sunrise.
	data, err := json.Marshal(raw)
	require.NoError(t, err)

	var generic map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &generic))
	daily := generic["daily"].([]interface{})
	delete(daily[2].(map[string]interface{}), "sunrise")

	data, err = json.Marshal(generic)
	require.NoError(t, err)

	var stripped client.OneCallResponse
	require.NoError(t, json.Unmarshal(data, &stripped))

	_, err = TranslateForecast(&stripped)
	var translationErr *TranslationError
	require.ErrorAs(t, err, &translationErr)
	assert.Equal(t, "daily[2].sunrise", translationErr.Field)
}
