package services

import (
	"weather-proxy/internal/models"
)

// fakeForecast is the template behind every synthetic response. It is never
// handed out directly; GenerateFakeForecast returns clones.
var fakeForecast = models.Forecast{
	FakeData: true,
	Timezone: "America/New_York",
	Currently: models.Current{
		Time:        0,
		Summary:     "Clear",
		Icon:        "clear-day",
		Temperature: 43.4,
		Humidity:    0.62,
		WindSpeed:   3.74,
		WindBearing: 208,
	},
	Daily: models.Daily{
		Data: []models.DailyForecast{
			{Time: 0, Icon: "partly-cloudy-night", SunriseTime: 1553079633, SunsetTime: 1553123320, TemperatureHigh: 52.91, TemperatureLow: 41.35},
			{Time: 86400, Icon: "rain", SunriseTime: 1553165933, SunsetTime: 1553209784, TemperatureHigh: 48.01, TemperatureLow: 44.17},
			{Time: 172800, Icon: "rain", SunriseTime: 1553252232, SunsetTime: 1553296247, TemperatureHigh: 50.31, TemperatureLow: 33.61},
			{Time: 259200, Icon: "partly-cloudy-night", SunriseTime: 1553338532, SunsetTime: 1553382710, TemperatureHigh: 46.44, TemperatureLow: 33.82},
			{Time: 345600, Icon: "partly-cloudy-night", SunriseTime: 1553424831, SunsetTime: 1553469172, TemperatureHigh: 60.5, TemperatureLow: 43.82},
			{Time: 432000, Icon: "rain", SunriseTime: 1553511130, SunsetTime: 1553555635, TemperatureHigh: 61.79, TemperatureLow: 32.8},
			{Time: 518400, Icon: "rain", SunriseTime: 1553597430, SunsetTime: 1553642098, TemperatureHigh: 48.28, TemperatureLow: 33.49},
			{Time: 604800, Icon: "snow", SunriseTime: 1553683730, SunsetTime: 1553728560, TemperatureHigh: 43.58, TemperatureLow: 33.68},
		},
	},
}

// GenerateFakeForecast builds a synthetic forecast for location. It never
// fails and does no I/O. An empty location means models.DefaultLocation and
// unparseable coordinates come back as NaN.
func GenerateFakeForecast(location string) *models.Forecast {
	loc := models.ParseLocation(location)

	result := fakeForecast.Clone()
	result.Latitude = loc.Latitude
	result.Longitude = loc.Longitude
	return result
}
