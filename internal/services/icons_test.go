package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateIcon(t *testing.T) {
	known := map[string]string{
		"01d": "clear-day",
		"01n": "clear-day",
		"02d": "partly-cloudy-day",
		"02n": "partly-cloudy-day",
		"03d": "cloudy",
		"03n": "cloudy",
		"04d": "cloudy",
		"04n": "cloudy",
		"09d": "rain",
		"09n": "rain",
		"10d": "rain",
		"10n": "rain",
		"11d": "thunderstorm",
		"11n": "thunderstorm",
		"13d": "snow",
		"13n": "snow",
		"50d": "fog",
		"50n": "fog",
	}
	assert.Len(t, known, 18)

	for code, want := range known {
		got, ok := TranslateIcon(code)
		assert.True(t, ok, code)
		assert.Equal(t, want, got, code)
	}
}

func TestTranslateIconUnknown(t *testing.T) {
	for _, code := range []string{"", "01", "05d", "02D", "partly-cloudy-night", "13x"} {
		got, ok := TranslateIcon(code)
		assert.False(t, ok, code)
		assert.Empty(t, got, code)
	}
}
