package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		input string
		lat   float64
		lon   float64
	}{
		{"", 40.7720232, -73.9732319},
		{"10.5,-20.25", 10.5, -20.25},
		{" 1.5, 2", 1.5, 2},
		{"10.5abc,20xyz", 10.5, 20},
		{"1e2,-.5", 100, -0.5},
		{"not-a-number,also-bad", math.NaN(), math.NaN()},
		{"12.5", math.NaN(), 12.5},
		{"1,2,3", 1, 2},
		{"1,", 1, math.NaN()},
		{",2", math.NaN(), 2},
		{"-Infinity,+Infinity", math.Inf(-1), math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			loc := ParseLocation(tt.input)
			assertFloat(t, tt.lat, float64(loc.Latitude))
			assertFloat(t, tt.lon, float64(loc.Longitude))
		})
	}
}

func assertFloat(t *testing.T, want, got float64) {
	t.Helper()
	if math.IsNaN(want) {
		assert.True(t, math.IsNaN(got), "expected NaN, got %v", got)
		return
	}
	assert.Equal(t, want, got)
}

func TestSplitLocation(t *testing.T) {
	lat, lon := SplitLocation("")
	assert.Equal(t, "40.7720232", lat)
	assert.Equal(t, "-73.9732319", lon)

	lat, lon = SplitLocation("51.5,-0.12")
	assert.Equal(t, "51.5", lat)
	assert.Equal(t, "-0.12", lon)

	lat, lon = SplitLocation("51.5")
	assert.Equal(t, "51.5", lat)
	assert.Empty(t, lon)
}
