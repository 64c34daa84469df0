package models

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultLocation is used whenever a request carries no location.
const DefaultLocation = "40.7720232,-73.9732319"

type Location struct {
	Latitude  Coordinate
	Longitude Coordinate
}

// SplitLocation returns the raw latitude and longitude text of "<lat>,<lon>".
// An empty location falls back to DefaultLocation. Without a comma the
// longitude part is empty.
func SplitLocation(location string) (lat, lon string) {
	if location == "" {
		location = DefaultLocation
	}
	lat, lon, _ = strings.Cut(location, ",")
	return lat, lon
}

// ParseLocation reads coordinates from "<lat>,<lon>" without validating them.
// Latitude is the text before the first comma, longitude everything after it.
// When the comma is missing the latitude is NaN and the longitude is read from
// the whole string. Each side is parsed leniently: the longest numeric prefix
// wins and a side with no numeric prefix becomes NaN.
func ParseLocation(location string) Location {
	if location == "" {
		location = DefaultLocation
	}

	commaAt := strings.Index(location, ",")
	var latText, lonText string
	if commaAt < 0 {
		lonText = location
	} else {
		latText = location[:commaAt]
		lonText = location[commaAt+1:]
	}

	return Location{
		Latitude:  Coordinate(parseLeadingFloat(latText)),
		Longitude: Coordinate(parseLeadingFloat(lonText)),
	}
}

var leadingFloat = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

func parseLeadingFloat(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	m := leadingFloat.FindString(s)
	if m == "" {
		return math.NaN()
	}

	switch strings.TrimLeft(m, "+-") {
	case "Infinity":
		if strings.HasPrefix(m, "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	// ErrRange still yields ±Inf or 0.
	v, err := strconv.ParseFloat(m, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return v
}
