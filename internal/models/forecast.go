package models

import (
	"encoding/json"
	"math"
)

// Forecast is the payload served to clients for both real and synthetic data.
// Clients tell the two apart only through FakeData.
type Forecast struct {
	FakeData  bool       `json:"fakeData"`
	Latitude  Coordinate `json:"latitude"`
	Longitude Coordinate `json:"longitude"`
	Timezone  string     `json:"timezone"`
	Currently Current    `json:"currently"`
	Daily     Daily      `json:"daily"`
}

type Current struct {
	Time        int64   `json:"time"`
	Summary     string  `json:"summary"`
	Icon        string  `json:"icon,omitempty"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	WindBearing float64 `json:"windBearing"`
}

type Daily struct {
	Data []DailyForecast `json:"data"`
}

type DailyForecast struct {
	Time            int64   `json:"time"`
	Icon            string  `json:"icon,omitempty"`
	SunriseTime     int64   `json:"sunriseTime"`
	SunsetTime      int64   `json:"sunsetTime"`
	TemperatureHigh float64 `json:"temperatureHigh"`
	TemperatureLow  float64 `json:"temperatureLow"`
}

// DailyDays is the number of daily entries every Forecast carries, today first.
const DailyDays = 8

// Clone returns a copy that shares no memory with f.
func (f *Forecast) Clone() *Forecast {
	c := *f
	c.Daily.Data = make([]DailyForecast, len(f.Daily.Data))
	copy(c.Daily.Data, f.Daily.Data)
	return &c
}

// Coordinate is a latitude or longitude. Unparseable input is kept as NaN
// and encoded as null, since encoding/json rejects NaN.
type Coordinate float64

func (c Coordinate) MarshalJSON() ([]byte, error) {
	v := float64(c)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Coordinate(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = Coordinate(v)
	return nil
}

func (c Coordinate) IsNaN() bool {
	return math.IsNaN(float64(c))
}
