package services

import (
	"fmt"

	"weather-proxy/internal/models"
	"weather-proxy/pkg/client"
)

// TranslationError reports the first required field missing from an upstream payload.
type TranslationError struct {
	Field string
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("%s: missing %s", client.ErrMalformedPayload, e.Field)
}

func (e *TranslationError) Unwrap() error {
	return client.ErrMalformedPayload
}

func missing(field string) error {
	return &TranslationError{Field: field}
}

// TranslateForecast maps a One Call payload onto the Forecast served to
// clients. Only the first models.DailyDays daily entries are used. Values are
// passed through unchanged.
func TranslateForecast(raw *client.OneCallResponse) (*models.Forecast, error) {
	if raw == nil {
		return nil, missing("payload")
	}

	currently, err := translateCurrent(raw.Current)
	if err != nil {
		return nil, err
	}

	if len(raw.Daily) < models.DailyDays {
		return nil, &TranslationError{
			Field: fmt.Sprintf("daily[%d] (got %d entries)", len(raw.Daily), len(raw.Daily)),
		}
	}

	days := make([]models.DailyForecast, 0, models.DailyDays)
	for i, day := range raw.Daily[:models.DailyDays] {
		translated, err := translateDay(i, day)
		if err != nil {
			return nil, err
		}
		days = append(days, translated)
	}

	return &models.Forecast{
		FakeData:  false,
		Latitude:  models.Coordinate(raw.Lat),
		Longitude: models.Coordinate(raw.Lon),
		Timezone:  raw.Timezone,
		Currently: currently,
		Daily:     models.Daily{Data: days},
	}, nil
}

func translateCurrent(current *client.OneCallCurrent) (models.Current, error) {
	switch {
	case current == nil:
		return models.Current{}, missing("current")
	case current.Dt == nil:
		return models.Current{}, missing("current.dt")
	case len(current.Weather) == 0:
		return models.Current{}, missing("current.weather[0]")
	case current.Weather[0].Main == nil:
		return models.Current{}, missing("current.weather[0].main")
	case current.Weather[0].Icon == nil:
		return models.Current{}, missing("current.weather[0].icon")
	case current.Temp == nil:
		return models.Current{}, missing("current.temp")
	case current.Humidity == nil:
		return models.Current{}, missing("current.humidity")
	case current.WindSpeed == nil:
		return models.Current{}, missing("current.wind_speed")
	case current.WindDeg == nil:
		return models.Current{}, missing("current.wind_deg")
	}

	icon, _ := TranslateIcon(*current.Weather[0].Icon)
	return models.Current{
		Time:        *current.Dt,
		Summary:     *current.Weather[0].Main,
		Icon:        icon,
		Temperature: *current.Temp,
		Humidity:    *current.Humidity,
		WindSpeed:   *current.WindSpeed,
		WindBearing: *current.WindDeg,
	}, nil
}

func translateDay(i int, day client.OneCallDaily) (models.DailyForecast, error) {
	field := func(name string) error {
		return missing(fmt.Sprintf("daily[%d].%s", i, name))
	}

	switch {
	case day.Dt == nil:
		return models.DailyForecast{}, field("dt")
	case len(day.Weather) == 0:
		return models.DailyForecast{}, field("weather[0]")
	case day.Weather[0].Icon == nil:
		return models.DailyForecast{}, field("weather[0].icon")
	case day.Sunrise == nil:
		return models.DailyForecast{}, field("sunrise")
	case day.Sunset == nil:
		return models.DailyForecast{}, field("sunset")
	case day.Temp == nil:
		return models.DailyForecast{}, field("temp")
	case day.Temp.Max == nil:
		return models.DailyForecast{}, field("temp.max")
	case day.Temp.Min == nil:
		return models.DailyForecast{}, field("temp.min")
	}

	icon, _ := TranslateIcon(*day.Weather[0].Icon)
	return models.DailyForecast{
		Time:            *day.Dt,
		Icon:            icon,
		SunriseTime:     *day.Sunrise,
		SunsetTime:      *day.Sunset,
		TemperatureHigh: *day.Temp.Max,
		TemperatureLow:  *day.Temp.Min,
	}, nil
}
