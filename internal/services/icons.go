package services

// iconMap maps OpenWeatherMap condition codes to the icon ids the client
// renders. Night codes map to the day ids.
var iconMap = map[string]string{
	"01d": "clear-day",
	"02d": "partly-cloudy-day",
	"03d": "cloudy",
	"04d": "cloudy",
	"09d": "rain",
	"10d": "rain",
	"11d": "thunderstorm",
	"13d": "snow",
	"50d": "fog",
	"01n": "clear-day",
	"02n": "partly-cloudy-day",
	"03n": "cloudy",
	"04n": "cloudy",
	"09n": "rain",
	"10n": "rain",
	"11n": "thunderstorm",
	"13n": "snow",
	"50n": "fog",
}

// TranslateIcon returns the internal icon id for an upstream code.
// Unknown codes report false.
func TranslateIcon(code string) (string, bool) {
	icon, ok := iconMap[code]
	return icon, ok
}
