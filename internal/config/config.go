package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"weather-proxy/pkg/client"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const DefaultForecastDelay = 3000 * time.Millisecond

type Config struct {
	Server struct {
		Port                string
		ReadTimeout         time.Duration
		WriteTimeout        time.Duration
		LogLevel            string
		StaticDir           string
		RedirectHTTPS       bool
		RedirectIgnoreHosts []string
	}

	Upstream struct {
		APIKey    string
		BaseURL   string
		Timeout   time.Duration
		RateLimit float64
		RateBurst int
	}

	Forecast struct {
		Delay time.Duration
	}

	CircuitBreaker struct {
		Threshold int
		Timeout   time.Duration
	}

	Probe struct {
		Schedule string
	}
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		zap.L().Info("No .env file found, using environment variables")
	}

	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("PORT", "8000")
	cfg.Server.ReadTimeout = parseDuration(getEnv("READ_TIMEOUT", "10s"))
	cfg.Server.WriteTimeout = parseDuration(getEnv("WRITE_TIMEOUT", "30s"))
	cfg.Server.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.Server.StaticDir = getEnv("STATIC_DIR", "public")
	cfg.Server.RedirectHTTPS = parseBool(getEnv("HTTPS_REDIRECT", "true"))
	cfg.Server.RedirectIgnoreHosts = splitList(getEnv("HTTPS_REDIRECT_IGNORE_HOSTS", `localhost:(\d{4})`))

	// Upstream configuration
	cfg.Upstream.APIKey = getEnv("API_KEY", os.Getenv("OPENWEATHERKEY"))
	cfg.Upstream.BaseURL = getEnv("UPSTREAM_URL", client.DefaultOneCallURL)
	cfg.Upstream.Timeout = parseDuration(getEnv("UPSTREAM_TIMEOUT", "10s"))
	cfg.Upstream.RateLimit = parseFloat(getEnv("UPSTREAM_RATE_LIMIT", "0"))
	cfg.Upstream.RateBurst = parseInt(getEnv("UPSTREAM_RATE_BURST", "5"))

	// Artificial delay before real forecasts are returned
	cfg.Forecast.Delay = parseDelay(getEnv("FORECAST_DELAY", "3000"))

	// Circuit breaker configuration
	cfg.CircuitBreaker.Threshold = parseInt(getEnv("CIRCUIT_BREAKER_THRESHOLD", "3"))
	cfg.CircuitBreaker.Timeout = parseDuration(getEnv("CIRCUIT_BREAKER_TIMEOUT", "30s"))

	// Upstream probe, empty disables it
	cfg.Probe.Schedule = os.Getenv("PROBE_SCHEDULE")
	if _, set := os.LookupEnv("PROBE_SCHEDULE"); !set {
		cfg.Probe.Schedule = "@every 10m"
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		zap.L().Warn("Failed to parse duration", zap.String("value", value), zap.Error(err))
		return 0
	}
	return duration
}

// parseDelay accepts plain milliseconds ("3000") or a Go duration ("3s").
func parseDelay(value string) time.Duration {
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		zap.L().Warn("Failed to parse forecast delay, using default",
			zap.String("value", value),
			zap.Duration("default", DefaultForecastDelay),
			zap.Error(err))
		return DefaultForecastDelay
	}
	return duration
}

func parseInt(value string) int {
	intValue, err := strconv.Atoi(value)
	if err != nil {
		zap.L().Warn("Failed to parse int", zap.String("value", value), zap.Error(err))
		return 0
	}
	return intValue
}

func parseFloat(value string) float64 {
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		zap.L().Warn("Failed to parse float", zap.String("value", value), zap.Error(err))
		return 0
	}
	return floatValue
}

func parseBool(value string) bool {
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		zap.L().Warn("Failed to parse bool", zap.String("value", value), zap.Error(err))
		return false
	}
	return boolValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
