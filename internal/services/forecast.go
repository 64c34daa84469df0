package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"weather-proxy/internal/config"
	"weather-proxy/internal/models"
	"weather-proxy/pkg/client"

	"go.uber.org/zap"
)

// Upstream is the outbound call ForecastService depends on.
type Upstream interface {
	GetOneCall(ctx context.Context, lat, lon string) (*client.OneCallResponse, error)
}

type ForecastService struct {
	upstream Upstream
	delay    time.Duration
	logger   *zap.Logger

	realCount atomic.Int64
	fakeCount atomic.Int64

	mu             sync.RWMutex
	lastFallback   string
	lastFallbackAt *time.Time
}

type Stats struct {
	RealForecasts      int64      `json:"real_forecasts"`
	FakeForecasts      int64      `json:"fake_forecasts"`
	LastFallbackReason string     `json:"last_fallback_reason,omitempty"`
	LastFallbackAt     *time.Time `json:"last_fallback_at,omitempty"`
}

// NewForecastService wires the OpenWeatherMap client from cfg.
func NewForecastService(cfg *config.Config, logger *zap.Logger) *ForecastService {
	clientConfig := client.ClientConfig{
		Timeout:        cfg.Upstream.Timeout,
		Threshold:      cfg.CircuitBreaker.Threshold,
		BreakerTimeout: cfg.CircuitBreaker.Timeout,
		RateLimit:      cfg.Upstream.RateLimit,
		RateBurst:      cfg.Upstream.RateBurst,
	}

	openWeatherClient := client.NewOpenWeatherClient(
		cfg.Upstream.APIKey,
		cfg.Upstream.BaseURL,
		clientConfig,
		logger,
	)

	return NewForecastServiceWithUpstream(openWeatherClient, cfg.Forecast.Delay, logger)
}

// NewForecastServiceWithUpstream builds a service around any Upstream. delay
// is applied before every successful response.
func NewForecastServiceWithUpstream(upstream Upstream, delay time.Duration, logger *zap.Logger) *ForecastService {
	return &ForecastService{
		upstream: upstream,
		delay:    delay,
		logger:   logger,
	}
}

// GetForecast always produces a forecast. Real data is returned after the
// configured delay; any upstream failure returns synthetic data at once.
func (s *ForecastService) GetForecast(ctx context.Context, location string) *models.Forecast {
	forecast, err := s.fetch(ctx, location)
	if err != nil {
		return s.fallback(location, err)
	}

	if err := s.wait(ctx); err != nil {
		s.logger.Debug("Forecast delay interrupted",
			zap.String("location", location),
			zap.Error(err))
	}

	s.realCount.Add(1)
	return forecast
}

// CheckUpstream fetches and translates the default location without delay or
// fallback.
func (s *ForecastService) CheckUpstream(ctx context.Context) error {
	_, err := s.fetch(ctx, models.DefaultLocation)
	return err
}

func (s *ForecastService) fetch(ctx context.Context, location string) (*models.Forecast, error) {
	lat, lon := models.SplitLocation(location)

	raw, err := s.upstream.GetOneCall(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	forecast, err := TranslateForecast(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to translate forecast: %w", err)
	}

	return forecast, nil
}

func (s *ForecastService) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *ForecastService) fallback(location string, err error) *models.Forecast {
	reason := fallbackReason(err)

	s.logger.Error("OpenWeatherMap API error, serving fake forecast",
		zap.String("location", location),
		zap.String("reason", reason),
		zap.Error(err))

	now := time.Now()
	s.fakeCount.Add(1)
	s.mu.Lock()
	s.lastFallback = reason
	s.lastFallbackAt = &now
	s.mu.Unlock()

	return GenerateFakeForecast(location)
}

func fallbackReason(err error) string {
	switch {
	case errors.Is(err, client.ErrUpstreamThrottled):
		return "throttled"
	case errors.Is(err, client.ErrUpstreamRejected):
		return "non-success status"
	case errors.Is(err, client.ErrMalformedPayload):
		return "malformed payload"
	case errors.Is(err, client.ErrUpstreamUnreachable):
		return "unreachable"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "unreachable"
	default:
		return "unknown"
	}
}

func (s *ForecastService) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		RealForecasts:      s.realCount.Load(),
		FakeForecasts:      s.fakeCount.Load(),
		LastFallbackReason: s.lastFallback,
		LastFallbackAt:     s.lastFallbackAt,
	}
}
