package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// UpstreamChecker is satisfied by services.ForecastService.
type UpstreamChecker interface {
	CheckUpstream(ctx context.Context) error
}

// Probe periodically checks that the upstream provider answers with a usable
// payload. It only records the outcome; it never feeds forecasts to clients.
type Probe struct {
	checker  UpstreamChecker
	logger   *zap.Logger
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	mu       sync.RWMutex
	running  bool
	status   Status
}

type Status struct {
	Schedule  string        `json:"schedule"`
	Running   bool          `json:"running"`
	LastRun   time.Time     `json:"last_run"`
	Duration  time.Duration `json:"duration"`
	Healthy   bool          `json:"healthy"`
	LastError string        `json:"last_error,omitempty"`
	Runs      int           `json:"runs"`
	Failures  int           `json:"failures"`
}

func NewProbe(checker UpstreamChecker, schedule string, timeout time.Duration, logger *zap.Logger) *Probe {
	cl := cronLogger{logger.Sugar()}
	return &Probe{
		checker:  checker,
		logger:   logger,
		schedule: schedule,
		timeout:  timeout,
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
}

// Start registers the probe job and starts the cron runner.
func (p *Probe) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil
	}

	if _, err := p.cron.AddFunc(p.schedule, p.RunOnce); err != nil {
		return err
	}

	p.cron.Start()
	p.running = true

	p.logger.Info("Upstream probe started", zap.String("schedule", p.schedule))

	return nil
}

// Stop halts the cron runner and waits for a probe in flight.
func (p *Probe) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	p.logger.Info("Stopping upstream probe")
	<-p.cron.Stop().Done()
}

// RunOnce performs a single check and records the result.
func (p *Probe) RunOnce() {
	startTime := time.Now()

	ctx := context.Background()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	err := p.checker.CheckUpstream(ctx)
	duration := time.Since(startTime)

	p.mu.Lock()
	p.status.LastRun = startTime
	p.status.Duration = duration
	p.status.Runs++
	p.status.Healthy = err == nil
	p.status.LastError = ""
	if err != nil {
		p.status.Failures++
		p.status.LastError = err.Error()
	}
	p.mu.Unlock()

	if err != nil {
		p.logger.Warn("Upstream probe failed",
			zap.Error(err),
			zap.Duration("duration", duration))
		return
	}

	p.logger.Debug("Upstream probe succeeded", zap.Duration("duration", duration))
}

func (p *Probe) GetStatus() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()

	status := p.status
	status.Schedule = p.schedule
	status.Running = p.running
	return status
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	*zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.Errorw(msg, append(keysAndValues, "error", err)...)
}
