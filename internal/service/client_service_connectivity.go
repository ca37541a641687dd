// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"math"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/MKhiriev/voxclone-client/internal/adapter"
	"github.com/MKhiriev/voxclone-client/internal/config"
	"github.com/MKhiriev/voxclone-client/internal/logger"
	"github.com/MKhiriev/voxclone-client/models"
)

const (
	defaultHealthInitialDelay = 3 * time.Second
	defaultHealthMaxDelay     = 30 * time.Second
	defaultHealthMultiplier   = 1.5

	countdownStep = time.Second
)

type clientConnectivityService struct {
	adapter   adapter.ServerAdapter
	scheduler Scheduler
	logger    *logger.Logger

	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
	interval     time.Duration

	checks metric.Int64Counter

	mu       sync.Mutex
	running  bool
	baseCtx  context.Context
	status   models.SystemStatus
	delay    time.Duration
	failures int

	retryTimer     Timer
	countdownTimer Timer
	// countdown identifies the installed countdown; ticks of replaced ones
	// are ignored.
	countdown uint64

	probing     bool
	checkCancel context.CancelFunc
	// generation identifies the current check chain; results of older
	// chains are dropped.
	generation uint64
	revision   uint64
}

// NewClientConnectivityService creates a stopped monitor. Zero config values
// fall back to 3s initial delay, 1.5 multiplier and 30s cap. A non-positive
// HealthInterval disables re-probing while healthy.
func NewClientConnectivityService(
	serverAdapter adapter.ServerAdapter,
	cfg config.Workers,
	scheduler Scheduler,
	logger *logger.Logger,
) ClientConnectivityService {
	s := &clientConnectivityService{
		adapter:      serverAdapter,
		scheduler:    scheduler,
		logger:       logger.Component("connectivity"),
		initialDelay: cfg.HealthInitialDelay,
		maxDelay:     cfg.HealthMaxDelay,
		multiplier:   cfg.HealthBackoffMultiplier,
		interval:     cfg.HealthInterval,
	}
	if s.initialDelay <= 0 {
		s.initialDelay = defaultHealthInitialDelay
	}
	if s.maxDelay <= 0 {
		s.maxDelay = defaultHealthMaxDelay
	}
	if s.multiplier < 1 {
		s.multiplier = defaultHealthMultiplier
	}
	s.delay = s.initialDelay

	checks, err := otel.Meter("github.com/MKhiriev/voxclone-client/connectivity").Int64Counter(
		"voxclone.health.checks",
		metric.WithDescription("Health checks by outcome"),
	)
	if err != nil {
		s.logger.Warn().Err(err).Msg("health check counter unavailable")
	}
	s.checks = checks

	return s
}

func (s *clientConnectivityService) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.baseCtx = ctx
	s.mu.Unlock()

	s.logger.Debug().Msg("connectivity monitor started")
	s.checkNow()
}

func (s *clientConnectivityService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	s.clearTimersLocked()
	s.cancelCheckLocked()
	s.logger.Debug().Msg("connectivity monitor stopped")
}

func (s *clientConnectivityService) RetryConnection() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.clearTimersLocked()
	s.cancelCheckLocked()
	s.failures = 0
	s.delay = s.initialDelay
	s.status.ConsecutiveFailures = 0
	s.status.SecondsUntilNextRetry = 0
	s.revision++
	s.mu.Unlock()

	s.logger.Debug().Msg("manual reconnect")
	s.checkNow()
}

func (s *clientConnectivityService) Status() models.SystemStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *clientConnectivityService) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// checkNow runs one check on the calling goroutine unless one is already in
// flight.
func (s *clientConnectivityService) checkNow() {
	s.mu.Lock()
	if !s.running || s.probing {
		s.mu.Unlock()
		return
	}
	s.probing = true
	s.generation++
	generation := s.generation
	ctx, cancel := context.WithCancel(s.baseCtx)
	s.checkCancel = cancel
	s.mu.Unlock()
	defer cancel()

	gpu, err := s.check(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation || !s.running {
		return
	}
	s.probing = false
	s.checkCancel = nil

	if err != nil {
		s.onFailureLocked(err)
		return
	}
	s.onSuccessLocked(gpu)
}

// check calls /health; the GPU lookup never fails the check.
func (s *clientConnectivityService) check(ctx context.Context) (models.GPUInfo, error) {
	if _, err := s.adapter.Health(ctx); err != nil {
		return models.GPUInfo{}, err
	}

	detailed, err := s.adapter.DetailedHealth(ctx)
	if err != nil || detailed.GPU == nil {
		s.logger.Debug().Err(err).Msg("gpu info unavailable")
		return models.GPUInfo{}, nil
	}
	return *detailed.GPU, nil
}

func (s *clientConnectivityService) onSuccessLocked(gpu models.GPUInfo) {
	s.clearTimersLocked()
	if s.failures > 0 {
		s.logger.Info().Int("failures", s.failures).Msg("service reachable again")
	}
	s.failures = 0
	s.delay = s.initialDelay
	s.status = models.SystemStatus{
		Reachable:    true,
		GPUAvailable: gpu.Available,
		GPULabel:     gpu.Name,
		CheckedAt:    time.Now(),
	}
	s.revision++
	s.count("success")

	if s.interval > 0 {
		s.retryTimer = s.scheduler.AfterFunc(s.interval, s.checkNow)
	}
}

func (s *clientConnectivityService) onFailureLocked(err error) {
	s.clearTimersLocked()
	s.failures++
	wait := s.delay

	s.status = models.SystemStatus{
		Reachable:             false,
		ConsecutiveFailures:   s.failures,
		SecondsUntilNextRetry: int(math.Ceil(wait.Seconds())),
		CheckedAt:             time.Now(),
	}
	s.revision++
	s.count("failure")
	s.logger.Warn().Err(err).Int("failures", s.failures).Dur("retry_in", wait).Msg("health check failed")

	s.retryTimer = s.scheduler.AfterFunc(wait, s.checkNow)
	s.scheduleTickLocked()
	s.delay = s.nextDelay(wait)
}

func (s *clientConnectivityService) scheduleTickLocked() {
	countdown := s.countdown
	s.countdownTimer = s.scheduler.AfterFunc(countdownStep, func() { s.tick(countdown) })
}

// tick drives the display countdown. It is independent of the retry timer.
func (s *clientConnectivityService) tick(countdown uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || countdown != s.countdown || s.status.SecondsUntilNextRetry <= 0 {
		return
	}
	s.status.SecondsUntilNextRetry--
	s.revision++
	if s.status.SecondsUntilNextRetry > 0 {
		s.scheduleTickLocked()
	} else {
		s.countdownTimer = nil
	}
}

func (s *clientConnectivityService) nextDelay(current time.Duration) time.Duration {
	next := time.Duration(float64(current) * s.multiplier)
	if next > s.maxDelay || next <= 0 {
		return s.maxDelay
	}
	return next
}

func (s *clientConnectivityService) clearTimersLocked() {
	stopTimer(s.retryTimer)
	stopTimer(s.countdownTimer)
	s.retryTimer = nil
	s.countdownTimer = nil
	s.countdown++
}

func (s *clientConnectivityService) cancelCheckLocked() {
	if s.checkCancel != nil {
		s.checkCancel()
		s.checkCancel = nil
	}
	s.probing = false
	s.generation++
}

func (s *clientConnectivityService) count(outcome string) {
	if s.checks == nil {
		return
	}
	s.checks.Add(context.Background(), 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
