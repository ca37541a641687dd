// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/voxclone-client/internal/logger"
)

const defaultCreditsRefreshInterval = time.Minute

// ClientRefreshJob periodically re-fetches the authoritative credit balance
// so that local deductions do not drift for long.
type ClientRefreshJob interface {
	// Start launches the background goroutine. It refreshes every interval,
	// defaulting to one minute if interval is zero. A negative interval
	// leaves the job idle. Any previously running job is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}

type clientRefreshJob struct {
	credits ClientCreditService
	logger  *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientRefreshJob creates a job that calls credits.FetchBalance on a
// ticker. The job is idle until Start is called.
func NewClientRefreshJob(credits ClientCreditService, logger *logger.Logger) ClientRefreshJob {
	return &clientRefreshJob{credits: credits, logger: logger.Component("refresh-job")}
}

func (j *clientRefreshJob) Start(ctx context.Context, interval time.Duration) {
	if interval == 0 {
		interval = defaultCreditsRefreshInterval
	}

	j.Stop()
	if interval < 0 {
		return
	}

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if _, err := j.credits.FetchBalance(jobCtx); err != nil && jobCtx.Err() == nil {
					j.logger.Debug().Err(err).Msg("periodic balance refresh failed")
				}
			}
		}
	}()
}

// Stop implements ClientRefreshJob. Safe to call when the job is not
// running (no-op in that case).
func (j *clientRefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
