// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-vault-cache/internal/logger"
)

// Reloader is satisfied by [Coordinator]; the rebuild job only needs the
// recovery entry point.
type Reloader interface {
	Reload(ctx context.Context) error
}

type RebuildJob struct {
	target Reloader
	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRebuildJob creates a job that periodically rebuilds a collection's cache
// from the durable store, reconciling any drift. The job is idle until Start
// is called. Start and Stop are composition-root calls: they must be invoked
// from one goroutine and are not safe for concurrent use with each other.
func NewRebuildJob(target Reloader, log *logger.Logger) *RebuildJob {
	return &RebuildJob{target: target, logger: log}
}

// Start stops any previously running job, then launches a background
// goroutine that calls Reload every interval. If interval is zero or negative
// it defaults to 5 minutes. The goroutine exits when ctx is cancelled or Stop
// is called.
func (j *RebuildJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

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
				if err := j.target.Reload(jobCtx); err != nil {
					j.logger.Warn().
						Str("func", "RebuildJob.Start").
						Err(err).
						Msg("periodic cache rebuild failed")
				}
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until the
// goroutine has fully exited. Safe to call when the job is not running
// (no-op in that case).
func (j *RebuildJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
