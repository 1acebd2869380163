// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package services

import (
	"context"
	"time"

	"github.com/anshulrawat2507/CineArchive/internal/logging"
)

// Sweeper drops state idle for longer than the given duration.
// *auth.LoginLimiter satisfies it.
type Sweeper interface {
	Sweep(idle time.Duration) int
}

// LimiterSweepService periodically evicts idle login throttle buckets so
// the limiter does not grow with every address ever seen.
type LimiterSweepService struct {
	sweeper  Sweeper
	interval time.Duration
	idle     time.Duration
	name     string
}

// NewLimiterSweepService sweeps every interval, removing buckets idle for
// longer than idle. Non-positive values default to one minute and one hour.
func NewLimiterSweepService(sweeper Sweeper, interval, idle time.Duration) *LimiterSweepService {
	if interval <= 0 {
		interval = time.Minute
	}
	if idle <= 0 {
		idle = time.Hour
	}
	return &LimiterSweepService{
		sweeper:  sweeper,
		interval: interval,
		idle:     idle,
		name:     "login-limiter-sweep",
	}
}

// Serve implements suture.Service.
func (s *LimiterSweepService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := s.sweeper.Sweep(s.idle); removed > 0 {
				logging.Debug().Int("removed", removed).Msg("Swept idle login limiter buckets")
			}
		}
	}
}

// String returns the service name for logging.
func (s *LimiterSweepService) String() string {
	return s.name
}
