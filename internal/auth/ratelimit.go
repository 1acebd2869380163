// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package auth

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginLimiter throttles login attempts per account. Each key gets a token
// bucket holding attemptsPerMinute tokens that refills at the same rate.
type LoginLimiter struct {
	limiters map[string]*limiterEntry
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
}

// limiterEntry wraps a rate limiter with last access time
type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewLoginLimiter creates a limiter allowing attemptsPerMinute logins per
// account per minute. Values below one are raised to one.
func NewLoginLimiter(attemptsPerMinute int) *LoginLimiter {
	if attemptsPerMinute < 1 {
		attemptsPerMinute = 1
	}
	return &LoginLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Every(time.Minute / time.Duration(attemptsPerMinute)),
		burst:    attemptsPerMinute,
	}
}

// Allow reports whether another login attempt for account is permitted.
// Keys are compared case-insensitively.
func (l *LoginLimiter) Allow(account string) bool {
	key := strings.ToLower(strings.TrimSpace(account))

	l.mu.Lock()
	entry, exists := l.limiters[key]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastAccess = time.Now()
	limiter := entry.limiter
	l.mu.Unlock()

	return limiter.Allow()
}

// Reset forgets the bucket of account, used after a successful login.
func (l *LoginLimiter) Reset(account string) {
	key := strings.ToLower(strings.TrimSpace(account))
	l.mu.Lock()
	delete(l.limiters, key)
	l.mu.Unlock()
}

// Len returns the number of tracked accounts.
func (l *LoginLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// IdleBucketTTL is how long an account's bucket survives without attempts.
const IdleBucketTTL = time.Hour

// Sweep removes buckets not accessed within idle and returns how many were
// removed.
func (l *LoginLimiter) Sweep(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	threshold := time.Now().Add(-idle)
	for key, entry := range l.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(l.limiters, key)
			removed++
		}
	}
	return removed
}
