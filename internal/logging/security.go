// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// Security event names.
const (
	EventLoginSuccess      = "login_success"
	EventLoginFailure      = "login_failure"
	EventLoginThrottled    = "login_throttled"
	EventRegistration      = "registration"
	EventAccessDenied      = "access_denied"
	EventPlaygroundBlocked = "playground_blocked"
)

// SecurityEvent represents a security-relevant event for audit logging.
type SecurityEvent struct {
	// Event is one of the Event* constants.
	Event string
	// UserID is the account id, 0 when unknown.
	UserID int64
	// Email is the account email (masked when logged).
	Email string
	// Role is the account role at the time of the event.
	Role string
	// IPAddress is the client's IP address.
	IPAddress string
	// UserAgent is the client's user agent (truncated).
	UserAgent string
	// Success indicates if the operation was successful.
	Success bool
	// Reason explains a failure.
	Reason string
	// Details contains additional values, sanitized by key.
	Details map[string]string
}

// SecurityLogger records authentication and authorization outcomes.
// Emails, tokens and secrets are masked before they reach the log.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger creates a new security logger.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{
		logger: With().Str("component", "auth").Logger(),
	}
}

// NewSecurityLoggerWithLogger creates a security logger with a custom zerolog logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{
		logger: logger.With().Str("component", "auth").Logger(),
	}
}

// LogEvent logs a security event. Failures are logged at warn level.
func (l *SecurityLogger) LogEvent(event *SecurityEvent) {
	e := l.logger.Info()
	if !event.Success {
		e = l.logger.Warn()
	}
	e = e.Str("event", event.Event)

	if event.Success {
		e = e.Str("status", "success")
	} else {
		e = e.Str("status", "failed")
	}
	if event.UserID != 0 {
		e = e.Int64("user_id", event.UserID)
	}
	if event.Email != "" {
		e = e.Str("email", SanitizeEmail(event.Email))
	}
	if event.Role != "" {
		e = e.Str("role", event.Role)
	}
	if event.IPAddress != "" {
		e = e.Str("ip", event.IPAddress)
	}
	if event.UserAgent != "" {
		e = e.Str("user_agent", truncateString(event.UserAgent, 100))
	}
	if event.Reason != "" && !event.Success {
		e = e.Str("reason", SanitizeError(event.Reason))
	}
	for k, v := range event.Details {
		e = e.Str(k, SanitizeValue(k, v))
	}

	e.Msg("security event")
}

// LogLoginSuccess records a successful password login.
func (l *SecurityLogger) LogLoginSuccess(userID int64, email, role, ip, userAgent string) {
	l.LogEvent(&SecurityEvent{
		Event:     EventLoginSuccess,
		UserID:    userID,
		Email:     email,
		Role:      role,
		IPAddress: ip,
		UserAgent: userAgent,
		Success:   true,
	})
}

// LogLoginFailure records a rejected login.
func (l *SecurityLogger) LogLoginFailure(email, ip, userAgent, reason string) {
	l.LogEvent(&SecurityEvent{
		Event:     EventLoginFailure,
		Email:     email,
		IPAddress: ip,
		UserAgent: userAgent,
		Reason:    reason,
	})
}

// LogLoginThrottled records a login refused by the per-account limiter.
func (l *SecurityLogger) LogLoginThrottled(email, ip string) {
	l.LogEvent(&SecurityEvent{
		Event:     EventLoginThrottled,
		Email:     email,
		IPAddress: ip,
		Reason:    "too many attempts",
	})
}

// LogRegistration records a new account.
func (l *SecurityLogger) LogRegistration(userID int64, email, ip string) {
	l.LogEvent(&SecurityEvent{
		Event:     EventRegistration,
		UserID:    userID,
		Email:     email,
		IPAddress: ip,
		Success:   true,
	})
}

// LogAccessDenied records a request refused by the authorization policy.
func (l *SecurityLogger) LogAccessDenied(userID int64, role, method, path, ip string) {
	l.LogEvent(&SecurityEvent{
		Event:     EventAccessDenied,
		UserID:    userID,
		Role:      role,
		IPAddress: ip,
		Reason:    "policy denied",
		Details: map[string]string{
			"method": method,
			"path":   path,
		},
	})
}

// LogPlaygroundBlocked records a playground statement rejected as unsafe.
func (l *SecurityLogger) LogPlaygroundBlocked(userID int64, reason string) {
	l.LogEvent(&SecurityEvent{
		Event:  EventPlaygroundBlocked,
		UserID: userID,
		Reason: reason,
	})
}

// SanitizeToken masks a token, showing only first and last 4 characters.
// Example: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..." -> "eyJh...kpXV"
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// SanitizeEmail masks an email address.
// Example: "priya.sharma@example.com" -> "pr***@example.com"
func SanitizeEmail(email string) string {
	if email == "" {
		return ""
	}

	atIndex := strings.Index(email, "@")
	if atIndex <= 0 {
		return "***"
	}

	localPart := email[:atIndex]
	domain := email[atIndex:]

	if len(localPart) <= 2 {
		return "***" + domain
	}
	return localPart[:2] + "***" + domain
}

// SanitizeError hides messages that mention credentials and truncates the rest.
func SanitizeError(err string) string {
	sensitivePatterns := []string{
		"password",
		"secret",
		"token",
		"bearer",
		"authorization",
		"cookie",
	}

	lowerErr := strings.ToLower(err)
	for _, pattern := range sensitivePatterns {
		if strings.Contains(lowerErr, pattern) {
			return "authentication error"
		}
	}

	return truncateString(err, 200)
}

// SanitizeValue sanitizes a value based on its key name.
func SanitizeValue(key, value string) string {
	switch strings.ToLower(key) {
	case "token", "access_token", "jwt", "password", "password_hash",
		"secret", "jwt_secret", "authorization", "bearer", "cookie":
		return SanitizeToken(value)
	}

	if strings.Contains(value, "@") && strings.Contains(value, ".") {
		return SanitizeEmail(value)
	}

	return value
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
