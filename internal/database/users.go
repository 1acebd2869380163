// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anshulrawat2507/CineArchive/internal/auth"
	"github.com/anshulrawat2507/CineArchive/internal/logging"
	"github.com/anshulrawat2507/CineArchive/internal/models"
)

const userColumns = `user_id, name, email, password_hash, region, age_group, is_admin, created_at, last_login`

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	var (
		u                models.User
		region, ageGroup sql.NullString
		lastLogin        sql.NullTime
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &region, &ageGroup,
		&u.IsAdmin, &u.CreatedAt, &lastLogin); err != nil {
		return nil, err
	}
	u.Region = region.String
	u.AgeGroup = ageGroup.String
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return &u, nil
}

// normalizeEmail lowercases and trims an email address. Emails are
// unique case-insensitively.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterUser creates a viewer account.
func (db *DB) RegisterUser(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	return db.createUser(ctx, req, false)
}

func (db *DB) createUser(ctx context.Context, req *models.RegisterRequest, isAdmin bool) (user *models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("insert", "users", time.Now(), &err)

	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || name == "" {
		return nil, fmt.Errorf("name and email are required")
	}

	var exists bool
	if err = db.conn.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM users WHERE email = ?)", email).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO users (name, email, password_hash, region, age_group, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + userColumns

	user, err = scanUser(db.conn.QueryRowContext(ctx, query,
		name, email, hash, nullIfEmpty(req.Region), nullIfEmpty(req.AgeGroup), isAdmin, time.Now().UTC()))
	if err != nil {
		if isConstraintViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	logging.Info().
		Int64("user_id", user.ID).
		Bool("admin", isAdmin).
		Msg("User registered")
	return user, nil
}

// Authenticate checks email and password and records the login time.
// Unknown emails and wrong passwords both return ErrInvalidCredentials.
func (db *DB) Authenticate(ctx context.Context, email, password string) (user *models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("select", "users", time.Now(), &err)

	user, err = scanUser(db.conn.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ?", normalizeEmail(email)))
	if errors.Is(err, sql.ErrNoRows) {
		auth.BurnPasswordCheck(password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if _, err = db.conn.ExecContext(ctx, "UPDATE users SET last_login = ? WHERE user_id = ?", now, user.ID); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	user.LastLogin = &now
	return user, nil
}

// GetUser returns one user by id.
func (db *DB) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	user, err := scanUser(db.conn.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE user_id = ?", userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}
	return user, nil
}

// EnsureAdmin creates the configured admin account, or promotes an
// existing account with that email. The password of an existing account
// is left unchanged. It reports whether a new account was created.
func (db *DB) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	email = normalizeEmail(email)
	res, err := db.conn.ExecContext(ctx, "UPDATE users SET is_admin = true WHERE email = ?", email)
	if err != nil {
		return false, fmt.Errorf("promote admin: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		logging.Debug().Str("email", email).Msg("Admin account already present")
		return false, nil
	}

	if name == "" {
		name = "Administrator"
	}
	if _, err := db.createUser(ctx, &models.RegisterRequest{Name: name, Email: email, Password: password}, true); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}
