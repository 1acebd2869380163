// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package api

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/anshulrawat2507/CineArchive/internal/validation"
)

// maxRequestBodyBytes caps JSON request bodies.
const maxRequestBodyBytes = 1 << 20

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// decodeJSON reads a single JSON object from the request body into dst.
// Unknown fields and trailing data are rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return errors.New("request body is empty")
		case errors.As(err, &maxErr):
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		default:
			return errors.New("request body is not valid JSON")
		}
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// validateRequest runs struct validation and writes a VALIDATION_ERROR
// response on failure. It reports whether the request is valid.
func validateRequest(rw *ResponseWriter, v interface{}) bool {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return true
	}
	apiErr := verr.ToAPIError()
	rw.ValidationError(apiErr.Message, apiErr.Details)
	return false
}

// queryParams reads typed query parameters and remembers the first parse
// error, so handlers can read everything and check once.
type queryParams struct {
	r   *http.Request
	err error
}

func newQueryParams(r *http.Request) *queryParams {
	return &queryParams{r: r}
}

func (q *queryParams) String(key string) string {
	return strings.TrimSpace(q.r.URL.Query().Get(key))
}

func (q *queryParams) Int(key string) int {
	v := q.String(key)
	if v == "" || q.err != nil {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		q.err = fmt.Errorf("%s must be an integer", key)
	}
	return n
}

func (q *queryParams) Int64(key string) int64 {
	v := q.String(key)
	if v == "" || q.err != nil {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		q.err = fmt.Errorf("%s must be an integer", key)
	}
	return n
}

func (q *queryParams) Float(key string) float64 {
	v := q.String(key)
	if v == "" || q.err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		q.err = fmt.Errorf("%s must be a number", key)
	}
	return f
}

// Err returns the first parse error.
func (q *queryParams) Err() error {
	return q.err
}

// movieIDParam parses the {movieID} URL parameter.
func movieIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "movieID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidMovieID
	}
	return id, nil
}

// clientIP returns the request's remote address without the port.
// chi's RealIP middleware has already applied X-Forwarded-For.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// capLimit applies the API page size cap. Zero is passed through so the
// store or engine default applies.
func capLimit(limit, maxLimit int) int {
	if maxLimit > 0 && limit > maxLimit {
		return maxLimit
	}
	return limit
}

// listMeta builds pagination metadata for a capped list.
func listMeta(count, limit int) *PaginationMeta {
	return &PaginationMeta{
		Count:   count,
		Limit:   limit,
		HasMore: limit > 0 && count == limit,
	}
}
