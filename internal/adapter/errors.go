// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Every error returned by [Transport.Do] for a failed exchange is
// an [*APIError] whose Kind is one of these sentinels, so callers can match
// with [errors.Is] without inspecting status codes.
var (
	// ErrUnreachable means no response was received at all (status 0).
	ErrUnreachable = errors.New("service unreachable")
	// ErrTimeout means the client-side deadline expired (status 408).
	ErrTimeout = errors.New("request timed out")
	// ErrUnauthorized is a 401 answer; the token is no longer accepted.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is a 403 answer.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation covers the remaining 4xx answers (400, 402, 404, 409,
	// 422, 429, ...). The status is preserved on the error.
	ErrValidation = errors.New("request rejected")
	// ErrServerFault covers 5xx answers.
	ErrServerFault = errors.New("server fault")
	// ErrMalformed means a 2xx answer could not be interpreted.
	ErrMalformed = errors.New("malformed response")
)

// ErrNoUserID is returned without any network call when a user-scoped
// request is made before the session user is known.
var ErrNoUserID = errors.New("user id is not set")

// APIError is the typed error of the transport. Message is the
// server-supplied text when there is one; Data holds the decoded error body.
type APIError struct {
	Kind    error
	Status  int
	Message string
	Data    map[string]any
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v (status %d)", e.Kind, e.Status)
	}
	return fmt.Sprintf("%v (status %d): %s", e.Kind, e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

// StatusOf returns the HTTP status carried by err, or -1 when err is not an
// [*APIError].
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return -1
}

// IsTokenInvalidating reports whether err means the stored credential must be
// dropped (401 or 403).
func IsTokenInvalidating(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}

// IsInsufficientCredits reports a 402 answer.
func IsInsufficientCredits(err error) bool {
	return StatusOf(err) == http.StatusPaymentRequired
}

// IsNotFound reports a 404 answer.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// IsConflict reports a 409 answer, e.g. an already registered email.
func IsConflict(err error) bool {
	return StatusOf(err) == http.StatusConflict
}

// IsRateLimited reports a 429 answer.
func IsRateLimited(err error) bool {
	return StatusOf(err) == http.StatusTooManyRequests
}
