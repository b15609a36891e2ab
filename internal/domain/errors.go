package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
)

// Verification outcomes. None of them are fatal; the caller decides whether to
// prompt for a fresh code or let the user retry.
var (
	// ErrCodeNotFound means no live code exists for the identity: never issued,
	// already consumed, or already reclaimed.
	ErrCodeNotFound = errors.New("verification code not found")
	// ErrCodeExpired means the code existed but its deadline passed. The entry is
	// removed as a side effect of reporting this.
	ErrCodeExpired = errors.New("verification code expired")
	// ErrCodeMismatch means a live code exists but the submitted one differs.
	// The stored code is kept so the user can resubmit.
	ErrCodeMismatch = errors.New("verification code mismatch")
	// ErrDeliveryFailed reports a dispatcher failure. It never affects stored codes.
	ErrDeliveryFailed = errors.New("verification email delivery failed")
)
