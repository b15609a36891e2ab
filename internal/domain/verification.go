package domain

import (
	"strings"
	"time"
)

// VerificationEntry binds a one-time code to an identity until ExpiresAt.
// Entries are immutable once stored; a new request replaces the entry instead
// of mutating it.
type VerificationEntry struct {
	Identity  string    `json:"identity"`
	Code      string    `json:"-"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Live reports whether the entry is still redeemable at now.
func (e VerificationEntry) Live(now time.Time) bool {
	return now.Before(e.ExpiresAt)
}

// NormalizeIdentity case-folds an email-like identity. No format validation
// happens here.
func NormalizeIdentity(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}
