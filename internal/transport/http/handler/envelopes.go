package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-signup-verify/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// VerificationEnvelope wraps send and verify responses.
type VerificationEnvelope struct {
	Success   bool   `json:"success"`
	Outcome   string `json:"outcome,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	ExpiresIn int64  `json:"expires_in,omitempty"` // seconds
	Token     string `json:"token,omitempty"`
}

// ExpirationEnvelope reports the seconds left on a code. Zero means the code
// expired and has not been reclaimed yet.
type ExpirationEnvelope struct {
	Email     string `json:"email"`
	ExpiresIn int64  `json:"expires_in"`
}

type RequirementEnvelope struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

type RequirementsEnvelope struct {
	MinLength    int                   `json:"min_length"`
	SpecialChars string                `json:"special_chars"`
	Requirements []RequirementEnvelope `json:"requirements"`
}

// AccountEnvelope wraps signup responses.
type AccountEnvelope struct {
	Account *domain.Account `json:"account,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// statusFor maps domain errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCodeExpired):
		return http.StatusGone
	case errors.Is(err, domain.ErrCodeMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrDeliveryFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the text shown to clients for err. Internal failures are
// not described.
func publicMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrCodeNotFound):
		return "No verification code found. Please request a new code."
	case errors.Is(err, domain.ErrCodeExpired):
		return "Verification code expired. Please request a new code."
	case errors.Is(err, domain.ErrCodeMismatch):
		return "Invalid verification code."
	case errors.Is(err, domain.ErrDeliveryFailed):
		return "Failed to send verification email. Please try again."
	}
	msg := err.Error()
	for _, sentinel := range []error{domain.ErrBadRequest, domain.ErrUnauthorized, domain.ErrNotFound, domain.ErrConflict} {
		if errors.Is(err, sentinel) {
			return strings.TrimSuffix(msg, ": "+sentinel.Error())
		}
	}
	return "internal server error"
}

func httpError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), publicMessage(err))
}
