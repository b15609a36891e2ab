package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-signup-verify/internal/application/verification"
	"github.com/go-signup-verify/internal/domain"
)

// Verify outcomes reported to clients.
const (
	OutcomeAccepted         = "accepted"
	OutcomeRejectedNotFound = "rejected-not-found"
	OutcomeRejectedExpired  = "rejected-expired"
	OutcomeRejectedMismatch = "rejected-mismatch"
)

// VerificationHandler handles the email verification code endpoints.
type VerificationHandler struct {
	svc verification.Service
}

func NewVerificationHandler(svc verification.Service) *VerificationHandler {
	return &VerificationHandler{svc: svc}
}

func (h *VerificationHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req verification.RequestCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.svc.RequestCode(r.Context(), req)
	if err != nil {
		if res == nil {
			httpError(w, err)
			return
		}
		writeJSON(w, statusFor(err), VerificationEnvelope{
			Error:     publicMessage(err),
			ExpiresIn: seconds(res.ExpiresIn),
		})
		return
	}
	writeJSON(w, http.StatusOK, VerificationEnvelope{
		Success:   true,
		Message:   "Verification code sent to " + res.Email,
		ExpiresIn: seconds(res.ExpiresIn),
	})
}

func (h *VerificationHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verification.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.svc.VerifyCode(r.Context(), req)
	if err != nil {
		outcome := outcomeFor(err)
		if outcome == "" {
			httpError(w, err)
			return
		}
		writeJSON(w, statusFor(err), VerificationEnvelope{Outcome: outcome, Error: publicMessage(err)})
		return
	}
	writeJSON(w, http.StatusOK, VerificationEnvelope{
		Success: true,
		Outcome: OutcomeAccepted,
		Message: "Email verified",
		Token:   res.Receipt,
	})
}

func (h *VerificationHandler) Expiration(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	d, err := h.svc.CodeExpiration(r.Context(), email)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ExpirationEnvelope{Email: domain.NormalizeIdentity(email), ExpiresIn: seconds(d)})
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrCodeNotFound):
		return OutcomeRejectedNotFound
	case errors.Is(err, domain.ErrCodeExpired):
		return OutcomeRejectedExpired
	case errors.Is(err, domain.ErrCodeMismatch):
		return OutcomeRejectedMismatch
	}
	return ""
}

// seconds rounds d up to whole seconds.
func seconds(d time.Duration) int64 {
	s := int64(d / time.Second)
	if d%time.Second > 0 {
		s++
	}
	return s
}
