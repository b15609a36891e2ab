package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-signup-verify/internal/application/account"
	"github.com/go-signup-verify/internal/domain"
	"github.com/go-signup-verify/internal/transport/http/middleware"
)

// SignupHandler creates accounts for verified email addresses.
type SignupHandler struct {
	svc account.Service
}

func NewSignupHandler(svc account.Service) *SignupHandler { return &SignupHandler{svc: svc} }

func (h *SignupHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in := account.SignupInput{SignupRequest: req}
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		in.VerifiedEmail = claims.Email
	}
	a, err := h.svc.Signup(r.Context(), in)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, AccountEnvelope{Account: a, Message: "account created"})
}
