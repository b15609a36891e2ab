package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-signup-verify/internal/pkg/validate"
)

type passwordCheckRequest struct {
	Password string `json:"password"`
}

// PasswordHandler exposes the password rules so clients can check input live.
type PasswordHandler struct{}

func NewPasswordHandler() *PasswordHandler { return &PasswordHandler{} }

func (h *PasswordHandler) Requirements(w http.ResponseWriter, _ *http.Request) {
	reqs := make([]RequirementEnvelope, len(validate.PasswordRules))
	for i, rule := range validate.PasswordRules {
		reqs[i] = RequirementEnvelope{Key: rule.Key, Text: rule.Text}
	}
	writeJSON(w, http.StatusOK, RequirementsEnvelope{
		MinLength:    validate.MinPasswordLength,
		SpecialChars: validate.SpecialChars,
		Requirements: reqs,
	})
}

func (h *PasswordHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req passwordCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, validate.Password(req.Password))
}
