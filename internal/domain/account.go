package domain

import "time"

// Account is a user created through the signup flow after its email address
// was verified.
type Account struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	PasswordHash  string    `json:"-"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created"`
}

type SignupRequest struct {
	Email            string `json:"email" validate:"required,email,max=254"`
	Password         string `json:"password" validate:"required,max=72"`
	Name             string `json:"name" validate:"required,max=100"`
	VerificationCode string `json:"verification_code" validate:"omitempty,numeric"`
}
