package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, 10*time.Minute, cfg.VerificationCodeTTL)
	assert.Equal(t, 6, cfg.VerificationCodeLength)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Zero(t, cfg.RateLimitRPS)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("VERIFICATION_CODE_TTL", "90s")
	t.Setenv("VERIFICATION_CODE_LENGTH", "8")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_SECURE", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173,https://app.example")

	cfg := Load()
	assert.Equal(t, 90*time.Second, cfg.VerificationCodeTTL)
	assert.Equal(t, 8, cfg.VerificationCodeLength)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.True(t, cfg.SMTPSecure)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, []string{"http://localhost:5173", "https://app.example"}, cfg.AllowedOrigins)
}

func TestLoad_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("VERIFICATION_CODE_TTL", "ten minutes")
	t.Setenv("VERIFICATION_SWEEP_INTERVAL", "-5s")
	t.Setenv("SMTP_PORT", "smtp")

	cfg := Load()
	assert.Equal(t, 10*time.Minute, cfg.VerificationCodeTTL)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.Equal(t, 587, cfg.SMTPPort)
}
