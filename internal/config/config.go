package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort  string
	AppEnv   string
	AppName  string // product name shown in verification emails
	LogLevel string

	VerificationCodeTTL    time.Duration
	VerificationCodeLength int
	SweepInterval          time.Duration

	SMTPHost     string // empty disables email delivery; codes are logged instead
	SMTPPort     int
	SMTPSecure   bool // implicit TLS (port 465); STARTTLS is negotiated otherwise
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	JWTPrivateKeyPath    string
	JWTPublicKeyPath     string
	VerificationTokenTTL time.Duration

	AllowedOrigins []string // CORS allowed origins
	RateLimitRPS   float64  // per-IP requests/second; 0 disables the limiter
	RateLimitBurst int
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:  getEnv("APP_PORT", "3001"),
		AppEnv:   getEnv("APP_ENV", "development"),
		AppName:  getEnv("APP_NAME", "SnapSyllabus"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		VerificationCodeTTL:    getEnvDuration("VERIFICATION_CODE_TTL", 10*time.Minute),
		VerificationCodeLength: getEnvInt("VERIFICATION_CODE_LENGTH", 6),
		SweepInterval:          getEnvDuration("VERIFICATION_SWEEP_INTERVAL", time.Minute),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPSecure:   getEnv("SMTP_SECURE", "false") == "true",
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		JWTPrivateKeyPath:    getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:     getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		VerificationTokenTTL: getEnvDuration("VERIFICATION_TOKEN_TTL", 30*time.Minute),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("90s", "10m").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
