// Package config loads the runtime configuration from environment variables
// into an explicit struct that is passed into constructors. Nothing in this
// package logs secret material; callers may only report whether a value is
// present.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds every runtime setting of the server. TTLs are stored as
// durations so they can be handed straight to the token codec.
type Config struct {
	Environment string // "production" enables outbound mail
	Port        string
	LogLevel    string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	JWTSecret           string // shared signing secret, required
	SessionTTL          time.Duration
	VerificationTTL     time.Duration
	ResetTTL            time.Duration
	PasswordMinLength   int
	MaxLoginAttempts    int // advisory only, not enforced server-side
	BcryptCost          int
	MailgunAPIKey       string
	MailDomain          string
	SenderAddress       string
	AppURL              string // base URL embedded in mail links
}

var errMissingSecret = errors.New("JWT_SECRET must be set and non-empty")

// Load reads the configuration from the environment. It fails if the signing
// secret is missing; everything else falls back to a sane default.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errMissingSecret
	}

	cfg := &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "INFO"),
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            os.Getenv("DB_PORT"),
		DBUser:            os.Getenv("DB_USER"),
		DBPass:            os.Getenv("DB_PASS"),
		DBName:            os.Getenv("DB_NAME"),
		JWTSecret:         secret,
		SessionTTL:        secondsEnv("SESSION_TTL_SECONDS", 3600),
		VerificationTTL:   secondsEnv("VERIFICATION_TOKEN_TTL_SECONDS", 86400),
		ResetTTL:          secondsEnv("RESET_TOKEN_TTL_SECONDS", 3600),
		PasswordMinLength: intEnv("PASSWORD_MIN_LENGTH", 8),
		MaxLoginAttempts:  intEnv("MAX_LOGIN_ATTEMPTS", 3),
		BcryptCost:        intEnv("BCRYPT_COST", 0),
		MailgunAPIKey:     os.Getenv("MAILGUN_API_KEY"),
		MailDomain:        getEnv("MAIL_DOMAIN", "mail.cycle-nutrition.app"),
		SenderAddress:     getEnv("SENDER_EMAIL", "Cycle Nutrition Assistant <team@mail.cycle-nutrition.app>"),
		AppURL:            getEnv("APP_URL", "http://localhost:8080"),
	}

	return cfg, nil
}

// SecretPresent reports whether the signing secret is configured without
// exposing any of its content.
func (c *Config) SecretPresent() bool {
	return c.JWTSecret != ""
}

// MailConfigured reports whether the outbound mail credentials are set.
func (c *Config) MailConfigured() bool {
	return c.MailgunAPIKey != "" && c.SenderAddress != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func secondsEnv(key string, fallback int) time.Duration {
	return time.Duration(intEnv(key, fallback)) * time.Second
}
