package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting read from the environment.
type Config struct {
	APIBaseURL     string
	APITimeout     time.Duration
	JWTSecretKey   string
	ServerPort     int
	AllowedOrigins []string
	LogLevel       slog.Level

	// Upstream golfer events. Disabled when RealtimeURL is empty.
	RealtimeURL   string
	RealtimeToken string

	PublicURL string
	WizardTTL time.Duration

	StripeSecretKey  string
	StripeSuccessURL string
	StripeCancelURL  string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first if present (handy for local runs).
func Load() (*Config, error) {
	_ = godotenv.Load()

	apiURL := strings.TrimRight(os.Getenv("API_BASE_URL"), "/")
	if apiURL == "" {
		return nil, fmt.Errorf("API_BASE_URL environment variable is not set")
	}
	if u, err := url.Parse(apiURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", apiURL)
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	portStr := getenv("SERVER_PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	timeout, err := duration("API_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	wizardTTL, err := duration("WIZARD_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
	}

	cfg := &Config{
		APIBaseURL:        apiURL,
		APITimeout:        timeout,
		JWTSecretKey:      jwtKey,
		ServerPort:        port,
		AllowedOrigins:    splitList(getenv("ALLOWED_ORIGINS", "*")),
		LogLevel:          level,
		RealtimeURL:       os.Getenv("REALTIME_URL"),
		RealtimeToken:     os.Getenv("REALTIME_TOKEN"),
		PublicURL:         strings.TrimRight(getenv("PUBLIC_URL", fmt.Sprintf("http://localhost:%d", port)), "/"),
		WizardTTL:         wizardTTL,
		StripeSecretKey:   os.Getenv("STRIPE_SECRET_KEY"),
		StripeSuccessURL:  os.Getenv("STRIPE_SUCCESS_URL"),
		StripeCancelURL:   os.Getenv("STRIPE_CANCEL_URL"),
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
