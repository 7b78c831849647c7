package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// AWSConfig holds DynamoDB and S3 settings
type AWSConfig struct {
	Region         string
	DynamoEndpoint string // local DynamoDB override, empty in production
	TablePrefix    string
	Bucket         string
	PresignTTL     time.Duration
}

// AuthConfig holds token verification settings
type AuthConfig struct {
	JWTSecret string
	Issuer    string
	AdminIDs  []string
}

// StripeConfig holds payment provider settings
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
	Currency      string
}

// TornadoConfig bounds daily swiping
type TornadoConfig struct {
	DailySwipeLimit int
}

// PushConfig controls Push Éclair broadcasts
type PushConfig struct {
	RadiusKm      float64
	MaxRecipients int
}

// PaymentsConfig controls confirmation polling
type PaymentsConfig struct {
	PollAttempts int
	PollDelay    time.Duration
}

// GeocodeConfig points at a Nominatim-compatible reverse geocoder
type GeocodeConfig struct {
	BaseURL   string
	UserAgent string
}

// Config holds the complete application configuration
type Config struct {
	Server   ServerConfig
	AWS      AWSConfig
	Auth     AuthConfig
	Stripe   StripeConfig
	Tornado  TornadoConfig
	Push     PushConfig
	Payments PaymentsConfig
	Geocode  GeocodeConfig
	Debug    bool
}

// Default returns a configuration with every optional value filled in.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			AllowedOrigins: []string{"*"},
			RequestTimeout: 10 * time.Second,
		},
		AWS: AWSConfig{
			Region:      "eu-west-3",
			TablePrefix: "cupidwave_",
			PresignTTL:  5 * time.Minute,
		},
		Auth: AuthConfig{Issuer: ""},
		Stripe: StripeConfig{
			SuccessURL: "http://localhost:3000/payment/success?session_id={CHECKOUT_SESSION_ID}",
			CancelURL:  "http://localhost:3000/payment/cancel",
			Currency:   "eur",
		},
		Tornado:  TornadoConfig{DailySwipeLimit: 50},
		Push:     PushConfig{RadiusKm: 25, MaxRecipients: 200},
		Payments: PaymentsConfig{PollAttempts: 10, PollDelay: 2 * time.Second},
		Geocode: GeocodeConfig{
			BaseURL:   "https://nominatim.openstreetmap.org",
			UserAgent: "cupidwave-api/1.0",
		},
	}
}

// LoadConfig reads .env (when present) and the environment on top of Default.
func LoadConfig() (*Config, error) {
	loadDotEnv()
	return FromEnv(os.Getenv)
}

// LoadToolConfig is LoadConfig for offline commands that never verify tokens.
func LoadToolConfig() (*Config, error) {
	loadDotEnv()
	return parse(os.Getenv)
}

func loadDotEnv() {
	for _, location := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(location); err == nil {
			break
		}
	}
}

// FromEnv builds the configuration from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg, err := parse(getenv)
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	return cfg, nil
}

func parse(getenv func(string) string) (*Config, error) {
	cfg := Default()
	env := envReader{getenv: getenv}

	cfg.Server.Host = env.str("HOST", cfg.Server.Host)
	cfg.Server.Port = env.int("PORT", cfg.Server.Port)
	cfg.Server.AllowedOrigins = env.list("ALLOWED_ORIGINS", cfg.Server.AllowedOrigins)
	cfg.Server.RequestTimeout = env.duration("REQUEST_TIMEOUT", cfg.Server.RequestTimeout)

	cfg.AWS.Region = env.str("AWS_REGION", cfg.AWS.Region)
	cfg.AWS.DynamoEndpoint = env.str("DYNAMODB_ENDPOINT", "")
	cfg.AWS.TablePrefix = env.str("TABLE_PREFIX", cfg.AWS.TablePrefix)
	cfg.AWS.Bucket = env.str("S3_BUCKET_NAME", "")
	cfg.AWS.PresignTTL = env.duration("PRESIGN_TTL", cfg.AWS.PresignTTL)

	cfg.Auth.JWTSecret = env.str("JWT_SECRET", "")
	cfg.Auth.Issuer = env.str("JWT_ISSUER", cfg.Auth.Issuer)
	cfg.Auth.AdminIDs = env.list("ADMIN_USER_IDS", nil)

	cfg.Stripe.SecretKey = env.str("STRIPE_SECRET_KEY", "")
	cfg.Stripe.WebhookSecret = env.str("STRIPE_WEBHOOK_SECRET", "")
	cfg.Stripe.SuccessURL = env.str("STRIPE_SUCCESS_URL", cfg.Stripe.SuccessURL)
	cfg.Stripe.CancelURL = env.str("STRIPE_CANCEL_URL", cfg.Stripe.CancelURL)
	cfg.Stripe.Currency = env.str("STRIPE_CURRENCY", cfg.Stripe.Currency)

	cfg.Tornado.DailySwipeLimit = env.int("TORNADO_DAILY_LIMIT", cfg.Tornado.DailySwipeLimit)
	cfg.Push.RadiusKm = env.float("PUSH_RADIUS_KM", cfg.Push.RadiusKm)
	cfg.Push.MaxRecipients = env.int("PUSH_MAX_RECIPIENTS", cfg.Push.MaxRecipients)
	cfg.Payments.PollAttempts = env.int("PAYMENT_POLL_ATTEMPTS", cfg.Payments.PollAttempts)
	cfg.Payments.PollDelay = env.duration("PAYMENT_POLL_DELAY", cfg.Payments.PollDelay)

	cfg.Geocode.BaseURL = env.str("GEOCODE_BASE_URL", cfg.Geocode.BaseURL)
	cfg.Geocode.UserAgent = env.str("GEOCODE_USER_AGENT", cfg.Geocode.UserAgent)

	cfg.Debug = env.str("DEBUG", "") == "true"

	if env.err != nil {
		return nil, env.err
	}
	if cfg.Tornado.DailySwipeLimit <= 0 {
		return nil, fmt.Errorf("TORNADO_DAILY_LIMIT must be positive, got %d", cfg.Tornado.DailySwipeLimit)
	}
	if cfg.Payments.PollAttempts <= 0 {
		return nil, fmt.Errorf("PAYMENT_POLL_ATTEMPTS must be positive, got %d", cfg.Payments.PollAttempts)
	}
	return cfg, nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// TableName applies the configured prefix.
func (c *Config) TableName(base string) string {
	return c.AWS.TablePrefix + base
}

type envReader struct {
	getenv func(string) string
	err    error
}

func (e *envReader) str(key, def string) string {
	if v := strings.TrimSpace(e.getenv(key)); v != "" {
		return v
	}
	return def
}

func (e *envReader) int(key string, def int) int {
	raw := e.getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		e.fail(key, raw, err)
		return def
	}
	return v
}

func (e *envReader) float(key string, def float64) float64 {
	raw := e.getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		e.fail(key, raw, err)
		return def
	}
	return v
}

func (e *envReader) duration(key string, def time.Duration) time.Duration {
	raw := e.getenv(key)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		e.fail(key, raw, err)
		return def
	}
	return v
}

func (e *envReader) list(key string, def []string) []string {
	raw := e.getenv(key)
	if raw == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (e *envReader) fail(key, raw string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("invalid value %q for %s: %w", raw, key, err)
	}
}
