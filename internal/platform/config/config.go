package config

import (
	"fmt"
	"log"
	"time"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Admin API auth
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Webhook auth: bcrypt hash of the shared API key and the caller name
	// recorded as the acting user on webhook-driven writes.
	WebhookAPIKeyHash string
	WebhookCallerName string

	// Webhook rate limiting, in ulule/limiter notation (e.g. "60-M").
	WebhookRateLimit string

	// Global fee policy defaults; per-organization overrides win.
	PlatformFeePercentage decimal.Decimal
	PlatformFeeFixedCents int64
	ReleaseDays           int

	NotifierQueueSize int

	PosthogAPIKey string
}

// DefaultFeePolicy returns the global fee policy from configuration.
func (c *Config) DefaultFeePolicy() domain.FeePolicy {
	return domain.FeePolicy{
		Percentage:  c.PlatformFeePercentage,
		FixedCents:  c.PlatformFeeFixedCents,
		ReleaseDays: c.ReleaseDays,
	}
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "ledger-engine")
	viper.SetDefault("WEBHOOK_API_KEY_HASH", "")
	viper.SetDefault("WEBHOOK_CALLER_NAME", "gateway-webhook")
	viper.SetDefault("WEBHOOK_RATE_LIMIT", "120-M")
	viper.SetDefault("PLATFORM_FEE_PERCENTAGE", "5")
	viper.SetDefault("PLATFORM_FEE_FIXED_CENTS", 0)
	viper.SetDefault("RELEASE_DAYS", 14)
	viper.SetDefault("NOTIFIER_QUEUE_SIZE", 64)
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.WebhookAPIKeyHash = viper.GetString("WEBHOOK_API_KEY_HASH")
	if cfg.WebhookAPIKeyHash == "" {
		log.Println("Warning: WEBHOOK_API_KEY_HASH not set. Webhook endpoints will reject all callers.")
	}
	cfg.WebhookCallerName = viper.GetString("WEBHOOK_CALLER_NAME")
	cfg.WebhookRateLimit = viper.GetString("WEBHOOK_RATE_LIMIT")

	feePctStr := viper.GetString("PLATFORM_FEE_PERCENTAGE")
	feePct, err := decimal.NewFromString(feePctStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PLATFORM_FEE_PERCENTAGE %q: %w", feePctStr, err)
	}
	if feePct.IsNegative() {
		return nil, fmt.Errorf("PLATFORM_FEE_PERCENTAGE must not be negative, got %s", feePct.String())
	}
	cfg.PlatformFeePercentage = feePct

	cfg.PlatformFeeFixedCents = viper.GetInt64("PLATFORM_FEE_FIXED_CENTS")
	if cfg.PlatformFeeFixedCents < 0 {
		return nil, fmt.Errorf("PLATFORM_FEE_FIXED_CENTS must not be negative, got %d", cfg.PlatformFeeFixedCents)
	}

	cfg.ReleaseDays = viper.GetInt("RELEASE_DAYS")
	if cfg.ReleaseDays < 0 {
		return nil, fmt.Errorf("RELEASE_DAYS must not be negative, got %d", cfg.ReleaseDays)
	}

	cfg.NotifierQueueSize = viper.GetInt("NOTIFIER_QUEUE_SIZE")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}
