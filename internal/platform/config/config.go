package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Ledger behavior
	DefaultCurrency  string
	LargeTxThreshold decimal.Decimal
	NotifyWebhookURL string

	// Report cache
	RedisURL       string
	ReportCacheTTL time.Duration

	// Rate limiting, ulule/limiter format e.g. "100-M"
	RateLimit string
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
	viper.SetDefault("JWT_ISSUER", "finacct-backend")
	viper.SetDefault("DEFAULT_CURRENCY", "USD")
	viper.SetDefault("LARGE_TX_THRESHOLD", "10000")
	viper.SetDefault("NOTIFY_WEBHOOK_URL", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REPORT_CACHE_TTL", "5m")
	viper.SetDefault("RATE_LIMIT", "100-M")

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
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION (%q). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.DefaultCurrency = viper.GetString("DEFAULT_CURRENCY")

	thresholdStr := viper.GetString("LARGE_TX_THRESHOLD")
	threshold, err := decimal.NewFromString(thresholdStr)
	if err != nil || threshold.IsNegative() {
		threshold = decimal.NewFromInt(10000)
		log.Printf("Warning: Invalid value for LARGE_TX_THRESHOLD (%q). Defaulting to %s.\n", thresholdStr, threshold)
	}
	cfg.LargeTxThreshold = threshold

	cfg.NotifyWebhookURL = viper.GetString("NOTIFY_WEBHOOK_URL")

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cacheTTLStr := viper.GetString("REPORT_CACHE_TTL")
	cacheTTL, err := time.ParseDuration(cacheTTLStr)
	if err != nil {
		cacheTTL = 5 * time.Minute
		log.Printf("Warning: Invalid value for REPORT_CACHE_TTL (%q). Defaulting to %s.\n", cacheTTLStr, cacheTTL)
	}
	cfg.ReportCacheTTL = cacheTTL

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
