package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// EnforceOpenPeriod rejects postings dated outside the active financial
	// year. Disable only for data migration runs.
	EnforceOpenPeriod bool

	// Rate limiting, applied per client IP.
	RateLimitPeriod   time.Duration
	RateLimitRequests int64

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENFORCE_OPEN_PERIOD", true)
	viper.SetDefault("RATE_LIMIT_PERIOD", "1m")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 300)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnforceOpenPeriod = viper.GetBool("ENFORCE_OPEN_PERIOD")
	if !cfg.EnforceOpenPeriod {
		log.Println("Warning: ENFORCE_OPEN_PERIOD is disabled. Vouchers dated outside the active financial year will post.")
	}

	rateLimitPeriodStr := viper.GetString("RATE_LIMIT_PERIOD")
	rateLimitPeriod, err := time.ParseDuration(rateLimitPeriodStr)
	if err != nil {
		rateLimitPeriod = time.Minute
		log.Printf("Warning: Invalid value for RATE_LIMIT_PERIOD ('%s'). Defaulting to %s.\n", rateLimitPeriodStr, rateLimitPeriod)
	}
	cfg.RateLimitPeriod = rateLimitPeriod
	cfg.RateLimitRequests = viper.GetInt64("RATE_LIMIT_REQUESTS")

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
