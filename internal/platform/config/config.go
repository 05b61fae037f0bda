package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// AppTimezone is the timezone journal dates are normalized into.
	AppTimezone string
	Location    *time.Location
	// ForceUTC overrides AppTimezone and stores every instant in UTC.
	ForceUTC bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("APP_TIMEZONE", "UTC")
	viper.SetDefault("FORCE_UTC", false)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.ForceUTC = viper.GetBool("FORCE_UTC")

	cfg.AppTimezone = viper.GetString("APP_TIMEZONE")
	loc, err := time.LoadLocation(cfg.AppTimezone)
	if err != nil {
		log.Printf("Warning: Invalid value for APP_TIMEZONE ('%s'). Defaulting to UTC.\n", cfg.AppTimezone)
		cfg.AppTimezone = "UTC"
		loc = time.UTC
	}
	cfg.Location = loc

	return cfg, nil
}
