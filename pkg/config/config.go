package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Database
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Simulation
	QuarterMinutes     float64 `mapstructure:"QUARTER_MINUTES"`
	DefaultPace        string  `mapstructure:"DEFAULT_PACE"`
	InjuryRate         float64 `mapstructure:"INJURY_RATE"`
	SimCacheExpiration int     `mapstructure:"SIM_CACHE_EXPIRATION"`

	// Roster provider
	RosterAPIURL            string        `mapstructure:"ROSTER_API_URL"`
	RosterAPITimeout        time.Duration `mapstructure:"ROSTER_API_TIMEOUT"`
	CircuitBreakerThreshold int           `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`

	// Rate limiting
	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	// Background jobs
	EnableBackgroundJobs bool   `mapstructure:"ENABLE_BACKGROUND_JOBS"`
	SimSchedule          string `mapstructure:"SIM_SCHEDULE"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATABASE_URL", "sqlite://courtsim.db")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")

	viper.SetDefault("QUARTER_MINUTES", 12.0)
	viper.SetDefault("DEFAULT_PACE", "standard")
	viper.SetDefault("INJURY_RATE", 0.0005)
	viper.SetDefault("SIM_CACHE_EXPIRATION", 3600) // 1 hour in seconds

	viper.SetDefault("ROSTER_API_URL", "") // empty means built-in rosters
	viper.SetDefault("ROSTER_API_TIMEOUT", "10s")
	viper.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5) // trip after 5 consecutive failures

	viper.SetDefault("RATE_LIMIT_RPS", 5.0)
	viper.SetDefault("RATE_LIMIT_BURST", 10)

	viper.SetDefault("ENABLE_BACKGROUND_JOBS", false)
	viper.SetDefault("SIM_SCHEDULE", "@every 5m")

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	if corsStr := viper.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
