package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// devTokenSecret signs tokens when no AUTH_TOKEN_SECRET is configured
// outside production. Not suitable for real deployments.
const devTokenSecret = "renaltrack-dev-secret"

type Config struct {
	Port                   string   `mapstructure:"PORT"`
	Env                    string   `mapstructure:"ENV"`
	DatabaseURL            string   `mapstructure:"DATABASE_URL"`
	DBMaxConns             int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns             int32    `mapstructure:"DB_MIN_CONNS"`
	AuthTokenSecret        string   `mapstructure:"AUTH_TOKEN_SECRET"`
	AuthTokenTTLHours      int      `mapstructure:"AUTH_TOKEN_TTL_HOURS"`
	CORSOrigins            []string `mapstructure:"CORS_ORIGINS"`
	BootstrapAdminPassword string   `mapstructure:"BOOTSTRAP_ADMIN_PASSWORD"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("AUTH_TOKEN_TTL_HOURS", 12)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "admin123")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("AUTH_TOKEN_SECRET")
	v.BindEnv("AUTH_TOKEN_TTL_HOURS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("BOOTSTRAP_ADMIN_PASSWORD")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.AuthTokenSecret == "" && !cfg.IsProduction() {
		cfg.AuthTokenSecret = devTokenSecret
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. A development
// instance may fall back to an insecure built-in signing secret; production
// must provide its own.
func (c *Config) Validate() error {
	if c.IsProduction() && c.AuthTokenSecret == "" {
		return fmt.Errorf("AUTH_TOKEN_SECRET is required in production")
	}
	if c.AuthTokenTTLHours <= 0 {
		return fmt.Errorf("AUTH_TOKEN_TTL_HOURS must be positive, got %d", c.AuthTokenTTLHours)
	}
	if c.DBMaxConns < c.DBMinConns {
		return fmt.Errorf("DB_MAX_CONNS (%d) must be >= DB_MIN_CONNS (%d)", c.DBMaxConns, c.DBMinConns)
	}
	return nil
}
