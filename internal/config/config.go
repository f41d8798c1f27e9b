// Package config loads settings for the API server and the admin console.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every setting read from config.yaml and the environment.
type Config struct {
	AppPort        string        `mapstructure:"APP_PORT"`
	DBDriver       string        `mapstructure:"DB_DRIVER"`
	DatabaseDSN    string        `mapstructure:"DATABASE_DSN"`
	JWTSecret      string        `mapstructure:"JWT_SECRET"`
	JWTTTL         time.Duration `mapstructure:"JWT_TTL"`
	RabbitMQURL    string        `mapstructure:"RABBITMQ_URL"`
	MetricsEnabled bool          `mapstructure:"METRICS_ENABLED"`
	PerPage        int           `mapstructure:"PER_PAGE"`

	// Client side.
	APIBaseURL    string        `mapstructure:"API_BASE_URL"`
	AssetURL      string        `mapstructure:"ASSET_URL"`
	APITimeout    time.Duration `mapstructure:"API_TIMEOUT"`
	AdminUsername string        `mapstructure:"ADMIN_USERNAME"`
	AdminPassword string        `mapstructure:"ADMIN_PASSWORD"`
	AdminEmail    string        `mapstructure:"ADMIN_EMAIL"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "file:toko.db?cache=shared")
	v.SetDefault("JWT_SECRET", "supersecretjwtkey")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("PER_PAGE", 10)
	v.SetDefault("API_BASE_URL", "http://localhost:8080/api/v1")
	v.SetDefault("ASSET_URL", "http://localhost:8080/storage")
	v.SetDefault("API_TIMEOUT", "10s")
	v.SetDefault("ADMIN_USERNAME", "owner")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("ADMIN_EMAIL", "owner@toko.local")
}

// Load reads config.yaml from path when present, then applies environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	var cfg Config
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		return cfg, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = 10
	}
	return cfg, nil
}
