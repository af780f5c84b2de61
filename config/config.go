package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

/* Config é um pacote auxiliar. Poderia ser uma lib externa*/

type Config struct {
	Port     string `mapstructure:"PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogJSON  bool   `mapstructure:"LOG_JSON"`

	StoreBackend    string `mapstructure:"STORE_BACKEND"`
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int    `mapstructure:"REDIS_DB"`
	PendingTTLHours int    `mapstructure:"PENDING_TTL_HOURS"`
	DatabaseURL     string `mapstructure:"DATABASE_URL"`

	SecretsBackend   string `mapstructure:"SECRETS_BACKEND"`
	SecretsFile      string `mapstructure:"SECRETS_FILE"`
	SecretsEnvPrefix string `mapstructure:"SECRETS_ENV_PREFIX"`
	GCPProject       string `mapstructure:"GCP_PROJECT"`

	SlackAPIURL       string        `mapstructure:"SLACK_API_URL"`
	HTTPClientTimeout time.Duration `mapstructure:"HTTP_CLIENT_TIMEOUT"`

	IssueRateLimit float64 `mapstructure:"ISSUE_RATE_LIMIT"`
	IssueRateBurst int     `mapstructure:"ISSUE_RATE_BURST"`
}

var defaults = map[string]any{
	"PORT":                "8080",
	"LOG_LEVEL":           "info",
	"LOG_JSON":            true,
	"STORE_BACKEND":       "memory",
	"REDIS_ADDR":          "localhost:6379",
	"REDIS_PASSWORD":      "",
	"REDIS_DB":            0,
	"PENDING_TTL_HOURS":   0,
	"DATABASE_URL":        "",
	"SECRETS_BACKEND":     "env",
	"SECRETS_FILE":        "secrets.yaml",
	"SECRETS_ENV_PREFIX":  "",
	"GCP_PROJECT":         "",
	"SLACK_API_URL":       "",
	"HTTP_CLIENT_TIMEOUT": "10s",
	"ISSUE_RATE_LIMIT":    10.0,
	"ISSUE_RATE_BURST":    20,
}

// GetConfig reads .env (TOML) from the working directory when present, then the environment
func GetConfig() (*Config, error) {
	return load(viper.New(), ".")
}

func load(v *viper.Viper, path string) (*Config, error) {
	v.SetConfigName(".env")
	v.SetConfigType("toml")
	v.AddConfigPath(path)
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	err = v.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	return &config, nil
}

// PendingTTL is the Redis expiry for pending requests, zero means none
func (c *Config) PendingTTL() time.Duration {
	return time.Duration(c.PendingTTLHours) * time.Hour
}
