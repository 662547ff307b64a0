package config

import (
	"fmt"
	"strings"
	"time"

	"go-commerce-api/internal/rule"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration values.
type Config struct {
	AppName string `mapstructure:"APP_NAME"`
	Port    string `mapstructure:"PORT"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`
	DBTimeZone  string `mapstructure:"DB_TIMEZONE"`
	AutoMigrate bool   `mapstructure:"AUTO_MIGRATE"`

	JWTSecret   string `mapstructure:"JWT_SECRET"`
	JWTTTLHours int    `mapstructure:"JWT_TTL_HOURS"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"` // json | console

	OrderQuantityPolicy string `mapstructure:"ORDER_QUANTITY_POLICY"`

	SeedAdminEmail    string `mapstructure:"SEED_ADMIN_EMAIL"`
	SeedAdminPassword string `mapstructure:"SEED_ADMIN_PASSWORD"`
}

var defaults = map[string]any{
	"APP_NAME":              "Go Commerce API v1.0",
	"PORT":                  "3000",
	"DATABASE_URL":          "",
	"DB_HOST":               "localhost",
	"DB_PORT":               "5432",
	"DB_USER":               "postgres",
	"DB_PASSWORD":           "postgres",
	"DB_NAME":               "commerce",
	"DB_TIMEZONE":           "UTC",
	"AUTO_MIGRATE":          true,
	"JWT_SECRET":            "",
	"JWT_TTL_HOURS":         24,
	"LOG_LEVEL":             "info",
	"LOG_FORMAT":            "json",
	"ORDER_QUANTITY_POLICY": string(rule.QuantityPositive),
	"SEED_ADMIN_EMAIL":      "admin@example.com",
	"SEED_ADMIN_PASSWORD":   "",
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if c.JWTTTLHours <= 0 {
		return fmt.Errorf("JWT_TTL_HOURS must be positive, got %d", c.JWTTTLHours)
	}
	if _, err := rule.ParseQuantityPolicy(c.OrderQuantityPolicy); err != nil {
		return fmt.Errorf("ORDER_QUANTITY_POLICY: %w", err)
	}
	return nil
}

// DSN returns DATABASE_URL, or a keyword DSN assembled from the DB_* values.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBTimeZone,
	)
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTTTLHours) * time.Hour
}

// QuantityPolicy is only valid after Load succeeded.
func (c *Config) QuantityPolicy() rule.QuantityPolicy {
	p, _ := rule.ParseQuantityPolicy(c.OrderQuantityPolicy)
	return p
}
