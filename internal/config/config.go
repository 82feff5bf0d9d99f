// Package config loads solarplanner service configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/stanrw/enerwiseuk-sub000/pkg/project"
	"github.com/stanrw/enerwiseuk-sub000/pkg/validation"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SOLARPLANNER_"

// Config is the root configuration structure.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	SolarAPI SolarAPIConfig `yaml:"solar_api"`
	Engine   EngineConfig   `yaml:"engine"`
	Cost     project.Tariff `yaml:"cost"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// ServerConfig contains HTTP API server settings.
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	RatePerSecond  float64  `yaml:"rate_per_second"`
	RateBurst      int      `yaml:"rate_burst"`
	ReadTimeout    int      `yaml:"read_timeout"`
	WriteTimeout   int      `yaml:"write_timeout"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// RedisConfig contains result cache settings.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	TTL     int    `yaml:"ttl"` // seconds
	Prefix  string `yaml:"prefix"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	ClientID    string `yaml:"client_id"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	QoS         int    `yaml:"qos"`
	TopicPrefix string `yaml:"topic_prefix"`
}

// SolarAPIConfig contains building insights API settings.
type SolarAPIConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Timeout int    `yaml:"timeout"` // seconds
	// RequiredQuality is the lowest imagery quality accepted: HIGH, MEDIUM or LOW.
	RequiredQuality string  `yaml:"required_quality"`
	RatePerSecond   float64 `yaml:"rate_per_second"` // 0 disables client-side throttling
	// InsightsDir serves insights from JSON files when no API key is set.
	InsightsDir string `yaml:"insights_dir"`
}

// EngineConfig holds the installer constraints and panel used when a request
// does not carry its own.
type EngineConfig struct {
	Constraints project.Constraints `yaml:"constraints"`
	Panel       project.PanelSpec   `yaml:"panel"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults), skipped when path is empty
//  3. A .env file in the working directory, if present
//  4. Environment variables (override file values)
//
// Environment variables follow the pattern: SOLARPLANNER_SECTION_KEY
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	_ = godotenv.Load()
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:4200"},
			RatePerSecond:  5,
			RateBurst:      10,
			ReadTimeout:    30,
			WriteTimeout:   30,
		},
		Database: DatabaseConfig{
			Path:        "./data/solarplanner.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		Redis: RedisConfig{
			URL:    "redis://localhost:6379/0",
			TTL:    86400,
			Prefix: "solarplanner:",
		},
		MQTT: MQTTConfig{
			Host:        "localhost",
			Port:        1883,
			ClientID:    "solarplanner",
			QoS:         1,
			TopicPrefix: "solarplanner",
		},
		SolarAPI: SolarAPIConfig{
			BaseURL:         "https://solar.googleapis.com/v1",
			Timeout:         20,
			RequiredQuality: "HIGH",
			RatePerSecond:   5,
		},
		Engine: EngineConfig{
			Constraints: project.DefaultConstraints(),
			Panel:       project.DefaultPanel(),
		},
		Cost: project.DefaultTariff(),
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) error {
	str := map[string]*string{
		"LOG_LEVEL":          &cfg.Logging.Level,
		"LOG_FORMAT":         &cfg.Logging.Format,
		"SERVER_HOST":        &cfg.Server.Host,
		"DATABASE_PATH":      &cfg.Database.Path,
		"REDIS_URL":          &cfg.Redis.URL,
		"MQTT_HOST":          &cfg.MQTT.Host,
		"MQTT_USERNAME":      &cfg.MQTT.Username,
		"MQTT_PASSWORD":      &cfg.MQTT.Password,
		"SOLAR_API_URL":      &cfg.SolarAPI.BaseURL,
		"SOLAR_API_KEY":      &cfg.SolarAPI.APIKey,
		"SOLAR_INSIGHTS_DIR": &cfg.SolarAPI.InsightsDir,
	}
	for key, dst := range str {
		if v := os.Getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"SERVER_PORT": &cfg.Server.Port,
		"MQTT_PORT":   &cfg.MQTT.Port,
	}
	for key, dst := range ints {
		if v := os.Getenv(EnvPrefix + key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("parsing %s%s: %w", EnvPrefix, key, err)
			}
			*dst = n
		}
	}

	bools := map[string]*bool{
		"REDIS_ENABLED": &cfg.Redis.Enabled,
		"MQTT_ENABLED":  &cfg.MQTT.Enabled,
	}
	for key, dst := range bools {
		if v := os.Getenv(EnvPrefix + key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("parsing %s%s: %w", EnvPrefix, key, err)
			}
			*dst = b
		}
	}

	if v := os.Getenv(EnvPrefix + "ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitCSV(v)
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 1 and 65535")
	}
	if c.Server.RatePerSecond <= 0 || c.Server.RateBurst < 1 {
		errs = append(errs, "server.rate_per_second and server.rate_burst must be positive")
	}
	if c.Redis.Enabled && c.Redis.URL == "" {
		errs = append(errs, "redis.url is required when redis is enabled")
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.Enabled && c.MQTT.Host == "" {
		errs = append(errs, "mqtt.host is required when mqtt is enabled")
	}
	switch c.SolarAPI.RequiredQuality {
	case "", "HIGH", "MEDIUM", "LOW":
	default:
		errs = append(errs, "solar_api.required_quality must be HIGH, MEDIUM or LOW")
	}

	r := validation.ValidateConstraints(c.Engine.Constraints)
	r.Merge(validation.ValidatePanel(c.Engine.Panel))
	for _, e := range r.Errors {
		errs = append(errs, "engine."+e.Path+": "+e.Message)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetReadTimeout returns the server read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.Server.ReadTimeout) * time.Second
}

// GetWriteTimeout returns the server write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.Server.WriteTimeout) * time.Second
}

// CacheTTL returns the result cache TTL as a Duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Redis.TTL) * time.Second
}

// SolarAPITimeout returns the insights API timeout as a Duration.
func (c *Config) SolarAPITimeout() time.Duration {
	return time.Duration(c.SolarAPI.Timeout) * time.Second
}

func splitCSV(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
