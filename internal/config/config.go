package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	User     UserConfig     `json:"user" mapstructure:"user"`
	Database DatabaseConfig `json:"database" mapstructure:"database"`
	Server   ServerConfig   `json:"server" mapstructure:"server"`
	Coach    CoachConfig    `json:"coach" mapstructure:"coach"`
	Redis    RedisConfig    `json:"redis" mapstructure:"redis"`
	Display  DisplayConfig  `json:"display" mapstructure:"display"`
	Log      LogConfig      `json:"log" mapstructure:"log"`
}

// UserConfig identifies whose assessments the terminal dashboard shows
type UserConfig struct {
	ID string `json:"id" mapstructure:"id"`
}

// DatabaseConfig holds storage settings
type DatabaseConfig struct {
	Path string `json:"path" mapstructure:"path"` // empty means ~/.healthscore/data.db
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Addr     string `json:"addr" mapstructure:"addr"`
	AdminKey string `json:"admin_key" mapstructure:"admin_key"`
}

// CoachConfig holds the coaching text generator settings
type CoachConfig struct {
	BaseURL           string `json:"base_url" mapstructure:"base_url"`
	APIKey            string `json:"api_key" mapstructure:"api_key"`
	Model             string `json:"model" mapstructure:"model"`
	RequestsPerMinute int    `json:"requests_per_minute" mapstructure:"requests_per_minute"`
}

// Enabled reports whether coaching should be requested
func (c CoachConfig) Enabled() bool {
	return c.APIKey != "" && c.APIKey != "YOUR_API_KEY"
}

// RedisConfig holds the login limiter backend. Empty Addr uses process memory.
type RedisConfig struct {
	Addr string `json:"addr" mapstructure:"addr"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	WeightUnit string `json:"weight_unit" mapstructure:"weight_unit"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Mode string `json:"mode" mapstructure:"mode"` // "dev" or "prod"
	File string `json:"file" mapstructure:"file"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// envPrefix namespaces environment overrides, e.g. HEALTHSCORE_SERVER_ADDR
const envPrefix = "HEALTHSCORE"

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		User: UserConfig{
			ID: "local",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Coach: CoachConfig{
			BaseURL:           "https://api.openai.com/v1",
			Model:             "gpt-4o-mini",
			RequestsPerMinute: 20,
		},
		Display: DisplayConfig{
			WeightUnit: "kg",
		},
		Log: LogConfig{
			Mode: "dev",
		},
	}
}

// Load reads the configuration from ~/.healthscore/config.json, applying
// .env and HEALTHSCORE_* environment overrides
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration at path
func LoadFrom(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoConfig
	}

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns the defaults with environment overrides applied, for
// running without a config file
func FromEnv() (*Config, error) {
	v := newViper()
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	return &cfg, nil
}

// newViper registers every key with its default so AutomaticEnv can see it
func newViper() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()

	v.SetDefault("user.id", d.User.ID)
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.admin_key", d.Server.AdminKey)
	v.SetDefault("coach.base_url", d.Coach.BaseURL)
	v.SetDefault("coach.api_key", d.Coach.APIKey)
	v.SetDefault("coach.model", d.Coach.Model)
	v.SetDefault("coach.requests_per_minute", d.Coach.RequestsPerMinute)
	v.SetDefault("redis.addr", d.Redis.Addr)
	v.SetDefault("display.weight_unit", d.Display.WeightUnit)
	v.SetDefault("log.mode", d.Log.Mode)
	v.SetDefault("log.file", d.Log.File)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Save writes the configuration to ~/.healthscore/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes the configuration to path
func SaveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Coach.APIKey = "YOUR_API_KEY"

	return SaveTo(path, &example)
}

// Validate checks that configured values are usable
func (c *Config) Validate() error {
	if strings.TrimSpace(c.User.ID) == "" {
		return errors.New("user.id is required")
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}

	if c.Display.WeightUnit != "" && c.Display.WeightUnit != "kg" && c.Display.WeightUnit != "lb" {
		return fmt.Errorf("display.weight_unit must be \"kg\" or \"lb\", got %q", c.Display.WeightUnit)
	}

	switch c.Log.Mode {
	case "", "dev", "prod":
	default:
		return fmt.Errorf("log.mode must be \"dev\" or \"prod\", got %q", c.Log.Mode)
	}

	if key := strings.TrimSpace(c.Server.AdminKey); key == "change-me" || key == "YOUR_ADMIN_KEY" {
		return fmt.Errorf("server.admin_key %q is a placeholder; set a real key or leave it empty to disable admin endpoints", key)
	}

	if c.Coach.RequestsPerMinute < 0 {
		return fmt.Errorf("coach.requests_per_minute must not be negative, got %d", c.Coach.RequestsPerMinute)
	}
	if c.Coach.Enabled() {
		if c.Coach.BaseURL == "" {
			return errors.New("coach.base_url is required when coach.api_key is set")
		}
		if c.Coach.Model == "" {
			return errors.New("coach.model is required when coach.api_key is set")
		}
	}

	return nil
}

// DatabasePath returns the configured database path or the default location
func (c *Config) DatabasePath() (string, error) {
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data.db"), nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".healthscore"), nil
}
