package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// APIConfig holds connection settings for the WorkSphere backend.
type APIConfig struct {
	// BaseURL is the root URL of the backend API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// RefreshIntervalSec is how often (in seconds) the full
	// notification list is re-fetched.
	RefreshIntervalSec int `mapstructure:"refresh_interval_sec" yaml:"refresh_interval_sec"`

	// StatsIntervalSec is how often (in seconds) the lightweight
	// unread-count statistics are polled.
	StatsIntervalSec int `mapstructure:"stats_interval_sec" yaml:"stats_interval_sec"`
}

// NotificationPreferences holds per-channel delivery toggles.
type NotificationPreferences struct {
	Email   bool `mapstructure:"email" yaml:"email"`
	Browser bool `mapstructure:"browser" yaml:"browser"`
	Mobile  bool `mapstructure:"mobile" yaml:"mobile"`
	Desktop bool `mapstructure:"desktop" yaml:"desktop"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API           APIConfig               `mapstructure:"api" yaml:"api"`
	Notifications NotificationPreferences `mapstructure:"notifications" yaml:"notifications"`
	Display       DisplayConfig           `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/worksphere/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "worksphere", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			RefreshIntervalSec: 30,
			StatsIntervalSec:   20,
		},
		Notifications: NotificationPreferences{
			Email:   true,
			Browser: true,
			Mobile:  false,
			Desktop: true,
		},
		Display: DisplayConfig{
			Theme: "default",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("api.refresh_interval_sec", 30)
	v.SetDefault("api.stats_interval_sec", 20)
	v.SetDefault("notifications.email", true)
	v.SetDefault("notifications.browser", true)
	v.SetDefault("notifications.mobile", false)
	v.SetDefault("notifications.desktop", true)
	v.SetDefault("display.theme", "default")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.API.RefreshIntervalSec <= 0 {
		cfg.API.RefreshIntervalSec = 30
	}
	if cfg.API.StatsIntervalSec <= 0 {
		cfg.API.StatsIntervalSec = 20
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api", cfg.API)
	v.Set("notifications", cfg.Notifications)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
