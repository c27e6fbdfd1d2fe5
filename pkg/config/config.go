// Package config loads server configuration with viper.
// Precedence: environment > config file > defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the server settings.
type Config struct {
	Addr           string
	DSN            string
	DefaultPerPage int
	MaxPerPage     int
	PrefsDir       string
	Dev            bool
}

// Load reads configuration from the optional config file and the HRGRID_*
// environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.dsn", "file:hrgrid.db?cache=shared")
	v.SetDefault("server.default_per_page", 25)
	v.SetDefault("server.max_per_page", 100)
	v.SetDefault("server.prefs_dir", "")
	v.SetDefault("server.dev", false)

	v.SetEnvPrefix("HRGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Addr:           v.GetString("server.addr"),
		DSN:            v.GetString("server.dsn"),
		DefaultPerPage: v.GetInt("server.default_per_page"),
		MaxPerPage:     v.GetInt("server.max_per_page"),
		PrefsDir:       v.GetString("server.prefs_dir"),
		Dev:            v.GetBool("server.dev"),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if cfg.DSN == "" {
		return fmt.Errorf("server.dsn must not be empty")
	}
	if cfg.DefaultPerPage <= 0 {
		return fmt.Errorf("server.default_per_page must be positive, got %d", cfg.DefaultPerPage)
	}
	if cfg.MaxPerPage < cfg.DefaultPerPage {
		return fmt.Errorf("server.max_per_page (%d) must be at least server.default_per_page (%d)",
			cfg.MaxPerPage, cfg.DefaultPerPage)
	}
	return nil
}
