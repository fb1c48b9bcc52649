package config

import (
	"errors"
	"fmt"
	"os"
	"steamsize/internal/services"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds process-wide settings. It is read once at startup.
type Config struct {
	Listen         string        `mapstructure:"listen"`
	SteamAPIKey    string        `mapstructure:"steam_api_key"`
	SteamAPIBase   string        `mapstructure:"steam_api_base"`
	HTTPTimeout    time.Duration `mapstructure:"http_timeout"`
	CatalogPaths   []string      `mapstructure:"catalog_paths"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	TemplatesGlob  string        `mapstructure:"templates_glob"`
	StaticDir      string        `mapstructure:"static_dir"`
	RateLimit      RateLimit     `mapstructure:"rate_limit"`
}

// RateLimit configures the per-IP limiter in front of /api
type RateLimit struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// Load reads the optional YAML file at path (or ./config.yaml when path is
// empty), applies STEAMSIZE_* environment overrides and requires
// STEAM_API_KEY.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("listen", "0.0.0.0:8080")
	v.SetDefault("steam_api_base", services.DefaultSteamAPIBase)
	v.SetDefault("http_timeout", time.Duration(0))
	v.SetDefault("catalog_paths", services.DefaultCatalogPaths)
	v.SetDefault("allowed_origins", []string{})
	v.SetDefault("templates_glob", "./web/templates/*.html")
	v.SetDefault("static_dir", "./web/static")
	v.SetDefault("rate_limit.rps", 10.0)
	v.SetDefault("rate_limit.burst", 20)

	v.SetEnvPrefix("STEAMSIZE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("steam_api_key", "STEAM_API_KEY"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", path, err)
		}
	} else if _, err := os.Stat("config.yaml"); err == nil {
		v.SetConfigFile("config.yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("cannot read config.yaml: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	c.SteamAPIKey = strings.TrimSpace(c.SteamAPIKey)
	if c.SteamAPIKey == "" {
		return errors.New("STEAM_API_KEY environment variable must be set")
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout must not be negative, got %s", c.HTTPTimeout)
	}
	if c.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate_limit.rps must be positive, got %v", c.RateLimit.RPS)
	}
	if c.RateLimit.Burst < 1 {
		c.RateLimit.Burst = 1
	}
	if len(c.CatalogPaths) == 0 {
		c.CatalogPaths = services.DefaultCatalogPaths
	}
	return nil
}
