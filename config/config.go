package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/reelkeeper/media"
)

// EnvPrefix is prepended to environment overrides, e.g. REELKEEPER_API_BASE_URL
const EnvPrefix = "REELKEEPER"

// Load loads the configuration from file. A missing config file is not an
// error; defaults and environment overrides apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".reelkeeper"))
		}

		// Check /etc
		v.AddConfigPath("/etc/reelkeeper/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.base_url", "http://localhost:5000/api")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.user_agent", "reelkeeper")

	v.SetDefault("session.token_file", "")

	// Media defaults
	v.SetDefault("media.base_url", media.DefaultBaseURL)
	v.SetDefault("media.poster_size", string(media.SizeLarge))

	// Catalog defaults
	v.SetDefault("catalog.home_limit", 8)
	v.SetDefault("catalog.similar_limit", 6)

	v.SetDefault("filter.presets", map[string]string{})

	// Radarr defaults
	v.SetDefault("radarr.enabled", false)
	v.SetDefault("radarr.url", "http://localhost:7878")
	v.SetDefault("radarr.api_key", "")
	v.SetDefault("radarr.quality_profile_id", 0)
	v.SetDefault("radarr.root_folder", "")
	v.SetDefault("radarr.search_on_add", false)

	// Safety defaults
	v.SetDefault("safety.dry_run", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if u, err := url.ParseRequestURI(cfg.API.BaseURL); err != nil || u.Host == "" {
		return fmt.Errorf("api.base_url is not a valid URL: %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}

	if _, err := media.ParseSize(cfg.Media.PosterSize); err != nil {
		return fmt.Errorf("invalid media.poster_size: %w", err)
	}

	if cfg.Catalog.HomeLimit <= 0 {
		return fmt.Errorf("catalog.home_limit must be positive")
	}
	if cfg.Catalog.SimilarLimit < 0 {
		return fmt.Errorf("catalog.similar_limit must not be negative")
	}

	for name, expression := range cfg.Filter.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter preset '%s' has an empty expression", name)
		}
	}

	if cfg.Radarr.Enabled {
		if cfg.Radarr.URL == "" {
			return fmt.Errorf("radarr.url is required when radarr is enabled")
		}
		if cfg.Radarr.APIKey == "" || cfg.Radarr.APIKey == "your-api-key-here" {
			return fmt.Errorf("radarr.api_key must be set to a valid API key")
		}
		if cfg.Radarr.QualityProfileID <= 0 {
			return fmt.Errorf("radarr.quality_profile_id is required when radarr is enabled")
		}
		if cfg.Radarr.RootFolder == "" {
			return fmt.Errorf("radarr.root_folder is required when radarr is enabled")
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
