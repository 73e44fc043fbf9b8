package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	Media   MediaConfig   `mapstructure:"media"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Radarr  RadarrConfig  `mapstructure:"radarr"`
	Safety  SafetyConfig  `mapstructure:"safety"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds the movie backend connection details
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// SessionConfig controls where the bearer token is persisted.
// An empty TokenFile means ~/.reelkeeper/session.yaml.
type SessionConfig struct {
	TokenFile string `mapstructure:"token_file"`
}

// MediaConfig controls poster URL generation
type MediaConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	PosterSize string `mapstructure:"poster_size"`
}

// CatalogConfig contains catalog display limits
type CatalogConfig struct {
	HomeLimit    int `mapstructure:"home_limit"`
	SimilarLimit int `mapstructure:"similar_limit"`
}

// FilterConfig contains named filter expressions
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// RadarrConfig holds Radarr connection and add settings for watchlist export
type RadarrConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	URL              string `mapstructure:"url"`
	APIKey           string `mapstructure:"api_key"`
	QualityProfileID int64  `mapstructure:"quality_profile_id"`
	RootFolder       string `mapstructure:"root_folder"`
	SearchOnAdd      bool   `mapstructure:"search_on_add"`
}

// SafetyConfig contains safety-related settings
type SafetyConfig struct {
	DryRun bool `mapstructure:"dry_run"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
