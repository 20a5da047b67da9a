// Package config provides configuration loading and default values.
package config

import (
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

const defaultHTTPTimeout = 15 * time.Second

type TMDBConfig struct {
	APIToken string `yaml:"api_token"`
}

type LastFMConfig struct {
	APIKey string `yaml:"api_key"`
}

type Config struct {
	StatsDir    string       `yaml:"stats_dir"`
	CacheDir    string       `yaml:"cache_dir"`
	HTTPTimeout string       `yaml:"http_timeout"`
	TMDB        TMDBConfig   `yaml:"tmdb"`
	LastFM      LastFMConfig `yaml:"lastfm"`
}

// Load reads configuration from a YAML file and applies environment
// overrides. A missing file is not an error: the anime/manga providers work
// with no credentials at all, so the tool stays usable with pure defaults.
func Load(filename string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	case os.IsNotExist(err):
		// defaults only
	default:
		return Config{}, err
	}

	if token := os.Getenv("TMDB_API_TOKEN"); token != "" {
		cfg.TMDB.APIToken = token
	}

	if key := os.Getenv("LASTFM_API_KEY"); key != "" {
		cfg.LastFM.APIKey = key
	}

	if cfg.StatsDir == "" {
		cfg.StatsDir = os.ExpandEnv("$HOME/.local/share/mediashelf/statistics")
	}

	if cfg.CacheDir == "" {
		cfg.CacheDir = os.ExpandEnv("$HOME/.cache/mediashelf")
	}

	return cfg, nil
}

// GetHTTPTimeout returns the configured per-request timeout, or the default
// when unset or unparseable.
func (c Config) GetHTTPTimeout() time.Duration {
	if parsed, err := time.ParseDuration(c.HTTPTimeout); err == nil && parsed > 0 {
		return parsed
	}
	return defaultHTTPTimeout
}
