package main

import (
	cfg "mediashelf/internal/config"
)

// Re-export config types from internal/config so existing callers in package main
// can continue to use the same type names.
type Config = cfg.Config
type TMDBConfig = cfg.TMDBConfig
type LastFMConfig = cfg.LastFMConfig

func loadConfigFromFile(filename string) (Config, error) {
	return cfg.Load(filename)
}
