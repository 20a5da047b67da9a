package main

import "time"

// API limits
const (
	SearchResultLimit = 10 // Maximum candidates fetched per provider search
)

// File permissions
const (
	StatsDirPerms  = 0o750 // Read/write/execute for owner, read/execute for group
	StatsFilePerms = 0o600 // Read/write for owner only
)

// Timeout and duration constants
const (
	JikanClientRetries   = 2               // Retry attempts for the Jikan client
	ProviderCacheMaxAge  = 168 * time.Hour // 7 days, matches Jikan's own cache guidance
	DefaultSearchRetries = 2               // Retry attempts for credentialed providers
)

// Backoff policy constants
const (
	BackoffInitialInterval     = 1 * time.Second  // Initial backoff interval
	BackoffMaxInterval         = 30 * time.Second // Maximum backoff interval
	BackoffMaxElapsedTime      = 2 * time.Minute  // Maximum elapsed time for backoff
	BackoffMultiplier          = 2.0              // Backoff multiplier
	BackoffRandomizationFactor = 0.1              // Randomization factor for jitter
)

// Provider endpoints
const (
	DefaultLastFMBaseURL = "https://ws.audioscrobbler.com/2.0/"
	DefaultTMDBBaseURL   = "https://api.themoviedb.org/3"
	TMDBImageBaseURL     = "https://image.tmdb.org/t/p/w500"
)

// valueNA is the sentinel stored when a provider omits a field.
const valueNA = "N/A"
