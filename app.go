package main

import (
	"context"
	"fmt"
	"path/filepath"
)

// App wires the configured clients, providers, store, and pipeline together.
type App struct {
	config Config

	store      *Store
	providers  map[MediaType]Provider
	pipeline   *Pipeline
	jikanCache *FileCache
}

// NewApp creates a new App instance with configured clients and providers.
func NewApp(ctx context.Context, config Config) (*App, error) {
	LogStage(ctx, "Initializing...")

	timeout := config.GetHTTPTimeout()

	var jikanCache *FileCache
	if config.CacheDir != "" {
		jikanCache = NewFileCache(ctx, filepath.Join(config.CacheDir, "jikan-cache.json"))
		LogDebug(ctx, "Jikan cache loaded (%d entries)", jikanCache.Size())
	}

	jikanClient := NewJikanClient(timeout, jikanCache)
	LogDebug(ctx, "Jikan client created")

	if config.LastFM.APIKey == "" {
		LogWarn(ctx, "Last.fm API key not configured; music lookups will fail")
	}
	lastfmClient := NewLastFMClient("", config.LastFM.APIKey, timeout)

	if config.TMDB.APIToken == "" {
		LogWarn(ctx, "TMDB API token not configured; movie and TV lookups will fail")
	}
	tmdbClient := NewTMDBClient("", config.TMDB.APIToken, timeout)

	providers := map[MediaType]Provider{
		MediaTypeAnime: NewAnimeProvider(jikanClient),
		MediaTypeManga: NewMangaProvider(jikanClient),
		MediaTypeMusic: NewMusicProvider(lastfmClient),
		MediaTypeMovie: NewMovieProvider(tmdbClient),
		MediaTypeTV:    NewTVProvider(tmdbClient),
	}

	store := NewStore(config.StatsDir, DefaultLayouts())

	app := &App{
		config:     config,
		store:      store,
		providers:  providers,
		jikanCache: jikanCache,
	}
	app.pipeline = NewPipeline(providers, store, nil)

	return app, nil
}

// AddEntry runs one full ingestion attempt. pick receives the candidate list
// and returns the chosen index; it is the UI boundary.
func (a *App) AddEntry(
	ctx context.Context,
	query string,
	mediaType MediaType,
	personalScore string,
	pick func(candidates []Candidate) (int, error),
) (Record, error) {
	candidates, err := a.pipeline.Start(ctx, query, mediaType, personalScore)
	if err != nil {
		return nil, err
	}

	index, err := pick(candidates)
	if err != nil {
		return nil, err
	}

	return a.pipeline.Select(ctx, index)
}

// Entries returns the stored entries for one media type.
func (a *App) Entries(ctx context.Context, mediaType MediaType) []Record {
	return a.store.Entries(ctx, mediaType)
}

// Close flushes the provider cache to disk.
func (a *App) Close(ctx context.Context) error {
	if a.jikanCache == nil {
		return nil
	}
	if err := a.jikanCache.Save(ctx); err != nil {
		return fmt.Errorf("save jikan cache: %w", err)
	}
	return nil
}
