package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	jikan "github.com/Sethispr/jikanGo"
)

// NewJikanClient builds the shared Jikan API client with retries and an
// optional persistent response cache. Jikan needs no credentials.
func NewJikanClient(timeout time.Duration, cache *FileCache) *jikan.Client {
	opts := []jikan.Option{
		jikan.WithHTTPClient(&http.Client{
			Timeout:   timeout,
			Transport: newLoggingRoundTripper(nil),
		}),
		jikan.WithRetries(JikanClientRetries),
	}
	if cache != nil {
		opts = append(opts, jikan.WithCache(cache, ProviderCacheMaxAge))
	}
	return jikan.New(opts...)
}

// animeSearchOptions mirrors the option struct jikanGo's anime search takes.
type animeSearchOptions = struct {
	Type    string
	Status  string
	Rating  string
	Genres  []int
	OrderBy string
	Sort    string
	Page    int
	Limit   int
}

// genreNames maps Jikan genre resources to their names.
func genreNames(genres []jikan.Resource) []string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return names
}

// jikanLabel renders the anime/manga candidate line: "Title (TV, 1998)".
func jikanLabel(title, kind, year string) string {
	return fmt.Sprintf("%s (%s, %s)", orNA(title), orNA(kind), orNA(year))
}

// AnimeProvider serves anime search and ingestion through the Jikan API.
type AnimeProvider struct {
	client *jikan.Client
}

// NewAnimeProvider creates an anime provider on top of a Jikan client.
func NewAnimeProvider(client *jikan.Client) *AnimeProvider {
	return &AnimeProvider{client: client}
}

func (p *AnimeProvider) Search(ctx context.Context, query string) ([]Candidate, error) {
	results, _, err := p.client.Search.Anime(ctx, query, animeSearchOptions{Limit: SearchResultLimit})
	if err != nil {
		return nil, fmt.Errorf("jikan anime search %q: %w", query, err)
	}

	candidates := make([]Candidate, 0, len(results))
	for _, a := range results {
		year := ""
		if a.Year > 0 {
			year = strconv.Itoa(a.Year)
		}
		candidates = append(candidates, Candidate{
			ID:    int64(a.MalID),
			Title: a.Title,
			Label: jikanLabel(a.Title, a.Type, year),
		})
	}

	LogDebug(ctx, "[JIKAN] anime search %q: %d results", query, len(candidates))
	return candidates, nil
}

func (p *AnimeProvider) Resolve(ctx context.Context, c Candidate, personalScore string) (Record, error) {
	a, err := p.client.Anime.ByID(ctx, jikan.ID(c.ID))
	if err != nil {
		return nil, fmt.Errorf("jikan anime %d: %w", c.ID, err)
	}

	var score interface{} = valueNA
	if a.Score > 0 {
		score = a.Score
	}
	var comment interface{} = valueNA
	if a.Year > 0 {
		comment = a.Year
	}

	return Record{
		fieldNames:            orNA(a.Title),
		fieldScores:           score,
		fieldGenres:           genreNames(a.Genres),
		fieldPersonalScores:   personalScore,
		fieldPersonalComments: comment,
		fieldImageURL:         a.Images.JPG.Medium,
	}, nil
}

// MangaProvider serves manga search and ingestion through the Jikan API.
type MangaProvider struct {
	client *jikan.Client
}

// NewMangaProvider creates a manga provider on top of a Jikan client.
func NewMangaProvider(client *jikan.Client) *MangaProvider {
	return &MangaProvider{client: client}
}

func (p *MangaProvider) Search(ctx context.Context, query string) ([]Candidate, error) {
	results, _, err := p.client.Manga.Search(ctx, jikan.MangaSearchOptions{Query: query})
	if err != nil {
		return nil, fmt.Errorf("jikan manga search %q: %w", query, err)
	}

	// The manga search endpoint binding has no limit parameter; cap here.
	if len(results) > SearchResultLimit {
		results = results[:SearchResultLimit]
	}

	candidates := make([]Candidate, 0, len(results))
	for _, m := range results {
		year := ""
		if len(m.Published.From) >= 4 {
			year = m.Published.From[:4]
		}
		candidates = append(candidates, Candidate{
			ID:    int64(m.MalID),
			Title: m.Title,
			Label: jikanLabel(m.Title, m.Type, year),
		})
	}

	LogDebug(ctx, "[JIKAN] manga search %q: %d results", query, len(candidates))
	return candidates, nil
}

func (p *MangaProvider) Resolve(ctx context.Context, c Candidate, personalScore string) (Record, error) {
	m, err := p.client.Manga.ByID(ctx, jikan.ID(c.ID))
	if err != nil {
		return nil, fmt.Errorf("jikan manga %d: %w", c.ID, err)
	}

	var score interface{} = valueNA
	if m.Score != nil {
		score = *m.Score
	}

	return Record{
		fieldNames:            orNA(m.Title),
		fieldScores:           score,
		fieldGenres:           genreNames(m.Genres),
		fieldPersonalScores:   personalScore,
		fieldPersonalComments: yearPrefix(m.Published.From),
		fieldImageURL:         m.Images.JPG.Medium,
	}, nil
}
