package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// tmdbResult is one TMDB search match. Movies carry title/release_date,
// TV shows name/first_air_date; the unused pair decodes to zero values.
type tmdbResult struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Name         string `json:"name"`
	ReleaseDate  string `json:"release_date"`
	FirstAirDate string `json:"first_air_date"`
}

type tmdbSearchResponse struct {
	Page    int          `json:"page"`
	Results []tmdbResult `json:"results"`
}

// tmdbDetails is the detail payload for one movie or TV show.
type tmdbDetails struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Name         string   `json:"name"`
	VoteAverage  *float64 `json:"vote_average"`
	ReleaseDate  string   `json:"release_date"`
	FirstAirDate string   `json:"first_air_date"`
	PosterPath   string   `json:"poster_path"`
	Genres       []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

// TMDBClient provides access to the TMDB API, authenticated with a static
// bearer token. One client serves both the movie and tv path segments.
type TMDBClient struct {
	baseURL    string
	token      string
	httpClient HTTPClient
}

// NewTMDBClient creates a new TMDB API client.
func NewTMDBClient(baseURL, token string, timeout time.Duration) *TMDBClient {
	if baseURL == "" {
		baseURL = DefaultTMDBBaseURL
	}
	if token != "" && !strings.HasPrefix(token, "Bearer ") {
		token = "Bearer " + token
	}

	return &TMDBClient{
		baseURL: baseURL,
		token:   token,
		httpClient: NewRetryableClient(&http.Client{
			Timeout:   timeout,
			Transport: newLoggingRoundTripper(nil),
		}, DefaultSearchRetries),
	}
}

// Search queries /search/{movie|tv} for the given query.
func (c *TMDBClient) Search(ctx context.Context, mediaPath, query string) ([]tmdbResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("language", "en-US")
	params.Set("page", "1")
	apiURL := fmt.Sprintf("%s/search/%s?%s", c.baseURL, mediaPath, params.Encode())

	var payload tmdbSearchResponse
	if err := c.doRequest(ctx, apiURL, &payload); err != nil {
		return nil, fmt.Errorf("tmdb %s search %q: %w", mediaPath, query, err)
	}

	results := payload.Results
	if len(results) > SearchResultLimit {
		results = results[:SearchResultLimit]
	}
	return results, nil
}

// Details fetches /{movie|tv}/{id}.
func (c *TMDBClient) Details(ctx context.Context, mediaPath string, id int64) (*tmdbDetails, error) {
	apiURL := fmt.Sprintf("%s/%s/%d", c.baseURL, mediaPath, id)

	var payload tmdbDetails
	if err := c.doRequest(ctx, apiURL, &payload); err != nil {
		return nil, fmt.Errorf("tmdb %s details %d: %w", mediaPath, id, err)
	}
	return &payload, nil
}

func (c *TMDBClient) doRequest(ctx context.Context, apiURL string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best effort close

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// tmdbPosterURL joins the CDN base with a poster path, or returns "" when
// the provider has no poster.
func tmdbPosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return TMDBImageBaseURL + posterPath
}

// TMDBProvider serves movie or TV search and ingestion, selected by the
// media-type path segment.
type TMDBProvider struct {
	client    *TMDBClient
	mediaPath string // "movie" or "tv"
}

// NewMovieProvider creates the movie provider.
func NewMovieProvider(client *TMDBClient) *TMDBProvider {
	return &TMDBProvider{client: client, mediaPath: "movie"}
}

// NewTVProvider creates the TV show provider.
func NewTVProvider(client *TMDBClient) *TMDBProvider {
	return &TMDBProvider{client: client, mediaPath: "tv"}
}

// resultTitle applies the TV name-before-title fallback.
func (p *TMDBProvider) resultTitle(name, title string) string {
	if p.mediaPath == "tv" && name != "" {
		return name
	}
	if title != "" {
		return title
	}
	return name
}

// resultDate picks release_date for movies and first_air_date for TV.
func (p *TMDBProvider) resultDate(releaseDate, firstAirDate string) string {
	if p.mediaPath == "tv" {
		return firstAirDate
	}
	return releaseDate
}

func (p *TMDBProvider) Search(ctx context.Context, query string) ([]Candidate, error) {
	results, err := p.client.Search(ctx, p.mediaPath, query)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(results))
	for _, r := range results {
		title := p.resultTitle(r.Name, r.Title)
		candidates = append(candidates, Candidate{
			ID:    r.ID,
			Title: title,
			Label: formatTitleYearLabel(title, p.resultDate(r.ReleaseDate, r.FirstAirDate)),
		})
	}

	LogDebug(ctx, "[TMDB] %s search %q: %d results", p.mediaPath, query, len(candidates))
	return candidates, nil
}

func (p *TMDBProvider) Resolve(ctx context.Context, c Candidate, personalScore string) (Record, error) {
	d, err := p.client.Details(ctx, p.mediaPath, c.ID)
	if err != nil {
		return nil, err
	}

	var score interface{} = valueNA
	if d.VoteAverage != nil {
		score = *d.VoteAverage
	}

	genres := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		genres = append(genres, g.Name)
	}

	return Record{
		fieldTitle:         orNA(p.resultTitle(d.Name, d.Title)),
		fieldPersonalScore: personalScore,
		fieldScore:         score,
		fieldGenres:        genres,
		fieldReleaseDate:   orNA(p.resultDate(d.ReleaseDate, d.FirstAirDate)),
		fieldImageURL:      tmdbPosterURL(d.PosterPath),
	}, nil
}
