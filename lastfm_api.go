package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// lastFMImage is one entry of Last.fm's image variant list. The list is
// ordered small to large; entries may carry an empty URL.
type lastFMImage struct {
	URL  string `json:"#text"`
	Size string `json:"size"`
}

// lastFMTag is one genre-ish tag on an album.
type lastFMTag struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// LastFMAlbum holds the album fields read from both album.search matches and
// album.getinfo payloads.
type LastFMAlbum struct {
	Name      string        `json:"name"`
	Artist    string        `json:"artist"`
	Playcount string        `json:"playcount"`
	Image     []lastFMImage `json:"image"`
	Tags      struct {
		Tag []lastFMTag `json:"tag"`
	} `json:"tags"`
}

type lastFMSearchResponse struct {
	Results struct {
		AlbumMatches struct {
			Album []LastFMAlbum `json:"album"`
		} `json:"albummatches"`
	} `json:"results"`
}

type lastFMInfoResponse struct {
	Album *LastFMAlbum `json:"album"`
}

// LastFMClient is an HTTP client for the Last.fm (audioscrobbler) API.
// All calls are GETs against one endpoint, selected by a method parameter
// and authenticated with a static API key.
type LastFMClient struct {
	baseURL    string
	apiKey     string
	httpClient HTTPClient
}

// NewLastFMClient creates a new Last.fm API client.
func NewLastFMClient(baseURL, apiKey string, timeout time.Duration) *LastFMClient {
	if baseURL == "" {
		baseURL = DefaultLastFMBaseURL
	}

	return &LastFMClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: NewRetryableClient(&http.Client{
			Timeout:   timeout,
			Transport: newLoggingRoundTripper(nil),
		}, DefaultSearchRetries),
	}
}

// SearchAlbums searches Last.fm for albums matching the query.
func (c *LastFMClient) SearchAlbums(ctx context.Context, query string) ([]LastFMAlbum, error) {
	params := url.Values{}
	params.Set("method", "album.search")
	params.Set("album", query)
	params.Set("limit", fmt.Sprintf("%d", SearchResultLimit))

	var payload lastFMSearchResponse
	if err := c.doRequest(ctx, params, &payload); err != nil {
		return nil, fmt.Errorf("lastfm album search %q: %w", query, err)
	}

	return payload.Results.AlbumMatches.Album, nil
}

// GetAlbumInfo fetches full album details by exact artist and album name.
// Returns (nil, nil) when Last.fm has no such album.
func (c *LastFMClient) GetAlbumInfo(ctx context.Context, artist, album string) (*LastFMAlbum, error) {
	params := url.Values{}
	params.Set("method", "album.getinfo")
	params.Set("artist", artist)
	params.Set("album", album)

	var payload lastFMInfoResponse
	if err := c.doRequest(ctx, params, &payload); err != nil {
		return nil, fmt.Errorf("lastfm album info %q/%q: %w", artist, album, err)
	}

	return payload.Album, nil
}

// doRequest issues one GET with the shared api_key and format parameters.
func (c *LastFMClient) doRequest(ctx context.Context, params url.Values, v interface{}) error {
	params.Set("api_key", c.apiKey)
	params.Set("format", "json")

	apiURL := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

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

// pickAlbumImage selects the last image variant with a non-empty URL when
// scanning the list in reverse, i.e. the largest variant Last.fm actually
// has. Returns "" when none qualify.
func pickAlbumImage(images []lastFMImage) string {
	for i := len(images) - 1; i >= 0; i-- {
		if images[i].URL != "" {
			return images[i].URL
		}
	}
	return ""
}

// MusicProvider serves album search and ingestion through Last.fm.
type MusicProvider struct {
	client *LastFMClient
}

// NewMusicProvider creates a music provider on top of a Last.fm client.
func NewMusicProvider(client *LastFMClient) *MusicProvider {
	return &MusicProvider{client: client}
}

func (p *MusicProvider) Search(ctx context.Context, query string) ([]Candidate, error) {
	albums, err := p.client.SearchAlbums(ctx, query)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(albums))
	for _, a := range albums {
		candidates = append(candidates, Candidate{
			Title:  a.Name,
			Artist: a.Artist,
			Label:  fmt.Sprintf("%s by %s", orNA(a.Name), orNA(a.Artist)),
		})
	}

	LogDebug(ctx, "[LASTFM] album search %q: %d results", query, len(candidates))
	return candidates, nil
}

func (p *MusicProvider) Resolve(ctx context.Context, c Candidate, personalScore string) (Record, error) {
	album, err := p.client.GetAlbumInfo(ctx, c.Artist, c.Title)
	if err != nil {
		return nil, err
	}
	if album == nil {
		return nil, fmt.Errorf("lastfm has no album %q by %q", c.Title, c.Artist)
	}

	tags := make([]string, 0, len(album.Tags.Tag))
	for _, t := range album.Tags.Tag {
		tags = append(tags, t.Name)
	}

	playcount := album.Playcount
	if playcount == "" {
		playcount = "0"
	}

	return Record{
		fieldName:          orNA(album.Name),
		fieldArtist:        orNA(album.Artist),
		fieldGenres:        tags,
		fieldImageURL:      pickAlbumImage(album.Image),
		fieldPersonalScore: personalScore,
		fieldPlaycount:     playcount,
	}, nil
}
