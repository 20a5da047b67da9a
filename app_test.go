package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestApp(t *testing.T, providers map[MediaType]Provider) *App {
	t.Helper()
	store := NewStore(t.TempDir(), DefaultLayouts())
	return &App{
		store:     store,
		providers: providers,
		pipeline:  NewPipeline(providers, store, nil),
	}
}

// Full anime ingestion against a fake Jikan server: search, select the
// first candidate, and verify the persisted columns.
func TestApp_AddEntryAnime(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v4/anime":
			writeJSON(t, w, jikanListResponse(
				jikanAnimeEntry(1, "Cowboy Bebop", "TV", 1998, 8.75),
				jikanAnimeEntry(5, "Cowboy Bebop: Tengoku no Tobira", "Movie", 2001, 8.38),
			))
		case "/v4/anime/1":
			writeJSON(t, w, map[string]interface{}{
				"data": jikanAnimeEntry(1, "Cowboy Bebop", "TV", 1998, 8.75),
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	provider := NewAnimeProvider(newTestJikanClient(t, server.URL))
	app := newTestApp(t, map[MediaType]Provider{MediaTypeAnime: provider})
	ctx := t.Context()

	var seen []Candidate
	record, err := app.AddEntry(ctx, "Cowboy Bebop", MediaTypeAnime, "10", func(candidates []Candidate) (int, error) {
		seen = candidates
		return 0, nil
	})

	assert.NoError(t, err)
	assert.Len(t, seen, 2)
	assert.Equal(t, "Cowboy Bebop (TV, 1998)", seen[0].Label)
	assert.Equal(t, "Cowboy Bebop", record[fieldNames])

	entries := app.Entries(ctx, MediaTypeAnime)
	assert.Len(t, entries, 1)
	assert.Equal(t, "Cowboy Bebop", entries[0][fieldNames])
	assert.Equal(t, "10", entries[0][fieldPersonalScores])

	schema := app.store.Load(ctx, MediaTypeAnime)
	for _, field := range DefaultLayouts()[MediaTypeAnime].Fields {
		assert.Len(t, schema.Column(field), 1, "column %s should stay aligned", field)
	}
}

func TestApp_AddEntryCancelled(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	provider := NewMockProvider(ctrl)
	provider.EXPECT().Search(gomock.Any(), "akira").Return([]Candidate{
		{ID: 47, Title: "Akira", Label: "Akira (Movie, 1988)"},
	}, nil)

	app := newTestApp(t, map[MediaType]Provider{MediaTypeAnime: provider})

	_, err := app.AddEntry(t.Context(), "akira", MediaTypeAnime, "9", func(candidates []Candidate) (int, error) {
		return 0, ErrCancelled
	})

	assert.ErrorIs(t, err, ErrCancelled)
	assert.Empty(t, app.Entries(t.Context(), MediaTypeAnime))
}

func TestApp_AddEntryNoResults(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	provider := NewMockProvider(ctrl)
	provider.EXPECT().Search(gomock.Any(), "nothing").Return(nil, errors.New("down"))

	app := newTestApp(t, map[MediaType]Provider{MediaTypeAnime: provider})

	_, err := app.AddEntry(t.Context(), "nothing", MediaTypeAnime, "5", func(candidates []Candidate) (int, error) {
		t.Fatal("pick should not be called without candidates")
		return 0, nil
	})

	assert.ErrorIs(t, err, ErrNoResults)
}

func TestApp_CloseWithoutCache(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	assert.NoError(t, app.Close(t.Context()))
}
