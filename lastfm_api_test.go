package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func lastFMImageList(urls ...string) []map[string]interface{} {
	sizes := []string{"small", "medium", "large", "extralarge", "mega", ""}
	images := make([]map[string]interface{}, 0, len(urls))
	for i, u := range urls {
		size := ""
		if i < len(sizes) {
			size = sizes[i]
		}
		images = append(images, map[string]interface{}{"#text": u, "size": size})
	}
	return images
}

func lastFMAlbumPayload(name, artist, playcount string, tags []string, images []map[string]interface{}) map[string]interface{} {
	tagList := make([]map[string]interface{}, 0, len(tags))
	for _, tag := range tags {
		tagList = append(tagList, map[string]interface{}{"name": tag, "url": "https://www.last.fm/tag/" + tag})
	}
	return map[string]interface{}{
		"name":      name,
		"artist":    artist,
		"playcount": playcount,
		"image":     images,
		"tags":      map[string]interface{}{"tag": tagList},
	}
}

func TestLastFMClient_SearchAlbums(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "album.search", q.Get("method"))
		assert.Equal(t, "ok computer", q.Get("album"))
		assert.Equal(t, "10", q.Get("limit"))
		assert.Equal(t, "test-key", q.Get("api_key"))
		assert.Equal(t, "json", q.Get("format"))

		writeJSON(t, w, map[string]interface{}{
			"results": map[string]interface{}{
				"albummatches": map[string]interface{}{
					"album": []map[string]interface{}{
						lastFMAlbumPayload("OK Computer", "Radiohead", "", nil, nil),
						lastFMAlbumPayload("OK Computer OKNOTOK 1997 2017", "Radiohead", "", nil, nil),
					},
				},
			},
		})
	}))
	defer server.Close()

	client := NewLastFMClient(server.URL, "test-key", 5*time.Second)
	albums, err := client.SearchAlbums(t.Context(), "ok computer")

	assert.NoError(t, err)
	assert.Len(t, albums, 2)
	assert.Equal(t, "OK Computer", albums[0].Name)
	assert.Equal(t, "Radiohead", albums[0].Artist)
}

func TestLastFMClient_GetAlbumInfo(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "album.getinfo", q.Get("method"))
		assert.Equal(t, "Radiohead", q.Get("artist"))
		assert.Equal(t, "OK Computer", q.Get("album"))

		writeJSON(t, w, map[string]interface{}{
			"album": lastFMAlbumPayload("OK Computer", "Radiohead", "1234567",
				[]string{"rock", "alternative"},
				lastFMImageList("https://img.example/s.png", "https://img.example/l.png")),
		})
	}))
	defer server.Close()

	client := NewLastFMClient(server.URL, "test-key", 5*time.Second)
	album, err := client.GetAlbumInfo(t.Context(), "Radiohead", "OK Computer")

	assert.NoError(t, err)
	assert.NotNil(t, album)
	assert.Equal(t, "1234567", album.Playcount)
	assert.Len(t, album.Tags.Tag, 2)
}

func TestLastFMClient_GetAlbumInfoNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Last.fm answers unknown albums with an error payload, not a 404.
		writeJSON(t, w, map[string]interface{}{"error": 6, "message": "Album not found"})
	}))
	defer server.Close()

	client := NewLastFMClient(server.URL, "test-key", 5*time.Second)
	album, err := client.GetAlbumInfo(t.Context(), "Nobody", "Nothing")

	assert.NoError(t, err)
	assert.Nil(t, album)
}

func TestLastFMClient_ServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewLastFMClient(server.URL, "bad-key", 5*time.Second)
	_, err := client.SearchAlbums(t.Context(), "anything")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestPickAlbumImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		images []lastFMImage
		want   string
	}{
		{
			name: "last entry wins",
			images: []lastFMImage{
				{URL: "small.png"},
				{URL: "large.png"},
			},
			want: "large.png",
		},
		{
			name: "skips empty trailing entries",
			images: []lastFMImage{
				{URL: "small.png"},
				{URL: "large.png"},
				{URL: ""},
			},
			want: "large.png",
		},
		{
			name: "all empty",
			images: []lastFMImage{
				{URL: ""},
				{URL: ""},
			},
			want: "",
		},
		{
			name:   "no images",
			images: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pickAlbumImage(tt.images))
		})
	}
}

func TestMusicProvider_Search(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]interface{}{
			"results": map[string]interface{}{
				"albummatches": map[string]interface{}{
					"album": []map[string]interface{}{
						lastFMAlbumPayload("In Rainbows", "Radiohead", "", nil, nil),
					},
				},
			},
		})
	}))
	defer server.Close()

	provider := NewMusicProvider(NewLastFMClient(server.URL, "test-key", 5*time.Second))
	candidates, err := provider.Search(t.Context(), "in rainbows")

	assert.NoError(t, err)
	assert.Len(t, candidates, 1)
	assert.Equal(t, "In Rainbows", candidates[0].Title)
	assert.Equal(t, "Radiohead", candidates[0].Artist)
	assert.Equal(t, "In Rainbows by Radiohead", candidates[0].Label)
}

func TestMusicProvider_Resolve(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]interface{}{
			"album": lastFMAlbumPayload("In Rainbows", "Radiohead", "7654321",
				[]string{"rock"},
				lastFMImageList("https://img.example/s.png", "", "https://img.example/xl.png")),
		})
	}))
	defer server.Close()

	provider := NewMusicProvider(NewLastFMClient(server.URL, "test-key", 5*time.Second))
	record, err := provider.Resolve(t.Context(), Candidate{Title: "In Rainbows", Artist: "Radiohead"}, "9")

	assert.NoError(t, err)
	assert.Equal(t, "In Rainbows", record[fieldName])
	assert.Equal(t, "Radiohead", record[fieldArtist])
	assert.Equal(t, []string{"rock"}, record[fieldGenres])
	assert.Equal(t, "https://img.example/xl.png", record[fieldImageURL])
	assert.Equal(t, "9", record[fieldPersonalScore])
	assert.Equal(t, "7654321", record[fieldPlaycount])
}

func TestMusicProvider_ResolveDefaultsPlaycount(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]interface{}{
			"album": lastFMAlbumPayload("Demo Tape", "Unknown Act", "", nil, nil),
		})
	}))
	defer server.Close()

	provider := NewMusicProvider(NewLastFMClient(server.URL, "test-key", 5*time.Second))
	record, err := provider.Resolve(t.Context(), Candidate{Title: "Demo Tape", Artist: "Unknown Act"}, "6")

	assert.NoError(t, err)
	assert.Equal(t, "0", record[fieldPlaycount])
	assert.Equal(t, "", record[fieldImageURL])
}

func TestMusicProvider_ResolveMissingAlbum(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]interface{}{"error": 6, "message": "Album not found"})
	}))
	defer server.Close()

	provider := NewMusicProvider(NewLastFMClient(server.URL, "test-key", 5*time.Second))
	_, err := provider.Resolve(t.Context(), Candidate{Title: "Ghost", Artist: "Nobody"}, "1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no album")
}
