package main

// MediaType selects the store layout and provider for one kind of entry.
type MediaType string

const (
	MediaTypeAnime MediaType = "anime"
	MediaTypeManga MediaType = "manga"
	MediaTypeMusic MediaType = "music"
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// MediaTypes lists every supported media type in menu order.
var MediaTypes = []MediaType{
	MediaTypeAnime,
	MediaTypeManga,
	MediaTypeMusic,
	MediaTypeMovie,
	MediaTypeTV,
}

// Valid reports whether m is a supported media type.
func (m MediaType) Valid() bool {
	switch m {
	case MediaTypeAnime, MediaTypeManga, MediaTypeMusic, MediaTypeMovie, MediaTypeTV:
		return true
	}
	return false
}

// DisplayName returns the user-facing label for m.
func (m MediaType) DisplayName() string {
	switch m {
	case MediaTypeAnime:
		return "Anime"
	case MediaTypeManga:
		return "Manga"
	case MediaTypeMusic:
		return "Music"
	case MediaTypeMovie:
		return "Movie"
	case MediaTypeTV:
		return "TV Show"
	}
	return string(m)
}

// StoreLayout fixes the file name and field order of one media type's store.
// The on-disk document is column-oriented: one JSON array per field, all of
// equal length, with index i across all arrays describing the same entry.
type StoreLayout struct {
	File   string
	Fields []string
}

// Per-field names used by the layouts and the provider normalizers.
const (
	fieldNames            = "names"
	fieldScores           = "scores"
	fieldGenres           = "genres"
	fieldPersonalScores   = "personal_scores"
	fieldPersonalComments = "personal_comments"
	fieldImageURL         = "image_url"
	fieldName             = "name"
	fieldArtist           = "artist"
	fieldPersonalScore    = "personal_score"
	fieldPlaycount        = "playcount"
	fieldTitle            = "title"
	fieldScore            = "score"
	fieldReleaseDate      = "release_date"
)

// DefaultLayouts returns the store layout table. The result is built fresh on
// every call so callers can't mutate shared state.
func DefaultLayouts() map[MediaType]StoreLayout {
	return map[MediaType]StoreLayout{
		MediaTypeAnime: {
			File:   "anime_stats.txt",
			Fields: []string{fieldNames, fieldScores, fieldGenres, fieldPersonalScores, fieldPersonalComments, fieldImageURL},
		},
		MediaTypeManga: {
			File:   "manga_stats.txt",
			Fields: []string{fieldNames, fieldScores, fieldGenres, fieldPersonalScores, fieldPersonalComments, fieldImageURL},
		},
		MediaTypeMusic: {
			File:   "music_stats.txt",
			Fields: []string{fieldName, fieldArtist, fieldGenres, fieldImageURL, fieldPersonalScore, fieldPlaycount},
		},
		MediaTypeMovie: {
			File:   "movie_stats.txt",
			Fields: []string{fieldTitle, fieldPersonalScore, fieldScore, fieldGenres, fieldReleaseDate, fieldImageURL},
		},
		MediaTypeTV: {
			File:   "tv_stats.txt",
			Fields: []string{fieldTitle, fieldPersonalScore, fieldScore, fieldGenres, fieldReleaseDate, fieldImageURL},
		},
	}
}
