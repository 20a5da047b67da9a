package main

//go:generate mockgen -destination mock_provider_test.go -package main -source=provider.go

import (
	"context"
	"fmt"
)

// Candidate is one search result offered to the user for disambiguation.
// It lives only for the duration of one search-then-select interaction.
type Candidate struct {
	ID     int64  // provider-assigned numeric id (Jikan, TMDB)
	Title  string
	Artist string // music only; detail lookup key together with Title
	Label  string // display line, formatted by the provider
}

// Provider abstracts one external metadata API for one media type.
//
// Search returns the candidate list for a query. A transport or decode
// failure surfaces as an error so callers can tell it apart from a genuine
// zero-match, even though both render as "no results" to the user.
//
// Resolve fetches full details for a chosen candidate and normalizes them
// into the media type's record shape; the raw provider payload never crosses
// this boundary.
type Provider interface {
	Search(ctx context.Context, query string) ([]Candidate, error)
	Resolve(ctx context.Context, c Candidate, personalScore string) (Record, error)
}

// orNA substitutes the sentinel for an absent string value.
func orNA(s string) string {
	if s == "" {
		return valueNA
	}
	return s
}

// yearPrefix extracts the year from a date string by substring, matching the
// stored format ("1998-07-15" -> "1998"). Shorter or absent dates map to the
// sentinel.
func yearPrefix(date string) string {
	if len(date) < 4 {
		return valueNA
	}
	return date[:4]
}

// formatTitleYearLabel renders the movie/TV candidate line: "Title (1999)".
func formatTitleYearLabel(title, date string) string {
	return fmt.Sprintf("%s (%s)", orNA(title), yearPrefix(date))
}
