package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Validation and flow errors surfaced by the pipeline.
var (
	ErrEmptyQuery       = errors.New("query must not be empty")
	ErrEmptyScore       = errors.New("personal score must not be empty")
	ErrUnknownMediaType = errors.New("unknown media type")
	ErrNoResults        = errors.New("no results")
	ErrNoSearch         = errors.New("no search in progress")
	ErrBadSelection     = errors.New("selection out of range")
)

type pipelineState int

const (
	stateIdle pipelineState = iota
	stateSelecting
)

// Pipeline drives one entry-creation attempt: validate the inputs, search
// the matching provider, hold the candidate list while the user picks one,
// then resolve, normalize, and persist the choice.
//
// No state survives across attempts; every Start begins from idle.
type Pipeline struct {
	providers map[MediaType]Provider
	store     *Store
	done      func(ctx context.Context)

	state      pipelineState
	mediaType  MediaType
	score      string
	candidates []Candidate
}

// NewPipeline creates a pipeline over the given providers and store.
// done, if non-nil, runs after every successful append; the surrounding
// application uses it to return to its menu or refresh a view.
func NewPipeline(providers map[MediaType]Provider, store *Store, done func(ctx context.Context)) *Pipeline {
	return &Pipeline{
		providers: providers,
		store:     store,
		done:      done,
	}
}

// SetDone installs the post-persist continuation.
func (p *Pipeline) SetDone(done func(ctx context.Context)) {
	p.done = done
}

// Start validates the inputs and runs the provider search. On success the
// pipeline holds the returned candidates until Select or the next Start.
//
// A provider failure is indistinguishable from a genuine zero-match at this
// boundary: both return ErrNoResults. The underlying cause is logged.
func (p *Pipeline) Start(ctx context.Context, query string, mediaType MediaType, personalScore string) ([]Candidate, error) {
	p.reset()

	query = strings.TrimSpace(query)
	personalScore = strings.TrimSpace(personalScore)

	if query == "" {
		return nil, ErrEmptyQuery
	}
	if personalScore == "" {
		return nil, ErrEmptyScore
	}
	provider, ok := p.providers[mediaType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMediaType, mediaType)
	}

	LogStage(ctx, "Searching %s for %q...", mediaType.DisplayName(), query)

	candidates, err := provider.Search(ctx, query)
	if err != nil {
		LogWarn(ctx, "Search failed for %q: %v", query, err)
		return nil, fmt.Errorf("%w for %q", ErrNoResults, query)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoResults, query)
	}

	p.state = stateSelecting
	p.mediaType = mediaType
	p.score = personalScore
	p.candidates = candidates
	return candidates, nil
}

// Select resolves the candidate at index, persists the normalized record,
// and returns it. Any failure discards the attempt; the store is only
// touched after a successful resolve.
func (p *Pipeline) Select(ctx context.Context, index int) (Record, error) {
	if p.state != stateSelecting {
		return nil, ErrNoSearch
	}
	defer p.reset()

	if index < 0 || index >= len(p.candidates) {
		return nil, fmt.Errorf("%w: %d", ErrBadSelection, index)
	}
	chosen := p.candidates[index]

	provider := p.providers[p.mediaType]
	record, err := provider.Resolve(ctx, chosen, p.score)
	if err != nil {
		LogWarn(ctx, "Resolve failed for %q: %v", chosen.Title, err)
		return nil, fmt.Errorf("could not retrieve details for %q: %w", chosen.Title, err)
	}

	if err := p.store.Append(ctx, p.mediaType, record); err != nil {
		return nil, fmt.Errorf("store entry: %w", err)
	}

	LogInfoSuccess(ctx, "%s added successfully!", p.mediaType.DisplayName())
	if p.done != nil {
		p.done(ctx)
	}
	return record, nil
}

// reset returns the pipeline to idle, dropping any retained candidates.
func (p *Pipeline) reset() {
	p.state = stateIdle
	p.mediaType = ""
	p.score = ""
	p.candidates = nil
}
