// Package query orchestrates the weather use cases: it resolves free-text
// location names, selects the variable sets each use case needs, and
// normalizes upstream responses into result envelopes.
package query

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/weather-mcp-service/internal/domain"
)

// resolveCandidates is how many geocoding candidates a resolution fetches.
// Only one is returned to the caller; the surplus feeds the ranker.
const resolveCandidates = 10

// CandidateRanker picks the winning location from a non-empty candidate
// list.
type CandidateRanker interface {
	Pick(candidates []domain.Location) domain.Location
}

// FirstCandidate trusts the geocoding API's own relevance ordering.
type FirstCandidate struct{}

// Pick returns the first candidate.
func (FirstCandidate) Pick(candidates []domain.Location) domain.Location {
	return candidates[0]
}

// Resolver turns a free-text location name into a single canonical Location.
type Resolver struct {
	searcher domain.LocationSearcher
	ranker   CandidateRanker
	logger   *slog.Logger
}

// NewResolver creates a resolver. A nil ranker selects FirstCandidate.
func NewResolver(searcher domain.LocationSearcher, ranker CandidateRanker, logger *slog.Logger) *Resolver {
	if ranker == nil {
		ranker = FirstCandidate{}
	}
	return &Resolver{searcher: searcher, ranker: ranker, logger: logger}
}

// Resolve maps name to one Location, or ErrNotFound when the geocoding API
// returns no candidates.
func (r *Resolver) Resolve(ctx context.Context, name string) (domain.Location, error) {
	candidates, err := r.searcher.Search(ctx, name, resolveCandidates)
	if err != nil {
		return domain.Location{}, fmt.Errorf("resolve %q: %w", name, err)
	}
	if len(candidates) == 0 {
		return domain.Location{}, fmt.Errorf("no locations found matching %q: %w", name, domain.ErrNotFound)
	}

	loc := r.ranker.Pick(candidates)
	r.logger.Debug("location resolved", "query", name, "name", loc.Name, "country", loc.Country,
		"candidates", len(candidates))
	return loc, nil
}
