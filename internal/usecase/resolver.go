package usecase

import (
	"context"
	"fmt"

	"contextwatch/internal/domain"
	"contextwatch/internal/ports"
)

// Resolver turns a free-text query into the entity ids the update loop
// polls for.
type Resolver struct {
	directory   ports.EntityDirectory
	transcript  ports.Transcript
	maxEntities int
}

// ResolverDeps wires the entity directory and the transcript.
type ResolverDeps struct {
	Directory   ports.EntityDirectory
	Transcript  ports.Transcript
	MaxEntities int
}

// NewResolver constructs the resolver; MaxEntities defaults to 20.
func NewResolver(deps ResolverDeps) *Resolver {
	maxEntities := deps.MaxEntities
	if maxEntities <= 0 {
		maxEntities = 20
	}

	return &Resolver{
		directory:   deps.Directory,
		transcript:  deps.Transcript,
		maxEntities: maxEntities,
	}
}

// Lookup fetches the matches for a query, capped at maxEntities even when
// the server returns more.
func (r *Resolver) Lookup(ctx context.Context, query string, exact bool) ([]domain.EntityMatch, error) {
	matches, err := r.directory.SearchEntities(ctx, query, exact, r.maxEntities)
	if err != nil {
		return nil, fmt.Errorf("search entities: %w", err)
	}

	if len(matches) > r.maxEntities {
		matches = matches[:r.maxEntities]
	}

	return matches, nil
}

// Resolve looks the query up, prints the entity summary, and returns the
// ids in server order.
func (r *Resolver) Resolve(ctx context.Context, query string, exact bool) ([]string, error) {
	matches, err := r.Lookup(ctx, query, exact)
	if err != nil {
		return nil, err
	}

	if r.transcript != nil {
		r.transcript.EntitySummary(query, matches)
	}

	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
	}

	return ids, nil
}
