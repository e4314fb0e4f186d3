package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contextwatch/internal/domain"
)

type stubDirectory struct {
	matches []domain.EntityMatch
	err     error

	gotQuery string
	gotExact bool
	gotLimit int
}

func (d *stubDirectory) SearchEntities(_ context.Context, query string, exact bool, limit int) ([]domain.EntityMatch, error) {
	d.gotQuery = query
	d.gotExact = exact
	d.gotLimit = limit

	if d.err != nil {
		return nil, d.err
	}
	return d.matches, nil
}

func entityMatches(n int) []domain.EntityMatch {
	matches := make([]domain.EntityMatch, 0, n)
	for i := 1; i <= n; i++ {
		matches = append(matches, domain.EntityMatch{
			ID:   fmt.Sprintf("e%d", i),
			Name: fmt.Sprintf("entity %d", i),
			Type: "COMPANY",
		})
	}
	return matches
}

func TestResolverReturnsIDsInServerOrder(t *testing.T) {
	t.Parallel()

	dir := &stubDirectory{matches: entityMatches(3)}
	tr := &recordingTranscript{}
	r := NewResolver(ResolverDeps{Directory: dir, Transcript: tr, MaxEntities: 20})

	ids, err := r.Resolve(context.Background(), "apple", true)

	require.NoError(t, err)
	assert.Equal(t, []string{"e1", "e2", "e3"}, ids)
	assert.Equal(t, "apple", dir.gotQuery)
	assert.True(t, dir.gotExact)
	assert.Equal(t, 20, dir.gotLimit)
	assert.Equal(t, "apple", tr.summaryQuery)
	assert.Len(t, tr.summaryMatches, 3)
}

func TestResolverCapsAtMaxEntities(t *testing.T) {
	t.Parallel()

	// A misbehaving server may ignore the limit; the cap still holds.
	dir := &stubDirectory{matches: entityMatches(25)}
	tr := &recordingTranscript{}
	r := NewResolver(ResolverDeps{Directory: dir, Transcript: tr, MaxEntities: 20})

	ids, err := r.Resolve(context.Background(), "apple", false)

	require.NoError(t, err)
	assert.Len(t, ids, 20)
	assert.Equal(t, "e20", ids[19])
	assert.Len(t, tr.summaryMatches, 20)
}

func TestResolverDefaultsMaxEntities(t *testing.T) {
	t.Parallel()

	dir := &stubDirectory{}
	r := NewResolver(ResolverDeps{Directory: dir})

	_, err := r.Resolve(context.Background(), "apple", false)

	require.NoError(t, err)
	assert.Equal(t, 20, dir.gotLimit)
}

func TestResolverEmptyResult(t *testing.T) {
	t.Parallel()

	dir := &stubDirectory{}
	tr := &recordingTranscript{}
	r := NewResolver(ResolverDeps{Directory: dir, Transcript: tr})

	ids, err := r.Resolve(context.Background(), "unknown thing", false)

	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Equal(t, "unknown thing", tr.summaryQuery)
}

func TestResolverPropagatesSearchError(t *testing.T) {
	t.Parallel()

	dir := &stubDirectory{err: errBoom}
	tr := &recordingTranscript{}
	r := NewResolver(ResolverDeps{Directory: dir, Transcript: tr})

	_, err := r.Resolve(context.Background(), "apple", false)

	require.ErrorIs(t, err, errBoom)
	assert.Empty(t, tr.summaryQuery, "no summary without results")
}

func TestResolverLookupSkipsTranscript(t *testing.T) {
	t.Parallel()

	dir := &stubDirectory{matches: entityMatches(2)}
	tr := &recordingTranscript{}
	r := NewResolver(ResolverDeps{Directory: dir, Transcript: tr})

	matches, err := r.Lookup(context.Background(), "apple", false)

	require.NoError(t, err)
	assert.Len(t, matches, 2)
	assert.Empty(t, tr.summaryQuery)
}
