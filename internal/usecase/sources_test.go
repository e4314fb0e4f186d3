package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLister struct {
	sources []string
	err     error
}

func (l *stubLister) EntitledSources(context.Context) ([]string, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.sources, nil
}

func TestSourcesReportPrintsEntitlements(t *testing.T) {
	t.Parallel()

	tr := &recordingTranscript{}
	report := NewSourcesReport(&stubLister{sources: []string{"reuters", "twitter"}}, tr)

	require.NoError(t, report.Run(context.Background()))
	assert.Equal(t, []string{"reuters", "twitter"}, tr.sources)
}

func TestSourcesReportPropagatesError(t *testing.T) {
	t.Parallel()

	tr := &recordingTranscript{}
	report := NewSourcesReport(&stubLister{err: errBoom}, tr)

	err := report.Run(context.Background())

	require.ErrorIs(t, err, errBoom)
	assert.Nil(t, tr.sources)
}
