package usecase

import (
	"context"
	"fmt"

	"contextwatch/internal/ports"
)

// SourcesReport prints which sources the API key is entitled for.
type SourcesReport struct {
	lister     ports.SourceLister
	transcript ports.Transcript
}

// NewSourcesReport constructs the report.
func NewSourcesReport(lister ports.SourceLister, transcript ports.Transcript) *SourcesReport {
	return &SourcesReport{lister: lister, transcript: transcript}
}

// Run fetches the entitlements and prints the summary.
func (s *SourcesReport) Run(ctx context.Context) error {
	sources, err := s.lister.EntitledSources(ctx)
	if err != nil {
		return fmt.Errorf("list sources: %w", err)
	}

	s.transcript.SourcesSummary(sources)

	return nil
}
