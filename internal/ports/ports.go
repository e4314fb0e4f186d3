package ports

import (
	"context"
	"time"

	"contextwatch/internal/domain"
)

// EntityDirectory resolves free-text queries to candidate entities.
type EntityDirectory interface {
	SearchEntities(ctx context.Context, query string, exact bool, limit int) ([]domain.EntityMatch, error)
}

// ContentService executes recommendation queries against the remote API.
type ContentService interface {
	QueryContent(ctx context.Context, query domain.ContentQuery) ([]domain.ContentItem, error)
}

// SourceLister reports the sources the configured API key may read.
type SourceLister interface {
	EntitledSources(ctx context.Context) ([]string, error)
}

// Transcript renders the human-readable session output. Item reports write
// failures because a broken output stream must abort the run.
type Transcript interface {
	ServerNotice(serverURL string)
	EntitySummary(query string, matches []domain.EntityMatch)
	BatchReceived(total int)
	Item(item domain.ContentItem, preview *domain.Preview) error
	PauseNotice(pause time.Duration)
	SourcesSummary(sources []string)
}

// ContentArchive persists printed items for later inspection.
type ContentArchive interface {
	SaveItem(ctx context.Context, item domain.ContentItem) error
}

// PreviewFetcher retrieves a short page excerpt for a content link.
type PreviewFetcher interface {
	Fetch(ctx context.Context, linkURL string) (domain.Preview, error)
}
