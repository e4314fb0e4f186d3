package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"contextwatch/internal/dedup"
	"contextwatch/internal/domain"
	"contextwatch/internal/ports"
)

// Watcher runs the endless poll-and-print loop: query the content service,
// print items not seen before, remember what was printed, sleep, repeat.
// The first query runs in INITIAL mode; every query after the first attempt
// is an UPDATE, and the mode never goes back.
type Watcher struct {
	content    ports.ContentService
	transcript ports.Transcript
	archive    ports.ContentArchive
	previews   ports.PreviewFetcher

	queryType    domain.QueryType
	batchSize    int
	pollInterval time.Duration

	log *slog.Logger
}

// WatcherDeps wires the collaborators of the update loop. Archive and
// Previews are optional; nil disables them.
type WatcherDeps struct {
	Content    ports.ContentService
	Transcript ports.Transcript
	Archive    ports.ContentArchive
	Previews   ports.PreviewFetcher
	Logger     *slog.Logger

	QueryType    domain.QueryType
	BatchSize    int
	PollInterval time.Duration
}

// NewWatcher constructs the update loop. BatchSize defaults to 10 and
// PollInterval to 30 seconds.
func NewWatcher(deps WatcherDeps) *Watcher {
	batchSize := deps.BatchSize
	if batchSize <= 0 {
		batchSize = 10
	}

	pollInterval := deps.PollInterval
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}

	queryType := deps.QueryType
	if queryType == "" {
		queryType = domain.QueryFeed
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		content:      deps.Content,
		transcript:   deps.Transcript,
		archive:      deps.Archive,
		previews:     deps.Previews,
		queryType:    queryType,
		batchSize:    batchSize,
		pollInterval: pollInterval,
		log:          logger.With("component", "watcher"),
	}
}

// Run polls for content until the context is cancelled or an error escapes.
// Any failure from the query, the transcript, or the archive aborts the
// run; only preview fetches are allowed to fail quietly.
func (w *Watcher) Run(ctx context.Context, entityIDs []string) error {
	if w.content == nil || w.transcript == nil {
		return errors.New("content service and transcript are required")
	}

	// Holds the last two batches worth of printed ids; the service may
	// return an already reported item near the query-window edge.
	seen := dedup.NewWindow(2 * w.batchSize)
	mode := domain.ModeInitial

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		items, err := w.content.QueryContent(ctx, domain.ContentQuery{
			Type:      w.queryType,
			Mode:      mode,
			BatchSize: w.batchSize,
			EntityIDs: entityIDs,
		})
		// A failed first query still consumes INITIAL.
		mode = domain.ModeUpdate
		if err != nil {
			return fmt.Errorf("query content: %w", err)
		}

		w.transcript.BatchReceived(len(items))

		for _, item := range items {
			if item.ContentID == "" {
				continue
			}
			if seen.Contains(item.ContentID) {
				w.log.Debug("skipping already seen item", "content_id", item.ContentID)
				continue
			}

			if err := w.emit(ctx, item); err != nil {
				return err
			}

			seen.Add(item.ContentID)
		}

		if err := w.pause(ctx); err != nil {
			return err
		}
	}
}

func (w *Watcher) emit(ctx context.Context, item domain.ContentItem) error {
	var preview *domain.Preview
	if w.previews != nil && item.LinkURL != "" {
		p, err := w.previews.Fetch(ctx, item.LinkURL)
		if err != nil {
			w.log.Warn("preview fetch failed", "content_id", item.ContentID, "err", err)
		} else {
			preview = &p
		}
	}

	if err := w.transcript.Item(item, preview); err != nil {
		return fmt.Errorf("print item %s: %w", item.ContentID, err)
	}

	if w.archive != nil {
		if err := w.archive.SaveItem(ctx, item); err != nil {
			return fmt.Errorf("archive item %s: %w", item.ContentID, err)
		}
	}

	return nil
}

func (w *Watcher) pause(ctx context.Context) error {
	w.transcript.PauseNotice(w.pollInterval)

	timer := time.NewTimer(w.pollInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
