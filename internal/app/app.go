package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"contextwatch/internal/config"
	"contextwatch/internal/console"
	"contextwatch/internal/domain"
	"contextwatch/internal/infrastructure/contextapi"
	"contextwatch/internal/infrastructure/preview"
	"contextwatch/internal/infrastructure/storage"
	"contextwatch/internal/logging"
	"contextwatch/internal/ports"
	"contextwatch/internal/usecase"
)

// Application wires config to the API client, the transcript, and the use
// cases behind the CLI commands.
type Application struct {
	cfg        config.Config
	log        *slog.Logger
	client     *contextapi.Client
	transcript *console.Transcript

	db *sql.DB
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	client := contextapi.NewClient(contextapi.Options{
		BaseURL:        cfg.Server.URL,
		APIKey:         cfg.Server.APIKey,
		SessionID:      cfg.Server.SessionID,
		Timeout:        cfg.Client.Timeout(),
		RequestsPerSec: cfg.Client.RequestsPerSec,
		RetryAttempts:  cfg.Client.RetryAttempts,
		RetryInitial:   cfg.Client.RetryInitial(),
		RetryMax:       cfg.Client.RetryMax(),
		Logger:         baseLogger,
	})

	transcript := console.New(os.Stdout, console.ResolveColors(cfg.Output.Colors))

	return &Application{
		cfg:        cfg,
		log:        baseLogger.With("component", "app"),
		client:     client,
		transcript: transcript,
	}
}

// Watch resolves the query once and runs the endless update loop.
func (a *Application) Watch(ctx context.Context) error {
	a.transcript.ServerNotice(a.cfg.Server.URL)

	resolver := usecase.NewResolver(usecase.ResolverDeps{
		Directory:   a.client,
		Transcript:  a.transcript,
		MaxEntities: a.cfg.Query.MaxEntities,
	})

	entityIDs, err := resolver.Resolve(ctx, a.cfg.Query.Text, a.cfg.Query.Exact)
	if err != nil {
		return fmt.Errorf("resolve entities: %w", err)
	}

	var archive ports.ContentArchive
	if a.cfg.Archive.DSN != "" {
		db, err := storage.Open(ctx, a.cfg.Archive.DSN)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		a.db = db
		archive = storage.NewArchiveRepository(db)
		a.log.Info("archiving printed items")
	}

	var previews ports.PreviewFetcher
	if a.cfg.Output.Previews {
		previews = preview.NewFetcher(nil)
	}

	queryType, ok := domain.ParseQueryType(a.cfg.Query.Type)
	if !ok {
		a.log.Warn("unknown query type, using FEED", "type", a.cfg.Query.Type)
	}

	watcher := usecase.NewWatcher(usecase.WatcherDeps{
		Content:      a.client,
		Transcript:   a.transcript,
		Archive:      archive,
		Previews:     previews,
		Logger:       a.log,
		QueryType:    queryType,
		BatchSize:    a.cfg.Query.BatchSize,
		PollInterval: a.cfg.Query.PollInterval(),
	})

	return watcher.Run(ctx, entityIDs)
}

// Sources prints which sources the API key is entitled for.
func (a *Application) Sources(ctx context.Context) error {
	a.transcript.ServerNotice(a.cfg.Server.URL)

	report := usecase.NewSourcesReport(a.client, a.transcript)
	return report.Run(ctx)
}

// Entities resolves the query once and renders the matches as a table.
func (a *Application) Entities(ctx context.Context) error {
	resolver := usecase.NewResolver(usecase.ResolverDeps{
		Directory:   a.client,
		MaxEntities: a.cfg.Query.MaxEntities,
	})

	matches, err := resolver.Lookup(ctx, a.cfg.Query.Text, a.cfg.Query.Exact)
	if err != nil {
		return fmt.Errorf("lookup entities: %w", err)
	}

	return console.RenderEntityTable(os.Stdout, matches)
}

// ArchiveList prints the most recently archived items in transcript form.
func (a *Application) ArchiveList(ctx context.Context, limit int) error {
	if a.cfg.Archive.DSN == "" {
		return errors.New("archive dsn is not configured")
	}

	db, err := storage.Open(ctx, a.cfg.Archive.DSN)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = db.Close() }()

	repo := storage.NewArchiveRepository(db)
	items, err := repo.RecentItems(ctx, limit)
	if err != nil {
		return fmt.Errorf("load recent items: %w", err)
	}

	for _, item := range items {
		if err := a.transcript.Item(item, nil); err != nil {
			return err
		}
	}

	return nil
}

// Close releases resources opened during a run.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	return nil
}
