// Package storage persists printed content items into Postgres.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"contextwatch/internal/domain"
	"contextwatch/internal/ports"
)

// ArchiveRepository writes every printed item into the content_items table
// (content_id primary key, core fields, related lines as text[]).
type ArchiveRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ContentArchive = (*ArchiveRepository)(nil)

// NewArchiveRepository wires a sql.DB implementation.
func NewArchiveRepository(db *sql.DB) *ArchiveRepository {
	return &ArchiveRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// SaveItem upserts one content item snapshot.
func (r *ArchiveRepository) SaveItem(ctx context.Context, item domain.ContentItem) error {
	if r.db == nil {
		return nil
	}

	query, args, err := r.upsertSQL(item)
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert content item: %w", err)
	}

	return nil
}

// RecentItems returns the most recently archived items, newest first.
func (r *ArchiveRepository) RecentItems(ctx context.Context, limit int) ([]domain.ContentItem, error) {
	if r.db == nil {
		return nil, nil
	}

	query, args, err := r.recentSQL(limit)
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent items: %w", err)
	}

	var items []domain.ContentItem
	for rows.Next() {
		var item domain.ContentItem
		if err := rows.Scan(
			&item.ContentID,
			&item.Headline,
			&item.ContentType,
			&item.Source,
			&item.Timestamp,
			&item.Score,
			&item.Summary,
			&item.Author,
			&item.LinkURL,
		); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return items, nil
}

func (r *ArchiveRepository) upsertSQL(item domain.ContentItem) (string, []any, error) {
	related := make([]string, 0, len(item.Related))
	for _, rc := range item.Related {
		related = append(related, fmt.Sprintf("%s %s %s", rc.Relationship, rc.ContentType, rc.LinkURL))
	}

	return r.builder.
		Insert("content_items").
		Columns("content_id", "headline", "content_type", "source", "ts", "score", "summary", "author", "link_url", "related").
		Values(
			item.ContentID,
			item.Headline,
			item.ContentType,
			item.Source,
			item.Timestamp,
			item.Score,
			item.Summary,
			item.Author,
			item.LinkURL,
			pq.Array(related),
		).
		Suffix(`ON CONFLICT (content_id) DO UPDATE
              SET score = EXCLUDED.score,
                  summary = EXCLUDED.summary,
                  last_seen = NOW()`).
		ToSql()
}

func (r *ArchiveRepository) recentSQL(limit int) (string, []any, error) {
	if limit <= 0 {
		limit = 20
	}

	return r.builder.
		Select("content_id", "headline", "content_type", "source", "ts", "score", "summary", "author", "link_url").
		From("content_items").
		OrderBy("first_seen DESC").
		Limit(uint64(limit)).
		ToSql()
}
