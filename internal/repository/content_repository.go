package repository

import (
	"context"
	"fmt"
	"time"

	"vineet_portfolio/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"
)

type ContentRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewContentRepository(db *pgxpool.Pool) *ContentRepo {
	return &ContentRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ListBySection возвращает все текстовые блоки секции страницы
func (r *ContentRepo) ListBySection(ctx context.Context, section string) ([]models.ContentEntry, error) {
	const op = "repository.content_repository.ListBySection"

	query, args, err := r.sb.
		Select("section", "key", "value", "updated_at").
		From("content_entries").
		Where(sq.Eq{"section": section}).
		OrderBy("key").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var entries []models.ContentEntry
	for rows.Next() {
		var e models.ContentEntry
		if err := rows.Scan(&e.Section, &e.Key, &e.Value, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: failed to scan row: %w", op, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return entries, nil
}

// Upsert перезаписывает значение по паре (section, key)
func (r *ContentRepo) Upsert(ctx context.Context, entry models.ContentEntry) error {
	const op = "repository.content_repository.Upsert"

	query, args, err := r.sb.Insert("content_entries").
		Columns("section", "key", "value", "updated_at").
		Values(entry.Section, entry.Key, entry.Value, time.Now().UTC()).
		Suffix("ON CONFLICT (section, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
