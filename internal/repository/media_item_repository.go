package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vineet_portfolio/internal/domain/models"
	"vineet_portfolio/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var mediaItemColumns = []string{
	"id",
	"category",
	"url",
	"title",
	"description",
	"tags",
	"section_id",
	"order_index",
	"created_at",
	"updated_at",
}

type MediaItemRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewMediaItemRepository(db *pgxpool.Pool) *MediaItemRepo {
	return &MediaItemRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ListByCategory возвращает все элементы категории, упорядоченные по
// order_index
func (r *MediaItemRepo) ListByCategory(ctx context.Context, category string) ([]models.MediaItem, error) {
	const op = "repository.media_item_repository.ListByCategory"

	query, args, err := r.sb.
		Select(mediaItemColumns...).
		From("media_items").
		Where(sq.Eq{"category": category}).
		OrderBy("order_index").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.MediaItem
	for rows.Next() {
		var m models.MediaItem
		err := rows.Scan(
			&m.ID,
			&m.Category,
			&m.URL,
			&m.Title,
			&m.Description,
			&m.Tags,
			&m.SectionID,
			&m.OrderIndex,
			&m.CreatedAt,
			&m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan row: %w", op, err)
		}
		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return items, nil
}

// Create вставляет элемент в хвост категории: order_index назначается
// равным текущему размеру категории
func (r *MediaItemRepo) Create(ctx context.Context, item *models.MediaItem) (*models.MediaItem, error) {
	const op = "repository.media_item_repository.Create"

	query, args, err := r.sb.Insert("media_items").
		Columns(mediaItemColumns...).
		Values(
			item.ID,
			item.Category,
			item.URL,
			item.Title,
			item.Description,
			item.Tags,
			item.SectionID,
			sq.Expr("(SELECT COUNT(*) FROM media_items WHERE category = ?)", item.Category),
			item.CreatedAt,
			item.UpdatedAt,
		).
		Suffix("RETURNING order_index").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	created := item.Clone()
	if err := r.db.QueryRow(ctx, query, args...).Scan(&created.OrderIndex); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &created, nil
}

// Update перезаписывает все изменяемые поля элемента
func (r *MediaItemRepo) Update(ctx context.Context, item models.MediaItem) error {
	const op = "repository.media_item_repository.Update"

	query, args, err := r.sb.Update("media_items").
		Set("url", item.URL).
		Set("title", item.Title).
		Set("description", item.Description).
		Set("tags", item.Tags).
		Set("section_id", item.SectionID).
		Set("order_index", item.OrderIndex).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": item.ID, "category": item.Category}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrItemNotFound)
	}

	return nil
}

// Delete удаляет элемент по id
func (r *MediaItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "repository.media_item_repository.Delete"

	query, args, err := r.sb.Delete("media_items").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrItemNotFound)
	}

	return nil
}

// FindByID возвращает один элемент по id
func (r *MediaItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.MediaItem, error) {
	const op = "repository.media_item_repository.FindByID"

	query, args, err := r.sb.
		Select(mediaItemColumns...).
		From("media_items").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var m models.MediaItem
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&m.ID,
		&m.Category,
		&m.URL,
		&m.Title,
		&m.Description,
		&m.Tags,
		&m.SectionID,
		&m.OrderIndex,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrItemNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &m, nil
}
