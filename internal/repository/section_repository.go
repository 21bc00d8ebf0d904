package repository

import (
	"context"
	"fmt"

	"vineet_portfolio/internal/domain/models"
	"vineet_portfolio/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

type SectionRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewSectionRepository(db *pgxpool.Pool) *SectionRepo {
	return &SectionRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ListByCategory возвращает секции категории, упорядоченные по order_index
func (r *SectionRepo) ListByCategory(ctx context.Context, category string) ([]models.Section, error) {
	const op = "repository.section_repository.ListByCategory"

	query, args, err := r.sb.
		Select("id", "category", "name", "order_index", "created_at").
		From("sections").
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

	var sections []models.Section
	for rows.Next() {
		var s models.Section
		if err := rows.Scan(&s.ID, &s.Category, &s.Name, &s.OrderIndex, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: failed to scan row: %w", op, err)
		}
		sections = append(sections, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return sections, nil
}

func (r *SectionRepo) Create(ctx context.Context, section models.Section) (uuid.UUID, error) {
	const op = "repository.section_repository.Create"

	query, args, err := r.sb.Insert("sections").
		Columns("id", "category", "name", "order_index", "created_at").
		Values(
			section.ID,
			section.Category,
			section.Name,
			section.OrderIndex,
			section.CreatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// Delete удаляет секцию. Ссылки section_id у элементов не трогаются:
// висячая ссылка читается как отсутствие секции.
func (r *SectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "repository.section_repository.Delete"

	query, args, err := r.sb.Delete("sections").
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
		return fmt.Errorf("%s: %w", op, storage.ErrSectionNotFound)
	}

	return nil
}
