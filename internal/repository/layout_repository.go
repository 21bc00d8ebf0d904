package repository

import (
	"context"
	"errors"
	"fmt"

	"vineet_portfolio/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type LayoutRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewLayoutRepository(db *pgxpool.Pool) *LayoutRepo {
	return &LayoutRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Get возвращает раскладку категории. Отсутствующая запись и неизвестное
// сохранённое значение деградируют в grid.
func (r *LayoutRepo) Get(ctx context.Context, category string) (models.LayoutSetting, error) {
	const op = "repository.layout_repository.Get"

	query, args, err := r.sb.
		Select("kind").
		From("layout_settings").
		Where(sq.Eq{"category": category}).
		ToSql()
	if err != nil {
		return models.LayoutSetting{}, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var kind string
	err = r.db.QueryRow(ctx, query, args...).Scan(&kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.DefaultLayout(category), nil
		}
		return models.LayoutSetting{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.LayoutSetting{Category: category, Kind: models.ParseLayoutKind(kind)}, nil
}

// Set сохраняет раскладку категории (не более одной записи на категорию)
func (r *LayoutRepo) Set(ctx context.Context, setting models.LayoutSetting) error {
	const op = "repository.layout_repository.Set"

	query, args, err := r.sb.Insert("layout_settings").
		Columns("category", "kind").
		Values(setting.Category, string(setting.Kind)).
		Suffix("ON CONFLICT (category) DO UPDATE SET kind = EXCLUDED.kind").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
