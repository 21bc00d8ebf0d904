package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

type Repository struct {
	db       *pgxpool.Pool
	Users    UserRepository
	Items    MediaItemRepository
	Sections SectionRepository
	Layouts  LayoutRepository
	Content  ContentRepository
}

func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	db, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return NewRepositoryWithPool(db), nil
}

// NewRepositoryWithPool собирает репозитории поверх готового пула
// (используется тестами с testcontainers)
func NewRepositoryWithPool(db *pgxpool.Pool) *Repository {
	return &Repository{
		db:       db,
		Users:    NewUserRepository(db),
		Items:    NewMediaItemRepository(db),
		Sections: NewSectionRepository(db),
		Layouts:  NewLayoutRepository(db),
		Content:  NewContentRepository(db),
	}
}

func (r *Repository) Close() {
	r.db.Close()
}
