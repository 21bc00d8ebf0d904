package repository

import (
	"context"
	"time"

	"vineet_portfolio/internal/domain/models"

	"github.com/google/uuid"
)

type MediaItemRepository interface {
	ListByCategory(ctx context.Context, category string) ([]models.MediaItem, error)
	Create(ctx context.Context, item *models.MediaItem) (*models.MediaItem, error)
	Update(ctx context.Context, item models.MediaItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.MediaItem, error)
}

type SectionRepository interface {
	ListByCategory(ctx context.Context, category string) ([]models.Section, error)
	Create(ctx context.Context, section models.Section) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type LayoutRepository interface {
	Get(ctx context.Context, category string) (models.LayoutSetting, error)
	Set(ctx context.Context, setting models.LayoutSetting) error
}

type ContentRepository interface {
	ListBySection(ctx context.Context, section string) ([]models.ContentEntry, error)
	Upsert(ctx context.Context, entry models.ContentEntry) error
}

type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) (uuid.UUID, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	UserByIdentifier(ctx context.Context, identifier string) (models.User, error)
	GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error)
}

type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error
	GetRefreshToken(ctx context.Context, userID, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID, token string) error
	DeleteAllUserTokens(ctx context.Context, userID string) error
}
