package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"vineet_portfolio/internal/domain/models"
	"vineet_portfolio/internal/lib/logger/sl"
	"vineet_portfolio/internal/repository"
	storage "vineet_portfolio/internal/storage/filestorage"
	"vineet_portfolio/internal/transport/http/dto"
)

// Publisher выпускает сигнал "контент опубликован"
type Publisher interface {
	Publish(ctx context.Context) (models.PublishEvent, error)
}

// MediaService загружает файлы в блоб-хранилище и заводит для них элементы
// галереи. Загрузка публикуется сразу: элемент встает в хвост категории,
// минуя черновик.
type MediaService struct {
	log         *slog.Logger
	repo        repository.MediaItemRepository
	fileStorage storage.FileStorage
	publisher   Publisher
}

func NewMediaService(log *slog.Logger, repo repository.MediaItemRepository, fileStorage storage.FileStorage, publisher Publisher) *MediaService {
	return &MediaService{
		log:         log,
		repo:        repo,
		fileStorage: fileStorage,
		publisher:   publisher,
	}
}

func (s *MediaService) UploadMedia(ctx context.Context, input dto.MediaUploadInput) (*dto.MediaUploadResponse, error) {
	const op = "media_service.UploadMedia"

	log := s.log.With(
		slog.String("op", op),
		slog.String("category", input.Category),
	)

	log.Info("upload media", slog.String("filename", input.File.Filename))

	filePath, fileSize, err := s.fileStorage.Save(ctx, input.File, filepath.Join("portfolio", input.Category))
	if err != nil {
		log.Error("failed to save file", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	item := models.NewMediaItem(input.Category, s.fileStorage.PublicURL(filePath))
	item.Title = input.Title
	item.Tags = input.Tags

	if err := item.Validate(); err != nil {
		_ = s.fileStorage.Delete(ctx, filePath)
		log.Error("media item validation failed", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		// файл без записи в БД не нужен
		_ = s.fileStorage.Delete(ctx, filePath)
		log.Error("failed to create media item", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.publisher.Publish(ctx); err != nil {
		log.Warn("publish signal failed", sl.Err(err))
	}

	log.Info("media uploaded",
		slog.String("item_id", created.ID.String()),
		slog.Int("order_index", created.OrderIndex),
	)

	return &dto.MediaUploadResponse{
		ItemID:     created.ID,
		URL:        created.URL,
		OrderIndex: created.OrderIndex,
		FileSize:   fileSize,
	}, nil
}
