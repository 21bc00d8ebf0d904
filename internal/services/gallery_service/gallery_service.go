package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vineet_portfolio/internal/domain/models"
	"vineet_portfolio/internal/lib/grouping"
	"vineet_portfolio/internal/lib/logger/sl"
	"vineet_portfolio/internal/lib/mediakind"
	"vineet_portfolio/internal/metrics"
	"vineet_portfolio/internal/repository"
	"vineet_portfolio/internal/transport/http/dto"

	gocache "github.com/patrickmn/go-cache"
)

// GalleryService собирает публичное представление галереи: раскладка,
// классифицированные элементы и, для "grouped", разбиение по группам.
// Собранные представления кэшируются до сигнала публикации.
type GalleryService struct {
	log      *slog.Logger
	items    repository.MediaItemRepository
	sections repository.SectionRepository
	layouts  repository.LayoutRepository
	content  repository.ContentRepository
	cache    *gocache.Cache
}

func NewGalleryService(
	log *slog.Logger,
	items repository.MediaItemRepository,
	sections repository.SectionRepository,
	layouts repository.LayoutRepository,
	content repository.ContentRepository,
) *GalleryService {
	return &GalleryService{
		log:      log,
		items:    items,
		sections: sections,
		layouts:  layouts,
		content:  content,
		cache:    gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// GetGallery возвращает собранную галерею категории
func (s *GalleryService) GetGallery(ctx context.Context, category string) (*dto.GalleryView, error) {
	const op = "gallery_service.GetGallery"

	cacheKey := "gallery:" + category
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(*dto.GalleryView), nil
	}

	log := s.log.With(slog.String("op", op), slog.String("category", category))

	items, err := s.items.ListByCategory(ctx, category)
	if err != nil {
		log.Error("failed to load items", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sections, err := s.sections.ListByCategory(ctx, category)
	if err != nil {
		log.Error("failed to load sections", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	layout, err := s.layouts.Get(ctx, category)
	if err != nil {
		log.Error("failed to load layout", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	view := composeView(category, layout, items, sections)
	s.cache.Set(cacheKey, view, gocache.DefaultExpiration)

	log.Info("gallery composed",
		slog.String("layout", string(layout.Kind)),
		slog.Int("items", len(items)),
	)

	return view, nil
}

// GetContent возвращает текстовые блоки секции страницы
func (s *GalleryService) GetContent(ctx context.Context, section string) (*dto.ContentResponse, error) {
	const op = "gallery_service.GetContent"

	cacheKey := "content:" + section
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(*dto.ContentResponse), nil
	}

	entries, err := s.content.ListBySection(ctx, section)
	if err != nil {
		s.log.Error("failed to load content", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := &dto.ContentResponse{
		Section: section,
		Entries: make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		resp.Entries[e.Key] = e.Value
	}

	s.cache.Set(cacheKey, resp, gocache.DefaultExpiration)

	return resp, nil
}

// InvalidateCache сбрасывает все собранные представления; дергается шиной
// публикаций
func (s *GalleryService) InvalidateCache() {
	s.cache.Flush()
	metrics.GalleryCacheFlushes.Inc()
	s.log.Debug("gallery cache flushed")
}

// composeView чистая сборка представления из уже загруженных данных
func composeView(category string, layout models.LayoutSetting, items []models.MediaItem, sections []models.Section) *dto.GalleryView {
	view := &dto.GalleryView{
		Category:    category,
		Layout:      string(layout.Kind),
		GeneratedAt: time.Now().UTC(),
	}

	if layout.Kind == models.LayoutGrouped {
		grouped := grouping.Build(items, sections)

		// позиция в сквозной последовательности — индекс лайтбокса
		lightbox := make(map[string]int, len(grouped.OrderedItems))
		for i, item := range grouped.OrderedItems {
			lightbox[item.ID.String()] = i
		}

		view.Items = make([]dto.GalleryItem, 0, len(grouped.OrderedItems))
		for i, item := range grouped.OrderedItems {
			view.Items = append(view.Items, toGalleryItem(item, i))
		}

		view.Groups = make([]dto.GalleryGroup, 0, len(grouped.Groups))
		for _, g := range grouped.Groups {
			out := dto.GalleryGroup{
				ID:    g.ID,
				Title: g.Title,
				Items: make([]dto.GalleryItem, 0, len(g.Items)),
			}
			for _, item := range g.Items {
				out.Items = append(out.Items, toGalleryItem(item, lightbox[item.ID.String()]))
			}
			view.Groups = append(view.Groups, out)
		}

		return view
	}

	view.Items = make([]dto.GalleryItem, 0, len(items))
	for i, item := range items {
		view.Items = append(view.Items, toGalleryItem(item, i))
	}

	slots := grouping.PlaceAll(layout.Kind, len(items))
	view.Slots = make([]dto.GallerySlot, 0, len(slots))
	for _, slot := range slots {
		view.Slots = append(view.Slots, dto.GallerySlot{Column: slot.Column, Span: slot.Span})
	}

	return view
}

func toGalleryItem(item models.MediaItem, lightboxIndex int) dto.GalleryItem {
	c := mediakind.Classify(item.URL)

	out := dto.GalleryItem{
		ID:            item.ID,
		URL:           item.URL,
		Title:         item.Title,
		Description:   item.Description,
		Tags:          item.Tags,
		SectionID:     item.SectionID,
		OrderIndex:    item.OrderIndex,
		Kind:          string(c.Kind),
		Provider:      string(c.Provider),
		LightboxIndex: lightboxIndex,
	}

	if c.Kind == mediakind.KindEmbed {
		out.EmbedURL = c.EmbedURL(mediakind.PresetBackground)
		out.PlayerURL = c.EmbedURL(mediakind.PresetPlayer)
	}

	return out
}
