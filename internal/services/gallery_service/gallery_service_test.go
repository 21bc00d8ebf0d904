package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"vineet_portfolio/internal/domain/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMediaItemRepository struct {
	mock.Mock
}

func (m *MockMediaItemRepository) ListByCategory(ctx context.Context, category string) ([]models.MediaItem, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MediaItem), args.Error(1)
}

func (m *MockMediaItemRepository) Create(ctx context.Context, item *models.MediaItem) (*models.MediaItem, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaItem), args.Error(1)
}

func (m *MockMediaItemRepository) Update(ctx context.Context, item models.MediaItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMediaItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMediaItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.MediaItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaItem), args.Error(1)
}

type MockSectionRepository struct {
	mock.Mock
}

func (m *MockSectionRepository) ListByCategory(ctx context.Context, category string) ([]models.Section, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Section), args.Error(1)
}

func (m *MockSectionRepository) Create(ctx context.Context, section models.Section) (uuid.UUID, error) {
	args := m.Called(ctx, section)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockSectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockLayoutRepository struct {
	mock.Mock
}

func (m *MockLayoutRepository) Get(ctx context.Context, category string) (models.LayoutSetting, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(models.LayoutSetting), args.Error(1)
}

func (m *MockLayoutRepository) Set(ctx context.Context, setting models.LayoutSetting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) ListBySection(ctx context.Context, section string) ([]models.ContentEntry, error) {
	args := m.Called(ctx, section)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ContentEntry), args.Error(1)
}

func (m *MockContentRepository) Upsert(ctx context.Context, entry models.ContentEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

var testCtx = context.Background()

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func makeItem(category, url, title string, index int, tags ...string) models.MediaItem {
	return models.MediaItem{
		ID:         uuid.New(),
		Category:   category,
		URL:        url,
		Title:      title,
		Tags:       tags,
		OrderIndex: index,
		CreatedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newService() (*GalleryService, *MockMediaItemRepository, *MockSectionRepository, *MockLayoutRepository, *MockContentRepository) {
	items := new(MockMediaItemRepository)
	sections := new(MockSectionRepository)
	layouts := new(MockLayoutRepository)
	content := new(MockContentRepository)
	svc := NewGalleryService(testLogger(), items, sections, layouts, content)
	return svc, items, sections, layouts, content
}

func TestGetGallery_GridComposition(t *testing.T) {
	svc, itemsRepo, sectionsRepo, layoutRepo, _ := newService()

	items := []models.MediaItem{
		makeItem("videography", "https://youtu.be/dQw4w9WgXcQ", "Reel", 0),
		makeItem("videography", "https://cdn.test/clip.mp4", "Clip", 1),
		makeItem("videography", "https://cdn.test/photo.jpg", "Still", 2),
	}

	itemsRepo.On("ListByCategory", testCtx, "videography").Return(items, nil).Once()
	sectionsRepo.On("ListByCategory", testCtx, "videography").Return([]models.Section(nil), nil).Once()
	layoutRepo.On("Get", testCtx, "videography").Return(models.DefaultLayout("videography"), nil).Once()

	view, err := svc.GetGallery(testCtx, "videography")
	require.NoError(t, err)

	assert.Equal(t, "grid", view.Layout)
	require.Len(t, view.Items, 3)
	require.Len(t, view.Slots, 3)
	assert.Empty(t, view.Groups)

	// классификация применяется к каждому элементу
	assert.Equal(t, "embed", view.Items[0].Kind)
	assert.Equal(t, "youtube", view.Items[0].Provider)
	assert.Contains(t, view.Items[0].EmbedURL, "mute=1")
	assert.Contains(t, view.Items[0].PlayerURL, "autoplay=1")
	assert.NotContains(t, view.Items[0].PlayerURL, "mute=1")

	assert.Equal(t, "native_video", view.Items[1].Kind)
	assert.Empty(t, view.Items[1].EmbedURL)

	assert.Equal(t, "image", view.Items[2].Kind)

	// сквозные индексы лайтбокса
	for i, item := range view.Items {
		assert.Equal(t, i, item.LightboxIndex)
	}
}

func TestGetGallery_GroupedLightboxSpansGroups(t *testing.T) {
	svc, itemsRepo, sectionsRepo, layoutRepo, _ := newService()

	items := []models.MediaItem{
		makeItem("photography", "https://cdn.test/a.jpg", "A", 0, "Wedding"),
		makeItem("photography", "https://cdn.test/b.jpg", "B", 1, "Portrait"),
		makeItem("photography", "https://cdn.test/c.jpg", "C", 2, "Wedding"),
	}

	itemsRepo.On("ListByCategory", testCtx, "photography").Return(items, nil).Once()
	sectionsRepo.On("ListByCategory", testCtx, "photography").Return([]models.Section(nil), nil).Once()
	layoutRepo.On("Get", testCtx, "photography").Return(models.LayoutSetting{Category: "photography", Kind: models.LayoutGrouped}, nil).Once()

	view, err := svc.GetGallery(testCtx, "photography")
	require.NoError(t, err)

	assert.Equal(t, "grouped", view.Layout)
	require.Len(t, view.Groups, 2)
	assert.Empty(t, view.Slots)

	// Items — сквозная последовательность в порядке групп
	require.Len(t, view.Items, 3)
	assert.Equal(t, "A", view.Items[0].Title)
	assert.Equal(t, "C", view.Items[1].Title)
	assert.Equal(t, "B", view.Items[2].Title)

	// индекс лайтбокса элемента группы указывает в сквозную последовательность
	wedding := view.Groups[0]
	require.Len(t, wedding.Items, 2)
	assert.Equal(t, 0, wedding.Items[0].LightboxIndex)
	assert.Equal(t, 1, wedding.Items[1].LightboxIndex)

	portrait := view.Groups[1]
	require.Len(t, portrait.Items, 1)
	assert.Equal(t, 2, portrait.Items[0].LightboxIndex)
}

func TestGetGallery_CachedUntilInvalidated(t *testing.T) {
	svc, itemsRepo, sectionsRepo, layoutRepo, _ := newService()

	items := []models.MediaItem{makeItem("photography", "https://cdn.test/a.jpg", "A", 0)}

	itemsRepo.On("ListByCategory", testCtx, "photography").Return(items, nil).Twice()
	sectionsRepo.On("ListByCategory", testCtx, "photography").Return([]models.Section(nil), nil).Twice()
	layoutRepo.On("Get", testCtx, "photography").Return(models.DefaultLayout("photography"), nil).Twice()

	_, err := svc.GetGallery(testCtx, "photography")
	require.NoError(t, err)

	// повторный запрос отдается из кэша
	_, err = svc.GetGallery(testCtx, "photography")
	require.NoError(t, err)
	itemsRepo.AssertNumberOfCalls(t, "ListByCategory", 1)

	// сигнал публикации сбрасывает кэш
	svc.InvalidateCache()

	_, err = svc.GetGallery(testCtx, "photography")
	require.NoError(t, err)
	itemsRepo.AssertNumberOfCalls(t, "ListByCategory", 2)
}

func TestGetContent(t *testing.T) {
	svc, _, _, _, contentRepo := newService()

	entries := []models.ContentEntry{
		{Section: "about", Key: "headline", Value: "Hello"},
		{Section: "about", Key: "bio", Value: "Story"},
	}
	contentRepo.On("ListBySection", testCtx, "about").Return(entries, nil).Once()

	resp, err := svc.GetContent(testCtx, "about")
	require.NoError(t, err)

	assert.Equal(t, "about", resp.Section)
	assert.Equal(t, "Hello", resp.Entries["headline"])
	assert.Equal(t, "Story", resp.Entries["bio"])

	// кэшируется так же, как галереи
	_, err = svc.GetContent(testCtx, "about")
	require.NoError(t, err)
	contentRepo.AssertNumberOfCalls(t, "ListBySection", 1)
}
