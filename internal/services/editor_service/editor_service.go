package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"vineet_portfolio/internal/domain/models"
	"vineet_portfolio/internal/lib/logger/sl"
	"vineet_portfolio/internal/lib/ordering"
	"vineet_portfolio/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrNoSession        = errors.New("no active edit session")
	ErrItemNotInDraft   = errors.New("item is not in the draft")
	ErrUnknownSortField = errors.New("unknown sort field")
)

// Publisher выпускает сигнал "контент опубликован"
type Publisher interface {
	Publish(ctx context.Context) (models.PublishEvent, error)
}

// EditorState снимок сессии для выдачи наружу. Items — черновик.
type EditorState struct {
	Category string
	Items    []models.MediaItem
	Layout   models.LayoutSetting
	Dirty    bool
}

// ContentState снимок контентной сессии. Values — черновик.
type ContentState struct {
	Section string
	Values  map[string]string
	Dirty   bool
}

type sessionKey struct {
	editorID string
	category string
}

type contentKey struct {
	editorID string
	section  string
}

// contentSession пара снимков key/value контента секции
type contentSession struct {
	committed map[string]string
	draft     map[string]string
}

// editSession пара снимков одной поверхности редактирования: committed
// отражает состояние хранилища на момент загрузки, draft — рабочая копия.
// Снимки никогда не делят память.
type editSession struct {
	committed       []models.MediaItem
	draft           []models.MediaItem
	committedLayout models.LayoutSetting
	draftLayout     models.LayoutSetting
}

// EditorService управляет сессиями редактирования галерей. Все правки
// копятся в черновике и уходят в хранилище одной командой Save; публикация
// сигнализируется шиной ровно один раз на успешный Save.
type EditorService struct {
	log       *slog.Logger
	items     repository.MediaItemRepository
	sections  repository.SectionRepository
	layouts   repository.LayoutRepository
	content   repository.ContentRepository
	publisher Publisher

	mu       sync.Mutex
	sessions map[sessionKey]*editSession
	contents map[contentKey]*contentSession
}

func NewEditorService(
	log *slog.Logger,
	items repository.MediaItemRepository,
	sections repository.SectionRepository,
	layouts repository.LayoutRepository,
	content repository.ContentRepository,
	publisher Publisher,
) *EditorService {
	return &EditorService{
		log:       log,
		items:     items,
		sections:  sections,
		layouts:   layouts,
		content:   content,
		publisher: publisher,
		sessions:  make(map[sessionKey]*editSession),
		contents:  make(map[contentKey]*contentSession),
	}
}

// Open создает сессию редактирования поверх текущего состояния хранилища.
// Повторный Open той же пары (editorID, category) возвращает уже открытую
// сессию с её черновиком.
func (s *EditorService) Open(ctx context.Context, editorID, category string) (EditorState, error) {
	const op = "editor_service.Open"

	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey{editorID: editorID, category: category}
	if sess, ok := s.sessions[key]; ok {
		return s.stateLocked(category, sess), nil
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("editor_id", editorID),
		slog.String("category", category),
	)

	items, err := s.items.ListByCategory(ctx, category)
	if err != nil {
		log.Error("failed to load items", sl.Err(err))
		return EditorState{}, fmt.Errorf("%s: %w", op, err)
	}

	layout, err := s.layouts.Get(ctx, category)
	if err != nil {
		log.Error("failed to load layout", sl.Err(err))
		return EditorState{}, fmt.Errorf("%s: %w", op, err)
	}

	sess := &editSession{
		committed:       cloneItems(items),
		draft:           cloneItems(items),
		committedLayout: layout,
		draftLayout:     layout,
	}
	s.sessions[key] = sess

	log.Info("edit session opened", slog.Int("items", len(items)))

	return s.stateLocked(category, sess), nil
}

// State возвращает текущий черновик сессии
func (s *EditorService) State(editorID, category string) (EditorState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionKey{editorID: editorID, category: category}]
	if !ok {
		return EditorState{}, ErrNoSession
	}

	return s.stateLocked(category, sess), nil
}

// MoveItem сдвигает элемент черновика на одну позицию (dir=-1 вверх,
// dir=+1 вниз); выход за границы — no-op
func (s *EditorService) MoveItem(editorID, category string, id uuid.UUID, dir int) (EditorState, error) {
	return s.mutate(editorID, category, func(sess *editSession) {
		sess.draft = ordering.Move(sess.draft, id, dir)
	})
}

// RepositionItem переносит dragged перед исходной позицией target
func (s *EditorService) RepositionItem(editorID, category string, draggedID, targetID uuid.UUID) (EditorState, error) {
	return s.mutate(editorID, category, func(sess *editSession) {
		sess.draft = ordering.Reposition(sess.draft, draggedID, targetID)
	})
}

// SortItems стабильно пересортировывает черновик по полю created_at или
// title
func (s *EditorService) SortItems(editorID, category, field string, desc bool) (EditorState, error) {
	var less func(a, b models.MediaItem) bool

	switch field {
	case "created_at":
		less = func(a, b models.MediaItem) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "title":
		less = func(a, b models.MediaItem) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	default:
		return EditorState{}, fmt.Errorf("%w: %q", ErrUnknownSortField, field)
	}

	if desc {
		asc := less
		less = func(a, b models.MediaItem) bool { return asc(b, a) }
	}

	return s.mutate(editorID, category, func(sess *editSession) {
		sess.draft = ordering.SortBy(sess.draft, less)
	})
}

// ReverseItems разворачивает порядок черновика
func (s *EditorService) ReverseItems(editorID, category string) (EditorState, error) {
	return s.mutate(editorID, category, func(sess *editSession) {
		sess.draft = ordering.Reverse(sess.draft)
	})
}

// UpdateItem правит редактируемые поля строки черновика, позицию не меняет
func (s *EditorService) UpdateItem(editorID, category string, updated models.MediaItem) (EditorState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionKey{editorID: editorID, category: category}]
	if !ok {
		return EditorState{}, ErrNoSession
	}

	idx := indexOf(sess.draft, updated.ID)
	if idx < 0 {
		return EditorState{}, ErrItemNotInDraft
	}

	row := &sess.draft[idx]
	row.URL = updated.URL
	row.Title = updated.Title
	row.Description = updated.Description
	row.Tags = append(models.Tags(nil), updated.Tags...)
	if updated.SectionID != nil {
		id := *updated.SectionID
		row.SectionID = &id
	} else {
		row.SectionID = nil
	}

	return s.stateLocked(category, sess), nil
}

// AddItem добавляет новый элемент в хвост черновика по URL. Строка попадает
// в хранилище только при Save (дифф видит id, которого нет в committed).
func (s *EditorService) AddItem(editorID, category, url, title string, tags []string, sectionID *uuid.UUID) (EditorState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionKey{editorID: editorID, category: category}]
	if !ok {
		return EditorState{}, ErrNoSession
	}

	item := models.NewMediaItem(category, url)
	item.Title = title
	item.Tags = append(models.Tags(nil), tags...)
	if sectionID != nil {
		id := *sectionID
		item.SectionID = &id
	}
	item.OrderIndex = len(sess.draft)

	sess.draft = append(sess.draft, *item)

	return s.stateLocked(category, sess), nil
}

// SetLayout меняет раскладку в черновике
func (s *EditorService) SetLayout(editorID, category string, kind models.LayoutKind) (EditorState, error) {
	return s.mutate(editorID, category, func(sess *editSession) {
		sess.draftLayout = models.LayoutSetting{Category: category, Kind: kind}
	})
}

// DeleteItem удаляет элемент из хранилища немедленно, не дожидаясь Save.
// Строка уходит из обоих снимков; черновик ренормализуется, и сдвиг
// индексов оставшихся строк всплывет как обновления при следующем Save.
func (s *EditorService) DeleteItem(ctx context.Context, editorID, category string, id uuid.UUID) (EditorState, error) {
	const op = "editor_service.DeleteItem"

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionKey{editorID: editorID, category: category}]
	if !ok {
		return EditorState{}, ErrNoSession
	}

	if indexOf(sess.draft, id) < 0 {
		return EditorState{}, ErrItemNotInDraft
	}

	if err := s.items.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete item",
			slog.String("op", op),
			slog.String("item_id", id.String()),
			sl.Err(err),
		)
		return EditorState{}, fmt.Errorf("%s: %w", op, err)
	}

	sess.committed = removeByID(sess.committed, id)
	sess.draft = ordering.Renormalize(removeByID(sess.draft, id))

	return s.stateLocked(category, sess), nil
}

// Save пишет построчный дифф черновика в хранилище. Первая же неудавшаяся
// запись останавливает проход, черновик остается нетронутым и Save можно
// повторить. После полного успеха committed перечитывается из хранилища и
// шина срабатывает ровно один раз.
func (s *EditorService) Save(ctx context.Context, editorID, category string) (EditorState, error) {
	const op = "editor_service.Save"

	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey{editorID: editorID, category: category}
	sess, ok := s.sessions[key]
	if !ok {
		return EditorState{}, ErrNoSession
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("editor_id", editorID),
		slog.String("category", category),
	)

	writes := 0
	for _, row := range sess.draft {
		base := findByID(sess.committed, row.ID)
		if base != nil && row.Equal(*base) {
			continue
		}

		if base == nil {
			// id есть только в черновике: вставка. Create ставит строку в
			// хвост хранилища; позиция из черновика докатывается Update-ом.
			created, err := s.items.Create(ctx, &row)
			if err != nil {
				log.Error("row insert failed, draft kept",
					slog.String("item_id", row.ID.String()),
					sl.Err(err),
				)
				return s.stateLocked(category, sess), fmt.Errorf("%s: %w", op, err)
			}
			writes++

			if created.OrderIndex == row.OrderIndex {
				continue
			}
		}

		if err := s.items.Update(ctx, row); err != nil {
			log.Error("row update failed, draft kept",
				slog.String("item_id", row.ID.String()),
				sl.Err(err),
			)
			return s.stateLocked(category, sess), fmt.Errorf("%s: %w", op, err)
		}
		writes++
	}

	if sess.draftLayout != sess.committedLayout {
		if err := s.layouts.Set(ctx, sess.draftLayout); err != nil {
			log.Error("layout update failed, draft kept", sl.Err(err))
			return s.stateLocked(category, sess), fmt.Errorf("%s: %w", op, err)
		}
		writes++
	}

	if writes == 0 {
		log.Info("nothing to save")
		return s.stateLocked(category, sess), nil
	}

	// записи уже в хранилище: сигнал уходит до ресинка, чтобы сбой
	// перечитки не оставил кеши без инвалидации. Потеря самого сигнала
	// Save тоже не роняет.
	if _, err := s.publisher.Publish(ctx); err != nil {
		log.Warn("publish signal failed", sl.Err(err))
	}

	items, err := s.items.ListByCategory(ctx, category)
	if err != nil {
		return EditorState{}, fmt.Errorf("%s: %w", op, err)
	}
	layout, err := s.layouts.Get(ctx, category)
	if err != nil {
		return EditorState{}, fmt.Errorf("%s: %w", op, err)
	}

	sess.committed = cloneItems(items)
	sess.draft = cloneItems(items)
	sess.committedLayout = layout
	sess.draftLayout = layout

	log.Info("draft saved", slog.Int("writes", writes))

	return s.stateLocked(category, sess), nil
}

// ListSections возвращает секции категории
func (s *EditorService) ListSections(ctx context.Context, category string) ([]models.Section, error) {
	const op = "editor_service.ListSections"

	sections, err := s.sections.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sections, nil
}

// CreateSection заводит секцию немедленно, минуя черновик: сама по себе
// пустая секция видимую раскладку не меняет, пока элементы не привязаны
func (s *EditorService) CreateSection(ctx context.Context, category, name string, orderIndex int) (*models.Section, error) {
	const op = "editor_service.CreateSection"

	section := models.NewSection(category, name, orderIndex)
	if _, err := s.sections.Create(ctx, *section); err != nil {
		s.log.Error("failed to create section", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.publisher.Publish(ctx); err != nil {
		s.log.Warn("publish signal failed", slog.String("op", op), sl.Err(err))
	}

	return section, nil
}

// DeleteSection удаляет секцию немедленно. Ссылки элементов не чистятся:
// висячая ссылка читается как отсутствие секции.
func (s *EditorService) DeleteSection(ctx context.Context, id uuid.UUID) error {
	const op = "editor_service.DeleteSection"

	if err := s.sections.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete section", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.publisher.Publish(ctx); err != nil {
		s.log.Warn("publish signal failed", slog.String("op", op), sl.Err(err))
	}

	return nil
}

// OpenContent открывает контентную сессию секции. Повторный Open той же
// пары (editorID, section) возвращает уже открытую сессию с её черновиком.
func (s *EditorService) OpenContent(ctx context.Context, editorID, section string) (ContentState, error) {
	const op = "editor_service.OpenContent"

	s.mu.Lock()
	defer s.mu.Unlock()

	key := contentKey{editorID: editorID, section: section}
	if sess, ok := s.contents[key]; ok {
		return contentState(section, sess), nil
	}

	entries, err := s.content.ListBySection(ctx, section)
	if err != nil {
		s.log.Error("failed to load content", slog.String("op", op), sl.Err(err))
		return ContentState{}, fmt.Errorf("%s: %w", op, err)
	}

	committed := make(map[string]string, len(entries))
	for _, e := range entries {
		committed[e.Key] = e.Value
	}

	sess := &contentSession{
		committed: committed,
		draft:     cloneValues(committed),
	}
	s.contents[key] = sess

	return contentState(section, sess), nil
}

// ContentStateOf возвращает текущий черновик контентной сессии
func (s *EditorService) ContentStateOf(editorID, section string) (ContentState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.contents[contentKey{editorID: editorID, section: section}]
	if !ok {
		return ContentState{}, ErrNoSession
	}

	return contentState(section, sess), nil
}

// SetContentValue правит значение ключа в черновике контентной сессии
func (s *EditorService) SetContentValue(editorID, section, key, value string) (ContentState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.contents[contentKey{editorID: editorID, section: section}]
	if !ok {
		return ContentState{}, ErrNoSession
	}

	sess.draft[key] = value

	return contentState(section, sess), nil
}

// SaveContent пишет по-ключевой дифф черновика: в хранилище уходят только
// измененные и добавленные ключи. Первая неудавшаяся запись останавливает
// проход, черновик остается для повтора. Шина срабатывает один раз.
func (s *EditorService) SaveContent(ctx context.Context, editorID, section string) (ContentState, error) {
	const op = "editor_service.SaveContent"

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.contents[contentKey{editorID: editorID, section: section}]
	if !ok {
		return ContentState{}, ErrNoSession
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("editor_id", editorID),
		slog.String("section", section),
	)

	writes := 0
	for key, value := range sess.draft {
		if base, ok := sess.committed[key]; ok && base == value {
			continue
		}

		entry := models.ContentEntry{Section: section, Key: key, Value: value}
		if err := s.content.Upsert(ctx, entry); err != nil {
			log.Error("content upsert failed, draft kept",
				slog.String("key", key),
				sl.Err(err),
			)
			return contentState(section, sess), fmt.Errorf("%s: %w", op, err)
		}
		writes++
	}

	if writes == 0 {
		log.Info("nothing to save")
		return contentState(section, sess), nil
	}

	// как и в Save: записи в хранилище, сигнал уходит до ресинка
	if _, err := s.publisher.Publish(ctx); err != nil {
		log.Warn("publish signal failed", sl.Err(err))
	}

	entries, err := s.content.ListBySection(ctx, section)
	if err != nil {
		return ContentState{}, fmt.Errorf("%s: %w", op, err)
	}

	committed := make(map[string]string, len(entries))
	for _, e := range entries {
		committed[e.Key] = e.Value
	}
	sess.committed = committed
	sess.draft = cloneValues(committed)

	log.Info("content saved", slog.Int("writes", writes))

	return contentState(section, sess), nil
}

// DiscardContent сбрасывает черновик контентной сессии
func (s *EditorService) DiscardContent(editorID, section string) (ContentState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.contents[contentKey{editorID: editorID, section: section}]
	if !ok {
		return ContentState{}, ErrNoSession
	}

	sess.draft = cloneValues(sess.committed)

	return contentState(section, sess), nil
}

// HasUnsavedContent сообщает, расходится ли контентный черновик с committed
func (s *EditorService) HasUnsavedContent(editorID, section string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.contents[contentKey{editorID: editorID, section: section}]
	if !ok {
		return false, ErrNoSession
	}

	return contentDirty(sess), nil
}

// CloseContent закрывает контентную сессию, несохраненный черновик теряется
func (s *EditorService) CloseContent(editorID, section string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contents, contentKey{editorID: editorID, section: section})
}

// Discard сбрасывает черновик к committed-снимку
func (s *EditorService) Discard(editorID, category string) (EditorState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionKey{editorID: editorID, category: category}]
	if !ok {
		return EditorState{}, ErrNoSession
	}

	sess.draft = cloneItems(sess.committed)
	sess.draftLayout = sess.committedLayout

	return s.stateLocked(category, sess), nil
}

// HasUnsavedChanges сообщает, расходится ли черновик с committed-снимком.
// Сравнение по значению: правка, возвращенная к исходному виду, сессию
// грязной не делает.
func (s *EditorService) HasUnsavedChanges(editorID, category string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionKey{editorID: editorID, category: category}]
	if !ok {
		return false, ErrNoSession
	}

	return dirty(sess), nil
}

// Close закрывает сессию, несохраненный черновик теряется
func (s *EditorService) Close(editorID, category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionKey{editorID: editorID, category: category})
}

func (s *EditorService) mutate(editorID, category string, fn func(sess *editSession)) (EditorState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionKey{editorID: editorID, category: category}]
	if !ok {
		return EditorState{}, ErrNoSession
	}

	fn(sess)

	return s.stateLocked(category, sess), nil
}

func (s *EditorService) stateLocked(category string, sess *editSession) EditorState {
	return EditorState{
		Category: category,
		Items:    cloneItems(sess.draft),
		Layout:   sess.draftLayout,
		Dirty:    dirty(sess),
	}
}

func dirty(sess *editSession) bool {
	if sess.draftLayout != sess.committedLayout {
		return true
	}
	if len(sess.draft) != len(sess.committed) {
		return true
	}
	for i := range sess.draft {
		if !sess.draft[i].Equal(sess.committed[i]) {
			return true
		}
	}
	return false
}

func contentState(section string, sess *contentSession) ContentState {
	return ContentState{
		Section: section,
		Values:  cloneValues(sess.draft),
		Dirty:   contentDirty(sess),
	}
}

func contentDirty(sess *contentSession) bool {
	if len(sess.draft) != len(sess.committed) {
		return true
	}
	for key, value := range sess.draft {
		if base, ok := sess.committed[key]; !ok || base != value {
			return true
		}
	}
	return false
}

func cloneValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}

func cloneItems(items []models.MediaItem) []models.MediaItem {
	out := make([]models.MediaItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

func indexOf(items []models.MediaItem, id uuid.UUID) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func findByID(items []models.MediaItem, id uuid.UUID) *models.MediaItem {
	if i := indexOf(items, id); i >= 0 {
		return &items[i]
	}
	return nil
}

func removeByID(items []models.MediaItem, id uuid.UUID) []models.MediaItem {
	out := make([]models.MediaItem, 0, len(items))
	for _, item := range items {
		if item.ID == id {
			continue
		}
		out = append(out, item)
	}
	return out
}
