package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tags хранится в БД как JSONB-текст
type Tags []string

// MediaItem представляет один элемент галереи
type MediaItem struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Category    string     `json:"category" db:"category"`
	URL         string     `json:"url" db:"url"`
	Title       string     `json:"title,omitempty" db:"title"`
	Description string     `json:"description,omitempty" db:"description"`
	Tags        Tags       `json:"tags,omitempty" db:"tags"`
	SectionID   *uuid.UUID `json:"section_id,omitempty" db:"section_id"`
	OrderIndex  int        `json:"order_index" db:"order_index"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Value реализует интерфейс driver.Valuer для сериализации Tags в JSONB
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

// Scan реализует интерфейс sql.Scanner для десериализации JSONB в Tags.
// Единственная точка разбора сохранённой формы: битые данные деградируют
// в nil, а не в ошибку.
func (t *Tags) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		*t = nil
		return nil
	}

	var parsed []string
	if err := json.Unmarshal(raw, &parsed); err != nil {
		*t = nil
		return nil
	}
	*t = parsed
	return nil
}

// NewMediaItem создает новый элемент галереи с заполненными обязательными полями.
// OrderIndex назначает репозиторий при вставке (текущий размер категории).
func NewMediaItem(category, url string) *MediaItem {
	return &MediaItem{
		ID:        uuid.New(),
		Category:  category,
		URL:       url,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

// Clone возвращает глубокую копию элемента: draft и committed никогда
// не делят память.
func (m MediaItem) Clone() MediaItem {
	cp := m
	if m.Tags != nil {
		cp.Tags = append(Tags(nil), m.Tags...)
	}
	if m.SectionID != nil {
		id := *m.SectionID
		cp.SectionID = &id
	}
	return cp
}

// Equal сравнивает значимые поля, игнорируя волатильные таймстампы
func (m MediaItem) Equal(other MediaItem) bool {
	if m.ID != other.ID ||
		m.Category != other.Category ||
		m.URL != other.URL ||
		m.Title != other.Title ||
		m.Description != other.Description ||
		m.OrderIndex != other.OrderIndex {
		return false
	}
	if (m.SectionID == nil) != (other.SectionID == nil) {
		return false
	}
	if m.SectionID != nil && *m.SectionID != *other.SectionID {
		return false
	}
	if len(m.Tags) != len(other.Tags) {
		return false
	}
	for i := range m.Tags {
		if m.Tags[i] != other.Tags[i] {
			return false
		}
	}
	return true
}

// Validate проверяет корректность данных элемента галереи
func (m *MediaItem) Validate() error {
	var validationErrors []string

	if m.Category == "" {
		validationErrors = append(validationErrors, "category is required")
	}
	if m.URL == "" {
		validationErrors = append(validationErrors, "url is required")
	}
	if len(m.Title) > 255 {
		validationErrors = append(validationErrors, "title must be 255 characters or less")
	}
	if m.OrderIndex < 0 {
		validationErrors = append(validationErrors, "order index must not be negative")
	}

	if len(validationErrors) > 0 {
		return &MediaItemValidationError{Errors: validationErrors}
	}

	return nil
}

// MediaItemValidationError кастомный тип ошибки для валидации
type MediaItemValidationError struct {
	Errors []string
}

func (e *MediaItemValidationError) Error() string {
	return fmt.Sprintf("media item validation failed: %s", strings.Join(e.Errors, "; "))
}

// IsMediaItemValidationError проверяет, является ли ошибка ошибкой валидации
func IsMediaItemValidationError(err error) bool {
	_, ok := err.(*MediaItemValidationError)
	return ok
}
