package dto

import (
	"time"

	"github.com/google/uuid"
)

// GalleryItem один элемент собранной галереи: ссылка плюс результат
// классификации её носителя
type GalleryItem struct {
	ID            uuid.UUID  `json:"id"`              // Уникальный идентификатор элемента
	URL           string     `json:"url"`             // Исходная ссылка на носитель
	Title         string     `json:"title,omitempty"` // Подпись элемента
	Description   string     `json:"description,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	SectionID     *uuid.UUID `json:"section_id,omitempty"`
	OrderIndex    int        `json:"order_index"`
	Kind          string     `json:"kind"`                 // image | native_video | embed
	Provider      string     `json:"provider,omitempty"`   // youtube | vimeo | instagram
	EmbedURL      string     `json:"embed_url,omitempty"`  // iframe-ссылка фонового пресета
	PlayerURL     string     `json:"player_url,omitempty"` // iframe-ссылка пресета плеера (лайтбокс)
	LightboxIndex int        `json:"lightbox_index"`       // Позиция в сквозном пространстве лайтбокса
}

// GallerySlot позиция элемента в сеточной раскладке
type GallerySlot struct {
	Column int     `json:"column"`
	Span   float64 `json:"span"`
}

// GalleryGroup блок раскладки "grouped"
type GalleryGroup struct {
	ID    string        `json:"id"`
	Title *string       `json:"title,omitempty"` // nil — группа рендерится без заголовка
	Items []GalleryItem `json:"items"`
}

// GalleryView собранная галерея категории: раскладка, элементы и, для
// "grouped", разбиение по группам. Items всегда перечислены в сквозном
// порядке лайтбокса.
type GalleryView struct {
	Category    string         `json:"category"`
	Layout      string         `json:"layout"`
	Items       []GalleryItem  `json:"items"`
	Slots       []GallerySlot  `json:"slots,omitempty"`
	Groups      []GalleryGroup `json:"groups,omitempty"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// ContentResponse текстовые блоки секции страницы
type ContentResponse struct {
	Section string            `json:"section"`
	Entries map[string]string `json:"entries"`
}

// PublishStateResponse последний штамп публикации для поллинга клиентами
type PublishStateResponse struct {
	Stamp string `json:"stamp"` // пустая строка — публикаций еще не было
}
