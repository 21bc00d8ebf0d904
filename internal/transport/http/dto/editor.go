package dto

import "github.com/google/uuid"

// MoveItemRequest сдвиг элемента на одну позицию
type MoveItemRequest struct {
	ItemID    uuid.UUID `json:"item_id" validate:"required"`
	Direction string    `json:"direction" validate:"required,oneof=up down"`
}

// RepositionItemRequest перенос dragged перед target (drag-and-drop)
type RepositionItemRequest struct {
	DraggedID uuid.UUID `json:"dragged_id" validate:"required"`
	TargetID  uuid.UUID `json:"target_id" validate:"required"`
}

// SortItemsRequest пересортировка черновика
type SortItemsRequest struct {
	Field string `json:"field" validate:"required,oneof=created_at title"`
	Desc  bool   `json:"desc"`
}

// UpdateItemRequest правка полей элемента черновика
type UpdateItemRequest struct {
	ItemID      uuid.UUID  `json:"item_id" validate:"required"`
	URL         string     `json:"url" validate:"required"`
	Title       string     `json:"title" validate:"max=255"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	SectionID   *uuid.UUID `json:"section_id"`
}

// AddItemRequest добавление элемента в хвост черновика по URL
type AddItemRequest struct {
	URL       string     `json:"url" validate:"required"`
	Title     string     `json:"title" validate:"max=255"`
	Tags      []string   `json:"tags"`
	SectionID *uuid.UUID `json:"section_id"`
}

// SetContentValueRequest правка значения ключа в контентном черновике
type SetContentValueRequest struct {
	Key   string `json:"key" validate:"required,max=255"`
	Value string `json:"value"`
}

// ContentStateResponse снимок контентной сессии
type ContentStateResponse struct {
	Section string            `json:"section"`
	Values  map[string]string `json:"values"`
	Dirty   bool              `json:"dirty"`
}

// SetLayoutRequest смена раскладки категории
type SetLayoutRequest struct {
	Kind string `json:"kind" validate:"required,oneof=grid masonry collage grouped"`
}

// CreateSectionRequest новая секция категории
type CreateSectionRequest struct {
	Name       string `json:"name" validate:"required,max=255"`
	OrderIndex int    `json:"order_index" validate:"min=0"`
}

// EditorStateResponse снимок черновика сессии
type EditorStateResponse struct {
	Category string       `json:"category"`
	Layout   string       `json:"layout"`
	Items    []EditorItem `json:"items"`
	Dirty    bool         `json:"dirty"`
}

// EditorItem строка черновика без производных полей классификации
type EditorItem struct {
	ID          uuid.UUID  `json:"id"`
	URL         string     `json:"url"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	SectionID   *uuid.UUID `json:"section_id,omitempty"`
	OrderIndex  int        `json:"order_index"`
}

// DirtyResponse ответ на запрос "есть ли несохраненные правки" (охранный
// запрос перед закрытием редактора)
type DirtyResponse struct {
	Dirty bool `json:"dirty"`
}
