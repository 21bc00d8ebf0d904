package models

import (
	"time"

	"github.com/google/uuid"
)

// Section представляет именованную секцию галереи в рамках одной категории.
// Удаление секции не каскадирует на элементы: их section_id становится
// "висячей" ссылкой и трактуется как отсутствие секции.
type Section struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Category   string    `json:"category" db:"category"`
	Name       string    `json:"name" db:"name"`
	OrderIndex int       `json:"order_index" db:"order_index"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// NewSection создает новую секцию
func NewSection(category, name string, orderIndex int) *Section {
	return &Section{
		ID:         uuid.New(),
		Category:   category,
		Name:       name,
		OrderIndex: orderIndex,
		CreatedAt:  time.Now().UTC(),
	}
}
