package models

import "time"

// ContentEntry произвольный текстовый блок страницы, ключ уникален в рамках
// секции (upsert по паре section+key)
type ContentEntry struct {
	Section   string    `json:"section" db:"section"`
	Key       string    `json:"key" db:"key"`
	Value     string    `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
