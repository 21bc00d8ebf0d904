package dto

import (
	"mime/multipart"

	"github.com/google/uuid"
)

// MediaUploadInput загрузка файла в блоб-хранилище с созданием элемента
// галереи в хвосте категории
type MediaUploadInput struct {
	UploaderID uuid.UUID             `json:"uploader_id" validate:"required"`
	File       *multipart.FileHeader `json:"-" form:"file" validate:"required"`
	Category   string                `json:"category" form:"category" validate:"required"`
	Title      string                `json:"title" form:"title" validate:"max=255"`
	Tags       []string              `json:"tags" form:"tags"`
}

// MediaUploadResponse созданный элемент галереи
type MediaUploadResponse struct {
	ItemID     uuid.UUID `json:"item_id"`
	URL        string    `json:"url"` // публичный URL сохраненного файла
	OrderIndex int       `json:"order_index"`
	FileSize   int64     `json:"file_size"`
}
