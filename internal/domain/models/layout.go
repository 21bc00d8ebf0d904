package models

type LayoutKind string

const (
	LayoutGrid    LayoutKind = "grid"
	LayoutMasonry LayoutKind = "masonry"
	LayoutCollage LayoutKind = "collage"
	LayoutGrouped LayoutKind = "grouped"
)

// ParseLayoutKind единственная точка разбора сохранённого значения раскладки:
// неизвестная или пустая строка деградирует в grid, а не в ошибку.
func ParseLayoutKind(s string) LayoutKind {
	switch LayoutKind(s) {
	case LayoutGrid, LayoutMasonry, LayoutCollage, LayoutGrouped:
		return LayoutKind(s)
	default:
		return LayoutGrid
	}
}

// LayoutSetting хранит выбранную раскладку категории (не более одной записи
// на категорию, upsert по category)
type LayoutSetting struct {
	Category string     `json:"category" db:"category"`
	Kind     LayoutKind `json:"kind" db:"kind"`
}

// DefaultLayout возвращает раскладку по умолчанию для категории
func DefaultLayout(category string) LayoutSetting {
	return LayoutSetting{Category: category, Kind: LayoutGrid}
}
