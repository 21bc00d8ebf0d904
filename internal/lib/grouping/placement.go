package grouping

import "vineet_portfolio/internal/domain/models"

// Slot позиция элемента в раскладке: колонка и относительный масштаб
// ячейки. Конкретная разметка — забота клиента, движок лишь раскладывает
// индексы по слотам.
type Slot struct {
	Column int     `json:"column"`
	Span   float64 `json:"span"`
}

// PlacementFunc чистая стратегия размещения: индекс элемента → слот.
// grid/masonry/collage различаются только этой функцией; "grouped"
// меняет форму данных и обрабатывается Build.
type PlacementFunc func(index int) Slot

// PlacementFor возвращает стратегию размещения для раскладки. Для
// LayoutGrouped возвращает nil: группировка не описывается слотами.
func PlacementFor(kind models.LayoutKind) PlacementFunc {
	switch kind {
	case models.LayoutMasonry:
		return masonryPlacement
	case models.LayoutCollage:
		return collagePlacement
	case models.LayoutGrouped:
		return nil
	default:
		return gridPlacement
	}
}

// PlaceAll прогоняет стратегию по всем индексам
func PlaceAll(kind models.LayoutKind, n int) []Slot {
	place := PlacementFor(kind)
	if place == nil || n <= 0 {
		return nil
	}
	slots := make([]Slot, n)
	for i := 0; i < n; i++ {
		slots[i] = place(i)
	}
	return slots
}

// три равные колонки, порядок строками
func gridPlacement(index int) Slot {
	return Slot{Column: index % 3, Span: 1}
}

// три колонки, заполнение по столбцам сверху вниз
func masonryPlacement(index int) Slot {
	return Slot{Column: index % 3, Span: 1}
}

// повторяющийся узор из широкой и двух узких ячеек
func collagePlacement(index int) Slot {
	switch index % 3 {
	case 0:
		return Slot{Column: 0, Span: 2}
	case 1:
		return Slot{Column: 1, Span: 1}
	default:
		return Slot{Column: 2, Span: 1}
	}
}
