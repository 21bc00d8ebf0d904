package ordering

import (
	"sort"

	"vineet_portfolio/internal/domain/models"

	"github.com/google/uuid"
)

// Пакет ordering поддерживает плотный order_index (0..N-1) для элементов
// одной категории. Все операции чистые: вход не мутируется, результат —
// новый слайс с ренормализованными индексами. Операции не знают ничего
// про источник событий (drag-and-drop сводится к паре id).

// Move сдвигает элемент id на одну позицию: dir=-1 вверх, dir=+1 вниз.
// Выход за границы — no-op (вход возвращается скопированным как есть).
func Move(items []models.MediaItem, id uuid.UUID, dir int) []models.MediaItem {
	out := clone(items)
	if dir != -1 && dir != 1 {
		return out
	}

	pos := indexOf(out, id)
	if pos < 0 {
		return out
	}

	target := pos + dir
	if target < 0 || target >= len(out) {
		return out
	}

	out[pos], out[target] = out[target], out[pos]
	return Renormalize(out)
}

// Reposition вынимает dragged и вставляет его перед исходной позицией
// target. Отсутствующие или совпадающие id — no-op.
func Reposition(items []models.MediaItem, draggedID, targetID uuid.UUID) []models.MediaItem {
	out := clone(items)
	if draggedID == targetID {
		return out
	}

	from := indexOf(out, draggedID)
	to := indexOf(out, targetID)
	if from < 0 || to < 0 {
		return out
	}

	dragged := out[from]
	out = append(out[:from], out[from+1:]...)

	// позиция цели после изъятия dragged
	if from < to {
		to--
	}

	out = append(out, models.MediaItem{})
	copy(out[to+1:], out[to:])
	out[to] = dragged

	return Renormalize(out)
}

// SortBy возвращает новую последовательность, стабильно отсортированную
// компаратором, с ренормализованными индексами
func SortBy(items []models.MediaItem, less func(a, b models.MediaItem) bool) []models.MediaItem {
	out := clone(items)
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return Renormalize(out)
}

// Reverse разворачивает последовательность
func Reverse(items []models.MediaItem) []models.MediaItem {
	out := clone(items)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return Renormalize(out)
}

// Renormalize проставляет order_index строго по позиции в слайсе
func Renormalize(items []models.MediaItem) []models.MediaItem {
	for i := range items {
		items[i].OrderIndex = i
	}
	return items
}

func indexOf(items []models.MediaItem, id uuid.UUID) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func clone(items []models.MediaItem) []models.MediaItem {
	out := make([]models.MediaItem, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}
