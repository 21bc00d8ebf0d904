package grouping

import (
	"fmt"
	"sort"
	"strings"

	"vineet_portfolio/internal/domain/models"

	"github.com/google/uuid"
)

// UnsectionedGroupID id хвостовой группы для элементов без секции или с
// висячей ссылкой на удалённую секцию. Рендерится без заголовка.
const UnsectionedGroupID = "unsectioned"

// Group один блок раскладки "grouped". Title == nil — группа без заголовка.
type Group struct {
	ID    string             `json:"id"`
	Title *string            `json:"title"`
	Items []models.MediaItem `json:"items"`
}

// GroupedView результат группировки. OrderedItems — сквозная
// последовательность всех элементов в порядке групп: индекс i в ней
// соответствует элементу, который видимая раскладка рендерит на позиции i
// (пространство индексов лайтбокса).
type GroupedView struct {
	Groups       []Group            `json:"groups"`
	OrderedItems []models.MediaItem `json:"ordered_items"`
}

// Grouping пересчитывается из items/sections на каждый рендер и не держит
// собственного состояния.
//
// Build разбивает элементы категории на группы для раскладки "grouped":
// по секциям, если в категории есть хотя бы одна секция, иначе по первому
// тегу каждого элемента.
func Build(items []models.MediaItem, sections []models.Section) GroupedView {
	if len(sections) > 0 {
		return groupBySections(items, sections)
	}
	return groupByTags(items)
}

func groupBySections(items []models.MediaItem, sections []models.Section) GroupedView {
	ordered := make([]models.Section, len(sections))
	copy(ordered, sections)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})

	known := make(map[uuid.UUID]struct{}, len(ordered))
	for _, s := range ordered {
		known[s.ID] = struct{}{}
	}

	bySection := make(map[uuid.UUID][]models.MediaItem)
	var loose []models.MediaItem
	for _, it := range items {
		// висячая ссылка на удалённую секцию — это не ошибка,
		// элемент уходит в хвостовую группу
		if it.SectionID != nil {
			if _, ok := known[*it.SectionID]; ok {
				bySection[*it.SectionID] = append(bySection[*it.SectionID], it)
				continue
			}
		}
		loose = append(loose, it)
	}

	ids := newIDSet()
	var view GroupedView
	for _, s := range ordered {
		members := bySection[s.ID]
		if len(members) == 0 {
			// пустые секции не рендерятся
			continue
		}
		title := s.Name
		view.Groups = append(view.Groups, Group{
			ID:    ids.claim(Slugify(s.Name)),
			Title: &title,
			Items: sortByOrderIndex(members),
		})
	}

	if len(loose) > 0 {
		view.Groups = append(view.Groups, Group{
			ID:    ids.claim(UnsectionedGroupID),
			Title: nil,
			Items: sortByOrderIndex(loose),
		})
	}

	return flatten(view)
}

func groupByTags(items []models.MediaItem) GroupedView {
	type bucket struct {
		title string // оригинальное написание первого встреченного тега
		items []models.MediaItem
	}

	var order []string // ключи в порядке первого появления
	buckets := make(map[string]*bucket)

	for _, it := range items {
		key := UntaggedGroupID
		title := ""
		if len(it.Tags) > 0 {
			title = it.Tags[0]
			key = strings.ToLower(title)
		}

		b, ok := buckets[key]
		if !ok {
			b = &bucket{title: title}
			buckets[key] = b
			order = append(order, key)
		}
		b.items = append(b.items, it)
	}

	ids := newIDSet()
	var view GroupedView
	for _, key := range order {
		b := buckets[key]
		g := Group{Items: b.items}
		if key == UntaggedGroupID && b.title == "" {
			g.ID = ids.claim(UntaggedGroupID)
		} else {
			title := b.title
			g.ID = ids.claim(Slugify(b.title))
			g.Title = &title
		}
		view.Groups = append(view.Groups, g)
	}

	return flatten(view)
}

func flatten(view GroupedView) GroupedView {
	for _, g := range view.Groups {
		view.OrderedItems = append(view.OrderedItems, g.Items...)
	}
	return view
}

func sortByOrderIndex(items []models.MediaItem) []models.MediaItem {
	out := make([]models.MediaItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderIndex < out[j].OrderIndex
	})
	return out
}

// idSet выдаёт уникальные id групп в пределах страницы: коллизия слага
// получает числовой суффикс (x, x-2, x-3, ...)
type idSet struct {
	seen map[string]int
}

func newIDSet() *idSet {
	return &idSet{seen: make(map[string]int)}
}

func (s *idSet) claim(base string) string {
	if _, taken := s.seen[base]; !taken {
		s.seen[base] = 1
		return base
	}
	// суффикс и сам может быть занят: "x-2" мог прийти как свой base
	for n := s.seen[base] + 1; ; n++ {
		id := fmt.Sprintf("%s-%d", base, n)
		if _, taken := s.seen[id]; taken {
			continue
		}
		s.seen[base] = n
		s.seen[id] = 1
		return id
	}
}
