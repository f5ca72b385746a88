package service

import (
	"errors"
	"sort"
)

// ErrInsufficientSelection возвращается при попытке сравнить менее двух
// товаров. Текст пригоден для прямого показа пользователю.
var ErrInsufficientSelection = errors.New("Select at least 2 products to compare")

// SelectionSet - набор выбранных товаров поверх пагинированного списка.
// Членство не зависит от того, какая страница сейчас загружена.
type SelectionSet struct {
	active bool
	ids    map[int64]struct{}
}

func NewSelectionSet() *SelectionSet {
	return &SelectionSet{ids: make(map[int64]struct{})}
}

// EnterSelectionMode включает режим выбора
func (s *SelectionSet) EnterSelectionMode() {
	s.active = true
}

// ExitSelectionMode выключает режим выбора и всегда очищает набор
func (s *SelectionSet) ExitSelectionMode() {
	s.active = false
	s.Clear()
}

func (s *SelectionSet) Active() bool {
	return s.active
}

// Toggle переключает членство id: добавляет отсутствующий, убирает
// присутствующий. Опустевший набор режим выбора не выключает.
func (s *SelectionSet) Toggle(id int64) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

func (s *SelectionSet) Contains(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *SelectionSet) Count() int {
	return len(s.ids)
}

// IDs возвращает выбранные id в возрастающем порядке.
// Детерминированный порядок нужен для стабильных запросов сравнения.
func (s *SelectionSet) IDs() []int64 {
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *SelectionSet) Clear() {
	s.ids = make(map[int64]struct{})
}
