package widgets

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"repohub/internal/rx"
)

const defaultVisibleRows = 10

// TableSource tracks the cursor and viewport over a list and reports when
// the user scrolls close to its end.
type TableSource[T any] struct {
	items     *rx.List[T]
	keys      ListKeyMap
	threshold int

	cursor  int
	offset  int
	visible int

	requestMore *rx.Subject[rx.Unit]
	selected    *rx.Subject[T]
}

// NewTableSource creates a source over items. RequestMore fires once the
// viewport's last row is within threshold rows of the end.
func NewTableSource[T any](items *rx.List[T], threshold int) *TableSource[T] {
	if threshold < 0 {
		threshold = 0
	}
	return &TableSource[T]{
		items:       items,
		keys:        DefaultListKeyMap(),
		threshold:   threshold,
		visible:     defaultVisibleRows,
		requestMore: rx.NewSubject[rx.Unit](),
		selected:    rx.NewSubject[T](),
	}
}

// Keys returns the bindings used by HandleKey
func (s *TableSource[T]) Keys() ListKeyMap {
	return s.keys
}

// Len returns the number of rows
func (s *TableSource[T]) Len() int {
	return s.items.Len()
}

// Cursor returns the highlighted row
func (s *TableSource[T]) Cursor() int {
	s.clamp()
	return s.cursor
}

// SetVisibleRows sets how many rows fit in the viewport
func (s *TableSource[T]) SetVisibleRows(n int) {
	if n < 1 {
		n = 1
	}
	s.visible = n
	s.clamp()
}

// VisibleRange returns the half-open range of rows in the viewport
func (s *TableSource[T]) VisibleRange() (int, int) {
	s.clamp()
	end := s.offset + s.visible
	if n := s.items.Len(); end > n {
		end = n
	}
	return s.offset, end
}

// LastItemVisible reports whether the final row is inside the viewport
func (s *TableSource[T]) LastItemVisible() bool {
	n := s.items.Len()
	if n == 0 {
		return false
	}
	_, end := s.VisibleRange()
	return end == n
}

// NearEnd reports whether the viewport is within the threshold of the end
func (s *TableSource[T]) NearEnd() bool {
	n := s.items.Len()
	if n == 0 {
		return false
	}
	_, end := s.VisibleRange()
	return end >= n-s.threshold
}

// RequestMore fires whenever a cursor move leaves the viewport near the end
func (s *TableSource[T]) RequestMore() rx.Observable[rx.Unit] {
	return s.requestMore
}

// Selected fires with the highlighted row when the user opens it
func (s *TableSource[T]) Selected() rx.Observable[T] {
	return s.selected
}

// Move shifts the cursor by delta rows
func (s *TableSource[T]) Move(delta int) {
	s.MoveTo(s.Cursor() + delta)
}

// MoveTo places the cursor on row i, scrolling as needed
func (s *TableSource[T]) MoveTo(i int) {
	s.cursor = i
	s.clamp()
	if s.NearEnd() {
		s.requestMore.Next(rx.Unit{})
	}
}

// Select emits the highlighted row
func (s *TableSource[T]) Select() {
	if item, ok := s.items.At(s.Cursor()); ok {
		s.selected.Next(item)
	}
}

// HandleKey applies a navigation key and reports whether it was consumed
func (s *TableSource[T]) HandleKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, s.keys.Up):
		s.Move(-1)
	case key.Matches(msg, s.keys.Down):
		s.Move(1)
	case key.Matches(msg, s.keys.PageUp):
		s.Move(-s.visible)
	case key.Matches(msg, s.keys.PageDown):
		s.Move(s.visible)
	case key.Matches(msg, s.keys.Top):
		s.MoveTo(0)
	case key.Matches(msg, s.keys.Bottom):
		s.MoveTo(s.items.Len() - 1)
	case key.Matches(msg, s.keys.Select):
		s.Select()
	default:
		return false
	}
	return true
}

// clamp keeps cursor and offset valid after the list shrank
func (s *TableSource[T]) clamp() {
	n := s.items.Len()
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
	maxOffset := n - s.visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.offset > maxOffset {
		s.offset = maxOffset
	}
	if s.offset > s.cursor {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+s.visible {
		s.offset = s.cursor - s.visible + 1
	}
	if s.offset < 0 {
		s.offset = 0
	}
}
