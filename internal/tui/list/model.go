package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one row. selected marks the cursor row.
type RenderFunc[T any] func(item T, selected bool) string

// CursorList tracks a cursor over items and scrolls a fixed-height viewport
// to keep it visible.
type CursorList[T any] struct {
	items      []T
	renderFunc RenderFunc[T]
	selected   int
	offset     int
	height     int
}

// NewCursorList creates a list showing at most height rows. A non-positive
// height shows every row.
func NewCursorList[T any](items []T, height int, renderFunc RenderFunc[T]) *CursorList[T] {
	return &CursorList[T]{
		items:      items,
		renderFunc: renderFunc,
		height:     height,
	}
}

// SetItems replaces the rows and moves the cursor to the first one.
func (m *CursorList[T]) SetItems(items []T) {
	m.items = items
	m.selected = 0
	m.offset = 0
}

// SetHeight changes the viewport height.
func (m *CursorList[T]) SetHeight(height int) {
	m.height = height
	m.scrollToCursor()
}

// HandleKey moves the cursor for up/down, j/k, home and end. It reports
// whether the key was consumed.
//
//nolint:exhaustive // Only navigation keys are handled.
func (m *CursorList[T]) HandleKey(msg tea.KeyMsg) bool {
	if len(m.items) == 0 {
		return false
	}

	switch msg.Type {
	case tea.KeyUp:
		m.move(-1)
	case tea.KeyDown:
		m.move(1)
	case tea.KeyHome:
		m.selected = 0
	case tea.KeyEnd:
		m.selected = len(m.items) - 1
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "k":
			m.move(-1)
		case "j":
			m.move(1)
		default:
			return false
		}
	default:
		return false
	}

	m.scrollToCursor()
	return true
}

func (m *CursorList[T]) move(delta int) {
	next := m.selected + delta
	if next < 0 || next >= len(m.items) {
		return
	}
	m.selected = next
}

func (m *CursorList[T]) scrollToCursor() {
	if m.height <= 0 {
		m.offset = 0
		return
	}
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.height {
		m.offset = m.selected - m.height + 1
	}
}

// View renders the rows inside the viewport.
func (m *CursorList[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}

	end := len(m.items)
	if m.height > 0 && m.offset+m.height < end {
		end = m.offset + m.height
	}

	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderFunc(m.items[i], i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// Len returns the number of rows.
func (m *CursorList[T]) Len() int {
	return len(m.items)
}

// Selected returns the cursor index.
func (m *CursorList[T]) Selected() int {
	return m.selected
}

// SelectedItem returns the row under the cursor, or nil for an empty list.
func (m *CursorList[T]) SelectedItem() *T {
	if len(m.items) == 0 {
		return nil
	}
	return &m.items[m.selected]
}

// Offset returns the index of the first rendered row.
func (m *CursorList[T]) Offset() int {
	return m.offset
}
