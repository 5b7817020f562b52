package listview

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(item int, selected bool) string {
	if selected {
		return fmt.Sprintf("> %d", item)
	}
	return fmt.Sprintf("  %d", item)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCursorList_Navigation(t *testing.T) {
	m := NewCursorList([]int{10, 20, 30, 40, 50}, 2, plain)

	assert.True(t, m.HandleKey(tea.KeyMsg{Type: tea.KeyDown}))
	assert.Equal(t, 1, m.Selected())

	assert.True(t, m.HandleKey(runes("j")))
	assert.Equal(t, 2, m.Selected())
	assert.Equal(t, 1, m.Offset(), "viewport follows the cursor")
	assert.Equal(t, "  20\n> 30", m.View())

	assert.True(t, m.HandleKey(tea.KeyMsg{Type: tea.KeyEnd}))
	assert.Equal(t, 4, m.Selected())
	assert.True(t, m.HandleKey(tea.KeyMsg{Type: tea.KeyDown}), "moving past the end is a no-op")
	assert.Equal(t, 4, m.Selected())

	assert.True(t, m.HandleKey(tea.KeyMsg{Type: tea.KeyHome}))
	assert.Equal(t, 0, m.Selected())
	assert.Equal(t, 0, m.Offset())

	assert.True(t, m.HandleKey(runes("k")))
	assert.Equal(t, 0, m.Selected())

	assert.False(t, m.HandleKey(runes("x")))
}

func TestCursorList_Empty(t *testing.T) {
	m := NewCursorList[int](nil, 5, plain)
	assert.False(t, m.HandleKey(tea.KeyMsg{Type: tea.KeyDown}))
	assert.Nil(t, m.SelectedItem())
	assert.Empty(t, m.View())
}

func TestCursorList_SetItemsResetsCursor(t *testing.T) {
	m := NewCursorList([]int{1, 2, 3}, 0, plain)
	m.HandleKey(tea.KeyMsg{Type: tea.KeyEnd})

	m.SetItems([]int{7, 8})
	assert.Equal(t, 0, m.Selected())
	require.NotNil(t, m.SelectedItem())
	assert.Equal(t, 7, *m.SelectedItem())
	assert.Equal(t, "> 7\n  8", m.View())
	assert.Equal(t, 2, m.Len())
}

func TestCursorList_SetHeight(t *testing.T) {
	m := NewCursorList([]int{1, 2, 3, 4}, 0, plain)
	m.HandleKey(tea.KeyMsg{Type: tea.KeyEnd})
	m.SetHeight(2)
	assert.Equal(t, 2, m.Offset())
	assert.Equal(t, "  3\n> 4", m.View())
}
