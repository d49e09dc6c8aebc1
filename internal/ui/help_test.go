package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestHelpOverlay(t *testing.T) {
	h := newHarness(t)
	model := h.model(t)

	// Test help toggle on
	assert.False(t, model.showHelp, "Help should be initially hidden")

	// Simulate pressing '?' key
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}
	updatedModel, _ := model.Update(msg)
	m := updatedModel.(Model)
	assert.True(t, m.showHelp, "Help should be shown after pressing '?'")

	// Test help overlay content
	view := m.View()
	assert.Contains(t, view, "Ideas Dashboard Help", "Should contain help title")
	assert.Contains(t, view, "Navigation", "Should contain Navigation section")
	assert.Contains(t, view, "Lists", "Should contain Lists section")
	assert.Contains(t, view, "Projects & Status", "Should contain Projects & Status section")
	assert.Contains(t, view, "General", "Should contain General section")
	assert.Contains(t, view, "Analyze project", "Should show analyze help")
	assert.Contains(t, view, "Press '?' or 'Esc' to close help", "Should show close hint")

	// Keys other than the toggles are ignored while help is open
	updatedModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updatedModel.(Model)
	assert.True(t, m.showHelp)
	assert.Equal(t, TabIdeas, m.tab, "Tab should not change under the overlay")

	// Test help toggle off with '?'
	updatedModel, _ = m.Update(msg)
	m2 := updatedModel.(Model)
	assert.False(t, m2.showHelp, "Help should be hidden after pressing '?' again")

	// Test help toggle off with Esc
	updatedModel, _ = m2.Update(msg)
	m3 := updatedModel.(Model)
	assert.True(t, m3.showHelp)
	updatedModel, _ = m3.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m4 := updatedModel.(Model)
	assert.False(t, m4.showHelp, "Help should be hidden after pressing Esc")
}

func TestHelpRebound(t *testing.T) {
	h := newHarness(t)
	h.cfg.TUI.Keys = map[string]string{"help": "h"}
	m := h.model(t)

	m = send(m, keys("?"))
	assert.False(t, m.showHelp)
	m = send(m, keys("h"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Toggle this help")
}
