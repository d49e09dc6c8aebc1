package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestNewKeyMap(t *testing.T) {
	km := NewKeyMap(map[string]string{
		"analyze": "x",
		"unknown": "z",
		"refresh": "",
	})

	assert.True(t, key.Matches(keys("x"), km.Analyze))
	assert.False(t, key.Matches(keys("a"), km.Analyze))
	assert.Equal(t, "analyze project", km.Analyze.Help().Desc)
	assert.True(t, key.Matches(keys("r"), km.Refresh), "empty override keeps the default")
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.ForceQuit))
}

func TestTabCycle(t *testing.T) {
	assert.Equal(t, TabProjects, TabIdeas.Next())
	assert.Equal(t, TabIdeas, TabStatus.Next())
	assert.Equal(t, TabStatus, TabIdeas.Prev())
	assert.Equal(t, sectionRecent, sectionUntracked.prev())
	assert.Equal(t, sectionUntracked, sectionRecent.next())
}
