package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// renderHelpOverlay renders the full key reference
func (m Model) renderHelpOverlay() string {
	km := m.keyMap
	var sections []string

	sections = append(sections, m.styles.Title.Render("💡 Ideas Dashboard Help"), "")

	sections = append(sections, m.helpSection("Navigation",
		m.renderBinding(km.Up)+" - Move up",
		m.renderBinding(km.Down)+" - Move down",
		m.renderBinding(km.NextTab)+" - Next tab (detail: switch pane)",
		m.renderBinding(km.PrevTab)+" - Previous tab",
		m.renderBinding(km.Open)+" - Open selected item",
		m.renderBinding(km.Back)+" - Back / clear query",
		m.renderBinding(km.HalfDown)+"/"+m.renderBinding(km.HalfUp)+" - Scroll 10 lines",
		m.renderBinding(km.Top)+"/"+m.renderBinding(km.Bottom)+" - Top / bottom",
	)...)

	sections = append(sections, m.helpSection("Lists",
		m.renderBinding(km.Sort)+" - Cycle sort mode",
		m.renderBinding(km.Filter)+" - Cycle idea status filter",
		m.renderBinding(km.Search)+" - Search this tab",
		m.renderBinding(km.GlobalSearch)+" - Search everything",
	)...)

	sections = append(sections, m.helpSection("Projects & Status",
		m.renderBinding(km.Analyze)+" - Analyze project",
		m.renderBinding(km.DeepAnalyze)+" - Deep analyze project",
		m.renderBinding(km.Refresh)+" - Refresh inventory / status / reload tab",
	)...)

	sections = append(sections, m.helpSection("Actions",
		m.renderBinding(km.Edit)+" - Edit idea README",
		m.renderBinding(km.OpenFolder)+" - Open folder",
		m.renderBinding(km.CopyPath)+" - Copy path",
	)...)

	sections = append(sections, m.helpSection("General",
		m.renderBinding(km.Help)+" - Toggle this help",
		m.renderBinding(km.Quit)+" - Quit and save view state",
		m.renderBinding(km.ForceQuit)+" - Quit",
	)...)

	sections = append(sections, m.styles.Help.Render("Press '?' or 'Esc' to close help"))

	content := strings.Join(sections, "\n")

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 2).
		Width(min(80, max(20, m.width-4))).
		MaxHeight(max(5, m.height-4)).
		Align(lipgloss.Center)

	backdrop := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	return backdrop.Render(overlayStyle.Render(content))
}

func (m Model) helpSection(title string, lines ...string) []string {
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return []string{m.styles.Subtitle.Render(title), strings.Join(lines, "\n"), ""}
}

// renderBinding formats a key binding for display
func (m Model) renderBinding(binding key.Binding) string {
	keys := binding.Keys()
	if len(keys) == 0 {
		return ""
	}
	formatted := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		formatted[i] = m.styles.Key.Render(k)
	}
	return strings.Join(formatted, "/")
}
