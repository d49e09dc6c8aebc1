package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	headerHeight     = 3
	statusBarHeight  = 2
	minContentHeight = 5

	// title line and footer around a pager
	pagerChrome = 2
	// title, pane tabs and footer around the project detail panes
	detailChrome = 3
)

// LayoutDimensions holds the calculated dimensions of the screen regions
type LayoutDimensions struct {
	Width  int
	Height int

	HeaderHeight int

	ContentWidth  int
	ContentHeight int

	StatusBarHeight int
}

// calculateLayout computes the layout dimensions based on terminal size
func (m Model) calculateLayout() LayoutDimensions {
	contentHeight := m.height - headerHeight - statusBarHeight
	if contentHeight < minContentHeight {
		contentHeight = minContentHeight
	}
	return LayoutDimensions{
		Width:           m.width,
		Height:          m.height,
		HeaderHeight:    headerHeight,
		ContentWidth:    m.width,
		ContentHeight:   contentHeight,
		StatusBarHeight: statusBarHeight,
	}
}

// updateViewportSizes updates the viewport sizes based on current layout
func (m *Model) updateViewportSizes() {
	layout := m.calculateLayout()

	m.pager.Width = layout.ContentWidth
	m.pager.Height = max(1, layout.ContentHeight-pagerChrome)

	m.info.Width = layout.ContentWidth
	m.info.Height = max(1, layout.ContentHeight-detailChrome)
	m.analysis.Width = layout.ContentWidth
	m.analysis.Height = m.info.Height

	m.helpModel.Width = m.width
	if m.view == ViewProjectDetail {
		m.refreshProjectInfo()
		m.setAnalysisContent(m.analysisRaw)
	}
}

// renderHeader renders the title with per-tab counts, the tab bar and a rule
func (m Model) renderHeader() string {
	title := m.styles.Title.Render("💡 Ideas Dashboard")
	counts := m.styles.Subtle.Render(m.tabStats())
	titleLine := m.styles.Header.Width(m.width).Render(title + "  " + counts)

	var tabs []string
	for _, t := range allTabs {
		label := t.Label()
		if n, ok := m.tabCount(t); ok {
			label = fmt.Sprintf("%s (%d)", label, n)
		}
		if t == m.tab {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(label))
		}
	}
	tabLine := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	rule := m.styles.Subtle.Render(strings.Repeat("─", max(0, m.width)))
	return titleLine + "\n" + tabLine + "\n" + rule
}

// tabCount is the number of visible items of t; the status tab has none
func (m Model) tabCount(t Tab) (int, bool) {
	switch t {
	case TabIdeas:
		return m.ideas.list.VisibleLen(), true
	case TabProjects:
		return m.projects.list.VisibleLen(), true
	case TabPlans:
		return m.plans.list.VisibleLen(), true
	case TabDotfiles:
		return m.dotfiles.list.VisibleLen(), true
	case TabStatus:
	}
	return 0, false
}

// tabStats summarizes the collection behind the current tab
func (m Model) tabStats() string {
	switch m.tab {
	case TabIdeas:
		var active, dormant, questions int
		for _, i := range m.ideas.list.Items() {
			switch i.Status {
			case "active":
				active++
			case "dormant":
				dormant++
			}
			questions += len(i.OpenQuestions)
		}
		return fmt.Sprintf("%d ideas │ %d active │ %d dormant │ %d open questions",
			m.ideas.list.Len(), active, dormant, questions)
	case TabProjects:
		analyzed := m.projects.analyzedCount()
		return fmt.Sprintf("%d projects │ %d analyzed │ %d pending",
			m.projects.list.Len(), analyzed, m.projects.list.Len()-analyzed)
	case TabPlans:
		return fmt.Sprintf("%d plans", m.plans.list.Len())
	case TabDotfiles:
		return fmt.Sprintf("%d items", m.dotfiles.list.Len())
	case TabStatus:
		r := m.status.report
		return fmt.Sprintf("%d new │ %d stale │ %d recent (%dd)",
			len(r.Untracked), len(r.Stale), len(r.Recent), m.cfg.TUI.RecentDays)
	}
	return ""
}

// renderStatusBar renders the search prompt or the current message above
// the keyboard hints
func (m Model) renderStatusBar() string {
	var line string
	switch {
	case m.searching:
		line = m.styles.Info.Render("Search: ") + m.search.View()
		if m.view == ViewGlobalSearch {
			line += m.styles.Subtle.Render(fmt.Sprintf("  %d results", len(m.results)))
		} else {
			line += m.styles.Subtle.Render(" (Enter to keep, Esc to clear)")
		}
	case m.notice != "":
		line = m.styles.Warning.Render(m.notice)
	default:
		line = m.taskLine()
	}
	if line == "" {
		line = m.styles.Subtle.Render(m.viewHints())
	}

	helpText := m.helpModel.ShortHelpView(m.keyMap.ShortHelp())
	return m.styles.StatusBar.Width(m.width).Render(line) + "\n" +
		m.styles.StatusBar.Width(m.width).Render(helpText)
}

// taskLine shows the progress or result of the background task that
// belongs to the current tab
func (m Model) taskLine() string {
	slotBusy, msg := m.projects.task.Busy(), m.projects.task.Message()
	if m.tab == TabStatus {
		slotBusy, msg = m.status.task.Busy(), m.status.task.Message()
	}
	if msg == "" {
		return ""
	}
	if slotBusy {
		return m.spinner.View() + " " + m.styles.Info.Render(msg)
	}
	return m.styles.Success.Render(msg)
}

// viewHints describes the list state or the keys of the current view
func (m Model) viewHints() string {
	switch m.view {
	case ViewIdeaDetail:
		return "enter read │ e edit README │ o open folder │ esc back"
	case ViewReader, ViewPlanViewer:
		return fmt.Sprintf("%s │ line %d/%d │ esc back", m.readerTitle, m.pager.YOffset+1, max(1, m.pager.TotalLineCount()))
	case ViewProjectDetail:
		return "tab switch pane │ a analyze │ A deep analyze │ esc back"
	case ViewGlobalSearch:
		return "enter jump │ / edit query │ esc back"
	case ViewList:
	}

	var parts []string
	switch m.tab {
	case TabIdeas:
		parts = append(parts, "sort: "+m.ideas.sort.Label(), "filter: "+m.ideas.filter.Label())
	case TabProjects:
		parts = append(parts, "sort: "+m.projects.sort.Label())
	case TabPlans:
		parts = append(parts, "sort: "+m.plans.sort.Label())
	case TabDotfiles:
		parts = append(parts, "sort: "+m.dotfiles.sort.Label())
	case TabStatus:
		parts = append(parts, "r refresh │ enter open first entry")
	}
	if q := m.currentQuery(); q != "" {
		parts = append(parts, fmt.Sprintf("query: '%s'", q))
	}
	return strings.Join(parts, " │ ")
}
