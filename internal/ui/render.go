package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/adriangreen/ideas/internal/catalog"
)

// View renders the dashboard
func (m Model) View() string {
	if !m.ready {
		return m.styles.Info.Render("Initializing Ideas Dashboard...")
	}

	// Help overlay takes priority over everything
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	layout := m.calculateLayout()

	var content string
	switch m.view {
	case ViewList:
		content = m.renderList(layout.ContentHeight)
	case ViewIdeaDetail:
		content = m.renderIdeaDetail(layout.ContentHeight)
	case ViewReader, ViewPlanViewer:
		content = m.renderPager()
	case ViewProjectDetail:
		content = m.renderProjectDetail()
	case ViewGlobalSearch:
		content = m.renderGlobalSearch(layout.ContentHeight)
	}
	content = lipgloss.NewStyle().Height(layout.ContentHeight).MaxHeight(layout.ContentHeight).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		content,
		m.renderStatusBar(),
	)
}

// renderMarkdown renders content for a terminal of the given width. The
// raw text is returned when rendering fails.
func renderMarkdown(content string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

// fit truncates s to w cells and pads it to exactly w
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = ansi.Truncate(s, w, "…")
	if pad := w - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// window returns the slice of n rows to draw so that selected stays in
// view of height rows
func window(n, selected, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := selected - height/2
	start = max(0, min(start, n-height))
	return start, start + height
}

func renderRows[T any](m Model, items []T, selected, height int, empty string, row func(T, int, bool) string) string {
	if len(items) == 0 {
		return m.styles.Subtle.Render("  " + empty)
	}
	width := max(20, m.width-2)
	start, end := window(len(items), selected, height)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		sel := i == selected
		line := row(items[i], width, sel)
		if sel {
			line = m.styles.Cursor.Render("▸ ") + m.styles.Selected.Render(line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderList(height int) string {
	switch m.tab {
	case TabIdeas:
		return renderRows(m, m.ideas.list.Visible(), m.ideas.list.SelectedIndex(), height, "No ideas match", m.ideaRow)
	case TabProjects:
		return renderRows(m, m.projects.list.Visible(), m.projects.list.SelectedIndex(), height, "No projects match", m.projectRow)
	case TabPlans:
		return renderRows(m, m.plans.list.Visible(), m.plans.list.SelectedIndex(), height, "No plans match", m.planRow)
	case TabDotfiles:
		return renderRows(m, m.dotfiles.list.Visible(), m.dotfiles.list.SelectedIndex(), height, "No dotfiles match", m.dotfileRow)
	case TabStatus:
		return m.renderStatus(height)
	}
	return ""
}

func (m Model) ideaRow(i catalog.Idea, width int, selected bool) string {
	status := i.Status
	if status == "" {
		status = "unknown"
	}
	statusCell := fit(StatusIcon(i.Status)+" "+status, 12)
	if !selected {
		statusCell = m.styles.StatusStyle(i.Status).Render(statusCell)
	}
	counts := fmt.Sprintf("%3dq %3ds", len(i.OpenQuestions), i.Sessions)
	tagsWidth := max(8, width-24-12-len(counts)-1)
	return fit(i.Folder, 24) + statusCell + fit(strings.Join(i.Tags, ", "), tagsWidth) + " " + counts
}

func (m Model) projectRow(p catalog.Project, width int, selected bool) string {
	mark := " "
	if m.projects.hasAnalysis(p.Name) {
		mark = "✓"
		if !selected {
			mark = m.styles.Analyzed.Render(mark)
		}
	}
	rest := max(8, width-2-24-14-14-12)
	return mark + " " + fit(p.Name, 24) + fit(p.Category, 14) + fit(p.Tech, 14) + fit(p.LastCommit, 12) + fit(p.Blurb(), rest)
}

func (m Model) planRow(p catalog.Plan, width int, _ bool) string {
	rest := max(8, width-32-12)
	return fit(p.Name, 32) + fit(p.Modified, 12) + fit(p.Title, rest)
}

func (m Model) dotfileRow(d catalog.DxItem, width int, _ bool) string {
	rest := max(8, width-28-16)
	return fit(d.Name, 28) + fit(d.Category, 16) + fit(d.Description, rest)
}

// renderStatus draws the three status sections, each taking a third of
// the content height
func (m Model) renderStatus(height int) string {
	st := m.status
	if !st.loaded {
		if st.task.Busy() {
			return m.spinner.View() + " " + m.styles.Info.Render("Scanning projects…")
		}
		return m.styles.Subtle.Render("  Press r to scan projects")
	}

	rows := max(1, height/statusSections-1)
	r := st.report

	untracked := make([]string, 0, len(r.Untracked))
	for _, u := range r.Untracked {
		untracked = append(untracked, fit(u.Name, 28)+fit(u.Tech, 14)+fmt.Sprintf("%d commits", u.Commits))
	}
	stale := make([]string, 0, len(r.Stale))
	for _, s := range r.Stale {
		stale = append(stale, fit(s.Name, 28)+m.styles.Warning.Render(fmt.Sprintf("%d new commits", s.Commits)))
	}
	recent := make([]string, 0, len(r.Recent))
	for _, p := range r.Recent {
		recent = append(recent, fit(p.Name, 28)+fit(p.Date, 12)+fit(p.Message, max(8, m.width-44)))
	}

	blocks := []string{
		m.statusBlock(sectionUntracked, fmt.Sprintf("New Projects (%d)", len(untracked)), untracked, rows, "All projects tracked"),
		m.statusBlock(sectionStale, fmt.Sprintf("Stale Analyses (%d)", len(stale)), stale, rows, "All analyses current"),
		m.statusBlock(sectionRecent, fmt.Sprintf("Recent Activity (%d)", len(recent)), recent, rows,
			fmt.Sprintf("No commits in the last %d days", m.cfg.TUI.RecentDays)),
	}
	return strings.Join(blocks, "\n")
}

func (m Model) statusBlock(s statusSection, title string, lines []string, rows int, empty string) string {
	var b strings.Builder
	if s == m.status.section {
		b.WriteString(m.styles.Cursor.Render("▸ ") + m.styles.PanelTitle.Render(title))
	} else {
		b.WriteString("  " + m.styles.Subtitle.Render(title))
	}
	if len(lines) == 0 {
		b.WriteString("\n    " + m.styles.Subtle.Render(empty))
		return b.String()
	}
	for i, l := range lines {
		if i == rows-1 && len(lines) > rows {
			b.WriteString("\n    " + m.styles.Subtle.Render(fmt.Sprintf("… and %d more", len(lines)-i)))
			break
		}
		b.WriteString("\n    " + l)
	}
	return b.String()
}

func (m Model) renderIdeaDetail(height int) string {
	idea, ok := m.ideas.list.Selected()
	if !ok {
		return m.styles.Subtle.Render("  No idea selected")
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(idea.Folder) + "\n\n")
	status := idea.Status
	if status == "" {
		status = "unknown"
	}
	b.WriteString(m.styles.Label.Render("Status:   ") + m.styles.StatusStyle(idea.Status).Render(StatusIcon(idea.Status)+" "+status) + "\n")
	b.WriteString(m.styles.Label.Render("Sessions: ") + fmt.Sprint(idea.Sessions) + "\n")
	if len(idea.Tags) > 0 {
		b.WriteString(m.styles.Label.Render("Tags:     ") + strings.Join(idea.Tags, ", ") + "\n")
	}
	if idea.Created != "" {
		b.WriteString(m.styles.Label.Render("Created:  ") + idea.Created + "\n")
	}
	if idea.Modified != "" {
		b.WriteString(m.styles.Label.Render("Modified: ") + idea.Modified + "\n")
	}
	if idea.Description != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Width(max(20, m.width-2)).Render(idea.Description) + "\n")
	}

	if len(idea.OpenQuestions) > 0 {
		b.WriteString("\n" + m.styles.Subtitle.Render(fmt.Sprintf("Open Questions (%d)", len(idea.OpenQuestions))) + "\n")
		for _, q := range idea.OpenQuestions {
			b.WriteString("  • " + ansi.Truncate(q, max(10, m.width-6), "…") + "\n")
		}
	}

	b.WriteString("\n" + m.styles.Subtitle.Render(fmt.Sprintf("Markdown Files (%d)", len(m.mdFiles))) + "\n")
	if len(m.mdFiles) == 0 {
		b.WriteString("  " + m.styles.Subtle.Render("No markdown files"))
	}
	dir := catalog.IdeaDir(m.ideasRoot, idea)
	for i, f := range m.mdFiles {
		name := strings.TrimPrefix(strings.TrimPrefix(f, dir), "/")
		if i == m.mdCursor {
			b.WriteString(m.styles.Cursor.Render("▸ ") + m.styles.Selected.Render(name) + "\n")
		} else {
			b.WriteString("  " + name + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderPager() string {
	title := m.styles.Title.Render(m.readerTitle)
	pct := fmt.Sprintf("%3.0f%%", m.pager.ScrollPercent()*100)
	footer := m.styles.Subtle.Render(pct)
	return title + "\n" + m.pager.View() + "\n" + footer
}

func (m Model) renderProjectDetail() string {
	p, ok := m.detailProject()
	if !ok {
		return m.styles.Subtle.Render("  Project no longer in inventory")
	}

	title := m.styles.Title.Render(p.Name)
	var panes []string
	for _, d := range []DetailTab{DetailInfo, DetailAnalysis} {
		if d == m.projects.detailTab {
			panes = append(panes, m.styles.TabActive.Render(d.Label()))
		} else {
			panes = append(panes, m.styles.TabInactive.Render(d.Label()))
		}
	}

	vp := m.info
	if m.projects.detailTab == DetailAnalysis {
		vp = m.analysis
	}
	footer := m.styles.Subtle.Render(fmt.Sprintf("%3.0f%%", vp.ScrollPercent()*100))
	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, panes...) + "\n" + vp.View() + "\n" + footer
}

// projectInfo is the Info pane content
func (m Model) projectInfo(p catalog.Project) string {
	var b strings.Builder
	field := func(label, value string) {
		if value == "" {
			value = "-"
		}
		b.WriteString(m.styles.Label.Render(fmt.Sprintf("%-14s", label)) + value + "\n")
	}

	field("Path:", p.Path)
	field("Source:", p.Source)
	field("Category:", p.Category)
	field("Tech:", p.Tech)
	field("Commits:", humanize.Comma(int64(p.Commits)))
	field("Last commit:", lastCommit(p.LastCommit))
	if m.projects.hasAnalysis(p.Name) {
		field("Analyzed:", m.styles.Analyzed.Render("yes"))
	} else {
		field("Analyzed:", m.styles.Warning.Render("no"))
	}

	if p.Summary != "" {
		b.WriteString("\n" + m.styles.Subtitle.Render("Summary") + "\n")
		b.WriteString(lipgloss.NewStyle().Width(max(20, m.info.Width-2)).Render(p.Summary) + "\n")
	}
	if p.Description != "" {
		b.WriteString("\n" + m.styles.Subtitle.Render("Description") + "\n")
		b.WriteString(lipgloss.NewStyle().Width(max(20, m.info.Width-2)).Render(p.Description) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// lastCommit adds a relative age to inventory dates
func lastCommit(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s (%s)", date, humanize.Time(t))
}

func (m Model) noAnalysis() string {
	return m.styles.Subtle.Render(fmt.Sprintf("No analysis yet. Press %s to analyze or %s for a deep analysis.",
		m.keyMap.Analyze.Help().Key, m.keyMap.DeepAnalyze.Help().Key))
}

func (m Model) renderGlobalSearch(height int) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Search everything") + "\n")
	if !m.searching {
		b.WriteString(m.styles.Info.Render("Query: ") + m.search.Value() + "\n")
	} else {
		b.WriteString("\n")
	}

	if len(m.results) == 0 {
		if m.search.Value() != "" {
			b.WriteString(m.styles.Subtle.Render("  No matches"))
		}
		return b.String()
	}

	b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(m.results))) + "\n")
	start, end := window(len(m.results), m.resultCursor, max(1, height-3))
	rest := max(8, m.width-2-10-28)
	for i := start; i < end; i++ {
		r := m.results[i]
		line := fit(r.Kind.Label(), 10) + fit(r.Name, 28) + fit(r.Description, rest)
		if i == m.resultCursor {
			b.WriteString(m.styles.Cursor.Render("▸ ") + m.styles.Selected.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
