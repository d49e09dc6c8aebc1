package ui

import (
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adriangreen/ideas/internal/catalog"
)

// editCmd suspends the dashboard and runs the configured editor on path.
// The editor setting may carry arguments, e.g. "code -w".
func (m Model) editCmd(path string) tea.Cmd {
	fields := strings.Fields(m.cfg.Tools.Editor)
	if len(fields) == 0 {
		fields = []string{"vim"}
	}
	c := exec.Command(fields[0], append(fields[1:], path)...)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return editorFinishedMsg{Path: path, Err: err}
	})
}

// openCmd hands path to the platform opener off the UI goroutine
func (m Model) openCmd(path string) tea.Cmd {
	opener := m.cfg.Tools.Opener
	return func() tea.Msg {
		err := exec.Command(opener, path).Run()
		return openedMsg{Path: path, Err: err}
	}
}

func (m Model) ideaReadme(idea catalog.Idea) string {
	return filepath.Join(catalog.IdeaDir(m.ideasRoot, idea), "README.md")
}

// selectedPath is the filesystem path behind the highlighted item of the
// current view, used by open and copy
func (m Model) selectedPath() (string, bool) {
	switch m.view {
	case ViewIdeaDetail, ViewReader:
		if m.mdCursor >= 0 && m.mdCursor < len(m.mdFiles) {
			return m.mdFiles[m.mdCursor], true
		}
		return "", false
	case ViewProjectDetail:
		p, ok := m.detailProject()
		return p.Path, ok
	case ViewPlanViewer:
		p, ok := m.plans.list.Selected()
		return p.Path, ok
	case ViewList, ViewGlobalSearch:
	}

	switch m.tab {
	case TabIdeas:
		if idea, ok := m.ideas.list.Selected(); ok {
			return catalog.IdeaDir(m.ideasRoot, idea), true
		}
	case TabProjects:
		if p, ok := m.projects.list.Selected(); ok {
			return p.Path, true
		}
	case TabPlans:
		if p, ok := m.plans.list.Selected(); ok {
			return p.Path, true
		}
	case TabDotfiles:
		if d, ok := m.dotfiles.list.Selected(); ok {
			return d.Path, true
		}
	case TabStatus:
		if len(m.status.report.Untracked) > 0 && m.status.section == sectionUntracked {
			return m.status.report.Untracked[0].Path, true
		}
	}
	return "", false
}

// folderPath is what "open folder" targets: the idea folder rather than a
// markdown file inside it
func (m Model) folderPath() (string, bool) {
	if m.view == ViewIdeaDetail || m.view == ViewReader || (m.view == ViewList && m.tab == TabIdeas) {
		if idea, ok := m.ideas.list.Selected(); ok {
			return catalog.IdeaDir(m.ideasRoot, idea), true
		}
		return "", false
	}
	return m.selectedPath()
}
