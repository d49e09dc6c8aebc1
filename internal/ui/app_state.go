package ui

import (
	"github.com/adriangreen/ideas/internal/catalog"
	"github.com/adriangreen/ideas/internal/memory"
)

// extractPrefs captures the current tab, sort modes, status filter and the
// selected item of each list
func (m Model) extractPrefs() memory.Prefs {
	p := memory.Prefs{
		Tab:          int(m.tab),
		IdeaSort:     int(m.ideas.sort),
		ProjectSort:  int(m.projects.sort),
		PlanSort:     int(m.plans.sort),
		DotfilesSort: int(m.dotfiles.sort),
		StatusFilter: int(m.ideas.filter),
		Selected:     make(map[string]string),
	}

	selected := map[Tab]string{
		TabIdeas:    m.ideas.selectedName(),
		TabProjects: m.projects.selectedName(),
		TabPlans:    m.plans.selectedName(),
		TabDotfiles: m.dotfiles.selectedName(),
	}
	for tab, name := range selected {
		if name != "" {
			p.Selected[tab.Label()] = name
		}
	}
	return p
}

// restorePrefs applies saved preferences. Out of range values, left behind
// by an older build, keep their defaults.
func (m *Model) restorePrefs(p memory.Prefs) {
	if t := Tab(p.Tab); t.valid() {
		m.tab = t
	}
	if s := catalog.IdeaSort(p.IdeaSort); s >= catalog.IdeaSortName && s <= catalog.IdeaSortModified {
		m.ideas.setSort(s)
	}
	if s := catalog.ProjectSort(p.ProjectSort); s >= catalog.ProjectSortName && s <= catalog.ProjectSortAnalyzed {
		m.projects.setSort(s)
	}
	if s := catalog.PlanSort(p.PlanSort); s == catalog.PlanSortName || s == catalog.PlanSortModified {
		m.plans.setSort(s)
	}
	if s := catalog.DotfilesSort(p.DotfilesSort); s == catalog.DotfilesSortName || s == catalog.DotfilesSortCategory {
		m.dotfiles.setSort(s)
	}
	if f := catalog.StatusFilter(p.StatusFilter); f >= catalog.StatusAll && f <= catalog.StatusUnknown {
		m.ideas.filter = f
		m.ideas.applyQuery("")
	}

	if name := p.Selected[TabIdeas.Label()]; name != "" {
		m.ideas.selectName(name)
	}
	if name := p.Selected[TabProjects.Label()]; name != "" {
		m.projects.selectName(name)
	}
	if name := p.Selected[TabPlans.Label()]; name != "" {
		m.plans.selectName(name)
	}
	if name := p.Selected[TabDotfiles.Label()]; name != "" {
		m.dotfiles.selectName(name)
	}
}

// SavePrefs persists the dashboard preferences. It is a no-op without a
// preferences store.
func (m Model) SavePrefs() error {
	if m.prefs == nil {
		return nil
	}
	return m.prefs.SavePrefs(m.ctx, m.extractPrefs())
}
