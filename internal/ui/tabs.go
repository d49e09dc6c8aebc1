package ui

import "github.com/adriangreen/ideas/internal/catalog"

// Tab is a top-level collection shown in the tab bar
type Tab int

const (
	TabIdeas Tab = iota
	TabProjects
	TabPlans
	TabDotfiles
	TabStatus
)

var allTabs = []Tab{TabIdeas, TabProjects, TabPlans, TabDotfiles, TabStatus}

// Next returns the tab to the right, wrapping to the first
func (t Tab) Next() Tab {
	return allTabs[(int(t)+1)%len(allTabs)]
}

// Prev returns the tab to the left, wrapping to the last
func (t Tab) Prev() Tab {
	return allTabs[(int(t)+len(allTabs)-1)%len(allTabs)]
}

func (t Tab) Label() string {
	switch t {
	case TabIdeas:
		return "Ideas"
	case TabProjects:
		return "Projects"
	case TabPlans:
		return "Plans"
	case TabDotfiles:
		return "Dotfiles"
	case TabStatus:
		return "Status"
	}
	return "Ideas"
}

func (t Tab) valid() bool {
	return t >= TabIdeas && t <= TabStatus
}

// tabForKind maps a search result to the tab that lists it
func tabForKind(k catalog.Kind) Tab {
	switch k {
	case catalog.KindIdea:
		return TabIdeas
	case catalog.KindProject:
		return TabProjects
	case catalog.KindPlan:
		return TabPlans
	case catalog.KindDotfile:
		return TabDotfiles
	}
	return TabIdeas
}

// View is the screen shown for the current tab
type View int

const (
	ViewList          View = iota
	ViewIdeaDetail         // markdown files of one idea
	ViewReader             // one markdown file
	ViewProjectDetail      // Info and Analysis tabs
	ViewPlanViewer
	ViewGlobalSearch
)

func (v View) String() string {
	switch v {
	case ViewList:
		return "list"
	case ViewIdeaDetail:
		return "idea detail"
	case ViewReader:
		return "reader"
	case ViewProjectDetail:
		return "project detail"
	case ViewPlanViewer:
		return "plan viewer"
	case ViewGlobalSearch:
		return "global search"
	}
	return "unknown"
}

// DetailTab selects the pane of the project detail view
type DetailTab int

const (
	DetailInfo DetailTab = iota
	DetailAnalysis
)

func (d DetailTab) Next() DetailTab {
	if d == DetailInfo {
		return DetailAnalysis
	}
	return DetailInfo
}

func (d DetailTab) Label() string {
	if d == DetailAnalysis {
		return "Analysis"
	}
	return "Info"
}

// statusSection is the highlighted block of the status dashboard
type statusSection int

const (
	sectionUntracked statusSection = iota
	sectionStale
	sectionRecent
)

const statusSections = 3

func (s statusSection) next() statusSection {
	return (s + 1) % statusSections
}

func (s statusSection) prev() statusSection {
	return (s + statusSections - 1) % statusSections
}
