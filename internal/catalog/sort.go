package catalog

import "cmp"

// Sort modes cycle with Next and are shown with Label. Each Compare
// returns a comparator for a stable sort.

// IdeaSort orders the ideas tab
type IdeaSort int

const (
	IdeaSortName IdeaSort = iota
	IdeaSortStatus
	IdeaSortQuestions
	IdeaSortSessions
	IdeaSortModified
)

func (s IdeaSort) Next() IdeaSort {
	if s >= IdeaSortModified {
		return IdeaSortName
	}
	return s + 1
}

func (s IdeaSort) Label() string {
	switch s {
	case IdeaSortName:
		return "name"
	case IdeaSortStatus:
		return "status"
	case IdeaSortQuestions:
		return "questions"
	case IdeaSortSessions:
		return "sessions"
	case IdeaSortModified:
		return "modified"
	}
	return "name"
}

func (s IdeaSort) Compare(a, b Idea) int {
	switch s {
	case IdeaSortStatus:
		return cmp.Compare(a.Status, b.Status)
	case IdeaSortQuestions:
		return cmp.Compare(len(b.OpenQuestions), len(a.OpenQuestions))
	case IdeaSortSessions:
		return cmp.Compare(b.Sessions, a.Sessions)
	case IdeaSortModified:
		return cmp.Compare(b.Modified, a.Modified)
	}
	return cmp.Compare(a.Folder, b.Folder)
}

// ProjectSort orders the projects tab
type ProjectSort int

const (
	ProjectSortName ProjectSort = iota
	ProjectSortCategory
	ProjectSortLastCommit
	ProjectSortAnalyzed
)

func (s ProjectSort) Next() ProjectSort {
	if s >= ProjectSortAnalyzed {
		return ProjectSortName
	}
	return s + 1
}

func (s ProjectSort) Label() string {
	switch s {
	case ProjectSortName:
		return "name"
	case ProjectSortCategory:
		return "category"
	case ProjectSortLastCommit:
		return "last commit"
	case ProjectSortAnalyzed:
		return "analyzed"
	}
	return "name"
}

// Comparator returns the ordering for s. hasAnalysis is consulted only by
// ProjectSortAnalyzed, which puts analyzed projects first.
func (s ProjectSort) Comparator(hasAnalysis func(name string) bool) func(a, b Project) int {
	switch s {
	case ProjectSortCategory:
		return func(a, b Project) int { return cmp.Compare(a.Category, b.Category) }
	case ProjectSortLastCommit:
		return func(a, b Project) int { return cmp.Compare(b.LastCommit, a.LastCommit) }
	case ProjectSortAnalyzed:
		return func(a, b Project) int {
			return cmp.Compare(boolRank(hasAnalysis(b.Name)), boolRank(hasAnalysis(a.Name)))
		}
	}
	return func(a, b Project) int { return cmp.Compare(a.Name, b.Name) }
}

func boolRank(v bool) int {
	if v {
		return 1
	}
	return 0
}

// PlanSort orders the plans tab
type PlanSort int

const (
	PlanSortName PlanSort = iota
	PlanSortModified
)

func (s PlanSort) Next() PlanSort {
	if s == PlanSortName {
		return PlanSortModified
	}
	return PlanSortName
}

func (s PlanSort) Label() string {
	if s == PlanSortModified {
		return "modified"
	}
	return "name"
}

func (s PlanSort) Compare(a, b Plan) int {
	if s == PlanSortModified {
		return cmp.Compare(b.Modified, a.Modified)
	}
	return cmp.Compare(a.Name, b.Name)
}

// DotfilesSort orders the dotfiles tab
type DotfilesSort int

const (
	DotfilesSortName DotfilesSort = iota
	DotfilesSortCategory
)

func (s DotfilesSort) Next() DotfilesSort {
	if s == DotfilesSortName {
		return DotfilesSortCategory
	}
	return DotfilesSortName
}

func (s DotfilesSort) Label() string {
	if s == DotfilesSortCategory {
		return "category"
	}
	return "name"
}

func (s DotfilesSort) Compare(a, b DxItem) int {
	if s == DotfilesSortCategory {
		return cmp.Compare(a.Category, b.Category)
	}
	return cmp.Compare(a.Name, b.Name)
}

// StatusFilter narrows ideas by README status
type StatusFilter int

const (
	StatusAll StatusFilter = iota
	StatusActive
	StatusDormant
	StatusUnknown
)

func (f StatusFilter) Next() StatusFilter {
	if f >= StatusUnknown {
		return StatusAll
	}
	return f + 1
}

func (f StatusFilter) Label() string {
	switch f {
	case StatusActive:
		return "active"
	case StatusDormant:
		return "dormant"
	case StatusUnknown:
		return "unknown"
	}
	return "all"
}

// Matches compares against the exact status string
func (f StatusFilter) Matches(status string) bool {
	if f == StatusAll {
		return true
	}
	return status == f.Label()
}
