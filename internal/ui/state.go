package ui

import (
	"os"
	"time"

	"github.com/adriangreen/ideas/internal/catalog"
	"github.com/adriangreen/ideas/internal/filterlist"
	"github.com/adriangreen/ideas/internal/tasks"
)

// Each entity tab owns a filtered list, its sort mode and the query last
// applied to it. Sorting keeps the stored predicate, so an active query
// survives a re-sort.

type ideasState struct {
	list   *filterlist.List[catalog.Idea]
	sort   catalog.IdeaSort
	filter catalog.StatusFilter
	query  string
}

func newIdeasState(items []catalog.Idea) *ideasState {
	s := &ideasState{list: filterlist.New(items), sort: catalog.IdeaSortName}
	s.list.Sort(s.sort.Compare)
	s.applyQuery("")
	return s
}

func (s *ideasState) applyQuery(query string) {
	s.query = query
	q := catalog.NormalizeQuery(query)
	s.list.ApplyFilter(func(i catalog.Idea) bool {
		return s.filter.Matches(i.Status) && catalog.IdeaMatches(i, q)
	})
}

func (s *ideasState) setSort(mode catalog.IdeaSort) {
	s.sort = mode
	s.list.Sort(s.sort.Compare)
}

func (s *ideasState) cycleFilter() {
	s.filter = s.filter.Next()
	s.list.Refilter()
}

func (s *ideasState) setItems(items []catalog.Idea) {
	name := s.selectedName()
	s.list.SetItems(items)
	s.list.Sort(s.sort.Compare)
	s.applyQuery(s.query)
	s.selectName(name)
}

func (s *ideasState) selectedName() string {
	if i, ok := s.list.Selected(); ok {
		return i.Folder
	}
	return ""
}

func (s *ideasState) selectName(name string) bool {
	if name == "" {
		return false
	}
	return s.list.SelectFunc(func(i catalog.Idea) bool { return i.Folder == name })
}

type projectsState struct {
	list     *filterlist.List[catalog.Project]
	sort     catalog.ProjectSort
	analyzed map[string]bool // derived: an analysis file exists
	query    string

	task *tasks.Slot[projectsUpdate]

	// modification times of the data files as of the last merge
	merged map[string]time.Time

	detailTab  DetailTab
	detailName string // project shown by the detail view
}

func newProjectsState(items []catalog.Project, analyzed map[string]bool, task *tasks.Slot[projectsUpdate]) *projectsState {
	if analyzed == nil {
		analyzed = make(map[string]bool)
	}
	s := &projectsState{
		list:     filterlist.New(items),
		sort:     catalog.ProjectSortAnalyzed,
		analyzed: analyzed,
		task:     task,
		merged:   make(map[string]time.Time),
	}
	s.resort()
	return s
}

func (s *projectsState) hasAnalysis(name string) bool {
	return s.analyzed[name]
}

func (s *projectsState) resort() {
	s.list.Sort(s.sort.Comparator(s.hasAnalysis))
}

func (s *projectsState) setSort(mode catalog.ProjectSort) {
	s.sort = mode
	s.resort()
}

func (s *projectsState) applyQuery(query string) {
	s.query = query
	q := catalog.NormalizeQuery(query)
	s.list.ApplyFilter(func(p catalog.Project) bool { return catalog.ProjectMatches(p, q) })
}

// replace swaps in a reloaded inventory, keeping the query and, when still
// visible, the selected project
func (s *projectsState) replace(items []catalog.Project, analyzed map[string]bool) {
	name := s.selectedName()
	s.list.SetItems(items)
	if analyzed != nil {
		s.analyzed = analyzed
	}
	s.resort()
	s.applyQuery(s.query)
	s.selectName(name)
}

// markMerged records the current modification time of each path, so a
// watcher event for a write the dashboard already merged can be skipped
func (s *projectsState) markMerged(paths ...string) {
	for _, p := range paths {
		s.merged[p] = modTime(p)
	}
}

// alreadyMerged reports whether path is unchanged since markMerged
func (s *projectsState) alreadyMerged(path string) bool {
	t, ok := s.merged[path]
	return ok && t.Equal(modTime(path))
}

// modTime is the file's modification time, zero when it cannot be read
func modTime(path string) time.Time {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return fi.ModTime()
}

func (s *projectsState) analyzedCount() int {
	n := 0
	for _, p := range s.list.Items() {
		if s.analyzed[p.Name] {
			n++
		}
	}
	return n
}

func (s *projectsState) selectedName() string {
	if p, ok := s.list.Selected(); ok {
		return p.Name
	}
	return ""
}

func (s *projectsState) selectName(name string) bool {
	if name == "" {
		return false
	}
	return s.list.SelectFunc(func(p catalog.Project) bool { return p.Name == name })
}

type plansState struct {
	list  *filterlist.List[catalog.Plan]
	sort  catalog.PlanSort
	query string
}

func newPlansState(items []catalog.Plan) *plansState {
	s := &plansState{list: filterlist.New(items), sort: catalog.PlanSortModified}
	s.list.Sort(s.sort.Compare)
	return s
}

func (s *plansState) applyQuery(query string) {
	s.query = query
	q := catalog.NormalizeQuery(query)
	s.list.ApplyFilter(func(p catalog.Plan) bool { return catalog.PlanMatches(p, q) })
}

func (s *plansState) setSort(mode catalog.PlanSort) {
	s.sort = mode
	s.list.Sort(s.sort.Compare)
}

func (s *plansState) setItems(items []catalog.Plan) {
	name := s.selectedName()
	s.list.SetItems(items)
	s.list.Sort(s.sort.Compare)
	s.applyQuery(s.query)
	s.selectName(name)
}

func (s *plansState) selectedName() string {
	if p, ok := s.list.Selected(); ok {
		return p.Name
	}
	return ""
}

func (s *plansState) selectName(name string) bool {
	if name == "" {
		return false
	}
	return s.list.SelectFunc(func(p catalog.Plan) bool { return p.Name == name })
}

type dotfilesState struct {
	list  *filterlist.List[catalog.DxItem]
	sort  catalog.DotfilesSort
	query string
}

func newDotfilesState(items []catalog.DxItem) *dotfilesState {
	s := &dotfilesState{list: filterlist.New(items), sort: catalog.DotfilesSortCategory}
	s.list.Sort(s.sort.Compare)
	return s
}

func (s *dotfilesState) applyQuery(query string) {
	s.query = query
	q := catalog.NormalizeQuery(query)
	s.list.ApplyFilter(func(d catalog.DxItem) bool { return catalog.DxItemMatches(d, q) })
}

func (s *dotfilesState) setSort(mode catalog.DotfilesSort) {
	s.sort = mode
	s.list.Sort(s.sort.Compare)
}

func (s *dotfilesState) setItems(items []catalog.DxItem) {
	name := s.selectedName()
	s.list.SetItems(items)
	s.list.Sort(s.sort.Compare)
	s.applyQuery(s.query)
	s.selectName(name)
}

func (s *dotfilesState) selectedName() string {
	if d, ok := s.list.Selected(); ok {
		return d.Name
	}
	return ""
}

func (s *dotfilesState) selectName(name string) bool {
	if name == "" {
		return false
	}
	return s.list.SelectFunc(func(d catalog.DxItem) bool { return d.Name == name })
}

// staleProject is an analyzed project with commits after its analysis
type staleProject struct {
	Name    string
	Commits int
}

// statusReport is the payload of a status refresh
type statusReport struct {
	Untracked []catalog.UntrackedProject
	Stale     []staleProject
	Recent    []catalog.RecentProject
}

type statusState struct {
	report  statusReport
	loaded  bool
	section statusSection
	task    *tasks.Slot[statusReport]
}

// selectResult selects a global search hit in l. The index is trusted only
// while the item at it still carries the hit's name.
func selectResult[T any](l *filterlist.List[T], r catalog.SearchResult, name func(T) string) bool {
	items := l.Items()
	if r.Index >= 0 && r.Index < len(items) && name(items[r.Index]) == r.Name {
		return l.SelectItem(r.Index)
	}
	return l.SelectFunc(func(v T) bool { return name(v) == r.Name })
}
