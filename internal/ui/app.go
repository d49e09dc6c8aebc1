// Package ui is the Bubble Tea dashboard over ideas, projects, plans,
// dotfiles and portfolio status.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adriangreen/ideas/internal/catalog"
	"github.com/adriangreen/ideas/internal/config"
	"github.com/adriangreen/ideas/internal/memory"
	"github.com/adriangreen/ideas/internal/tasks"
)

// Deps are the collaborators and initial data of the dashboard
type Deps struct {
	Config    *config.Config
	Store     *catalog.Store
	Runner    ScriptRunner
	Prefs     *memory.Helper  // optional
	Watcher   *config.Watcher // optional, already started
	Logger    *slog.Logger
	IdeasRoot string
	Clock     func() time.Time // optional

	Ideas    []catalog.Idea
	Projects []catalog.Project
	Plans    []catalog.Plan
	Dotfiles []catalog.DxItem
}

// Model represents the dashboard state
type Model struct {
	// Services
	ctx       context.Context
	cfg       *config.Config
	store     *catalog.Store
	runner    ScriptRunner
	prefs     *memory.Helper
	watcher   *config.Watcher
	logger    *slog.Logger
	ideasRoot string
	now       func() time.Time

	// Navigation
	tab  Tab
	view View

	// Collections
	ideas    *ideasState
	projects *projectsState
	plans    *plansState
	dotfiles *dotfilesState
	status   *statusState

	// Idea detail and readers
	mdFiles     []string
	mdCursor    int
	readerTitle string
	pager       viewport.Model // markdown reader and plan viewer
	info        viewport.Model // project detail, Info tab
	analysis    viewport.Model // project detail, Analysis tab
	analysisRaw string

	// Search state; the same input serves the tab filter and global search
	search       textinput.Model
	searching    bool
	results      []catalog.SearchResult
	resultCursor int

	// Transient notice from editor, opener and clipboard actions
	notice      string
	noticeUntil time.Time

	// Layout
	width  int
	height int
	ready  bool

	helpModel help.Model
	keyMap    KeyMap
	showHelp  bool
	spinner   spinner.Model
	styles    *Styles
}

// NewModel creates the dashboard model. Saved preferences are restored when
// a store is configured.
func NewModel(ctx context.Context, deps Deps) Model {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	slotOpts := []tasks.Option{
		tasks.WithTTL(cfg.TUI.MessageTTL),
		tasks.WithClock(clock),
		tasks.WithLogger(logger),
	}

	var analyzed map[string]bool
	if deps.Store != nil {
		analyzed = analyzedSet(deps.Store, deps.Projects)
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "type to filter..."
	search.CharLimit = 100
	search.Width = 40

	m := Model{
		ctx:       ctx,
		cfg:       cfg,
		store:     deps.Store,
		runner:    deps.Runner,
		prefs:     deps.Prefs,
		watcher:   deps.Watcher,
		logger:    logger,
		ideasRoot: deps.IdeasRoot,
		now:       clock,

		tab:  TabIdeas,
		view: ViewList,

		ideas:    newIdeasState(deps.Ideas),
		projects: newProjectsState(deps.Projects, analyzed, tasks.NewSlot[projectsUpdate]("projects", slotOpts...)),
		plans:    newPlansState(deps.Plans),
		dotfiles: newDotfilesState(deps.Dotfiles),
		status:   &statusState{task: tasks.NewSlot[statusReport]("status", slotOpts...)},

		pager:    viewport.New(0, 0),
		info:     viewport.New(0, 0),
		analysis: viewport.New(0, 0),

		search:    search,
		helpModel: help.New(),
		keyMap:    NewKeyMap(cfg.TUI.Keys),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		styles:    NewStyles(),
	}

	if m.prefs != nil {
		p, ok, err := m.prefs.LoadPrefs(ctx)
		if err != nil {
			logger.Warn("failed to load dashboard preferences", "err", err)
		} else if ok {
			m.restorePrefs(p)
		}
	}
	m.projects.markMerged(cfg.Paths.ProjectInventory, cfg.Paths.AnalysisMeta)
	if m.tab == TabStatus {
		m.startStatusRefresh()
	}
	return m
}

// Init starts the poll ticker and, when watching, the change listener
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.cfg.TUI.PollInterval),
		m.spinner.Tick,
	}
	if m.watcher != nil {
		cmds = append(cmds, WaitForChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return WaitForChange(m.watcher)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updateViewportSizes()
		return m, nil

	case tickMsg:
		m.pollStatus()
		m.pollProjects()
		m.projects.task.Tick()
		m.status.task.Tick()
		if m.notice != "" && !m.now().Before(m.noticeUntil) {
			m.notice = ""
		}
		return m, tickCmd(m.cfg.TUI.PollInterval)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case DataChangedMsg:
		cmd := m.handleDataChange(msg.Path)
		return m, tea.Batch(cmd, m.waitForChange())

	case WatcherErrorMsg:
		m.logger.Warn("file watcher error", "err", msg.Err)
		return m, m.waitForChange()

	case IdeasLoadedMsg:
		if msg.Err != nil {
			m.logger.Warn("failed to reload ideas", "err", msg.Err)
			m.flash(fmt.Sprintf("Reload failed: %v", msg.Err))
			return m, nil
		}
		m.ideas.setItems(msg.Ideas)
		return m, nil

	case PlansLoadedMsg:
		if msg.Err != nil {
			m.logger.Warn("failed to reload plans", "err", msg.Err)
			return m, nil
		}
		m.plans.setItems(msg.Plans)
		return m, nil

	case DotfilesLoadedMsg:
		if msg.Err != nil {
			m.logger.Warn("failed to reload dotfiles", "err", msg.Err)
			return m, nil
		}
		m.dotfiles.setItems(msg.Items)
		return m, nil

	case editorFinishedMsg:
		if msg.Err != nil {
			m.logger.Warn("editor failed", "path", msg.Path, "err", msg.Err)
			m.flash(fmt.Sprintf("Editor failed: %v", msg.Err))
		}
		return m, LoadIdeasCmd(m.ctx, m.store, m.ideasRoot)

	case openedMsg:
		if msg.Err != nil {
			m.logger.Warn("open failed", "path", msg.Path, "err", msg.Err)
			m.flash(fmt.Sprintf("Open failed: %v", msg.Err))
		}
		return m, nil

	case copiedMsg:
		if msg.Err != nil {
			m.flash(fmt.Sprintf("Copy failed: %v", msg.Err))
		} else {
			m.flash("Copied " + msg.Path)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleDataChange reloads whatever a watched file feeds
func (m *Model) handleDataChange(path string) tea.Cmd {
	m.logger.Debug("data file changed", "path", path)
	switch path {
	case m.cfg.Paths.ProjectInventory, m.cfg.Paths.AnalysisMeta:
		if m.projects.alreadyMerged(path) {
			m.logger.Debug("change already merged", "path", path)
			return nil
		}
		m.startInventoryReload()
	case m.cfg.Paths.DxInventory:
		return LoadDotfilesCmd(m.store)
	case filepath.Join(m.ideasRoot, config.TrackerFile):
		return LoadIdeasCmd(m.ctx, m.store, m.ideasRoot)
	}
	return nil
}

func (m *Model) flash(text string) {
	m.notice = text
	m.noticeUntil = m.now().Add(m.cfg.TUI.MessageTTL)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if err := m.SavePrefs(); err != nil {
		m.logger.Warn("failed to save dashboard preferences", "err", err)
	}
	return m, tea.Quit
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.ForceQuit) {
		return m.quit()
	}

	// Help overlay takes priority
	if m.showHelp {
		if key.Matches(msg, m.keyMap.Help, m.keyMap.Back) {
			m.showHelp = false
		}
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keyMap.Quit):
		return m.quit()
	}

	switch m.view {
	case ViewList:
		return m.handleListKey(msg)
	case ViewIdeaDetail:
		return m.handleIdeaDetailKey(msg)
	case ViewReader, ViewPlanViewer:
		return m.handlePagerKey(msg)
	case ViewProjectDetail:
		return m.handleProjectDetailKey(msg)
	case ViewGlobalSearch:
		return m.handleResultsKey(msg)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.stopSearch()
		m.search.SetValue("")
		if m.view == ViewGlobalSearch {
			m.view = ViewList
			m.results = nil
		} else {
			m.applyQuery("")
		}
		return m, nil
	case tea.KeyEnter:
		m.stopSearch()
		if m.view == ViewGlobalSearch {
			m.runGlobalSearch()
		}
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != before {
		if m.view == ViewGlobalSearch {
			m.runGlobalSearch()
		} else {
			m.applyQuery(v)
		}
	}
	return m, cmd
}

func (m *Model) stopSearch() {
	m.searching = false
	m.search.Blur()
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keyMap
	switch {
	case key.Matches(msg, km.GlobalSearch):
		return m.startGlobalSearch()

	case key.Matches(msg, km.NextTab):
		m.switchTab(m.tab.Next())
	case key.Matches(msg, km.PrevTab):
		m.switchTab(m.tab.Prev())

	case key.Matches(msg, km.Down):
		m.moveDown()
	case key.Matches(msg, km.Up):
		m.moveUp()
	case key.Matches(msg, km.Open):
		return m.openSelected()

	case key.Matches(msg, km.Sort):
		m.cycleSort()
	case key.Matches(msg, km.Filter):
		if m.tab == TabIdeas {
			m.ideas.cycleFilter()
		}

	case key.Matches(msg, km.Analyze):
		if m.tab == TabProjects {
			m.startAnalysis(false)
		}
	case key.Matches(msg, km.DeepAnalyze):
		if m.tab == TabProjects {
			m.startAnalysis(true)
		}
	case key.Matches(msg, km.Refresh):
		cmd := m.refreshTab()
		return m, cmd

	case key.Matches(msg, km.Edit):
		if idea, ok := m.ideas.list.Selected(); ok && m.tab == TabIdeas {
			return m, m.editCmd(m.ideaReadme(idea))
		}
	case key.Matches(msg, km.OpenFolder):
		if path, ok := m.folderPath(); ok {
			return m, m.openCmd(path)
		}
	case key.Matches(msg, km.CopyPath):
		if path, ok := m.selectedPath(); ok {
			return m, copyPathCmd(path)
		}

	case key.Matches(msg, km.Search):
		if m.tab == TabStatus {
			break
		}
		m.searching = true
		m.search.SetValue("")
		m.applyQuery("")
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, km.Back):
		if m.currentQuery() != "" {
			m.search.SetValue("")
			m.applyQuery("")
		}
	}
	return m, nil
}

func (m Model) handleIdeaDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keyMap
	switch {
	case key.Matches(msg, km.Back):
		m.view = ViewList
	case key.Matches(msg, km.Down):
		if n := len(m.mdFiles); n > 0 {
			m.mdCursor = (m.mdCursor + 1) % n
		}
	case key.Matches(msg, km.Up):
		if n := len(m.mdFiles); n > 0 {
			m.mdCursor = (m.mdCursor - 1 + n) % n
		}
	case key.Matches(msg, km.Open):
		m.openMarkdownFile()
	case key.Matches(msg, km.Edit):
		if idea, ok := m.ideas.list.Selected(); ok {
			return m, m.editCmd(m.ideaReadme(idea))
		}
	case key.Matches(msg, km.OpenFolder):
		if path, ok := m.folderPath(); ok {
			return m, m.openCmd(path)
		}
	case key.Matches(msg, km.CopyPath):
		if path, ok := m.selectedPath(); ok {
			return m, copyPathCmd(path)
		}
	}
	return m, nil
}

// scroll moves vp by n lines, clamped to its content
func scroll(vp *viewport.Model, n int) {
	vp.SetYOffset(vp.YOffset + n)
}

func (m Model) handlePagerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keyMap
	switch {
	case key.Matches(msg, km.Back):
		if m.view == ViewReader {
			m.view = ViewIdeaDetail
		} else {
			m.view = ViewList
		}
	case key.Matches(msg, km.Down):
		scroll(&m.pager, 1)
	case key.Matches(msg, km.Up):
		scroll(&m.pager, -1)
	case key.Matches(msg, km.HalfDown):
		scroll(&m.pager, 10)
	case key.Matches(msg, km.HalfUp):
		scroll(&m.pager, -10)
	case key.Matches(msg, km.PageDown):
		scroll(&m.pager, 20)
	case key.Matches(msg, km.PageUp):
		scroll(&m.pager, -20)
	case key.Matches(msg, km.Top):
		m.pager.GotoTop()
	case key.Matches(msg, km.Bottom):
		m.pager.GotoBottom()
	case key.Matches(msg, km.CopyPath):
		if path, ok := m.selectedPath(); ok {
			return m, copyPathCmd(path)
		}
	}
	return m, nil
}

func (m Model) handleProjectDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keyMap
	vp := &m.info
	if m.projects.detailTab == DetailAnalysis {
		vp = &m.analysis
	}

	switch {
	case key.Matches(msg, km.Back):
		m.view = ViewList
	case key.Matches(msg, km.NextTab), key.Matches(msg, km.PrevTab):
		m.projects.detailTab = m.projects.detailTab.Next()
	case key.Matches(msg, km.Analyze):
		m.startAnalysis(false)
	case key.Matches(msg, km.DeepAnalyze):
		m.startAnalysis(true)
	case key.Matches(msg, km.Down):
		scroll(vp, 1)
	case key.Matches(msg, km.Up):
		scroll(vp, -1)
	case key.Matches(msg, km.HalfDown):
		scroll(vp, 10)
	case key.Matches(msg, km.HalfUp):
		scroll(vp, -10)
	case key.Matches(msg, km.Top):
		vp.GotoTop()
	case key.Matches(msg, km.Bottom):
		vp.GotoBottom()
	case key.Matches(msg, km.OpenFolder):
		if path, ok := m.selectedPath(); ok {
			return m, m.openCmd(path)
		}
	case key.Matches(msg, km.CopyPath):
		if path, ok := m.selectedPath(); ok {
			return m, copyPathCmd(path)
		}
	}
	return m, nil
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keyMap
	switch {
	case key.Matches(msg, km.Back):
		m.view = ViewList
		m.results = nil
		m.search.SetValue("")
	case key.Matches(msg, km.Down):
		if n := len(m.results); n > 0 {
			m.resultCursor = (m.resultCursor + 1) % n
		}
	case key.Matches(msg, km.Up):
		if n := len(m.results); n > 0 {
			m.resultCursor = (m.resultCursor - 1 + n) % n
		}
	case key.Matches(msg, km.Open):
		if m.resultCursor < len(m.results) {
			m.jumpTo(m.results[m.resultCursor])
		}
	case key.Matches(msg, km.Search):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	}
	return m, nil
}

// switchTab leaves the current tab unfiltered and shows t. Entering the
// status tab refreshes it.
func (m *Model) switchTab(t Tab) {
	m.applyQuery("")
	m.search.SetValue("")
	m.tab = t
	if t == TabStatus {
		m.startStatusRefresh()
	}
}

func (m *Model) applyQuery(q string) {
	switch m.tab {
	case TabIdeas:
		m.ideas.applyQuery(q)
	case TabProjects:
		m.projects.applyQuery(q)
	case TabPlans:
		m.plans.applyQuery(q)
	case TabDotfiles:
		m.dotfiles.applyQuery(q)
	case TabStatus:
	}
}

func (m Model) currentQuery() string {
	switch m.tab {
	case TabIdeas:
		return m.ideas.query
	case TabProjects:
		return m.projects.query
	case TabPlans:
		return m.plans.query
	case TabDotfiles:
		return m.dotfiles.query
	case TabStatus:
	}
	return ""
}

func (m *Model) moveDown() {
	switch m.tab {
	case TabIdeas:
		m.ideas.list.Next()
	case TabProjects:
		m.projects.list.Next()
	case TabPlans:
		m.plans.list.Next()
	case TabDotfiles:
		m.dotfiles.list.Next()
	case TabStatus:
		m.status.section = m.status.section.next()
	}
}

func (m *Model) moveUp() {
	switch m.tab {
	case TabIdeas:
		m.ideas.list.Previous()
	case TabProjects:
		m.projects.list.Previous()
	case TabPlans:
		m.plans.list.Previous()
	case TabDotfiles:
		m.dotfiles.list.Previous()
	case TabStatus:
		m.status.section = m.status.section.prev()
	}
}

func (m *Model) cycleSort() {
	switch m.tab {
	case TabIdeas:
		m.ideas.setSort(m.ideas.sort.Next())
	case TabProjects:
		m.projects.setSort(m.projects.sort.Next())
	case TabPlans:
		m.plans.setSort(m.plans.sort.Next())
	case TabDotfiles:
		m.dotfiles.setSort(m.dotfiles.sort.Next())
	case TabStatus:
	}
}

// refreshTab rescans the projects inventory or the status dashboard; the
// other tabs reload from disk
func (m *Model) refreshTab() tea.Cmd {
	switch m.tab {
	case TabIdeas:
		return LoadIdeasCmd(m.ctx, m.store, m.ideasRoot)
	case TabProjects:
		m.startInventoryRefresh()
	case TabPlans:
		return LoadPlansCmd(m.ctx, m.store)
	case TabDotfiles:
		return LoadDotfilesCmd(m.store)
	case TabStatus:
		m.startStatusRefresh()
	}
	return nil
}

func (m Model) openSelected() (tea.Model, tea.Cmd) {
	switch m.tab {
	case TabIdeas:
		idea, ok := m.ideas.list.Selected()
		if !ok {
			break
		}
		m.mdFiles = catalog.FindMarkdownFiles(catalog.IdeaDir(m.ideasRoot, idea))
		m.mdCursor = 0
		m.view = ViewIdeaDetail
	case TabProjects:
		m.openProjectDetail()
	case TabPlans:
		m.openPlan()
	case TabDotfiles:
		if d, ok := m.dotfiles.list.Selected(); ok {
			return m, m.openCmd(d.Path)
		}
	case TabStatus:
		cmd := m.statusEnter()
		return m, cmd
	}
	return m, nil
}

// statusEnter acts on the first entry of the highlighted section: new
// projects open in the file manager, the others jump to the project
func (m *Model) statusEnter() tea.Cmd {
	r := m.status.report
	switch m.status.section {
	case sectionUntracked:
		if len(r.Untracked) > 0 {
			return m.openCmd(r.Untracked[0].Path)
		}
	case sectionStale:
		if len(r.Stale) > 0 {
			m.jumpToProject(r.Stale[0].Name)
		}
	case sectionRecent:
		if len(r.Recent) > 0 {
			m.jumpToProject(r.Recent[0].Name)
		}
	}
	return nil
}

func (m *Model) jumpToProject(name string) {
	m.switchTab(TabProjects)
	m.view = ViewList
	m.projects.applyQuery("")
	m.projects.selectName(name)
}

func (m *Model) openMarkdownFile() {
	if m.mdCursor < 0 || m.mdCursor >= len(m.mdFiles) {
		return
	}
	path := m.mdFiles[m.mdCursor]
	content, err := os.ReadFile(path)
	if err != nil {
		m.logger.Warn("failed to read markdown file", "path", path, "err", err)
		m.flash(fmt.Sprintf("Read failed: %v", err))
		return
	}
	m.readerTitle = filepath.Base(path)
	m.pager.SetContent(renderMarkdown(string(content), m.pager.Width))
	m.pager.GotoTop()
	m.view = ViewReader
}

func (m *Model) openPlan() {
	p, ok := m.plans.list.Selected()
	if !ok {
		return
	}
	content, err := catalog.ReadPlan(p)
	if err != nil {
		m.logger.Warn("failed to read plan", "path", p.Path, "err", err)
		m.flash(fmt.Sprintf("Read failed: %v", err))
		return
	}
	m.readerTitle = p.Name
	m.pager.SetContent(renderMarkdown(content, m.pager.Width))
	m.pager.GotoTop()
	m.view = ViewPlanViewer
}

func (m *Model) openProjectDetail() {
	p, ok := m.projects.list.Selected()
	if !ok {
		return
	}
	m.projects.detailName = p.Name
	m.projects.detailTab = DetailInfo
	m.refreshProjectInfo()
	m.info.GotoTop()

	summary, _ := m.store.AnalysisSummary(p.Name)
	m.setAnalysisContent(summary)
	m.view = ViewProjectDetail
}

// detailProject is the project shown by the detail view
func (m Model) detailProject() (catalog.Project, bool) {
	for _, p := range m.projects.list.Items() {
		if p.Name == m.projects.detailName {
			return p, true
		}
	}
	return catalog.Project{}, false
}

func (m *Model) refreshProjectInfo() {
	p, ok := m.detailProject()
	if !ok {
		m.info.SetContent("")
		return
	}
	m.info.SetContent(m.projectInfo(p))
}

func (m *Model) setAnalysisContent(summary string) {
	m.analysisRaw = summary
	if summary == "" {
		m.analysis.SetContent(m.noAnalysis())
	} else {
		m.analysis.SetContent(renderMarkdown(summary, m.analysis.Width))
	}
	m.analysis.GotoTop()
}

func (m Model) startGlobalSearch() (tea.Model, tea.Cmd) {
	m.applyQuery("")
	m.search.SetValue("")
	m.results = nil
	m.resultCursor = 0
	m.searching = true
	m.view = ViewGlobalSearch
	cmd := m.search.Focus()
	return m, cmd
}

func (m *Model) runGlobalSearch() {
	m.results = catalog.Search(m.search.Value(),
		m.ideas.list.Items(),
		m.projects.list.Items(),
		m.plans.list.Items(),
		m.dotfiles.list.Items(),
	)
	m.resultCursor = 0
}

// jumpTo shows the tab holding r with r selected
func (m *Model) jumpTo(r catalog.SearchResult) {
	m.switchTab(tabForKind(r.Kind))
	switch r.Kind {
	case catalog.KindIdea:
		name := func(i catalog.Idea) string { return i.Folder }
		m.ideas.applyQuery("")
		if !selectResult(m.ideas.list, r, name) {
			m.ideas.filter = catalog.StatusAll
			m.ideas.applyQuery("")
			selectResult(m.ideas.list, r, name)
		}
	case catalog.KindProject:
		m.projects.applyQuery("")
		selectResult(m.projects.list, r, func(p catalog.Project) string { return p.Name })
	case catalog.KindPlan:
		m.plans.applyQuery("")
		selectResult(m.plans.list, r, func(p catalog.Plan) string { return p.Name })
	case catalog.KindDotfile:
		m.dotfiles.applyQuery("")
		selectResult(m.dotfiles.list, r, func(d catalog.DxItem) string { return d.Name })
	}
	m.view = ViewList
	m.results = nil
	m.search.SetValue("")
}
