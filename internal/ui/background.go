package ui

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/adriangreen/ideas/internal/catalog"
	"github.com/adriangreen/ideas/internal/executor"
	"github.com/adriangreen/ideas/internal/tasks"
)

// ProjectsTask is the kind of work running in the projects slot. It decides
// how the result is merged into the projects tab.
type ProjectsTask int

const (
	// TaskAnalyze patches the derived analysis status of one project
	TaskAnalyze ProjectsTask = iota
	// TaskInventoryRefresh replaces every project with a reloaded inventory
	TaskInventoryRefresh
)

func (k ProjectsTask) String() string {
	switch k {
	case TaskAnalyze:
		return "analyze"
	case TaskInventoryRefresh:
		return "inventory refresh"
	}
	return "unknown"
}

// projectsUpdate is the payload of a projects slot task
type projectsUpdate struct {
	Kind ProjectsTask

	// TaskAnalyze
	Project  string
	Analyzed bool
	Summary  string

	// TaskInventoryRefresh; Projects is nil when the reload failed
	Projects    []catalog.Project
	AnalyzedSet map[string]bool
}

func analyzedSet(store *catalog.Store, projects []catalog.Project) map[string]bool {
	set := make(map[string]bool, len(projects))
	for _, p := range projects {
		if store.HasAnalysisFile(p.Name) {
			set[p.Name] = true
		}
	}
	return set
}

// analyzeProject runs the analysis script for p when its analysis is
// missing or stale and records the analyzed commit
func analyzeProject(ctx context.Context, store *catalog.Store, runner ScriptRunner, script string, p catalog.Project, now func() time.Time) tasks.Result[projectsUpdate] {
	upd := projectsUpdate{Kind: TaskAnalyze, Project: p.Name}
	finish := func(success bool, msg string) tasks.Result[projectsUpdate] {
		upd.Analyzed = store.HasAnalysisFile(p.Name)
		if success {
			upd.Summary, _ = store.AnalysisSummary(p.Name)
		}
		return tasks.Result[projectsUpdate]{Success: success, Message: msg, Payload: upd}
	}

	meta, err := store.LoadAnalysisMeta()
	if err != nil {
		return finish(false, fmt.Sprintf("Load meta failed: %v", err))
	}
	if !store.CheckDirty(ctx, p, meta).NeedsAnalysis() {
		return finish(true, "Up to date")
	}

	if _, err := runner.Run(ctx, executor.Invocation{Script: script, Args: []string{p.Path}}); err != nil {
		return finish(false, "Analysis failed")
	}

	head, _ := store.Git().HeadCommit(ctx, p.Path)
	meta.Record(p.Name, head, now())
	if err := store.SaveAnalysisMeta(meta); err != nil {
		return finish(false, fmt.Sprintf("Save meta failed: %v", err))
	}
	return finish(true, "Analysis complete")
}

// reloadInventory reads the project inventory and the analysis files
func reloadInventory(store *catalog.Store, okMessage string) tasks.Result[projectsUpdate] {
	upd := projectsUpdate{Kind: TaskInventoryRefresh}
	projects, err := store.LoadProjects()
	if err != nil {
		return tasks.Result[projectsUpdate]{Message: fmt.Sprintf("Reload failed: %v", err), Payload: upd}
	}
	if projects == nil {
		projects = []catalog.Project{}
	}
	upd.Projects = projects
	upd.AnalyzedSet = analyzedSet(store, projects)
	return tasks.Result[projectsUpdate]{Success: true, Message: okMessage, Payload: upd}
}

// refreshInventory rescans the developer directory, then reloads
func refreshInventory(ctx context.Context, store *catalog.Store, runner ScriptRunner, script string) tasks.Result[projectsUpdate] {
	if _, err := runner.Run(ctx, executor.Invocation{Script: script}); err != nil {
		msg := "Refresh failed"
		if errors.Is(err, executor.ErrScriptNotFound) {
			msg = "Refresh failed: scan script not found"
		}
		return tasks.Result[projectsUpdate]{Message: msg, Payload: projectsUpdate{Kind: TaskInventoryRefresh}}
	}
	return reloadInventory(store, "Inventory refreshed")
}

// collectStatus gathers the status dashboard. Each part degrades to empty on
// failure; the message reports that the report is partial.
func collectStatus(ctx context.Context, store *catalog.Store, projects []catalog.Project, days int) tasks.Result[statusReport] {
	var (
		r    statusReport
		errs []error
	)

	untracked, err := store.DetectUntracked(ctx)
	if err != nil {
		errs = append(errs, err)
	}
	r.Untracked = untracked

	if meta, err := store.LoadAnalysisMeta(); err == nil {
		for _, p := range projects {
			if d := store.CheckDirty(ctx, p, meta); d.Stale() {
				r.Stale = append(r.Stale, staleProject{Name: p.Name, Commits: d.CommitsSince})
			}
		}
		slices.SortStableFunc(r.Stale, func(a, b staleProject) int { return cmp.Compare(b.Commits, a.Commits) })
	} else {
		errs = append(errs, err)
	}

	recent, err := store.RecentActivity(ctx, days)
	if err != nil {
		errs = append(errs, err)
	}
	r.Recent = recent

	if err := errors.Join(errs...); err != nil {
		return tasks.Result[statusReport]{Message: fmt.Sprintf("Status incomplete: %v", err), Payload: r}
	}
	return tasks.Result[statusReport]{Success: true, Payload: r}
}

// startAnalysis analyzes the selected project in the projects slot
func (m *Model) startAnalysis(deep bool) {
	p, ok := m.projects.list.Selected()
	if m.view == ViewProjectDetail {
		p, ok = m.detailProject()
	}
	if !ok {
		return
	}

	label, script := "Analyzing", m.cfg.Scripts.Analyze
	if deep {
		label, script = "Deep analyzing", m.cfg.Scripts.AnalyzeDeep
	}

	ctx, store, runner, now := m.ctx, m.store, m.runner, m.now
	m.projects.task.Start(fmt.Sprintf("%s %s…", label, p.Name), func() tasks.Result[projectsUpdate] {
		return analyzeProject(ctx, store, runner, script, p, now)
	})
}

// startInventoryRefresh runs the scan script in the projects slot
func (m *Model) startInventoryRefresh() {
	ctx, store, runner, script := m.ctx, m.store, m.runner, m.cfg.Scripts.ScanInventory
	m.projects.task.Start("Refreshing inventory…", func() tasks.Result[projectsUpdate] {
		return refreshInventory(ctx, store, runner, script)
	})
}

// startInventoryReload re-reads an inventory that changed on disk
func (m *Model) startInventoryReload() {
	store := m.store
	m.projects.task.Start("Reloading inventory…", func() tasks.Result[projectsUpdate] {
		return reloadInventory(store, "Inventory reloaded")
	})
}

// startStatusRefresh recomputes the status dashboard in the status slot
func (m *Model) startStatusRefresh() {
	ctx, store, days := m.ctx, m.store, m.cfg.TUI.RecentDays
	projects := slices.Clone(m.projects.list.Items())
	m.status.task.Start("Scanning projects…", func() tasks.Result[statusReport] {
		return collectStatus(ctx, store, projects, days)
	})
}

// pollProjects merges a finished projects task
func (m *Model) pollProjects() {
	res, outcome := m.projects.task.Poll()
	if outcome != tasks.Finished {
		return
	}
	upd := res.Payload
	m.logger.Debug("projects task merged", "kind", upd.Kind, "success", res.Success)
	m.projects.markMerged(m.cfg.Paths.ProjectInventory, m.cfg.Paths.AnalysisMeta)

	switch upd.Kind {
	case TaskAnalyze:
		name := m.projects.selectedName()
		m.projects.analyzed[upd.Project] = upd.Analyzed
		if m.view == ViewProjectDetail && m.projects.detailName == upd.Project && upd.Summary != "" {
			m.setAnalysisContent(upd.Summary)
		}
		m.projects.resort()
		m.projects.selectName(name)
	case TaskInventoryRefresh:
		if upd.Projects == nil {
			break
		}
		m.projects.replace(upd.Projects, upd.AnalyzedSet)
	}

	if m.view == ViewProjectDetail {
		m.refreshProjectInfo()
	}
	m.startStatusRefresh()
}

// pollStatus merges a finished status refresh
func (m *Model) pollStatus() {
	res, outcome := m.status.task.Poll()
	if outcome != tasks.Finished {
		return
	}
	m.status.report = res.Payload
	m.status.loaded = true
}
