package cli

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/adriangreen/ideas/internal/catalog"
)

const (
	statusListLimit  = 5
	statusStaleLimit = 3
	topCategories    = 5
)

// health is the portfolio state reported by status
type health struct {
	untracked     []catalog.UntrackedProject
	needsAnalysis []analysisEntry
	stale         []analysisEntry
	recent        []catalog.RecentProject
	projects      int
	analyzed      int
}

func (h health) issues() int {
	return len(h.untracked) + len(h.needsAnalysis) + len(h.stale)
}

func collectHealth(ctx context.Context, a *app, days int) (health, error) {
	var h health

	untracked, err := a.store.DetectUntracked(ctx)
	if err != nil {
		return h, err
	}
	h.untracked = untracked

	projects, err := a.store.LoadProjects()
	if err != nil {
		return h, err
	}
	meta, err := a.store.LoadAnalysisMeta()
	if err != nil {
		return h, err
	}
	h.projects = len(projects)
	h.analyzed = len(meta.Projects)

	for _, p := range projects {
		if !a.store.HasAnalysisFile(p.Name) {
			if p.Commits > 0 {
				h.needsAnalysis = append(h.needsAnalysis, analysisEntry{p.Name, p.Commits, p.Category})
			}
			continue
		}
		if d := a.store.CheckDirty(ctx, p, meta); d.Stale() {
			h.stale = append(h.stale, analysisEntry{p.Name, d.CommitsSince, p.Category})
		}
	}
	slices.SortStableFunc(h.needsAnalysis, byCommitsDesc)
	slices.SortStableFunc(h.stale, byCommitsDesc)

	h.recent, err = a.store.RecentActivity(ctx, days)
	if err != nil {
		return h, err
	}
	return h, nil
}

func newStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show portfolio health: new projects, stale analyses, recent activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			days := a.cfg.TUI.RecentDays

			fmt.Fprintln(a.out, headerStyle.Render("=== Portfolio Status ==="))
			fmt.Fprintln(a.out)

			h, err := collectHealth(ctx, a, days)
			if err != nil {
				return err
			}

			if len(h.untracked) > 0 {
				fmt.Fprintln(a.out, warnStyle.Render("⚠ New Projects (not in inventory):"))
				for _, u := range h.untracked[:min(len(h.untracked), statusListLimit)] {
					fmt.Fprintf(a.out, "  %s %s (%d commits, %s)\n", cell(nameStyle.Render(u.Name), 18), u.Path, u.Commits, u.Tech)
				}
				if len(h.untracked) > statusListLimit {
					fmt.Fprintf(a.out, "  ... %d more\n", len(h.untracked)-statusListLimit)
				}
				fmt.Fprintf(a.out, "  Run %s to add them\n", okStyle.Render("icli refresh"))
				fmt.Fprintln(a.out)
			}

			if len(h.needsAnalysis) > 0 {
				fmt.Fprintln(a.out, warnStyle.Render(fmt.Sprintf("⚠ Needs Analysis (%d projects):", len(h.needsAnalysis))))
				for _, e := range h.needsAnalysis[:min(len(h.needsAnalysis), statusListLimit)] {
					fmt.Fprintf(a.out, "  %s %d commits  [%s]\n", cell(nameStyle.Render(e.name), 18), e.commits, e.category)
				}
				if len(h.needsAnalysis) > statusListLimit {
					fmt.Fprintf(a.out, "  ... %d more (run %s)\n", len(h.needsAnalysis)-statusListLimit, okStyle.Render("icli dirty"))
				}
				fmt.Fprintln(a.out)
			}

			if len(h.stale) > 0 {
				fmt.Fprintln(a.out, warnStyle.Render(fmt.Sprintf("⚠ Stale Analyses (%d total):", len(h.stale))))
				for _, e := range h.stale[:min(len(h.stale), statusStaleLimit)] {
					fmt.Fprintf(a.out, "  %s %s commits since analysis\n", cell(nameStyle.Render(e.name), 18), errorStyle.Render(fmt.Sprint(e.commits)))
				}
				if len(h.stale) > statusStaleLimit {
					fmt.Fprintf(a.out, "  ... run %s for full list\n", okStyle.Render("icli dirty"))
				}
				fmt.Fprintln(a.out)
			}

			if len(h.recent) > 0 {
				section(a.out, fmt.Sprintf("Recent Activity (last %d days):", days))
				for _, r := range h.recent[:min(len(h.recent), statusListLimit)] {
					fmt.Fprintf(a.out, "  %s %s  %s\n", cell(nameStyle.Render(r.Name), 18), r.Date, truncate(r.Message, 40))
				}
				if len(h.recent) > statusListLimit {
					fmt.Fprintf(a.out, "  ... %d more active projects\n", len(h.recent)-statusListLimit)
				}
				fmt.Fprintln(a.out)
			}

			root, err := a.ideasRoot(cmd)
			if err != nil {
				return err
			}
			ideas, err := a.store.LoadIdeas(ctx, root)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s: %d projects │ %d analyzed │ %d ideas\n",
				headerStyle.Render("Quick Stats"), h.projects, h.analyzed, len(ideas))

			if h.issues() == 0 {
				fmt.Fprintln(a.out)
				fmt.Fprintln(a.out, okStyle.Render("✓ Portfolio is healthy!"))
			}
			return nil
		},
	}
}

type categoryCount struct {
	name  string
	count int
}

// countCategories tallies categories, largest first and then by name
func countCategories(categories []string) []categoryCount {
	counts := make(map[string]int)
	for _, c := range categories {
		counts[c]++
	}
	out := make([]categoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, categoryCount{name, n})
	}
	slices.SortFunc(out, func(a, b categoryCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})
	return out
}

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show statistics across all sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			root, err := a.ideasRoot(cmd)
			if err != nil {
				return err
			}
			ideas, err := a.store.LoadIdeas(ctx, root)
			if err != nil {
				return err
			}
			projects, err := a.store.LoadProjects()
			if err != nil {
				return err
			}
			plans, err := a.store.LoadPlans(ctx)
			if err != nil {
				return err
			}
			dotfiles, err := a.store.LoadDotfiles()
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, headerStyle.Render("=== Portfolio Stats ==="))
			fmt.Fprintln(a.out)

			var active, dormant int
			for _, i := range ideas {
				switch i.Status {
				case "active":
					active++
				case "dormant":
					dormant++
				}
			}
			fmt.Fprintf(a.out, "%s: %d (%d active, %d dormant)\n", warnStyle.Render("Ideas"), len(ideas), active, dormant)

			analyzed := 0
			if meta, err := a.store.LoadAnalysisMeta(); err == nil {
				analyzed = len(meta.Projects)
			} else {
				a.logger.Warn("analysis metadata unreadable", "err", err)
			}
			fmt.Fprintf(a.out, "%s: %d (%d analyzed)\n", nameStyle.Render("Projects"), len(projects), analyzed)

			projectCats := make([]string, len(projects))
			for i, p := range projects {
				projectCats[i] = p.Category
			}
			counts := countCategories(projectCats)
			for _, c := range counts[:min(len(counts), topCategories)] {
				fmt.Fprintf(a.out, "  %s: %d\n", c.name, c.count)
			}

			fmt.Fprintf(a.out, "%s: %d\n", sectionStyle.Render("Plans"), len(plans))

			dxCats := make([]string, len(dotfiles))
			for i, d := range dotfiles {
				dxCats[i] = d.Category
			}
			var parts []string
			for _, c := range countCategories(dxCats) {
				parts = append(parts, fmt.Sprintf("%d %s", c.count, c.name))
			}
			fmt.Fprintf(a.out, "%s: %d (%s)\n", sectionStyle.Render("Dotfiles"), len(dotfiles), strings.Join(parts, ", "))

			fmt.Fprintln(a.out)
			fmt.Fprintf(a.out, "%s: %d\n", headerStyle.Render("Total items"), len(ideas)+len(projects)+len(plans)+len(dotfiles))
			return nil
		},
	}
}

func newUntrackedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "untracked",
		Short: "List repositories under the developer directory missing from the inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			untracked, err := a.store.DetectUntracked(cmd.Context())
			if err != nil {
				return err
			}
			if len(untracked) == 0 {
				fmt.Fprintln(a.out, okStyle.Render("✓ Every project is in the inventory"))
				return nil
			}

			widths := []int{22, 8, 8}
			header(a.out, widths, "NAME", "TECH", "COMMITS", "PATH")
			for _, u := range untracked {
				fmt.Fprintln(a.out, row(widths, truncate(u.Name, 21), u.Tech, fmt.Sprint(u.Commits), u.Path))
			}
			fmt.Fprintln(a.out)
			fmt.Fprintf(a.out, "Run %s to add them\n", okStyle.Render("icli refresh"))
			return nil
		},
	}
}

// relativeDay renders a YYYY-MM-DD commit date as "3 days ago"
func relativeDay(date string, now time.Time) string {
	t, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return ""
	}
	if now.Sub(t) < 24*time.Hour {
		return "today"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

func newRecentCommand(a *app) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List inventoried projects with recent commits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				days = a.cfg.TUI.RecentDays
			}
			recent, err := a.store.RecentActivity(cmd.Context(), days)
			if err != nil {
				return err
			}
			if len(recent) == 0 {
				fmt.Fprintf(a.out, "No commits in the last %d days\n", days)
				return nil
			}

			now := time.Now()
			widths := []int{22, 12, 14}
			header(a.out, widths, "NAME", "DATE", "WHEN", "MESSAGE")
			for _, r := range recent {
				fmt.Fprintln(a.out, row(widths,
					truncate(r.Name, 21),
					r.Date,
					dimStyle.Render(relativeDay(r.Date, now)),
					truncate(r.Message, 50),
				))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "window in days (default from config)")
	return cmd
}
