package cli

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/adriangreen/ideas/internal/catalog"
	"github.com/adriangreen/ideas/internal/executor"
)

const neverAnalyzedLimit = 10

type analysisEntry struct {
	name     string
	commits  int
	category string
}

func byCommitsDesc(a, b analysisEntry) int {
	return cmp.Compare(b.commits, a.commits)
}

func newDirtyCommand(a *app) *cobra.Command {
	var trackedOnly, staleOnly bool

	cmd := &cobra.Command{
		Use:   "dirty",
		Short: "Show projects that need (re-)analysis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := a.store.LoadProjects()
			if err != nil {
				return err
			}
			meta, err := a.store.LoadAnalysisMeta()
			if err != nil {
				return err
			}

			var stale, never []analysisEntry
			for _, p := range projects {
				if a.store.HasAnalysisFile(p.Name) {
					if d := a.store.CheckDirty(cmd.Context(), p, meta); d.Stale() {
						stale = append(stale, analysisEntry{p.Name, d.CommitsSince, p.Category})
					}
				} else if p.Commits > 0 {
					never = append(never, analysisEntry{p.Name, p.Commits, p.Category})
				}
			}
			slices.SortStableFunc(stale, byCommitsDesc)
			slices.SortStableFunc(never, byCommitsDesc)

			showNever := !trackedOnly && !staleOnly

			fmt.Fprintln(a.out, headerStyle.Render("=== Analysis Status ==="))
			fmt.Fprintln(a.out)

			if len(stale) > 0 {
				fmt.Fprintln(a.out, warnStyle.Render(fmt.Sprintf("Stale (%d projects):", len(stale))))
				for _, e := range stale {
					fmt.Fprintf(a.out, "  %s %s commits since  [%s]\n",
						cell(nameStyle.Render(e.name), 22), errorStyle.Render(fmt.Sprint(e.commits)), e.category)
				}
				fmt.Fprintln(a.out)
			}

			if showNever && len(never) > 0 {
				fmt.Fprintln(a.out, sectionStyle.Render(fmt.Sprintf("Never Analyzed (%d projects):", len(never))))
				for _, e := range never[:min(len(never), neverAnalyzedLimit)] {
					fmt.Fprintf(a.out, "  %s %d commits  [%s]\n", cell(e.name, 22), e.commits, e.category)
				}
				if len(never) > neverAnalyzedLimit {
					fmt.Fprintf(a.out, "  ... %d more\n", len(never)-neverAnalyzedLimit)
				}
				fmt.Fprintln(a.out)
			}

			analyzed := len(meta.Projects)
			upToDate := max(analyzed-len(stale), 0)
			fmt.Fprintf(a.out, "%s: %d analyzed (%s up to date, %s stale), %s never analyzed\n",
				headerStyle.Render("Summary"),
				analyzed,
				okStyle.Render(fmt.Sprint(upToDate)),
				warnStyle.Render(fmt.Sprint(len(stale))),
				nameStyle.Render(fmt.Sprint(len(never))),
			)

			if len(stale) == 0 && len(never) == 0 {
				fmt.Fprintln(a.out)
				fmt.Fprintln(a.out, okStyle.Render("✓ All projects are analyzed and up to date!"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&trackedOnly, "tracked-only", false, "only show projects that already have analysis files")
	cmd.Flags().BoolVar(&staleOnly, "stale-only", false, "only show projects with commits since last analysis")
	return cmd
}

// analysisMode names the kind of run for the progress header
func analysisMode(deep, summaryOnly bool) string {
	switch {
	case deep:
		return "deep (Claude-powered)"
	case summaryOnly:
		return "summary only"
	default:
		return "scaffold"
	}
}

func newAnalyzeCommand(a *app) *cobra.Command {
	var summaryOnly, force, deep bool

	cmd := &cobra.Command{
		Use:   "analyze <project>",
		Short: "Generate analysis for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			projects, err := a.store.LoadProjects()
			if err != nil {
				return err
			}
			meta, err := a.store.LoadAnalysisMeta()
			if err != nil {
				return err
			}
			project, err := catalog.FindProject(projects, name)
			if err != nil {
				return err
			}

			dirty := a.store.CheckDirty(ctx, project, meta)
			if !force && !dirty.NeedsAnalysis() {
				fmt.Fprintf(a.out, "Project '%s' is up to date (analyzed at %s, commit %s)\n",
					name, orDash(dirty.AnalyzedAt), orDash(dirty.AnalyzedCommit))
				fmt.Fprintln(a.out, "Use --force to re-analyze anyway.")
				return nil
			}

			fmt.Fprintln(a.out, nameStyle.Render(fmt.Sprintf("Analyzing %s...", name)))
			fmt.Fprintf(a.out, "  Path: %s\n", project.Path)
			fmt.Fprintf(a.out, "  Tech: %s\n", project.Tech)
			fmt.Fprintf(a.out, "  Mode: %s\n", analysisMode(deep, summaryOnly))
			fmt.Fprintln(a.out)

			script := a.cfg.Scripts.Analyze
			if deep {
				script = a.cfg.Scripts.AnalyzeDeep
			}
			scriptArgs := []string{project.Path}
			if summaryOnly {
				scriptArgs = append(scriptArgs, "--summary-only")
			}

			_, err = a.exec.Run(ctx, executor.Invocation{
				Script: script,
				Args:   scriptArgs,
				Stdout: a.out,
				Stderr: a.errOut,
			})
			if err != nil {
				a.logger.Warn("analysis failed", "project", name, "err", err)
				fmt.Fprintln(a.out, errorStyle.Render("Analysis failed"))
				fmt.Fprintln(a.errOut, err)
				return &ExitError{Code: 1}
			}

			head, _ := a.git.HeadCommit(ctx, project.Path)
			meta.Record(name, head, time.Now())
			if err := a.store.SaveAnalysisMeta(meta); err != nil {
				return err
			}

			fmt.Fprintln(a.out, okStyle.Render("Analysis complete!"))
			fmt.Fprintf(a.out, "  Output: %s\n", a.cfg.AnalysisFile(name))
			return nil
		},
	}

	cmd.Flags().BoolVar(&summaryOnly, "summary-only", false, "only generate the summary section (faster)")
	cmd.Flags().BoolVar(&force, "force", false, "re-analyze even if up to date")
	cmd.Flags().BoolVar(&deep, "deep", false, "fill in analysis content with the deep script (slower but richer)")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// missingAnalysis reports the absent file on stderr and fails with exit 1
func missingAnalysis(a *app, name, hint string) error {
	fmt.Fprintf(a.errOut, "%s: No analysis file for '%s'\n", errorStyle.Render("Error"), name)
	fmt.Fprintf(a.errOut, "Run: icli analyze %s%s\n", name, hint)
	return &ExitError{Code: 1}
}

func newContextCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "context <project>",
		Short: "Print the analysis file for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := a.store.AnalysisContent(args[0])
			if err != nil {
				if errors.Is(err, catalog.ErrNoAnalysis) {
					return missingAnalysis(a, args[0], "")
				}
				return err
			}
			printMarkdown(a.out, content)
			return nil
		},
	}
}

func newSummaryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <project>",
		Short: "Show the analysis summary for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, ok := a.store.AnalysisSummary(args[0])
			if !ok {
				return missingAnalysis(a, args[0], " --deep")
			}
			printMarkdown(a.out, summary)
			return nil
		},
	}
}

func newPruneCommand(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove analysis files with no matching project in the inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := a.store.LoadProjects()
			if err != nil {
				return err
			}
			orphans, err := a.store.OrphanedAnalyses(projects)
			if err != nil {
				return err
			}

			if len(orphans) == 0 {
				fmt.Fprintln(a.out, okStyle.Render("✓ No orphaned analysis files found"))
				return nil
			}

			fmt.Fprintln(a.out, warnStyle.Render(fmt.Sprintf("Found %d orphaned analysis files:", len(orphans))))
			fmt.Fprintln(a.out)
			for _, o := range orphans {
				fmt.Fprintf(a.out, "  %s → %s\n", errorStyle.Render(o.Name), o.Path)
			}
			fmt.Fprintln(a.out)

			if !force {
				fmt.Fprintf(a.out, "Run %s to delete these files\n", nameStyle.Render("icli prune --force"))
				return nil
			}

			meta, err := a.store.LoadAnalysisMeta()
			if err != nil {
				return err
			}
			if err := a.store.RemoveOrphans(orphans, meta); err != nil {
				return err
			}
			for _, o := range orphans {
				fmt.Fprintf(a.out, "  %s %s\n", errorStyle.Render("Deleted:"), o.Name)
			}
			fmt.Fprintln(a.out)
			fmt.Fprintf(a.out, "%s: Removed %d orphaned files\n", okStyle.Render("Done"), len(orphans))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "actually delete files (default is a dry run)")
	return cmd
}
