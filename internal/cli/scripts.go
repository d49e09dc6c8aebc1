package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adriangreen/ideas/internal/catalog"
	"github.com/adriangreen/ideas/internal/executor"
)

// allMissing selects every project without a summary
const allMissing = "all-missing"

func newRefreshCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Rescan the developer directory and rebuild the project inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.out, "Refreshing project inventory...")

			_, err := a.exec.Run(cmd.Context(), executor.Invocation{
				Script: a.cfg.Scripts.ScanInventory,
				Stdout: a.out,
				Stderr: a.errOut,
			})
			if err != nil {
				a.logger.Warn("inventory refresh failed", "err", err)
				fmt.Fprintln(a.out, errorStyle.Render("Failed to refresh inventory"))
				fmt.Fprintln(a.errOut, err)
				return &ExitError{Code: 1}
			}
			fmt.Fprintln(a.out, okStyle.Render("Done!"))
			return nil
		},
	}
}

func newSummarizeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <project|all-missing>",
		Short: "Generate a one-line AI summary for a project, or for every project missing one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := a.store.LoadProjects()
			if err != nil {
				return err
			}

			summarize := func(name string) error {
				_, err := a.exec.Run(cmd.Context(), executor.Invocation{
					Script: a.cfg.Scripts.GenerateSummary,
					Args:   []string{name},
					Stdout: a.out,
					Stderr: a.errOut,
				})
				if err != nil {
					a.logger.Warn("summary generation failed", "project", name, "err", err)
				}
				return err
			}

			if args[0] != allMissing {
				if _, err := catalog.FindProject(projects, args[0]); err != nil {
					fmt.Fprintln(a.errOut, errorStyle.Render("Project not found: "+args[0]))
					return &ExitError{Code: 1}
				}
				if err := summarize(args[0]); err != nil {
					fmt.Fprintln(a.errOut, errorStyle.Render("Failed to generate summary"))
					return &ExitError{Code: 1}
				}
				fmt.Fprintln(a.out)
				fmt.Fprintln(a.out, okStyle.Render("Done! Run 'icli refresh' to update the inventory."))
				return nil
			}

			var missing []catalog.Project
			for _, p := range projects {
				if p.Summary == "" {
					missing = append(missing, p)
				}
			}
			if len(missing) == 0 {
				fmt.Fprintln(a.out, okStyle.Render("All projects have summaries!"))
				return nil
			}

			fmt.Fprintln(a.out, nameStyle.Render(fmt.Sprintf("Generating summaries for %d projects...", len(missing))))
			for _, p := range missing {
				fmt.Fprintln(a.out)
				fmt.Fprintln(a.out, warnStyle.Render("=== "+p.Name+" ==="))
				if err := summarize(p.Name); err != nil {
					fmt.Fprintln(a.errOut, errorStyle.Render("Failed to generate summary for "+p.Name))
				}
			}
			fmt.Fprintln(a.out)
			fmt.Fprintln(a.out, okStyle.Render("Done! Run 'icli refresh' to update the inventory."))
			return nil
		},
	}
}
