package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/adriangreen/ideas/internal/snapshot"
)

func newSnapshotCommand(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Bundle analyses, inventory and tracker into a zip for upload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("failed to resolve home directory: %w", err)
				}
				output = snapshot.DefaultOutput(home, time.Now())
			}

			fmt.Fprintln(a.out, nameStyle.Render("Creating NotebookLM snapshot..."))
			sum, err := snapshot.Create(a.store, output)
			if err != nil {
				return err
			}

			count := func(n int) string { return headerStyle.Render(fmt.Sprint(n)) }
			fmt.Fprintf(a.out, "  %s analysis files\n", count(sum.AnalysisFiles))
			if sum.Inventory {
				fmt.Fprintf(a.out, "  %s project inventory (as markdown)\n", count(1))
			}
			if sum.Tracker {
				fmt.Fprintf(a.out, "  %s tracker (as markdown)\n", count(1))
			}
			fmt.Fprintf(a.out, "  %s repo docs\n", count(sum.Docs))
			fmt.Fprintln(a.out)
			fmt.Fprintf(a.out, "%s: %s (%s compressed)\n",
				okStyle.Render("Snapshot"), sum.Path, humanize.Bytes(uint64(sum.Size)))

			a.logger.Info("snapshot created", "path", sum.Path, "bytes", sum.Size)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default ~/Downloads/ideas-snapshot-YYYY-MM-DD.zip)")
	return cmd
}
