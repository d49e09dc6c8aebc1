package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/adriangreen/ideas/internal/catalog"
	"github.com/adriangreen/ideas/internal/config"
	"github.com/adriangreen/ideas/internal/executor"
	"github.com/adriangreen/ideas/internal/gitinfo"
	"github.com/adriangreen/ideas/internal/logging"
	"github.com/adriangreen/ideas/internal/mdquery"
)

// ExitError carries a process exit code for failures that were already
// reported to the user
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// app is the per-invocation wiring shared by every subcommand
type app struct {
	configPath string
	logLevel   string
	session    string

	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
	git    gitinfo.Client
	md     mdquery.Querier
	store  *catalog.Store
	exec   *executor.Service

	out    io.Writer
	errOut io.Writer
}

// setup resolves configuration and builds the collaborators. It runs once
// per invocation, before the subcommand.
func (a *app) setup(cmd *cobra.Command) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to resolve home directory: %w", err)
	}
	cfg, err := config.LoadFrom(home, a.configPath, os.Getenv)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	a.cfg = cfg
	a.logger, a.closer = logging.Open(cfg, a.session)
	a.git = gitinfo.New(cfg.Tools.Git, a.logger)
	a.md = mdquery.New(cfg, a.logger)
	a.store = catalog.New(cfg, a.git, a.md, a.logger)
	a.exec = executor.NewService(a.logger)
	a.out = cmd.OutOrStdout()
	a.errOut = cmd.ErrOrStderr()

	a.logger.Debug("command started", "command", cmd.CommandPath(), "config", cfg.Source)
	return nil
}

func (a *app) teardown() {
	if a.closer != nil {
		a.closer.Close()
	}
}

// ideasRoot finds the repo holding the tracker for commands that need ideas
func (a *app) ideasRoot(cmd *cobra.Command) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	return a.cfg.FindIdeasRepo(cwd, gitinfo.ToplevelFunc(cmd.Context(), a.git))
}

// NewRootCommand creates the icli command tree
func NewRootCommand() *cobra.Command {
	a := &app{session: "icli"}

	cmd := &cobra.Command{
		Use:   "icli",
		Short: "Unified CLI for ideas, projects, and plans",
		Long: `icli inventories local projects, idea folders, assistant plans and
dotfiles tooling. It lists and searches them, tracks which project
analyses are stale, and runs the generator scripts that keep the
inventory current.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/ideas/config.yaml)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newIdeasCommand(a),
		newProjectsCommand(a),
		newSummaryCommand(a),
		newPlansCommand(a),
		newSearchCommand(a),
		newStatsCommand(a),
		newRefreshCommand(a),
		newDotfilesCommand(a),
		newDirtyCommand(a),
		newAnalyzeCommand(a),
		newContextCommand(a),
		newSnapshotCommand(a),
		newStatusCommand(a),
		newPruneCommand(a),
		newSummarizeCommand(a),
		newUntrackedCommand(a),
		newRecentCommand(a),
		newTUICommand(a),
	)
	return cmd
}

// Execute runs cmd and returns the process exit code. Errors not already
// reported are printed to stderr.
func Execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", errorStyle.Render("Error:"), err)
	return 1
}
