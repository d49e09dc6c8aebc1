package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/adriangreen/ideas/internal/config"
	"github.com/adriangreen/ideas/internal/memory"
	"github.com/adriangreen/ideas/internal/ui"
)

func newTUICommand(a *app) *cobra.Command {
	var clearState bool
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, a, clearState)
		},
	}
	cmd.Flags().BoolVar(&clearState, "clear-state", false, "forget the saved dashboard view state before starting")
	return cmd
}

// NewTUIRootCommand creates the standalone ideas-tui command
func NewTUIRootCommand() *cobra.Command {
	a := &app{session: "ideas-tui"}
	var clearState bool

	cmd := &cobra.Command{
		Use:   "ideas-tui",
		Short: "Dashboard for ideas, projects, plans and dotfiles",
		Long: `ideas-tui browses the idea folders, project inventory, assistant plans
and dotfiles catalog in one terminal dashboard. Analyses and inventory
scans run in the background while you keep browsing.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, a, clearState)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/ideas/config.yaml)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&clearState, "clear-state", false, "forget the saved dashboard view state before starting")
	return cmd
}

func runTUI(cmd *cobra.Command, a *app, clearState bool) error {
	// Create context that can be cancelled
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle interrupt signals for clean shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	cfg := a.cfg

	prefs, err := memory.Open(cfg.Paths.StateDir, a.logger)
	if err != nil {
		// Log warning but don't fail - saved view state is optional
		fmt.Fprintf(a.errOut, "Warning: failed to open state store: %v\n", err)
		prefs = nil
	} else {
		defer prefs.Close()
	}

	if clearState && prefs != nil {
		if err := prefs.ClearPrefs(ctx); err != nil {
			fmt.Fprintf(a.errOut, "Warning: failed to clear state: %v\n", err)
		} else {
			fmt.Fprintf(a.errOut, "TUI state cleared successfully\n")
		}
	}

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
		fmt.Fprintf(a.errOut, "Warning: %v\n", err)
		a.logger.Warn("starting without projects", "err", err)
	}
	plans, err := a.store.LoadPlans(ctx)
	if err != nil {
		fmt.Fprintf(a.errOut, "Warning: %v\n", err)
		a.logger.Warn("starting without plans", "err", err)
	}
	dotfiles, err := a.store.LoadDotfiles()
	if err != nil {
		fmt.Fprintf(a.errOut, "Warning: %v\n", err)
		a.logger.Warn("starting without dotfiles", "err", err)
	}

	// Start file watcher
	var watcher *config.Watcher
	if cfg.TUI.Watch {
		watcher, err = startWatcher(ctx, cfg, root)
		if err != nil {
			// Log warning but don't fail - watchers are optional
			fmt.Fprintf(a.errOut, "Warning: failed to start file watcher: %v\n", err)
			a.logger.Warn("file watcher unavailable", "err", err)
			watcher = nil
		} else {
			defer watcher.Stop()
		}
	}

	m := ui.NewModel(ctx, ui.Deps{
		Config:    cfg,
		Store:     a.store,
		Runner:    a.exec,
		Prefs:     prefs,
		Watcher:   watcher,
		Logger:    a.logger,
		IdeasRoot: root,
		Ideas:     ideas,
		Projects:  projects,
		Plans:     plans,
		Dotfiles:  dotfiles,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// startWatcher watches the files other tools rewrite while the dashboard
// is open
func startWatcher(ctx context.Context, cfg *config.Config, root string) (*config.Watcher, error) {
	w, err := config.NewWatcher(ctx,
		cfg.Paths.ProjectInventory,
		cfg.Paths.AnalysisMeta,
		cfg.Paths.DxInventory,
		filepath.Join(root, config.TrackerFile),
	)
	if err != nil {
		return nil, err
	}
	if err := w.Start(cfg.TUI.WatchDebounce); err != nil {
		w.Stop()
		return nil, err
	}
	return w, nil
}
