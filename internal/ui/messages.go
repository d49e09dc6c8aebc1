package ui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adriangreen/ideas/internal/catalog"
	"github.com/adriangreen/ideas/internal/config"
)

// tickMsg drives task polling and message expiry
type tickMsg time.Time

// DataChangedMsg is sent when a watched data file was written
type DataChangedMsg struct {
	Path string
}

// WatcherErrorMsg is sent when the file watcher encounters an error
type WatcherErrorMsg struct {
	Err error
}

// IdeasLoadedMsg carries a reload of the tracker
type IdeasLoadedMsg struct {
	Ideas []catalog.Idea
	Err   error
}

// PlansLoadedMsg carries a reload of the plans directory
type PlansLoadedMsg struct {
	Plans []catalog.Plan
	Err   error
}

// DotfilesLoadedMsg carries a reload of the dotfiles inventory
type DotfilesLoadedMsg struct {
	Items []catalog.DxItem
	Err   error
}

// editorFinishedMsg is sent when the editor process exits
type editorFinishedMsg struct {
	Path string
	Err  error
}

// openedMsg is sent when the opener returns
type openedMsg struct {
	Path string
	Err  error
}

// copiedMsg is sent after writing to the clipboard
type copiedMsg struct {
	Path string
	Err  error
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// WaitForChange returns a command that waits for the next watched file
// change or watcher error. It returns nil once the watcher is stopped.
func WaitForChange(w *config.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case c, ok := <-w.Events():
			if !ok {
				return nil
			}
			return DataChangedMsg{Path: c.Path}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return WatcherErrorMsg{Err: err}
		}
	}
}

// LoadIdeasCmd reloads the tracker and the README-derived fields
func LoadIdeasCmd(ctx context.Context, store *catalog.Store, root string) tea.Cmd {
	return func() tea.Msg {
		ideas, err := store.LoadIdeas(ctx, root)
		return IdeasLoadedMsg{Ideas: ideas, Err: err}
	}
}

// LoadPlansCmd reloads the plans directory
func LoadPlansCmd(ctx context.Context, store *catalog.Store) tea.Cmd {
	return func() tea.Msg {
		plans, err := store.LoadPlans(ctx)
		return PlansLoadedMsg{Plans: plans, Err: err}
	}
}

// LoadDotfilesCmd reloads the dotfiles inventory
func LoadDotfilesCmd(store *catalog.Store) tea.Cmd {
	return func() tea.Msg {
		items, err := store.LoadDotfiles()
		return DotfilesLoadedMsg{Items: items, Err: err}
	}
}

func copyPathCmd(path string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{Path: path, Err: clipboard.WriteAll(path)}
	}
}
