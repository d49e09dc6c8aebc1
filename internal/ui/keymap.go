package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings for the dashboard
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Open     key.Binding
	Back     key.Binding

	// Lists
	Sort         key.Binding
	Filter       key.Binding
	Search       key.Binding
	GlobalSearch key.Binding

	// Projects and status
	Analyze     key.Binding
	DeepAnalyze key.Binding
	Refresh     key.Binding

	// Actions
	Edit       key.Binding
	OpenFolder key.Binding
	CopyPath   key.Binding

	// Help and quit
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		HalfUp: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "up 10 lines"),
		),
		HalfDown: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "down 10 lines"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous tab"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back/clear"),
		),

		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle sort"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter by status"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		GlobalSearch: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "search everything"),
		),

		Analyze: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "analyze project"),
		),
		DeepAnalyze: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "deep analyze project"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),

		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit README"),
		),
		OpenFolder: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open folder"),
		),
		CopyPath: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy path"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// NewKeyMap returns the default keybindings with overrides from the tui.keys
// section of the config, keyed by action name
func NewKeyMap(overrides map[string]string) KeyMap {
	km := DefaultKeyMap()

	bindings := map[string]*key.Binding{
		"sort":          &km.Sort,
		"filter":        &km.Filter,
		"search":        &km.Search,
		"global_search": &km.GlobalSearch,
		"analyze":       &km.Analyze,
		"deep_analyze":  &km.DeepAnalyze,
		"refresh":       &km.Refresh,
		"edit":          &km.Edit,
		"open_folder":   &km.OpenFolder,
		"copy_path":     &km.CopyPath,
		"help":          &km.Help,
		"quit":          &km.Quit,
	}

	for action, k := range overrides {
		b, ok := bindings[action]
		if !ok || k == "" {
			continue
		}
		*b = key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, b.Help().Desc),
		)
	}
	return km
}

// ShortHelp returns a short help text for the status bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Up, k.Down, k.Open, k.Search, k.GlobalSearch, k.Help, k.Quit}
}

// FullHelp returns the full help text
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Open, k.Back, k.HalfUp, k.HalfDown},
		{k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Sort, k.Filter, k.Search, k.GlobalSearch},
		{k.Analyze, k.DeepAnalyze, k.Refresh},
		{k.Edit, k.OpenFolder, k.CopyPath},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
