package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override path defaults
const (
	EnvIdeasRepo    = "IDEAS_REPO"
	EnvDeveloperDir = "IDEAS_DEVELOPER_DIR"
	EnvDotfilesRepo = "DOTFILES_REPO"
	EnvPlansDir     = "IDEAS_CLAUDE_PLANS_DIR"
	EnvConfigFile   = "IDEAS_CONFIG"
	EnvLogLevel     = "IDEAS_LOG_LEVEL"
)

// TrackerFile marks the root of an ideas repository
const TrackerFile = "_tracker.csv"

// Markdown engines
const (
	MarkdownMQ      = "mq"
	MarkdownBuiltin = "builtin"
)

// Git backends
const (
	GitCLI   = "cli"
	GitGoGit = "go-git"
)

// ErrRepoNotFound is returned when no directory containing the tracker file can be found
var ErrRepoNotFound = errors.New("could not find ideas repo (no _tracker.csv found)")

// Config is the resolved configuration shared by the CLI and the TUI.
// It is built once at startup and passed to every component.
type Config struct {
	Paths   Paths     `yaml:"paths"`
	Scripts Scripts   `yaml:"scripts"`
	Tools   Tools     `yaml:"tools"`
	TUI     TUIConfig `yaml:"tui"`
	Log     LogConfig `yaml:"log"`

	// Source is the config file that was merged, empty when defaults were used
	Source string `yaml:"-"`
}

// Paths holds the configured roots and the paths derived from them
type Paths struct {
	IdeasRepo    string `yaml:"ideas_repo"`
	DeveloperDir string `yaml:"developer_dir"`
	DotfilesRepo string `yaml:"dotfiles_repo"`
	PlansDir     string `yaml:"plans_dir"`
	StateDir     string `yaml:"state_dir"`

	IdeasDataDir     string `yaml:"-"`
	AnalysisDir      string `yaml:"-"`
	ProjectInventory string `yaml:"-"`
	AnalysisMeta     string `yaml:"-"`
	DxInventory      string `yaml:"-"`
}

// Scripts are the external generators invoked through bash
type Scripts struct {
	Dir             string `yaml:"dir"`
	ScanInventory   string `yaml:"scan_inventory"`
	Analyze         string `yaml:"analyze"`
	AnalyzeDeep     string `yaml:"analyze_deep"`
	GenerateSummary string `yaml:"generate_summary"`
}

// Tools selects external binaries and backends
type Tools struct {
	MQ       string `yaml:"mq"`
	Markdown string `yaml:"markdown"`
	Git      string `yaml:"git"`
	Editor   string `yaml:"editor"`
	Opener   string `yaml:"opener"`
}

// TUIConfig defines dashboard behavior
type TUIConfig struct {
	PollInterval  time.Duration `yaml:"poll_interval"`
	MessageTTL    time.Duration `yaml:"message_ttl"`
	Watch         bool          `yaml:"watch"`
	WatchDebounce time.Duration `yaml:"watch_debounce"`
	RecentDays    int           `yaml:"recent_days"`

	// Keys overrides dashboard key bindings by action name, e.g. analyze: "x"
	Keys map[string]string `yaml:"keys"`
}

// LogConfig controls the session log
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Load resolves configuration for the current user: defaults, then the
// optional YAML file, then environment overrides.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return LoadFrom(home, "", os.Getenv)
}

// LoadFrom is Load with an explicit home directory, config file and
// environment lookup. An empty path selects the default config location.
func LoadFrom(home, path string, getenv func(string) string) (*Config, error) {
	if home == "" {
		return nil, fmt.Errorf("home directory is empty")
	}

	cfg := Default(home)
	if v := getenv("XDG_STATE_HOME"); v != "" {
		cfg.Paths.StateDir = filepath.Join(v, "ideas")
	}

	explicit := path != ""
	if !explicit {
		path = getenv(EnvConfigFile)
		explicit = path != ""
	}
	if !explicit {
		path = defaultConfigPath(home, getenv)
	}
	path = expandHome(path, home)

	if _, err := os.Stat(path); err == nil {
		if err := mergeConfigFile(cfg, path, home); err != nil {
			return nil, err
		}
		cfg.Source = path
	} else if explicit {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	applyEnv(cfg, getenv, home)
	cfg.Resolve()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration rooted at home. Derived paths
// are empty until Resolve is called.
func Default(home string) *Config {
	cfg := &Config{
		Paths: Paths{
			IdeasRepo:    filepath.Join(home, "Developer", "ideas"),
			DeveloperDir: filepath.Join(home, "Developer"),
			DotfilesRepo: filepath.Join(home, "dotfiles"),
			PlansDir:     filepath.Join(home, ".claude", "plans"),
			StateDir:     filepath.Join(home, ".local", "state", "ideas"),
		},
		Tools: Tools{
			MQ:       "mq",
			Markdown: MarkdownMQ,
			Git:      GitCLI,
			Opener:   defaultOpener(),
		},
		TUI: TUIConfig{
			PollInterval:  100 * time.Millisecond,
			MessageTTL:    3 * time.Second,
			Watch:         true,
			WatchDebounce: 300 * time.Millisecond,
			RecentDays:    7,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
	return cfg
}

// Validate reports configuration values that cannot work
func (c *Config) Validate() error {
	switch c.Tools.Markdown {
	case MarkdownMQ, MarkdownBuiltin:
	default:
		return fmt.Errorf("invalid markdown engine %q (want %q or %q)", c.Tools.Markdown, MarkdownMQ, MarkdownBuiltin)
	}
	switch c.Tools.Git {
	case GitCLI, GitGoGit:
	default:
		return fmt.Errorf("invalid git backend %q (want %q or %q)", c.Tools.Git, GitCLI, GitGoGit)
	}
	if c.TUI.PollInterval <= 0 {
		return fmt.Errorf("tui.poll_interval must be positive")
	}
	if c.TUI.MessageTTL <= 0 {
		return fmt.Errorf("tui.message_ttl must be positive")
	}
	return nil
}

// AnalysisFile returns the path of the analysis artifact for a project
func (c *Config) AnalysisFile(project string) string {
	return filepath.Join(c.Paths.AnalysisDir, project+".md")
}

// FindIdeasRepo locates the ideas repository: the working directory, then its
// git toplevel, then the configured repo. Each candidate must contain the
// tracker file.
func (c *Config) FindIdeasRepo(cwd string, toplevel func(dir string) (string, bool)) (string, error) {
	if hasTracker(cwd) {
		return cwd, nil
	}
	if toplevel != nil && cwd != "" {
		if root, ok := toplevel(cwd); ok && hasTracker(root) {
			return root, nil
		}
	}
	if hasTracker(c.Paths.IdeasRepo) {
		return c.Paths.IdeasRepo, nil
	}
	return "", ErrRepoNotFound
}

func hasTracker(dir string) bool {
	if dir == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(dir, TrackerFile))
	return err == nil
}

// Resolve fills in every path computed from the configured roots. Script
// and log paths that are already absolute are kept.
func (c *Config) Resolve() {
	p := &c.Paths
	p.IdeasDataDir = filepath.Join(p.IdeasRepo, "_data")
	p.AnalysisDir = filepath.Join(p.IdeasDataDir, "analysis")
	p.ProjectInventory = filepath.Join(p.IdeasDataDir, "project-inventory.json")
	p.AnalysisMeta = filepath.Join(p.AnalysisDir, "_meta.json")
	p.DxInventory = filepath.Join(p.DotfilesRepo, "_data", "dx-inventory.json")

	s := &c.Scripts
	if s.Dir == "" {
		s.Dir = filepath.Join(p.DotfilesRepo, "scripts", "ideas", "mq")
	}
	s.ScanInventory = scriptPath(s.Dir, s.ScanInventory, "projects-scan.sh")
	s.Analyze = scriptPath(s.Dir, s.Analyze, "analyze-project.sh")
	s.AnalyzeDeep = scriptPath(s.Dir, s.AnalyzeDeep, "analyze-project-deep.sh")
	s.GenerateSummary = scriptPath(s.Dir, s.GenerateSummary, "generate-summary.sh")

	if c.Log.File == "" {
		c.Log.File = filepath.Join(p.StateDir, "ideas.log")
	}
}

func scriptPath(dir, configured, fallback string) string {
	if configured == "" {
		return filepath.Join(dir, fallback)
	}
	if filepath.IsAbs(configured) {
		return configured
	}
	return filepath.Join(dir, configured)
}

// mergeConfigFile loads a YAML file and merges its non-zero values into cfg
func mergeConfigFile(cfg *Config, path, home string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var partial Config
	if err := yaml.Unmarshal(data, &partial); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	mergeString(&cfg.Paths.IdeasRepo, expandHome(partial.Paths.IdeasRepo, home))
	mergeString(&cfg.Paths.DeveloperDir, expandHome(partial.Paths.DeveloperDir, home))
	mergeString(&cfg.Paths.DotfilesRepo, expandHome(partial.Paths.DotfilesRepo, home))
	mergeString(&cfg.Paths.PlansDir, expandHome(partial.Paths.PlansDir, home))
	mergeString(&cfg.Paths.StateDir, expandHome(partial.Paths.StateDir, home))

	mergeString(&cfg.Scripts.Dir, expandHome(partial.Scripts.Dir, home))
	mergeString(&cfg.Scripts.ScanInventory, expandHome(partial.Scripts.ScanInventory, home))
	mergeString(&cfg.Scripts.Analyze, expandHome(partial.Scripts.Analyze, home))
	mergeString(&cfg.Scripts.AnalyzeDeep, expandHome(partial.Scripts.AnalyzeDeep, home))
	mergeString(&cfg.Scripts.GenerateSummary, expandHome(partial.Scripts.GenerateSummary, home))

	mergeString(&cfg.Tools.MQ, partial.Tools.MQ)
	mergeString(&cfg.Tools.Markdown, partial.Tools.Markdown)
	mergeString(&cfg.Tools.Git, partial.Tools.Git)
	mergeString(&cfg.Tools.Editor, partial.Tools.Editor)
	mergeString(&cfg.Tools.Opener, partial.Tools.Opener)

	if partial.TUI.PollInterval > 0 {
		cfg.TUI.PollInterval = partial.TUI.PollInterval
	}
	if partial.TUI.MessageTTL > 0 {
		cfg.TUI.MessageTTL = partial.TUI.MessageTTL
	}
	if partial.TUI.WatchDebounce > 0 {
		cfg.TUI.WatchDebounce = partial.TUI.WatchDebounce
	}
	if partial.TUI.RecentDays > 0 {
		cfg.TUI.RecentDays = partial.TUI.RecentDays
	}
	for action, k := range partial.TUI.Keys {
		if cfg.TUI.Keys == nil {
			cfg.TUI.Keys = make(map[string]string)
		}
		cfg.TUI.Keys[action] = k
	}

	// watch defaults to true, so only an explicit key can turn it off
	var raw struct {
		TUI map[string]any `yaml:"tui"`
	}
	if err := yaml.Unmarshal(data, &raw); err == nil {
		if _, ok := raw.TUI["watch"]; ok {
			cfg.TUI.Watch = partial.TUI.Watch
		}
	}

	mergeString(&cfg.Log.File, expandHome(partial.Log.File, home))
	mergeString(&cfg.Log.Level, partial.Log.Level)
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string, home string) {
	if v := getenv(EnvIdeasRepo); v != "" {
		cfg.Paths.IdeasRepo = expandHome(v, home)
	}
	if v := getenv(EnvDeveloperDir); v != "" {
		cfg.Paths.DeveloperDir = expandHome(v, home)
	}
	if v := getenv(EnvDotfilesRepo); v != "" {
		cfg.Paths.DotfilesRepo = expandHome(v, home)
	}
	if v := getenv(EnvPlansDir); v != "" {
		cfg.Paths.PlansDir = expandHome(v, home)
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if cfg.Tools.Editor == "" {
		cfg.Tools.Editor = getenv("EDITOR")
	}
	if cfg.Tools.Editor == "" {
		cfg.Tools.Editor = "vim"
	}
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// expandHome replaces a leading ~ with the home directory
func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

func defaultConfigPath(home string, getenv func(string) string) string {
	base := getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "ideas", "config.yaml")
}

func defaultOpener() string {
	if runtime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}
