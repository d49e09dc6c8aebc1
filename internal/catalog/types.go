package catalog

import "time"

// Idea is one row of the tracker enriched from the idea's README
type Idea struct {
	Folder        string
	Tags          []string
	Description   string
	Created       string
	Modified      string
	Sessions      int
	Status        string
	OpenQuestions []string
}

// Project is an inventoried local repository
type Project struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Source      string `json:"source"`
	Category    string `json:"category"`
	Tech        string `json:"tech"`
	LastCommit  string `json:"last_commit"`
	Commits     int    `json:"commits"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

// Blurb returns the AI summary when one exists, else the description
func (p Project) Blurb() string {
	if p.Summary != "" {
		return p.Summary
	}
	return p.Description
}

// Plan is a saved assistant planning document
type Plan struct {
	Name     string
	Title    string
	Modified string // YYYY-MM-DD, "-" when unknown
	Path     string
}

// DxItem is a cataloged dotfiles/DX artifact
type DxItem struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// ProjectAnalysis records when a project's analysis was generated
type ProjectAnalysis struct {
	AnalyzedAt     string `json:"analyzed_at"`
	AnalyzedCommit string `json:"analyzed_commit"`
}

// AnalysisMeta is the content of the analysis _meta.json file
type AnalysisMeta struct {
	Version  int                        `json:"version"`
	Projects map[string]ProjectAnalysis `json:"projects"`
}

// NewAnalysisMeta returns empty metadata at the current version
func NewAnalysisMeta() *AnalysisMeta {
	return &AnalysisMeta{Version: 1, Projects: make(map[string]ProjectAnalysis)}
}

// Record stores an analysis entry stamped with now in RFC3339 UTC
func (m *AnalysisMeta) Record(name, commit string, now time.Time) {
	if m.Projects == nil {
		m.Projects = make(map[string]ProjectAnalysis)
	}
	m.Projects[name] = ProjectAnalysis{
		AnalyzedAt:     now.UTC().Format(time.RFC3339),
		AnalyzedCommit: commit,
	}
}

// DirtyProject compares a project's head with its last analyzed commit.
// Unknown values are empty strings; CommitsSince is -1 when it could not be
// computed.
type DirtyProject struct {
	Name           string
	Path           string
	AnalyzedAt     string
	AnalyzedCommit string
	CurrentCommit  string
	CommitsSince   int
}

// Analyzed reports whether metadata exists for the project
func (d DirtyProject) Analyzed() bool {
	return d.AnalyzedAt != ""
}

// Stale reports whether commits landed after the analyzed commit
func (d DirtyProject) Stale() bool {
	return d.CommitsSince > 0
}

// UntrackedProject is a repository under the developer directory that is
// missing from the inventory
type UntrackedProject struct {
	Name    string
	Path    string
	Tech    string
	Commits int
}

// RecentProject is an inventoried project with a commit inside the window
type RecentProject struct {
	Name    string
	Date    string
	Message string
}
