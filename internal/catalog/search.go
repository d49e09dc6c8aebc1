package catalog

import "strings"

// Kind identifies which collection a search result came from
type Kind int

const (
	KindIdea Kind = iota
	KindProject
	KindPlan
	KindDotfile
)

// Label returns the short tag shown next to a search result
func (k Kind) Label() string {
	switch k {
	case KindIdea:
		return "idea"
	case KindProject:
		return "project"
	case KindPlan:
		return "plan"
	case KindDotfile:
		return "dx"
	}
	return "?"
}

// SearchResult points back at an item by its index in the source collection
type SearchResult struct {
	Kind        Kind
	Name        string
	Description string
	Index       int
}

// NormalizeQuery trims and lowercases a user query
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

func contains(s, q string) bool {
	return strings.Contains(strings.ToLower(s), q)
}

// IdeaMatches matches folder, description or any tag. q must be normalized.
func IdeaMatches(i Idea, q string) bool {
	if q == "" {
		return true
	}
	if contains(i.Folder, q) || contains(i.Description, q) {
		return true
	}
	for _, t := range i.Tags {
		if contains(t, q) {
			return true
		}
	}
	return false
}

// ProjectMatches matches name, summary, description, category or tech
func ProjectMatches(p Project, q string) bool {
	if q == "" {
		return true
	}
	return contains(p.Name, q) ||
		contains(p.Summary, q) ||
		contains(p.Description, q) ||
		contains(p.Category, q) ||
		contains(p.Tech, q)
}

// PlanMatches matches name or title
func PlanMatches(p Plan, q string) bool {
	if q == "" {
		return true
	}
	return contains(p.Name, q) || contains(p.Title, q)
}

// DxItemMatches matches name, description or category
func DxItemMatches(d DxItem, q string) bool {
	if q == "" {
		return true
	}
	return contains(d.Name, q) || contains(d.Description, q) || contains(d.Category, q)
}

// Search runs the query across every collection in kind order. An empty
// query returns nothing.
func Search(query string, ideas []Idea, projects []Project, plans []Plan, dotfiles []DxItem) []SearchResult {
	q := NormalizeQuery(query)
	if q == "" {
		return nil
	}

	var results []SearchResult
	for i, idea := range ideas {
		if IdeaMatches(idea, q) {
			results = append(results, SearchResult{Kind: KindIdea, Name: idea.Folder, Description: idea.Description, Index: i})
		}
	}
	for i, p := range projects {
		if ProjectMatches(p, q) {
			results = append(results, SearchResult{Kind: KindProject, Name: p.Name, Description: p.Blurb(), Index: i})
		}
	}
	for i, p := range plans {
		if PlanMatches(p, q) {
			results = append(results, SearchResult{Kind: KindPlan, Name: p.Name, Description: p.Title, Index: i})
		}
	}
	for i, d := range dotfiles {
		if DxItemMatches(d, q) {
			results = append(results, SearchResult{Kind: KindDotfile, Name: d.Name, Description: d.Description, Index: i})
		}
	}
	return results
}
