// Package mdquery extracts the few facts the inventory reads out of markdown
// files: an idea's status line, its unchecked checklist items and a document's
// first H1. The default engine shells out to mq; the builtin engine parses
// with goldmark for machines without mq installed.
package mdquery

import (
	"context"
	"log/slog"
	"strings"

	"github.com/adriangreen/ideas/internal/config"
)

// UnknownStatus is reported when no status line can be found
const UnknownStatus = "unknown"

// Querier reads markdown facts. Missing files and tool failures degrade to
// UnknownStatus, an empty list or ok=false.
type Querier interface {
	Status(ctx context.Context, path string) string
	OpenQuestions(ctx context.Context, path string) []string
	Title(ctx context.Context, path string) (string, bool)
}

// New returns the engine selected by the configuration
func New(cfg *config.Config, logger *slog.Logger) Querier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Tools.Markdown == config.MarkdownBuiltin {
		return &Builtin{logger: logger}
	}
	return &MQ{Binary: cfg.Tools.MQ, logger: logger}
}

// StatusFromText finds the first line mentioning "Status:" and returns the
// text after it with emphasis markers trimmed.
func StatusFromText(text string) string {
	for _, line := range strings.Split(text, "\n") {
		_, after, found := strings.Cut(line, "Status:")
		if !found {
			continue
		}
		status := strings.TrimSpace(after)
		status = strings.Trim(status, "*")
		return strings.TrimSpace(status)
	}
	return UnknownStatus
}

// QuestionsFromList keeps the unchecked "[ ]" lines of a rendered list
func QuestionsFromList(text string) []string {
	var questions []string
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "[ ]") {
			continue
		}
		q := strings.TrimLeft(line, "-")
		q = strings.TrimLeft(q, "*")
		questions = append(questions, strings.TrimSpace(q))
	}
	return questions
}

// TitleFromHeading cleans the first line of an H1 query result
func TitleFromHeading(text string) (string, bool) {
	first, _, _ := strings.Cut(text, "\n")
	title := strings.TrimSpace(first)
	title = strings.TrimSpace(strings.TrimLeft(title, "#"))
	if title == "" {
		return "", false
	}
	return title, true
}
