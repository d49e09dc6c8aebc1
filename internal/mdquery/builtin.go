package mdquery

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Builtin answers queries by parsing the file with goldmark
type Builtin struct {
	logger *slog.Logger
}

// NewBuiltin returns the in-process engine
func NewBuiltin(logger *slog.Logger) *Builtin {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Builtin{logger: logger}
}

var parser = goldmark.New(goldmark.WithExtensions(extension.TaskList))

func (b *Builtin) parse(path string) (ast.Node, []byte, bool) {
	source, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			b.logger.Debug("markdown read failed", "path", path, "err", err)
		}
		return nil, nil, false
	}
	return parser.Parser().Parse(text.NewReader(source)), source, true
}

func (b *Builtin) Status(_ context.Context, path string) string {
	source, err := os.ReadFile(path)
	if err != nil {
		return UnknownStatus
	}
	return StatusFromText(string(source))
}

func (b *Builtin) OpenQuestions(_ context.Context, path string) []string {
	doc, source, ok := b.parse(path)
	if !ok {
		return nil
	}

	var questions []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		box, isBox := n.(*extast.TaskCheckBox)
		if !isBox || box.IsChecked || box.Parent() == nil {
			return ast.WalkContinue, nil
		}
		questions = append(questions, "[ ] "+strings.TrimSpace(plainText(box.Parent(), source)))
		return ast.WalkSkipChildren, nil
	})
	return questions
}

func (b *Builtin) Title(_ context.Context, path string) (string, bool) {
	doc, source, ok := b.parse(path)
	if !ok {
		return "", false
	}

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || title != "" {
			return ast.WalkContinue, nil
		}
		if h, isHeading := n.(*ast.Heading); isHeading && h.Level == 1 {
			title = strings.TrimSpace(plainText(h, source))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	if title == "" {
		return "", false
	}
	return title, true
}

// plainText concatenates the text segments below n
func plainText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
