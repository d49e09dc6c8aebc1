package mdquery

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/adriangreen/ideas/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const readme = `# Local-first notes

**Status:** exploring

Some prose about the idea.

## Open questions

- [ ] Should sync be **optional**?
- [x] Pick a storage format
- [ ] Who is the first user?
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestStatusFromText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"bold label", "**Status:** active", "active"},
		{"emphasis around value", "Status: **dormant**", "dormant"},
		{"first match wins", "Status: one\nStatus: two", "one"},
		{"missing", "# Title\n\nbody", UnknownStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromText(tt.text))
		})
	}
}

func TestQuestionsFromList(t *testing.T) {
	got := QuestionsFromList("- [ ] First?\n- [x] done\n* [ ] Second?\nplain")
	assert.Equal(t, []string{"[ ] First?", "[ ] Second?"}, got)
	assert.Empty(t, QuestionsFromList(""))
}

func TestTitleFromHeading(t *testing.T) {
	title, ok := TitleFromHeading("# Migrate the sync engine\n# Another")
	require.True(t, ok)
	assert.Equal(t, "Migrate the sync engine", title)

	_, ok = TitleFromHeading("#\n")
	assert.False(t, ok)
}

func TestBuiltin(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := writeFile(t, dir, "README.md", readme)
	b := NewBuiltin(nil)

	assert.Equal(t, "exploring", b.Status(ctx, path))
	assert.Equal(t, []string{"[ ] Should sync be optional?", "[ ] Who is the first user?"}, b.OpenQuestions(ctx, path))

	title, ok := b.Title(ctx, path)
	require.True(t, ok)
	assert.Equal(t, "Local-first notes", title)

	t.Run("missing file degrades", func(t *testing.T) {
		missing := filepath.Join(dir, "nope.md")
		assert.Equal(t, UnknownStatus, b.Status(ctx, missing))
		assert.Empty(t, b.OpenQuestions(ctx, missing))
		_, ok := b.Title(ctx, missing)
		assert.False(t, ok)
	})

	t.Run("no h1", func(t *testing.T) {
		path := writeFile(t, dir, "plan.md", "## Only a subheading\n")
		_, ok := b.Title(ctx, path)
		assert.False(t, ok)
	})
}

func TestMQ(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in needs a POSIX shell")
	}
	ctx := context.Background()
	dir := t.TempDir()
	path := writeFile(t, dir, "README.md", readme)

	// Stand-in for mq answering the three selectors the engines use.
	fake := writeFile(t, dir, "mq", `#!/bin/sh
case "$1" in
  .) cat "$2" ;;
  .h1) echo "# Local-first notes" ;;
  .list) echo "- [ ] From mq?"; echo "- [x] done" ;;
  *) exit 1 ;;
esac
`)
	require.NoError(t, os.Chmod(fake, 0755))

	m := &MQ{Binary: fake, logger: slog.New(slog.DiscardHandler)}
	assert.Equal(t, "exploring", m.Status(ctx, path))
	assert.Equal(t, []string{"[ ] From mq?"}, m.OpenQuestions(ctx, path))
	title, ok := m.Title(ctx, path)
	require.True(t, ok)
	assert.Equal(t, "Local-first notes", title)

	t.Run("missing binary degrades", func(t *testing.T) {
		broken := &MQ{Binary: filepath.Join(dir, "no-such-mq"), logger: m.logger}
		assert.Equal(t, UnknownStatus, broken.Status(ctx, path))
		assert.Empty(t, broken.OpenQuestions(ctx, path))
	})

	t.Run("missing file skips the binary", func(t *testing.T) {
		assert.Equal(t, UnknownStatus, m.Status(ctx, filepath.Join(dir, "absent.md")))
	})
}

func TestNew(t *testing.T) {
	cfg := config.Default("/home/u")
	assert.IsType(t, &MQ{}, New(cfg, nil))
	cfg.Tools.Markdown = config.MarkdownBuiltin
	assert.IsType(t, &Builtin{}, New(cfg, nil))
}
