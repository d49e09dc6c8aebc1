package mdquery

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
)

// MQ runs queries through the mq binary
type MQ struct {
	Binary string
	logger *slog.Logger
}

func (m *MQ) query(ctx context.Context, selector, path string) (string, bool) {
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	binary := m.Binary
	if binary == "" {
		binary = "mq"
	}
	out, err := exec.CommandContext(ctx, binary, selector, path).Output()
	if err != nil {
		m.logger.Debug("mq query failed", "selector", selector, "path", path, "err", err)
		return "", false
	}
	return string(out), true
}

func (m *MQ) Status(ctx context.Context, path string) string {
	out, ok := m.query(ctx, ".", path)
	if !ok {
		return UnknownStatus
	}
	return StatusFromText(out)
}

func (m *MQ) OpenQuestions(ctx context.Context, path string) []string {
	out, ok := m.query(ctx, ".list", path)
	if !ok {
		return nil
	}
	return QuestionsFromList(out)
}

func (m *MQ) Title(ctx context.Context, path string) (string, bool) {
	out, ok := m.query(ctx, ".h1", path)
	if !ok {
		return "", false
	}
	return TitleFromHeading(out)
}
