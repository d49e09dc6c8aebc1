package gitinfo

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// CLI shells out to the git binary
type CLI struct {
	Binary string
	logger *slog.Logger
}

// NewCLI returns a client running the given git binary
func NewCLI(binary string, logger *slog.Logger) *CLI {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CLI{Binary: binary, logger: logger}
}

func (c *CLI) run(ctx context.Context, dir string, args ...string) (string, bool) {
	binary := c.Binary
	if binary == "" {
		binary = "git"
	}
	full := append([]string{"-C", dir}, args...)
	out, err := exec.CommandContext(ctx, binary, full...).Output()
	if err != nil {
		c.logger.Debug("git query failed", "dir", dir, "args", strings.Join(args, " "), "err", err)
		return "", false
	}
	return strings.TrimSpace(string(out)), true
}

func (c *CLI) HeadCommit(ctx context.Context, dir string) (string, bool) {
	out, ok := c.run(ctx, dir, "rev-parse", "--short", "HEAD")
	if !ok || out == "" {
		return "", false
	}
	return out, true
}

func (c *CLI) CountCommitsSince(ctx context.Context, dir, since string) (int, bool) {
	if since == "" {
		return 0, false
	}
	out, ok := c.run(ctx, dir, "rev-list", "--count", since+"..HEAD")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(out)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *CLI) CommitCount(ctx context.Context, dir string) int {
	out, ok := c.run(ctx, dir, "rev-list", "--count", "HEAD")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(out)
	if err != nil {
		return 0
	}
	return n
}

func (c *CLI) LastCommitWithin(ctx context.Context, dir string, days int) (Commit, bool) {
	out, ok := c.run(ctx, dir, "log", "-1", fmt.Sprintf("--since=%d days ago", days), "--format=%ci|%s")
	if !ok || out == "" {
		return Commit{}, false
	}
	return parseLogLine(out)
}

func (c *CLI) Toplevel(ctx context.Context, dir string) (string, bool) {
	out, ok := c.run(ctx, dir, "rev-parse", "--show-toplevel")
	if !ok || out == "" {
		return "", false
	}
	return out, true
}

// parseLogLine splits "2024-05-01 10:00:00 +0200|subject"
func parseLogLine(line string) (Commit, bool) {
	stamp, subject, _ := strings.Cut(line, "|")
	date, _, _ := strings.Cut(strings.TrimSpace(stamp), " ")
	if date == "" {
		return Commit{}, false
	}
	when, _ := time.Parse("2006-01-02 15:04:05 -0700", strings.TrimSpace(stamp))
	return Commit{Date: date, Subject: subject, When: when}, true
}
