package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/adriangreen/ideas/internal/config"
)

// enrichLimit bounds concurrent README lookups
const enrichLimit = 8

// TrackerRow is one raw tracker record, before README enrichment
type TrackerRow struct {
	Folder      string
	Tags        string
	Description string
	Created     string
	Modified    string
	Sessions    string
}

// ReadTracker parses the tracker CSV in root. The header row is skipped and
// rows without a folder are dropped.
func ReadTracker(root string) ([]TrackerRow, error) {
	path := filepath.Join(root, config.TrackerFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read tracker header: %w", err)
	}

	var rows []TrackerRow
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		row := TrackerRow{
			Folder:      field(record, 0),
			Tags:        strings.Trim(field(record, 1), `"`),
			Description: strings.Trim(field(record, 2), `"`),
			Created:     field(record, 3),
			Modified:    field(record, 4),
			Sessions:    field(record, 5),
		}
		if row.Folder == "" {
			continue
		}
		if row.Sessions == "" {
			row.Sessions = "0"
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}

// LoadIdeas reads the tracker under root and enriches each idea with the
// status and open questions of its README. Lookups run concurrently but the
// tracker order is preserved.
func (s *Store) LoadIdeas(ctx context.Context, root string) ([]Idea, error) {
	rows, err := ReadTracker(root)
	if err != nil {
		return nil, err
	}

	ideas := make([]Idea, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichLimit)

	for i, row := range rows {
		ideas[i] = Idea{
			Folder:      row.Folder,
			Tags:        ParseTags(row.Tags),
			Description: row.Description,
			Created:     row.Created,
			Modified:    row.Modified,
			Sessions:    parseCount(row.Sessions),
		}
		g.Go(func() error {
			readme := filepath.Join(root, row.Folder, "README.md")
			ideas[i].Status = s.md.Status(gctx, readme)
			ideas[i].OpenQuestions = s.md.OpenQuestions(gctx, readme)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug("ideas loaded", "root", root, "count", len(ideas))
	return ideas, nil
}

// ParseTags splits the comma separated tag cell
func ParseTags(s string) []string {
	s = strings.Trim(s, `"`)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tags = append(tags, strings.TrimSpace(p))
	}
	return tags
}

func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
