package catalog

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// FindMarkdownFiles lists the .md files directly inside dir, README.md first
// and the rest by path.
func FindMarkdownFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}

	slices.SortFunc(files, func(a, b string) int {
		ar := filepath.Base(a) == "README.md"
		br := filepath.Base(b) == "README.md"
		switch {
		case ar && !br:
			return -1
		case br && !ar:
			return 1
		}
		return strings.Compare(a, b)
	})
	return files
}

// IdeaDir returns the folder of an idea inside the ideas repo
func IdeaDir(root string, idea Idea) string {
	return filepath.Join(root, idea.Folder)
}
