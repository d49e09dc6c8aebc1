package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

const maxMarkdownWidth = 100

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

var projectColors = map[string]lipgloss.Color{
	"roguelike":  "1",
	"writing":    "5",
	"knowledge":  "4",
	"simulation": "2",
	"tui":        "6",
	"cli":        "6",
}

var dotfileColors = map[string]lipgloss.Color{
	"dx-script":    "2",
	"dx-tool":      "6",
	"shell-config": "3",
	"app-config":   "4",
	"tool-list":    "5",
	"claude-skill": "1",
}

func colored(colors map[string]lipgloss.Color, category string) string {
	if c, ok := colors[category]; ok {
		return lipgloss.NewStyle().Foreground(c).Render(category)
	}
	return category
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "active":
		return okStyle
	case "dormant":
		return warnStyle
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
}

// truncate shortens s to n cells, ending in an ellipsis when cut
func truncate(s string, n int) string {
	if ansi.StringWidth(s) <= n {
		return s
	}
	return ansi.Truncate(s, n, "…")
}

// cell pads s to width cells. Styled text is padded by visible width.
func cell(s string, width int) string {
	if pad := width - ansi.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// row joins cells with a single space, padding all but the last
func row(widths []int, cells ...string) string {
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i < len(widths) && i < len(cells)-1 {
			b.WriteString(cell(c, widths[i]))
		} else {
			b.WriteString(c)
		}
	}
	return b.String()
}

// header prints a bold column header and a rule of matching width
func header(w io.Writer, widths []int, names ...string) {
	line := row(widths, names...)
	fmt.Fprintln(w, headerStyle.Render(line))
	fmt.Fprintln(w, dimStyle.Render(strings.Repeat("─", ansi.StringWidth(line))))
}

// cleanDesc drops a leading article and capitalizes the first letter
func cleanDesc(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "A ")
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w, sectionStyle.Render(title))
}

// markdownWidth is the terminal width capped for readability
func markdownWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || width > maxMarkdownWidth {
		return maxMarkdownWidth
	}
	return width
}

// printMarkdown renders content for the terminal, printing it raw when the
// renderer fails
func printMarkdown(w io.Writer, content string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(markdownWidth()),
	)
	if err == nil {
		if out, err := r.Render(content); err == nil {
			fmt.Fprint(w, out)
			return
		}
	}
	fmt.Fprintln(w, content)
}
