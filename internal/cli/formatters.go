package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/truncate"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// TableFormatter buffers rows and writes them as aligned columns. Widths
// are measured in terminal cells, so Thai names line up too.
type TableFormatter struct {
	w        io.Writer
	header   []string
	rows     [][]string
	maxWidth int
}

// NewTableFormatter creates a table that fits the terminal behind w, if
// there is one.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{w: w, maxWidth: TerminalWidth(w)}
}

// SetMaxWidth caps the line width; the last column is truncated to fit.
// Zero means unlimited.
func (t *TableFormatter) SetMaxWidth(n int) {
	t.maxWidth = n
}

// Header sets the table header
func (t *TableFormatter) Header(columns ...string) {
	t.header = columns
}

// Row adds a table row
func (t *TableFormatter) Row(values ...string) {
	t.rows = append(t.rows, values)
}

// Flush writes the table to output
func (t *TableFormatter) Flush() {
	widths := t.columnWidths()
	total := 0
	for i, cw := range widths {
		total += cw
		if i > 0 {
			total += columnGap
		}
	}

	if t.header != nil {
		fmt.Fprintln(t.w, t.line(t.header, widths))
		fmt.Fprintln(t.w, strings.Repeat("-", total))
	}
	for _, row := range t.rows {
		fmt.Fprintln(t.w, t.line(row, widths))
	}
	t.rows = nil
}

const columnGap = 2

func (t *TableFormatter) columnWidths() []int {
	var widths []int
	measure := func(cells []string) {
		for i, c := range cells {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if cw := lipgloss.Width(c); cw > widths[i] {
				widths[i] = cw
			}
		}
	}
	measure(t.header)
	for _, row := range t.rows {
		measure(row)
	}

	if t.maxWidth > 0 && len(widths) > 0 {
		used := 0
		for _, cw := range widths[:len(widths)-1] {
			used += cw + columnGap
		}
		last := t.maxWidth - used
		if last < 1 {
			last = 1
		}
		if widths[len(widths)-1] > last {
			widths[len(widths)-1] = last
		}
	}
	return widths
}

func (t *TableFormatter) line(cells []string, widths []int) string {
	var b strings.Builder
	for i, c := range cells {
		if i >= len(widths) {
			break
		}
		last := i == len(cells)-1 || i == len(widths)-1
		if lipgloss.Width(c) > widths[i] {
			c = truncate.StringWithTail(c, uint(widths[i]), "…")
		}
		b.WriteString(c)
		if !last {
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(c)+columnGap))
		}
	}
	return b.String()
}

// TerminalWidth returns the column count of the terminal w writes to, or
// 0 when w is not a terminal.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return 0
	}
	width, _, err := term.GetSize(f.Fd())
	if err != nil {
		return 0
	}
	return width
}

// OutputResults formats and outputs results based on the specified format
func OutputResults(w io.Writer, format string, data interface{}) error {
	switch OutputFormat(format) {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)

	case FormatYAML:
		yamlData, err := yaml.Marshal(data)
		if err != nil {
			return err
		}
		fmt.Fprint(w, string(yamlData))
		return nil

	case FormatText:
		// callers print their own text; this is the fallback
		fmt.Fprintf(w, "%v\n", data)
		return nil

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// FormatBytes formats byte count in human-readable format
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
