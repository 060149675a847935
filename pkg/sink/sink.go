// Package sink renders computed layouts into output formats.
//
// All formats are textual descriptions of the layout:
//
//   - json: the [document.Layout] as indented JSON
//   - toml: the same data as TOML
//   - table: a terminal table of item rectangles
//
// Use [Render] to dispatch by format name.
package sink

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/flowlayout/pkg/document"
	"github.com/matzehuels/flowlayout/pkg/errors"
)

// Output formats.
const (
	FormatJSON  = "json"
	FormatTOML  = "toml"
	FormatTable = "table"
)

// ValidFormats lists all supported output formats.
var ValidFormats = []string{FormatJSON, FormatTOML, FormatTable}

// Extension returns the file extension for a format.
func Extension(format string) string {
	if format == FormatTable {
		return "txt"
	}
	return format
}

// IsValid reports whether format is supported.
func IsValid(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// Render renders l in the given format.
func Render(l document.Layout, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return RenderJSON(l)
	case FormatTOML:
		return RenderTOML(l)
	case FormatTable:
		return RenderTable(l), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (must be one of: %s)", format, strings.Join(ValidFormats, ", "))
}

// RenderJSON returns l as indented JSON.
func RenderJSON(l document.Layout) ([]byte, error) {
	data, err := document.MarshalLayout(l)
	if err != nil {
		return nil, fmt.Errorf("marshal layout: %w", err)
	}
	return append(data, '\n'), nil
}

// RenderTOML returns l as TOML.
func RenderTOML(l document.Layout) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(l); err != nil {
		return nil, fmt.Errorf("encode toml: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableHeaderStyle = tableCellStyle.Bold(true)
)

// RenderTable returns a summary line followed by one table row per placed
// item. Hidden items are listed after the table.
func RenderTable(l document.Layout) []byte {
	rows := make([][]string, 0, len(l.Items))
	for _, it := range l.Items {
		rows = append(rows, []string{
			it.ID,
			it.Label,
			strconv.Itoa(it.Row),
			strconv.Itoa(it.X),
			strconv.Itoa(it.Y),
			strconv.Itoa(it.Width),
			strconv.Itoa(it.Height),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers("ID", "Label", "Row", "X", "Y", "W", "H").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Summary(l))
	b.WriteString(t.Render())
	b.WriteString("\n")
	if len(l.Hidden) > 0 {
		fmt.Fprintf(&b, "hidden: %s\n", strings.Join(l.Hidden, ", "))
	}
	return []byte(b.String())
}

// Summary describes the layout's size, row and item counts on one line.
func Summary(l document.Layout) string {
	return fmt.Sprintf("%dx%d, %s, %s",
		l.Width, l.Height,
		plural(l.RowCount(), "row"),
		plural(l.ItemCount(), "item"))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
