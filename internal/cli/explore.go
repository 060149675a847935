package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowlayout/pkg/document"
	"github.com/matzehuels/flowlayout/pkg/flow"
	"github.com/matzehuels/flowlayout/pkg/pipeline"
	"github.com/matzehuels/flowlayout/pkg/sink"
)

// defaultExploreWidth is the starting width for documents without one.
const defaultExploreWidth = 80

var (
	exploreDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	exploreHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	exploreCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// exploreModel re-measures one flow container every time the available
// width changes. The container keeps the document's items, gaps and
// padding; only the width constraint differs between passes.
type exploreModel struct {
	doc       *document.Document
	source    string
	container *flow.Container
	boxes     []*document.Box
	height    flow.Constraint
	width     int
	mode      string
	layout    document.Layout
	err       error
	passes    int // measure passes run so far
}

func newExploreModel(doc *document.Document, source string) exploreModel {
	m := exploreModel{
		doc:    doc,
		source: source,
		width:  doc.Width,
		mode:   doc.WidthMode,
	}
	if m.width <= 0 {
		m.width = defaultExploreWidth
	}
	if m.mode == "" || m.mode == flow.Unspecified.String() {
		m.mode = flow.AtMost.String()
	}
	if err := doc.Validate(); err != nil {
		m.err = err
		return m
	}
	_, m.height, m.err = doc.Constraints()
	if m.err != nil {
		return m
	}
	m.container, m.boxes = doc.Container()
	return m.relayout()
}

// relayout runs a measure and layout pass on the container at the current
// width.
func (m exploreModel) relayout() exploreModel {
	if m.container == nil {
		return m
	}
	mode, err := flow.ParseMode(m.mode)
	if err != nil {
		m.err = err
		return m
	}
	size := m.container.Measure(flow.Constraint{Mode: mode, Value: m.width}, m.height)
	m.container.Layout(0, 0, size.Width, size.Height)
	res, _ := m.container.Result()
	m.layout = document.FromPlacements(res, m.container.Placements(), m.boxes)
	m.err = nil
	m.passes++
	return m
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	step := 0
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		step = -1
	case "right", "l":
		step = 1
	case "shift+left", "H":
		step = -10
	case "shift+right", "L":
		step = 10
	case "m":
		if m.mode == flow.AtMost.String() {
			m.mode = flow.Exact.String()
		} else {
			m.mode = flow.AtMost.String()
		}
		return m.relayout(), nil
	default:
		return m, nil
	}
	m.width += step
	if m.width < 0 {
		m.width = 0
	}
	return m.relayout(), nil
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore " + m.source))
	b.WriteString("\n")
	b.WriteString(exploreDimStyle.Render("←/→ width ±1  shift ±10  m toggle mode  q quit"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %s  %s %s\n",
		StyleDim.Render("width"), StyleHighlight.Render(strconv.Itoa(m.width)),
		StyleDim.Render("mode"), StyleHighlight.Render(m.mode))

	if m.err != nil {
		b.WriteString(StyleError.Render(m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(StyleValue.Render(sink.Summary(m.layout)))
	b.WriteString("\n")

	rows := make([][]string, 0, len(m.layout.Rows))
	for _, r := range m.layout.Rows {
		rows = append(rows, []string{
			strconv.Itoa(r.Index),
			strconv.Itoa(r.Y),
			strconv.Itoa(r.UsedWidth),
			strconv.Itoa(r.Height),
			strings.Join(r.Items, " "),
		})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Row", "Y", "Used", "H", "Items").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return exploreHeaderStyle
			}
			return exploreCellStyle
		})
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(exploreDimStyle.Render(fmt.Sprintf("  %d measure passes", m.passes)))
	return b.String()
}

// exploreCommand creates the interactive explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore <document>",
		Short: "Interactively change a document's width and watch rows reflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := pipeline.ReadDocument(ctx, args[0])
			if err != nil {
				return err
			}
			loggerFromContext(ctx).Debug("exploring", "source", args[0], "items", len(doc.Items))

			p := tea.NewProgram(newExploreModel(doc, args[0]), tea.WithContext(ctx))
			_, err = p.Run()
			return err
		},
	}
}
