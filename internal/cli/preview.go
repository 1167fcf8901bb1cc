package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/unitpile/unitpile/pkg/errors"
	"github.com/unitpile/unitpile/pkg/grid"
	"github.com/unitpile/unitpile/pkg/pile"
)

// previewCommand creates the preview command: a live terminal rendering of a
// pile that re-solves the layout whenever the terminal is resized.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		count int
		color string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview a pile in the terminal",
		Long: `Preview a pile in the terminal.

Each unit is drawn as a colored block. The grid layout is re-solved on every
terminal resize, so the preview always shows the densest grid that fits.
Use +/- to change the unit count interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateCount(count); err != nil {
				return err
			}
			if err := errors.ValidateColor(color); err != nil {
				return err
			}
			m := newPreviewModel(count, color)
			_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 100, "number of units to preview")
	cmd.Flags().StringVar(&color, "color", "", "unit color (hex)")

	return cmd
}

// Preview cell geometry in terminal units. A character cell is roughly twice
// as tall as it is wide, so each grid cell maps to a 2x1 block of characters.
const (
	previewCellWidth  = 2
	previewChrome     = 4 // header + footer lines
	previewMaxVisible = 2000
)

// previewModel is the bubbletea model for the live pile preview.
type previewModel struct {
	count  int
	color  string
	width  int
	height int
	layout grid.Layout
	cells  []grid.Cell
	hidden int
}

func newPreviewModel(count int, color string) previewModel {
	return previewModel{count: count, color: color}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=":
			m.count++
			m.resolve()
		case "-", "_":
			if m.count > 0 {
				m.count--
				m.resolve()
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resolve()
	}
	return m, nil
}

// resolve re-solves the grid for the current terminal size. The frame is
// measured in character cells, with each grid cell previewCellWidth wide.
func (m *previewModel) resolve() {
	if m.width == 0 || m.height == 0 {
		return
	}
	frameW := float64(m.width / previewCellWidth)
	frameH := float64(m.height - previewChrome)

	items := pile.CountItems(m.count, m.color)
	visible, hidden := grid.SplitVisible(items, previewMaxVisible)
	m.hidden = hidden
	m.layout = grid.Solve(len(visible), frameW, frameH)
	m.cells = grid.Place(visible, m.layout)
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("unitpile preview"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d units · %dx%d grid · cell %d · gap %d",
		m.count, m.layout.Columns, m.layout.Rows, m.layout.CellSize, m.layout.Gap)))
	b.WriteString("\n\n")

	b.WriteString(m.renderGrid())

	b.WriteString("\n")
	footer := "+/- adjust count  q quit"
	if m.hidden > 0 {
		footer = grid.OverflowBadge(m.hidden) + " hidden  ·  " + footer
	}
	b.WriteString(StyleDim.Render(footer))

	return b.String()
}

// renderGrid draws the placed cells as colored character blocks, row by row.
func (m previewModel) renderGrid() string {
	if m.layout.IsZero() || len(m.cells) == 0 {
		return StyleDim.Render("  (empty pile)") + "\n"
	}

	// Terminal cells have no sub-character gaps; a gap simply becomes an
	// empty column/row between blocks.
	pitch := m.layout.CellSize
	if m.layout.Gap > 0 {
		pitch++
	}

	block := lipgloss.NewStyle().Foreground(lipgloss.Color(m.cellColor()))
	rows := make([][]bool, m.layout.Rows*pitch)
	for i := range rows {
		rows[i] = make([]bool, m.layout.Columns*pitch)
	}
	for _, c := range m.cells {
		for dy := 0; dy < m.layout.CellSize; dy++ {
			for dx := 0; dx < m.layout.CellSize; dx++ {
				rows[c.Row*pitch+dy][c.Col*pitch+dx] = true
			}
		}
	}

	var b strings.Builder
	for _, row := range rows {
		for _, filled := range row {
			if filled {
				b.WriteString(block.Render(strings.Repeat("█", previewCellWidth)))
			} else {
				b.WriteString(strings.Repeat(" ", previewCellWidth))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m previewModel) cellColor() string {
	if m.color != "" {
		return m.color
	}
	return pile.DefaultPalette[0]
}
