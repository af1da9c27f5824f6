package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dunjia/qimen/internal/application/dto"
	"github.com/dunjia/qimen/internal/domain/entities"
	"github.com/dunjia/qimen/internal/domain/values"
)

// gridLayout is the Lo Shu arrangement, south at the top.
var gridLayout = [3][3]values.PalaceNumber{
	{4, 9, 2},
	{3, 5, 7},
	{8, 1, 6},
}

const gridCellWidth = 20

var (
	gridAccent = lipgloss.Color("#FFD700")
	gridMuted  = lipgloss.Color("#636363")
	gridTitle  = lipgloss.Color("#7AA2F7")
)

// GridFormatter draws each chart as a 3x3 grid of bordered palace cells.
type GridFormatter struct {
	writer      io.Writer
	placeholder string
	color       bool
}

// NewGridFormatter creates a new grid formatter.
func NewGridFormatter(w io.Writer, placeholder string, color bool) *GridFormatter {
	if placeholder == "" {
		placeholder = entities.DefaultPlaceholder
	}
	return &GridFormatter{writer: w, placeholder: placeholder, color: color}
}

// Format writes one grid per result.
func (f *GridFormatter) Format(results []dto.ChartResult) error {
	for i, res := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(f.writer); err != nil {
				return err
			}
		}
		var out string
		if res.Err != nil {
			out = fmt.Sprintf("%s: %v", res.Label, res.Err)
		} else {
			out = f.render(res)
		}
		if _, err := fmt.Fprintln(f.writer, out); err != nil {
			return err
		}
	}
	return nil
}

func (f *GridFormatter) style() lipgloss.Style {
	return lipgloss.NewStyle()
}

func (f *GridFormatter) render(res dto.ChartResult) string {
	c := res.Chart
	selected := make(map[values.PalaceNumber]entities.PalaceState, len(res.Palaces))
	for _, s := range res.Palaces {
		selected[s.Palace.Number] = s
	}

	header := fmt.Sprintf("%s %s  %s遁%d局 %s  旬首 %s  空亡 %s%s  值符 %s  值使 %s",
		c.Term, c.Hour, c.Polarity, c.StageNumber, c.SubPeriod,
		c.CycleLead, c.Void[0], c.Void[1], c.DutyStar, c.DutyGate)
	titleStyle := f.style().Bold(true)
	if f.color {
		titleStyle = titleStyle.Foreground(gridTitle)
	}
	if res.Label != "" {
		header = res.Label + "  " + header
	}

	rows := make([]string, 0, len(gridLayout))
	for _, line := range gridLayout {
		cells := make([]string, 0, len(line))
		for _, n := range line {
			s, ok := selected[n]
			cells = append(cells, f.cell(s, ok))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(header), lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// cell renders one palace box. Palaces removed by the filter render as an
// empty box so the grid keeps its shape.
func (f *GridFormatter) cell(s entities.PalaceState, ok bool) string {
	box := f.style().
		Border(lipgloss.RoundedBorder()).
		Width(gridCellWidth).
		Padding(0, 1)
	if f.color {
		box = box.BorderForeground(gridMuted)
	}
	if !ok {
		return box.Render(strings.Repeat("\n", 4))
	}

	name := f.style().Bold(true)
	spirit := f.style()
	if f.color && s.Spirit == values.SpiritDuty {
		spirit = spirit.Foreground(gridAccent)
	}

	lines := []string{
		name.Render(s.Palace.Name),
		"天 " + entities.JoinSymbols(s.Heaven, f.placeholder),
		"地 " + entities.JoinSymbols(s.Ground, f.placeholder),
		"星 " + entities.JoinSymbols(s.Stars, f.placeholder),
		spirit.Render("神 "+orDefault(s.Spirit.String(), f.placeholder)) + "  门 " + orDefault(s.Gate.String(), f.placeholder),
	}
	return box.Render(strings.Join(lines, "\n"))
}
