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

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

var tableColumns = []string{"宫", "天干", "地干", "星", "神", "门"}

// TableFormatter formats chart results as a human-readable table.
type TableFormatter struct {
	writer      io.Writer
	placeholder string
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer, placeholder string) *TableFormatter {
	if placeholder == "" {
		placeholder = entities.DefaultPlaceholder
	}
	return &TableFormatter{
		writer:      w,
		placeholder: placeholder,
		EnableColor: true, // Default to true, caller can disable
	}
}

// colorize returns the string wrapped in ANSI color codes if enabled.
func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// Format writes each chart result as a table.
//
//nolint:errcheck // Table formatting errors are non-critical (best-effort terminal output)
func (f *TableFormatter) Format(results []dto.ChartResult) error {
	failed := 0
	for _, res := range results {
		fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 72), colorGray))
		if res.Err != nil {
			failed++
			label := res.Label
			if label == "" {
				label = fmt.Sprintf("#%d", res.Index+1)
			}
			fmt.Fprintf(f.writer, "%s %s: %v\n", f.colorize("✗", colorRed), label, res.Err)
			continue
		}
		f.formatChart(res)
	}
	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 72), colorGray))

	if len(results) > 1 {
		f.formatSummary(len(results), failed)
	}
	return nil
}

// formatChart formats one chart: header fields, then the palace rows.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatChart(res dto.ChartResult) {
	c := res.Chart

	title := c.ID.String()
	if res.Label != "" {
		title = res.Label
	}
	cached := ""
	if res.Cached {
		cached = f.colorize(" (cached)", colorGray)
	}
	fmt.Fprintf(f.writer, "%s %s%s\n", f.colorize("✓", colorGreen), f.colorize(title, colorBold), cached)

	for _, field := range c.Fields() {
		v := field.Value
		if v == "" {
			v = f.placeholder
		}
		fmt.Fprintf(f.writer, "  %s %s\n", f.colorize(padRight(field.Label, 6), colorCyan), v)
	}
	fmt.Fprintf(f.writer, "  %s %s\n", f.colorize(padRight("值符星", 6), colorCyan), c.DutyStar)
	fmt.Fprintln(f.writer)

	rows := [][]string{tableColumns}
	for _, s := range res.Palaces {
		rows = append(rows, []string{
			s.Palace.Name,
			entities.JoinSymbols(s.Heaven, f.placeholder),
			entities.JoinSymbols(s.Ground, f.placeholder),
			entities.JoinSymbols(s.Stars, f.placeholder),
			orDefault(s.Spirit.String(), f.placeholder),
			orDefault(s.Gate.String(), f.placeholder),
		})
	}

	widths := columnWidths(rows)
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = padRight(cell, widths[j])
		}
		if i == 0 {
			fmt.Fprintf(f.writer, "  %s\n", f.colorize(strings.Join(cells, "  "), colorBold))
			continue
		}
		f.highlight(res.Palaces[i-1], cells)
		fmt.Fprintf(f.writer, "  %s\n", strings.Join(cells, "  "))
	}
}

// highlight marks the duty spirit and the palace the centre resides in.
func (f *TableFormatter) highlight(s entities.PalaceState, cells []string) {
	if s.Spirit == values.SpiritDuty {
		cells[4] = f.colorize(cells[4], colorYellow)
	}
	if s.HasStar(values.StarQin) {
		cells[3] = f.colorize(cells[3], colorYellow)
	}
}

// formatSummary prints batch totals.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatSummary(total, failed int) {
	fmt.Fprintf(f.writer, "%s %d charts, %s, %s\n",
		f.colorize("Summary:", colorBold),
		total,
		f.colorize(fmt.Sprintf("%d ok", total-failed), colorGreen),
		f.colorize(fmt.Sprintf("%d failed", failed), colorRed))
}

func columnWidths(rows [][]string) []int {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for j, cell := range row {
			if w := lipgloss.Width(cell); w > widths[j] {
				widths[j] = w
			}
		}
	}
	return widths
}

// padRight pads s with spaces to the given display width. CJK symbols
// occupy two cells.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
