package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dunjia/qimen/internal/application/dto"
	"github.com/dunjia/qimen/internal/domain/entities"
)

// TextFormatter writes the canonical labelled text form of each chart.
type TextFormatter struct {
	writer      io.Writer
	placeholder string
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(w io.Writer, placeholder string) *TextFormatter {
	if placeholder == "" {
		placeholder = entities.DefaultPlaceholder
	}
	return &TextFormatter{writer: w, placeholder: placeholder}
}

// Format writes each result; multiple results are separated by a blank line
// and headed by their label.
//
//nolint:errcheck // Best-effort terminal output
func (f *TextFormatter) Format(results []dto.ChartResult) error {
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(f.writer)
		}
		if len(results) > 1 && res.Label != "" {
			fmt.Fprintf(f.writer, "# %s\n", res.Label)
		}
		if res.Err != nil {
			fmt.Fprintf(f.writer, "错误: %v\n", res.Err)
			continue
		}
		if _, err := io.WriteString(f.writer, renderResult(res, f.placeholder)); err != nil {
			return err
		}
	}
	return nil
}

// renderResult is Chart.RenderWith restricted to the selected palaces.
func renderResult(res dto.ChartResult, placeholder string) string {
	if len(res.Palaces) == len(res.Chart.Palaces()) {
		return res.Chart.RenderWith(placeholder)
	}

	var b strings.Builder
	for _, f := range res.Chart.Fields() {
		v := f.Value
		if v == "" {
			v = placeholder
		}
		fmt.Fprintf(&b, "%s: %s\n", f.Label, v)
	}
	b.WriteString("\n九宫:\n")
	for _, s := range res.Palaces {
		b.WriteString(entities.RenderPalace(s, placeholder))
		b.WriteByte('\n')
	}
	return b.String()
}
