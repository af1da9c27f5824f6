package output

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/dunjia/qimen/internal/application/dto"
)

// YAMLFormatter formats chart results as YAML.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// Format writes the results as YAML.
func (f *YAMLFormatter) Format(results []dto.ChartResult) error {
	encoder := yaml.NewEncoder(f.writer, yaml.Indent(2))

	var payload any = views(results)
	if len(results) == 1 {
		payload = NewChartView(results[0])
	}

	if err := encoder.Encode(payload); err != nil {
		return err
	}

	return encoder.Close()
}
