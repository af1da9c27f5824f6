package output

import (
	"encoding/json"
	"io"

	"github.com/dunjia/qimen/internal/application/dto"
)

// JSONFormatter formats chart results as JSON. A single result is written
// as an object, several as an array.
type JSONFormatter struct {
	writer io.Writer
	indent bool
}

// NewJSONFormatter creates a new JSON formatter.
// If indent is true, the output will be pretty-printed with indentation.
func NewJSONFormatter(w io.Writer, indent bool) *JSONFormatter {
	return &JSONFormatter{
		writer: w,
		indent: indent,
	}
}

// Format writes the results as JSON.
func (f *JSONFormatter) Format(results []dto.ChartResult) error {
	var payload any = views(results)
	if len(results) == 1 {
		payload = NewChartView(results[0])
	}

	var data []byte
	var err error

	if f.indent {
		data, err = json.MarshalIndent(payload, "", "  ")
	} else {
		data, err = json.Marshal(payload)
	}

	if err != nil {
		return err
	}

	_, err = f.writer.Write(data)
	if err != nil {
		return err
	}

	// Add newline for better terminal output
	_, err = f.writer.Write([]byte("\n"))
	return err
}
