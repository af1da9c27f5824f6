// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"io"

	"github.com/dunjia/qimen/internal/application/dto"
)

// RequestLoader loads batch request documents from storage.
type RequestLoader interface {
	Load(path string) (*dto.BatchRequest, error)
}

// OutputFormatter writes chart results.
type OutputFormatter interface {
	Format(results []dto.ChartResult) error
}

// FormatterOptions tunes the formatter a factory creates.
type FormatterOptions struct {
	// Indent pretty-prints structured formats
	Indent bool

	// Color enables ANSI colour in terminal formats
	Color bool

	// Placeholder is written for empty palace slots
	Placeholder string
}

// OutputFormatterFactory creates formatters by name.
type OutputFormatterFactory interface {
	Create(format string, writer io.Writer, options FormatterOptions) (OutputFormatter, error)
	SupportedFormats() []string
}
