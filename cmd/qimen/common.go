package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/dunjia/qimen/internal/application/dto"
)

// CommonOptions contains flags shared by chart and batch.
type CommonOptions struct {
	// Output
	Format  string
	OutFile string

	// Palace selection
	Filter     string
	Palaces    []int
	HideCenter bool

	// Execution
	Timeout time.Duration
}

// DefaultCommonOptions returns sensible defaults. An empty Format defers to
// the system configuration.
func DefaultCommonOptions() CommonOptions {
	return CommonOptions{
		Timeout: 30 * time.Second,
	}
}

// RegisterFlags adds common flags to a cobra command.
func (opts *CommonOptions) RegisterFlags(cmd *cobra.Command) {
	// Execution
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout,
		"Global timeout for the whole command (0 to disable)")

	// Output
	cmd.Flags().StringVar(&opts.Format, "format", opts.Format,
		"Output format: text, table, grid, json, yaml (default from config)")
	cmd.Flags().StringVarP(&opts.OutFile, "output", "o", opts.OutFile,
		"Output file path (default: stdout)")

	// Selection
	cmd.Flags().StringVar(&opts.Filter, "filter", opts.Filter,
		"Palace filter expression (e.g. \"gate == '开门' || '天芮' in stars\")")
	cmd.Flags().IntSliceVar(&opts.Palaces, "palace", opts.Palaces,
		"Only print these palaces (comma-separated numbers 1-9)")
	cmd.Flags().BoolVar(&opts.HideCenter, "hide-center", opts.HideCenter,
		"Omit the centre palace")
}

// ApplyToContext applies timeout to context.
// Returns new context and cancel function.
func (opts *CommonOptions) ApplyToContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	// No timeout - return no-op cancel
	return ctx, func() {}
}

// ResolveFormat returns the flag format, falling back to the configured one.
func (opts *CommonOptions) ResolveFormat(configured string) string {
	if opts.Format != "" {
		return opts.Format
	}
	return configured
}

// ValidateFlags validates common options against the supported formats.
func (opts *CommonOptions) ValidateFlags(format string, supported []string) error {
	if !slices.Contains(supported, format) {
		return fmt.Errorf("invalid format: %s (valid: %v)", format, supported)
	}
	if opts.Timeout < 0 {
		return fmt.Errorf("--timeout must not be negative")
	}
	return nil
}

// FilterOptions converts the selection flags.
func (opts *CommonOptions) FilterOptions() dto.FilterOptions {
	return dto.FilterOptions{
		FilterExpression: opts.Filter,
		Palaces:          opts.Palaces,
		HideCenter:       opts.HideCenter,
	}
}

// openOutput returns the writer for --output, or fallback when unset.
// The returned close function is always safe to call.
func (opts *CommonOptions) openOutput(fallback io.Writer) (io.Writer, func(), error) {
	if opts.OutFile == "" {
		return fallback, func() {}, nil
	}
	//nolint:gosec // G304: User-controlled output file path is intentional
	file, err := os.Create(opts.OutFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, func() {
		_ = file.Close() // Best-effort cleanup
	}, nil
}
