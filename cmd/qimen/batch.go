package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/dunjia/qimen/internal/application/dto"
	"github.com/dunjia/qimen/internal/domain/values"
)

// batchOptions holds the batch command's flags.
type batchOptions struct {
	CommonOptions
	// Concurrency overrides the configured limit when >= 0.
	Concurrency int
	// ByTerm appends a per-term table of the arranged charts.
	ByTerm bool
}

var batchOpts = batchOptions{CommonOptions: DefaultCommonOptions(), Concurrency: -1}

// batchCmd arranges every chart of a batch document.
var batchCmd = &cobra.Command{
	Use:   "batch <charts.yaml|charts.toml|charts.json>",
	Short: "Arrange every chart listed in a batch document",
	Long: `Load a batch document and arrange its charts concurrently. Charts with
identical pillars and term are arranged once. Results keep document order.

Document layout (YAML):
  apiVersion: "1.0.0"
  defaults:
    year: 戊子
    month: 壬戌
    day: 戊申
    term: 霜降
  charts:
    - label: noon
      hour_token: 午时
      hour: 戊午

A failing chart is reported in place; the command exits non-zero when any
chart failed.`,
	Args: cobra.ExactArgs(1),
	RunE: withContainer(func(cc *CommandContext, cmd *cobra.Command, args []string) error {
		return runBatch(cc, &batchOpts, args[0], cmd.OutOrStdout())
	}),
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchOpts.Concurrency, "concurrency", batchOpts.Concurrency,
		"Maximum charts arranged in parallel (0 = unlimited, default from config)")
	batchCmd.Flags().BoolVar(&batchOpts.ByTerm, "by-term", false,
		"Append the arranged charts grouped by solar term (text and table formats)")
	batchOpts.RegisterFlags(batchCmd)
}

func termTable(groups []dto.TermCharts) *table.Table {
	t := newTable("节气", "盘数", "时柱")
	for _, g := range groups {
		hours := make([]values.Pillar, len(g.Charts))
		for i, c := range g.Charts {
			hours[i] = c.Hour
		}
		t.Row(g.Term, strconv.Itoa(len(g.Charts)), joinPillarsWith(hours, " "))
	}
	return t
}

// runBatch loads, computes and writes a batch document.
func runBatch(cc *CommandContext, opts *batchOptions, path string, stdout io.Writer) error {
	sysCfg := cc.Container.SystemConfig()
	format := opts.ResolveFormat(sysCfg.Format)
	if err := opts.ValidateFlags(format, cc.Container.Formatters().SupportedFormats()); err != nil {
		return err
	}
	if opts.ByTerm && format != "text" && format != "table" {
		return fmt.Errorf("--by-term requires text or table format, got %q", format)
	}

	cc.Logger.Info("loading batch", "path", path)
	req, err := cc.Container.RequestLoader().Load(path)
	if err != nil {
		return fmt.Errorf("failed to load batch: %w", err)
	}
	cc.Logger.Info("batch loaded", "api_version", req.APIVersion, "charts", len(req.Charts))

	exec := dto.ExecutionOptions{MaxConcurrentCharts: sysCfg.Concurrency}
	if opts.Concurrency >= 0 {
		exec.MaxConcurrentCharts = opts.Concurrency
	}

	ctx, cancel := opts.ApplyToContext(cc.Context)
	defer cancel()

	resp, err := cc.Container.ChartService().ComputeBatch(ctx, *req, opts.FilterOptions(), exec)
	if err != nil {
		return err
	}

	writer, closeOut, err := opts.openOutput(stdout)
	if err != nil {
		return err
	}
	defer closeOut()

	formatter, err := cc.Container.Formatters().Create(format, writer, cc.Container.FormatterOptions())
	if err != nil {
		return err
	}
	if err := formatter.Format(resp.Results); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if opts.ByTerm {
		groups, err := cc.Container.ChartService().ChartsByTerm(ctx)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(writer, "\n%s\n", termTable(groups).String()); err != nil {
			return err
		}
	}

	if failed := len(resp.Failed()); failed > 0 {
		return fmt.Errorf("batch failed: %d of %d charts failed", failed, len(resp.Results))
	}
	return nil
}
