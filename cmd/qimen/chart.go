package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/dunjia/qimen/internal/application/dto"
	"github.com/dunjia/qimen/internal/domain/values"
)

// chartOptions holds the chart command's flags.
type chartOptions struct {
	CommonOptions
	Request     dto.ChartRequest
	Interactive bool
}

var chartOpts = chartOptions{CommonOptions: DefaultCommonOptions()}

// chartCmd arranges one chart.
var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Arrange the chart of one hour",
	Long: `Arrange the QiMen DunJia chart for one moment given its four pillars and
solar term. Pillars are two-symbol sexagenary names such as 戊子.

Examples:
  qimen chart --year 戊子 --month 壬戌 --day 戊申 --hour 戊午 --term 霜降
  qimen chart --year 戊子 --month 壬戌 --day 戊申 --hour 戊午 --term 霜降 --format grid
  qimen chart ... --filter "spirit == '值符' || gate == '开门'"
  qimen chart --interactive`,
	Args: cobra.NoArgs,
	RunE: withContainer(func(cc *CommandContext, cmd *cobra.Command, _ []string) error {
		if chartOpts.Interactive {
			if err := promptChartRequest(&chartOpts.Request); err != nil {
				return err
			}
		}
		return runChart(cc, &chartOpts, cmd.OutOrStdout())
	}),
}

func init() {
	rootCmd.AddCommand(chartCmd)

	f := chartCmd.Flags()
	f.StringVar(&chartOpts.Request.Year, "year", "", "Year pillar (e.g. 戊子)")
	f.StringVar(&chartOpts.Request.Month, "month", "", "Month pillar (e.g. 壬戌)")
	f.StringVar(&chartOpts.Request.Day, "day", "", "Day pillar (e.g. 戊申)")
	f.StringVar(&chartOpts.Request.Hour, "hour", "", "Hour pillar (e.g. 戊午)")
	f.StringVar(&chartOpts.Request.Term, "term", "", "Solar term (e.g. 霜降)")
	f.StringVar(&chartOpts.Request.HourToken, "hour-token", "", "Hour name carried into the output (e.g. 午时)")
	f.StringVar(&chartOpts.Request.Label, "label", "", "Label printed with the chart")
	f.BoolVarP(&chartOpts.Interactive, "interactive", "i", false, "Prompt for missing fields")

	chartOpts.RegisterFlags(chartCmd)
}

// runChart computes and writes one chart.
func runChart(cc *CommandContext, opts *chartOptions, stdout io.Writer) error {
	sysCfg := cc.Container.SystemConfig()
	format := opts.ResolveFormat(sysCfg.Format)
	if err := opts.ValidateFlags(format, cc.Container.Formatters().SupportedFormats()); err != nil {
		return err
	}

	ctx, cancel := opts.ApplyToContext(cc.Context)
	defer cancel()

	res, err := cc.Container.ChartService().Compute(ctx, opts.Request, opts.FilterOptions())
	if err != nil {
		return err
	}

	cc.Logger.Debug("chart arranged",
		"chart_id", res.Chart.ID.String(),
		"palaces", len(res.Palaces),
		"cached", res.Cached)

	writer, closeOut, err := opts.openOutput(stdout)
	if err != nil {
		return err
	}
	defer closeOut()

	formatter, err := cc.Container.Formatters().Create(format, writer, cc.Container.FormatterOptions())
	if err != nil {
		return err
	}
	if err := formatter.Format([]dto.ChartResult{*res}); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return nil
}

// promptChartRequest asks for every field the flags left empty.
func promptChartRequest(req *dto.ChartRequest) error {
	var fields []huh.Field

	pillarInput := func(title string, value *string) {
		if *value != "" {
			return
		}
		fields = append(fields, huh.NewInput().
			Title(title).
			Placeholder("甲子").
			Value(value).
			Validate(validatePillar))
	}
	pillarInput("年柱 (year pillar)", &req.Year)
	pillarInput("月柱 (month pillar)", &req.Month)
	pillarInput("日柱 (day pillar)", &req.Day)
	pillarInput("时柱 (hour pillar)", &req.Hour)

	if req.Term == "" {
		fields = append(fields, huh.NewSelect[string]().
			Title("节气 (solar term)").
			Options(huh.NewOptions(solarTermNames()...)...).
			Height(8).
			Value(&req.Term))
	}
	if req.HourToken == "" {
		fields = append(fields, huh.NewInput().
			Title("时辰 (hour name, optional)").
			Value(&req.HourToken))
	}

	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

func validatePillar(s string) error {
	_, err := values.ParsePillar(s)
	return err
}

func solarTermNames() []string {
	terms := values.AllSolarTerms()
	names := make([]string, len(terms))
	for i, t := range terms {
		names[i] = t.String()
	}
	return names
}
