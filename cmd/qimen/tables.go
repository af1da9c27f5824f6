package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/dunjia/qimen/internal/domain/entities"
	"github.com/dunjia/qimen/internal/domain/services"
	"github.com/dunjia/qimen/internal/domain/values"
)

var tableNames = []string{"cycles", "stages", "palaces"}

// tablesCmd dumps the reference tables the engine arranges from.
var tablesCmd = &cobra.Command{
	Use:       "tables [cycles|stages|palaces]",
	Short:     "Print the reference tables",
	Long:      `Print the six cycle groups, the 24-term stage table or the nine palaces. With no argument all three are printed.`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: tableNames,
	RunE: withContainer(func(cc *CommandContext, cmd *cobra.Command, args []string) error {
		names := tableNames
		if len(args) == 1 {
			names = args
		}
		return writeTables(cmd.OutOrStdout(), cc.Container.Engine(), names)
	}),
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}

func writeTables(w io.Writer, engine *services.ArrangementEngine, names []string) error {
	for i, name := range names {
		var t *table.Table
		var err error
		switch name {
		case "cycles":
			t = cycleTable(engine.Cycles())
		case "stages":
			t, err = stageTable(engine.Terms())
		case "palaces":
			t = palaceTable(engine.Palaces())
		default:
			return fmt.Errorf("unknown table: %s (valid: %v)", name, tableNames)
		}
		if err != nil {
			return err
		}
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, t.String()); err != nil {
			return err
		}
	}
	return nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

func cycleTable(cycles *entities.CycleTable) *table.Table {
	t := newTable("旬首", "遁干", "空亡", "前五", "后五")
	for _, g := range cycles.Groups() {
		t.Row(
			g.Lead.String(),
			g.HiddenStem.String(),
			g.Void[0].String()+g.Void[1].String(),
			g.Early.String()+" "+joinPillars(g.Run(g.Early)),
			g.Late.String()+" "+joinPillars(g.Run(g.Late)),
		)
	}
	return t
}

func joinPillars(pillars []values.Pillar) string {
	return joinPillarsWith(pillars, "")
}

func joinPillarsWith(pillars []values.Pillar, sep string) string {
	names := make([]string, len(pillars))
	for i, p := range pillars {
		names[i] = p.String()
	}
	return strings.Join(names, sep)
}

func stageTable(terms *entities.TermTable) (*table.Table, error) {
	t := newTable("节气", "阴阳", "上元", "中元", "下元")
	periods := []values.SubPeriod{values.SubPeriodUpper, values.SubPeriodMiddle, values.SubPeriodLower}
	for _, term := range values.AllSolarTerms() {
		polarity, err := terms.PolarityOf(term)
		if err != nil {
			return nil, err
		}
		row := []string{term.String(), polarity.String() + "遁"}
		for _, sp := range periods {
			n, err := terms.StageNumber(term, sp)
			if err != nil {
				return nil, err
			}
			row = append(row, fmt.Sprintf("%d局", n))
		}
		t.Row(row...)
	}
	return t, nil
}

func palaceTable(palaces *entities.PalaceRegistry) *table.Table {
	t := newTable("宫", "卦", "五行", "本星", "本门", "地支")
	for _, p := range palaces.All() {
		branches := palaces.BranchesOf(p.Number)
		names := make([]string, len(branches))
		for i, b := range branches {
			names[i] = b.String()
		}
		gate := p.HomeGate.String()
		if gate == "" {
			gate = entities.DefaultPlaceholder
		}
		t.Row(p.Name, p.Trigram, p.Element.String(), p.HomeStar.String(), gate, strings.Join(names, ""))
	}
	return t
}
