package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dunjia/qimen/internal/domain/entities"
	"github.com/dunjia/qimen/internal/domain/values"
)

func scenarioOneChart(t *testing.T) (*entities.Chart, *entities.PalaceRegistry) {
	t.Helper()
	engine := newTestEngine()
	chart, err := engine.Arrange(input("午时", "戊子", "壬戌", "戊申", "戊午", "霜降"))
	require.NoError(t, err)
	return chart, engine.Palaces()
}

func palaceNames(states []entities.PalaceState) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = s.Palace.Name
	}
	return out
}

func Test_PalaceFilter_NoFilters(t *testing.T) {
	chart, registry := scenarioOneChart(t)
	filter := NewPalaceFilter()

	assert.True(t, filter.IsEmpty())
	got, excluded := filter.Select(chart, registry)
	assert.Len(t, got, 9, "no filters should allow all palaces")
	assert.Empty(t, excluded)
}

func Test_PalaceFilter_WithPalaces(t *testing.T) {
	chart, registry := scenarioOneChart(t)
	got, excluded := NewPalaceFilter().WithPalaces([]int{9, 1}).Select(chart, registry)
	assert.Len(t, excluded, 7)
	assert.Equal(t, []string{"坎一宫", "离九宫"}, palaceNames(got))
}

func Test_PalaceFilter_WithoutCenter(t *testing.T) {
	chart, registry := scenarioOneChart(t)
	got, excluded := NewPalaceFilter().WithoutCenter().Select(chart, registry)
	assert.Len(t, got, 8)
	assert.Equal(t, []Exclusion{{Palace: values.PalaceCenter, Reason: "centre palace hidden"}}, excluded)
	assert.NotContains(t, palaceNames(got), "中五宫")
}

func Test_PalaceFilter_Expressions(t *testing.T) {
	chart, registry := scenarioOneChart(t)

	tests := []struct {
		name string
		expr string
		want []string
	}{
		{"by gate", `gate == "开门"`, []string{"坤二宫"}},
		{"by spirit", `spirit == "值符"`, []string{"坤二宫"}},
		{"star membership", `"天禽" in stars`, []string{"巽四宫"}},
		{"heaven membership", `"丁" in heaven`, []string{"巽四宫"}},
		{"by element", `element == "金"`, []string{"乾六宫", "兑七宫"}},
		{"void palaces", `void`, []string{"坎一宫", "艮八宫"}},
		{"combined", `polarity == "阴" && number > 5`, []string{"兑七宫", "离九宫"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, err := CompilePalaceExpression(tt.expr)
			require.NoError(t, err)
			got, _ := NewPalaceFilter().WithFilterExpression(program).Select(chart, registry)
			assert.Equal(t, tt.want, palaceNames(got))
		})
	}
}

func Test_PalaceFilter_RuntimeErrorReported(t *testing.T) {
	chart, registry := scenarioOneChart(t)
	program, err := CompilePalaceExpression(`heaven[1] == "丁"`)
	require.NoError(t, err)

	got, excluded := NewPalaceFilter().WithFilterExpression(program).Select(chart, registry)
	assert.Equal(t, []string{"巽四宫"}, palaceNames(got))
	require.Len(t, excluded, 8)

	var errored int
	for _, e := range excluded {
		if strings.HasPrefix(e.Reason, "filter expression error") {
			errored++
		}
	}
	assert.Equal(t, 8, errored, "palaces with a single heaven stem fail the index")
}

func Test_CompilePalaceExpression_Invalid(t *testing.T) {
	_, err := CompilePalaceExpression(`gate ==`)
	assert.Error(t, err)

	_, err = CompilePalaceExpression(`number + 1`)
	assert.Error(t, err, "non-boolean expressions are rejected")

	_, err = CompilePalaceExpression(`unknown_field == 1`)
	assert.Error(t, err)
}

func Test_PalaceFilter_Reasons(t *testing.T) {
	chart, _ := scenarioOneChart(t)
	centre, err := chart.Palace(values.PalaceCenter)
	require.NoError(t, err)

	ok, reason := NewPalaceFilter().WithoutCenter().Matches(PalaceCandidate{State: centre})
	assert.False(t, ok)
	assert.Equal(t, "centre palace hidden", reason)

	ok, reason = NewPalaceFilter().WithPalaces([]int{1}).Matches(PalaceCandidate{State: centre})
	assert.False(t, ok)
	assert.Equal(t, "excluded by --palace filter", reason)
}

func Test_PalaceCandidate_IsVoid(t *testing.T) {
	c := PalaceCandidate{
		Branches: []values.Branch{values.BranchChou, values.BranchYin},
		Void:     [2]values.Branch{values.BranchZi, values.BranchChou},
	}
	assert.True(t, c.IsVoid())

	c.Void = [2]values.Branch{values.BranchXu, values.BranchHai}
	assert.False(t, c.IsVoid())
}
