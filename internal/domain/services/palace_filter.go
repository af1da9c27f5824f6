package services

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/dunjia/qimen/internal/domain/entities"
	"github.com/dunjia/qimen/internal/domain/values"
)

// PalaceEnv defines the variables available during filter expression evaluation.
type PalaceEnv struct {
	Number   int      `expr:"number"`
	Name     string   `expr:"name"`
	Trigram  string   `expr:"trigram"`
	Element  string   `expr:"element"`
	Polarity string   `expr:"polarity"`
	Ground   []string `expr:"ground"`
	Heaven   []string `expr:"heaven"`
	Stars    []string `expr:"stars"`
	Spirit   string   `expr:"spirit"`
	Gate     string   `expr:"gate"`
	Branches []string `expr:"branches"`
	Void     bool     `expr:"void"`
}

// NewPalaceEnv flattens a candidate into its expression environment.
func NewPalaceEnv(c PalaceCandidate) PalaceEnv {
	s := c.State
	return PalaceEnv{
		Number:   int(s.Palace.Number),
		Name:     s.Palace.Name,
		Trigram:  s.Palace.Trigram,
		Element:  s.Palace.Element.String(),
		Polarity: s.Palace.Polarity.String(),
		Ground:   symbolStrings(s.Ground),
		Heaven:   symbolStrings(s.Heaven),
		Stars:    symbolStrings(s.Stars),
		Spirit:   s.Spirit.String(),
		Gate:     s.Gate.String(),
		Branches: symbolStrings(c.Branches),
		Void:     c.IsVoid(),
	}
}

// CompilePalaceExpression compiles a boolean filter expression against PalaceEnv.
func CompilePalaceExpression(src string) (*vm.Program, error) {
	program, err := expr.Compile(src, expr.Env(PalaceEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return program, nil
}

// PalaceFilter selects which palaces of a chart are shown.
type PalaceFilter struct {
	includePalaces map[values.PalaceNumber]bool
	hideCenter     bool

	// Advanced filtering
	filterProgram *vm.Program
}

// NewPalaceFilter initializes a new empty filter.
func NewPalaceFilter() *PalaceFilter {
	return &PalaceFilter{
		includePalaces: make(map[values.PalaceNumber]bool),
	}
}

// WithPalaces restricts output to the given palace numbers.
func (f *PalaceFilter) WithPalaces(numbers []int) *PalaceFilter {
	f.includePalaces = make(map[values.PalaceNumber]bool, len(numbers))
	for _, n := range numbers {
		f.includePalaces[values.PalaceNumber(n)] = true
	}
	return f
}

// WithoutCenter hides the centre palace.
func (f *PalaceFilter) WithoutCenter() *PalaceFilter {
	f.hideCenter = true
	return f
}

// WithFilterExpression applies a compiled Expr program for advanced filtering.
func (f *PalaceFilter) WithFilterExpression(program *vm.Program) *PalaceFilter {
	f.filterProgram = program
	return f
}

// IsEmpty reports whether the filter lets everything through.
func (f *PalaceFilter) IsEmpty() bool {
	return len(f.includePalaces) == 0 && !f.hideCenter && f.filterProgram == nil
}

// Matches evaluates whether a palace passes the filter criteria.
func (f *PalaceFilter) Matches(c PalaceCandidate) (bool, string) {
	var specs []PalaceSpecification

	if len(f.includePalaces) > 0 {
		specs = append(specs, NewIncludedPalacesSpecification(f.includePalaces))
	}
	if f.hideCenter {
		specs = append(specs, ExcludedCenterSpecification{})
	}
	if f.filterProgram != nil {
		specs = append(specs, NewExpressionSpecification(f.filterProgram))
	}

	spec := NewAndSpecification(specs...)
	return spec.IsSatisfiedBy(c)
}

// Exclusion records why a palace was left out of a selection.
type Exclusion struct {
	Palace values.PalaceNumber
	Reason string
}

// Select returns the palaces of chart that pass the filter, in canonical
// order, together with the reason each other palace was left out.
func (f *PalaceFilter) Select(chart *entities.Chart, registry *entities.PalaceRegistry) ([]entities.PalaceState, []Exclusion) {
	var (
		out      []entities.PalaceState
		excluded []Exclusion
	)
	for _, s := range chart.Palaces() {
		c := PalaceCandidate{
			State:    s,
			Branches: registry.BranchesOf(s.Palace.Number),
			Void:     chart.Void,
		}
		ok, reason := f.Matches(c)
		if !ok {
			excluded = append(excluded, Exclusion{Palace: s.Palace.Number, Reason: reason})
			continue
		}
		out = append(out, s)
	}
	return out, excluded
}

func symbolStrings[T fmt.Stringer](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.String()
	}
	return out
}
