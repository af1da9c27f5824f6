package services

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/dunjia/qimen/internal/domain/entities"
	"github.com/dunjia/qimen/internal/domain/values"
)

// PalaceCandidate is a palace state together with the chart context a
// specification may need.
type PalaceCandidate struct {
	State    entities.PalaceState
	Branches []values.Branch
	Void     [2]values.Branch
}

// IsVoid reports whether one of the palace's branches is a void branch.
func (c PalaceCandidate) IsVoid() bool {
	for _, b := range c.Branches {
		if b == c.Void[0] || b == c.Void[1] {
			return true
		}
	}
	return false
}

// PalaceSpecification defines a condition that a palace must meet.
type PalaceSpecification interface {
	// IsSatisfiedBy checks if the palace meets the specification.
	// Returns true if satisfied, along with a reason if not (or empty if satisfied).
	IsSatisfiedBy(c PalaceCandidate) (bool, string)
}

// AndSpecification combines multiple specifications with logical AND.
type AndSpecification struct {
	specs []PalaceSpecification
}

// NewAndSpecification creates a new AndSpecification.
func NewAndSpecification(specs ...PalaceSpecification) *AndSpecification {
	return &AndSpecification{specs: specs}
}

// IsSatisfiedBy checks if all specifications are satisfied.
func (s *AndSpecification) IsSatisfiedBy(c PalaceCandidate) (bool, string) {
	for _, spec := range s.specs {
		if satisfied, reason := spec.IsSatisfiedBy(c); !satisfied {
			return false, reason
		}
	}
	return true, ""
}

// IncludedPalacesSpecification includes only the listed palace numbers.
type IncludedPalacesSpecification struct {
	numbers map[values.PalaceNumber]bool
}

// NewIncludedPalacesSpecification creates a new IncludedPalacesSpecification.
func NewIncludedPalacesSpecification(numbers map[values.PalaceNumber]bool) *IncludedPalacesSpecification {
	return &IncludedPalacesSpecification{numbers: numbers}
}

// IsSatisfiedBy checks if the palace number is in the included list.
func (s *IncludedPalacesSpecification) IsSatisfiedBy(c PalaceCandidate) (bool, string) {
	if len(s.numbers) == 0 {
		return true, "" // Not active
	}
	if s.numbers[c.State.Palace.Number] {
		return true, ""
	}
	return false, "excluded by --palace filter"
}

// ExcludedCenterSpecification drops the centre palace, which is always
// empty after consolidation.
type ExcludedCenterSpecification struct{}

// IsSatisfiedBy checks that the palace is not the centre.
func (ExcludedCenterSpecification) IsSatisfiedBy(c PalaceCandidate) (bool, string) {
	if c.State.Palace.IsCenter() {
		return false, "centre palace hidden"
	}
	return true, ""
}

// ExpressionSpecification filters palaces using an expr program.
type ExpressionSpecification struct {
	program *vm.Program
}

// NewExpressionSpecification creates a new ExpressionSpecification.
func NewExpressionSpecification(program *vm.Program) *ExpressionSpecification {
	return &ExpressionSpecification{program: program}
}

// IsSatisfiedBy evaluates the expr program against the palace.
func (s *ExpressionSpecification) IsSatisfiedBy(c PalaceCandidate) (bool, string) {
	if s.program == nil {
		return true, ""
	}

	output, err := expr.Run(s.program, NewPalaceEnv(c))
	if err != nil {
		return false, fmt.Sprintf("filter expression error: %v", err)
	}

	result, ok := output.(bool)
	if !ok {
		return false, fmt.Sprintf("filter expression did not return boolean: %v", output)
	}

	if !result {
		return false, "excluded by --filter expression"
	}

	return true, ""
}
