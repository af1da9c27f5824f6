package services

import (
	"fmt"
	"strings"

	"github.com/dunjia/qimen/internal/domain/entities"
	"github.com/dunjia/qimen/internal/domain/values"
)

// CoverageError lists every invariant a finished chart violates.
type CoverageError struct {
	ChartID    string
	Violations []string
}

func (e *CoverageError) Error() string {
	return fmt.Sprintf("chart %s violates %d invariant(s): %s",
		e.ChartID, len(e.Violations), strings.Join(e.Violations, "; "))
}

// CoverageVerifier checks the structural invariants of a finished chart.
type CoverageVerifier struct{}

// NewCoverageVerifier creates a verifier.
func NewCoverageVerifier() *CoverageVerifier {
	return &CoverageVerifier{}
}

// Verify returns a *CoverageError when any invariant fails, nil otherwise.
func (v *CoverageVerifier) Verify(chart *entities.Chart) error {
	var violations []string
	fail := func(format string, args ...any) {
		violations = append(violations, fmt.Sprintf(format, args...))
	}

	gates := map[values.Gate]int{}
	spirits := map[values.Spirit]int{}
	stars := map[values.Star]int{}

	for _, s := range chart.Palaces() {
		if s.Gate.Valid() {
			gates[s.Gate]++
		}
		if s.Spirit.Valid() {
			spirits[s.Spirit]++
		}
		for _, st := range s.Stars {
			stars[st]++
		}
		if s.Palace.IsCenter() {
			if len(s.Ground) > 0 || len(s.Heaven) > 0 || len(s.Stars) > 0 {
				fail("centre palace is not empty")
			}
			if s.Gate.Valid() || s.Spirit.Valid() {
				fail("centre palace holds a gate or spirit")
			}
		}
	}

	for _, g := range values.AllGates() {
		if gates[g] != 1 {
			fail("gate %s appears %d times", g, gates[g])
		}
	}
	for _, sp := range values.AllSpirits() {
		if spirits[sp] != 1 {
			fail("spirit %s appears %d times", sp, spirits[sp])
		}
	}
	for _, st := range values.AllStars() {
		if stars[st] != 1 {
			fail("star %s appears %d times", st, stars[st])
		}
	}

	if chart.StageNumber < 1 || chart.StageNumber > 9 {
		fail("stage number %d out of range", chart.StageNumber)
	}
	if !chart.Polarity.Valid() {
		fail("polarity is not set")
	}
	if !chart.Void[0].AdjacentTo(chart.Void[1]) {
		fail("void branches %s, %s are not adjacent", chart.Void[0], chart.Void[1])
	}

	if len(violations) > 0 {
		return &CoverageError{ChartID: chart.ID.String(), Violations: violations}
	}
	return nil
}
