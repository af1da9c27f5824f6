package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dunjia/qimen/internal/domain/entities"
	"github.com/dunjia/qimen/internal/domain/values"
)

func TestCoverageVerifier_DetectsViolations(t *testing.T) {
	chart, _ := scenarioOneChart(t)

	states := chart.Palaces()
	// Duplicate a gate, drop a star and leave a stem in the centre.
	states[0].Gate = states[1].Gate
	states[2].Stars = nil
	states[4].Ground = []values.Stem{values.StemDing}

	broken, err := entities.NewChart(chart.ChartHeader, states)
	require.NoError(t, err)

	err = NewCoverageVerifier().Verify(broken)
	var covErr *CoverageError
	require.True(t, errors.As(err, &covErr))
	assert.Contains(t, covErr.Violations, "centre palace is not empty")
	assert.Contains(t, covErr.Violations, "gate 开门 appears 2 times")
	assert.Contains(t, covErr.Violations, "gate 伤门 appears 0 times")
	assert.Contains(t, covErr.Violations, "star 天英 appears 0 times")
	assert.Contains(t, err.Error(), chart.ID.String())
}

func TestCoverageVerifier_VoidAdjacency(t *testing.T) {
	chart, _ := scenarioOneChart(t)
	h := chart.ChartHeader
	h.Void = [2]values.Branch{values.BranchZi, values.BranchYin}

	broken, err := entities.NewChart(h, chart.Palaces())
	require.NoError(t, err)
	assert.Error(t, NewCoverageVerifier().Verify(broken))
}
