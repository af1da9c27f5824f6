package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dunjia/qimen/internal/domain/values"
)

func TestPalaceRegistry_Lookups(t *testing.T) {
	r := NewPalaceRegistry()

	p, err := r.ByNumber(2)
	require.NoError(t, err)
	assert.Equal(t, "坤二宫", p.Name)
	assert.Equal(t, values.StarRui, p.HomeStar)
	assert.Equal(t, values.GateSi, p.HomeGate)

	p, err = r.ByName("乾六宫")
	require.NoError(t, err)
	assert.Equal(t, values.PalaceNumber(6), p.Number)

	p, err = r.ByHomeStar(values.StarQin)
	require.NoError(t, err)
	assert.True(t, p.IsCenter())

	p, err = r.ByHomeGate(values.GateJingAlarm)
	require.NoError(t, err)
	assert.Equal(t, "兑七宫", p.Name)

	_, err = r.ByNumber(0)
	assert.Error(t, err)
	_, err = r.ByName("中宫")
	assert.Error(t, err)
	_, err = r.ByHomeGate(0)
	assert.Error(t, err)
}

func TestPalaceRegistry_HomesAreUnique(t *testing.T) {
	r := NewPalaceRegistry()
	stars := map[values.Star]bool{}
	gates := map[values.Gate]bool{}
	for _, p := range r.All() {
		stars[p.HomeStar] = true
		if !p.IsCenter() {
			gates[p.HomeGate] = true
		}
	}
	assert.Len(t, stars, 9)
	assert.Len(t, gates, 8)
}

func TestPalaceRegistry_Next(t *testing.T) {
	r := NewPalaceRegistry()

	tests := []struct {
		name  string
		from  values.PalaceNumber
		order Order
		want  values.PalaceNumber
	}{
		{"clockwise start", 6, Clockwise, 1},
		{"clockwise wraps", 7, Clockwise, 6},
		{"counterclockwise", 1, Counterclockwise, 6},
		{"counterclockwise wraps", 6, Counterclockwise, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Next(tt.from, tt.order)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPalaceRegistry_Next_Center(t *testing.T) {
	_, err := NewPalaceRegistry().Next(values.PalaceCenter, Clockwise)
	var travErr *TraversalError
	require.True(t, errors.As(err, &travErr))
	assert.Equal(t, 5, travErr.Palace)
}

func TestPalaceRegistry_Orders(t *testing.T) {
	r := NewPalaceRegistry()
	cw := r.Order(Clockwise)
	ccw := r.Order(Counterclockwise)
	require.Len(t, cw, 8)
	for i := range cw {
		assert.Equal(t, cw[i], ccw[len(ccw)-1-i])
		assert.False(t, cw[i].IsCenter())
	}

	// Returned slices are copies.
	cw[0] = 9
	assert.Equal(t, values.PalaceNumber(6), r.Order(Clockwise)[0])
}

func TestPalaceRegistry_Walk(t *testing.T) {
	walk, err := NewPalaceRegistry().Walk(2, Clockwise, 8)
	require.NoError(t, err)
	assert.Equal(t, []values.PalaceNumber{2, 7, 6, 1, 8, 3, 4, 9}, walk)
}

func TestOrderFor(t *testing.T) {
	assert.Equal(t, Clockwise, OrderFor(values.PolarityActive))
	assert.Equal(t, Counterclockwise, OrderFor(values.PolarityPassive))
}

func TestPalaceRegistry_BranchesOf(t *testing.T) {
	r := NewPalaceRegistry()
	seen := map[values.Branch]bool{}
	for _, n := range values.AllPalaceNumbers() {
		for _, b := range r.BranchesOf(n) {
			assert.False(t, seen[b], "branch %s seated twice", b)
			seen[b] = true
		}
	}
	assert.Len(t, seen, values.BranchCount)
	assert.Empty(t, r.BranchesOf(values.PalaceCenter))
}
