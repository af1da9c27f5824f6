package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_PalaceNumber_Step(t *testing.T) {
	tests := []struct {
		name  string
		start PalaceNumber
		n     int
		want  PalaceNumber
	}{
		{"forward", 1, 1, 2},
		{"forward wraps", 9, 1, 1},
		{"backward", 2, -1, 1},
		{"backward wraps", 1, -1, 9},
		{"through centre", 4, 1, 5},
		{"long negative", 3, -12, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.start.Step(tt.n))
		})
	}
}

func Test_PalaceNumber_StepStaysInRange(t *testing.T) {
	for _, start := range AllPalaceNumbers() {
		for n := -20; n <= 20; n++ {
			assert.True(t, start.Step(n).Valid(), "start=%d n=%d", start, n)
		}
	}
}

func Test_PalaceNumber_Redirect(t *testing.T) {
	assert.Equal(t, PalaceProxy, PalaceCenter.Redirect())
	assert.Equal(t, PalaceNumber(7), PalaceNumber(7).Redirect())
}

func Test_NewPalaceNumber(t *testing.T) {
	_, err := NewPalaceNumber(0)
	assert.Error(t, err)
	_, err = NewPalaceNumber(10)
	assert.Error(t, err)
	p, err := NewPalaceNumber(9)
	assert.NoError(t, err)
	assert.Equal(t, 9, p.Int())
}
