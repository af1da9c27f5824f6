package values

import "fmt"

// PalaceNumber identifies one of the nine palaces (1-9) of the Lo Shu square.
type PalaceNumber int

const (
	// PalaceCenter is the centre palace. It never hosts a duty marker.
	PalaceCenter PalaceNumber = 5
	// PalaceProxy is where the centre resides: 坤二宫.
	PalaceProxy PalaceNumber = 2
)

// PalaceCount is the number of palaces, centre included.
const PalaceCount = 9

// NewPalaceNumber validates n as a palace number.
func NewPalaceNumber(n int) (PalaceNumber, error) {
	p := PalaceNumber(n)
	if !p.Valid() {
		return 0, NewLookupError("palace", fmt.Sprint(n))
	}
	return p, nil
}

// AllPalaceNumbers returns 1..9 in canonical order.
func AllPalaceNumbers() []PalaceNumber {
	out := make([]PalaceNumber, 0, PalaceCount)
	for i := 1; i <= PalaceCount; i++ {
		out = append(out, PalaceNumber(i))
	}
	return out
}

// Valid reports whether p is in 1..9.
func (p PalaceNumber) Valid() bool {
	return p >= 1 && p <= PalaceCount
}

// IsCenter reports whether p is the centre palace.
func (p PalaceNumber) IsCenter() bool {
	return p == PalaceCenter
}

// Step walks n positions over 1..9 with wrap-around. The centre is an
// ordinary waypoint here.
func (p PalaceNumber) Step(n int) PalaceNumber {
	return cyclicNext(p, n, PalaceCount)
}

// Redirect maps the centre to the proxy palace and leaves the rest alone.
func (p PalaceNumber) Redirect() PalaceNumber {
	if p.IsCenter() {
		return PalaceProxy
	}
	return p
}

// Int returns the plain number.
func (p PalaceNumber) Int() int {
	return int(p)
}
