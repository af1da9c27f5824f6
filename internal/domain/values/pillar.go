package values

import (
	"fmt"
	"strings"
)

// CycleLength is the length of the sexagenary stem/branch cycle.
const CycleLength = 60

// Pillar is a stem/branch pair denoting a calendrical unit. Only the sixty
// combinations whose stem and branch share parity can be constructed.
type Pillar struct {
	stem   Stem
	branch Branch
}

// NewPillar creates a Pillar, rejecting pairs outside the sixty-cycle.
func NewPillar(stem Stem, branch Branch) (Pillar, error) {
	if !stem.Valid() || !branch.Valid() {
		return Pillar{}, NewLookupError("pillar", stem.String()+branch.String())
	}
	if stem.Ordinal()%2 != branch.Ordinal()%2 {
		return Pillar{}, NewLookupError("pillar", stem.String()+branch.String())
	}
	return Pillar{stem: stem, branch: branch}, nil
}

// ParsePillar parses a two-symbol pillar such as "甲子".
func ParsePillar(s string) (Pillar, error) {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) != 2 {
		return Pillar{}, NewLookupError("pillar", s)
	}

	stem, err := ParseStem(string(runes[0]))
	if err != nil {
		return Pillar{}, NewLookupError("pillar", s)
	}
	branch, err := ParseBranch(string(runes[1]))
	if err != nil {
		return Pillar{}, NewLookupError("pillar", s)
	}
	return NewPillar(stem, branch)
}

// MustParsePillar parses a pillar or panics
func MustParsePillar(s string) Pillar {
	p, err := ParsePillar(s)
	if err != nil {
		panic(err)
	}
	return p
}

// PillarAt returns the pillar at the given 0-based position of the sixty-cycle.
func PillarAt(index int) Pillar {
	i := index % CycleLength
	if i < 0 {
		i += CycleLength
	}
	return Pillar{
		stem:   Stem(i%StemCount + 1),
		branch: Branch(i%BranchCount + 1),
	}
}

// Stem returns the pillar's own stem.
func (p Pillar) Stem() Stem {
	return p.stem
}

// Branch returns the pillar's branch.
func (p Pillar) Branch() Branch {
	return p.branch
}

// Index returns the 0-based position in the sixty-cycle (甲子 = 0).
func (p Pillar) Index() int {
	// Chinese remainder over (10, 12): i ≡ stem (mod 10), i ≡ branch (mod 12).
	i := (6*p.stem.Ordinal() - 5*p.branch.Ordinal()) % CycleLength
	if i < 0 {
		i += CycleLength
	}
	return i
}

// Next returns the following pillar in the sixty-cycle.
func (p Pillar) Next() Pillar {
	return PillarAt(p.Index() + 1)
}

// IsZero returns true if this is the zero value
func (p Pillar) IsZero() bool {
	return p.stem == 0 && p.branch == 0
}

// Equals checks if two pillars are equal
func (p Pillar) Equals(other Pillar) bool {
	return p == other
}

// String returns the two-symbol native form.
func (p Pillar) String() string {
	return p.stem.String() + p.branch.String()
}

// MarshalText implements encoding.TextMarshaler
func (p Pillar) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Pillar) UnmarshalText(data []byte) error {
	v, err := ParsePillar(string(data))
	if err != nil {
		return fmt.Errorf("invalid pillar text: %w", err)
	}
	*p = v
	return nil
}
