package values

// Polarity is the active/passive (阳/阴) flag that controls rotation direction.
type Polarity int

const (
	PolarityActive Polarity = iota + 1
	PolarityPassive
)

var polarityNames = []string{"", "阳", "阴"}

// ParsePolarity resolves a polarity from its native symbol.
func ParsePolarity(s string) (Polarity, error) {
	return parseSymbol[Polarity]("polarity", s, polarityNames)
}

// String returns 阳 or 阴.
func (p Polarity) String() string {
	return symbolName(p, polarityNames)
}

// Valid reports whether p is set.
func (p Polarity) Valid() bool {
	return p == PolarityActive || p == PolarityPassive
}

// Step returns +1 for active and -1 for passive walks.
func (p Polarity) Step() int {
	if p == PolarityActive {
		return 1
	}
	return -1
}

// MarshalText implements encoding.TextMarshaler
func (p Polarity) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Polarity) UnmarshalText(data []byte) error {
	return unmarshalSymbol("polarity", data, polarityNames, p)
}
