package values

// Stem is one of the ten heavenly stems (天干).
type Stem int

const (
	StemJia Stem = iota + 1
	StemYi
	StemBing
	StemDing
	StemWu
	StemJi
	StemGeng
	StemXin
	StemRen
	StemGui
)

var stemNames = []string{"", "甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

// StemCount is the size of the stem alphabet.
const StemCount = 10

// ParseStem resolves a stem from its native symbol.
func ParseStem(s string) (Stem, error) {
	return parseSymbol[Stem]("stem", s, stemNames)
}

// MustParseStem parses a stem or panics
func MustParseStem(s string) Stem {
	v, err := ParseStem(s)
	if err != nil {
		panic(err)
	}
	return v
}

// AllStems returns the stems in canonical order.
func AllStems() []Stem {
	out := make([]Stem, 0, StemCount)
	for i := 1; i <= StemCount; i++ {
		out = append(out, Stem(i))
	}
	return out
}

// String returns the native symbol, or "" for the zero value.
func (s Stem) String() string {
	return symbolName(s, stemNames)
}

// Valid reports whether s is one of the ten stems.
func (s Stem) Valid() bool {
	return s >= StemJia && s <= StemGui
}

// Ordinal returns the 0-based position in the stem cycle.
func (s Stem) Ordinal() int {
	return int(s) - 1
}

// IsLeading reports whether s is the cycle-leading stem 甲.
func (s Stem) IsLeading() bool {
	return s == StemJia
}

// MarshalText implements encoding.TextMarshaler
func (s Stem) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Stem) UnmarshalText(data []byte) error {
	return unmarshalSymbol("stem", data, stemNames, s)
}
