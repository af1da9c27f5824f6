package values

// SubPeriod is one of the three thirds (元) of a solar term's span.
type SubPeriod int

const (
	SubPeriodUpper SubPeriod = iota + 1
	SubPeriodMiddle
	SubPeriodLower
)

var subPeriodNames = []string{"", "上元", "中元", "下元"}

// ParseSubPeriod resolves a sub-period from its native name.
func ParseSubPeriod(s string) (SubPeriod, error) {
	return parseSymbol[SubPeriod]("sub-period", s, subPeriodNames)
}

// String returns 上元, 中元 or 下元.
func (s SubPeriod) String() string {
	return symbolName(s, subPeriodNames)
}

// Valid reports whether s is set.
func (s SubPeriod) Valid() bool {
	return s >= SubPeriodUpper && s <= SubPeriodLower
}

// Ordinal returns 0, 1 or 2.
func (s SubPeriod) Ordinal() int {
	return int(s) - 1
}

// MarshalText implements encoding.TextMarshaler
func (s SubPeriod) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *SubPeriod) UnmarshalText(data []byte) error {
	return unmarshalSymbol("sub-period", data, subPeriodNames, s)
}
