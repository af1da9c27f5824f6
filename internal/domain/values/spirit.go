package values

// Spirit is one of the eight guardian spirits (八神).
type Spirit int

const (
	// SpiritDuty is the Duty Spirit marker (值符).
	SpiritDuty Spirit = iota + 1
	SpiritTengShe
	SpiritTaiYin
	SpiritLiuHe
	SpiritBaiHu
	SpiritXuanWu
	SpiritJiuDi
	SpiritJiuTian
)

var spiritNames = []string{"", "值符", "螣蛇", "太阴", "六合", "白虎", "玄武", "九地", "九天"}

// SpiritCount is the size of the spirit cycle.
const SpiritCount = 8

// ParseSpirit resolves a spirit from its native name.
func ParseSpirit(s string) (Spirit, error) {
	return parseSymbol[Spirit]("spirit", s, spiritNames)
}

// AllSpirits returns the spirits in rotation order.
func AllSpirits() []Spirit {
	out := make([]Spirit, 0, SpiritCount)
	for i := 1; i <= SpiritCount; i++ {
		out = append(out, Spirit(i))
	}
	return out
}

// String returns the native name.
func (s Spirit) String() string {
	return symbolName(s, spiritNames)
}

// Valid reports whether s is set.
func (s Spirit) Valid() bool {
	return s >= SpiritDuty && s <= SpiritJiuTian
}

// Next returns the following spirit in rotation order.
func (s Spirit) Next() Spirit {
	return cyclicNext(s, 1, SpiritCount)
}

// MarshalText implements encoding.TextMarshaler
func (s Spirit) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Spirit) UnmarshalText(data []byte) error {
	return unmarshalSymbol("spirit", data, spiritNames, s)
}
