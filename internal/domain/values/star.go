package values

// Star is one of the nine flying stars (九星). The first eight form the
// rotation cycle; StarQin belongs to the centre and never takes part in it.
type Star int

const (
	StarPeng Star = iota + 1
	StarRen
	StarChong
	StarFu
	StarYing
	StarRui
	StarZhu
	StarXin
	StarQin
)

var starNames = []string{"", "天蓬", "天任", "天冲", "天辅", "天英", "天芮", "天柱", "天心", "天禽"}

// RotatingStarCount is the length of the star rotation cycle (centre star excluded).
const RotatingStarCount = 8

// ParseStar resolves a star from its native name.
func ParseStar(s string) (Star, error) {
	return parseSymbol[Star]("star", s, starNames)
}

// AllStars returns all nine stars, rotation cycle first, centre star last.
func AllStars() []Star {
	return []Star{StarPeng, StarRen, StarChong, StarFu, StarYing, StarRui, StarZhu, StarXin, StarQin}
}

// String returns the native name.
func (s Star) String() string {
	return symbolName(s, starNames)
}

// Valid reports whether s is one of the nine stars.
func (s Star) Valid() bool {
	return s >= StarPeng && s <= StarQin
}

// IsCenter reports whether s is the centre-representing star 天禽.
func (s Star) IsCenter() bool {
	return s == StarQin
}

// Next returns the following star in the 8-star rotation cycle. The centre
// star is not part of that cycle and maps to itself.
func (s Star) Next() Star {
	if s.IsCenter() || !s.Valid() {
		return s
	}
	return cyclicNext(s, 1, RotatingStarCount)
}

// MarshalText implements encoding.TextMarshaler
func (s Star) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Star) UnmarshalText(data []byte) error {
	return unmarshalSymbol("star", data, starNames, s)
}
