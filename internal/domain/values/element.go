package values

// Element is one of the five phases (五行) attached to each palace.
type Element int

const (
	ElementWater Element = iota + 1
	ElementEarth
	ElementWood
	ElementMetal
	ElementFire
)

var elementNames = []string{"", "水", "土", "木", "金", "火"}

// String returns the native symbol.
func (e Element) String() string {
	return symbolName(e, elementNames)
}

// MarshalText implements encoding.TextMarshaler
func (e Element) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}
