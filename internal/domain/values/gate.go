package values

// Gate is one of the eight gates (八门), in rotation order starting at 开门.
type Gate int

const (
	GateKai Gate = iota + 1
	GateXiu
	GateSheng
	GateShang
	GateDu
	GateJing
	GateSi
	GateJingAlarm
)

var gateNames = []string{"", "开门", "休门", "生门", "伤门", "杜门", "景门", "死门", "惊门"}

// GateCount is the size of the gate cycle.
const GateCount = 8

// ParseGate resolves a gate from its native name.
func ParseGate(s string) (Gate, error) {
	return parseSymbol[Gate]("gate", s, gateNames)
}

// AllGates returns the gates in rotation order.
func AllGates() []Gate {
	out := make([]Gate, 0, GateCount)
	for i := 1; i <= GateCount; i++ {
		out = append(out, Gate(i))
	}
	return out
}

// String returns the native name.
func (g Gate) String() string {
	return symbolName(g, gateNames)
}

// Valid reports whether g is set.
func (g Gate) Valid() bool {
	return g >= GateKai && g <= GateJingAlarm
}

// Next returns the following gate in rotation order.
func (g Gate) Next() Gate {
	return cyclicNext(g, 1, GateCount)
}

// MarshalText implements encoding.TextMarshaler
func (g Gate) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (g *Gate) UnmarshalText(data []byte) error {
	return unmarshalSymbol("gate", data, gateNames, g)
}
