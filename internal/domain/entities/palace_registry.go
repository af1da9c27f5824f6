package entities

import (
	"fmt"

	"github.com/dunjia/qimen/internal/domain/values"
)

// Palace holds the fixed attributes of one of the nine palaces.
type Palace struct {
	Number   values.PalaceNumber
	Name     string
	Trigram  string
	Element  values.Element
	Polarity values.Polarity
	HomeStar values.Star
	// HomeGate is zero for the centre palace, which owns no gate.
	HomeGate values.Gate
}

// IsCenter reports whether this is the centre palace.
func (p Palace) IsCenter() bool {
	return p.Number.IsCenter()
}

// Order is one of the two fixed traversal orders over the eight
// peripheral palaces.
type Order int

const (
	Clockwise Order = iota
	Counterclockwise
)

func (o Order) String() string {
	if o == Counterclockwise {
		return "counterclockwise"
	}
	return "clockwise"
}

// OrderFor returns the spirit walk order for a polarity.
func OrderFor(p values.Polarity) Order {
	if p == values.PolarityPassive {
		return Counterclockwise
	}
	return Clockwise
}

var clockwiseOrder = []values.PalaceNumber{6, 1, 8, 3, 4, 9, 2, 7}

// palaceBranches are the earthly branches seated in each peripheral palace.
var palaceBranches = map[values.PalaceNumber][]string{
	1: {"子"},
	2: {"未", "申"},
	3: {"卯"},
	4: {"辰", "巳"},
	6: {"戌", "亥"},
	7: {"酉"},
	8: {"丑", "寅"},
	9: {"午"},
}

// PalaceRegistry is the immutable set of nine palaces.
type PalaceRegistry struct {
	palaces []Palace
	byName  map[string]values.PalaceNumber
	orders  map[Order][]values.PalaceNumber
}

// NewPalaceRegistry returns the classical nine-palace registry.
func NewPalaceRegistry() *PalaceRegistry {
	palaces := []Palace{
		{1, "坎一宫", "坎", values.ElementWater, values.PolarityActive, values.StarPeng, values.GateXiu},
		{2, "坤二宫", "坤", values.ElementEarth, values.PolarityPassive, values.StarRui, values.GateSi},
		{3, "震三宫", "震", values.ElementWood, values.PolarityActive, values.StarChong, values.GateShang},
		{4, "巽四宫", "巽", values.ElementWood, values.PolarityActive, values.StarFu, values.GateDu},
		{5, "中五宫", "中", values.ElementEarth, values.PolarityActive, values.StarQin, 0},
		{6, "乾六宫", "乾", values.ElementMetal, values.PolarityActive, values.StarXin, values.GateKai},
		{7, "兑七宫", "兑", values.ElementMetal, values.PolarityPassive, values.StarZhu, values.GateJingAlarm},
		{8, "艮八宫", "艮", values.ElementEarth, values.PolarityActive, values.StarRen, values.GateSheng},
		{9, "离九宫", "离", values.ElementFire, values.PolarityPassive, values.StarYing, values.GateJing},
	}

	r := &PalaceRegistry{
		palaces: palaces,
		byName:  make(map[string]values.PalaceNumber, len(palaces)),
		orders:  make(map[Order][]values.PalaceNumber, 2),
	}
	for _, p := range palaces {
		r.byName[p.Name] = p.Number
	}

	ccw := make([]values.PalaceNumber, len(clockwiseOrder))
	for i, n := range clockwiseOrder {
		ccw[len(clockwiseOrder)-1-i] = n
	}
	r.orders[Clockwise] = clockwiseOrder
	r.orders[Counterclockwise] = ccw
	return r
}

// All returns the nine palaces in canonical order 1..9.
func (r *PalaceRegistry) All() []Palace {
	out := make([]Palace, len(r.palaces))
	copy(out, r.palaces)
	return out
}

// ByNumber looks up a palace by its number.
func (r *PalaceRegistry) ByNumber(n values.PalaceNumber) (Palace, error) {
	if !n.Valid() {
		return Palace{}, values.NewLookupError("palace", fmt.Sprint(int(n)))
	}
	return r.palaces[n-1], nil
}

// ByName looks up a palace by its native name, e.g. "坎一宫".
func (r *PalaceRegistry) ByName(name string) (Palace, error) {
	n, ok := r.byName[name]
	if !ok {
		return Palace{}, values.NewLookupError("palace", name)
	}
	return r.palaces[n-1], nil
}

// ByHomeStar returns the palace a star originates from.
func (r *PalaceRegistry) ByHomeStar(s values.Star) (Palace, error) {
	for _, p := range r.palaces {
		if p.HomeStar == s {
			return p, nil
		}
	}
	return Palace{}, values.NewLookupError("star", s.String())
}

// ByHomeGate returns the palace a gate originates from.
func (r *PalaceRegistry) ByHomeGate(g values.Gate) (Palace, error) {
	if !g.Valid() {
		return Palace{}, values.NewLookupError("gate", g.String())
	}
	for _, p := range r.palaces {
		if p.HomeGate == g {
			return p, nil
		}
	}
	return Palace{}, values.NewLookupError("gate", g.String())
}

// BranchesOf returns the branches seated in palace n; the centre has none.
func (r *PalaceRegistry) BranchesOf(n values.PalaceNumber) []values.Branch {
	names := palaceBranches[n]
	out := make([]values.Branch, 0, len(names))
	for _, name := range names {
		out = append(out, values.MustParseBranch(name))
	}
	return out
}

// Order returns the eight peripheral palace numbers of a traversal order.
func (r *PalaceRegistry) Order(o Order) []values.PalaceNumber {
	src := r.orders[o]
	out := make([]values.PalaceNumber, len(src))
	copy(out, src)
	return out
}

// Next returns the palace after n in order o, wrapping at the end.
// The centre is not part of either order.
func (r *PalaceRegistry) Next(n values.PalaceNumber, o Order) (values.PalaceNumber, error) {
	order := r.orders[o]
	for i, p := range order {
		if p == n {
			return order[(i+1)%len(order)], nil
		}
	}
	return 0, &TraversalError{Palace: int(n), Order: o.String()}
}

// Walk returns count palaces starting at start (inclusive) following o.
func (r *PalaceRegistry) Walk(start values.PalaceNumber, o Order, count int) ([]values.PalaceNumber, error) {
	out := make([]values.PalaceNumber, 0, count)
	cur := start
	for i := 0; i < count; i++ {
		out = append(out, cur)
		next, err := r.Next(cur, o)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return out, nil
}
