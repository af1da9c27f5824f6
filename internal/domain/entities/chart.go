package entities

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dunjia/qimen/internal/domain/values"
)

// DefaultPlaceholder is rendered for empty palace slots.
const DefaultPlaceholder = "无"

// GroundPlacement records where one stem landed on the ground plate,
// before the centre was consolidated.
type GroundPlacement struct {
	Stem   values.Stem
	Palace values.PalaceNumber
}

// PalaceState is the arranged content of one palace.
type PalaceState struct {
	Palace Palace
	Ground []values.Stem
	Heaven []values.Stem
	Stars  []values.Star
	Spirit values.Spirit
	Gate   values.Gate
}

// Clone returns a deep copy.
func (s PalaceState) Clone() PalaceState {
	s.Ground = append([]values.Stem(nil), s.Ground...)
	s.Heaven = append([]values.Stem(nil), s.Heaven...)
	s.Stars = append([]values.Star(nil), s.Stars...)
	return s
}

// HasStar reports whether star currently resides here.
func (s PalaceState) HasStar(star values.Star) bool {
	for _, st := range s.Stars {
		if st == star {
			return true
		}
	}
	return false
}

// HasGround reports whether stem sits on this palace's ground plate.
func (s PalaceState) HasGround(stem values.Stem) bool {
	for _, g := range s.Ground {
		if g == stem {
			return true
		}
	}
	return false
}

// ChartHeader holds the scalar fields of a chart.
type ChartHeader struct {
	ID          values.ChartID
	HourToken   string
	Term        values.SolarTerm
	Year        values.Pillar
	Month       values.Pillar
	Day         values.Pillar
	Hour        values.Pillar
	Polarity    values.Polarity
	Void        [2]values.Branch
	SubPeriod   values.SubPeriod
	StageNumber int
	CycleLead   values.Pillar
	DutyStar    values.Star
	DutyGate    values.Gate
	GroundPlate []GroundPlacement
}

// Chart is the finished arrangement. It is read-only: accessors hand out copies.
type Chart struct {
	ChartHeader
	palaces []PalaceState
}

// NewChart assembles a chart from its header and the nine palace states,
// which must be given in canonical order 1..9.
func NewChart(h ChartHeader, states []PalaceState) (*Chart, error) {
	if len(states) != values.PalaceCount {
		return nil, fmt.Errorf("chart needs %d palaces, got %d", values.PalaceCount, len(states))
	}
	if h.StageNumber < 1 || h.StageNumber > 9 {
		return nil, fmt.Errorf("stage number %d out of range", h.StageNumber)
	}

	c := &Chart{ChartHeader: h, palaces: make([]PalaceState, len(states))}
	c.GroundPlate = append([]GroundPlacement(nil), h.GroundPlate...)
	for i, s := range states {
		if int(s.Palace.Number) != i+1 {
			return nil, fmt.Errorf("palace state %d holds palace %d", i+1, s.Palace.Number)
		}
		c.palaces[i] = s.Clone()
	}
	return c, nil
}

// Palace returns the state of palace n.
func (c *Chart) Palace(n values.PalaceNumber) (PalaceState, error) {
	if !n.Valid() {
		return PalaceState{}, values.NewLookupError("palace", strconv.Itoa(int(n)))
	}
	return c.palaces[n-1].Clone(), nil
}

// WithHourToken returns a copy of the chart carrying tok as its hour token.
// The receiver is returned unchanged when it already carries tok.
func (c *Chart) WithHourToken(tok string) *Chart {
	if c.HourToken == tok {
		return c
	}
	out := &Chart{ChartHeader: c.ChartHeader, palaces: c.Palaces()}
	out.HourToken = tok
	out.GroundPlate = append([]GroundPlacement(nil), c.GroundPlate...)
	return out
}

// Palaces returns all nine states in canonical order.
func (c *Chart) Palaces() []PalaceState {
	out := make([]PalaceState, len(c.palaces))
	for i, s := range c.palaces {
		out[i] = s.Clone()
	}
	return out
}

// Field is a labelled scalar of the chart.
type Field struct {
	Key   string
	Label string
	Value string
}

// Fields returns the scalar fields in display order with their native labels.
func (c *Chart) Fields() []Field {
	return []Field{
		{"hour_token", "时辰", c.HourToken},
		{"solar_term", "节气", c.Term.String()},
		{"year", "年柱", c.Year.String()},
		{"month", "月柱", c.Month.String()},
		{"day", "日柱", c.Day.String()},
		{"hour", "时柱", c.Hour.String()},
		{"polarity", "阴阳", c.Polarity.String()},
		{"void", "空亡", c.Void[0].String() + ", " + c.Void[1].String()},
		{"sub_period", "元", c.SubPeriod.String()},
		{"cycle_lead", "旬首", c.CycleLead.String()},
		{"stage_number", "局数", strconv.Itoa(c.StageNumber)},
		{"duty_gate", "值使门", c.DutyGate.String()},
	}
}

// Render returns the canonical text form using DefaultPlaceholder.
func (c *Chart) Render() string {
	return c.RenderWith(DefaultPlaceholder)
}

// RenderWith renders the chart, writing placeholder for empty slots.
func (c *Chart) RenderWith(placeholder string) string {
	var b strings.Builder
	for _, f := range c.Fields() {
		v := f.Value
		if v == "" {
			v = placeholder
		}
		fmt.Fprintf(&b, "%s: %s\n", f.Label, v)
	}
	b.WriteString("\n九宫:\n")
	for _, s := range c.palaces {
		b.WriteString(RenderPalace(s, placeholder))
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderPalace renders the one-line summary of a palace.
func RenderPalace(s PalaceState, placeholder string) string {
	return fmt.Sprintf("%s 天干: %s | 地干: %s | 星: %s | 神: %s | 门: %s",
		s.Palace.Name,
		JoinSymbols(s.Heaven, placeholder),
		JoinSymbols(s.Ground, placeholder),
		JoinSymbols(s.Stars, placeholder),
		orPlaceholder(s.Spirit.String(), placeholder),
		orPlaceholder(s.Gate.String(), placeholder),
	)
}

// JoinSymbols joins symbols with ", ", or returns placeholder when empty.
func JoinSymbols[T fmt.Stringer](items []T, placeholder string) string {
	if len(items) == 0 {
		return placeholder
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return strings.Join(parts, ", ")
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}
