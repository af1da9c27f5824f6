package entities

import (
	"github.com/dunjia/qimen/internal/domain/values"
)

// GroupSize is the number of pillars in one cycle group (旬).
const GroupSize = 10

// runSize is the length of a five-pillar sub-period run.
const runSize = 5

// CycleGroup is one of the six ten-pillar spans of the sixty-cycle.
// The first five members belong to Early, the last five to Late.
type CycleGroup struct {
	Lead       values.Pillar
	HiddenStem values.Stem
	Void       [2]values.Branch
	Early      values.SubPeriod
	Late       values.SubPeriod
}

// Members returns the ten pillars of the group starting at the lead.
func (g CycleGroup) Members() []values.Pillar {
	out := make([]values.Pillar, 0, GroupSize)
	p := g.Lead
	for i := 0; i < GroupSize; i++ {
		out = append(out, p)
		p = p.Next()
	}
	return out
}

// Run returns the five pillars mapped to sp, or nil when the group has no
// run for that sub-period.
func (g CycleGroup) Run(sp values.SubPeriod) []values.Pillar {
	members := g.Members()
	switch sp {
	case g.Early:
		return members[:runSize]
	case g.Late:
		return members[runSize:]
	default:
		return nil
	}
}

// offset returns the position of p inside the group, or -1.
func (g CycleGroup) offset(p values.Pillar) int {
	d := p.Index() - g.Lead.Index()
	if p.IsZero() || d < 0 || d >= GroupSize {
		return -1
	}
	return d
}

// Contains reports whether p is one of the group's ten pillars.
func (g CycleGroup) Contains(p values.Pillar) bool {
	return g.offset(p) >= 0
}

// CycleTable is the static sixty-cycle reference: six groups with their
// hidden stems, void branches and sub-period runs.
type CycleTable struct {
	groups []CycleGroup
}

// NewCycleTable returns the classical table.
func NewCycleTable() *CycleTable {
	b := values.MustParseBranch
	return &CycleTable{groups: []CycleGroup{
		{values.MustParsePillar("甲子"), values.StemWu, [2]values.Branch{b("戌"), b("亥")}, values.SubPeriodUpper, values.SubPeriodMiddle},
		{values.MustParsePillar("甲戌"), values.StemJi, [2]values.Branch{b("申"), b("酉")}, values.SubPeriodLower, values.SubPeriodUpper},
		{values.MustParsePillar("甲申"), values.StemGeng, [2]values.Branch{b("午"), b("未")}, values.SubPeriodMiddle, values.SubPeriodLower},
		{values.MustParsePillar("甲午"), values.StemXin, [2]values.Branch{b("辰"), b("巳")}, values.SubPeriodUpper, values.SubPeriodMiddle},
		{values.MustParsePillar("甲辰"), values.StemRen, [2]values.Branch{b("寅"), b("卯")}, values.SubPeriodLower, values.SubPeriodUpper},
		{values.MustParsePillar("甲寅"), values.StemGui, [2]values.Branch{b("子"), b("丑")}, values.SubPeriodMiddle, values.SubPeriodLower},
	}}
}

// Groups returns the six groups in cycle order.
func (t *CycleTable) Groups() []CycleGroup {
	out := make([]CycleGroup, len(t.groups))
	copy(out, t.groups)
	return out
}

// GroupContaining returns the unique group whose runs contain p.
func (t *CycleTable) GroupContaining(p values.Pillar) (CycleGroup, error) {
	for _, g := range t.groups {
		if g.Contains(p) {
			return g, nil
		}
	}
	return CycleGroup{}, values.NewLookupError("pillar", p.String())
}

// SubPeriodOf returns the sub-period whose run contains p.
func (t *CycleTable) SubPeriodOf(p values.Pillar) (values.SubPeriod, error) {
	g, err := t.GroupContaining(p)
	if err != nil {
		return 0, err
	}
	if g.offset(p) < runSize {
		return g.Early, nil
	}
	return g.Late, nil
}

// HiddenStem returns the stem concealing the group's leading 甲.
func (t *CycleTable) HiddenStem(g CycleGroup) values.Stem {
	return g.HiddenStem
}

// VoidBranches returns the group's two void branches.
func (t *CycleTable) VoidBranches(g CycleGroup) (values.Branch, values.Branch) {
	return g.Void[0], g.Void[1]
}

// EffectiveStem returns p's own stem, or the group's hidden stem when p
// carries the leading stem 甲.
func (t *CycleTable) EffectiveStem(p values.Pillar) (values.Stem, error) {
	g, err := t.GroupContaining(p)
	if err != nil {
		return 0, err
	}
	if p.Stem().IsLeading() {
		return g.HiddenStem, nil
	}
	return p.Stem(), nil
}
