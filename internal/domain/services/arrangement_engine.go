package services

import (
	"log/slog"

	"github.com/dunjia/qimen/internal/domain/entities"
	"github.com/dunjia/qimen/internal/domain/values"
)

// Stage names used in logs and PreconditionErrors.
const (
	StagePeriod      = "period"
	StageGround      = "ground"
	StageAnchor      = "anchor"
	StageStars       = "stars"
	StageSpirits     = "spirits"
	StageHeaven      = "heaven"
	StageGates       = "gates"
	StageConsolidate = "consolidate"
)

// groundStemOrder is the order stems are laid on the ground plate:
// 戊 己 庚 辛 壬 癸 丁 丙 乙.
var groundStemOrder = []values.Stem{
	values.StemWu, values.StemJi, values.StemGeng, values.StemXin, values.StemRen,
	values.StemGui, values.StemDing, values.StemBing, values.StemYi,
}

// Input carries the pillars and solar term supplied by the calendar side.
type Input struct {
	HourToken string
	Year      values.Pillar
	Month     values.Pillar
	Day       values.Pillar
	Hour      values.Pillar
	Term      values.SolarTerm
}

// plate is the per-palace working state threaded through the stages.
type plate [values.PalaceCount]entities.PalaceState

func (p *plate) at(n values.PalaceNumber) *entities.PalaceState {
	return &p[n-1]
}

func (p plate) clone() plate {
	var out plate
	for i, s := range p {
		out[i] = s.Clone()
	}
	return out
}

// groundPalaceOf returns the palace whose ground plate holds stem.
func (p plate) groundPalaceOf(stem values.Stem) (values.PalaceNumber, error) {
	for _, s := range p {
		if s.HasGround(stem) {
			return s.Palace.Number, nil
		}
	}
	return 0, values.NewLookupError("stem on ground plate", stem.String())
}

// PeriodStage is the result of stage 1: sub-period, stage number and polarity.
type PeriodStage struct {
	Input
	SubPeriod   values.SubPeriod
	StageNumber int
	Polarity    values.Polarity
	ready       bool
}

// GroundStage is the result of stage 2: stems laid on the ground plate.
type GroundStage struct {
	PeriodStage
	GroundPlate []entities.GroundPlacement
	plate       plate
	grounded    bool
}

// AnchorStage is the result of stage 3: the cycle group of the hour and the
// duty markers derived from it.
type AnchorStage struct {
	GroundStage
	Group      entities.CycleGroup
	DutyPalace values.PalaceNumber
	DutyStar   values.Star
	DutyGate   values.Gate
	Target     values.PalaceNumber
	anchored   bool
}

// StarStage is the result of stage 4: all nine stars placed.
type StarStage struct {
	AnchorStage
	starred bool
}

// SpiritStage is the result of stage 5: eight spirits placed.
type SpiritStage struct {
	StarStage
	spirited bool
}

// HeavenStage is the result of stage 6: the heaven plate.
type HeavenStage struct {
	SpiritStage
	heavened bool
}

// GateStage is the result of stage 7: eight gates placed.
type GateStage struct {
	HeavenStage
	GateStart values.PalaceNumber
	gated     bool
}

// Plate returns a copy of the palace states as of this stage.
func (s GroundStage) Plate() []entities.PalaceState {
	c := s.plate.clone()
	return c[:]
}

// ArrangementEngine derives a chart from four pillars and a solar term.
// Every stage takes the previous stage's result and returns a new value;
// earlier results are never modified.
type ArrangementEngine struct {
	cycles  *entities.CycleTable
	palaces *entities.PalaceRegistry
	terms   *entities.TermTable
	logger  *slog.Logger
}

// NewArrangementEngine creates an engine over the classical reference tables.
func NewArrangementEngine(logger *slog.Logger) *ArrangementEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArrangementEngine{
		cycles:  entities.NewCycleTable(),
		palaces: entities.NewPalaceRegistry(),
		terms:   entities.NewTermTable(),
		logger:  logger,
	}
}

// Cycles exposes the cycle table the engine reads from.
func (e *ArrangementEngine) Cycles() *entities.CycleTable { return e.cycles }

// Palaces exposes the palace registry the engine reads from.
func (e *ArrangementEngine) Palaces() *entities.PalaceRegistry { return e.palaces }

// Terms exposes the term table the engine reads from.
func (e *ArrangementEngine) Terms() *entities.TermTable { return e.terms }

// Arrange runs all eight stages.
func (e *ArrangementEngine) Arrange(in Input) (*entities.Chart, error) {
	period, err := e.Period(in)
	if err != nil {
		return nil, err
	}
	ground, err := e.Ground(period)
	if err != nil {
		return nil, err
	}
	anchor, err := e.Anchor(ground)
	if err != nil {
		return nil, err
	}
	stars, err := e.Stars(anchor)
	if err != nil {
		return nil, err
	}
	spirits, err := e.Spirits(stars)
	if err != nil {
		return nil, err
	}
	heaven, err := e.Heaven(spirits)
	if err != nil {
		return nil, err
	}
	gates, err := e.Gates(heaven)
	if err != nil {
		return nil, err
	}
	return e.Consolidate(gates)
}

// Period derives the sub-period from the day pillar, then the stage number
// and polarity from the solar term.
func (e *ArrangementEngine) Period(in Input) (PeriodStage, error) {
	for _, p := range []values.Pillar{in.Year, in.Month, in.Day, in.Hour} {
		if p.IsZero() {
			return PeriodStage{}, values.NewLookupError("pillar", "")
		}
	}

	sp, err := e.cycles.SubPeriodOf(in.Day)
	if err != nil {
		return PeriodStage{}, err
	}
	stage, err := e.terms.StageNumber(in.Term, sp)
	if err != nil {
		return PeriodStage{}, err
	}
	polarity, err := e.terms.PolarityOf(in.Term)
	if err != nil {
		return PeriodStage{}, err
	}

	e.logger.Debug("stage complete",
		"stage", StagePeriod,
		"sub_period", sp.String(),
		"stage_number", stage,
		"polarity", polarity.String())

	return PeriodStage{
		Input:       in,
		SubPeriod:   sp,
		StageNumber: stage,
		Polarity:    polarity,
		ready:       true,
	}, nil
}

// Ground lays the nine ground stems starting at the stage-number palace,
// walking forward for active and backward for passive polarity.
func (e *ArrangementEngine) Ground(s PeriodStage) (GroundStage, error) {
	if !s.ready {
		return GroundStage{}, entities.NewPreconditionError(StageGround, "stage number")
	}

	var p plate
	for i, pal := range e.palaces.All() {
		p[i] = entities.PalaceState{Palace: pal}
	}

	start := values.PalaceNumber(s.StageNumber)
	step := s.Polarity.Step()
	placements := make([]entities.GroundPlacement, 0, len(groundStemOrder))
	for i, stem := range groundStemOrder {
		n := start.Step(i * step)
		p.at(n).Ground = []values.Stem{stem}
		placements = append(placements, entities.GroundPlacement{Stem: stem, Palace: n})
	}

	e.logger.Debug("stage complete", "stage", StageGround, "start", int(start), "step", step)

	return GroundStage{
		PeriodStage: s,
		GroundPlate: placements,
		plate:       p,
		grounded:    true,
	}, nil
}

// Anchor resolves the hour's cycle group and places the duty star and duty
// spirit on the palace holding the hour's effective stem.
func (e *ArrangementEngine) Anchor(s GroundStage) (AnchorStage, error) {
	if !s.grounded {
		return AnchorStage{}, entities.NewPreconditionError(StageAnchor, "ground plate")
	}

	group, err := e.cycles.GroupContaining(s.Hour)
	if err != nil {
		return AnchorStage{}, err
	}
	hidden := e.cycles.HiddenStem(group)

	dutyPalace, err := s.plate.groundPalaceOf(hidden)
	if err != nil {
		return AnchorStage{}, err
	}
	dutyPalace = dutyPalace.Redirect()
	home, err := e.palaces.ByNumber(dutyPalace)
	if err != nil {
		return AnchorStage{}, err
	}

	effective, err := e.cycles.EffectiveStem(s.Hour)
	if err != nil {
		return AnchorStage{}, err
	}
	target, err := s.plate.groundPalaceOf(effective)
	if err != nil {
		return AnchorStage{}, err
	}
	target = target.Redirect()

	p := s.plate.clone()
	st := p.at(target)
	st.Stars = []values.Star{home.HomeStar}
	st.Heaven = []values.Stem{hidden}
	st.Spirit = values.SpiritDuty

	s.plate = p
	e.logger.Debug("stage complete",
		"stage", StageAnchor,
		"cycle_lead", group.Lead.String(),
		"duty_star", home.HomeStar.String(),
		"duty_gate", home.HomeGate.String(),
		"target", int(target))

	return AnchorStage{
		GroundStage: s,
		Group:       group,
		DutyPalace:  dutyPalace,
		DutyStar:    home.HomeStar,
		DutyGate:    home.HomeGate,
		Target:      target,
		anchored:    true,
	}, nil
}

// Stars walks the eight-star cycle clockwise from the duty star's new
// palace, then pins 天禽 to the centre.
func (e *ArrangementEngine) Stars(s AnchorStage) (StarStage, error) {
	if !s.anchored {
		return StarStage{}, entities.NewPreconditionError(StageStars, "duty star")
	}

	walk, err := e.palaces.Walk(s.Target, entities.Clockwise, values.RotatingStarCount)
	if err != nil {
		return StarStage{}, err
	}

	p := s.plate.clone()
	star := s.DutyStar
	for _, n := range walk {
		p.at(n).Stars = []values.Star{star}
		star = star.Next()
	}
	p.at(values.PalaceCenter).Stars = []values.Star{values.StarQin}

	s.plate = p
	e.logger.Debug("stage complete", "stage", StageStars, "start", int(s.Target))
	return StarStage{AnchorStage: s, starred: true}, nil
}

// Spirits walks the eight spirits from the duty spirit's palace, clockwise
// for active and counterclockwise for passive polarity.
func (e *ArrangementEngine) Spirits(s StarStage) (SpiritStage, error) {
	if !s.starred {
		return SpiritStage{}, entities.NewPreconditionError(StageSpirits, "star rotation")
	}

	order := entities.OrderFor(s.Polarity)
	walk, err := e.palaces.Walk(s.Target, order, values.SpiritCount)
	if err != nil {
		return SpiritStage{}, err
	}

	p := s.plate.clone()
	spirit := values.SpiritDuty
	for _, n := range walk {
		p.at(n).Spirit = spirit
		spirit = spirit.Next()
	}

	s.plate = p
	e.logger.Debug("stage complete", "stage", StageSpirits, "order", order.String())
	return SpiritStage{StarStage: s, spirited: true}, nil
}

// Heaven copies onto every palace the ground stem of its star's home palace.
func (e *ArrangementEngine) Heaven(s SpiritStage) (HeavenStage, error) {
	if !s.spirited {
		return HeavenStage{}, entities.NewPreconditionError(StageHeaven, "spirit rotation")
	}

	p := s.plate.clone()
	for i := range p {
		if len(p[i].Stars) == 0 {
			return HeavenStage{}, entities.NewPreconditionError(StageHeaven, "star of "+p[i].Palace.Name)
		}
		home, err := e.palaces.ByHomeStar(p[i].Stars[0])
		if err != nil {
			return HeavenStage{}, err
		}
		p[i].Heaven = append([]values.Stem(nil), s.plate.at(home.Number).Ground...)
	}

	s.plate = p
	e.logger.Debug("stage complete", "stage", StageHeaven)
	return HeavenStage{SpiritStage: s, heavened: true}, nil
}

// Gates finds the duty gate's palace by walking the branches from the cycle
// lead to the hour, then lays the eight gates clockwise from there.
func (e *ArrangementEngine) Gates(s HeavenStage) (GateStage, error) {
	if !s.heavened {
		return GateStage{}, entities.NewPreconditionError(StageGates, "heaven plate")
	}

	anchor, err := s.plate.groundPalaceOf(s.Group.HiddenStem)
	if err != nil {
		return GateStage{}, err
	}
	start := GateWalk(anchor.Redirect(), s.Group.Lead.Branch(), s.Hour.Branch(), s.Polarity).Redirect()

	walk, err := e.palaces.Walk(start, entities.Clockwise, values.GateCount)
	if err != nil {
		return GateStage{}, err
	}

	p := s.plate.clone()
	gate := s.DutyGate
	for _, n := range walk {
		p.at(n).Gate = gate
		gate = gate.Next()
	}

	s.plate = p
	e.logger.Debug("stage complete", "stage", StageGates, "start", int(start))
	return GateStage{HeavenStage: s, GateStart: start, gated: true}, nil
}

// GateWalk steps from palace anchor once per branch between from and to,
// in the polarity's direction over 1..9. The centre is a valid waypoint
// and is returned unredirected.
func GateWalk(anchor values.PalaceNumber, from, to values.Branch, polarity values.Polarity) values.PalaceNumber {
	n := anchor
	for b := from; b != to; b = b.Next() {
		n = n.Step(polarity.Step())
	}
	return n
}

// Consolidate moves the centre palace's stem and star into the palace
// currently hosting 天芮, clears the centre and seals the chart.
func (e *ArrangementEngine) Consolidate(s GateStage) (*entities.Chart, error) {
	if !s.gated {
		return nil, entities.NewPreconditionError(StageConsolidate, "gate rotation")
	}

	proxyHome, err := e.palaces.ByNumber(values.PalaceProxy)
	if err != nil {
		return nil, err
	}

	p := s.plate.clone()
	center := p.at(values.PalaceCenter)
	var proxy *entities.PalaceState
	for i := range p {
		if !p[i].Palace.IsCenter() && p[i].HasStar(proxyHome.HomeStar) {
			proxy = &p[i]
			break
		}
	}
	if proxy == nil {
		return nil, entities.NewPreconditionError(StageConsolidate, "palace hosting "+proxyHome.HomeStar.String())
	}

	proxy.Heaven = append(proxy.Heaven, center.Ground...)
	proxy.Stars = append(proxy.Stars, center.Stars...)
	center.Ground = nil
	center.Heaven = nil
	center.Stars = nil

	v1, v2 := e.cycles.VoidBranches(s.Group)
	header := entities.ChartHeader{
		ID:          values.NewChartID(s.Year, s.Month, s.Day, s.Hour, s.Term),
		HourToken:   s.HourToken,
		Term:        s.Term,
		Year:        s.Year,
		Month:       s.Month,
		Day:         s.Day,
		Hour:        s.Hour,
		Polarity:    s.Polarity,
		Void:        [2]values.Branch{v1, v2},
		SubPeriod:   s.SubPeriod,
		StageNumber: s.StageNumber,
		CycleLead:   s.Group.Lead,
		DutyStar:    s.DutyStar,
		DutyGate:    s.DutyGate,
		GroundPlate: s.GroundPlate,
	}

	chart, err := entities.NewChart(header, p[:])
	if err != nil {
		return nil, err
	}
	e.logger.Debug("stage complete",
		"stage", StageConsolidate,
		"chart_id", chart.ID.String(),
		"proxy", int(proxy.Palace.Number))
	return chart, nil
}
