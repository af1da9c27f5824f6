// Package output renders chart results in the supported output formats.
package output

import (
	"github.com/dunjia/qimen/internal/application/dto"
	"github.com/dunjia/qimen/internal/domain/entities"
)

// ChartView is the serialized shape of one chart result.
type ChartView struct {
	ID          string       `json:"id,omitempty" yaml:"id,omitempty"`
	Label       string       `json:"label,omitempty" yaml:"label,omitempty"`
	HourToken   string       `json:"hour_token,omitempty" yaml:"hour_token,omitempty"`
	SolarTerm   string       `json:"solar_term,omitempty" yaml:"solar_term,omitempty"`
	Year        string       `json:"year,omitempty" yaml:"year,omitempty"`
	Month       string       `json:"month,omitempty" yaml:"month,omitempty"`
	Day         string       `json:"day,omitempty" yaml:"day,omitempty"`
	Hour        string       `json:"hour,omitempty" yaml:"hour,omitempty"`
	Polarity    string       `json:"polarity,omitempty" yaml:"polarity,omitempty"`
	Void        []string     `json:"void,omitempty" yaml:"void,omitempty"`
	SubPeriod   string       `json:"sub_period,omitempty" yaml:"sub_period,omitempty"`
	CycleLead   string       `json:"cycle_lead,omitempty" yaml:"cycle_lead,omitempty"`
	StageNumber int          `json:"stage_number,omitempty" yaml:"stage_number,omitempty"`
	DutyStar    string       `json:"duty_star,omitempty" yaml:"duty_star,omitempty"`
	DutyGate    string       `json:"duty_gate,omitempty" yaml:"duty_gate,omitempty"`
	GroundPlate []GroundView `json:"ground_plate,omitempty" yaml:"ground_plate,omitempty"`
	Palaces     []PalaceView `json:"palaces,omitempty" yaml:"palaces,omitempty"`
	Cached      bool         `json:"cached,omitempty" yaml:"cached,omitempty"`
	Error       string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// GroundView records one stem's ground-plate palace.
type GroundView struct {
	Stem   string `json:"stem" yaml:"stem"`
	Palace int    `json:"palace" yaml:"palace"`
}

// PalaceView is the serialized shape of one palace.
type PalaceView struct {
	Number int      `json:"number" yaml:"number"`
	Name   string   `json:"name" yaml:"name"`
	Heaven []string `json:"heaven" yaml:"heaven"`
	Ground []string `json:"ground" yaml:"ground"`
	Stars  []string `json:"stars" yaml:"stars"`
	Spirit string   `json:"spirit,omitempty" yaml:"spirit,omitempty"`
	Gate   string   `json:"gate,omitempty" yaml:"gate,omitempty"`
}

// NewChartView flattens a result for serialization.
func NewChartView(res dto.ChartResult) ChartView {
	v := ChartView{Label: res.Label}
	if res.Err != nil {
		v.Error = res.Err.Error()
		return v
	}

	c := res.Chart
	v.ID = c.ID.String()
	v.HourToken = c.HourToken
	v.SolarTerm = c.Term.String()
	v.Year = c.Year.String()
	v.Month = c.Month.String()
	v.Day = c.Day.String()
	v.Hour = c.Hour.String()
	v.Polarity = c.Polarity.String()
	v.Void = []string{c.Void[0].String(), c.Void[1].String()}
	v.SubPeriod = c.SubPeriod.String()
	v.CycleLead = c.CycleLead.String()
	v.StageNumber = c.StageNumber
	v.DutyStar = c.DutyStar.String()
	v.DutyGate = c.DutyGate.String()
	v.Cached = res.Cached

	for _, gp := range c.GroundPlate {
		v.GroundPlate = append(v.GroundPlate, GroundView{Stem: gp.Stem.String(), Palace: int(gp.Palace)})
	}
	for _, s := range res.Palaces {
		v.Palaces = append(v.Palaces, NewPalaceView(s))
	}
	return v
}

// NewPalaceView flattens a palace state.
func NewPalaceView(s entities.PalaceState) PalaceView {
	return PalaceView{
		Number: int(s.Palace.Number),
		Name:   s.Palace.Name,
		Heaven: stringsOf(s.Heaven),
		Ground: stringsOf(s.Ground),
		Stars:  stringsOf(s.Stars),
		Spirit: s.Spirit.String(),
		Gate:   s.Gate.String(),
	}
}

func stringsOf[T interface{ String() string }](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.String()
	}
	return out
}

func views(results []dto.ChartResult) []ChartView {
	out := make([]ChartView, len(results))
	for i, r := range results {
		out[i] = NewChartView(r)
	}
	return out
}
