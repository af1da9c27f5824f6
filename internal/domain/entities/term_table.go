package entities

import (
	"github.com/dunjia/qimen/internal/domain/values"
)

// termRow is the classical stage assignment of one solar term.
type termRow struct {
	stages   [3]int // indexed by sub-period ordinal: 上, 中, 下
	polarity values.Polarity
}

// TermTable maps each solar term to its polarity and per-sub-period stage number.
type TermTable struct {
	rows map[values.SolarTerm]termRow
}

// NewTermTable returns the classical 24x3 stage table.
func NewTermTable() *TermTable {
	yang, yin := values.PolarityActive, values.PolarityPassive
	return &TermTable{rows: map[values.SolarTerm]termRow{
		values.TermLiChun:      {[3]int{8, 5, 2}, yang},
		values.TermYuShui:      {[3]int{9, 6, 3}, yang},
		values.TermJingZhe:     {[3]int{1, 7, 4}, yang},
		values.TermChunFen:     {[3]int{3, 9, 6}, yang},
		values.TermQingMing:    {[3]int{4, 1, 7}, yang},
		values.TermGuYu:        {[3]int{5, 2, 8}, yang},
		values.TermLiXia:       {[3]int{4, 1, 7}, yang},
		values.TermXiaoMan:     {[3]int{5, 2, 8}, yang},
		values.TermMangZhong:   {[3]int{6, 3, 9}, yang},
		values.TermXiaZhi:      {[3]int{9, 3, 6}, yin},
		values.TermXiaoShu:     {[3]int{8, 2, 5}, yin},
		values.TermDaShu:       {[3]int{7, 1, 4}, yin},
		values.TermLiQiu:       {[3]int{2, 5, 8}, yin},
		values.TermChuShu:      {[3]int{1, 4, 7}, yin},
		values.TermBaiLu:       {[3]int{9, 3, 6}, yin},
		values.TermQiuFen:      {[3]int{7, 1, 4}, yin},
		values.TermHanLu:       {[3]int{6, 9, 3}, yin},
		values.TermShuangJiang: {[3]int{5, 8, 2}, yin},
		values.TermLiDong:      {[3]int{6, 9, 3}, yin},
		values.TermXiaoXue:     {[3]int{5, 8, 2}, yin},
		values.TermDaXue:       {[3]int{4, 7, 1}, yin},
		values.TermDongZhi:     {[3]int{1, 7, 4}, yang},
		values.TermXiaoHan:     {[3]int{2, 8, 5}, yang},
		values.TermDaHan:       {[3]int{3, 9, 6}, yang},
	}}
}

func (t *TermTable) row(term values.SolarTerm) (termRow, error) {
	r, ok := t.rows[term]
	if !ok {
		return termRow{}, values.NewLookupError("solar term", term.String())
	}
	return r, nil
}

// StageNumber returns the stage (局数, 1-9) for a term and sub-period.
func (t *TermTable) StageNumber(term values.SolarTerm, sp values.SubPeriod) (int, error) {
	r, err := t.row(term)
	if err != nil {
		return 0, err
	}
	if !sp.Valid() {
		return 0, values.NewLookupError("sub-period", sp.String())
	}
	return r.stages[sp.Ordinal()], nil
}

// PolarityOf returns whether the term belongs to the active or passive half-year.
func (t *TermTable) PolarityOf(term values.SolarTerm) (values.Polarity, error) {
	r, err := t.row(term)
	if err != nil {
		return 0, err
	}
	return r.polarity, nil
}
