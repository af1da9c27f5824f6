package values

// SolarTerm is one of the twenty-four solar terms (节气), ordered from 立春.
type SolarTerm int

const (
	TermLiChun SolarTerm = iota + 1
	TermYuShui
	TermJingZhe
	TermChunFen
	TermQingMing
	TermGuYu
	TermLiXia
	TermXiaoMan
	TermMangZhong
	TermXiaZhi
	TermXiaoShu
	TermDaShu
	TermLiQiu
	TermChuShu
	TermBaiLu
	TermQiuFen
	TermHanLu
	TermShuangJiang
	TermLiDong
	TermXiaoXue
	TermDaXue
	TermDongZhi
	TermXiaoHan
	TermDaHan
)

var termNames = []string{
	"",
	"立春", "雨水", "惊蛰", "春分", "清明", "谷雨",
	"立夏", "小满", "芒种", "夏至", "小暑", "大暑",
	"立秋", "处暑", "白露", "秋分", "寒露", "霜降",
	"立冬", "小雪", "大雪", "冬至", "小寒", "大寒",
}

// SolarTermCount is the size of the solar-term alphabet.
const SolarTermCount = 24

// ParseSolarTerm resolves a solar term from its native name.
func ParseSolarTerm(s string) (SolarTerm, error) {
	return parseSymbol[SolarTerm]("solar term", s, termNames)
}

// MustParseSolarTerm parses a solar term or panics
func MustParseSolarTerm(s string) SolarTerm {
	v, err := ParseSolarTerm(s)
	if err != nil {
		panic(err)
	}
	return v
}

// AllSolarTerms returns the terms in calendar order starting from 立春.
func AllSolarTerms() []SolarTerm {
	out := make([]SolarTerm, 0, SolarTermCount)
	for i := 1; i <= SolarTermCount; i++ {
		out = append(out, SolarTerm(i))
	}
	return out
}

// String returns the native name, or "" for the zero value.
func (t SolarTerm) String() string {
	return symbolName(t, termNames)
}

// Valid reports whether t is one of the 24 terms.
func (t SolarTerm) Valid() bool {
	return t >= TermLiChun && t <= TermDaHan
}

// MarshalText implements encoding.TextMarshaler
func (t SolarTerm) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *SolarTerm) UnmarshalText(data []byte) error {
	return unmarshalSymbol("solar term", data, termNames, t)
}
