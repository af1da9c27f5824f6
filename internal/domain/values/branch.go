package values

// Branch is one of the twelve earthly branches (地支).
type Branch int

const (
	BranchZi Branch = iota + 1
	BranchChou
	BranchYin
	BranchMao
	BranchChen
	BranchSi
	BranchWu
	BranchWei
	BranchShen
	BranchYou
	BranchXu
	BranchHai
)

var branchNames = []string{"", "子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

// BranchCount is the size of the branch alphabet.
const BranchCount = 12

// ParseBranch resolves a branch from its native symbol.
func ParseBranch(s string) (Branch, error) {
	return parseSymbol[Branch]("branch", s, branchNames)
}

// MustParseBranch parses a branch or panics
func MustParseBranch(s string) Branch {
	v, err := ParseBranch(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the native symbol, or "" for the zero value.
func (b Branch) String() string {
	return symbolName(b, branchNames)
}

// Valid reports whether b is one of the twelve branches.
func (b Branch) Valid() bool {
	return b >= BranchZi && b <= BranchHai
}

// Ordinal returns the 0-based position in the branch cycle.
func (b Branch) Ordinal() int {
	return int(b) - 1
}

// Next returns the following branch in the fixed 12-branch order.
func (b Branch) Next() Branch {
	return cyclicNext(b, 1, BranchCount)
}

// AdjacentTo reports whether b and other are neighbours in the 12-branch cycle.
func (b Branch) AdjacentTo(other Branch) bool {
	return b.Next() == other || other.Next() == b
}

// MarshalText implements encoding.TextMarshaler
func (b Branch) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (b *Branch) UnmarshalText(data []byte) error {
	return unmarshalSymbol("branch", data, branchNames, b)
}
