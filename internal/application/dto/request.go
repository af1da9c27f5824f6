// Package dto contains data transfer objects for application layer use cases.
package dto

// ChartRequest is one chart to compute, with pillars and term in their
// native two-symbol and name forms as delivered by the calendar side.
type ChartRequest struct {
	Label     string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	HourToken string `json:"hour_token,omitempty" yaml:"hour_token,omitempty" toml:"hour_token,omitempty"`
	Year      string `json:"year" yaml:"year" toml:"year"`
	Month     string `json:"month" yaml:"month" toml:"month"`
	Day       string `json:"day" yaml:"day" toml:"day"`
	Hour      string `json:"hour" yaml:"hour" toml:"hour"`
	Term      string `json:"term" yaml:"term" toml:"term"`
}

// ChartDefaults fills pillars and term a chart request leaves empty.
type ChartDefaults struct {
	Year  string `json:"year,omitempty" yaml:"year,omitempty" toml:"year,omitempty"`
	Month string `json:"month,omitempty" yaml:"month,omitempty" toml:"month,omitempty"`
	Day   string `json:"day,omitempty" yaml:"day,omitempty" toml:"day,omitempty"`
	Term  string `json:"term,omitempty" yaml:"term,omitempty" toml:"term,omitempty"`
}

// BatchRequest is a document of chart requests.
type BatchRequest struct {
	APIVersion string         `json:"apiVersion" yaml:"apiVersion" toml:"apiVersion"`
	Defaults   *ChartDefaults `json:"defaults,omitempty" yaml:"defaults,omitempty" toml:"defaults,omitempty"`
	Charts     []ChartRequest `json:"charts" yaml:"charts" toml:"charts"`
}

// ApplyDefaults copies Defaults into every chart field left empty.
// Values set on a chart take precedence.
func (b *BatchRequest) ApplyDefaults() {
	if b.Defaults == nil {
		return
	}
	d := b.Defaults
	for i := range b.Charts {
		c := &b.Charts[i]
		if c.Year == "" {
			c.Year = d.Year
		}
		if c.Month == "" {
			c.Month = d.Month
		}
		if c.Day == "" {
			c.Day = d.Day
		}
		if c.Term == "" {
			c.Term = d.Term
		}
	}
}

// FilterOptions defines filters for palace selection in output.
type FilterOptions struct {
	FilterExpression string
	Palaces          []int
	HideCenter       bool
}

// ExecutionOptions controls how batches are executed.
type ExecutionOptions struct {
	// MaxConcurrentCharts limits parallel chart computation (0 = no limit)
	MaxConcurrentCharts int
}
