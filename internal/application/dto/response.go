package dto

import (
	"time"

	"github.com/dunjia/qimen/internal/domain/entities"
)

// ChartResult is the outcome of one chart request.
type ChartResult struct {
	// Index is the request's position in its batch (0 for single requests).
	Index int

	// Label from the original request
	Label string

	// Chart is nil when Err is set.
	Chart *entities.Chart

	// Palaces are the palace states that passed the filter, in canonical order.
	Palaces []entities.PalaceState

	// Cached is true when the chart was served from the repository.
	Cached bool

	Err error
}

// BatchResponse contains the results of a batch, in request order.
type BatchResponse struct {
	Results  []ChartResult
	Metadata ResponseMetadata
}

// Failed returns the results that carry an error.
func (r *BatchResponse) Failed() []ChartResult {
	var out []ChartResult
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// TermCharts lists the stored charts of one solar term, oldest first.
type TermCharts struct {
	Term   string
	Charts []*entities.Chart
}

// ResponseMetadata contains metadata about the response.
type ResponseMetadata struct {
	// ProcessedAt is when the request was processed
	ProcessedAt time.Time

	// Duration is how long the request took
	Duration time.Duration

	// Computed is the number of charts arranged by the engine.
	Computed int

	// Cached is the number of results served from the repository.
	Cached int
}
