// Package memory provides in-memory implementations of domain repositories.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dunjia/qimen/internal/domain/entities"
	"github.com/dunjia/qimen/internal/domain/repositories"
	"github.com/dunjia/qimen/internal/domain/values"
)

// Ensure interface compliance
var _ repositories.ChartRepository = (*ChartRepository)(nil)

// ChartRepository is an in-memory implementation of ChartRepository.
// Charts are read-only once built, so pointers are stored as-is.
type ChartRepository struct {
	charts map[uuid.UUID]*entities.Chart
	order  []uuid.UUID
	mu     sync.RWMutex
}

// NewChartRepository creates a new in-memory repository.
func NewChartRepository() *ChartRepository {
	return &ChartRepository{
		charts: make(map[uuid.UUID]*entities.Chart),
	}
}

// Save persists a chart.
func (r *ChartRepository) Save(_ context.Context, chart *entities.Chart) error {
	if chart == nil {
		return fmt.Errorf("cannot save nil chart")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := chart.ID.UUID()
	if _, ok := r.charts[id]; ok {
		return nil
	}
	r.charts[id] = chart
	r.order = append(r.order, id)
	return nil
}

// FindByID retrieves a chart by its ID.
func (r *ChartRepository) FindByID(_ context.Context, id values.ChartID) (*entities.Chart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chart, ok := r.charts[id.UUID()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repositories.ErrNotFound, id)
	}
	return chart, nil
}

// FindByTerm retrieves charts for a solar term in save order.
func (r *ChartRepository) FindByTerm(_ context.Context, term values.SolarTerm, limit int) ([]*entities.Chart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*entities.Chart
	for _, id := range r.order {
		c := r.charts[id]
		if c.Term == term {
			matches = append(matches, c)
		}
	}

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// List returns all charts in save order.
func (r *ChartRepository) List(_ context.Context) ([]*entities.Chart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Chart, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.charts[id])
	}
	return out, nil
}

// Len returns the number of stored charts.
func (r *ChartRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
