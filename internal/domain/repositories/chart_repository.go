// Package repositories defines interfaces for domain persistence.
package repositories

import (
	"context"
	"errors"

	"github.com/dunjia/qimen/internal/domain/entities"
	"github.com/dunjia/qimen/internal/domain/values"
)

// ErrNotFound is returned (wrapped) when no chart has the requested ID.
var ErrNotFound = errors.New("chart not found")

// ChartRepository defines the interface for persisting computed charts.
type ChartRepository interface {
	// Save persists a chart. Saving the same ID twice keeps the first copy.
	Save(ctx context.Context, chart *entities.Chart) error

	// FindByID retrieves a chart by its input-derived ID.
	FindByID(ctx context.Context, id values.ChartID) (*entities.Chart, error)

	// FindByTerm retrieves charts computed for a solar term, oldest first.
	FindByTerm(ctx context.Context, term values.SolarTerm, limit int) ([]*entities.Chart, error)

	// List returns every stored chart in save order.
	List(ctx context.Context) ([]*entities.Chart, error)
}
