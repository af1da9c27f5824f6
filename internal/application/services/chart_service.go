// Package services contains application use cases.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dunjia/qimen/internal/application/dto"
	apperrors "github.com/dunjia/qimen/internal/application/errors"
	"github.com/dunjia/qimen/internal/domain/entities"
	"github.com/dunjia/qimen/internal/domain/repositories"
	"github.com/dunjia/qimen/internal/domain/services"
	"github.com/dunjia/qimen/internal/domain/values"
)

// ChartService turns chart requests into verified charts. Arranged charts
// are cached in the repository under their input-derived ID.
type ChartService struct {
	engine   *services.ArrangementEngine
	verifier *services.CoverageVerifier
	repo     repositories.ChartRepository
	logger   *slog.Logger
}

// NewChartService creates a new chart service.
func NewChartService(
	engine *services.ArrangementEngine,
	repo repositories.ChartRepository,
	logger *slog.Logger,
) *ChartService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ChartService{
		engine:   engine,
		verifier: services.NewCoverageVerifier(),
		repo:     repo,
		logger:   logger,
	}
}

// Compute arranges a single chart and applies the palace filter.
func (s *ChartService) Compute(ctx context.Context, req dto.ChartRequest, filters dto.FilterOptions) (*dto.ChartResult, error) {
	filter, err := s.BuildFilter(filters)
	if err != nil {
		return nil, err
	}

	in, err := ParseRequest(req)
	if err != nil {
		return nil, err
	}

	chart, cached, err := s.arrange(ctx, in)
	if err != nil {
		return nil, err
	}

	return &dto.ChartResult{
		Label:   req.Label,
		Chart:   chart,
		Palaces: s.selectPalaces(filter, chart),
		Cached:  cached,
	}, nil
}

// ComputeBatch arranges every chart of a batch concurrently. Results keep
// request order; a failing request is reported in its result and does not
// stop the others. Requests sharing a ChartID are arranged once; each result
// still carries its own hour token.
func (s *ChartService) ComputeBatch(
	ctx context.Context,
	req dto.BatchRequest,
	filters dto.FilterOptions,
	exec dto.ExecutionOptions,
) (*dto.BatchResponse, error) {
	startTime := time.Now()

	filter, err := s.BuildFilter(filters)
	if err != nil {
		return nil, err
	}

	results := make([]dto.ChartResult, len(req.Charts))
	inputs := make([]services.Input, len(req.Charts))

	// First request for each ID does the work; the rest reuse it.
	owner := make(map[values.ChartID]int)
	var unique []int
	for i, r := range req.Charts {
		results[i] = dto.ChartResult{Index: i, Label: r.Label}
		in, err := ParseRequest(r)
		if err != nil {
			results[i].Err = err
			continue
		}
		inputs[i] = in
		id := values.NewChartID(in.Year, in.Month, in.Day, in.Hour, in.Term)
		if _, seen := owner[id]; seen {
			continue
		}
		owner[id] = i
		unique = append(unique, i)
	}

	s.logger.Debug("batch planned", "requests", len(req.Charts), "unique", len(unique))

	g, gctx := errgroup.WithContext(ctx)
	if exec.MaxConcurrentCharts > 0 {
		g.SetLimit(exec.MaxConcurrentCharts)
	}

	charts := make([]*entities.Chart, len(req.Charts))
	cachedHits := make([]bool, len(req.Charts))
	for _, i := range unique {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			chart, cached, err := s.arrange(gctx, inputs[i])
			if err != nil {
				results[i].Err = err
				return nil
			}
			charts[i] = chart
			cachedHits[i] = cached
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch interrupted: %w", err)
	}

	resp := &dto.BatchResponse{Results: results}
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		in := inputs[i]
		o := owner[values.NewChartID(in.Year, in.Month, in.Day, in.Hour, in.Term)]
		if results[o].Err != nil {
			results[i].Err = results[o].Err
			continue
		}
		chart := charts[o].WithHourToken(in.HourToken)
		results[i].Chart = chart
		results[i].Cached = o != i || cachedHits[o]
		results[i].Palaces = s.selectPalaces(filter, chart)
		if results[i].Cached {
			resp.Metadata.Cached++
		} else {
			resp.Metadata.Computed++
		}
	}

	resp.Metadata.ProcessedAt = startTime
	resp.Metadata.Duration = time.Since(startTime)
	s.logger.Info("batch complete",
		"requests", len(req.Charts),
		"computed", resp.Metadata.Computed,
		"cached", resp.Metadata.Cached,
		"failed", len(resp.Failed()),
		"duration", resp.Metadata.Duration)

	return resp, nil
}

// ChartsByTerm groups every stored chart by solar term. Terms appear in
// the order their first chart was arranged.
func (s *ChartService) ChartsByTerm(ctx context.Context) ([]dto.TermCharts, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list charts: %w", err)
	}

	seen := make(map[values.SolarTerm]bool)
	var out []dto.TermCharts
	for _, c := range all {
		if seen[c.Term] {
			continue
		}
		seen[c.Term] = true
		charts, err := s.repo.FindByTerm(ctx, c.Term, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to query charts for %s: %w", c.Term, err)
		}
		out = append(out, dto.TermCharts{Term: c.Term.String(), Charts: charts})
	}
	return out, nil
}

// arrange serves a chart from the repository or computes, verifies and stores it.
func (s *ChartService) arrange(ctx context.Context, in services.Input) (*entities.Chart, bool, error) {
	id := values.NewChartID(in.Year, in.Month, in.Day, in.Hour, in.Term)

	if existing, err := s.repo.FindByID(ctx, id); err == nil {
		s.logger.Debug("chart served from repository", "chart_id", id.String())
		return existing.WithHourToken(in.HourToken), true, nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to query chart repository: %w", err)
	}

	chart, err := s.engine.Arrange(in)
	if err != nil {
		return nil, false, apperrors.NewExecutionError(id.String(), "arrangement failed", err)
	}
	if err := s.verifier.Verify(chart); err != nil {
		return nil, false, apperrors.NewExecutionError(id.String(), "coverage check failed", err)
	}
	if err := s.repo.Save(ctx, chart); err != nil {
		return nil, false, fmt.Errorf("failed to save chart: %w", err)
	}

	s.logger.Debug("chart arranged",
		"chart_id", id.String(),
		"stage_number", chart.StageNumber,
		"polarity", chart.Polarity.String())
	return chart, false, nil
}

// selectPalaces applies filter to chart and logs why each palace was left out.
func (s *ChartService) selectPalaces(filter *services.PalaceFilter, chart *entities.Chart) []entities.PalaceState {
	kept, excluded := filter.Select(chart, s.engine.Palaces())
	for _, e := range excluded {
		s.logger.Debug("palace excluded",
			"chart_id", chart.ID.String(),
			"palace", e.Palace.Int(),
			"reason", e.Reason)
	}
	return kept
}

// BuildFilter compiles the palace filter options.
func (s *ChartService) BuildFilter(filters dto.FilterOptions) (*services.PalaceFilter, error) {
	filter := services.NewPalaceFilter()

	if len(filters.Palaces) > 0 {
		var bad []string
		for _, n := range filters.Palaces {
			if _, err := values.NewPalaceNumber(n); err != nil {
				bad = append(bad, err.Error())
			}
		}
		if len(bad) > 0 {
			return nil, apperrors.NewValidationError("palace", "palace numbers must be 1-9", bad...)
		}
		filter.WithPalaces(filters.Palaces)
	}

	if filters.HideCenter {
		filter.WithoutCenter()
	}

	if filters.FilterExpression != "" {
		program, err := services.CompilePalaceExpression(filters.FilterExpression)
		if err != nil {
			return nil, apperrors.NewValidationError("filter", "invalid filter expression", err.Error())
		}
		filter.WithFilterExpression(program)
	}

	return filter, nil
}

// ParseRequest converts a request's text fields into engine input,
// collecting every malformed field into one ValidationError.
func ParseRequest(req dto.ChartRequest) (services.Input, error) {
	var details []string
	pillar := func(field, text string) values.Pillar {
		p, err := values.ParsePillar(text)
		if err != nil {
			details = append(details, fmt.Sprintf("%s: %v", field, err))
		}
		return p
	}

	in := services.Input{
		HourToken: req.HourToken,
		Year:      pillar("year", req.Year),
		Month:     pillar("month", req.Month),
		Day:       pillar("day", req.Day),
		Hour:      pillar("hour", req.Hour),
	}

	term, err := values.ParseSolarTerm(req.Term)
	if err != nil {
		details = append(details, fmt.Sprintf("term: %v", err))
	}
	in.Term = term

	if len(details) > 0 {
		return services.Input{}, apperrors.NewValidationError("chart", "invalid chart request", details...)
	}
	return in, nil
}
