package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dunjia/qimen/internal/application/dto"
	apperrors "github.com/dunjia/qimen/internal/application/errors"
	"github.com/dunjia/qimen/internal/domain/entities"
	"github.com/dunjia/qimen/internal/domain/services"
	"github.com/dunjia/qimen/internal/domain/values"
	"github.com/dunjia/qimen/internal/infrastructure/persistence/memory"
)

func newTestService() (*ChartService, *memory.ChartRepository) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := memory.NewChartRepository()
	return NewChartService(services.NewArrangementEngine(logger), repo, logger), repo
}

var scenarioOne = dto.ChartRequest{
	Label:     "2008-11-04 12:30",
	HourToken: "午时",
	Year:      "戊子",
	Month:     "壬戌",
	Day:       "戊申",
	Hour:      "戊午",
	Term:      "霜降",
}

var scenarioTwo = dto.ChartRequest{
	Label: "1998-09-26 11:20",
	Year:  "戊寅",
	Month: "辛酉",
	Day:   "丙子",
	Hour:  "甲午",
	Term:  "秋分",
}

func TestChartService_Compute(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	res, err := svc.Compute(ctx, scenarioOne, dto.FilterOptions{})
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Equal(t, "2008-11-04 12:30", res.Label)
	assert.Equal(t, "开门", res.Chart.DutyGate.String())
	assert.Len(t, res.Palaces, 9)
	assert.Equal(t, 1, repo.Len())

	again, err := svc.Compute(ctx, scenarioOne, dto.FilterOptions{})
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Same(t, res.Chart, again.Chart)
}

func TestChartService_Compute_Filtered(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.Compute(context.Background(), scenarioTwo, dto.FilterOptions{
		FilterExpression: `spirit == "值符"`,
	})
	require.NoError(t, err)
	require.Len(t, res.Palaces, 1)
	assert.Equal(t, "坎一宫", res.Palaces[0].Palace.Name)

	res, err = svc.Compute(context.Background(), scenarioTwo, dto.FilterOptions{HideCenter: true, Palaces: []int{5, 2}})
	require.NoError(t, err)
	require.Len(t, res.Palaces, 1)
	assert.Equal(t, "坤二宫", res.Palaces[0].Palace.Name)
}

func TestChartService_Compute_ValidationErrors(t *testing.T) {
	svc, repo := newTestService()

	tests := []struct {
		name    string
		req     dto.ChartRequest
		filters dto.FilterOptions
		field   string
		details int
	}{
		{
			name:    "bad pillars and term",
			req:     dto.ChartRequest{Year: "甲丑", Month: "丙寅", Day: "x", Hour: "甲子", Term: "春节"},
			field:   "chart",
			details: 3,
		},
		{
			name:    "bad filter",
			req:     scenarioOne,
			filters: dto.FilterOptions{FilterExpression: "gate =="},
			field:   "filter",
			details: 1,
		},
		{
			name:    "bad palace number",
			req:     scenarioOne,
			filters: dto.FilterOptions{Palaces: []int{0, 10}},
			field:   "palace",
			details: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Compute(context.Background(), tt.req, tt.filters)
			var valErr *apperrors.ValidationError
			require.True(t, errors.As(err, &valErr), "got %v", err)
			assert.Equal(t, tt.field, valErr.Field)
			assert.Len(t, valErr.Details, tt.details)
		})
	}
	assert.Equal(t, 0, repo.Len())
}

func TestChartService_ComputeBatch(t *testing.T) {
	svc, repo := newTestService()

	bad := dto.ChartRequest{Label: "broken", Year: "甲子", Month: "甲子", Day: "甲子", Hour: "甲子", Term: "nope"}
	req := dto.BatchRequest{
		APIVersion: "1.0.0",
		Charts:     []dto.ChartRequest{scenarioOne, scenarioTwo, bad, scenarioOne},
	}

	resp, err := svc.ComputeBatch(context.Background(), req, dto.FilterOptions{}, dto.ExecutionOptions{MaxConcurrentCharts: 2})
	require.NoError(t, err)
	require.Len(t, resp.Results, 4)

	for i, r := range resp.Results {
		assert.Equal(t, i, r.Index)
	}
	assert.Equal(t, "2008-11-04 12:30", resp.Results[0].Label)
	assert.Equal(t, "休门", resp.Results[1].Chart.DutyGate.String())

	var valErr *apperrors.ValidationError
	assert.True(t, errors.As(resp.Results[2].Err, &valErr))
	assert.Nil(t, resp.Results[2].Chart)

	assert.True(t, resp.Results[3].Cached)
	assert.Same(t, resp.Results[0].Chart, resp.Results[3].Chart)

	assert.Equal(t, 2, resp.Metadata.Computed)
	assert.Equal(t, 1, resp.Metadata.Cached)
	assert.Len(t, resp.Failed(), 1)
	assert.Equal(t, 2, repo.Len())
}

func TestChartService_ComputeBatch_AllHours(t *testing.T) {
	svc, repo := newTestService()

	var charts []dto.ChartRequest
	for i := 0; i < values.CycleLength; i++ {
		charts = append(charts, dto.ChartRequest{
			Label: fmt.Sprintf("hour-%02d", i),
			Year:  "乙巳",
			Month: "丙戌",
			Day:   "戊寅",
			Hour:  values.PillarAt(i).String(),
			Term:  "霜降",
		})
	}

	resp, err := svc.ComputeBatch(context.Background(), dto.BatchRequest{APIVersion: "1.0.0", Charts: charts},
		dto.FilterOptions{}, dto.ExecutionOptions{MaxConcurrentCharts: 4})
	require.NoError(t, err)
	assert.Empty(t, resp.Failed())
	assert.Equal(t, values.CycleLength, resp.Metadata.Computed)
	assert.Equal(t, values.CycleLength, repo.Len())
	for i, r := range resp.Results {
		assert.Equal(t, values.PillarAt(i), r.Chart.Hour)
	}
}

func TestChartService_Compute_KeepsCallerHourToken(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	first := scenarioOne
	first.HourToken = "2008-11-04T12:30"
	second := scenarioOne
	second.HourToken = "2008-11-04T12:45"

	res, err := svc.Compute(ctx, first, dto.FilterOptions{})
	require.NoError(t, err)
	again, err := svc.Compute(ctx, second, dto.FilterOptions{})
	require.NoError(t, err)

	assert.True(t, again.Cached)
	assert.Equal(t, "2008-11-04T12:45", again.Chart.HourToken)
	assert.Contains(t, again.Chart.Render(), "时辰: 2008-11-04T12:45")
	assert.Equal(t, "2008-11-04T12:30", res.Chart.HourToken)
	assert.Equal(t, res.Chart.ID, again.Chart.ID)

	stored, err := repo.FindByID(ctx, res.Chart.ID)
	require.NoError(t, err)
	assert.Equal(t, "2008-11-04T12:30", stored.HourToken)
}

func TestChartService_ComputeBatch_KeepsEachHourToken(t *testing.T) {
	svc, _ := newTestService()

	first := scenarioOne
	first.HourToken = "2008-11-04T12:30"
	second := scenarioOne
	second.HourToken = "2008-11-04T12:45"

	resp, err := svc.ComputeBatch(context.Background(),
		dto.BatchRequest{APIVersion: "1.0.0", Charts: []dto.ChartRequest{first, second}},
		dto.FilterOptions{}, dto.ExecutionOptions{})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)

	assert.Equal(t, "2008-11-04T12:30", resp.Results[0].Chart.HourToken)
	assert.Equal(t, "2008-11-04T12:45", resp.Results[1].Chart.HourToken)
	assert.True(t, resp.Results[1].Cached)
	assert.Equal(t, resp.Results[0].Chart.ID, resp.Results[1].Chart.ID)
	assert.Equal(t, resp.Results[0].Chart.Palaces(), resp.Results[1].Chart.Palaces())
}

func TestChartService_Compute_LogsFilterErrors(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := NewChartService(services.NewArrangementEngine(logger), memory.NewChartRepository(), logger)

	res, err := svc.Compute(context.Background(), scenarioOne,
		dto.FilterOptions{FilterExpression: `heaven[1] == "丁"`})
	require.NoError(t, err)
	require.Len(t, res.Palaces, 1)
	assert.Equal(t, "巽四宫", res.Palaces[0].Palace.Name)

	assert.Contains(t, logs.String(), "palace excluded")
	assert.Contains(t, logs.String(), "filter expression error")
}

func TestChartService_ChartsByTerm(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	empty, err := svc.ChartsByTerm(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	dawn := scenarioOne
	dawn.Hour = "甲寅"
	for _, req := range []dto.ChartRequest{scenarioOne, scenarioTwo, dawn, scenarioOne} {
		_, err := svc.Compute(ctx, req, dto.FilterOptions{})
		require.NoError(t, err)
	}

	groups, err := svc.ChartsByTerm(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "霜降", groups[0].Term)
	require.Len(t, groups[0].Charts, 2)
	assert.Equal(t, "戊午", groups[0].Charts[0].Hour.String())
	assert.Equal(t, "甲寅", groups[0].Charts[1].Hour.String())

	assert.Equal(t, "秋分", groups[1].Term)
	assert.Len(t, groups[1].Charts, 1)
}

func TestChartService_ComputeBatch_Cancelled(t *testing.T) {
	svc, _ := newTestService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ComputeBatch(ctx, dto.BatchRequest{Charts: []dto.ChartRequest{scenarioOne}},
		dto.FilterOptions{}, dto.ExecutionOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

type failingRepo struct{ *memory.ChartRepository }

func (*failingRepo) FindByID(context.Context, values.ChartID) (*entities.Chart, error) {
	return nil, errors.New("disk on fire")
}

func TestChartService_RepositoryError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewChartService(services.NewArrangementEngine(logger),
		&failingRepo{ChartRepository: memory.NewChartRepository()}, logger)

	_, err := svc.Compute(context.Background(), scenarioOne, dto.FilterOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestParseRequest(t *testing.T) {
	in, err := ParseRequest(scenarioOne)
	require.NoError(t, err)
	assert.Equal(t, "午时", in.HourToken)
	assert.Equal(t, values.TermShuangJiang, in.Term)
	assert.Equal(t, "戊午", in.Hour.String())
}
