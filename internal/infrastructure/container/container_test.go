package container

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dunjia/qimen/internal/application/dto"
	"github.com/dunjia/qimen/internal/config"
)

func TestNew_WithSystemConfig(t *testing.T) {
	cfg := &config.SystemConfig{Format: "grid", Color: false, Placeholder: "-", Concurrency: 2}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c, err := New(Options{Logger: logger, SystemConfig: cfg})
	require.NoError(t, err)

	assert.Same(t, cfg, c.SystemConfig())
	assert.Same(t, logger, c.Logger())
	assert.NotNil(t, c.Engine())
	assert.NotNil(t, c.RequestLoader())
	assert.Contains(t, c.Formatters().SupportedFormats(), "grid")

	opts := c.FormatterOptions()
	assert.False(t, opts.Color)
	assert.Equal(t, "-", opts.Placeholder)
}

func TestNew_LoadsDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	c, err := New(Options{})
	require.NoError(t, err)

	assert.Equal(t, config.DefaultFormat, c.SystemConfig().Format)
	assert.Equal(t, slog.Default(), c.Logger())
}

func TestContainer_ServiceSharesRepository(t *testing.T) {
	c, err := New(Options{
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		SystemConfig: &config.SystemConfig{Format: "text", Placeholder: "无"},
	})
	require.NoError(t, err)

	req := dto.ChartRequest{Year: "戊子", Month: "壬戌", Day: "戊申", Hour: "戊午", Term: "霜降"}
	res, err := c.ChartService().Compute(context.Background(), req, dto.FilterOptions{})
	require.NoError(t, err)
	assert.False(t, res.Cached)

	stored, err := c.Repository().FindByID(context.Background(), res.Chart.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Chart.ID, stored.ID)
}
