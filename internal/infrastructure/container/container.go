// Package container provides dependency injection for the application.
package container

import (
	"log/slog"

	"github.com/dunjia/qimen/internal/application/ports"
	"github.com/dunjia/qimen/internal/application/services"
	"github.com/dunjia/qimen/internal/config"
	"github.com/dunjia/qimen/internal/domain/repositories"
	domainservices "github.com/dunjia/qimen/internal/domain/services"
	infraconfig "github.com/dunjia/qimen/internal/infrastructure/config"
	"github.com/dunjia/qimen/internal/infrastructure/output"
	"github.com/dunjia/qimen/internal/infrastructure/persistence/memory"
)

// Container holds all application dependencies.
type Container struct {
	engine        *domainservices.ArrangementEngine
	chartService  *services.ChartService
	requestLoader ports.RequestLoader
	formatters    ports.OutputFormatterFactory
	repository    repositories.ChartRepository
	systemCfg     *config.SystemConfig
	logger        *slog.Logger
}

// Options configure the container.
type Options struct {
	Logger *slog.Logger

	// SystemConfig is the loaded system configuration; nil means defaults.
	SystemConfig *config.SystemConfig
}

// New creates a new dependency injection container.
func New(opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	systemCfg := opts.SystemConfig
	if systemCfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		systemCfg = loaded
	}

	engine := domainservices.NewArrangementEngine(opts.Logger)
	repo := memory.NewChartRepository()

	return &Container{
		engine:        engine,
		chartService:  services.NewChartService(engine, repo, opts.Logger),
		requestLoader: infraconfig.NewRequestLoader(),
		formatters:    output.NewFormatterFactory(),
		repository:    repo,
		systemCfg:     systemCfg,
		logger:        opts.Logger,
	}, nil
}

// ChartService returns the chart use case.
func (c *Container) ChartService() *services.ChartService {
	return c.chartService
}

// Engine returns the arrangement engine and, through it, the reference tables.
func (c *Container) Engine() *domainservices.ArrangementEngine {
	return c.engine
}

// RequestLoader returns the batch document loader port.
func (c *Container) RequestLoader() ports.RequestLoader {
	return c.requestLoader
}

// Formatters returns the output formatter factory.
func (c *Container) Formatters() ports.OutputFormatterFactory {
	return c.formatters
}

// Repository returns the chart cache.
func (c *Container) Repository() repositories.ChartRepository {
	return c.repository
}

// SystemConfig returns the system configuration.
func (c *Container) SystemConfig() *config.SystemConfig {
	return c.systemCfg
}

// FormatterOptions derives formatter options from the system configuration.
func (c *Container) FormatterOptions() ports.FormatterOptions {
	return ports.FormatterOptions{
		Indent:      true,
		Color:       c.systemCfg.Color,
		Placeholder: c.systemCfg.Placeholder,
	}
}

// Logger returns the configured logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}
