package service

import (
	"context"
	"time"

	"aquabot_telemetry/internal/cache"
	"aquabot_telemetry/internal/logger"
	"aquabot_telemetry/internal/metrics"
	"aquabot_telemetry/internal/models"
	"aquabot_telemetry/internal/repository"
)

// DefaultWindow is the number of readings GET /api/data returns.
const DefaultWindow = 10

// Telemetry ingests readings and serves the recency window.
type Telemetry interface {
	Ingest(ctx context.Context, r models.Reading) (models.StoredReading, error)
	Recent(ctx context.Context) ([]models.StoredReading, error)
	Dashboard(ctx context.Context) (models.Dashboard, error)
	Ping(ctx context.Context) error
}

// Simulator feeds synthetic boat telemetry until ctx is canceled.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

type Service struct {
	Telemetry
	Simulator
}

// Options carries the collaborators that are optional or configurable.
// Zero values give a window of DefaultWindow, no cache, no metrics and a no-op logger.
type Options struct {
	Window  int
	Cache   cache.WindowCache
	Metrics *metrics.Metrics
	Log     *logger.Logger
}

func NewService(repos *repository.Repository, opts Options) *Service {
	telemetry := NewTelemetryService(repos.Readings, opts)
	return &Service{
		Telemetry: telemetry,
		Simulator: NewSimulatorService(telemetry, opts.Log),
	}
}
