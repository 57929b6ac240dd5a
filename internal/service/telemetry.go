package service

import (
	"context"
	"errors"
	"sync"

	"aquabot_telemetry/internal/cache"
	"aquabot_telemetry/internal/logger"
	"aquabot_telemetry/internal/metrics"
	"aquabot_telemetry/internal/models"
	"aquabot_telemetry/internal/repository"
)

// TelemetryService sits between the HTTP layer and the store. Store errors are
// returned as-is so callers can detect repository.PersistenceError.
type TelemetryService struct {
	repo    repository.ReadingRepo
	cache   cache.WindowCache
	metrics *metrics.Metrics
	log     *logger.Logger
	window  int

	// fillMu orders cache fills against invalidations so a fill that read the
	// store before an append cannot land after that append's invalidation.
	fillMu sync.Mutex
	cached bool
}

func NewTelemetryService(repo repository.ReadingRepo, opts Options) *TelemetryService {
	window := opts.Window
	if window <= 0 {
		window = DefaultWindow
	}
	c := opts.Cache
	if c == nil {
		c = cache.Noop{}
	}
	_, noop := c.(cache.Noop)
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	return &TelemetryService{
		repo:    repo,
		cache:   c,
		metrics: opts.Metrics,
		log:     log,
		window:  window,
		cached:  !noop,
	}
}

// Ingest appends r to the store. A reading is durable once this returns nil;
// a failed cache invalidation is logged and does not fail the call.
func (s *TelemetryService) Ingest(ctx context.Context, r models.Reading) (models.StoredReading, error) {
	stored, err := s.repo.Append(ctx, r)
	if err != nil {
		s.observeErr(err)
		return models.StoredReading{}, err
	}
	s.metrics.ReadingIngested()

	if s.cached {
		s.fillMu.Lock()
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warnw("window_cache_invalidate_failed", "err", err)
		}
		s.fillMu.Unlock()
	}
	return stored, nil
}

// Recent returns up to window readings, newest first.
func (s *TelemetryService) Recent(ctx context.Context) ([]models.StoredReading, error) {
	if !s.cached {
		return s.load(ctx)
	}

	if readings, ok, err := s.cache.Get(ctx, s.window); err != nil {
		s.log.Warnw("window_cache_get_failed", "err", err)
	} else if ok {
		s.metrics.CacheHit()
		return readings, nil
	}
	s.metrics.CacheMiss()

	s.fillMu.Lock()
	defer s.fillMu.Unlock()

	readings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, s.window, readings); err != nil {
		s.log.Warnw("window_cache_set_failed", "err", err)
	}
	return readings, nil
}

func (s *TelemetryService) load(ctx context.Context) ([]models.StoredReading, error) {
	readings, err := s.repo.Recent(ctx, s.window)
	if err != nil {
		s.observeErr(err)
		return nil, err
	}
	return readings, nil
}

// Dashboard reorders the window oldest first and derives the view of its latest reading.
func (s *TelemetryService) Dashboard(ctx context.Context) (models.Dashboard, error) {
	recent, err := s.Recent(ctx)
	if err != nil {
		return models.Dashboard{}, err
	}
	return BuildDashboard(recent), nil
}

// BuildDashboard turns a newest-first window into the dashboard view.
func BuildDashboard(newestFirst []models.StoredReading) models.Dashboard {
	history := make([]models.StoredReading, len(newestFirst))
	for i, r := range newestFirst {
		history[len(newestFirst)-1-i] = r
	}

	d := models.Dashboard{
		History:   history,
		Alert:     models.AlertForward,
		Highlight: models.HighlightNeutral,
	}
	if len(history) == 0 {
		return d
	}

	current := history[len(history)-1]
	d.Current = &current
	d.Alert = current.Alert
	d.Obstacle = models.ObstacleDetected(current.Distance)
	d.ObstacleStatus = models.StatusReportsObstacle(current.StatusText())
	d.Highlight = models.HighlightFor(current.ClassificationText())
	return d
}

func (s *TelemetryService) Ping(ctx context.Context) error {
	err := s.repo.Ping(ctx)
	s.observeErr(err)
	return err
}

func (s *TelemetryService) observeErr(err error) {
	var pe *repository.PersistenceError
	if errors.As(err, &pe) {
		s.metrics.PersistenceError(pe.Op)
	}
}
