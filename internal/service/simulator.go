package service

import (
	"context"
	"math"
	"math/rand"
	"time"

	"aquabot_telemetry/internal/logger"
	"aquabot_telemetry/internal/models"
)

// Ingester accepts readings; TelemetryService satisfies it.
type Ingester interface {
	Ingest(ctx context.Context, r models.Reading) (models.StoredReading, error)
}

// SimulatorService stands in for the boat: every tick it produces one reading the
// way the firmware would and ingests it.
type SimulatorService struct {
	ingest Ingester
	log    *logger.Logger
	rng    *rand.Rand

	missionStart time.Time
	scanning     bool
	lastDistance float64
	started      bool
}

func NewSimulatorService(ingest Ingester, log *logger.Logger) *SimulatorService {
	if log == nil {
		log = logger.Nop()
	}
	return &SimulatorService{
		ingest:       ingest,
		log:          log,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		lastDistance: noEchoCM,
	}
}

// Run ticks at the given interval until ctx is canceled. Ingest failures are logged
// and the loop carries on, as the boat keeps sending after a failed POST.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			r := s.Next(now)
			if _, err := s.ingest.Ingest(ctx, r); err != nil {
				if ctx.Err() != nil {
					return
				}
				s.log.Warnw("simulator_ingest_failed", "status", r.StatusText(), "err", err)
			}
		}
	}
}

// Next advances the simulated boat to now and returns the reading it would send.
func (s *SimulatorService) Next(now time.Time) models.Reading {
	if !s.started {
		s.missionStart = now
		s.started = true
	}
	elapsed := now.Sub(s.missionStart)
	if elapsed >= MissionCycle {
		s.missionStart = now
		elapsed = 0
	}

	phase := PhaseAt(elapsed)
	status := phase.Status()

	switch {
	case s.scanning:
		s.scanning = false
		status = DecideTurn(s.sampleDistance(), s.sampleDistance())
	case phase.Moving():
		s.lastDistance = s.sampleDistance()
		if s.lastDistance > 0 && s.lastDistance < ObstacleLimitCM {
			s.scanning = true
			status = StatusScanning
		}
	}

	return s.reading(status, s.lastDistance)
}

func (s *SimulatorService) reading(status string, distance float64) models.Reading {
	material := s.pickMaterial()
	spectrum := s.sampleSpectrum(material)
	label, confidence := Classify(spectrum)

	ph := s.samplePH(label)
	voltage := float64(s.rng.Intn(1024)) / 10.0 * (3.3 / 1023.0)
	turbidity := "CLEAN"
	if label != LabelClean && s.rng.Intn(2) == 0 {
		turbidity = "DIRTY"
	}
	temperature := float64(25 + s.rng.Intn(6))

	return models.Reading{
		PH:             &ph,
		Voltage:        &voltage,
		Turbidity:      &turbidity,
		CDOM:           &spectrum.UV,
		Algae:          &spectrum.Visible,
		Plastic:        &spectrum.NIR,
		Classification: &label,
		Confidence:     &confidence,
		Temperature:    &temperature,
		Distance:       &distance,
		Status:         &status,
	}
}

// sampleDistance mimics the ultrasonic sensor: no echo reads as 100 cm.
func (s *SimulatorService) sampleDistance() float64 {
	if s.rng.Intn(4) != 0 {
		return noEchoCM
	}
	return float64(5 + s.rng.Intn(95))
}

func (s *SimulatorService) pickMaterial() string {
	switch n := s.rng.Intn(100); {
	case n < 50:
		return LabelClean
	case n < 70:
		return LabelAlgae
	case n < 85:
		return LabelCDOM
	default:
		return LabelPlastic
	}
}

func (s *SimulatorService) sampleSpectrum(material string) Spectrum {
	base := fingerprints[0].sig
	for _, fp := range fingerprints {
		if fp.label == material {
			base = fp.sig
		}
	}
	jitter := func(v float64) float64 {
		return math.Max(0, math.Round(v+s.rng.NormFloat64()*25))
	}
	spectrum := Spectrum{UV: jitter(base.UV), Visible: jitter(base.Visible), NIR: jitter(base.NIR)}
	if material == LabelPlastic && s.rng.Intn(10) == 0 {
		spectrum.NIR = float64(1001 + s.rng.Intn(500))
	}
	return spectrum
}

func (s *SimulatorService) samplePH(label string) float64 {
	r, ok := phRange[label]
	if !ok {
		return 7.0
	}
	return float64(r[0]+s.rng.Intn(r[1]-r[0])) / 100.0
}
