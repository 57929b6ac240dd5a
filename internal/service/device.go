package service

import (
	"math"
	"time"
)

// Boat firmware behaviour reproduced by the simulator.
const (
	ObstacleLimitCM = 40.0 // avoidance triggers below this
	minTurnClearCM  = 20.0 // a side must be further than this to turn into it
	noEchoCM        = 100.0

	OutboundDuration = 20 * time.Minute
	ReturnDuration   = 2 * time.Minute
	RestDuration     = 5 * time.Minute
	MissionCycle     = OutboundDuration + ReturnDuration + RestDuration

	nirPlasticSpike      = 1000.0
	spikeConfidence      = 99.9
	maxFingerprintDist   = 500.0
	maxClassifierPercent = 99.0
)

// Status labels sent by the boat.
const (
	StatusOutbound  = "Patrolling (Outbound)"
	StatusReturning = "Returning Home"
	StatusResting   = "Resting"
	StatusScanning  = "Obstacle! Scanning..."
	StatusRightPath = "Right Path Clear"
	StatusLeftPath  = "Left Path Clear"
	StatusUTurn     = "Blocked! U-Turn"
)

// Classifier labels.
const (
	LabelClean   = "Clean Water"
	LabelAlgae   = "Algae Bloom"
	LabelCDOM    = "CDOM / Waste"
	LabelPlastic = "Plastic Debris"
)

// Phase is a stage of the patrol mission.
type Phase int

const (
	PhaseOutbound Phase = iota
	PhaseReturning
	PhaseResting
)

// PhaseAt maps time since mission start onto a phase; the mission repeats every MissionCycle.
func PhaseAt(elapsed time.Duration) Phase {
	elapsed %= MissionCycle
	switch {
	case elapsed < OutboundDuration:
		return PhaseOutbound
	case elapsed < OutboundDuration+ReturnDuration:
		return PhaseReturning
	default:
		return PhaseResting
	}
}

func (p Phase) Status() string {
	switch p {
	case PhaseOutbound:
		return StatusOutbound
	case PhaseReturning:
		return StatusReturning
	default:
		return StatusResting
	}
}

// Moving reports whether the boat drives, and so runs obstacle avoidance, in this phase.
func (p Phase) Moving() bool { return p != PhaseResting }

// DecideTurn picks the avoidance manoeuvre from the distances measured on each side.
func DecideTurn(rightCM, leftCM float64) string {
	switch {
	case rightCM > leftCM && rightCM > minTurnClearCM:
		return StatusRightPath
	case leftCM >= rightCM && leftCM > minTurnClearCM:
		return StatusLeftPath
	default:
		return StatusUTurn
	}
}

// Spectrum is one (UV, visible, NIR) triple from the spectral sensor.
type Spectrum struct {
	UV, Visible, NIR float64
}

type fingerprint struct {
	label string
	sig   Spectrum
}

// Checked in order; ties keep the earlier entry.
var fingerprints = []fingerprint{
	{LabelClean, Spectrum{20, 20, 10}},
	{LabelAlgae, Spectrum{40, 250, 150}},
	{LabelCDOM, Spectrum{200, 50, 20}},
	{LabelPlastic, Spectrum{150, 150, 300}},
}

func (s Spectrum) distance(o Spectrum) float64 {
	du, dv, dn := s.UV-o.UV, s.Visible-o.Visible, s.NIR-o.NIR
	return math.Sqrt(du*du + dv*dv + dn*dn)
}

// Classify is a nearest-fingerprint classifier. A NIR reading above 1000 is always plastic.
func Classify(s Spectrum) (label string, confidence float64) {
	best := fingerprints[0]
	minDist := s.distance(best.sig)
	for _, fp := range fingerprints[1:] {
		if d := s.distance(fp.sig); d < minDist {
			best, minDist = fp, d
		}
	}

	if s.NIR > nirPlasticSpike {
		return LabelPlastic, spikeConfidence
	}
	confidence = (1 - minDist/maxFingerprintDist) * 100
	return best.label, math.Max(0, math.Min(confidence, maxClassifierPercent))
}

// phRange is the [lo, hi) pH band, in hundredths, the boat reports for a material.
var phRange = map[string][2]int{
	LabelClean:   {680, 750},
	LabelAlgae:   {850, 950},
	LabelPlastic: {650, 690},
	LabelCDOM:    {550, 650},
}
