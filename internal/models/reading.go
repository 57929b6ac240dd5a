package models

import "time"

// MaxRadarRangeCM is the ultrasonic sensor's usable range. Distances of 0 or at/above
// this value mean nothing was detected.
const MaxRadarRangeCM = 100.0

// Reading is one telemetry snapshot as sent by the boat.
// Every field is optional; a nil pointer means the device did not send it.
type Reading struct {
	PH        *float64 `json:"ph"`
	Voltage   *float64 `json:"voltage"`
	Turbidity *string  `json:"turbidity"` // CLEAN | DIRTY from the firmware, free text otherwise

	// Spectral channels and the on-board classifier output.
	CDOM           *float64 `json:"cdom"`
	Algae          *float64 `json:"algae"`
	Plastic        *float64 `json:"plastic"`
	Classification *string  `json:"classification"`
	Confidence     *float64 `json:"confidence"` // %

	Temperature *float64 `json:"temperature"` // °C

	Distance *float64 `json:"distance"` // cm
	Status   *string  `json:"status"`
	Alert    Alert    `json:"alert,omitempty"`

	Timestamp *time.Time `json:"timestamp"`
}

// StoredReading is a Reading after the store accepted it.
type StoredReading struct {
	ID string `json:"id"`
	Reading
	Alert     Alert     `json:"alert"`
	Timestamp time.Time `json:"timestamp"`
}

// ObstacleDetected reports whether the distance falls strictly inside the radar range.
func ObstacleDetected(distance *float64) bool {
	if distance == nil {
		return false
	}
	d := *distance
	return d > 0 && d < MaxRadarRangeCM
}

// StatusText returns the status label or "" when absent.
func (r Reading) StatusText() string {
	if r.Status == nil {
		return ""
	}
	return *r.Status
}

// ClassificationText returns the classifier label or "" when absent.
func (r Reading) ClassificationText() string {
	if r.Classification == nil {
		return ""
	}
	return *r.Classification
}
