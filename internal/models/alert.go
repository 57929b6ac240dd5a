package models

import "strings"

// Alert is the navigation directive shown on the dashboard.
type Alert string

const (
	AlertForward   Alert = "forward"
	AlertTurnLeft  Alert = "turn_left"
	AlertTurnRight Alert = "turn_right"
	AlertObstacle  Alert = "obstacle"
)

// Valid reports whether a is one of the known alerts.
func (a Alert) Valid() bool {
	switch a {
	case AlertForward, AlertTurnLeft, AlertTurnRight, AlertObstacle:
		return true
	}
	return false
}

// AlertFromStatus maps the firmware's free-text status onto an Alert.
// Checks run in order: Right, Left, Obstacle. "Obstacle Left" is therefore a left turn.
func AlertFromStatus(status string) Alert {
	switch {
	case strings.Contains(status, "Right"):
		return AlertTurnRight
	case strings.Contains(status, "Left"):
		return AlertTurnLeft
	case strings.Contains(status, "Obstacle"):
		return AlertObstacle
	default:
		return AlertForward
	}
}

// StatusReportsObstacle is true for any status naming an obstacle, including
// "Obstacle Left" which AlertFromStatus folds into a left turn.
func StatusReportsObstacle(status string) bool {
	return strings.Contains(status, "Obstacle")
}

// ResolveAlert keeps a valid alert sent by the device, otherwise derives one from status.
func (r Reading) ResolveAlert() Alert {
	if r.Alert.Valid() {
		return r.Alert
	}
	return AlertFromStatus(r.StatusText())
}

// Highlight is the colour family the dashboard uses for a classification.
type Highlight string

const (
	HighlightPlastic Highlight = "plastic"
	HighlightAlgae   Highlight = "algae"
	HighlightNeutral Highlight = "neutral"
)

// HighlightFor picks the highlight for a classifier label.
func HighlightFor(classification string) Highlight {
	switch {
	case strings.Contains(classification, "Plastic"):
		return HighlightPlastic
	case strings.Contains(classification, "Algae"):
		return HighlightAlgae
	default:
		return HighlightNeutral
	}
}
