package models

// Dashboard is the server-side view of the recency window, oldest reading first.
// Obstacle comes from the radar distance, ObstacleStatus from the status text.
type Dashboard struct {
	Current        *StoredReading  `json:"current"`
	History        []StoredReading `json:"history"`
	Alert          Alert           `json:"alert"`
	Obstacle       bool            `json:"obstacle"`
	ObstacleStatus bool            `json:"obstacle_status"`
	Highlight      Highlight       `json:"highlight"`
}
