package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"aquabot_telemetry/internal/logger"
	"aquabot_telemetry/internal/models"
)

const (
	DefaultInterval = 500 * time.Millisecond
	requestTimeout  = 5 * time.Second
	maxErrorBody    = 512
)

// Poller reads the recency window the way the dashboard does and logs the latest reading.
type Poller struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

func NewPoller(baseURL string, log *logger.Logger) *Poller {
	if log == nil {
		log = logger.Nop()
	}
	return &Poller{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
		log:     log,
	}
}

// Fetch returns the window oldest first.
func (p *Poller) Fetch(ctx context.Context) ([]models.StoredReading, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/data", nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get recent readings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("get recent readings: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var readings []models.StoredReading
	if err := json.NewDecoder(resp.Body).Decode(&readings); err != nil {
		return nil, fmt.Errorf("decode recent readings: %w", err)
	}
	for i, j := 0, len(readings)-1; i < j; i, j = i+1, j-1 {
		readings[i], readings[j] = readings[j], readings[i]
	}
	return readings, nil
}

// Run polls every interval until ctx is canceled. Fetch errors are logged and polling continues.
func (p *Poller) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	var lastID string
	for {
		readings, err := p.Fetch(ctx)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return
			}
			p.log.Warnw("watch_fetch_failed", "err", err)
		case len(readings) == 0:
			p.log.Debugw("watch_no_readings")
		default:
			current := readings[len(readings)-1]
			if current.ID != lastID {
				lastID = current.ID
				p.report(current)
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

func (p *Poller) report(r models.StoredReading) {
	kv := []interface{}{
		"id", r.ID,
		"status", r.StatusText(),
		"alert", r.Alert,
		"obstacle", models.ObstacleDetected(r.Distance),
		"classification", r.ClassificationText(),
		"timestamp", r.Timestamp,
	}
	if r.Distance != nil {
		kv = append(kv, "distance_cm", *r.Distance)
	}
	if r.PH != nil {
		kv = append(kv, "ph", *r.PH)
	}
	p.log.Infow("watch_reading", kv...)
}
