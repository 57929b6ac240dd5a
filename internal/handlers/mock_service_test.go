package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"aquabot_telemetry/internal/models"
	"aquabot_telemetry/internal/repository"
	"aquabot_telemetry/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockTelemetry struct {
	mu sync.Mutex

	ingestResp  models.StoredReading
	ingestErr   error
	ingested    []models.Reading
	recentResp  []models.StoredReading
	recentErr   error
	recentCalls int
	dashResp    models.Dashboard
	dashErr     error
	dashCalls   int
	pingErr     error
}

func (m *mockTelemetry) Ingest(ctx context.Context, r models.Reading) (models.StoredReading, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ingestErr != nil {
		return models.StoredReading{}, m.ingestErr
	}
	m.ingested = append(m.ingested, r)
	return m.ingestResp, nil
}

func (m *mockTelemetry) Recent(ctx context.Context) ([]models.StoredReading, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recentCalls++
	return m.recentResp, m.recentErr
}

func (m *mockTelemetry) Dashboard(ctx context.Context) (models.Dashboard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dashCalls++
	return m.dashResp, m.dashErr
}

func (m *mockTelemetry) Ping(ctx context.Context) error { return m.pingErr }

func (m *mockTelemetry) ingestedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ingested)
}

// ---- Shared Test Helpers ----

func errStoreUnavailable(op string) error {
	return &repository.PersistenceError{Op: op, Err: errors.New("unable to open database file")}
}

func newTestRouter(s *service.Service) http.Handler {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, Config{})
	return h.InitRoutes()
}
