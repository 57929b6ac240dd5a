package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveRequest("GET", "/api/data", 200, time.Millisecond)
	m.ReadingIngested()
	m.PersistenceError("append")
	m.CacheHit()
	m.CacheMiss()
}

func TestCountersAndExposition(t *testing.T) {
	m := New()

	m.ReadingIngested()
	m.ReadingIngested()
	m.PersistenceError("recent")
	m.ObserveRequest(http.MethodPost, "/api/data", http.StatusOK, 5*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	if got := testutil.ToFloat64(m.readingsIngested); got != 2 {
		t.Fatalf("readings ingested = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.persistenceErrors.WithLabelValues("recent")); got != 1 {
		t.Fatalf("persistence errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Fatalf("unmatched route counter = %v, want 1", got)
	}

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "aquabot_readings_ingested_total 2") {
		t.Fatalf("exposition missing counter:\n%s", w.Body.String())
	}
}
