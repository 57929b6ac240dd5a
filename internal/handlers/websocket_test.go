package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"aquabot_telemetry/internal/models"
	"aquabot_telemetry/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil, Config{})

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", 500 * time.Millisecond},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=20s", 500 * time.Millisecond},
		{"interval_ms_too_large", "/ws?interval_ms=20000", 500 * time.Millisecond},
		{"interval_invalid_string", "/ws?interval=bogus", 500 * time.Millisecond},
		{"interval_ms_invalid", "/ws?interval_ms=NaN", 500 * time.Millisecond},
		{"both_present_interval_wins", "/ws?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

func TestParseInterval_ConfiguredDefault(t *testing.T) {
	h := NewHandler(&service.Service{}, nil, Config{StreamInterval: 2 * time.Second})

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/ws", nil)
	if got := h.parseInterval(c); got != 2*time.Second {
		t.Fatalf("got %v, want 2s", got)
	}
}

// --- websocket integration tests ---

type envelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func dialStream(t *testing.T, tel *mockTelemetry) *websocket.Conn {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(&service.Service{Telemetry: tel}, nil, Config{})
	r.GET("/ws", h.wsConnect)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	q := u.Query()
	q.Set("interval_ms", "20") // fast ticks for the test
	u.RawQuery = q.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	return env
}

func TestWebSocket_DashboardStream_InitialAndPeriodic(t *testing.T) {
	current := models.StoredReading{ID: "7", Alert: models.AlertTurnRight}
	tel := &mockTelemetry{dashResp: models.Dashboard{
		Current: &current,
		History: []models.StoredReading{current},
		Alert:   models.AlertTurnRight,
	}}
	conn := dialStream(t, tel)

	env := readEnvelope(t, conn)
	if env.Type != "dashboard" || len(env.Data) == 0 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var view models.Dashboard
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("unmarshal dashboard: %v", err)
	}
	if view.Current == nil || view.Current.ID != "7" || view.Alert != models.AlertTurnRight {
		t.Fatalf("unexpected dashboard: %+v", view)
	}

	if env = readEnvelope(t, conn); env.Type != "dashboard" {
		t.Fatalf("expected type=dashboard, got %+v", env)
	}
}

func TestWebSocket_StoreErrorKeepsStreaming(t *testing.T) {
	tel := &mockTelemetry{dashErr: errStoreUnavailable("recent")}
	conn := dialStream(t, tel)

	env := readEnvelope(t, conn)
	if env.Type != "error" || env.Error != errStoreDown {
		t.Fatalf("bad error envelope: %+v", env)
	}

	tel.mu.Lock()
	tel.dashErr = nil
	tel.mu.Unlock()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if env = readEnvelope(t, conn); env.Type == "dashboard" {
			return
		}
	}
	t.Fatalf("stream did not recover after store came back")
}
