package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type fakePinger struct {
	mu        sync.Mutex
	err       error
	pingCount int
}

func (f *fakePinger) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingCount++
	return f.err
}

type slowPinger struct {
	delay time.Duration
}

func (s slowPinger) Ping(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.delay):
		return nil
	}
}

func healthRouter(h *HealthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", h.Health)
	r.GET("/livez", h.Liveness)
	r.GET("/readyz", h.Readiness)
	return r
}

type readiness struct {
	Ready  bool          `json:"ready"`
	Checks []CheckResult `json:"checks"`
}

func getReadiness(t *testing.T, r *gin.Engine) (int, readiness) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	var body readiness
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	return w.Code, body
}

func TestHealth(t *testing.T) {
	h := NewHealthHandler()
	h.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 6_000_000, time.FixedZone("X", -7200)) }
	r := healthRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "OK" {
		t.Fatalf("status = %v", body["status"])
	}
	if body["timestamp"] != "2025-01-02T05:04:05.006Z" {
		t.Fatalf("timestamp = %v", body["timestamp"])
	}
	if len(body) != 2 {
		t.Fatalf("unexpected fields: %v", body)
	}
}

func TestHealth_TimestampIsCurrent(t *testing.T) {
	r := healthRouter(NewHealthHandler())
	before := time.Now().UTC().Truncate(time.Millisecond)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, body["timestamp"])
	if err != nil {
		t.Fatalf("timestamp not ISO-8601: %v", err)
	}
	if ts.Before(before) || ts.After(time.Now().Add(time.Second)) {
		t.Fatalf("timestamp %v out of range", ts)
	}
}

func TestLiveness_OK(t *testing.T) {
	pg := &fakePinger{err: errors.New("down")}
	r := healthRouter(NewHealthHandler(Check{Name: "postgres", Pinger: pg}))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/livez", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if w.Body.String() != `{"status":"alive"}` {
		t.Fatalf("body = %s", w.Body.String())
	}
	if pg.pingCount != 0 {
		t.Fatalf("liveness must not ping dependencies")
	}
}

func TestReadiness_AllUp(t *testing.T) {
	r := healthRouter(NewHealthHandler(
		Check{Name: "mongo", Pinger: &fakePinger{}},
		Check{Name: "redis", Pinger: &fakePinger{}},
	))
	code, body := getReadiness(t, r)
	if code != http.StatusOK || !body.Ready {
		t.Fatalf("want ready 200, got %d %+v", code, body)
	}
	if len(body.Checks) != 2 || body.Checks[0].Name != "mongo" || body.Checks[1].Status != "up" {
		t.Fatalf("checks = %+v", body.Checks)
	}
}

func TestReadiness_FailDeps(t *testing.T) {
	r := healthRouter(NewHealthHandler(
		Check{Name: "postgres", Pinger: &fakePinger{err: errors.New("connection refused")}},
		Check{Name: "redis", Pinger: &fakePinger{}},
	))
	code, body := getReadiness(t, r)
	if code != http.StatusServiceUnavailable || body.Ready {
		t.Fatalf("want 503 not ready, got %d %+v", code, body)
	}
	if body.Checks[0].Status != "down" || body.Checks[0].Error != "connection refused" {
		t.Fatalf("postgres check = %+v", body.Checks[0])
	}
	if body.Checks[1].Status != "up" || body.Checks[1].Error != "" {
		t.Fatalf("redis check = %+v", body.Checks[1])
	}
}

func TestReadiness_Timeout(t *testing.T) {
	h := NewHealthHandler(Check{Name: "mongo", Pinger: slowPinger{delay: time.Second}})
	h.pingTimeout = 20 * time.Millisecond
	start := time.Now()
	code, body := getReadiness(t, healthRouter(h))
	if code != http.StatusServiceUnavailable {
		t.Fatalf("want 503, got %d", code)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Fatalf("readiness did not honour ping timeout")
	}
	if body.Checks[0].Error == "" {
		t.Fatalf("expected timeout error in check")
	}
}

func TestReadiness_NoDeps(t *testing.T) {
	code, body := getReadiness(t, healthRouter(NewHealthHandler()))
	if code != http.StatusOK || !body.Ready || len(body.Checks) != 0 {
		t.Fatalf("got %d %+v", code, body)
	}
}

func TestReadiness_ConcurrentRequests(t *testing.T) {
	p := &fakePinger{}
	r := healthRouter(NewHealthHandler(Check{Name: "mongo", Pinger: p}))
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
			if w.Code != http.StatusOK {
				t.Errorf("want 200, got %d", w.Code)
			}
		}()
	}
	wg.Wait()
	if p.pingCount != 10 {
		t.Fatalf("pingCount = %d", p.pingCount)
	}
}
