package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"NiftyPulse/internal/collector"
	"NiftyPulse/internal/market"
	"NiftyPulse/internal/model"
	"NiftyPulse/internal/recorder"
	"NiftyPulse/internal/refresh"
	"NiftyPulse/internal/render"
	"NiftyPulse/internal/snapshot"
)

// ctxSensitiveFetcher fails whenever the caller's context is already done,
// so a test can tell whether a refresh inherited a cancelled context.
type ctxSensitiveFetcher struct {
	inner collector.Fetcher
}

func (f *ctxSensitiveFetcher) Name() string { return "ctx-sensitive" }

func (f *ctxSensitiveFetcher) FetchSeries(ctx context.Context, symbol string, tf model.Timeframe, start, end time.Time) (model.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return model.PriceSeries{Symbol: symbol, Timeframe: tf}, err
	}
	return f.inner.FetchSeries(ctx, symbol, tf, start, end)
}

func newTestRouter(t *testing.T, fetcher collector.Fetcher) (*gin.Engine, *snapshot.Store) {
	t.Helper()
	store := snapshot.NewStore()
	cal := market.NewNSECalendar()
	orch := refresh.NewOrchestrator(fetcher, store, nil, render.NewNoopRenderer(), recorder.NewNoopRecorder(), cal, "NIFTY50")
	router, err := NewServer(store, orch, "").routes()
	if err != nil {
		t.Fatalf("build routes: %v", err)
	}
	return router, store
}

func TestHandleSnapshot_Sentinel(t *testing.T) {
	router, _ := newTestRouter(t, &collector.MockFetcher{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/snapshot", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Initialized bool   `json:"initialized"`
		LastUpdated string `json:"last_updated"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Initialized {
		t.Error("expected initialized=false before any refresh")
	}
	if body.LastUpdated != "Not updated yet" {
		t.Errorf("expected sentinel last_updated text, got %q", body.LastUpdated)
	}
}

// A client that disconnects right after triggering a refresh must not abort
// the cycle: the refresh runs on a detached context.
func TestHandleRefresh_SurvivesClientDisconnect(t *testing.T) {
	router, store := newTestRouter(t, &ctxSensitiveFetcher{inner: &collector.MockFetcher{Price: 21000}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil).WithContext(ctx)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body %s", w.Code, w.Body.String())
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Status != string(refresh.StatusUpdated) {
		t.Errorf("expected %s, got %s", refresh.StatusUpdated, body.Status)
	}
	if !store.Read().Initialized() {
		t.Error("expected an initialized snapshot despite the disconnected client")
	}
}

func TestHandleRefresh_ColdStartFailure(t *testing.T) {
	router, _ := newTestRouter(t, &collector.MockFetcher{Err: errors.New("provider down")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 on cold start failure, got %d", w.Code)
	}
}
