package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("failed to read metrics body: %v", err)
	}
	return string(body)
}

func TestMetrics_Exposition(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.ObserveRPC("/sneakyelves.v1.FeedService/GetFeed", "ok", 15*time.Millisecond)
	m.FeedEvent("PURCHASED", OutcomeDelivered)
	m.FeedEvent("PURCHASED", OutcomeDropped)
	m.FeedRowsWritten(3)
	m.FeedRowsRevoked(2)
	m.FeedQueued(1)

	body := scrape(t, m)

	wants := []string{
		`sneakyelves_rpc_requests_total{code="ok",procedure="/sneakyelves.v1.FeedService/GetFeed"} 1`,
		`sneakyelves_rpc_duration_seconds_count{procedure="/sneakyelves.v1.FeedService/GetFeed"} 1`,
		`sneakyelves_feed_events_total{outcome="delivered",type="PURCHASED"} 1`,
		`sneakyelves_feed_events_total{outcome="dropped",type="PURCHASED"} 1`,
		`sneakyelves_feed_rows_written_total 3`,
		`sneakyelves_feed_rows_revoked_total 2`,
		`sneakyelves_feed_queue_depth 1`,
	}
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestMetrics_IgnoresNonPositiveCounts(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())
	m.FeedRowsWritten(0)
	m.FeedRowsRevoked(-1)

	body := scrape(t, m)
	if !strings.Contains(body, "sneakyelves_feed_rows_written_total 0") {
		t.Error("rows written should stay at 0")
	}
	if !strings.Contains(body, "sneakyelves_feed_rows_revoked_total 0") {
		t.Error("rows revoked should stay at 0")
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	// None of these may panic.
	m.ObserveRPC("/x", "ok", time.Second)
	m.FeedEvent("PURCHASED", OutcomeFailed)
	m.FeedRowsWritten(1)
	m.FeedRowsRevoked(1)
	m.FeedQueued(1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 404 {
		t.Errorf("nil metrics handler status = %d, want 404", rec.Code)
	}
}
