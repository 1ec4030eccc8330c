package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegister_DuplicateFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := New().Register(reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := New().Register(reg); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestObserveBatch(t *testing.T) {
	m := New()
	if err := m.Register(nil); err != nil {
		t.Fatalf("register: %v", err)
	}

	m.ObserveBatch(StatusOK, 7, 3, 10*time.Millisecond)
	m.ObserveBatch(StatusChunkError, 5, 5, time.Millisecond)

	if got := testutil.ToFloat64(m.RowsPriced.WithLabelValues(OutcomeSuccess)); got != 7 {
		t.Fatalf("success=%v", got)
	}
	if got := testutil.ToFloat64(m.RowsPriced.WithLabelValues(OutcomeFailed)); got != 3 {
		t.Fatalf("failed=%v", got)
	}
	if got := testutil.ToFloat64(m.BatchesTotal.WithLabelValues(StatusChunkError)); got != 1 {
		t.Fatalf("chunk error batches=%v", got)
	}
	if got := testutil.CollectAndCount(m.BatchDuration); got != 1 {
		t.Fatalf("batch histogram series=%d", got)
	}
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	if err := m.Register(nil); err != nil {
		t.Fatalf("register: %v", err)
	}
	m.ObserveChunk(100, 2*time.Millisecond)
	m.ObserveHTTP("POST", "/api/v1/black-scholes/process", 200, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{
		"bsgreeks_chunk_duration_seconds_count 1",
		`bsgreeks_http_requests_total{method="POST",path="/api/v1/black-scholes/process",status="200"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in:\n%s", want, body)
		}
	}
}
