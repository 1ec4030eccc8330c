package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/guttosm/bsgreeks/config"
	"github.com/guttosm/bsgreeks/internal/metrics"
)

func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{Port: "0"},
		App:    config.AppSettings{Env: "test"},
		HTTP: config.HTTPConfig{
			TrustedHosts:   []string{"example.com"},
			UploadMaxMB:    1,
			RequestTimeout: time.Minute,
		},
		Pricing: config.PricingConfig{ChunkSize: 100, Workers: 2, MaxWorkers: 4},
	}
}

func withConfig(t *testing.T, cfg config.Config) {
	t.Helper()
	old := config.AppConfig
	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = old })
}

// TestInitializeApp_MetricsFailure ensures InitializeApp returns an error when
// the collectors cannot be registered.
func TestInitializeApp_MetricsFailure(t *testing.T) {
	withConfig(t, testConfig())

	reg := prometheus.NewRegistry()
	if err := metrics.New().Register(reg); err != nil {
		t.Fatalf("pre-register: %v", err)
	}
	old := registry
	registry = reg
	t.Cleanup(func() { registry = old })

	r, cleanup, err := InitializeApp()
	if err == nil || r != nil || cleanup != nil {
		t.Fatalf("expected error from InitializeApp with duplicate collectors")
	}
}

func TestInitializeApp_HappyPath(t *testing.T) {
	withConfig(t, testConfig())

	router, cleanup, err := InitializeApp()
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: %v", err)
	}
	defer cleanup()

	for _, path := range []string{"/healthz", "/readyz", "/metrics", "/api/v1/black-scholes/example"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, w.Code)
		}
	}

	// Swagger is off outside debug.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("swagger status=%d", w.Code)
	}

	// Untrusted hosts are refused.
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Host = "other.test"
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("untrusted host status=%d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(w.Body.String(), "bsgreeks_http_requests_total") {
		t.Fatalf("expected request metrics after traffic")
	}
}
