package config

import (
	"os"
	"os/exec"
	"reflect"
	"testing"
	"time"
)

var configKeys = []string{
	"SERVER_PORT", "APP_ENV", "APP_DEBUG", "CORS_ALLOWED_ORIGINS", "TRUSTED_HOSTS",
	"UPLOAD_MAX_MB", "REQUEST_TIMEOUT", "RATE_LIMIT_PER_MINUTE",
	"PRICING_CHUNK_SIZE", "PRICING_WORKERS", "PRICING_MAX_WORKERS",
}

// TestLoadConfig_Defaults verifies that defaults are loaded.
func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range configKeys {
		_ = os.Unsetenv(k)
	}

	LoadConfig()

	if AppConfig.Server.Port != "8080" {
		t.Fatalf("expected default SERVER_PORT=8080, got %q", AppConfig.Server.Port)
	}
	if AppConfig.App.Env != "development" || !AppConfig.App.Debug {
		t.Fatalf("unexpected app defaults: %+v", AppConfig.App)
	}
	if AppConfig.Pricing != (PricingConfig{ChunkSize: 20000, Workers: 4, MaxWorkers: 16}) {
		t.Fatalf("unexpected pricing defaults: %+v", AppConfig.Pricing)
	}
	if !reflect.DeepEqual(AppConfig.HTTP.AllowedOrigins, defaultOrigins) {
		t.Fatalf("unexpected origins: %v", AppConfig.HTTP.AllowedOrigins)
	}
	if !reflect.DeepEqual(AppConfig.HTTP.TrustedHosts, []string{"localhost", "127.0.0.1"}) {
		t.Fatalf("unexpected hosts: %v", AppConfig.HTTP.TrustedHosts)
	}
	if AppConfig.HTTP.UploadMaxMB != 64 || AppConfig.HTTP.RequestTimeout != time.Minute || AppConfig.HTTP.RateLimitPerMinute != 60 {
		t.Fatalf("unexpected http defaults: %+v", AppConfig.HTTP)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APP_DEBUG", "false")
	t.Setenv("TRUSTED_HOSTS", " api.example.com , ,internal ")
	t.Setenv("PRICING_WORKERS", "8")
	t.Setenv("REQUEST_TIMEOUT", "5s")

	LoadConfig()

	if AppConfig.App.Debug {
		t.Fatalf("expected debug off")
	}
	if !reflect.DeepEqual(AppConfig.HTTP.TrustedHosts, []string{"api.example.com", "internal"}) {
		t.Fatalf("unexpected hosts: %v", AppConfig.HTTP.TrustedHosts)
	}
	if AppConfig.Pricing.Workers != 8 || AppConfig.HTTP.RequestTimeout != 5*time.Second {
		t.Fatalf("overrides not applied: %+v %+v", AppConfig.Pricing, AppConfig.HTTP)
	}
}

func TestSplitList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a, b,,c ", []string{"a", "b", "c"}},
	}
	for _, tc := range cases {
		if got := splitList(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("splitList(%q)=%v want %v", tc.in, got, tc.want)
		}
	}
}

// TestValidateConfig_Fatal uses a subprocess to assert that validateConfig triggers a fatal exit
// when required fields are missing.
func TestValidateConfig_Fatal(t *testing.T) {
	if os.Getenv("RUN_VALIDATE_FATAL") == "1" {
		AppConfig = Config{}
		validateConfig()
		t.Fatalf("validateConfig should have exited the process")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run", "TestValidateConfig_Fatal")
	cmd.Env = append(os.Environ(), "RUN_VALIDATE_FATAL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected process to exit with error, got nil")
	}
}
