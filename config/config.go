package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, HTTP policy, and pricing engine limits.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	APP_ENV=production
//	APP_DEBUG=false
//	CORS_ALLOWED_ORIGINS=https://app.example.com
//	TRUSTED_HOSTS=api.example.com
//	PRICING_CHUNK_SIZE=20000
//	PRICING_WORKERS=4
//	PRICING_MAX_WORKERS=16
type Config struct {
	Server  ServerConfig  // HTTP server configuration
	App     AppSettings   // Environment name and debug switch
	HTTP    HTTPConfig    // CORS, trusted hosts, limits
	Pricing PricingConfig // Batch engine defaults and caps
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// AppSettings describes the running environment.
//
// Debug enables Swagger UI and gin debug mode and turns the trusted-host
// check off.
type AppSettings struct {
	Env   string
	Debug bool
}

// HTTPConfig groups request policy.
type HTTPConfig struct {
	AllowedOrigins     []string
	TrustedHosts       []string
	UploadMaxMB        int64
	RequestTimeout     time.Duration
	RateLimitPerMinute int
}

// PricingConfig holds the engine partitioning defaults.
type PricingConfig struct {
	ChunkSize  int
	Workers    int
	MaxWorkers int
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:4200",
	"http://localhost:8080",
	"http://127.0.0.1:4200",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:8080",
}

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// List values (origins, hosts) are comma separated.
//
// Fatal exit:
//   - If required variables are missing or out of range, validateConfig() terminates
//     the app with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_DEBUG", true)

	viper.SetDefault("CORS_ALLOWED_ORIGINS", strings.Join(defaultOrigins, ","))
	viper.SetDefault("TRUSTED_HOSTS", "localhost,127.0.0.1")
	viper.SetDefault("UPLOAD_MAX_MB", 64)
	viper.SetDefault("REQUEST_TIMEOUT", "60s")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	viper.SetDefault("PRICING_CHUNK_SIZE", 20000)
	viper.SetDefault("PRICING_WORKERS", 4)
	viper.SetDefault("PRICING_MAX_WORKERS", 16)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		App: AppSettings{
			Env:   viper.GetString("APP_ENV"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		HTTP: HTTPConfig{
			AllowedOrigins:     splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
			TrustedHosts:       splitList(viper.GetString("TRUSTED_HOSTS")),
			UploadMaxMB:        viper.GetInt64("UPLOAD_MAX_MB"),
			RequestTimeout:     viper.GetDuration("REQUEST_TIMEOUT"),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Pricing: PricingConfig{
			ChunkSize:  viper.GetInt("PRICING_CHUNK_SIZE"),
			Workers:    viper.GetInt("PRICING_WORKERS"),
			MaxWorkers: viper.GetInt("PRICING_MAX_WORKERS"),
		},
	}

	validateConfig()
}

// splitList turns "a, b,,c" into [a b c].
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// validateConfig ensures required variables are present and sane and
// terminates the application otherwise.
//
// Behavior:
//   - Checks each critical field of AppConfig.
//   - Collects the offending variable names in a slice.
//   - If any, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	var invalid []string

	if AppConfig.Server.Port == "" {
		invalid = append(invalid, "SERVER_PORT")
	}
	if AppConfig.Pricing.ChunkSize < 1 {
		invalid = append(invalid, "PRICING_CHUNK_SIZE")
	}
	if AppConfig.Pricing.Workers < 1 {
		invalid = append(invalid, "PRICING_WORKERS")
	}
	if AppConfig.Pricing.MaxWorkers < AppConfig.Pricing.Workers {
		invalid = append(invalid, "PRICING_MAX_WORKERS")
	}
	if AppConfig.HTTP.UploadMaxMB < 1 {
		invalid = append(invalid, "UPLOAD_MAX_MB")
	}
	if AppConfig.HTTP.RequestTimeout < 0 {
		invalid = append(invalid, "REQUEST_TIMEOUT")
	}

	if len(invalid) > 0 {
		log.Fatalf("❌ Missing or invalid environment variables: %v\n", invalid)
	}
}
