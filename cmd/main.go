package main

//
//  @title           bsgreeks API
//  @version         1.0
//  @description     Black-Scholes option pricing and Greeks, single contract and batch files.
//  @termsOfService  https://github.com/guttosm/bsgreeks
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/bsgreeks
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        black-scholes
//  @tag.description Single and batch option pricing
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"

	"github.com/guttosm/bsgreeks/config"
	_ "github.com/guttosm/bsgreeks/docs" // swagger docs
	"github.com/guttosm/bsgreeks/internal/api"
	"github.com/guttosm/bsgreeks/internal/app"
	"github.com/guttosm/bsgreeks/internal/ingestion"
	"github.com/guttosm/bsgreeks/internal/logger"
	"github.com/guttosm/bsgreeks/internal/service"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// priceOptions are the flags of the price mode.
type priceOptions struct {
	File      string
	ChunkSize int
	Workers   int
}

// runPrice loads opts.File, prices it with the configured engine limits and
// writes the batch response as JSON to out.
func runPrice(ctx context.Context, opts priceOptions, out io.Writer) error {
	if opts.File == "" {
		return errors.New("--file is required in price mode")
	}

	batch, err := ingestion.LoadFile(ctx, opts.File)
	if err != nil {
		return err
	}

	svc := service.NewPricingService(service.Limits{
		DefaultChunkSize: config.AppConfig.Pricing.ChunkSize,
		DefaultWorkers:   config.AppConfig.Pricing.Workers,
		MaxWorkers:       config.AppConfig.Pricing.MaxWorkers,
	}, nil)

	res, err := svc.ProcessBatch(ctx, batch, service.BatchOptions{ChunkSize: opts.ChunkSize, Workers: opts.Workers})
	if err != nil {
		return fmt.Errorf("price %s: %w", opts.File, err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(api.NewBatchResponse(res)); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// priceToPath runs runPrice into outPath, or stdout when outPath is empty.
// The file is closed before returning, whatever the outcome.
func priceToPath(ctx context.Context, opts priceOptions, outPath string) (err error) {
	if outPath == "" {
		return runPrice(ctx, opts, os.Stdout)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	return runPrice(ctx, opts, f)
}

// main is the entry point of the bsgreeks application.
//
// Modes (selected via --mode flag):
//   - api:   Starts the REST API (single pricing, batch upload, example file).
//   - price: Prices a local CSV/XLSX file and prints the JSON result.
//
// Flags:
//   - --mode:       Execution mode ("api" or "price"). Default: "api".
//   - --port:       Port for the API server. Defaults to value from config (SERVER_PORT).
//   - --file:       Batch file for price mode.
//   - --chunk-size: Rows per chunk for price mode (0 = configured default).
//   - --workers:    Worker goroutines for price mode (0 = configured default).
//   - --out:        Output path for price mode. Default: stdout.
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api or price")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	file := flag.String("file", "", "CSV or XLSX file to price (price mode)")
	chunkSize := flag.Int("chunk-size", 0, "Rows per chunk (0 = configured default)")
	workers := flag.Int("workers", 0, "Worker goroutines (0 = configured default)")
	outPath := flag.String("out", "", "Write JSON result here instead of stdout (price mode)")
	flag.Parse()

	switch *mode {
	case "api":
		// Initialize JSON logger
		logger.Init()
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	case "price":
		// stdout carries the result
		logger.InitWithWriter(os.Stderr)

		opts := priceOptions{File: *file, ChunkSize: *chunkSize, Workers: *workers}
		if err := priceToPath(ctx, opts, *outPath); err != nil {
			logger.L().Fatal().Err(err).Msg("pricing failed")
		}
		logger.L().Info().Str("file", *file).Msg("pricing completed successfully")

	default:
		logger.Init()
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
