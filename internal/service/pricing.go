package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/bsgreeks/internal/domain/models"
	"github.com/guttosm/bsgreeks/internal/logger"
	"github.com/guttosm/bsgreeks/internal/metrics"
	"github.com/guttosm/bsgreeks/internal/pricing"
)

// selfCheck is the canonical contract priced by Ping.
var selfCheck = struct {
	row  models.InputRow
	want float64
}{
	row: models.InputRow{
		S: models.Float(100), K: models.Float(100), T: models.Float(1),
		R: models.Float(0.05), Sigma: models.Float(0.2), OptionType: string(models.Call),
	},
	want: 10.4506,
}

// BatchOptions are the caller's partitioning hints. Zero values select the
// service defaults.
type BatchOptions struct {
	ChunkSize int
	Workers   int
}

// PricingService is the business layer used by the HTTP handlers and the CLI.
type PricingService interface {
	// Calculate prices a single contract. Invalid input yields a
	// *pricing.ValidationFailure.
	Calculate(ctx context.Context, row models.InputRow) (models.PricingResult, error)
	// ProcessBatch prices a whole batch.
	ProcessBatch(ctx context.Context, batch models.Batch, opts BatchOptions) (*pricing.Result, error)
	// Ping checks the engine produces the reference price.
	Ping(ctx context.Context) error
}

// Limits bound what callers may ask for.
type Limits struct {
	DefaultChunkSize int
	DefaultWorkers   int
	MaxWorkers       int
}

type pricingService struct {
	engine  *pricing.Engine
	metrics *metrics.Metrics
	limits  Limits
}

// NewPricingService wires the engine to m (nil disables metrics).
func NewPricingService(limits Limits, m *metrics.Metrics) PricingService {
	if limits.DefaultChunkSize < 1 {
		limits.DefaultChunkSize = pricing.DefaultChunkSize
	}
	if limits.DefaultWorkers < 1 {
		limits.DefaultWorkers = pricing.DefaultWorkers
	}
	if limits.MaxWorkers < limits.DefaultWorkers {
		limits.MaxWorkers = limits.DefaultWorkers
	}

	var obs pricing.Observer
	if m != nil {
		obs = m
	}
	return &pricingService{engine: pricing.NewEngine(obs), metrics: m, limits: limits}
}

func (s *pricingService) Calculate(_ context.Context, row models.InputRow) (models.PricingResult, error) {
	return pricing.PriceInput(row)
}

func (s *pricingService) ProcessBatch(ctx context.Context, batch models.Batch, opts BatchOptions) (*pricing.Result, error) {
	chunkSize := opts.ChunkSize
	if chunkSize < 1 {
		chunkSize = s.limits.DefaultChunkSize
	}
	workers := opts.Workers
	if workers < 1 {
		workers = s.limits.DefaultWorkers
	}
	if workers > s.limits.MaxWorkers {
		logger.L().Warn().Int("requested", workers).Int("max", s.limits.MaxWorkers).Msg("workers clamped")
		workers = s.limits.MaxWorkers
	}

	start := time.Now()
	res, err := s.engine.Run(ctx, batch, chunkSize, workers)
	if s.metrics != nil {
		var ok, failed int
		if res != nil {
			ok, failed = res.Stats.Successful, res.Stats.Failed
		}
		s.metrics.ObserveBatch(batchStatus(err), ok, failed, time.Since(start))
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *pricingService) Ping(_ context.Context) error {
	got, err := pricing.PriceInput(selfCheck.row)
	if err != nil {
		return fmt.Errorf("self-check: %w", err)
	}
	if got.OptionPrice != selfCheck.want {
		return fmt.Errorf("self-check: price %v, want %v", got.OptionPrice, selfCheck.want)
	}
	return nil
}

// batchStatus maps an engine error to its metrics label.
func batchStatus(err error) string {
	var schemaErr *pricing.SchemaError
	switch {
	case err == nil:
		return metrics.StatusOK
	case errors.As(err, &schemaErr):
		return metrics.StatusSchemaError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.StatusCanceled
	default:
		return metrics.StatusChunkError
	}
}
