// Package pricing is the batch Black-Scholes engine: row validation, the
// vectorized kernel, chunk partitioning, the parallel chunk executor and
// the result merger.
package pricing

import (
	"context"
	"time"

	"github.com/guttosm/bsgreeks/internal/domain/models"
	"github.com/guttosm/bsgreeks/internal/logger"
)

const (
	DefaultChunkSize = 20000
	DefaultWorkers   = 4
)

// Observer receives timing of pricing work. Implementations must be safe for
// concurrent use since chunks report from their own goroutines.
type Observer interface {
	ObserveChunk(rows int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveChunk(int, time.Duration) {}

// Result is the merged answer for a batch plus how it was executed.
type Result struct {
	Outcomes  []models.RowOutcome
	Stats     models.BatchStats
	Chunks    int
	ChunkSize int
	Workers   int
}

// Engine prices batches. The zero value is ready to use.
type Engine struct {
	Observer Observer
}

// NewEngine returns an Engine reporting to obs (nil for none).
func NewEngine(obs Observer) *Engine {
	return &Engine{Observer: obs}
}

// Run validates the batch schema, partitions the rows, prices every chunk on
// a pool of workers and merges the results in row order.
//
// chunkSize or workers below 1 fall back to DefaultChunkSize and
// DefaultWorkers; workers is capped at the number of chunks. Errors are
// *SchemaError (before any work), *ChunkError, or the context error.
func (e *Engine) Run(ctx context.Context, batch models.Batch, chunkSize, workers int) (*Result, error) {
	if missing := batch.MissingColumns(); len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}
	if workers < 1 {
		workers = DefaultWorkers
	}

	chunks := Partition(len(batch.Rows), chunkSize)
	if workers > len(chunks) {
		workers = max(len(chunks), 1)
	}

	obs := e.Observer
	if obs == nil {
		obs = nopObserver{}
	}

	start := time.Now()
	logger.L().Info().Int("rows", len(batch.Rows)).Int("chunks", len(chunks)).Int("chunk_size", chunkSize).
		Int("workers", workers).Msg("batch start")

	results, err := execute(ctx, batch.Rows, chunks, workers, obs)
	if err != nil {
		logger.L().Error().Int("rows", len(batch.Rows)).Dur("elapsed", time.Since(start)).Err(err).Msg("batch failed")
		return nil, err
	}

	outcomes, stats := merge(results, len(batch.Rows))

	logger.L().Info().Int("rows", len(outcomes)).Int("successful", stats.Successful).Int("failed", stats.Failed).
		Dur("elapsed", time.Since(start)).Msg("batch done")

	return &Result{
		Outcomes:  outcomes,
		Stats:     stats,
		Chunks:    len(chunks),
		ChunkSize: chunkSize,
		Workers:   workers,
	}, nil
}

// PriceBatch prices batch with the given partitioning and returns the row
// outcomes in input order together with the global stats.
func PriceBatch(ctx context.Context, batch models.Batch, chunkSize, workers int) ([]models.RowOutcome, models.BatchStats, error) {
	res, err := (&Engine{}).Run(ctx, batch, chunkSize, workers)
	if err != nil {
		return nil, models.BatchStats{}, err
	}
	return res.Outcomes, res.Stats, nil
}

// PriceRow prices a single contract through the same validator and kernel
// as the batch path. NaN or infinite inputs count as missing. An invalid
// row yields a *ValidationFailure.
func PriceRow(s, k, t, r, sigma float64, optionType string) (models.PricingResult, error) {
	row := models.InputRow{
		S:          models.Float(s),
		K:          models.Float(k),
		T:          models.Float(t),
		R:          models.Float(r),
		Sigma:      models.Float(sigma),
		OptionType: optionType,
	}
	return PriceInput(row)
}

// PriceInput is PriceRow for an already-built row, which may carry missing
// values.
func PriceInput(row models.InputRow) (models.PricingResult, error) {
	res := processChunk([]models.InputRow{row}, 0)
	o := res.outcomes[0]
	if !o.OK() {
		return models.PricingResult{}, &ValidationFailure{Reasons: o.Reasons}
	}
	return *o.Result, nil
}
