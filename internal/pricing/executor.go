package pricing

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/bsgreeks/internal/domain/models"
	"github.com/guttosm/bsgreeks/internal/logger"
)

// chunkProcessor is an indirection over processChunk; tests swap it to
// simulate a crashing worker.
var chunkProcessor = processChunk

// execute runs every chunk on at most workers goroutines and returns the
// per-chunk results indexed by chunk. Each goroutine writes only its own
// slot, so no state is shared between chunks.
//
// The first failure cancels chunks that have not started yet and is
// returned; a panic inside a chunk becomes a *ChunkError naming its range.
func execute(ctx context.Context, rows []models.InputRow, chunks []Chunk, workers int, obs Observer) ([]chunkResult, error) {
	results := make([]chunkResult, len(chunks))

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, workers)

	stopped := false
	for _, c := range chunks {
		if gctx.Err() != nil {
			stopped = true
			break
		}
		sem <- struct{}{}

		g.Go(func() (err error) {
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					logger.L().Error().Int("chunk", c.Index).Int("start", c.Start).Int("end", c.End).
						Str("panic", fmt.Sprintf("%v", r)).Msg("chunk failed")
					err = &ChunkError{Start: c.Start, End: c.End, Err: fmt.Errorf("worker panic: %v", r)}
				}
			}()

			if err := gctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			results[c.Index] = chunkProcessor(rows[c.Start:c.End], c.Start)
			elapsed := time.Since(start)

			obs.ObserveChunk(c.Len(), elapsed)
			logger.L().Debug().Int("chunk", c.Index).Int("rows", c.Len()).Dur("elapsed", elapsed).Msg("chunk done")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A canceled parent can stop dispatch without any goroutine reporting
	// it. Once every chunk has run, the result stands.
	if err := ctx.Err(); stopped && err != nil {
		return nil, err
	}

	return results, nil
}
