package pricing

import "github.com/guttosm/bsgreeks/internal/domain/models"

// merge concatenates chunk outcomes in chunk order, which is row order since
// partitions are contiguous, and reduces the chunk stats.
func merge(results []chunkResult, total int) ([]models.RowOutcome, models.BatchStats) {
	outcomes := make([]models.RowOutcome, 0, total)
	parts := make([]models.BatchStats, 0, len(results))
	for _, r := range results {
		outcomes = append(outcomes, r.outcomes...)
		parts = append(parts, r.stats)
	}
	return outcomes, MergeStats(parts...)
}

// MergeStats reduces partial stats. The result does not depend on the order
// of parts, apart from floating-point summation effects on Sum.
func MergeStats(parts ...models.BatchStats) models.BatchStats {
	var acc models.BatchStats
	for _, p := range parts {
		acc = acc.Combine(p)
	}
	return acc
}

// Summary is the rounded, publishable form of BatchStats.
type Summary struct {
	AveragePrice float64
	MinPrice     float64
	MaxPrice     float64
	TotalValue   float64
}

// Summarize rounds the aggregate figures of s. Every field is 0 when no
// row was priced.
func Summarize(s models.BatchStats) Summary {
	if s.Successful == 0 {
		return Summary{}
	}
	return Summary{
		AveragePrice: Round(s.Average()),
		MinPrice:     Round(s.Min),
		MaxPrice:     Round(s.Max),
		TotalValue:   Round(s.Sum),
	}
}
