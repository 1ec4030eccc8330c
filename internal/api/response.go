package api

import (
	"github.com/guttosm/bsgreeks/internal/domain/dto"
	"github.com/guttosm/bsgreeks/internal/pricing"
)

// NewBatchResponse renders an engine result as the /process body. The CLI
// prints the same shape.
func NewBatchResponse(res *pricing.Result) dto.BatchResponse {
	rows := make([]dto.RowResult, len(res.Outcomes))
	for i, o := range res.Outcomes {
		rows[i] = dto.NewRowResult(o)
	}

	sum := pricing.Summarize(res.Stats)
	return dto.BatchResponse{
		TotalRows:              res.Stats.Total(),
		SuccessfulCalculations: res.Stats.Successful,
		FailedCalculations:     res.Stats.Failed,
		Results:                rows,
		ProcessingSummary: dto.ProcessingSummary{
			AverageOptionPrice: sum.AveragePrice,
			MinOptionPrice:     sum.MinPrice,
			MaxOptionPrice:     sum.MaxPrice,
			TotalOptionValue:   sum.TotalValue,
		},
		ProcessingInfo: dto.ProcessingInfo{
			NumChunks: res.Chunks,
			Workers:   res.Workers,
			ChunkSize: res.ChunkSize,
		},
	}
}
