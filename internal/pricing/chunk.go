package pricing

import "github.com/guttosm/bsgreeks/internal/domain/models"

// chunkResult is everything a worker hands back for one chunk. It is owned
// by the merger once returned.
type chunkResult struct {
	outcomes []models.RowOutcome
	stats    models.BatchStats
}

// processChunk runs validator, kernel and per-chunk aggregation over rows.
// offset is the batch index of rows[0]. It touches nothing but its inputs.
func processChunk(rows []models.InputRow, offset int) chunkResult {
	cols := ColumnsOf(rows)
	v := Validate(cols)

	// Gather the valid subset into contiguous buffers.
	m := v.ValidCount()
	in := Inputs{
		S:     make([]float64, 0, m),
		K:     make([]float64, 0, m),
		T:     make([]float64, 0, m),
		R:     make([]float64, 0, m),
		Sigma: make([]float64, 0, m),
		IsPut: make([]bool, 0, m),
	}
	for i, ok := range v.Valid {
		if !ok {
			continue
		}
		in.S = append(in.S, cols.S[i].Float64)
		in.K = append(in.K, cols.K[i].Float64)
		in.T = append(in.T, cols.T[i].Float64)
		in.R = append(in.R, cols.R[i].Float64)
		in.Sigma = append(in.Sigma, cols.Sigma[i].Float64)
		in.IsPut = append(in.IsPut, v.IsPut[i])
	}

	out := Kernel(in)

	// Scatter back by original position.
	res := chunkResult{outcomes: make([]models.RowOutcome, len(rows))}
	j := 0
	for i, row := range rows {
		o := models.RowOutcome{Index: offset + i, Input: row}
		if !v.Valid[i] {
			o.Reasons = v.Reasons[i]
			res.stats.Add(false, 0)
			res.outcomes[i] = o
			continue
		}

		if out.Finite(j) {
			o.Result = &models.PricingResult{
				OptionPrice: Round(out.Price[j]),
				Greeks: models.Greeks{
					Delta: Round(out.Delta[j]),
					Gamma: Round(out.Gamma[j]),
					Theta: Round(out.Theta[j]),
					Vega:  Round(out.Vega[j]),
					Rho:   Round(out.Rho[j]),
				},
			}
			res.stats.Add(true, out.Price[j])
		} else {
			o.Reasons = []string{ReasonNonFinite}
			res.stats.Add(false, 0)
		}
		res.outcomes[i] = o
		j++
	}

	return res
}
