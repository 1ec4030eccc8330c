package pricing

import (
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat/distuv"
)

// Decimals is the precision of every published price and Greek.
const Decimals = 4

// Inputs are the contiguous buffers of the valid subset of a chunk. Within
// the kernel S, K, Sigma > 0 and T >= 0 are guaranteed by the validator.
type Inputs struct {
	S     []float64
	K     []float64
	T     []float64
	R     []float64
	Sigma []float64
	IsPut []bool
}

// Len is the number of contracts.
func (in Inputs) Len() int { return len(in.S) }

// Outputs are the unrounded kernel results, index-aligned with Inputs.
type Outputs struct {
	Price []float64
	Delta []float64
	Gamma []float64
	Theta []float64
	Vega  []float64
	Rho   []float64
}

func newOutputs(n int) Outputs {
	return Outputs{
		Price: make([]float64, n),
		Delta: make([]float64, n),
		Gamma: make([]float64, n),
		Theta: make([]float64, n),
		Vega:  make([]float64, n),
		Rho:   make([]float64, n),
	}
}

// Kernel prices every contract of in.
//
// Each step runs over the whole buffer; call and put values are both
// computed and the side is picked per row at the end. Rows with T == 0 take
// the expiry values instead: intrinsic price, call delta 1 when S > K
// (else 0), put delta = call delta - 1, and zero for the other Greeks.
func Kernel(in Inputs) Outputs {
	n := in.Len()
	out := newOutputs(n)
	if n == 0 {
		return out
	}

	sqrtT := make([]float64, n)
	disc := make([]float64, n) // exp(-rT)
	d1 := make([]float64, n)
	d2 := make([]float64, n)
	for i := 0; i < n; i++ {
		sqrtT[i] = math.Sqrt(in.T[i])
		disc[i] = math.Exp(-in.R[i] * in.T[i])
		volT := in.Sigma[i] * sqrtT[i]
		d1[i] = (math.Log(in.S[i]/in.K[i]) + (in.R[i]+0.5*in.Sigma[i]*in.Sigma[i])*in.T[i]) / volT
		d2[i] = d1[i] - volT
	}

	nd1 := make([]float64, n)  // Φ(d1)
	nd2 := make([]float64, n)  // Φ(d2)
	nmd1 := make([]float64, n) // Φ(-d1)
	nmd2 := make([]float64, n) // Φ(-d2)
	pd1 := make([]float64, n)  // φ(d1)
	for i := 0; i < n; i++ {
		nd1[i] = distuv.UnitNormal.CDF(d1[i])
		nd2[i] = distuv.UnitNormal.CDF(d2[i])
		nmd1[i] = distuv.UnitNormal.CDF(-d1[i])
		nmd2[i] = distuv.UnitNormal.CDF(-d2[i])
		pd1[i] = distuv.UnitNormal.Prob(d1[i])
	}

	for i := 0; i < n; i++ {
		S, K, r, sigma := in.S[i], in.K[i], in.R[i], in.Sigma[i]
		kDisc := K * disc[i]

		callPrice := S*nd1[i] - kDisc*nd2[i]
		putPrice := kDisc*nmd2[i] - S*nmd1[i]

		decay := -S * pd1[i] * sigma / (2 * sqrtT[i])
		callTheta := decay - r*kDisc*nd2[i]
		putTheta := decay + r*kDisc*nmd2[i]

		callRho := kDisc * in.T[i] * nd2[i]
		putRho := -kDisc * in.T[i] * nmd2[i]

		out.Gamma[i] = pd1[i] / (S * sigma * sqrtT[i])
		out.Vega[i] = S * pd1[i] * sqrtT[i]
		out.Price[i] = pick(in.IsPut[i], putPrice, callPrice)
		out.Delta[i] = pick(in.IsPut[i], nd1[i]-1, nd1[i])
		out.Theta[i] = pick(in.IsPut[i], putTheta, callTheta)
		out.Rho[i] = pick(in.IsPut[i], putRho, callRho)
	}

	for i := 0; i < n; i++ {
		if in.T[i] != 0 {
			continue
		}
		S, K := in.S[i], in.K[i]
		callDelta := 0.0
		if S > K {
			callDelta = 1
		}
		out.Price[i] = pick(in.IsPut[i], math.Max(K-S, 0), math.Max(S-K, 0))
		out.Delta[i] = pick(in.IsPut[i], callDelta-1, callDelta)
		out.Gamma[i], out.Theta[i], out.Vega[i], out.Rho[i] = 0, 0, 0, 0
	}

	return out
}

func pick(isPut bool, put, call float64) float64 {
	if isPut {
		return put
	}
	return call
}

// Finite reports whether every output of row i is a finite number.
func (o Outputs) Finite(i int) bool {
	for _, v := range [...]float64{o.Price[i], o.Delta[i], o.Gamma[i], o.Theta[i], o.Vega[i], o.Rho[i]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Round rounds x half away from zero to Decimals places. x must be finite.
func Round(x float64) float64 {
	return decimal.NewFromFloat(x).Round(Decimals).InexactFloat64()
}
