package pricing

import (
	"math"
	"testing"
)

func approx(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestKernel_ReferenceValues(t *testing.T) {
	in := Inputs{
		S:     []float64{100, 100},
		K:     []float64{100, 100},
		T:     []float64{1, 1},
		R:     []float64{0.05, 0.05},
		Sigma: []float64{0.2, 0.2},
		IsPut: []bool{false, true},
	}
	out := Kernel(in)

	cases := []struct {
		name string
		got  float64
		want float64
	}{
		{"call price", Round(out.Price[0]), 10.4506},
		{"call delta", Round(out.Delta[0]), 0.6368},
		{"call gamma", Round(out.Gamma[0]), 0.0188},
		{"call vega", Round(out.Vega[0]), 37.524},
		{"call theta", Round(out.Theta[0]), -6.414},
		{"call rho", Round(out.Rho[0]), 53.2325},
		{"put price", Round(out.Price[1]), 5.5735},
		{"put delta", Round(out.Delta[1]), -0.3632},
		{"put gamma", Round(out.Gamma[1]), 0.0188},
		{"put vega", Round(out.Vega[1]), 37.524},
	}
	for _, tc := range cases {
		if !approx(tc.got, tc.want, 1e-9) {
			t.Errorf("%s: got %v want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestKernel_PutCallParity(t *testing.T) {
	spots := []float64{50, 80, 100, 120, 250}
	strikes := []float64{60, 100, 100, 90, 200}
	in := Inputs{}
	for i := range spots {
		for _, put := range []bool{false, true} {
			in.S = append(in.S, spots[i])
			in.K = append(in.K, strikes[i])
			in.T = append(in.T, 0.75)
			in.R = append(in.R, 0.03)
			in.Sigma = append(in.Sigma, 0.35)
			in.IsPut = append(in.IsPut, put)
		}
	}
	out := Kernel(in)

	for i := 0; i < in.Len(); i += 2 {
		call, put := out.Price[i], out.Price[i+1]
		want := in.S[i] - in.K[i]*math.Exp(-in.R[i]*in.T[i])
		if !approx(call-put, want, 1e-6) {
			t.Fatalf("parity S=%v K=%v: C-P=%v want %v", in.S[i], in.K[i], call-put, want)
		}
		if !approx(out.Delta[i]-out.Delta[i+1], 1, 1e-12) {
			t.Fatalf("delta parity S=%v K=%v: %v", in.S[i], in.K[i], out.Delta[i]-out.Delta[i+1])
		}
		if out.Gamma[i] != out.Gamma[i+1] || out.Vega[i] != out.Vega[i+1] {
			t.Fatalf("gamma/vega should not depend on side at S=%v", in.S[i])
		}
	}
}

func TestKernel_Expiry(t *testing.T) {
	in := Inputs{
		S:     []float64{110, 90, 110, 90, 100},
		K:     []float64{100, 100, 100, 100, 100},
		T:     []float64{0, 0, 0, 0, 0},
		R:     []float64{0.05, 0.05, 0.05, 0.05, 0.05},
		Sigma: []float64{0.2, 0.2, 0.2, 0.2, 0.2},
		IsPut: []bool{false, false, true, true, false},
	}
	out := Kernel(in)

	wantPrice := []float64{10, 0, 0, 10, 0}
	wantDelta := []float64{1, 0, 0, -1, 0}
	for i := range wantPrice {
		if !out.Finite(i) {
			t.Fatalf("row %d: expected finite outputs", i)
		}
		if out.Price[i] != wantPrice[i] || out.Delta[i] != wantDelta[i] {
			t.Errorf("row %d: price=%v delta=%v want %v/%v", i, out.Price[i], out.Delta[i], wantPrice[i], wantDelta[i])
		}
		if out.Gamma[i] != 0 || out.Theta[i] != 0 || out.Vega[i] != 0 || out.Rho[i] != 0 {
			t.Errorf("row %d: expected zero greeks at expiry, got %+v", i, out)
		}
	}
}

func TestKernel_Empty(t *testing.T) {
	out := Kernel(Inputs{})
	if len(out.Price) != 0 || len(out.Rho) != 0 {
		t.Fatalf("expected empty outputs")
	}
}

func TestOutputs_Finite(t *testing.T) {
	o := newOutputs(2)
	o.Vega[1] = math.NaN()
	if !o.Finite(0) {
		t.Fatalf("row 0 should be finite")
	}
	if o.Finite(1) {
		t.Fatalf("row 1 should not be finite")
	}
}

func TestRound(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{10.45058357, 10.4506},
		{-6.41402755, -6.414},
		{0.00004, 0},
		{1.23455, 1.2346},
		{-1.23455, -1.2346},
	}
	for _, tc := range cases {
		if got := Round(tc.in); got != tc.want {
			t.Errorf("Round(%v) = %v want %v", tc.in, got, tc.want)
		}
	}
}
