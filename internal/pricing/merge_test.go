package pricing

import (
	"testing"

	"github.com/guttosm/bsgreeks/internal/domain/models"
)

func statsOf(prices []float64, failed int) models.BatchStats {
	var s models.BatchStats
	for _, p := range prices {
		s.Add(true, p)
	}
	for i := 0; i < failed; i++ {
		s.Add(false, 0)
	}
	return s
}

func TestMergeStats_OrderIndependent(t *testing.T) {
	a := statsOf([]float64{3, 9}, 1)
	b := statsOf(nil, 4)
	c := statsOf([]float64{1, 5}, 0)

	orders := [][]models.BatchStats{{a, b, c}, {c, b, a}, {b, a, c}, {b, c, a}}
	want := MergeStats(a, b, c)
	for _, o := range orders {
		got := MergeStats(o...)
		if got != want {
			t.Fatalf("order %v: got %+v want %+v", o, got, want)
		}
	}
	if want.Successful != 4 || want.Failed != 5 || want.Min != 1 || want.Max != 9 || want.Sum != 18 {
		t.Fatalf("unexpected merged stats %+v", want)
	}
}

func TestMergeStats_ZeroIsIdentity(t *testing.T) {
	a := statsOf([]float64{-2, 7}, 2)
	if got := MergeStats(models.BatchStats{}, a); got != a {
		t.Fatalf("left identity: %+v", got)
	}
	if got := MergeStats(a, models.BatchStats{}); got != a {
		t.Fatalf("right identity: %+v", got)
	}
	if got := MergeStats(); got != (models.BatchStats{}) {
		t.Fatalf("empty merge: %+v", got)
	}
}

func TestMerge_RowOrder(t *testing.T) {
	results := []chunkResult{
		{outcomes: []models.RowOutcome{{Index: 0}, {Index: 1}}, stats: statsOf([]float64{1}, 1)},
		{outcomes: []models.RowOutcome{{Index: 2}}, stats: statsOf([]float64{2}, 0)},
	}
	outcomes, stats := merge(results, 3)
	for i, o := range outcomes {
		if o.Index != i {
			t.Fatalf("outcome %d has index %d", i, o.Index)
		}
	}
	if stats.Total() != 3 {
		t.Fatalf("total=%d want 3", stats.Total())
	}
}

func TestSummarize(t *testing.T) {
	if got := Summarize(statsOf(nil, 3)); got != (Summary{}) {
		t.Fatalf("expected zero summary, got %+v", got)
	}
	got := Summarize(statsOf([]float64{1.00001, 2.00004, 3.33333}, 0))
	want := Summary{AveragePrice: 2.1111, MinPrice: 1, MaxPrice: 3.3333, TotalValue: 6.3334}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}
