package models

import "math"

// Column names of a pricing batch. Names are case-sensitive.
const (
	ColumnS          = "S"
	ColumnK          = "K"
	ColumnT          = "T"
	ColumnR          = "r"
	ColumnSigma      = "sigma"
	ColumnOptionType = "option_type"
)

// RequiredColumns must all be present in a batch header. option_type is
// optional at the schema level; rows without it are rejected individually.
var RequiredColumns = []string{ColumnS, ColumnK, ColumnT, ColumnR, ColumnSigma}

// Batch is a tabular set of rows plus the header it was read with.
type Batch struct {
	Header []string
	Rows   []InputRow
}

// MissingColumns returns the required columns absent from the header, in
// RequiredColumns order.
func (b Batch) MissingColumns() []string {
	present := make(map[string]struct{}, len(b.Header))
	for _, h := range b.Header {
		present[h] = struct{}{}
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := present[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

// BatchStats aggregates priced rows. Min and Max are meaningful only when
// Successful > 0 and are zero otherwise.
type BatchStats struct {
	Successful int
	Failed     int
	Sum        float64
	Min        float64
	Max        float64
}

// Add folds one row into the stats.
func (s *BatchStats) Add(priced bool, price float64) {
	if !priced {
		s.Failed++
		return
	}
	if s.Successful == 0 {
		s.Min, s.Max = price, price
	} else {
		s.Min = math.Min(s.Min, price)
		s.Max = math.Max(s.Max, price)
	}
	s.Successful++
	s.Sum += price
}

// Combine merges two partial stats. It is commutative and associative, and
// the zero value is its identity: a side with no successful rows does not
// contribute to Min/Max.
func (s BatchStats) Combine(o BatchStats) BatchStats {
	out := BatchStats{
		Successful: s.Successful + o.Successful,
		Failed:     s.Failed + o.Failed,
		Sum:        s.Sum + o.Sum,
	}
	switch {
	case s.Successful == 0:
		out.Min, out.Max = o.Min, o.Max
	case o.Successful == 0:
		out.Min, out.Max = s.Min, s.Max
	default:
		out.Min = math.Min(s.Min, o.Min)
		out.Max = math.Max(s.Max, o.Max)
	}
	return out
}

// Total is the number of rows the stats cover.
func (s BatchStats) Total() int { return s.Successful + s.Failed }

// Average is Sum / Successful, or 0 when nothing was priced.
func (s BatchStats) Average() float64 {
	if s.Successful == 0 {
		return 0
	}
	return s.Sum / float64(s.Successful)
}
