package models

import (
	"math"
	"strconv"
	"strings"
)

// OptionType identifies the side of a contract after normalization.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// ParseOptionType normalizes a raw option type. Matching is case-insensitive
// but exact otherwise: " call" is not a call. ok is false for empty or
// unrecognized values.
func ParseOptionType(raw string) (OptionType, bool) {
	switch OptionType(strings.ToLower(raw)) {
	case Call:
		return Call, true
	case Put:
		return Put, true
	default:
		return "", false
	}
}

// NullFloat64 is a numeric input cell that may be missing.
//
// It mirrors sql.NullFloat64: Valid is false when the cell was empty,
// unparseable, NaN or infinite. Domain checks (e.g. S > 0) only apply to
// valid values.
type NullFloat64 struct {
	Float64 float64
	Valid   bool
}

// Float returns a present value. Non-finite inputs are treated as missing.
func Float(v float64) NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NullFloat64{}
	}
	return NullFloat64{Float64: v, Valid: true}
}

// Missing returns an absent value.
func Missing() NullFloat64 { return NullFloat64{} }

// ParseNullFloat64 converts a raw cell. Empty, unparseable and non-finite
// text all yield a missing value; parsing never fails the caller.
func ParseNullFloat64(raw string) NullFloat64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Missing()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Missing()
	}
	return Float(v)
}

// InputRow is one pricing request as read from the batch.
type InputRow struct {
	S          NullFloat64
	K          NullFloat64
	T          NullFloat64
	R          NullFloat64
	Sigma      NullFloat64
	OptionType string
}

// Greeks holds the five sensitivities of one contract.
type Greeks struct {
	Delta float64 `json:"delta" example:"0.6368"`
	Gamma float64 `json:"gamma" example:"0.0188"`
	Theta float64 `json:"theta" example:"-6.414"`
	Vega  float64 `json:"vega" example:"37.524"`
	Rho   float64 `json:"rho" example:"53.2325"`
}

// PricingResult is the priced output for a valid row, rounded to 4 decimals.
type PricingResult struct {
	OptionPrice float64 `json:"option_price" example:"10.4506"`
	Greeks
}

// RowOutcome pairs an input row (by its position in the batch) with either a
// result or the reasons it was rejected. Exactly one of Result / Reasons is set.
type RowOutcome struct {
	Index   int
	Input   InputRow
	Result  *PricingResult
	Reasons []string
}

// OK reports whether the row was priced.
func (o RowOutcome) OK() bool { return o.Result != nil }
