package pricing

import "github.com/guttosm/bsgreeks/internal/domain/models"

// Reason strings attached to rejected rows.
const (
	ReasonSMissing     = "S is missing/invalid"
	ReasonSDomain      = "S must be > 0"
	ReasonKMissing     = "K is missing/invalid"
	ReasonKDomain      = "K must be > 0"
	ReasonTMissing     = "T is missing/invalid"
	ReasonTDomain      = "T must be >= 0"
	ReasonRMissing     = "r is missing/invalid"
	ReasonSigmaMissing = "sigma is missing/invalid"
	ReasonSigmaDomain  = "sigma must be > 0"
	ReasonOptionType   = "option_type must be 'call' or 'put'"
	ReasonNonFinite    = "pricing produced a non-finite result"
)

// Columns is a chunk laid out column by column. All slices share one length.
type Columns struct {
	S          []models.NullFloat64
	K          []models.NullFloat64
	T          []models.NullFloat64
	R          []models.NullFloat64
	Sigma      []models.NullFloat64
	OptionType []string
}

// ColumnsOf transposes rows into columns.
func ColumnsOf(rows []models.InputRow) Columns {
	n := len(rows)
	c := Columns{
		S:          make([]models.NullFloat64, n),
		K:          make([]models.NullFloat64, n),
		T:          make([]models.NullFloat64, n),
		R:          make([]models.NullFloat64, n),
		Sigma:      make([]models.NullFloat64, n),
		OptionType: make([]string, n),
	}
	for i, r := range rows {
		c.S[i], c.K[i], c.T[i], c.R[i], c.Sigma[i] = r.S, r.K, r.T, r.R, r.Sigma
		c.OptionType[i] = r.OptionType
	}
	return c
}

// Len is the number of rows.
func (c Columns) Len() int { return len(c.S) }

// Validation is the outcome of Validate: a validity mask, the normalized side
// of each row, and the reasons for every invalid row (nil for valid rows).
type Validation struct {
	Valid   []bool
	IsPut   []bool
	Reasons [][]string
}

// ValidCount returns how many rows passed.
func (v Validation) ValidCount() int {
	n := 0
	for _, ok := range v.Valid {
		if ok {
			n++
		}
	}
	return n
}

// Validate classifies every row. It never fails: a bad row is reported
// through its reasons, with one entry per violated constraint in field order.
func Validate(c Columns) Validation {
	n := c.Len()
	v := Validation{
		Valid:   make([]bool, n),
		IsPut:   make([]bool, n),
		Reasons: make([][]string, n),
	}

	for i := 0; i < n; i++ {
		var reasons []string

		reasons = checkPositive(reasons, c.S[i], ReasonSMissing, ReasonSDomain)
		reasons = checkPositive(reasons, c.K[i], ReasonKMissing, ReasonKDomain)
		switch {
		case !c.T[i].Valid:
			reasons = append(reasons, ReasonTMissing)
		case c.T[i].Float64 < 0:
			reasons = append(reasons, ReasonTDomain)
		}
		if !c.R[i].Valid {
			reasons = append(reasons, ReasonRMissing)
		}
		reasons = checkPositive(reasons, c.Sigma[i], ReasonSigmaMissing, ReasonSigmaDomain)

		side, ok := models.ParseOptionType(c.OptionType[i])
		if !ok {
			reasons = append(reasons, ReasonOptionType)
		}

		v.IsPut[i] = side == models.Put
		v.Valid[i] = len(reasons) == 0
		v.Reasons[i] = reasons
	}

	return v
}

func checkPositive(reasons []string, x models.NullFloat64, missing, domain string) []string {
	switch {
	case !x.Valid:
		return append(reasons, missing)
	case x.Float64 <= 0:
		return append(reasons, domain)
	}
	return reasons
}
