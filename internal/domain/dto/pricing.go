package dto

import (
	"strings"

	"github.com/guttosm/bsgreeks/internal/domain/models"
)

// CalculateRequest is the body of POST /calculate. Pointers distinguish an
// absent field from an explicit zero.
type CalculateRequest struct {
	S          *float64 `json:"S" example:"100"`
	K          *float64 `json:"K" example:"100"`
	T          *float64 `json:"T" example:"1"`
	R          *float64 `json:"r" example:"0.05"`
	Sigma      *float64 `json:"sigma" example:"0.2"`
	OptionType string   `json:"option_type" example:"call" enums:"call,put"`
}

func nullable(v *float64) models.NullFloat64 {
	if v == nil {
		return models.Missing()
	}
	return models.Float(*v)
}

// ToRow converts the request into an engine row; option_type defaults to call.
func (r CalculateRequest) ToRow() models.InputRow {
	side := r.OptionType
	if side == "" {
		side = string(models.Call)
	}
	return models.InputRow{
		S:          nullable(r.S),
		K:          nullable(r.K),
		T:          nullable(r.T),
		R:          nullable(r.R),
		Sigma:      nullable(r.Sigma),
		OptionType: side,
	}
}

// InputParameters echoes a row back to the client. Missing values are null.
type InputParameters struct {
	S          *float64 `json:"S"`
	K          *float64 `json:"K"`
	T          *float64 `json:"T"`
	R          *float64 `json:"r"`
	Sigma      *float64 `json:"sigma"`
	OptionType string   `json:"option_type"`
}

func ptr(v models.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// NewInputParameters builds the echo of row.
func NewInputParameters(row models.InputRow) InputParameters {
	return InputParameters{
		S:          ptr(row.S),
		K:          ptr(row.K),
		T:          ptr(row.T),
		R:          ptr(row.R),
		Sigma:      ptr(row.Sigma),
		OptionType: row.OptionType,
	}
}

// CalculatedValues is a priced contract.
type CalculatedValues struct {
	OptionPrice float64       `json:"option_price" example:"10.4506"`
	Greeks      models.Greeks `json:"greeks"`
}

func newCalculatedValues(r models.PricingResult) CalculatedValues {
	return CalculatedValues{OptionPrice: r.OptionPrice, Greeks: r.Greeks}
}

// CalculateResponse is the body of a successful POST /calculate.
type CalculateResponse struct {
	CalculatedValues
	InputParameters InputParameters `json:"input_parameters"`
}

// NewCalculateResponse pairs a result with the row it came from.
func NewCalculateResponse(row models.InputRow, r models.PricingResult) CalculateResponse {
	return CalculateResponse{CalculatedValues: newCalculatedValues(r), InputParameters: NewInputParameters(row)}
}

// RowResult is one row of a batch response. Exactly one of
// CalculatedValues and Error is set.
type RowResult struct {
	RowIndex         int               `json:"row_index" example:"0"`
	InputData        InputParameters   `json:"input_data"`
	CalculatedValues *CalculatedValues `json:"calculated_values"`
	Error            *string           `json:"error"`
}

// ProcessingSummary holds the rounded batch statistics.
type ProcessingSummary struct {
	AverageOptionPrice float64 `json:"average_option_price" example:"8.0121"`
	MinOptionPrice     float64 `json:"min_option_price" example:"0.0012"`
	MaxOptionPrice     float64 `json:"max_option_price" example:"45.3321"`
	TotalOptionValue   float64 `json:"total_option_value" example:"160242.1"`
}

// ProcessingInfo describes how the batch was executed.
type ProcessingInfo struct {
	NumChunks int `json:"num_chunks" example:"3"`
	Workers   int `json:"workers" example:"4"`
	ChunkSize int `json:"chunksize" example:"20000"`
}

// BatchResponse is the body of a successful POST /process.
type BatchResponse struct {
	TotalRows              int               `json:"total_rows" example:"50000"`
	SuccessfulCalculations int               `json:"successful_calculations" example:"49800"`
	FailedCalculations     int               `json:"failed_calculations" example:"200"`
	Results                []RowResult       `json:"results"`
	ProcessingSummary      ProcessingSummary `json:"processing_summary"`
	ProcessingInfo         ProcessingInfo    `json:"processing_info"`
}

// NewRowResult renders one row outcome. Reasons are joined with "; ".
func NewRowResult(o models.RowOutcome) RowResult {
	rr := RowResult{RowIndex: o.Index, InputData: NewInputParameters(o.Input)}
	if o.OK() {
		v := newCalculatedValues(*o.Result)
		rr.CalculatedValues = &v
		return rr
	}
	msg := strings.Join(o.Reasons, "; ")
	rr.Error = &msg
	return rr
}
