package dto

import "time"

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Message      string    `json:"error" example:"invalid input"`
	ErrorDetails string    `json:"details,omitempty" example:"sigma must be > 0"`
	Timestamp    time.Time `json:"timestamp" example:"2025-01-01T12:00:00Z"`
}

// NewErrorResponse builds an ErrorResponse stamped with the current UTC time.
// err, when non-nil, fills the details.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

// Error lets an ErrorResponse travel as an error value.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}
