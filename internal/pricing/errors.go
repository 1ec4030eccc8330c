package pricing

import (
	"fmt"
	"strings"
)

// SchemaError is returned when a batch header lacks required columns. It is
// the only batch-fatal input condition and is raised before any chunking.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ChunkError reports a worker failure for rows [Start, End).
type ChunkError struct {
	Start int
	End   int
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk rows [%d, %d): %v", e.Start, e.End, e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }

// ValidationFailure is returned by PriceRow for a row that fails validation.
type ValidationFailure struct {
	Reasons []string
}

func (e *ValidationFailure) Error() string {
	return strings.Join(e.Reasons, "; ")
}
