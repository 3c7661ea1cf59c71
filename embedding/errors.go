package embedding

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrEmbedderRequired is returned when a pipeline is constructed
	// without an embedder.
	ErrEmbedderRequired = errors.New("embedder required")
)

// BatchError identifies which batch of a pipeline run failed and after how
// many submission attempts.
type BatchError struct {
	Batch    int // zero-based batch index
	Attempts int
	Err      error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("embedding batch %d failed after %d attempt(s): %v", e.Batch, e.Attempts, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
