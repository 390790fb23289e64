package common

import "fmt"

// ValidationError reports a problem with the client's input (missing file,
// wrong file type). Maps to a 400 at the HTTP boundary.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ExtractionError reports a PDF that could not be parsed at all. A valid PDF
// with no text layer is not an extraction error.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("pdf extraction failed: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// AnalysisServiceError reports a failed call to the external analysis service:
// unreachable, non-success status, or a response that does not parse as the
// expected JSON shape.
type AnalysisServiceError struct {
	Err error
}

func (e *AnalysisServiceError) Error() string {
	return fmt.Sprintf("analysis service failed: %v", e.Err)
}

func (e *AnalysisServiceError) Unwrap() error {
	return e.Err
}

// StorageError reports a persistence failure (connectivity, constraint).
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failed: %v", e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
