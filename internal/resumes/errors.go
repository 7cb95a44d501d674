package resumes

import (
	"errors"
	"fmt"
)

var (
	ErrNoFilePart        = errors.New("no file part")
	ErrNoSelectedFile    = errors.New("no selected file")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrInvalidPatch      = errors.New("invalid update body")
	ErrStaging           = errors.New("staging failed")
	ErrArchive           = errors.New("archive failed")
)

const (
	ErrorCodeValidation = "validation_error"
	ErrorCodeFormat     = "unsupported_format"
	ErrorCodeTooLarge   = "file_too_large"
	ErrorCodeExtraction = "extraction_error"
	ErrorCodeStorage    = "storage_error"
	ErrorCodeInternal   = "internal_error"
)

// ExtractionError wraps a failure from the PDF text extractor.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract text: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
