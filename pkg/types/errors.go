package types

import "errors"

// Error kinds. Every error produced by the engine matches exactly one of
// these under errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrProcessing   = errors.New("processing failure")
)

// kindError carries a user-facing message and the kind it belongs to.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool { return target == e.kind }

var (
	ErrNotAnImage        error = &kindError{ErrInvalidInput, "File must be an image"}
	ErrNoFile            error = &kindError{ErrInvalidInput, "No file uploaded"}
	ErrInvalidImage      error = &kindError{ErrInvalidInput, "Invalid image file"}
	ErrUnsupportedFormat error = &kindError{ErrInvalidInput, "Unsupported image format"}
	ErrInvalidDimensions error = &kindError{ErrInvalidInput, "Image dimensions must be positive"}
)

// IsInvalidInput reports whether err was caused by bad caller input
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

type processingError struct {
	err error
}

func (e *processingError) Error() string { return "Image analysis failed: " + e.err.Error() }

func (e *processingError) Unwrap() error { return e.err }

func (e *processingError) Is(target error) bool { return target == ErrProcessing }

// Processing marks err as a processing failure unless it already
// belongs to a known kind.
func Processing(err error) error {
	if err == nil || errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrProcessing) {
		return err
	}
	return &processingError{err: err}
}
