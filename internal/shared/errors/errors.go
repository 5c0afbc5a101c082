package errors

import "errors"

// Domain errors
var (
	// Input errors
	ErrInvalidInput      = errors.New("invalid input")
	ErrEmptyTarget       = errors.New("target URL cannot be empty")
	ErrUnsupportedFormat = errors.New("unsupported output format")

	// Analysis errors
	ErrNilReport = errors.New("score report is nil")

	// Scan log errors
	ErrEmptyLogDir = errors.New("log directory cannot be empty")
	ErrLogWrite    = errors.New("scan log write failed")
	ErrPathEscape  = errors.New("path escapes base directory")
)
