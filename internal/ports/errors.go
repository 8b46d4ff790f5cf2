package ports

import "errors"

// Standard application-level errors.
// Adapters wrap underlying infrastructure errors with these so callers can use errors.Is.
var (
	// General Errors
	ErrInvalidRequest     = errors.New("invalid request parameters or format")
	ErrNotFound           = errors.New("resource not found")
	ErrContextCanceled    = errors.New("operation canceled via context")
	ErrConfigurationError = errors.New("invalid or missing configuration")

	// Source Errors
	ErrSourceUnavailable = errors.New("data source is unavailable")
	ErrSchemaMismatch    = errors.New("data source columns do not match the schema")

	// Presentation Errors
	ErrRenderFailed  = errors.New("failed to render chart")
	ErrReleaseFailed = errors.New("failed to release chart handle")
)
