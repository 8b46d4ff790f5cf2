package ports

import "context"

// RowSource loads the raw rows of a market snapshot.
// Implementations return data rows only (header and blank lines removed), each row
// being the ordered field values in the schema's column order.
type RowSource interface {
	// FetchRows performs the single blocking load of the session.
	FetchRows(ctx context.Context) ([][]string, error)
	// Name returns a short description of the source for logging.
	Name() string
}
