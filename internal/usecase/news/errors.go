// Package news provides read use cases over stored news items: paginated
// listing with search, detail lookup and the market sentiment aggregate.
package news

import "errors"

// Sentinel errors for news query operations.
var (
	// ErrNewsNotFound indicates that the requested news item was not found.
	ErrNewsNotFound = errors.New("news not found")

	// ErrInvalidNewsID indicates that the provided news ID is invalid.
	// News IDs must be positive integers.
	ErrInvalidNewsID = errors.New("invalid news ID")
)
