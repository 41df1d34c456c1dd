package domain

import "errors"

var (
	// ErrForbidden is returned when an API key is unknown or has no upload grant
	ErrForbidden = errors.New("api key does not authorize uploads")

	// ErrInvalidUploaderID is returned when an upload carries no uploader ID
	ErrInvalidUploaderID = errors.New("uploader ID is required")

	// ErrWorldNotFound is returned when a query names a world, data center
	// or region that is absent from the reference catalog
	ErrWorldNotFound = errors.New("world, data center or region not found")
)

// ValidationError is a terminal validator veto. The first veto stops
// the behavior chain and is surfaced to the caller as a rejection.
type ValidationError struct {
	Behavior string
	Message  string
}

func (e *ValidationError) Error() string {
	return e.Message
}
