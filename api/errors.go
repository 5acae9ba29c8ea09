package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for backend conditions the poller needs to tell apart.
var (
	// ErrNoReadings means the backend has no sensor data yet (404 on /latest).
	// This is non-fatal and shown distinctly from transport failures.
	ErrNoReadings = errors.New("no sensor readings available yet")

	// ErrInvalidPeriod means the backend rejected the history period (400).
	ErrInvalidPeriod = errors.New("invalid history period")

	// ErrIncompleteReading means the latest-reading payload was missing one
	// of the required numeric fields.
	ErrIncompleteReading = errors.New("reading payload missing required fields")
)

// RemoteError is a non-2xx backend response with its detail message, as the
// backend reports it in the {detail} body.
type RemoteError struct {
	StatusCode int
	Detail     string
}

func (e *RemoteError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Detail)
}
