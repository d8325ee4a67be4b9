package domain

import "errors"

var (
	// ErrInvalidPipeName is returned before any network I/O when a pipe name
	// fails the allow-list pattern.
	ErrInvalidPipeName = errors.New("invalid pipe name")

	// ErrPipeFetch marks a dashboard query that failed against the analytics
	// backend (network error or non-2xx response). Callers render an
	// "unable to load analytics" state instead of crashing.
	ErrPipeFetch = errors.New("analytics fetch failed")

	// ErrInvalidSiteID is returned when the requested site id is not a UUID.
	ErrInvalidSiteID = errors.New("invalid site id")
)
