// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scopus

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes a search can surface. Callers
// classify with errors.Is; every fetch-stage error aborts the whole search.
var (
	// ErrMissingAPIKey means no Elsevier API key was configured.
	ErrMissingAPIKey = errors.New("missing Elsevier API key")

	// ErrRateLimited means the API reported throttling (HTTP 429) and the
	// configured retries, if any, were exhausted.
	ErrRateLimited = errors.New("Scopus API rate limited")

	// ErrMalformedResponse means the response body was not the expected
	// JSON shape.
	ErrMalformedResponse = errors.New("malformed Scopus response")

	// ErrTimeout means a page request exceeded the configured timeout.
	ErrTimeout = errors.New("Scopus request timed out")
)

// StatusError reports a non-2xx HTTP status other than 429.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Scopus API returned HTTP %d", e.Code)
}
