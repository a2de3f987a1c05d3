// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"errors"
	"fmt"

	"github.com/pdiddy/uspto-lookup/internal/identifier"
	"github.com/pdiddy/uspto-lookup/internal/uspto"
)

var (
	// ErrMissingCredential means no API key was supplied.
	ErrMissingCredential = errors.New("missing USPTO x-api-key: pass --api-key, set USPTO_LOOKUP_API_KEY, or write .secrets/uspto-api-key")

	// ErrEmptyInput means no search value was supplied.
	ErrEmptyInput = errors.New("no search value: provide a publication, application, or patent number")
)

// ValidationError is a malformed identifier.
type ValidationError = identifier.ValidationError

// HTTPError is a non-404 error status from the API.
type HTTPError = uspto.HTTPError

// NoResultsError means every candidate was tried and none matched.
type NoResultsError struct {
	// Label describes the candidates, e.g. "US20240088251(A1/A2/A9)".
	Label string
}

func (e *NoResultsError) Error() string {
	return fmt.Sprintf("no results found for %s", e.Label)
}
