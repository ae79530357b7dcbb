package wordpress

import (
	"errors"
	"fmt"
)

// Sentinel errors for the client. Transport failures are wrapped driver
// errors and carry the underlying cause.
var (
	// ErrInvalidURL means the request URL could not be constructed.
	ErrInvalidURL = errors.New("invalid request URL")

	// ErrMissingTotalPages means the first page's response did not carry
	// the total-page-count header, so the paged fetch cannot proceed.
	ErrMissingTotalPages = errors.New("response missing total pages header")

	// ErrFailedPagingRequest means at least one follow-up page of a paged
	// fetch returned no data. No partial results are handed to the caller.
	ErrFailedPagingRequest = errors.New("paging request failed")

	// ErrContractMismatch means a response body did not decode into the
	// expected JSON shape.
	ErrContractMismatch = errors.New("unexpected response shape")
)

// BadResponseError is returned when the API answers with a non-200 status.
type BadResponseError struct {
	Status int
}

func (e *BadResponseError) Error() string {
	return fmt.Sprintf("bad response status %d", e.Status)
}
