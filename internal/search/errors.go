package search

import (
	"errors"
	"fmt"
)

// ErrInvalidStrategy is returned for an unknown frontier discipline.
var ErrInvalidStrategy = errors.New("invalid search strategy")

// FetchError is any failure while fetching or processing one page.
type FetchError struct {
	Address string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("an error occurred while accessing %s", e.Address)
	}
	return fmt.Sprintf("an error occurred while accessing %s: %v", e.Address, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// asFetchError wraps err in a FetchError unless it already is one.
func asFetchError(address string, err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return &FetchError{Address: address, Err: err}
}
