package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCategory is returned for a category outside the closed outlook set.
	ErrUnknownCategory = errors.New("unknown outlook category")

	// ErrInvalidDay is returned when a day is not published for a category.
	ErrInvalidDay = errors.New("invalid outlook day")

	// ErrOutlookUnavailable signals a well-formed outlook with nothing to draw.
	// It is a normal outcome: SPC frequently issues empty outlooks.
	ErrOutlookUnavailable = errors.New("no outlook currently issued")
)

// RetrievalError wraps a network, HTTP status, or decoding failure for a URL.
type RetrievalError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *RetrievalError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("retrieve %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("retrieve %s: %v", e.URL, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}
