package contract

import (
	"errors"
	"fmt"

	"portfolio-cms-be/internal/entity"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidPatch  = errors.New("invalid patch")
	ErrInvalidCursor = errors.New("invalid cursor")

	ErrUnknownContentKind = errors.New("unknown content kind")
)

// FetchError is a whole-list failure. Callers surface it as an error view;
// the engines do not retry.
type FetchError struct {
	Kind entity.ContentKind
	Op   string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s (%s): %v", e.Kind, e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// MutationError is the typed failure of a single Mutate call.
type MutationError struct {
	Id     string
	Reason string
	Err    error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("mutate %s: %s", e.Id, e.Reason)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// NewMutationError wraps err with a human-readable reason.
func NewMutationError(id string, err error) *MutationError {
	var existing *MutationError
	if errors.As(err, &existing) {
		return existing
	}
	reason := "mutation failed"
	switch {
	case errors.Is(err, ErrNotFound):
		reason = "record not found"
	case errors.Is(err, ErrInvalidPatch):
		reason = err.Error()
	case err != nil:
		reason = err.Error()
	}
	return &MutationError{Id: id, Reason: reason, Err: err}
}
