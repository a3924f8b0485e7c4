package api

import (
	"fmt"

	"emperror.dev/errors"
)

const (
	// ErrNetwork matches every failed GitHub request, including non-2xx responses.
	ErrNetwork = errors.Sentinel("GitHub request failed")
	// ErrNotFound matches 404 responses.
	ErrNotFound = errors.Sentinel("not found on GitHub")
	// ErrEmptyUsername is returned before any request is made.
	ErrEmptyUsername = errors.Sentinel("please enter a GitHub username")
)

// ErrorKind classifies a FetchError.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindNotFound
)

// FetchError describes a failed GitHub call.
type FetchError struct {
	Op     string
	Kind   ErrorKind
	Status int // 0 when no response was received
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: GitHub API error (status %d)", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is lets callers test with errors.Is(err, ErrNotFound) or errors.Is(err, ErrNetwork).
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return true
	case ErrNotFound:
		return e.Kind == KindNotFound
	}
	return false
}

// IsNotFound reports whether err is a 404 from GitHub.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
