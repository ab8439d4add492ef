package driver

import (
	"github.com/pkg/errors"
)

var (
	// ErrNoSuchElement is returned when no element matches a lookup
	ErrNoSuchElement = errors.New("no such element")
	// ErrStaleElement is returned when an element is not attached to the document anymore
	ErrStaleElement = errors.New("stale element reference")
)

// IsNotFound returns true if the error is caused by a lookup without any match
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNoSuchElement)
}

// IsStale returns true if the error is caused by a stale element
func IsStale(err error) bool {
	return errors.Is(err, ErrStaleElement)
}

// NotFound returns an error wrapping ErrNoSuchElement
func NotFound(by, value string) error {
	return errors.Wrapf(ErrNoSuchElement, "unable to find element using (%s, %s)", by, value)
}
