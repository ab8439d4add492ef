package page

import (
	"fmt"

	"github.com/codeready-toolchain/toolchain-pageobjects/locator"

	"github.com/pkg/errors"
)

// ElementNotFoundError is returned when a declared element cannot be resolved
// in the live document
type ElementNotFoundError struct {
	// Name is the path of the element in the declaration, eg. `header.dropdown`
	Name    string
	Page    string
	Locator *locator.Locator
	cause   error
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("unable to locate '%s' on page '%s' using locator %s", e.Name, e.Page, e.Locator)
}

// Unwrap returns the lookup error of the driver
func (e *ElementNotFoundError) Unwrap() error {
	return e.cause
}

// IsElementNotFound returns true if the error is caused by an unresolvable element
func IsElementNotFound(err error) bool {
	var notFound *ElementNotFoundError
	return errors.As(err, &notFound)
}

// StructuralAssertionFailure is reported by the self-test when a declared
// element is missing, or matches an unexpected number of live elements
type StructuralAssertionFailure struct {
	Page     string
	Element  string
	Locator  *locator.Locator
	Expected int
	Actual   int
	// Message replaces the default description, eg. with the message of the lookup error
	Message string
}

func (f *StructuralAssertionFailure) Error() string {
	if f.Message != "" {
		return f.Message
	}
	return fmt.Sprintf("expected %d element(s) '%s' on page '%s' using locator %s but found %d",
		f.Expected, f.Element, f.Page, f.Locator, f.Actual)
}

// StructuralFailures returns the structural assertion failures contained in the
// error returned by a self-test
func StructuralFailures(err error) []*StructuralAssertionFailure {
	var failures []*StructuralAssertionFailure
	for _, e := range flatten(err) {
		var f *StructuralAssertionFailure
		if errors.As(e, &f) {
			failures = append(failures, f)
		}
	}
	return failures
}
