package page

import (
	"github.com/codeready-toolchain/toolchain-pageobjects/metrics"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// SelfTest checks that the element and its declared descendants match the
// expected number of live elements. Excluded elements are not checked, but
// their children are. The children of an element which cannot be found are
// not checked.
//
// When the element declares a test setup, the setup is acquired before the
// check and released afterwards.
// All the failures are returned, as a *multierror.Error containing
// *StructuralAssertionFailure values and the errors of the driver.
func (e *Element) SelfTest() (err error) {
	setup := e.locator.TestSetupName()
	release, err := e.page.acquireSetup(setup)
	if err != nil {
		return multierror.Append(nil, errors.Wrapf(err, "unable to test element '%s'", e.Path()))
	}
	var result *multierror.Error
	defer func() {
		if releaseErr := release(); releaseErr != nil {
			result = multierror.Append(result, errors.Wrapf(releaseErr, "unable to release test setup '%s'", setup))
		}
		err = result.ErrorOrNil()
	}()
	result = e.selfTest()
	return nil
}

func (e *Element) selfTest() *multierror.Error {
	var result *multierror.Error
	if !e.locator.IsExcluded() {
		if _, err := e.Resolve(); err != nil {
			if IsElementNotFound(err) {
				return multierror.Append(result, e.failure(0, err.Error()))
			}
			return multierror.Append(result, err)
		}
		count, err := e.Count()
		if err != nil {
			return multierror.Append(result, err)
		}
		if count != e.locator.ExpectedCount() {
			result = multierror.Append(result, e.failure(count, ""))
		}
	}
	for _, name := range e.locator.Names() {
		result = multierror.Append(result, e.children[name].SelfTest())
	}
	return result
}

func (e *Element) failure(actual int, message string) *StructuralAssertionFailure {
	metrics.StructuralFailures.WithLabelValues(e.page.Name()).Inc()
	return &StructuralAssertionFailure{
		Page:     e.page.Name(),
		Element:  e.Path(),
		Locator:  e.locator,
		Expected: e.locator.ExpectedCount(),
		Actual:   actual,
		Message:  message,
	}
}

func flatten(err error) []error {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		var all []error
		for _, e := range merr.Errors {
			all = append(all, flatten(e)...)
		}
		return all
	}
	return []error{err}
}
