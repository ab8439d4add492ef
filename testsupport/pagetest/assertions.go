package pagetest

import (
	"fmt"

	"github.com/codeready-toolchain/toolchain-pageobjects/page"
	"github.com/codeready-toolchain/toolchain-pageobjects/wait"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertCondition evaluates the condition once and reports its description if it is false
func AssertCondition(t AssertT, c *wait.Condition, msgAndArgs ...any) bool {
	t.Helper()
	ok, err := c.Check()
	if err != nil {
		return assert.Fail(t, fmt.Sprintf("unable to evaluate condition %s: %s", c.Name(), err), msgAndArgs...)
	}
	if !ok {
		return assert.Fail(t, c.Describe(), msgAndArgs...)
	}
	return true
}

// WaitFor waits for the condition on the page and fails the test if it is not met in time
func WaitFor(t RequireT, p *page.Page, c wait.Conditional, options ...wait.RetryOption) {
	t.Helper()
	failOnTimeout(t, p.WaitFor(c, options...))
}

// DoThenWaitFor runs the action, then waits for the condition on the page and
// fails the test if the action fails or the condition is not met in time
func DoThenWaitFor(t RequireT, p *page.Page, action func() error, c wait.Conditional, options ...wait.RetryOption) {
	t.Helper()
	failOnTimeout(t, p.DoThenWaitFor(action, c, options...))
}

func failOnTimeout(t RequireT, err error) {
	t.Helper()
	if wait.IsTimeout(err) {
		require.FailNow(t, fmt.Sprintf("Test failed after %s", err))
		return
	}
	require.NoError(t, err)
}

// AssertStructure runs the self-test of the page and reports every failure separately
func AssertStructure(t AssertT, p *page.Page) bool {
	t.Helper()
	err := p.SelfTest()
	if err == nil {
		return true
	}
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return assert.Fail(t, err.Error())
	}
	for _, e := range merr.Errors {
		assert.Fail(t, e.Error())
	}
	return false
}
