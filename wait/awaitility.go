package wait

import (
	"time"

	"github.com/codeready-toolchain/toolchain-pageobjects/testsupport/util"
)

var (
	DefaultRetryInterval = time.Millisecond * 100
	DefaultTimeout       = time.Second * 5
)

// For blocks until the condition is true, then sleeps for sleepAfter to let
// animations and transitions settle
func For(c *Condition, timeout, sleepAfter time.Duration) error {
	if err := c.WaitUntilTrue(timeout); err != nil {
		return err
	}
	time.Sleep(sleepAfter)
	return nil
}

// DoThenWaitFor runs the action and only then waits for the condition, so that
// the state before the action is never observed. An error returned by the
// action is returned as-is, without waiting.
func DoThenWaitFor(action func() error, c *Condition, timeout, sleepAfter time.Duration) error {
	if err := action(); err != nil {
		return err
	}
	return For(c, timeout, sleepAfter)
}

// Awaitility carries the settings of the waits performed on behalf of a page
type Awaitility struct {
	T             util.Logger
	RetryInterval time.Duration
	Timeout       time.Duration
	SleepAfter    time.Duration
}

// NewAwaitility returns an Awaitility with the default settings
func NewAwaitility(t util.Logger) *Awaitility {
	return &Awaitility{
		T:             util.OrDefault(t),
		RetryInterval: DefaultRetryInterval,
		Timeout:       DefaultTimeout,
	}
}

// RetryOption overrides a setting of an Awaitility
type RetryOption func(*Awaitility)

func RetryInterval(interval time.Duration) RetryOption {
	return func(a *Awaitility) {
		a.RetryInterval = interval
	}
}

func TimeoutOption(timeout time.Duration) RetryOption {
	return func(a *Awaitility) {
		a.Timeout = timeout
	}
}

func SleepAfter(d time.Duration) RetryOption {
	return func(a *Awaitility) {
		a.SleepAfter = d
	}
}

// WithRetryOptions returns a new Awaitility with the given RetryOptions applied
func (a *Awaitility) WithRetryOptions(options ...RetryOption) *Awaitility {
	result := *a
	for _, apply := range options {
		apply(&result)
	}
	return &result
}

// WaitFor blocks until the condition is true, then sleeps for SleepAfter
func (a *Awaitility) WaitFor(c *Condition) error {
	a.T.Logf("waiting up to %s for %s", a.Timeout, c.Name())
	if err := c.poll(a.RetryInterval, a.Timeout); err != nil {
		a.T.Logf("%s", err)
		return err
	}
	time.Sleep(a.SleepAfter)
	return nil
}

// DoThenWaitFor runs the action, then waits for the condition
func (a *Awaitility) DoThenWaitFor(action func() error, c *Condition) error {
	if err := action(); err != nil {
		return err
	}
	return a.WaitFor(c)
}
