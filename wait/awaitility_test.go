package wait_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/codeready-toolchain/toolchain-pageobjects/doubles"
	"github.com/codeready-toolchain/toolchain-pageobjects/locator"
	"github.com/codeready-toolchain/toolchain-pageobjects/wait"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Logf(format string, args ...any) {
	l.messages = append(l.messages, fmt.Sprintf(format, args...))
}

func TestDoThenWaitFor(t *testing.T) {
	t.Run("action completes before the first check", func(t *testing.T) {
		// given
		d := doubles.NewDocument()
		c := wait.PresenceOfElementLocated(wait.StaticScope(d), locator.New(locator.ByID, "menu"))
		lookupsDuringAction := -1

		// when
		err := wait.DoThenWaitFor(func() error {
			lookupsDuringAction = d.Lookups()
			d.SetBody("test", doubles.El("nav", doubles.ID("menu")))
			return nil
		}, c, time.Second, 0)

		// then
		require.NoError(t, err)
		assert.Equal(t, 0, lookupsDuringAction)
		assert.Equal(t, 1, d.Lookups())
	})

	t.Run("action error is returned without waiting", func(t *testing.T) {
		// given
		d := doubles.NewDocument()
		c := wait.PresenceOfElementLocated(wait.StaticScope(d), locator.New(locator.ByID, "menu"))

		// when
		err := wait.DoThenWaitFor(func() error {
			return assert.AnError
		}, c, time.Second, 0)

		// then
		require.Equal(t, assert.AnError, err)
		assert.Equal(t, 0, d.Lookups())
	})

	t.Run("sleeps after the condition is met", func(t *testing.T) {
		// given
		d := doubles.NewDocument()
		c := wait.PresenceOfElementLocated(wait.StaticScope(d), locator.New(locator.ByTagName, "body"))
		start := time.Now()

		// when
		err := wait.For(c, time.Second, 200*time.Millisecond)

		// then
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
	})
}

func TestAwaitility(t *testing.T) {
	t.Run("retry options", func(t *testing.T) {
		// given
		a := wait.NewAwaitility(nil)

		// when
		custom := a.WithRetryOptions(wait.TimeoutOption(time.Minute), wait.RetryInterval(time.Second), wait.SleepAfter(time.Millisecond))

		// then
		assert.Equal(t, time.Minute, custom.Timeout)
		assert.Equal(t, time.Second, custom.RetryInterval)
		assert.Equal(t, time.Millisecond, custom.SleepAfter)
		// the original settings are left untouched
		assert.Equal(t, wait.DefaultTimeout, a.Timeout)
		assert.Equal(t, wait.DefaultRetryInterval, a.RetryInterval)
		assert.Zero(t, a.SleepAfter)
	})

	t.Run("logs the wait", func(t *testing.T) {
		// given
		logger := &recordingLogger{}
		d := doubles.NewDocument()
		a := wait.NewAwaitility(logger).WithRetryOptions(wait.TimeoutOption(200 * time.Millisecond))

		// when
		err := a.WaitFor(wait.PresenceOfElementLocated(wait.StaticScope(d), locator.New(locator.ByID, "never")))

		// then
		require.True(t, wait.IsTimeout(err))
		assert.Equal(t, []string{
			"waiting up to 200ms for presence_of_element_located",
			"condition presence_of_element_located was not met for locator (id, never) in 200ms",
		}, logger.messages)
	})

	t.Run("do then wait", func(t *testing.T) {
		// given
		d := doubles.NewDocument()
		a := wait.NewAwaitility(t).WithRetryOptions(wait.RetryInterval(10 * time.Millisecond))

		// when
		err := a.DoThenWaitFor(func() error {
			return d.Navigate("https://example.com/")
		}, wait.URLContains(d, "example.com"))

		// then
		require.NoError(t, err)
	})
}
