package wait

import (
	"context"
	"fmt"
	"time"

	"github.com/codeready-toolchain/toolchain-pageobjects/driver"
	"github.com/codeready-toolchain/toolchain-pageobjects/metrics"

	"github.com/pkg/errors"
	k8swait "k8s.io/apimachinery/pkg/util/wait"
)

// Scope returns the document or element a condition is evaluated against.
// It is called on each evaluation so that elements which are not rendered yet
// can be polled.
type Scope func() (driver.Finder, error)

// StaticScope returns a Scope that always evaluates to the given finder
func StaticScope(f driver.Finder) Scope {
	return func() (driver.Finder, error) {
		return f, nil
	}
}

// Predicate tests the state of the document or element
type Predicate func(scope driver.Finder) (bool, error)

// Condition is a predicate bound to the scope it is evaluated against
type Condition struct {
	name      string
	subject   string
	scope     Scope
	predicate Predicate
}

// ConditionOption configures the description of a Condition
type ConditionOption func(*Condition)

// ForLocator mentions the locator in the description of the condition
func ForLocator(l fmt.Stringer) ConditionOption {
	return func(c *Condition) {
		c.subject = "locator " + l.String()
	}
}

// ForPattern mentions the pattern in the description of the condition
func ForPattern(pattern string) ConditionOption {
	return func(c *Condition) {
		c.subject = "pattern " + pattern
	}
}

// NewCondition returns a new Condition
func NewCondition(name string, scope Scope, predicate Predicate, options ...ConditionOption) *Condition {
	c := &Condition{
		name:      name,
		scope:     scope,
		predicate: predicate,
	}
	for _, apply := range options {
		apply(c)
	}
	return c
}

func (c *Condition) Name() string {
	return c.name
}

// Check evaluates the predicate against the scope. A scope or an element which
// cannot be found, or which went stale, makes the condition false.
func (c *Condition) Check() (bool, error) {
	scope, err := c.scope()
	if err != nil {
		return false, ignoreMissing(err)
	}
	ok, err := c.predicate(scope)
	if err != nil {
		return false, ignoreMissing(err)
	}
	return ok, nil
}

// IsTrue evaluates the condition, treating any error as false
func (c *Condition) IsTrue() bool {
	ok, _ := c.Check()
	return ok
}

// Describe returns the message used when the condition is not met
func (c *Condition) Describe() string {
	msg := fmt.Sprintf("condition %s was not met", c.name)
	if c.subject != "" {
		msg = fmt.Sprintf("%s for %s", msg, c.subject)
	}
	return msg
}

func (c *Condition) String() string {
	return c.Describe()
}

// AsCondition returns the condition itself
func (c *Condition) AsCondition(Scope) *Condition {
	return c
}

// WaitUntilTrue polls the condition at DefaultRetryInterval until it is true or
// the timeout elapsed. It returns a *ConditionTimeoutError in the latter case.
func (c *Condition) WaitUntilTrue(timeout time.Duration) error {
	return c.poll(DefaultRetryInterval, timeout)
}

func (c *Condition) poll(interval, timeout time.Duration) error {
	start := time.Now()
	err := k8swait.PollUntilContextTimeout(context.TODO(), interval, timeout, true, func(ctx context.Context) (bool, error) {
		return c.Check()
	})
	elapsed := time.Since(start).Seconds()
	if err == nil {
		metrics.ConditionWaitDuration.WithLabelValues(c.name, metrics.ResultSuccess).Observe(elapsed)
		return nil
	}
	if k8swait.Interrupted(err) {
		metrics.ConditionWaitDuration.WithLabelValues(c.name, metrics.ResultTimeout).Observe(elapsed)
		return &ConditionTimeoutError{
			Description: c.Describe(),
			Timeout:     timeout,
		}
	}
	metrics.ConditionWaitDuration.WithLabelValues(c.name, metrics.ResultError).Observe(elapsed)
	return errors.Wrapf(err, "unable to evaluate condition %s", c.name)
}

func ignoreMissing(err error) error {
	if driver.IsNotFound(err) || driver.IsStale(err) {
		return nil
	}
	return err
}

// Conditional is anything that can be waited for
type Conditional interface {
	// AsCondition returns the condition to evaluate, using the given scope if
	// the conditional is not bound to one already
	AsCondition(scope Scope) *Condition
}

// CheckFunc is a plain check that can be waited for
type CheckFunc func() bool

func (f CheckFunc) AsCondition(scope Scope) *Condition {
	return NewCondition("check", scope, func(driver.Finder) (bool, error) {
		return f(), nil
	})
}
