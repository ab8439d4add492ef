// Package pagetest runs page-object tests: one browser session shared by the
// tests of a suite, and the root page loaded again before each test.
package pagetest

import (
	"sort"
	"testing"

	"github.com/codeready-toolchain/toolchain-pageobjects/driver"
	"github.com/codeready-toolchain/toolchain-pageobjects/page"
	"github.com/codeready-toolchain/toolchain-pageobjects/testsupport/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Lifecycle owns the browser session and the current page of a test suite
type Lifecycle struct {
	// NewDriver starts the browser session
	NewDriver func() (driver.Driver, error)
	// Declaration is the page loaded before each test
	Declaration page.Declaration
	Options     []page.Option
	// TraceDir is where the trace of a failed suite is saved, when the driver records one
	TraceDir string

	driver driver.Driver
	page   *page.Page
}

// Setup starts the browser session
func (l *Lifecycle) Setup(t RequireT) {
	t.Helper()
	d, err := l.NewDriver()
	require.NoError(t, err, "unable to start the browser session")
	l.driver = d
	util.LogWithTimestamp(t, "browser session started")
}

// Teardown ends the browser session
func (l *Lifecycle) Teardown(t AssertT) {
	t.Helper()
	if l.driver == nil {
		return
	}
	l.saveTrace(t)
	assert.NoError(t, l.driver.Quit(), "unable to end the browser session")
	l.driver = nil
	l.page = nil
	util.LogWithTimestamp(t, "browser session ended")
}

// BeforeEach loads the page of the suite again and drops the queued pointer gestures
func (l *Lifecycle) BeforeEach(t RequireT) *page.Page {
	t.Helper()
	p := l.GetPage(t, l.Declaration)
	require.NoError(t, p.Mouse().Reset())
	return p
}

// SetPage makes the declared page the current page, without navigating
func (l *Lifecycle) SetPage(t RequireT, decl page.Declaration) *page.Page {
	t.Helper()
	require.NotNil(t, l.driver, "the browser session is not started")
	options := append([]page.Option{page.WithLogger(t)}, l.Options...)
	p, err := page.New(l.driver, decl, options...)
	require.NoError(t, err)
	l.page = p
	return p
}

// GetPage makes the declared page the current page and navigates to it
func (l *Lifecycle) GetPage(t RequireT, decl page.Declaration) *page.Page {
	t.Helper()
	p := l.SetPage(t, decl)
	failOnTimeout(t, p.Get())
	return p
}

// Page returns the current page
func (l *Lifecycle) Page() *page.Page {
	return l.page
}

func (l *Lifecycle) Driver() driver.Driver {
	return l.driver
}

// Run runs the tests in a single browser session, in the order of their names
func (l *Lifecycle) Run(t *testing.T, tests map[string]func(t *testing.T, p *page.Page)) {
	l.Setup(t)
	defer l.Teardown(t)
	names := make([]string, 0, len(tests))
	for name := range tests {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		test := tests[name]
		t.Run(name, func(t *testing.T) {
			test(t, l.BeforeEach(t))
		})
	}
}
