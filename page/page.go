// Package page binds declared locator trees to a browser session as lazily
// resolved element proxies, and provides the waits the tests are built on.
package page

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/codeready-toolchain/toolchain-pageobjects/driver"
	"github.com/codeready-toolchain/toolchain-pageobjects/locator"
	"github.com/codeready-toolchain/toolchain-pageobjects/testsupport/util"
	"github.com/codeready-toolchain/toolchain-pageobjects/wait"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// SetupFunc prepares the page before the self-test of an element, eg. by
// opening the menu containing it. The returned function undoes the preparation.
type SetupFunc func(p *Page) (release func() error, err error)

// Declaration is the static description of a page
type Declaration struct {
	Name string
	// URL is an anchored regular expression matching the URL of the page
	URL      string
	Elements locator.Elements
	// Setups are the test setups the elements refer to by name
	Setups map[string]SetupFunc
	// Navigate replaces the navigation to the literal URL, for the pages which
	// are reached by clicking through other pages
	Navigate func(p *Page) error
}

// DefaultDeclaration is the blank page every page declaration can extend
var DefaultDeclaration = Declaration{
	Name: "page",
	URL:  "^about:blank$",
	Elements: locator.Elements{
		"head": locator.New(locator.ByTagName, "head"),
		"body": locator.New(locator.ByTagName, "body"),
	},
}

// Extend returns a new declaration with the URL extended and the given
// elements added to (or replacing) the elements of this declaration
func (d Declaration) Extend(name, urlExtension string, elements locator.Elements) Declaration {
	setups := map[string]SetupFunc{}
	for k, v := range d.Setups {
		setups[k] = v
	}
	return Declaration{
		Name:     name,
		URL:      ExtendURL(d.URL, urlExtension),
		Elements: d.Elements.Extend(elements),
		Setups:   setups,
		Navigate: d.Navigate,
	}
}

// ExtendURL inserts the extension before the trailing anchor of the pattern,
// eg. `^/a$` extended with `/b` is `^/a/b$`
func ExtendURL(pattern, extension string) string {
	if strings.HasSuffix(pattern, "$") {
		return strings.TrimSuffix(pattern, "$") + extension + "$"
	}
	return pattern + extension
}

var escapedChar = regexp.MustCompile(`\\([^a-zA-Z0-9])`)

// LiteralURL returns the URL to navigate to for the given pattern: the anchors
// are removed and the escaped characters are unescaped
func LiteralURL(pattern string) string {
	url := strings.TrimSuffix(strings.TrimPrefix(pattern, "^"), "$")
	return escapedChar.ReplaceAllString(url, "$1")
}

// Page is a browser session bound to the element proxies of a declaration
type Page struct {
	decl     Declaration
	driver   driver.Driver
	elements map[string]*Element
	await    *wait.Awaitility
	mouse    *ActionChain
}

// Option configures a Page
type Option func(*Page)

// WithLogger sets the logger of the waits, eg. the *testing.T of the test
func WithLogger(l util.Logger) Option {
	return func(p *Page) {
		p.await.T = util.OrDefault(l)
	}
}

// WithRetryOptions sets the default settings of the waits performed by the page
func WithRetryOptions(options ...wait.RetryOption) Option {
	return func(p *Page) {
		p.await = p.await.WithRetryOptions(options...)
	}
}

// New binds the declaration to the driver. The element proxies of the whole
// tree are created, none of them is resolved.
func New(d driver.Driver, decl Declaration, options ...Option) (*Page, error) {
	if decl.Name == "" {
		decl.Name = DefaultDeclaration.Name
	}
	if decl.URL == "" {
		decl.URL = DefaultDeclaration.URL
	}
	if _, err := regexp.Compile(decl.URL); err != nil {
		return nil, errors.Wrapf(err, "invalid url pattern of page '%s'", decl.Name)
	}
	if err := decl.Elements.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid elements of page '%s'", decl.Name)
	}
	p := &Page{
		decl:     decl,
		driver:   d,
		elements: map[string]*Element{},
		await:    wait.NewAwaitility(nil),
	}
	p.mouse = newActionChain(d)
	for name, l := range decl.Elements {
		p.elements[name] = newElement(name, p, nil, l)
	}
	for _, apply := range options {
		apply(p)
	}
	return p, nil
}

func (p *Page) Name() string {
	return p.decl.Name
}

// URL returns the pattern of the URL of the page
func (p *Page) URL() string {
	return p.decl.URL
}

func (p *Page) Declaration() Declaration {
	return p.decl
}

// Driver returns the underlying browser session
func (p *Page) Driver() driver.Driver {
	return p.driver
}

// Awaitility returns the settings of the waits performed by the page
func (p *Page) Awaitility() *wait.Awaitility {
	return p.await
}

// Lookup returns the top-level element with the given name
func (p *Page) Lookup(name string) (*Element, bool) {
	e, found := p.elements[name]
	return e, found
}

// Element returns the top-level element with the given name. It panics if no
// such element is declared.
func (p *Page) Element(name string) *Element {
	e, found := p.elements[name]
	if !found {
		panic(fmt.Sprintf("page '%s' has no element '%s'", p.decl.Name, name))
	}
	return e
}

// Names returns the sorted names of the top-level elements
func (p *Page) Names() []string {
	return p.decl.Elements.Names()
}

// NavigateTo navigates to the literal form of the URL pattern, or runs the
// navigation of the declaration if there is one
func (p *Page) NavigateTo() error {
	if p.decl.Navigate != nil {
		return p.decl.Navigate(p)
	}
	return p.driver.Navigate(LiteralURL(p.decl.URL))
}

// Get navigates to the page and waits until the URL matches the pattern of the page
func (p *Page) Get(options ...wait.RetryOption) error {
	return p.DoThenWaitFor(p.NavigateTo, p.URLMatches(p.decl.URL), options...)
}

// WaitFor waits until the condition is true. A wait.CheckFunc is evaluated
// against the whole document.
func (p *Page) WaitFor(c wait.Conditional, options ...wait.RetryOption) error {
	return p.await.WithRetryOptions(options...).WaitFor(c.AsCondition(wait.StaticScope(p.driver)))
}

// DoThenWaitFor runs the action, then waits until the condition is true
func (p *Page) DoThenWaitFor(action func() error, c wait.Conditional, options ...wait.RetryOption) error {
	return p.await.WithRetryOptions(options...).DoThenWaitFor(action, c.AsCondition(wait.StaticScope(p.driver)))
}

// SelfTest runs the self-test of all the top-level elements
func (p *Page) SelfTest() error {
	var result *multierror.Error
	for _, name := range p.Names() {
		result = multierror.Append(result, p.elements[name].SelfTest())
	}
	return result.ErrorOrNil()
}

func (p *Page) acquireSetup(name string) (func() error, error) {
	if name == "" {
		return func() error { return nil }, nil
	}
	setup, found := p.decl.Setups[name]
	if !found {
		return nil, errors.Errorf("test setup '%s' is not declared on page '%s'", name, p.decl.Name)
	}
	release, err := setup(p)
	if err != nil {
		return nil, errors.Wrapf(err, "test setup '%s' failed", name)
	}
	if release == nil {
		release = func() error { return nil }
	}
	return release, nil
}

func (p *Page) Title() (string, error) {
	return p.driver.Title()
}

func (p *Page) CurrentURL() (string, error) {
	return p.driver.CurrentURL()
}

// WindowCount returns the number of open windows
func (p *Page) WindowCount() (int, error) {
	handles, err := p.driver.WindowHandles()
	return len(handles), err
}

// Close closes the current window
func (p *Page) Close() error {
	return p.driver.Close()
}

// Quit closes all the windows and ends the session
func (p *Page) Quit() error {
	return p.driver.Quit()
}

// Mouse returns the pointer gestures of the page
func (p *Page) Mouse() *ActionChain {
	return p.mouse
}

// URLChanges is true when the URL differs from the current one
func (p *Page) URLChanges() *wait.Condition {
	current, err := p.driver.CurrentURL()
	if err != nil {
		return p.failedCondition("url_changes", errors.Wrap(err, "unable to read the current URL"))
	}
	return wait.URLChanges(p.driver, current)
}

func (p *Page) URLContains(s string) *wait.Condition {
	return wait.URLContains(p.driver, s)
}

func (p *Page) URLMatches(pattern string) *wait.Condition {
	return wait.URLMatches(p.driver, pattern)
}

func (p *Page) URLIs(url string) *wait.Condition {
	return wait.URLIs(p.driver, url)
}

// NewWindowIsOpened is true when there are more windows than the given ones,
// or than the current ones if none are given
func (p *Page) NewWindowIsOpened(handles ...string) *wait.Condition {
	if len(handles) == 0 {
		var err error
		if handles, err = p.driver.WindowHandles(); err != nil {
			return p.failedCondition("new_window_is_opened", errors.Wrap(err, "unable to list the windows"))
		}
	}
	return wait.NewWindowIsOpened(p.driver, handles)
}

// failedCondition reports the error the condition could not be built with
// each time it is checked
func (p *Page) failedCondition(name string, err error) *wait.Condition {
	return wait.NewCondition(name, wait.StaticScope(p.driver), func(driver.Finder) (bool, error) {
		return false, err
	})
}
