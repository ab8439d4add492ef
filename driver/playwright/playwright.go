// Package playwright adapts a playwright browser context to the driver capability
package playwright

import (
	"strings"

	"github.com/codeready-toolchain/toolchain-pageobjects/driver"
	"github.com/codeready-toolchain/toolchain-pageobjects/locator"

	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"github.com/playwright-community/playwright-go"
)

// Options configures the browser launched for the session
type Options struct {
	// Browser is chromium, firefox or webkit
	Browser           string
	Headless          bool
	IgnoreHTTPSErrors bool
	// Tracing records a trace of the session, which can be saved with Driver.SaveTrace
	Tracing bool
}

// New starts playwright, launches the browser and opens a page in a new context
func New(opts Options) (*Driver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, errors.Wrap(err, "unable to start playwright")
	}
	browser, err := launchBrowser(pw, opts)
	if err != nil {
		_ = pw.Stop()
		return nil, err
	}
	contextOpts := playwright.BrowserNewContextOptions{}
	if opts.IgnoreHTTPSErrors {
		contextOpts.IgnoreHttpsErrors = playwright.Bool(true)
	}
	context, err := browser.NewContext(contextOpts)
	if err != nil {
		_ = pw.Stop()
		return nil, errors.Wrap(err, "unable to create the browser context")
	}
	if opts.Tracing {
		err := context.Tracing().Start(playwright.TracingStartOptions{
			Screenshots: playwright.Bool(true),
			Snapshots:   playwright.Bool(true),
			Sources:     playwright.Bool(true),
		})
		if err != nil {
			_ = pw.Stop()
			return nil, errors.Wrap(err, "unable to start tracing")
		}
	}
	page, err := context.NewPage()
	if err != nil {
		_ = pw.Stop()
		return nil, errors.Wrap(err, "unable to open a page")
	}
	d := &Driver{
		pw:      pw,
		browser: browser,
		context: context,
		handles: map[playwright.Page]string{},
	}
	d.setPage(page)
	return d, nil
}

func launchBrowser(pw *playwright.Playwright, opts Options) (playwright.Browser, error) {
	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	}
	var browser playwright.Browser
	var err error
	switch opts.Browser {
	case "chromium", "":
		browser, err = pw.Chromium.Launch(launchOpts)
	case "firefox":
		browser, err = pw.Firefox.Launch(launchOpts)
	case "webkit":
		browser, err = pw.WebKit.Launch(launchOpts)
	default:
		return nil, errors.Errorf("unsupported browser: %s", opts.Browser)
	}
	return browser, errors.Wrapf(err, "unable to launch %s", opts.Browser)
}

var _ driver.Driver = &Driver{}
var _ driver.Tracer = &Driver{}

// Driver is a browser context showing the current page
type Driver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	// handles identifies the pages of the context
	handles map[playwright.Page]string
}

// Page returns the current page
func (d *Driver) Page() playwright.Page {
	return d.page
}

func (d *Driver) setPage(page playwright.Page) {
	d.page = page
	d.handle(page)
}

func (d *Driver) handle(page playwright.Page) string {
	h, found := d.handles[page]
	if !found {
		h = uuid.Must(uuid.NewV4()).String()
		d.handles[page] = h
	}
	return h
}

// FollowPopup runs the action, which opens a popup, then makes the popup the
// current page once it is loaded
func (d *Driver) FollowPopup(action func() error) error {
	popup, err := d.page.ExpectPopup(action)
	if err != nil {
		return errors.Wrap(err, "popup did not appear in time")
	}
	if err := popup.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateLoad,
	}); err != nil {
		return errors.Wrap(err, "popup did not finish loading")
	}
	d.setPage(popup)
	return nil
}

// SwitchTo makes the page with the given window handle the current page
func (d *Driver) SwitchTo(handle string) error {
	for _, p := range d.context.Pages() {
		if d.handle(p) == handle {
			d.page = p
			return nil
		}
	}
	return errors.Errorf("no window with handle '%s'", handle)
}

// SaveTrace stops the tracing and saves the trace to the given path
func (d *Driver) SaveTrace(path string) error {
	return d.context.Tracing().Stop(path)
}

func (d *Driver) FindElement(by locator.Strategy, value string) (driver.Element, error) {
	return findElement(d.page, by, value)
}

func (d *Driver) FindElements(by locator.Strategy, value string) ([]driver.Element, error) {
	return findElements(d.page, by, value)
}

func (d *Driver) Navigate(url string) error {
	_, err := d.page.Goto(url)
	return errors.Wrapf(err, "unable to navigate to '%s'", url)
}

func (d *Driver) CurrentURL() (string, error) {
	return d.page.URL(), nil
}

func (d *Driver) Title() (string, error) {
	return d.page.Title()
}

func (d *Driver) WindowHandles() ([]string, error) {
	pages := d.context.Pages()
	handles := make([]string, len(pages))
	for i, p := range pages {
		handles[i] = d.handle(p)
	}
	return handles, nil
}

func (d *Driver) NewPointer() driver.Pointer {
	return &pointer{}
}

// Close closes the current page, the first remaining page becomes the current one
func (d *Driver) Close() error {
	if err := d.page.Close(); err != nil {
		return err
	}
	delete(d.handles, d.page)
	if pages := d.context.Pages(); len(pages) > 0 {
		d.setPage(pages[0])
	}
	return nil
}

// Quit closes the browser and stops playwright
func (d *Driver) Quit() error {
	if err := d.browser.Close(); err != nil {
		return err
	}
	return d.pw.Stop()
}

// querier is implemented by both playwright.Page and playwright.ElementHandle
type querier interface {
	QuerySelectorAll(selector string) ([]playwright.ElementHandle, error)
}

// selectorOf returns the selector in the playwright selector syntax
func selectorOf(by locator.Strategy, value string) (string, error) {
	selector, err := driver.ToSelector(by, value)
	if err != nil {
		return "", err
	}
	if selector.XPath {
		return "xpath=" + selector.Value, nil
	}
	return "css=" + selector.Value, nil
}

func findElements(q querier, by locator.Strategy, value string) ([]driver.Element, error) {
	selector, err := selectorOf(by, value)
	if err != nil {
		return nil, err
	}
	found, err := q.QuerySelectorAll(selector)
	if err != nil {
		return nil, classify(err)
	}
	result := make([]driver.Element, len(found))
	for i, h := range found {
		result[i] = &element{h: h}
	}
	return result, nil
}

func findElement(q querier, by locator.Strategy, value string) (driver.Element, error) {
	all, err := findElements(q, by, value)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, driver.NotFound(string(by), value)
	}
	return all[0], nil
}

var staleMessages = []string{
	"Element is not attached to the DOM",
	"JSHandle is disposed",
	"Execution context was destroyed",
}

func isStale(err error) bool {
	if err == nil {
		return false
	}
	for _, msg := range staleMessages {
		if strings.Contains(err.Error(), msg) {
			return true
		}
	}
	return false
}

func classify(err error) error {
	if isStale(err) {
		return errors.Wrap(driver.ErrStaleElement, err.Error())
	}
	return err
}
