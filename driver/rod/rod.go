// Package rod adapts a Chrome DevTools Protocol session driven by go-rod to the
// driver capability
package rod

import (
	"strings"

	"github.com/codeready-toolchain/toolchain-pageobjects/driver"
	"github.com/codeready-toolchain/toolchain-pageobjects/locator"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pkg/errors"
)

// Options configures the browser launched for the session
type Options struct {
	Headless          bool
	IgnoreHTTPSErrors bool
	// ControlURL connects to a running browser instead of launching one
	ControlURL string
}

// New launches a browser (or connects to the one at Options.ControlURL) and opens a blank page
func New(opts Options) (*Driver, error) {
	u := opts.ControlURL
	if u == "" {
		l := launcher.New().Headless(opts.Headless)
		if path, found := launcher.LookPath(); found {
			l = l.Bin(path)
		}
		if opts.IgnoreHTTPSErrors {
			l = l.Set("ignore-certificate-errors")
		}
		var err error
		if u, err = l.Launch(); err != nil {
			return nil, errors.Wrap(err, "unable to launch the browser")
		}
	}
	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, errors.Wrapf(err, "unable to connect to the browser at '%s'", u)
	}
	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, errors.Wrap(err, "unable to open a page")
	}
	return &Driver{browser: browser, page: page}, nil
}

var _ driver.Driver = &Driver{}

// Driver is a browser session showing the current page
type Driver struct {
	browser *rod.Browser
	page    *rod.Page
}

// Page returns the current page
func (d *Driver) Page() *rod.Page {
	return d.page
}

func (d *Driver) FindElement(by locator.Strategy, value string) (driver.Element, error) {
	return findElement(d.page, d.page, by, value)
}

func (d *Driver) FindElements(by locator.Strategy, value string) ([]driver.Element, error) {
	return findElements(d.page, d.page, by, value)
}

func (d *Driver) Navigate(url string) error {
	if err := d.page.Navigate(url); err != nil {
		return errors.Wrapf(err, "unable to navigate to '%s'", url)
	}
	return d.page.WaitLoad()
}

func (d *Driver) CurrentURL() (string, error) {
	info, err := d.page.Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

func (d *Driver) Title() (string, error) {
	info, err := d.page.Info()
	if err != nil {
		return "", err
	}
	return info.Title, nil
}

func (d *Driver) WindowHandles() ([]string, error) {
	pages, err := d.browser.Pages()
	if err != nil {
		return nil, err
	}
	handles := make([]string, len(pages))
	for i, p := range pages {
		handles[i] = string(p.TargetID)
	}
	return handles, nil
}

func (d *Driver) NewPointer() driver.Pointer {
	return &pointer{d: d}
}

// Close closes the current page, the first remaining page becomes the current one
func (d *Driver) Close() error {
	if err := d.page.Close(); err != nil {
		return err
	}
	pages, err := d.browser.Pages()
	if err != nil {
		return err
	}
	if len(pages) > 0 {
		d.page = pages.First()
	}
	return nil
}

func (d *Driver) Quit() error {
	return d.browser.Close()
}

// container is implemented by both *rod.Page and *rod.Element
type container interface {
	Elements(selector string) (rod.Elements, error)
	ElementsX(xpath string) (rod.Elements, error)
}

func findElements(page *rod.Page, c container, by locator.Strategy, value string) ([]driver.Element, error) {
	selector, err := driver.ToSelector(by, value)
	if err != nil {
		return nil, err
	}
	var found rod.Elements
	if selector.XPath {
		found, err = c.ElementsX(selector.Value)
	} else {
		found, err = c.Elements(selector.Value)
	}
	if err != nil {
		return nil, classify(err)
	}
	result := make([]driver.Element, len(found))
	for i, e := range found {
		result[i] = &element{page: page, e: e}
	}
	return result, nil
}

func findElement(page *rod.Page, c container, by locator.Strategy, value string) (driver.Element, error) {
	all, err := findElements(page, c, by, value)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, driver.NotFound(string(by), value)
	}
	return all[0], nil
}

var staleMessages = []string{
	"Cannot find context with specified id",
	"Could not find node with given id",
	"Could not find object with given id",
	"Node is detached from document",
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

// classify wraps the protocol errors about detached nodes with driver.ErrStaleElement
func classify(err error) error {
	if isStale(err) {
		return errors.Wrap(driver.ErrStaleElement, err.Error())
	}
	return err
}
