// Package selenium adapts a remote WebDriver session to the driver capability
package selenium

import (
	"strings"

	"github.com/codeready-toolchain/toolchain-pageobjects/driver"
	"github.com/codeready-toolchain/toolchain-pageobjects/locator"

	"github.com/pkg/errors"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
)

// Options configures the remote session
type Options struct {
	// URL is the address of the WebDriver server, eg. http://localhost:4444/wd/hub
	URL string
	// Browser is chrome or firefox
	Browser           string
	Headless          bool
	IgnoreHTTPSErrors bool
}

// Capabilities returns the capabilities requested for the session
func Capabilities(opts Options) (selenium.Capabilities, error) {
	caps := selenium.Capabilities{}
	switch opts.Browser {
	case "chrome", "chromium", "":
		caps["browserName"] = "chrome"
		args := []string{"--no-sandbox"}
		if opts.Headless {
			args = append(args, "--headless=new")
		}
		caps.AddChrome(chrome.Capabilities{Args: args, W3C: true})
	case "firefox":
		caps["browserName"] = "firefox"
		args := []string{}
		if opts.Headless {
			args = append(args, "-headless")
		}
		caps.AddFirefox(firefox.Capabilities{Args: args})
	default:
		return nil, errors.Errorf("unsupported browser: %s", opts.Browser)
	}
	if opts.IgnoreHTTPSErrors {
		caps["acceptInsecureCerts"] = true
	}
	return caps, nil
}

// New starts a session on the remote WebDriver server
func New(opts Options) (*Driver, error) {
	caps, err := Capabilities(opts)
	if err != nil {
		return nil, err
	}
	wd, err := selenium.NewRemote(caps, opts.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to start a %s session on '%s'", caps["browserName"], opts.URL)
	}
	return &Driver{wd: wd}, nil
}

var _ driver.Driver = &Driver{}

// Driver is a WebDriver session
type Driver struct {
	wd selenium.WebDriver
}

// WebDriver returns the underlying session
func (d *Driver) WebDriver() selenium.WebDriver {
	return d.wd
}

func (d *Driver) FindElement(by locator.Strategy, value string) (driver.Element, error) {
	return findElement(d.wd, by, value)
}

func (d *Driver) FindElements(by locator.Strategy, value string) ([]driver.Element, error) {
	return findElements(d.wd, by, value)
}

func (d *Driver) Navigate(url string) error {
	return errors.Wrapf(d.wd.Get(url), "unable to navigate to '%s'", url)
}

func (d *Driver) CurrentURL() (string, error) {
	return d.wd.CurrentURL()
}

func (d *Driver) Title() (string, error) {
	return d.wd.Title()
}

func (d *Driver) WindowHandles() ([]string, error) {
	return d.wd.WindowHandles()
}

func (d *Driver) NewPointer() driver.Pointer {
	return &pointer{wd: d.wd}
}

func (d *Driver) Close() error {
	return d.wd.Close()
}

func (d *Driver) Quit() error {
	return d.wd.Quit()
}

// finder is implemented by both selenium.WebDriver and selenium.WebElement
type finder interface {
	FindElement(by, value string) (selenium.WebElement, error)
	FindElements(by, value string) ([]selenium.WebElement, error)
}

// strategy translates the locator strategies which are not part of the W3C protocol into CSS selectors
func strategy(by locator.Strategy, value string) (string, string, error) {
	switch by {
	case locator.ByID, locator.ByName, locator.ByClassName:
		selector, err := driver.ToSelector(by, value)
		return selenium.ByCSSSelector, selector.Value, err
	case locator.ByTagName, locator.ByCSSSelector, locator.ByLinkText, locator.ByPartialLinkText, locator.ByXPath:
		return string(by), value, nil
	}
	return "", "", errors.Errorf("unsupported search strategy '%s'", by)
}

func findElement(f finder, by locator.Strategy, value string) (driver.Element, error) {
	using, v, err := strategy(by, value)
	if err != nil {
		return nil, err
	}
	e, err := f.FindElement(using, v)
	if err != nil {
		if isNoSuchElement(err) {
			return nil, driver.NotFound(string(by), value)
		}
		return nil, classify(err)
	}
	return &element{e: e}, nil
}

func findElements(f finder, by locator.Strategy, value string) ([]driver.Element, error) {
	using, v, err := strategy(by, value)
	if err != nil {
		return nil, err
	}
	found, err := f.FindElements(using, v)
	if err != nil {
		if isNoSuchElement(err) {
			return nil, nil
		}
		return nil, classify(err)
	}
	result := make([]driver.Element, len(found))
	for i, e := range found {
		result[i] = &element{e: e}
	}
	return result, nil
}

func isNoSuchElement(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such element")
}

func isStaleElement(err error) bool {
	return err != nil && strings.Contains(err.Error(), "stale element reference")
}

// isMissingValue returns true if the server answered with a null value, eg. for a missing attribute
func isMissingValue(err error) bool {
	return err != nil && strings.Contains(err.Error(), "nil return value")
}

// classify wraps the errors of the WebDriver server with the sentinels of the driver package
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case isStaleElement(err):
		return errors.Wrap(driver.ErrStaleElement, err.Error())
	case isNoSuchElement(err):
		return errors.Wrap(driver.ErrNoSuchElement, err.Error())
	}
	return err
}
