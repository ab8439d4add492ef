// Package launcher starts the browser session selected by the configuration
package launcher

import (
	"github.com/codeready-toolchain/toolchain-pageobjects/configuration"
	"github.com/codeready-toolchain/toolchain-pageobjects/driver"
	"github.com/codeready-toolchain/toolchain-pageobjects/driver/playwright"
	"github.com/codeready-toolchain/toolchain-pageobjects/driver/rod"
	"github.com/codeready-toolchain/toolchain-pageobjects/driver/selenium"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// New starts a session with the driver named in the configuration
func New(cfg configuration.Config) (driver.Driver, error) {
	klog.V(2).Infof("starting a %s session (browser: %s, headless: %t)", cfg.Driver, cfg.Browser, cfg.Headless)
	switch cfg.Driver {
	case configuration.DriverPlaywright:
		return started(playwright.New(playwright.Options{
			Browser:           cfg.Browser,
			Headless:          cfg.Headless,
			IgnoreHTTPSErrors: cfg.IgnoreHTTPSErrors,
			Tracing:           cfg.TraceDir != "",
		}))
	case configuration.DriverSelenium:
		return started(selenium.New(selenium.Options{
			URL:               cfg.SeleniumURL,
			Browser:           cfg.Browser,
			Headless:          cfg.Headless,
			IgnoreHTTPSErrors: cfg.IgnoreHTTPSErrors,
		}))
	case configuration.DriverRod:
		return started(rod.New(rod.Options{
			Headless:          cfg.Headless,
			IgnoreHTTPSErrors: cfg.IgnoreHTTPSErrors,
		}))
	}
	return nil, errors.Errorf("unsupported driver '%s'", cfg.Driver)
}

// started avoids returning a typed nil driver along with an error
func started[D driver.Driver](d D, err error) (driver.Driver, error) {
	if err != nil {
		return nil, err
	}
	return d, nil
}
