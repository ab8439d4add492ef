package launcher

import (
	"testing"

	"github.com/codeready-toolchain/toolchain-pageobjects/configuration"

	"github.com/stretchr/testify/require"
)

func TestNewWithUnsupportedDriver(t *testing.T) {
	// given
	cfg := configuration.Config{Driver: "puppeteer"}

	// when
	d, err := New(cfg)

	// then
	require.EqualError(t, err, "unsupported driver 'puppeteer'")
	require.Nil(t, d)
}

func TestNewWithUnsupportedBrowser(t *testing.T) {
	// given
	cfg := configuration.Config{Driver: configuration.DriverSelenium, Browser: "lynx"}

	// when
	_, err := New(cfg)

	// then
	require.EqualError(t, err, "unsupported browser: lynx")
}
