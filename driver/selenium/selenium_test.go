package selenium

import (
	"testing"

	"github.com/codeready-toolchain/toolchain-pageobjects/driver"
	"github.com/codeready-toolchain/toolchain-pageobjects/locator"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

func TestCapabilities(t *testing.T) {
	t.Run("chrome", func(t *testing.T) {
		// when
		caps, err := Capabilities(Options{Browser: "chrome", Headless: true, IgnoreHTTPSErrors: true})

		// then
		require.NoError(t, err)
		assert.Equal(t, "chrome", caps["browserName"])
		assert.Equal(t, true, caps["acceptInsecureCerts"])
		chromeCaps, ok := caps[chrome.CapabilitiesKey].(chrome.Capabilities)
		require.True(t, ok)
		assert.Contains(t, chromeCaps.Args, "--headless=new")
		assert.True(t, chromeCaps.W3C)
	})

	t.Run("firefox", func(t *testing.T) {
		// when
		caps, err := Capabilities(Options{Browser: "firefox"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "firefox", caps["browserName"])
		assert.NotContains(t, caps, "acceptInsecureCerts")
	})

	t.Run("unsupported browser", func(t *testing.T) {
		// when
		_, err := Capabilities(Options{Browser: "webkit"})

		// then
		require.EqualError(t, err, "unsupported browser: webkit")
	})
}

func TestStrategy(t *testing.T) {
	for _, tc := range []struct {
		by            locator.Strategy
		value         string
		expectedUsing string
		expectedValue string
	}{
		{locator.ByID, "home-q", selenium.ByCSSSelector, `[id="home-q"]`},
		{locator.ByName, "q", selenium.ByCSSSelector, `[name="q"]`},
		{locator.ByClassName, "search-trigger", selenium.ByCSSSelector, `[class~="search-trigger"]`},
		{locator.ByTagName, "header", selenium.ByTagName, "header"},
		{locator.ByLinkText, "Technologies", selenium.ByLinkText, "Technologies"},
		{locator.ByPartialLinkText, "Guides", selenium.ByPartialLinkText, "Guides"},
		{locator.ByCSSSelector, "header .logo", selenium.ByCSSSelector, "header .logo"},
		{locator.ByXPath, "//header", selenium.ByXPATH, "//header"},
	} {
		t.Run(string(tc.by), func(t *testing.T) {
			// when
			using, value, err := strategy(tc.by, tc.value)

			// then
			require.NoError(t, err)
			assert.Equal(t, tc.expectedUsing, using)
			assert.Equal(t, tc.expectedValue, value)
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		_, _, err := strategy("shadow", "x")
		require.EqualError(t, err, "unsupported search strategy 'shadow'")
	})
}

func TestClassify(t *testing.T) {
	t.Run("stale element", func(t *testing.T) {
		err := classify(errors.New("stale element reference: element is not attached to the page document"))
		assert.True(t, driver.IsStale(err))
		assert.False(t, driver.IsNotFound(err))
	})

	t.Run("no such element", func(t *testing.T) {
		err := classify(errors.New("no such element: Unable to locate element: {\"method\":\"css selector\"}"))
		assert.True(t, driver.IsNotFound(err))
	})

	t.Run("other", func(t *testing.T) {
		err := classify(assert.AnError)
		assert.Equal(t, assert.AnError, err)
	})

	t.Run("none", func(t *testing.T) {
		assert.NoError(t, classify(nil))
	})

	t.Run("missing value", func(t *testing.T) {
		assert.True(t, isMissingValue(errors.New("nil return value")))
		assert.False(t, isMissingValue(nil))
	})
}
