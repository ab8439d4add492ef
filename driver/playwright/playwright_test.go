package playwright

import (
	"testing"

	"github.com/codeready-toolchain/toolchain-pageobjects/driver"
	"github.com/codeready-toolchain/toolchain-pageobjects/locator"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorOf(t *testing.T) {
	for _, tc := range []struct {
		by       locator.Strategy
		value    string
		expected string
	}{
		{locator.ByID, "home-q", `css=[id="home-q"]`},
		{locator.ByTagName, "header", "css=header"},
		{locator.ByCSSSelector, "header .logo", "css=header .logo"},
		{locator.ByLinkText, "Technologies", `xpath=.//a[normalize-space(.)="Technologies"]`},
		{locator.ByXPath, "//header", "xpath=//header"},
	} {
		t.Run(string(tc.by), func(t *testing.T) {
			// when
			selector, err := selectorOf(tc.by, tc.value)

			// then
			require.NoError(t, err)
			assert.Equal(t, tc.expected, selector)
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		_, err := selectorOf("shadow", "x")
		require.EqualError(t, err, "unsupported search strategy 'shadow'")
	})
}

func TestClassify(t *testing.T) {
	assert.True(t, driver.IsStale(classify(errors.New("elementHandle.click: Element is not attached to the DOM"))))
	assert.True(t, driver.IsStale(classify(errors.New("JSHandle is disposed"))))
	assert.Equal(t, assert.AnError, classify(assert.AnError))
	assert.NoError(t, classify(nil))
}

func TestLaunchUnsupportedBrowser(t *testing.T) {
	_, err := launchBrowser(nil, Options{Browser: "safari"})
	require.EqualError(t, err, "unsupported browser: safari")
}
