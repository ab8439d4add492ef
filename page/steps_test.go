package page_test

import (
	"testing"
	"time"

	"github.com/codeready-toolchain/toolchain-pageobjects/doubles"
	"github.com/codeready-toolchain/toolchain-pageobjects/locator"
	"github.com/codeready-toolchain/toolchain-pageobjects/page"
	"github.com/codeready-toolchain/toolchain-pageobjects/wait"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementAt(t *testing.T) {
	// given
	d := doubles.NewDocument()
	p := newPage(t, d, locator.Elements{
		"header": locator.New(locator.ByTagName, "header", locator.Children(locator.Elements{
			"menu": locator.New(locator.ByID, "menu"),
		})),
	})

	t.Run("nested", func(t *testing.T) {
		// when
		e, err := p.ElementAt("header.menu")

		// then
		require.NoError(t, err)
		assert.Same(t, p.Element("header").Child("menu"), e)
	})

	t.Run("unknown", func(t *testing.T) {
		for _, path := range []string{"footer", "header.search", "header.menu.item"} {
			_, err := p.ElementAt(path)
			require.EqualError(t, err, "page 'test' has no element '"+path+"'")
		}
	})
}

func TestStepsSetup(t *testing.T) {
	newMenuPage := func(t *testing.T, steps locator.SetupSteps) (*doubles.Document, *page.Page) {
		d := doubles.NewDocument()
		nav := doubles.El("nav")
		panel := doubles.El("ul", doubles.ID("panel"))
		d.SetBody("test", nav)
		d.Append(nav, doubles.El("a", doubles.ID("toggle"), doubles.OnHover(func() {
			d.Append(nav, panel)
		}), doubles.OnClick(func() {
			d.Remove(panel)
		})))
		decl := page.Declaration{
			Name: "menu",
			Elements: locator.Elements{
				"nav": locator.New(locator.ByTagName, "nav", locator.Children(locator.Elements{
					"toggle": locator.New(locator.ByID, "toggle"),
					"panel":  locator.New(locator.ByID, "panel", locator.TestSetup("openMenu")),
				})),
			},
			Setups: page.StepsSetups(map[string]locator.SetupSteps{"openMenu": steps}),
		}
		p, err := page.New(d, decl, page.WithLogger(t), page.WithRetryOptions(wait.TimeoutOption(200*time.Millisecond)))
		require.NoError(t, err)
		return d, p
	}

	t.Run("acquired and released", func(t *testing.T) {
		// given
		_, p := newMenuPage(t, locator.SetupSteps{
			Acquire: []locator.SetupStep{{Hover: "nav.toggle"}, {WaitVisible: "nav.panel"}},
			Release: []locator.SetupStep{{Click: "nav.toggle"}, {WaitInvisible: "nav.panel"}},
		})

		// when
		err := p.SelfTest()

		// then
		require.NoError(t, err)
		assert.True(t, p.Element("nav").Child("panel").IsInvisible().IsTrue())
	})

	t.Run("failing step", func(t *testing.T) {
		// given
		_, p := newMenuPage(t, locator.SetupSteps{
			Acquire: []locator.SetupStep{{WaitPresent: "nav.panel"}},
		})

		// when
		err := p.SelfTest()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "test setup 'openMenu' failed: step #1 (waitPresent nav.panel) failed: condition presence_of_element_located was not met for locator (id, panel) in 200ms")
	})
}
