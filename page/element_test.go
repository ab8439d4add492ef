package page_test

import (
	"testing"

	"github.com/codeready-toolchain/toolchain-pageobjects/doubles"
	"github.com/codeready-toolchain/toolchain-pageobjects/driver"
	"github.com/codeready-toolchain/toolchain-pageobjects/locator"
	"github.com/codeready-toolchain/toolchain-pageobjects/metrics"
	"github.com/codeready-toolchain/toolchain-pageobjects/page"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staleDriver returns elements which always report being stale
type staleDriver struct {
	*doubles.Document
}

func (d staleDriver) FindElement(by locator.Strategy, value string) (driver.Element, error) {
	e, err := d.Document.FindElement(by, value)
	if err != nil {
		return nil, err
	}
	return staleElement{Element: e}, nil
}

type staleElement struct {
	driver.Element
}

func (staleElement) IsStale() (bool, error) {
	return true, nil
}

func newPage(t *testing.T, d driver.Driver, elements locator.Elements) *page.Page {
	p, err := page.New(d, page.Declaration{Name: "test", Elements: elements}, page.WithLogger(t))
	require.NoError(t, err)
	return p
}

func TestResolve(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		// given
		d := doubles.NewDocument()
		search := doubles.El("input", doubles.ID("home-q"))
		d.SetBody("test", search)
		p := newPage(t, d, locator.Elements{"search": locator.New(locator.ByID, "home-q")})
		e := p.Element("search")
		require.Equal(t, page.Unresolved, e.State())

		// when
		handle, err := e.Resolve()

		// then
		require.NoError(t, err)
		assert.Same(t, search, doubles.NodeOf(handle))
		assert.Equal(t, page.Found, e.State())
		assert.Equal(t, 1, d.Lookups())
	})

	t.Run("cached", func(t *testing.T) {
		// given
		d := doubles.NewDocument()
		d.SetBody("test", doubles.El("input", doubles.ID("home-q")))
		p := newPage(t, d, locator.Elements{"search": locator.New(locator.ByID, "home-q")})
		e := p.Element("search")
		first, err := e.Resolve()
		require.NoError(t, err)

		// when
		second, err := e.Resolve()

		// then
		require.NoError(t, err)
		assert.Same(t, doubles.NodeOf(first), doubles.NodeOf(second))
		assert.Equal(t, 1, d.Lookups())
	})

	t.Run("nested", func(t *testing.T) {
		// given
		d := doubles.NewDocument()
		link := doubles.El("a", doubles.Text("Technologies"))
		d.SetBody("test",
			doubles.El("footer", doubles.Containing(doubles.El("a", doubles.Text("Technologies")))),
			doubles.El("header", doubles.Containing(link)))
		p := newPage(t, d, locator.Elements{
			"header": locator.New(locator.ByTagName, "header", locator.Children(locator.Elements{
				"dropdown": locator.New(locator.ByLinkText, "Technologies"),
			})),
		})

		// when
		handle, err := p.Element("header").Child("dropdown").Resolve()

		// then
		require.NoError(t, err)
		assert.Same(t, link, doubles.NodeOf(handle))
		assert.Equal(t, page.Found, p.Element("header").State())
	})

	t.Run("replaced element is looked up again", func(t *testing.T) {
		// given
		d := doubles.NewDocument()
		old := doubles.El("input", doubles.ID("home-q"))
		d.SetBody("test", old)
		p := newPage(t, d, locator.Elements{"search": locator.New(locator.ByID, "home-q")})
		e := p.Element("search")
		_, err := e.Resolve()
		require.NoError(t, err)
		replacement := doubles.El("input", doubles.ID("home-q"))
		d.Replace(old, replacement)
		refreshed := testutil.ToFloat64(metrics.ElementResolutions.WithLabelValues(metrics.ResolutionRefreshed))

		// when
		handle, err := e.Resolve()

		// then
		require.NoError(t, err)
		assert.Same(t, replacement, doubles.NodeOf(handle))
		assert.Equal(t, 2, d.Lookups())
		assert.Equal(t, refreshed+1, testutil.ToFloat64(metrics.ElementResolutions.WithLabelValues(metrics.ResolutionRefreshed)))
	})

	t.Run("failures", func(t *testing.T) {
		t.Run("not found", func(t *testing.T) {
			// given
			p := newPage(t, doubles.NewDocument(), locator.Elements{"search": locator.New(locator.ByID, "home-q")})
			e := p.Element("search")

			// when
			_, err := e.Resolve()

			// then
			require.EqualError(t, err, "unable to locate 'search' on page 'test' using locator (id, home-q)")
			assert.True(t, page.IsElementNotFound(err))
			assert.True(t, driver.IsNotFound(err))
			assert.Equal(t, page.NotFound, e.State())
			assert.Equal(t, err, e.Resolution().Err)
		})

		t.Run("parent not found", func(t *testing.T) {
			// given
			p := newPage(t, doubles.NewDocument(), locator.Elements{
				"header": locator.New(locator.ByTagName, "header", locator.Children(locator.Elements{
					"dropdown": locator.New(locator.ByLinkText, "Technologies"),
				})),
			})

			// when
			_, err := p.Element("header").Child("dropdown").Resolve()

			// then
			require.EqualError(t, err, "unable to locate 'header' on page 'test' using locator (tag name, header)")
		})

		t.Run("stale twice", func(t *testing.T) {
			// given
			d := doubles.NewDocument()
			d.SetBody("test", doubles.El("input", doubles.ID("home-q")))
			p := newPage(t, staleDriver{Document: d}, locator.Elements{"search": locator.New(locator.ByID, "home-q")})
			e := p.Element("search")
			_, err := e.Resolve()
			require.NoError(t, err)

			// when
			_, err = e.Resolve()

			// then
			require.Error(t, err)
			assert.True(t, page.IsElementNotFound(err))
			assert.True(t, driver.IsStale(err))
			assert.Equal(t, page.NotFound, e.State())
			assert.Equal(t, 2, d.Lookups())
		})

		t.Run("driver failure", func(t *testing.T) {
			// given
			d := doubles.NewDocument()
			d.FindErr = assert.AnError
			p := newPage(t, d, locator.Elements{"search": locator.New(locator.ByID, "home-q")})

			// when
			_, err := p.Element("search").Resolve()

			// then
			require.Error(t, err)
			assert.False(t, page.IsElementNotFound(err))
			assert.ErrorIs(t, err, assert.AnError)
		})
	})
}

func TestAll(t *testing.T) {
	setup := func(t *testing.T) (*doubles.Document, []*doubles.Node, *page.Element) {
		items := []*doubles.Node{
			doubles.El("li", doubles.Text("a")),
			doubles.El("li", doubles.Text("b")),
			doubles.El("li", doubles.Text("c")),
		}
		d := doubles.NewDocument()
		d.SetBody("test", doubles.El("ul", doubles.Containing(items...)))
		p := newPage(t, d, locator.Elements{"item": locator.New(locator.ByTagName, "li", locator.N(3))})
		return d, items, p.Element("item")
	}

	t.Run("one proxy per match", func(t *testing.T) {
		// given
		_, _, e := setup(t)

		// when
		all, err := e.All()

		// then
		require.NoError(t, err)
		require.Len(t, all, 3)
		for i, expected := range []string{"a", "b", "c"} {
			assert.Equal(t, page.Found, all[i].State())
			text, err := all[i].Text()
			require.NoError(t, err)
			assert.Equal(t, expected, text)
		}
	})

	t.Run("proxies keep their position", func(t *testing.T) {
		// given
		d, items, e := setup(t)
		all, err := e.All()
		require.NoError(t, err)

		// when
		d.Replace(items[1], doubles.El("li", doubles.Text("B")))

		// then
		text, err := all[1].Text()
		require.NoError(t, err)
		assert.Equal(t, "B", text)
	})

	t.Run("nth", func(t *testing.T) {
		// given
		_, _, e := setup(t)

		// when
		last, err := e.Nth(2)

		// then
		require.NoError(t, err)
		text, err := last.Text()
		require.NoError(t, err)
		assert.Equal(t, "c", text)
		_, err = e.Nth(3)
		assert.True(t, page.IsElementNotFound(err))
	})

	t.Run("count", func(t *testing.T) {
		// given
		d, items, e := setup(t)

		// when
		count, err := e.Count()

		// then
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		// when
		d.Remove(items[0])
		count, err = e.Count()

		// then
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("none", func(t *testing.T) {
		// given
		p := newPage(t, doubles.NewDocument(), locator.Elements{"item": locator.New(locator.ByTagName, "li")})

		// when
		_, err := p.Element("item").All()

		// then
		require.EqualError(t, err, "unable to locate 'item' on page 'test' using locator (tag name, li)")
	})
}

func TestAccessors(t *testing.T) {
	// given
	clicked := false
	d := doubles.NewDocument()
	d.SetBody("test",
		doubles.El("button", doubles.ID("save"), doubles.Class("btn", "primary"), doubles.Text("Save"),
			doubles.Attr("data-test-id", "save-button"), doubles.Attr("aria-label", "Save changes"),
			doubles.Attr("html-for", "q"), doubles.Prop("value", "42"), doubles.OnClick(func() { clicked = true })),
		doubles.El("input", doubles.ID("q")))
	p := newPage(t, d, locator.Elements{
		"save":   locator.New(locator.ByID, "save"),
		"search": locator.New(locator.ByID, "q"),
	})
	save := p.Element("save")

	t.Run("attribute", func(t *testing.T) {
		for name, expected := range map[string]string{
			"data-test-id": "save-button",
			"data_test_id": "save-button",
			"dataTestId":   "save-button",
			"dataTestID":   "save-button",
			"DataTestID":   "save-button",
			"HTMLFor":      "q",
			"ariaLabel":    "Save changes",
			"value":        "42",
			"unknown":      "",
		} {
			t.Run(name, func(t *testing.T) {
				// when
				value, err := save.Attribute(name)

				// then
				require.NoError(t, err)
				assert.Equal(t, expected, value)
			})
		}
	})

	t.Run("classes", func(t *testing.T) {
		classes, err := save.Classes()
		require.NoError(t, err)
		assert.Equal(t, []string{"btn", "primary"}, classes)
	})

	t.Run("text and click", func(t *testing.T) {
		text, err := save.Text()
		require.NoError(t, err)
		assert.Equal(t, "Save", text)
		require.NoError(t, save.Click())
		assert.True(t, clicked)
	})

	t.Run("send keys and clear", func(t *testing.T) {
		// given
		search := p.Element("search")

		// when
		require.NoError(t, search.SendKeys("css grid"))

		// then
		value, err := search.Attribute("value")
		require.NoError(t, err)
		assert.Equal(t, "css grid", value)

		// when
		require.NoError(t, search.Clear())

		// then
		value, err = search.Attribute("value")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("handle", func(t *testing.T) {
		handle, err := save.Handle()
		require.NoError(t, err)
		assert.Equal(t, "button", doubles.NodeOf(handle).Tag)
	})
}

func TestHover(t *testing.T) {
	for name, broken := range map[string]bool{"working reset": false, "broken reset": true} {
		t.Run(name, func(t *testing.T) {
			// given
			hovered := 0
			d := doubles.NewDocument()
			d.BrokenReset = broken
			d.SetBody("test", doubles.El("nav", doubles.ID("menu"), doubles.OnHover(func() { hovered++ })))
			p := newPage(t, d, locator.Elements{"menu": locator.New(locator.ByID, "menu")})

			// when
			require.NoError(t, p.Element("menu").Hover(0))
			require.NoError(t, p.Element("menu").Hover(0))

			// then
			assert.Equal(t, 2, hovered)
			assert.Equal(t, []string{"move:nav#menu", "move:nav#menu"}, d.Gestures())
		})
	}

	t.Run("failed hover is not replayed", func(t *testing.T) {
		// given
		hovered := 0
		d := doubles.NewDocument()
		d.SetBody("test",
			doubles.El("div", doubles.ID("hidden"), doubles.Hidden()),
			doubles.El("nav", doubles.ID("menu"), doubles.OnHover(func() { hovered++ })))
		p := newPage(t, d, locator.Elements{
			"hidden": locator.New(locator.ByID, "hidden"),
			"menu":   locator.New(locator.ByID, "menu"),
		})

		// when
		err := p.Element("hidden").Hover(0)

		// then
		require.EqualError(t, err, "cannot move to <div#hidden>: element is not visible")

		// when
		err = p.Element("menu").Hover(0)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, hovered)
		assert.Equal(t, []string{"move:nav#menu"}, d.Gestures())
	})
}

func TestElementConditions(t *testing.T) {
	// given
	d := doubles.NewDocument()
	panel := doubles.El("div", doubles.ID("panel"), doubles.Hidden(), doubles.Class("collapsed"))
	d.SetBody("test",
		panel,
		doubles.El("button", doubles.ID("save"), doubles.Text("Save changes")),
		doubles.El("button", doubles.ID("disabled"), doubles.Disabled()),
		doubles.El("option", doubles.ID("en"), doubles.Selected()),
		doubles.El("option", doubles.ID("fr")))
	p := newPage(t, d, locator.Elements{
		"panel":    locator.New(locator.ByID, "panel"),
		"save":     locator.New(locator.ByID, "save"),
		"disabled": locator.New(locator.ByID, "disabled"),
		"en":       locator.New(locator.ByID, "en"),
		"fr":       locator.New(locator.ByID, "fr"),
		"missing":  locator.New(locator.ByID, "missing"),
	})

	t.Run("presence", func(t *testing.T) {
		assert.True(t, p.Element("save").IsPresent().IsTrue())
		assert.False(t, p.Element("missing").IsPresent().IsTrue())
	})

	t.Run("visibility", func(t *testing.T) {
		assert.True(t, p.Element("save").IsVisible().IsTrue())
		assert.False(t, p.Element("panel").IsVisible().IsTrue())
		assert.False(t, p.Element("missing").IsVisible().IsTrue())
		assert.True(t, p.Element("panel").IsInvisible().IsTrue())
		assert.True(t, p.Element("missing").IsInvisible().IsTrue())
		assert.False(t, p.Element("save").IsInvisible().IsTrue())
	})

	t.Run("clickable", func(t *testing.T) {
		assert.True(t, p.Element("save").IsClickable().IsTrue())
		assert.False(t, p.Element("disabled").IsClickable().IsTrue())
		assert.False(t, p.Element("missing").IsClickable().IsTrue())
	})

	t.Run("selection", func(t *testing.T) {
		assert.True(t, p.Element("en").IsSelected().IsTrue())
		assert.False(t, p.Element("en").IsNotSelected().IsTrue())
		assert.False(t, p.Element("fr").IsSelected().IsTrue())
		assert.True(t, p.Element("fr").IsNotSelected().IsTrue())
	})

	t.Run("text and class", func(t *testing.T) {
		assert.True(t, p.Element("save").HasText("Save").IsTrue())
		assert.False(t, p.Element("save").HasText("Cancel").IsTrue())
		assert.True(t, p.Element("panel").HasClass("collapsed").IsTrue())
		assert.False(t, p.Element("panel").HasClass("expanded").IsTrue())
	})

	t.Run("wait for the panel to open", func(t *testing.T) {
		// when
		err := p.DoThenWaitFor(func() error {
			d.Update(panel, func(n *doubles.Node) {
				n.Hidden = false
				n.Classes = []string{"expanded"}
			})
			return nil
		}, p.Element("panel").IsVisible())

		// then
		require.NoError(t, err)
		assert.True(t, p.Element("panel").HasClass("expanded").IsTrue())
	})

	t.Run("staleness", func(t *testing.T) {
		// given
		stale := p.Element("save").IsStale()
		assert.False(t, stale.IsTrue())

		// when
		d.Remove(doubles.NodeOf(mustResolve(t, p.Element("save"))))

		// then
		assert.True(t, stale.IsTrue())
		assert.Equal(t, "condition staleness_of was not met for locator (id, save)", stale.Describe())
	})
}

func mustResolve(t *testing.T, e *page.Element) driver.Element {
	handle, err := e.Resolve()
	require.NoError(t, err)
	return handle
}
