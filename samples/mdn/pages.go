// Package mdn declares the home page of the MDN Web Docs
package mdn

import (
	"github.com/codeready-toolchain/toolchain-pageobjects/driver"
	"github.com/codeready-toolchain/toolchain-pageobjects/locator"
	"github.com/codeready-toolchain/toolchain-pageobjects/page"
)

const (
	// SearchOpen opens the search bar of the header, which holds the button closing it
	SearchOpen = "searchOpen"
	// TechnologiesMenu hovers the Technologies dropdown of the header, which shows its submenu
	TechnologiesMenu = "technologiesMenu"
)

// Home is the MDN home page in english
var Home = homeDeclaration()

func homeDeclaration() page.Declaration {
	decl := page.DefaultDeclaration.Extend("mdn-home", "", locator.Elements{
		"header": locator.New(locator.ByTagName, "header", locator.Children(locator.Elements{
			"technologies_dropdown": locator.New(locator.ByLinkText, "Technologies"),
			"technologies_panel":    locator.New(locator.ByID, "nav-tech-submenu", locator.TestSetup(TechnologiesMenu)),
			"references_dropdown":   locator.New(locator.ByLinkText, "References & Guides"),
			"feedback_dropdown":     locator.New(locator.ByLinkText, "Feedback"),
			"open_search":           locator.New(locator.ByClassName, "search-trigger"),
			"fake":                  locator.New(locator.ByID, "fake", locator.Exclude()),
			"close_search":          locator.New(locator.ByID, "close-header-search", locator.TestSetup(SearchOpen)),
		})),
		"main_search_bar": locator.New(locator.ByID, "home-q"),
		// the number of divs varies between releases of the site
		"div": locator.New(locator.ByTagName, "div", locator.Exclude()),
	})
	decl.URL = `^https://developer\.mozilla\.org/en-US/$`
	decl.Setups[SearchOpen] = openSearch
	decl.Setups[TechnologiesMenu] = hoverTechnologies
	return decl
}

// NewHome binds the home page declaration to the driver
func NewHome(d driver.Driver, options ...page.Option) (*page.Page, error) {
	return page.New(d, Home, options...)
}

func openSearch(p *page.Page) (func() error, error) {
	header := p.Element("header")
	if err := p.DoThenWaitFor(header.Child("open_search").Click, header.Child("close_search").IsPresent()); err != nil {
		return nil, err
	}
	return func() error {
		closeSearch := header.Child("close_search")
		return p.DoThenWaitFor(closeSearch.Click, closeSearch.IsInvisible())
	}, nil
}

func hoverTechnologies(p *page.Page) (func() error, error) {
	header := p.Element("header")
	if err := header.Child("technologies_dropdown").Hover(0); err != nil {
		return nil, err
	}
	// nothing to release, the submenu is hidden once the pointer leaves the dropdown
	return nil, p.WaitFor(header.Child("technologies_panel").IsVisible())
}
