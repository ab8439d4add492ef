package wait

import (
	"regexp"
	"strings"

	"github.com/codeready-toolchain/toolchain-pageobjects/driver"
	"github.com/codeready-toolchain/toolchain-pageobjects/locator"
)

// PresenceOfElementLocated is true when the locator matches an element within the scope
func PresenceOfElementLocated(scope Scope, l *locator.Locator) *Condition {
	return NewCondition("presence_of_element_located", scope, func(f driver.Finder) (bool, error) {
		if _, err := f.FindElement(l.By(), l.Value()); err != nil {
			return false, err
		}
		return true, nil
	}, ForLocator(l))
}

// ElementToBeClickable is true when the located element is displayed and enabled
func ElementToBeClickable(scope Scope, l *locator.Locator) *Condition {
	return NewCondition("element_to_be_clickable", scope, func(f driver.Finder) (bool, error) {
		e, err := f.FindElement(l.By(), l.Value())
		if err != nil {
			return false, err
		}
		displayed, err := e.IsDisplayed()
		if err != nil || !displayed {
			return false, err
		}
		return e.IsEnabled()
	}, ForLocator(l))
}

// TextToBePresentInElement is true when the text of the located element contains the given text
func TextToBePresentInElement(scope Scope, l *locator.Locator, text string) *Condition {
	return NewCondition("text_to_be_present_in_element", scope, func(f driver.Finder) (bool, error) {
		e, err := f.FindElement(l.By(), l.Value())
		if err != nil {
			return false, err
		}
		actual, err := e.Text()
		if err != nil {
			return false, err
		}
		return strings.Contains(actual, text), nil
	}, ForLocator(l))
}

// URLMatches is true when the current URL matches the regular expression
func URLMatches(d driver.Driver, pattern string) *Condition {
	re, compileErr := regexp.Compile(pattern)
	return NewCondition("url_matches", StaticScope(d), func(driver.Finder) (bool, error) {
		if compileErr != nil {
			return false, compileErr
		}
		url, err := d.CurrentURL()
		if err != nil {
			return false, err
		}
		return re.MatchString(url), nil
	}, ForPattern(pattern))
}

// URLContains is true when the current URL contains the given string
func URLContains(d driver.Driver, s string) *Condition {
	return urlCondition("url_contains", d, func(url string) bool {
		return strings.Contains(url, s)
	})
}

// URLIs is true when the current URL is the given one
func URLIs(d driver.Driver, expected string) *Condition {
	return urlCondition("url_to_be", d, func(url string) bool {
		return url == expected
	})
}

// URLChanges is true when the current URL is different from the given one
func URLChanges(d driver.Driver, previous string) *Condition {
	return urlCondition("url_changes", d, func(url string) bool {
		return url != previous
	})
}

func urlCondition(name string, d driver.Driver, match func(string) bool) *Condition {
	return NewCondition(name, StaticScope(d), func(driver.Finder) (bool, error) {
		url, err := d.CurrentURL()
		if err != nil {
			return false, err
		}
		return match(url), nil
	})
}

// NewWindowIsOpened is true when there are more windows than the given handles
func NewWindowIsOpened(d driver.Driver, handles []string) *Condition {
	return NewCondition("new_window_is_opened", StaticScope(d), func(driver.Finder) (bool, error) {
		current, err := d.WindowHandles()
		if err != nil {
			return false, err
		}
		return len(current) > len(handles), nil
	})
}
