package selenium

import (
	"github.com/codeready-toolchain/toolchain-pageobjects/driver"
	"github.com/codeready-toolchain/toolchain-pageobjects/locator"

	"github.com/tebeka/selenium"
)

type element struct {
	e selenium.WebElement
}

// WebElement returns the underlying element of a session, or nil
func WebElement(e driver.Element) selenium.WebElement {
	if el, ok := e.(*element); ok {
		return el.e
	}
	return nil
}

func (e *element) FindElement(by locator.Strategy, value string) (driver.Element, error) {
	return findElement(e.e, by, value)
}

func (e *element) FindElements(by locator.Strategy, value string) ([]driver.Element, error) {
	return findElements(e.e, by, value)
}

func (e *element) GetAttribute(name string) (string, error) {
	value, err := e.e.GetAttribute(name)
	if isMissingValue(err) {
		return "", nil
	}
	return value, classify(err)
}

func (e *element) GetProperty(name string) (string, error) {
	value, err := e.e.GetProperty(name)
	if isMissingValue(err) {
		return "", nil
	}
	return value, classify(err)
}

func (e *element) Text() (string, error) {
	text, err := e.e.Text()
	return text, classify(err)
}

func (e *element) IsDisplayed() (bool, error) {
	displayed, err := e.e.IsDisplayed()
	return displayed, classify(err)
}

func (e *element) IsEnabled() (bool, error) {
	enabled, err := e.e.IsEnabled()
	return enabled, classify(err)
}

func (e *element) IsSelected() (bool, error) {
	selected, err := e.e.IsSelected()
	return selected, classify(err)
}

// IsStale queries the element, which the server rejects once the element is detached
func (e *element) IsStale() (bool, error) {
	_, err := e.e.IsEnabled()
	if isStaleElement(err) {
		return true, nil
	}
	return false, classify(err)
}

func (e *element) Click() error {
	return classify(e.e.Click())
}

func (e *element) SendKeys(keys string) error {
	return classify(e.e.SendKeys(keys))
}

// Clear selects the whole value and deletes it, which the controlled inputs of
// some frameworks observe unlike the clear command
func (e *element) Clear() error {
	if err := e.e.SendKeys(selenium.ControlKey + "a"); err != nil {
		return classify(err)
	}
	return classify(e.e.SendKeys(selenium.DeleteKey))
}
