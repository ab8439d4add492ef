package playwright

import (
	"fmt"

	"github.com/codeready-toolchain/toolchain-pageobjects/driver"
	"github.com/codeready-toolchain/toolchain-pageobjects/locator"

	"github.com/playwright-community/playwright-go"
)

type element struct {
	h playwright.ElementHandle
}

// ElementHandle returns the underlying handle of an element, or nil
func ElementHandle(e driver.Element) playwright.ElementHandle {
	if el, ok := e.(*element); ok {
		return el.h
	}
	return nil
}

func (e *element) FindElement(by locator.Strategy, value string) (driver.Element, error) {
	return findElement(e.h, by, value)
}

func (e *element) FindElements(by locator.Strategy, value string) ([]driver.Element, error) {
	return findElements(e.h, by, value)
}

func (e *element) GetAttribute(name string) (string, error) {
	value, err := e.h.GetAttribute(name)
	return value, classify(err)
}

func (e *element) GetProperty(name string) (string, error) {
	value, err := e.h.Evaluate(`(el, name) => el[name] == null ? "" : String(el[name])`, name)
	if err != nil {
		return "", classify(err)
	}
	return fmt.Sprint(value), nil
}

func (e *element) Text() (string, error) {
	text, err := e.h.InnerText()
	return text, classify(err)
}

func (e *element) IsDisplayed() (bool, error) {
	visible, err := e.h.IsVisible()
	return visible, classify(err)
}

func (e *element) IsEnabled() (bool, error) {
	enabled, err := e.h.IsEnabled()
	return enabled, classify(err)
}

func (e *element) IsSelected() (bool, error) {
	return e.evalBool(`el => !!(el.selected || el.checked)`)
}

// IsStale returns true if the node was removed from the document, or if the
// document it belonged to was replaced
func (e *element) IsStale() (bool, error) {
	connected, err := e.evalBool(`el => el.isConnected`)
	if driver.IsStale(err) {
		return true, nil
	}
	return !connected, err
}

func (e *element) evalBool(js string) (bool, error) {
	value, err := e.h.Evaluate(js)
	if err != nil {
		return false, classify(err)
	}
	b, _ := value.(bool)
	return b, nil
}

func (e *element) Click() error {
	return classify(e.h.Click())
}

func (e *element) SendKeys(keys string) error {
	return classify(e.h.Type(keys))
}

func (e *element) Clear() error {
	return classify(e.h.Fill(""))
}
