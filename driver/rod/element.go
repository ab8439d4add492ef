package rod

import (
	"github.com/codeready-toolchain/toolchain-pageobjects/driver"
	"github.com/codeready-toolchain/toolchain-pageobjects/locator"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

type element struct {
	page *rod.Page
	e    *rod.Element
}

func (e *element) FindElement(by locator.Strategy, value string) (driver.Element, error) {
	return findElement(e.page, e.e, by, value)
}

func (e *element) FindElements(by locator.Strategy, value string) ([]driver.Element, error) {
	return findElements(e.page, e.e, by, value)
}

func (e *element) GetAttribute(name string) (string, error) {
	value, err := e.e.Attribute(name)
	if err != nil || value == nil {
		return "", classify(err)
	}
	return *value, nil
}

func (e *element) GetProperty(name string) (string, error) {
	value, err := e.e.Property(name)
	if err != nil || value.Nil() {
		return "", classify(err)
	}
	return value.String(), nil
}

func (e *element) Text() (string, error) {
	text, err := e.e.Text()
	return text, classify(err)
}

func (e *element) IsDisplayed() (bool, error) {
	visible, err := e.e.Visible()
	return visible, classify(err)
}

func (e *element) IsEnabled() (bool, error) {
	return e.evalBool(`() => !this.disabled`)
}

func (e *element) IsSelected() (bool, error) {
	return e.evalBool(`() => !!(this.selected || this.checked)`)
}

// IsStale returns true if the node was removed from the document, or if the
// document it belonged to was replaced
func (e *element) IsStale() (bool, error) {
	connected, err := e.evalBool(`() => this.isConnected`)
	if driver.IsStale(err) {
		return true, nil
	}
	return !connected, err
}

func (e *element) evalBool(js string) (bool, error) {
	res, err := e.e.Eval(js)
	if err != nil {
		return false, classify(err)
	}
	return res.Value.Bool(), nil
}

func (e *element) Click() error {
	return classify(e.e.Click(proto.InputMouseButtonLeft, 1))
}

func (e *element) SendKeys(keys string) error {
	return classify(e.e.Input(keys))
}

func (e *element) Clear() error {
	if err := e.e.SelectAllText(); err != nil {
		return classify(err)
	}
	return classify(e.e.Input(""))
}
