package doubles

import (
	"github.com/codeready-toolchain/toolchain-pageobjects/driver"
	"github.com/codeready-toolchain/toolchain-pageobjects/locator"

	"github.com/pkg/errors"
)

type element struct {
	d    *Document
	node *Node
}

// NodeOf returns the node of an element found in a Document, or nil
func NodeOf(e driver.Element) *Node {
	if el, ok := e.(*element); ok {
		return el.node
	}
	return nil
}

func (e *element) FindElement(by locator.Strategy, value string) (driver.Element, error) {
	return e.d.findFirst(e.node, by, value)
}

func (e *element) FindElements(by locator.Strategy, value string) ([]driver.Element, error) {
	return e.d.findAll(e.node, by, value)
}

// read runs f while holding the lock if the element is still attached
func (e *element) read(f func(n *Node)) error {
	e.d.mu.Lock()
	defer e.d.mu.Unlock()
	if !e.d.attached(e.node) {
		return errors.Wrapf(driver.ErrStaleElement, "<%s> is not attached to the document", e.node.Tag)
	}
	f(e.node)
	return nil
}

func (e *element) GetAttribute(name string) (string, error) {
	var value string
	err := e.read(func(n *Node) {
		value = n.attribute(name)
	})
	return value, err
}

func (e *element) GetProperty(name string) (string, error) {
	var value string
	err := e.read(func(n *Node) {
		value = n.Properties[name]
	})
	return value, err
}

func (e *element) Text() (string, error) {
	var value string
	err := e.read(func(n *Node) {
		value = n.textContent()
	})
	return value, err
}

func (e *element) IsDisplayed() (bool, error) {
	var value bool
	err := e.read(func(n *Node) {
		value = n.displayed()
	})
	return value, err
}

func (e *element) IsEnabled() (bool, error) {
	var value bool
	err := e.read(func(n *Node) {
		value = !n.Disabled
	})
	return value, err
}

func (e *element) IsSelected() (bool, error) {
	var value bool
	err := e.read(func(n *Node) {
		value = n.Selected
	})
	return value, err
}

func (e *element) IsStale() (bool, error) {
	e.d.mu.Lock()
	defer e.d.mu.Unlock()
	return !e.d.attached(e.node), nil
}

func (e *element) Click() error {
	var onClick func()
	if err := e.read(func(n *Node) {
		onClick = n.OnClick
	}); err != nil {
		return err
	}
	if onClick != nil {
		onClick()
	}
	return nil
}

func (e *element) SendKeys(keys string) error {
	return e.read(func(n *Node) {
		n.Properties["value"] += keys
	})
}

func (e *element) Clear() error {
	return e.read(func(n *Node) {
		n.Properties["value"] = ""
	})
}
