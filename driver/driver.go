// Package driver defines the browser automation capability consumed by the page
// objects. Adapters for playwright, selenium and rod live in the sub-packages.
package driver

import (
	"github.com/codeready-toolchain/toolchain-pageobjects/locator"
)

// Finder looks up elements, either in the whole document or within an element
type Finder interface {
	// FindElement returns the first element matching the strategy and value,
	// or an error wrapping ErrNoSuchElement
	FindElement(by locator.Strategy, value string) (Element, error)
	// FindElements returns all the matching elements in document order.
	// No match is not an error.
	FindElements(by locator.Strategy, value string) ([]Element, error)
}

// Element is a live element of the rendered document
type Element interface {
	Finder
	// GetAttribute returns the value of the attribute, or an empty string if the
	// element has no such attribute
	GetAttribute(name string) (string, error)
	// GetProperty returns the value of the DOM property, or an empty string
	GetProperty(name string) (string, error)
	Text() (string, error)
	IsDisplayed() (bool, error)
	IsEnabled() (bool, error)
	IsSelected() (bool, error)
	// IsStale returns true if the element is not attached to the document anymore
	IsStale() (bool, error)
	Click() error
	SendKeys(keys string) error
	Clear() error
}

// Pointer queues pointer gestures until they are performed
type Pointer interface {
	MoveToElement(element Element) error
	Perform() error
	Reset() error
}

// Driver is a browser session showing a single document at a time
type Driver interface {
	Finder
	Navigate(url string) error
	CurrentURL() (string, error)
	Title() (string, error)
	WindowHandles() ([]string, error)
	NewPointer() Pointer
	// Close closes the current window
	Close() error
	// Quit ends the session and closes all windows
	Quit() error
}

// Tracer is implemented by the drivers which record a trace of the session
type Tracer interface {
	// SaveTrace stops the recording and saves the trace to the given path
	SaveTrace(path string) error
}
