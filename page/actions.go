package page

import (
	"github.com/codeready-toolchain/toolchain-pageobjects/driver"
)

// ActionChain queues pointer gestures. Some drivers keep the queued gestures
// after a reset, so Reset replaces the underlying pointer instead.
type ActionChain struct {
	driver  driver.Driver
	pointer driver.Pointer
}

func newActionChain(d driver.Driver) *ActionChain {
	return &ActionChain{
		driver:  d,
		pointer: d.NewPointer(),
	}
}

func (a *ActionChain) MoveToElement(e driver.Element) error {
	return a.pointer.MoveToElement(e)
}

func (a *ActionChain) Perform() error {
	return a.pointer.Perform()
}

// Reset drops the queued gestures
func (a *ActionChain) Reset() error {
	a.pointer = a.driver.NewPointer()
	return nil
}
