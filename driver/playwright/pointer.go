package playwright

import (
	"github.com/codeready-toolchain/toolchain-pageobjects/driver"

	"github.com/pkg/errors"
	"github.com/playwright-community/playwright-go"
)

type pointer struct {
	queued []playwright.ElementHandle
}

func (p *pointer) MoveToElement(e driver.Element) error {
	h := ElementHandle(e)
	if h == nil {
		return errors.Errorf("unsupported element %T", e)
	}
	p.queued = append(p.queued, h)
	return nil
}

func (p *pointer) Perform() error {
	for _, h := range p.queued {
		if err := h.Hover(); err != nil {
			return classify(err)
		}
	}
	return nil
}

func (p *pointer) Reset() error {
	p.queued = nil
	return nil
}
