package doubles

import (
	"fmt"

	"github.com/codeready-toolchain/toolchain-pageobjects/driver"

	"github.com/pkg/errors"
)

type pointer struct {
	d      *Document
	queued []*Node
}

func (p *pointer) MoveToElement(e driver.Element) error {
	n := NodeOf(e)
	if n == nil {
		return errors.Errorf("unsupported element %T", e)
	}
	p.queued = append(p.queued, n)
	return nil
}

func (p *pointer) Perform() error {
	for _, n := range p.queued {
		p.d.mu.Lock()
		if !p.d.attached(n) {
			p.d.mu.Unlock()
			return errors.Wrapf(driver.ErrStaleElement, "cannot move to <%s>", n.Tag)
		}
		if !n.displayed() {
			p.d.mu.Unlock()
			return errors.Errorf("cannot move to <%s>: element is not visible", describe(n))
		}
		p.d.gestures = append(p.d.gestures, fmt.Sprintf("move:%s", describe(n)))
		onHover := n.OnHover
		p.d.mu.Unlock()
		if onHover != nil {
			onHover()
		}
	}
	return nil
}

func (p *pointer) Reset() error {
	p.d.mu.Lock()
	defer p.d.mu.Unlock()
	p.d.gestures = append(p.d.gestures, "reset")
	if !p.d.BrokenReset {
		p.queued = nil
	}
	return nil
}

func describe(n *Node) string {
	if n.ID != "" {
		return n.Tag + "#" + n.ID
	}
	return n.Tag
}
