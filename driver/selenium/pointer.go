package selenium

import (
	"github.com/codeready-toolchain/toolchain-pageobjects/driver"

	"github.com/pkg/errors"
	"github.com/tebeka/selenium"
)

const mouseID = "mouse"

// pointer queues W3C pointer actions
type pointer struct {
	wd      selenium.WebDriver
	actions []selenium.PointerAction
}

func (p *pointer) MoveToElement(e driver.Element) error {
	we := WebElement(e)
	if we == nil {
		return errors.Errorf("unsupported element %T", e)
	}
	location, err := we.LocationInView()
	if err != nil {
		return classify(err)
	}
	size, err := we.Size()
	if err != nil {
		return classify(err)
	}
	center := selenium.Point{
		X: location.X + size.Width/2,
		Y: location.Y + size.Height/2,
	}
	p.actions = append(p.actions, selenium.PointerMoveAction(0, center, selenium.FromViewport))
	return nil
}

func (p *pointer) Perform() error {
	if len(p.actions) == 0 {
		return nil
	}
	p.wd.StorePointerActions(mouseID, selenium.MousePointer, p.actions...)
	return classify(p.wd.PerformActions())
}

func (p *pointer) Reset() error {
	p.actions = nil
	return p.wd.ReleaseActions()
}
