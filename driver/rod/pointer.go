package rod

import (
	"github.com/codeready-toolchain/toolchain-pageobjects/driver"

	"github.com/go-rod/rod/lib/proto"
	"github.com/pkg/errors"
)

type pointer struct {
	d      *Driver
	points []proto.Point
}

func (p *pointer) MoveToElement(e driver.Element) error {
	el, ok := e.(*element)
	if !ok {
		return errors.Errorf("unsupported element %T", e)
	}
	if err := el.e.ScrollIntoView(); err != nil {
		return classify(err)
	}
	shape, err := el.e.Shape()
	if err != nil {
		return classify(err)
	}
	if len(shape.Quads) == 0 {
		return errors.New("element has no shape")
	}
	p.points = append(p.points, center(shape.Quads[0]))
	return nil
}

func center(quad proto.DOMQuad) proto.Point {
	return proto.Point{
		X: (quad[0] + quad[2] + quad[4] + quad[6]) / 4,
		Y: (quad[1] + quad[3] + quad[5] + quad[7]) / 4,
	}
}

func (p *pointer) Perform() error {
	for _, point := range p.points {
		if err := p.d.page.Mouse.MoveTo(point); err != nil {
			return err
		}
	}
	return nil
}

func (p *pointer) Reset() error {
	p.points = nil
	return nil
}
