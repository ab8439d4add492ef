package page

import (
	"strings"

	"github.com/codeready-toolchain/toolchain-pageobjects/locator"

	"github.com/pkg/errors"
)

// ElementAt returns the element at the given dotted path, eg. `header.search`
func (p *Page) ElementAt(path string) (*Element, error) {
	names := strings.Split(path, ".")
	e, found := p.Lookup(names[0])
	for _, name := range names[1:] {
		if !found {
			break
		}
		e, found = e.Lookup(name)
	}
	if !found {
		return nil, errors.Errorf("page '%s' has no element '%s'", p.Name(), path)
	}
	return e, nil
}

// StepsSetup returns a test setup running the acquire steps, and the release
// steps when the setup is released
func StepsSetup(steps locator.SetupSteps) SetupFunc {
	return func(p *Page) (func() error, error) {
		if err := p.runSteps(steps.Acquire); err != nil {
			return nil, err
		}
		return func() error {
			return p.runSteps(steps.Release)
		}, nil
	}
}

// StepsSetups converts all the declared setups
func StepsSetups(setups map[string]locator.SetupSteps) map[string]SetupFunc {
	result := make(map[string]SetupFunc, len(setups))
	for name, steps := range setups {
		result[name] = StepsSetup(steps)
	}
	return result
}

func (p *Page) runSteps(steps []locator.SetupStep) error {
	for i, step := range steps {
		action, path := step.Action()
		if err := p.runStep(action, path); err != nil {
			return errors.Wrapf(err, "step #%d (%s %s) failed", i+1, action, path)
		}
	}
	return nil
}

func (p *Page) runStep(action, path string) error {
	e, err := p.ElementAt(path)
	if err != nil {
		return err
	}
	switch action {
	case locator.ActionClick:
		return e.Click()
	case locator.ActionHover:
		return e.Hover(0)
	case locator.ActionWaitPresent:
		return p.WaitFor(e.IsPresent())
	case locator.ActionWaitVisible:
		return p.WaitFor(e.IsVisible())
	case locator.ActionWaitInvisible:
		return p.WaitFor(e.IsInvisible())
	}
	return errors.Errorf("unsupported action '%s'", action)
}
