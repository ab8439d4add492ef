package locator

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const (
	ActionClick         = "click"
	ActionHover         = "hover"
	ActionWaitPresent   = "waitPresent"
	ActionWaitVisible   = "waitVisible"
	ActionWaitInvisible = "waitInvisible"
)

// SetupStep is an action of a declared test setup. Exactly one field is set,
// to the dotted path of the element the action applies to, eg. `header.open_search`.
type SetupStep struct {
	Click         string `json:"click,omitempty"`
	Hover         string `json:"hover,omitempty"`
	WaitPresent   string `json:"waitPresent,omitempty"`
	WaitVisible   string `json:"waitVisible,omitempty"`
	WaitInvisible string `json:"waitInvisible,omitempty"`
}

// Action returns the action of the step and the path of its element. The
// action is empty if the step doesn't have exactly one action.
func (s SetupStep) Action() (action string, path string) {
	count := 0
	for _, a := range []struct {
		name string
		path string
	}{
		{ActionClick, s.Click},
		{ActionHover, s.Hover},
		{ActionWaitPresent, s.WaitPresent},
		{ActionWaitVisible, s.WaitVisible},
		{ActionWaitInvisible, s.WaitInvisible},
	} {
		if a.path != "" {
			action, path = a.name, a.path
			count++
		}
	}
	if count != 1 {
		return "", ""
	}
	return action, path
}

// SetupSteps prepares elements which only exist after an interaction, eg.
// the items of a menu, and undoes the preparation
type SetupSteps struct {
	Acquire []SetupStep `json:"acquire"`
	Release []SetupStep `json:"release,omitempty"`
}

// Lookup returns the locator at the given dotted path, eg. `header.search`
func (e Elements) Lookup(path string) (*Locator, bool) {
	var l *Locator
	children := e
	for _, name := range strings.Split(path, ".") {
		var found bool
		if l, found = children[name]; !found {
			return nil, false
		}
		children = l.children
	}
	return l, l != nil
}

// validateSetups checks that the steps refer to declared elements, and that
// every setup referred to by an element is declared
func validateSetups(elements Elements, setups map[string]SetupSteps) error {
	names := make([]string, 0, len(setups))
	for name := range setups {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s := setups[name]
		if len(s.Acquire) == 0 {
			return errors.Errorf("test setup '%s' has no acquire step", name)
		}
		for _, kind := range []struct {
			name  string
			steps []SetupStep
		}{{"acquire", s.Acquire}, {"release", s.Release}} {
			for i, step := range kind.steps {
				action, path := step.Action()
				if action == "" {
					return errors.Errorf("%s step #%d of test setup '%s' must have exactly one action", kind.name, i+1, name)
				}
				if _, found := elements.Lookup(path); !found {
					return errors.Errorf("%s step #%d of test setup '%s' refers to the undeclared element '%s'", kind.name, i+1, name, path)
				}
			}
		}
	}
	return checkSetupReferences(elements, setups, "")
}

func checkSetupReferences(elements Elements, setups map[string]SetupSteps, prefix string) error {
	for _, name := range elements.Names() {
		l := elements[name]
		if s := l.TestSetupName(); s != "" {
			if _, found := setups[s]; !found {
				return errors.Errorf("element '%s%s' uses the undeclared test setup '%s'", prefix, name, s)
			}
		}
		if err := checkSetupReferences(l.children, setups, prefix+name+"."); err != nil {
			return err
		}
	}
	return nil
}
