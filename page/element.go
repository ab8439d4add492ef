package page

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/codeready-toolchain/toolchain-pageobjects/driver"
	"github.com/codeready-toolchain/toolchain-pageobjects/locator"
	"github.com/codeready-toolchain/toolchain-pageobjects/metrics"
	"github.com/codeready-toolchain/toolchain-pageobjects/wait"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ResolutionState tells whether an element proxy was looked up in the live
// document, and with which outcome
type ResolutionState int

const (
	// Unresolved means that no lookup was performed yet
	Unresolved ResolutionState = iota
	// Found means that the last lookup returned a live element, which is cached
	Found
	// NotFound means that the last lookup did not find any element
	NotFound
)

func (s ResolutionState) String() string {
	switch s {
	case Found:
		return "found"
	case NotFound:
		return "not found"
	default:
		return "unresolved"
	}
}

// Resolution is the outcome of the last lookup of an element proxy
type Resolution struct {
	State  ResolutionState
	Handle driver.Element
	Err    error
}

// Element is a lazily resolved proxy of a declared element. The live element
// is looked up on first access, cached, and looked up again once if it went stale.
type Element struct {
	name     string
	page     *Page
	parent   *Element
	locator  *locator.Locator
	index    int
	res      Resolution
	children map[string]*Element
}

func newElement(name string, p *Page, parent *Element, l *locator.Locator) *Element {
	return newInstance(name, p, parent, l, -1)
}

func newInstance(name string, p *Page, parent *Element, l *locator.Locator, index int) *Element {
	e := &Element{
		name:     name,
		page:     p,
		parent:   parent,
		locator:  l,
		index:    index,
		children: map[string]*Element{},
	}
	for childName, child := range l.Children() {
		e.children[childName] = newElement(childName, p, e, child)
	}
	return e
}

func (e *Element) Name() string {
	return e.name
}

// Path returns the dotted path of the element from the page, eg. `header.dropdown`
func (e *Element) Path() string {
	if e.parent == nil {
		return e.name
	}
	return e.parent.Path() + "." + e.name
}

func (e *Element) Locator() *locator.Locator {
	return e.locator
}

func (e *Element) Page() *Page {
	return e.page
}

func (e *Element) String() string {
	return fmt.Sprintf("'%s' %s", e.Path(), e.locator)
}

// Resolution returns the outcome of the last lookup
func (e *Element) Resolution() Resolution {
	return e.res
}

// State returns the state of the last lookup
func (e *Element) State() ResolutionState {
	return e.res.State
}

// Lookup returns the declared child with the given name
func (e *Element) Lookup(name string) (*Element, bool) {
	child, found := e.children[name]
	return child, found
}

// Child returns the declared child with the given name. It panics if no such child is declared.
func (e *Element) Child(name string) *Element {
	child, found := e.children[name]
	if !found {
		panic(fmt.Sprintf("element '%s' of page '%s' has no child '%s'", e.Path(), e.page.Name(), name))
	}
	return child
}

// Names returns the sorted names of the declared children
func (e *Element) Names() []string {
	return e.locator.Names()
}

// scope returns the finder to look the element up with: the driver for the
// top-level elements, the resolved parent otherwise
func (e *Element) scope() (driver.Finder, error) {
	if e.parent == nil {
		return e.page.driver, nil
	}
	return e.parent.Resolve()
}

// Resolve returns the live element. A cached element which went stale is
// looked up again, once: if the new element is stale too, an
// *ElementNotFoundError is returned.
func (e *Element) Resolve() (driver.Element, error) {
	refresh := false
	if e.res.State == Found {
		stale, err := e.res.Handle.IsStale()
		if err != nil {
			return nil, err
		}
		if !stale {
			metrics.ElementResolutions.WithLabelValues(metrics.ResolutionCached).Inc()
			return e.res.Handle, nil
		}
		klog.V(4).Infof("element %s of page '%s' went stale, looking it up again", e, e.page.Name())
		refresh = true
	}
	handle, err := e.lookup()
	if err == nil && refresh {
		var stale bool
		if stale, err = handle.IsStale(); err == nil && stale {
			err = e.notFound(errors.Wrap(driver.ErrStaleElement, "element went stale again after it was looked up"))
		}
	}
	if err != nil {
		e.res = Resolution{State: NotFound, Err: err}
		metrics.ElementResolutions.WithLabelValues(metrics.ResolutionNotFound).Inc()
		return nil, err
	}
	e.res = Resolution{State: Found, Handle: handle}
	if refresh {
		metrics.ElementResolutions.WithLabelValues(metrics.ResolutionRefreshed).Inc()
	} else {
		metrics.ElementResolutions.WithLabelValues(metrics.ResolutionFound).Inc()
	}
	klog.V(4).Infof("resolved element %s of page '%s'", e, e.page.Name())
	return handle, nil
}

func (e *Element) lookup() (driver.Element, error) {
	scope, err := e.scope()
	if err != nil {
		return nil, err
	}
	if e.index < 0 {
		handle, err := scope.FindElement(e.locator.By(), e.locator.Value())
		if err != nil {
			if driver.IsNotFound(err) {
				return nil, e.notFound(err)
			}
			return nil, errors.Wrapf(err, "unable to look up %s", e)
		}
		return handle, nil
	}
	all, err := scope.FindElements(e.locator.By(), e.locator.Value())
	if err != nil {
		return nil, errors.Wrapf(err, "unable to look up %s", e)
	}
	if e.index >= len(all) {
		return nil, e.notFound(errors.Wrapf(driver.ErrNoSuchElement, "no element at index %d among %d", e.index, len(all)))
	}
	return all[e.index], nil
}

func (e *Element) notFound(cause error) *ElementNotFoundError {
	return &ElementNotFoundError{
		Name:    e.Path(),
		Page:    e.page.Name(),
		Locator: e.locator,
		cause:   cause,
	}
}

// Handle returns the live element of the driver
func (e *Element) Handle() (driver.Element, error) {
	return e.Resolve()
}

// All returns one proxy per live element matching the locator, in document
// order. Each proxy resolves to the element at the same position when it is
// looked up again.
func (e *Element) All() ([]*Element, error) {
	if err := e.IsPresent().WaitUntilTrue(0); err != nil {
		if wait.IsTimeout(err) {
			return nil, e.notFound(driver.NotFound(string(e.locator.By()), e.locator.Value()))
		}
		return nil, err
	}
	scope, err := e.scope()
	if err != nil {
		return nil, err
	}
	handles, err := scope.FindElements(e.locator.By(), e.locator.Value())
	if err != nil {
		return nil, errors.Wrapf(err, "unable to look up %s", e)
	}
	all := make([]*Element, len(handles))
	for i, handle := range handles {
		all[i] = newInstance(e.name, e.page, e.parent, e.locator, i)
		all[i].res = Resolution{State: Found, Handle: handle}
	}
	return all, nil
}

// Nth returns the proxy of the i-th live element matching the locator
func (e *Element) Nth(i int) (*Element, error) {
	all, err := e.All()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(all) {
		return nil, e.notFound(errors.Wrapf(driver.ErrNoSuchElement, "no element at index %d among %d", i, len(all)))
	}
	return all[i], nil
}

// Count returns the number of live elements matching the locator
func (e *Element) Count() (int, error) {
	scope, err := e.scope()
	if err != nil {
		return 0, err
	}
	all, err := scope.FindElements(e.locator.By(), e.locator.Value())
	if err != nil {
		return 0, errors.Wrapf(err, "unable to count %s", e)
	}
	return len(all), nil
}

// Attribute returns the value of the attribute. When the element has no such
// attribute, the hyphenated form of the name is tried (`data_test_id`,
// `dataTestId` and `dataTestID` become `data-test-id`), then the DOM property.
func (e *Element) Attribute(name string) (string, error) {
	handle, err := e.Resolve()
	if err != nil {
		return "", err
	}
	value, err := handle.GetAttribute(name)
	if err != nil || value != "" {
		return value, err
	}
	if hyphenated := hyphenate(name); hyphenated != name {
		value, err = handle.GetAttribute(hyphenated)
		if err != nil || value != "" {
			return value, err
		}
	}
	return handle.GetProperty(name)
}

// hyphenate turns snake and camel case into kebab case. A run of capitals is
// one word: `dataTestID` becomes `data-test-id`, `HTMLFor` becomes `html-for`.
func hyphenate(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		switch {
		case r == '_':
			b.WriteRune('-')
		case unicode.IsUpper(r):
			if i > 0 && startsWord(runes, i) {
				b.WriteRune('-')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// startsWord is true when the capital at i follows a lowercase letter or a
// digit, or ends a run of capitals followed by a lowercase letter
func startsWord(runes []rune, i int) bool {
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

// Classes returns the classes of the element
func (e *Element) Classes() ([]string, error) {
	class, err := e.Attribute("class")
	if err != nil {
		return nil, err
	}
	return strings.Fields(class), nil
}

func (e *Element) Text() (string, error) {
	handle, err := e.Resolve()
	if err != nil {
		return "", err
	}
	return handle.Text()
}

func (e *Element) Click() error {
	handle, err := e.Resolve()
	if err != nil {
		return err
	}
	return handle.Click()
}

func (e *Element) SendKeys(keys string) error {
	handle, err := e.Resolve()
	if err != nil {
		return err
	}
	return handle.SendKeys(keys)
}

func (e *Element) Clear() error {
	handle, err := e.Resolve()
	if err != nil {
		return err
	}
	return handle.Clear()
}

// Hover moves the pointer onto the element, waits for the settle delay, then
// resets the pointer gestures of the page. The gestures are reset even if the
// move failed.
func (e *Element) Hover(settle time.Duration) (err error) {
	handle, err := e.Resolve()
	if err != nil {
		return err
	}
	mouse := e.page.Mouse()
	defer func() {
		if resetErr := mouse.Reset(); err == nil {
			err = resetErr
		}
	}()
	if err := mouse.MoveToElement(handle); err != nil {
		return err
	}
	if err := mouse.Perform(); err != nil {
		return err
	}
	time.Sleep(settle)
	return nil
}

// IsPresent is true when the locator matches an element within the scope of
// the element. It can be polled before the element is rendered.
func (e *Element) IsPresent() *wait.Condition {
	return wait.PresenceOfElementLocated(e.scope, e.locator)
}

// IsClickable is true when the element is displayed and enabled
func (e *Element) IsClickable() *wait.Condition {
	return wait.ElementToBeClickable(e.scope, e.locator)
}

// HasText is true when the text of the element contains the given text
func (e *Element) HasText(text string) *wait.Condition {
	return wait.TextToBePresentInElement(e.scope, e.locator, text)
}

// IsVisible is true when the element is resolved and displayed
func (e *Element) IsVisible() *wait.Condition {
	return e.resolvedCondition("visibility_of", func(handle driver.Element) (bool, error) {
		return handle.IsDisplayed()
	})
}

// IsSelected is true when the element is resolved and selected
func (e *Element) IsSelected() *wait.Condition {
	return e.resolvedCondition("element_to_be_selected", func(handle driver.Element) (bool, error) {
		return handle.IsSelected()
	})
}

// IsNotSelected is true when the element is resolved and not selected
func (e *Element) IsNotSelected() *wait.Condition {
	return e.resolvedCondition("element_selection_state_to_be", func(handle driver.Element) (bool, error) {
		selected, err := handle.IsSelected()
		return !selected, err
	})
}

// HasClass is true when the element has the given class
func (e *Element) HasClass(class string) *wait.Condition {
	return wait.NewCondition("has_class", e.scope, func(driver.Finder) (bool, error) {
		classes, err := e.Classes()
		if err != nil {
			return false, err
		}
		for _, c := range classes {
			if c == class {
				return true, nil
			}
		}
		return false, nil
	}, wait.ForLocator(e.locator))
}

// IsInvisible is true when the element is not displayed, or not in the document at all
func (e *Element) IsInvisible() *wait.Condition {
	return wait.NewCondition("invisibility_of_element", wait.StaticScope(e.page.driver), func(driver.Finder) (bool, error) {
		handle, err := e.Resolve()
		if err != nil {
			if driver.IsNotFound(err) || driver.IsStale(err) {
				return true, nil
			}
			return false, err
		}
		displayed, err := handle.IsDisplayed()
		if driver.IsStale(err) {
			return true, nil
		}
		return !displayed, err
	}, wait.ForLocator(e.locator))
}

// IsStale is true when the element resolved at the time the condition is
// created is not attached to the document anymore
func (e *Element) IsStale() *wait.Condition {
	handle, resolveErr := e.Resolve()
	return wait.NewCondition("staleness_of", wait.StaticScope(e.page.driver), func(driver.Finder) (bool, error) {
		if resolveErr != nil {
			return false, resolveErr
		}
		return handle.IsStale()
	}, wait.ForLocator(e.locator))
}

func (e *Element) resolvedCondition(name string, check func(handle driver.Element) (bool, error)) *wait.Condition {
	return wait.NewCondition(name, e.scope, func(driver.Finder) (bool, error) {
		handle, err := e.Resolve()
		if err != nil {
			return false, err
		}
		return check(handle)
	}, wait.ForLocator(e.locator))
}
