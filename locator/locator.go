package locator

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// Strategy is the search strategy used to find an element. The values are the
// ones defined by the WebDriver protocol.
type Strategy string

const (
	ByID              Strategy = "id"
	ByName            Strategy = "name"
	ByClassName       Strategy = "class name"
	ByTagName         Strategy = "tag name"
	ByLinkText        Strategy = "link text"
	ByPartialLinkText Strategy = "partial link text"
	ByCSSSelector     Strategy = "css selector"
	ByXPath           Strategy = "xpath"
)

var strategies = map[Strategy]bool{
	ByID:              true,
	ByName:            true,
	ByClassName:       true,
	ByTagName:         true,
	ByLinkText:        true,
	ByPartialLinkText: true,
	ByCSSSelector:     true,
	ByXPath:           true,
}

// Valid returns true if the strategy is one of the supported search strategies
func (s Strategy) Valid() bool {
	return strategies[s]
}

// Elements maps element names to their locators
type Elements map[string]*Locator

// Extend returns a new map containing the entries of e and the given elements.
// Entries of the given elements override the ones with the same name in e.
func (e Elements) Extend(elements Elements) Elements {
	result := make(Elements, len(e)+len(elements))
	for name, l := range e {
		result[name] = l
	}
	for name, l := range elements {
		result[name] = l
	}
	return result
}

// Names returns the sorted names of the elements
func (e Elements) Names() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Locator stores how an element of a web page should be found, how many matches
// the structural self-test expects, and the locators of its child elements.
// A Locator is immutable once built.
type Locator struct {
	by        Strategy
	value     string
	count     int
	exclude   bool
	testSetup string
	children  Elements
}

// Option configures a Locator while it is built
type Option func(*Locator)

// N sets the number of elements the structural self-test expects (1 by default)
func N(n int) Option {
	return func(l *Locator) {
		l.count = n
	}
}

// Exclude excludes the element from the presence and count assertions of the
// structural self-test. Its children are still tested.
func Exclude() Option {
	return func(l *Locator) {
		l.exclude = true
	}
}

// TestSetup sets the name of the page setup hook that must wrap the self-test
// of the element and its children
func TestSetup(name string) Option {
	return func(l *Locator) {
		l.testSetup = name
	}
}

// Children sets the child elements, which are searched within the element
func Children(children Elements) Option {
	return func(l *Locator) {
		l.children = Elements{}.Extend(children)
	}
}

// New returns a new Locator
func New(by Strategy, value string, options ...Option) *Locator {
	l := &Locator{
		by:       by,
		value:    value,
		count:    1,
		children: Elements{},
	}
	for _, apply := range options {
		apply(l)
	}
	return l
}

func (l *Locator) By() Strategy {
	return l.by
}

func (l *Locator) Value() string {
	return l.value
}

func (l *Locator) ExpectedCount() int {
	return l.count
}

func (l *Locator) IsExcluded() bool {
	return l.exclude
}

func (l *Locator) TestSetupName() string {
	return l.testSetup
}

// Child returns the locator of the child element with the given name
func (l *Locator) Child(name string) (*Locator, bool) {
	child, ok := l.children[name]
	return child, ok
}

// Children returns a copy of the child elements
func (l *Locator) Children() Elements {
	return Elements{}.Extend(l.children)
}

// Names returns the sorted names of the child elements
func (l *Locator) Names() []string {
	return l.children.Names()
}

func (l *Locator) String() string {
	return fmt.Sprintf("(%s, %s)", l.by, l.value)
}

// Validate checks the locator and all its descendants
func (l *Locator) Validate() error {
	return l.validate("", map[*Locator]bool{})
}

// Validate checks all the locators of the tree
func (e Elements) Validate() error {
	for _, name := range e.Names() {
		if err := validateEntry(name, e[name], map[*Locator]bool{}); err != nil {
			return err
		}
	}
	return nil
}

func validateEntry(name string, l *Locator, ancestors map[*Locator]bool) error {
	if name == "" {
		return errors.New("element name must not be empty")
	}
	if l == nil {
		return errors.Errorf("element '%s' has no locator", name)
	}
	return l.validate(name, ancestors)
}

func (l *Locator) validate(name string, ancestors map[*Locator]bool) error {
	if ancestors[l] {
		return errors.Errorf("element '%s' is its own ancestor", name)
	}
	if !l.by.Valid() {
		return errors.Errorf("element '%s' uses an unsupported search strategy '%s'", name, l.by)
	}
	if l.value == "" {
		return errors.Errorf("element '%s' has an empty search value", name)
	}
	if l.count < 1 {
		return errors.Errorf("element '%s' expects %d elements, at least 1 is required", name, l.count)
	}
	ancestors[l] = true
	defer delete(ancestors, l)
	for _, childName := range l.children.Names() {
		path := childName
		if name != "" {
			path = name + "." + childName
		}
		if err := validateEntry(path, l.children[childName], ancestors); err != nil {
			return err
		}
	}
	return nil
}
