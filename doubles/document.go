package doubles

import (
	"fmt"
	"sync"

	"github.com/codeready-toolchain/toolchain-pageobjects/driver"
	"github.com/codeready-toolchain/toolchain-pageobjects/locator"

	"github.com/pkg/errors"
)

var _ driver.Driver = &Document{}

// Document is an in-memory browser session implementing driver.Driver.
// It is safe for concurrent use, so that tests can mutate it while a wait is polling.
type Document struct {
	// FindErr, when set, is returned by every lookup
	FindErr error
	// BrokenReset makes the pointers keep their queued gestures when reset
	BrokenReset bool

	mu          sync.Mutex
	root        *Node
	url         string
	title       string
	windows     []string
	routes      map[string]func(d *Document)
	redirects   map[string]string
	lookups     int
	navigations []string
	gestures    []string
	quit        bool
}

// NewDocument returns a document showing about:blank
func NewDocument() *Document {
	return &Document{
		root:      El("html", Containing(El("head"), El("body"))),
		url:       "about:blank",
		windows:   []string{"window-1"},
		routes:    map[string]func(d *Document){},
		redirects: map[string]string{},
	}
}

// Route registers the function which renders the document when the given URL is loaded
func (d *Document) Route(url string, render func(d *Document)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.routes[url] = render
}

// Redirect makes the navigations to from end up on to
func (d *Document) Redirect(from, to string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.redirects[from] = to
}

// SetBody replaces the whole document with a head and a body containing the given nodes
func (d *Document) SetBody(title string, nodes ...*Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.title = title
	d.root = El("html", Containing(El("head"), El("body", Containing(nodes...))))
}

// SetURL changes the current URL without loading anything, like a client-side route change
func (d *Document) SetURL(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.url = url
}

// Append attaches the child as the last child of the parent
func (d *Document) Append(parent, child *Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	child.detach()
	Containing(child)(parent)
}

// Remove detaches the node from the document; handles on it become stale
func (d *Document) Remove(n *Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n.detach()
}

// Replace puts the new node in place of the old one; handles on the old one become stale
func (d *Document) Replace(old, replacement *Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	parent := old.parent
	if parent == nil {
		return
	}
	for i, c := range parent.children {
		if c == old {
			replacement.detach()
			parent.children[i] = replacement
			replacement.parent = parent
			old.parent = nil
			return
		}
	}
}

// Update applies the change to the node while holding the document lock
func (d *Document) Update(n *Node, change func(n *Node)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	change(n)
}

// OpenWindow adds a window and returns its handle
func (d *Document) OpenWindow() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	handle := fmt.Sprintf("window-%d", len(d.windows)+1)
	d.windows = append(d.windows, handle)
	return handle
}

// Lookups returns the number of lookups performed so far
func (d *Document) Lookups() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lookups
}

// Navigations returns the URLs requested so far
func (d *Document) Navigations() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string{}, d.navigations...)
}

// Gestures returns the pointer gestures performed so far
func (d *Document) Gestures() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string{}, d.gestures...)
}

func (d *Document) IsQuit() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.quit
}

func (d *Document) FindElement(by locator.Strategy, value string) (driver.Element, error) {
	return d.findFirst(nil, by, value)
}

func (d *Document) FindElements(by locator.Strategy, value string) ([]driver.Element, error) {
	return d.findAll(nil, by, value)
}

func (d *Document) Navigate(url string) error {
	d.mu.Lock()
	if d.quit {
		d.mu.Unlock()
		return errSessionClosed
	}
	d.navigations = append(d.navigations, url)
	if to, ok := d.redirects[url]; ok {
		url = to
	}
	d.url = url
	d.title = ""
	d.root = El("html", Containing(El("head"), El("body")))
	render := d.routes[url]
	d.mu.Unlock()
	if render != nil {
		render(d)
	}
	return nil
}

func (d *Document) CurrentURL() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.quit {
		return "", errSessionClosed
	}
	return d.url, nil
}

func (d *Document) Title() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.title, nil
}

func (d *Document) WindowHandles() ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string{}, d.windows...), nil
}

func (d *Document) NewPointer() driver.Pointer {
	return &pointer{d: d}
}

func (d *Document) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.windows) > 0 {
		d.windows = d.windows[:len(d.windows)-1]
	}
	return nil
}

func (d *Document) Quit() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.quit = true
	d.windows = nil
	return nil
}

var errSessionClosed = errors.New("session closed")

// findAll looks up the descendants of scope (or the whole document if scope is nil)
func (d *Document) findAll(scope *Node, by locator.Strategy, value string) ([]driver.Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lookups++
	if d.quit {
		return nil, errSessionClosed
	}
	if d.FindErr != nil {
		return nil, d.FindErr
	}
	if scope == nil {
		scope = d.root
	} else if !d.attached(scope) {
		return nil, errors.Wrapf(driver.ErrStaleElement, "<%s> is not attached to the document", scope.Tag)
	}
	match, err := matcher(by, value)
	if err != nil {
		return nil, err
	}
	var result []driver.Element
	for _, n := range scope.descendants() {
		if match(n) {
			result = append(result, &element{d: d, node: n})
		}
	}
	return result, nil
}

func (d *Document) findFirst(scope *Node, by locator.Strategy, value string) (driver.Element, error) {
	all, err := d.findAll(scope, by, value)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, driver.NotFound(string(by), value)
	}
	return all[0], nil
}

// attached must be called while holding the lock
func (d *Document) attached(n *Node) bool {
	for current := n; current != nil; current = current.parent {
		if current == d.root {
			return true
		}
	}
	return false
}
