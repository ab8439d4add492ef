package doubles

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/codeready-toolchain/toolchain-pageobjects/locator"
)

var compoundSelector = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9-]*)?((?:[#.][a-zA-Z0-9_-]+)*)$`)
var selectorPart = regexp.MustCompile(`[#.][a-zA-Z0-9_-]+`)

// matcher returns a function matching the nodes found by the strategy and value.
// CSS selectors are limited to a single compound selector (tag, #id and .class parts)
// and XPath is not supported.
func matcher(by locator.Strategy, value string) (func(*Node) bool, error) {
	switch by {
	case locator.ByID:
		return func(n *Node) bool { return n.ID == value }, nil
	case locator.ByName:
		return func(n *Node) bool { return n.Name == value }, nil
	case locator.ByClassName:
		return func(n *Node) bool { return n.hasClass(value) }, nil
	case locator.ByTagName:
		return func(n *Node) bool { return strings.EqualFold(n.Tag, value) }, nil
	case locator.ByLinkText:
		return func(n *Node) bool { return n.Tag == "a" && strings.TrimSpace(n.textContent()) == value }, nil
	case locator.ByPartialLinkText:
		return func(n *Node) bool { return n.Tag == "a" && strings.Contains(n.textContent(), value) }, nil
	case locator.ByCSSSelector:
		return cssMatcher(value)
	}
	return nil, fmt.Errorf("search strategy '%s' is not supported by the in-memory document", by)
}

func cssMatcher(selector string) (func(*Node) bool, error) {
	groups := compoundSelector.FindStringSubmatch(strings.TrimSpace(selector))
	if groups == nil || selector == "" {
		return nil, fmt.Errorf("css selector '%s' is not supported by the in-memory document", selector)
	}
	tag := groups[1]
	parts := selectorPart.FindAllString(groups[2], -1)
	return func(n *Node) bool {
		if tag != "" && !strings.EqualFold(n.Tag, tag) {
			return false
		}
		for _, p := range parts {
			if p[0] == '#' && n.ID != p[1:] {
				return false
			}
			if p[0] == '.' && !n.hasClass(p[1:]) {
				return false
			}
		}
		return true
	}, nil
}
