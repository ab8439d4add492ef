package driver

import (
	"fmt"
	"strings"

	"github.com/codeready-toolchain/toolchain-pageobjects/locator"
)

// Selector is a CSS or XPath expression equivalent to a locator strategy
type Selector struct {
	Value string
	XPath bool
}

// ToSelector translates the strategy and value into a selector for the engines
// which don't implement the WebDriver strategies. XPath expressions built here
// are relative to the search context.
func ToSelector(by locator.Strategy, value string) (Selector, error) {
	switch by {
	case locator.ByID:
		return Selector{Value: fmt.Sprintf(`[id=%s]`, cssString(value))}, nil
	case locator.ByName:
		return Selector{Value: fmt.Sprintf(`[name=%s]`, cssString(value))}, nil
	case locator.ByClassName:
		return Selector{Value: fmt.Sprintf(`[class~=%s]`, cssString(value))}, nil
	case locator.ByTagName, locator.ByCSSSelector:
		return Selector{Value: value}, nil
	case locator.ByLinkText:
		return Selector{Value: fmt.Sprintf(`.//a[normalize-space(.)=%s]`, xpathString(value)), XPath: true}, nil
	case locator.ByPartialLinkText:
		return Selector{Value: fmt.Sprintf(`.//a[contains(normalize-space(.), %s)]`, xpathString(value)), XPath: true}, nil
	case locator.ByXPath:
		return Selector{Value: value, XPath: true}, nil
	}
	return Selector{}, fmt.Errorf("unsupported search strategy '%s'", by)
}

func cssString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// xpathString quotes s as an XPath 1.0 literal, which has no escape sequences
func xpathString(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, `'`) {
		return `'` + s + `'`
	}
	parts := strings.Split(s, `"`)
	quoted := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `'"'`)
		}
		quoted = append(quoted, `"`+p+`"`)
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
