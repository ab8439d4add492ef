package cmd

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/codeready-toolchain/toolchain-pageobjects/locator"
	"github.com/codeready-toolchain/toolchain-pageobjects/page"
	"github.com/codeready-toolchain/toolchain-pageobjects/terminal"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
)

// Result is the outcome of the self-test of a top-level element and its descendants
type Result struct {
	Element  string
	Failures []*page.StructuralAssertionFailure
	// Err is set when the self-test could not be performed, eg. the driver failed
	Err error
}

func (r Result) Passed() bool {
	return len(r.Failures) == 0 && r.Err == nil
}

// selectDeclaration returns the declaration with the given name. When no name
// is given, the only declaration is returned, or the user is asked to choose one.
func selectDeclaration(term terminal.Terminal, decls []locator.Declaration, name string) (locator.Declaration, error) {
	if name != "" {
		for _, d := range decls {
			if d.Name == name {
				return d, nil
			}
		}
		return locator.Declaration{}, errors.Errorf("page '%s' is not declared", name)
	}
	switch len(decls) {
	case 0:
		return locator.Declaration{}, errors.New("no page is declared")
	case 1:
		return decls[0], nil
	}
	names := make([]string, len(decls))
	for i, d := range decls {
		names[i] = d.Name
	}
	sort.Strings(names)
	selected, err := term.PromptSelect("Page to check", names)
	if err != nil {
		return locator.Declaration{}, err
	}
	return selectDeclaration(term, decls, selected)
}

// toPageDeclaration converts a YAML declaration, including its test setups.
// Relative URL patterns, eg. `^/en-US/$`, are anchored at the base URL.
func toPageDeclaration(d locator.Declaration, baseURL string) page.Declaration {
	url := d.URL
	if baseURL != "" && strings.HasPrefix(url, "^/") {
		url = "^" + regexp.QuoteMeta(strings.TrimSuffix(baseURL, "/")) + strings.TrimPrefix(url, "^")
	}
	return page.Declaration{
		Name:     d.Name,
		URL:      url,
		Elements: d.Elements,
		Setups:   page.StepsSetups(d.Setups),
	}
}

// checkElements self-tests the top-level elements of the page, in order
func checkElements(p *page.Page, done func(name string)) []Result {
	results := make([]Result, 0, len(p.Names()))
	for _, name := range p.Names() {
		r := Result{Element: name}
		if err := p.Element(name).SelfTest(); err != nil {
			r.Failures = page.StructuralFailures(err)
			if len(r.Failures) == 0 {
				r.Err = err
			}
		}
		results = append(results, r)
		if done != nil {
			done(name)
		}
	}
	return results
}

// resultTable lists one row per failure, and a single row for each element without any
func resultTable(results []Result) *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = 100
	table.Wrap = true
	table.AddRow("ELEMENT", "STATUS", "DETAILS")
	for _, r := range results {
		switch {
		case r.Err != nil:
			table.AddRow(r.Element, color.YellowString("ERROR"), r.Err.Error())
		case len(r.Failures) > 0:
			for _, f := range r.Failures {
				table.AddRow(f.Element, color.RedString("FAILED"), f.Error())
			}
		default:
			table.AddRow(r.Element, color.GreenString("OK"), "")
		}
	}
	return table
}

func countFailures(results []Result) int {
	n := 0
	for _, r := range results {
		n += len(r.Failures)
		if r.Err != nil {
			n++
		}
	}
	return n
}

func describeDeclaration(d page.Declaration) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "%s %s\n", d.Name, d.URL)
	describeElements(b, d.Elements, 1)
	return b.String()
}

func describeElements(b *strings.Builder, elements locator.Elements, depth int) {
	for _, name := range elements.Names() {
		l := elements[name]
		flags := []string{fmt.Sprintf("n=%d", l.ExpectedCount())}
		if l.IsExcluded() {
			flags = append(flags, "excluded")
		}
		if s := l.TestSetupName(); s != "" {
			flags = append(flags, "setup="+s)
		}
		fmt.Fprintf(b, "%s%s %s [%s]\n", strings.Repeat("  ", depth), name, l, strings.Join(flags, ", "))
		describeElements(b, l.Children(), depth+1)
	}
}
