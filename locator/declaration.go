package locator

import (
	"os"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

// Declaration is a page declared in a YAML file
type Declaration struct {
	Name     string
	URL      string
	Elements Elements
	// Setups are the test setups the elements refer to by name
	Setups map[string]SetupSteps
}

type declarationsFile struct {
	Pages []pageSpec `json:"pages"`
}

type pageSpec struct {
	Name     string                 `json:"name"`
	URL      string                 `json:"url"`
	Elements map[string]locatorSpec `json:"elements,omitempty"`
	Setups   map[string]SetupSteps  `json:"setups,omitempty"`
}

type locatorSpec struct {
	By        Strategy               `json:"by"`
	Value     string                 `json:"value"`
	Count     *int                   `json:"count,omitempty"`
	Exclude   bool                   `json:"exclude,omitempty"`
	TestSetup string                 `json:"testSetup,omitempty"`
	Elements  map[string]locatorSpec `json:"elements,omitempty"`
}

// LoadDeclarations reads the page declarations of the given YAML file
func LoadDeclarations(path string) ([]Declaration, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decls, err := ParseDeclarations(content)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid page declarations in '%s'", path)
	}
	return decls, nil
}

// ParseDeclarations decodes and validates page declarations, for example:
//
//	pages:
//	- name: home
//	  url: ^https://example\.com/$
//	  elements:
//	    header:
//	      by: tag name
//	      value: header
//	      elements:
//	        search:
//	          by: id
//	          value: search
//	          testSetup: searchOpen
//	        open_search:
//	          by: class name
//	          value: search-trigger
//	  setups:
//	    searchOpen:
//	      acquire:
//	      - click: header.open_search
//	      - waitPresent: header.search
//	      release:
//	      - click: header.open_search
//	      - waitInvisible: header.search
func ParseDeclarations(content []byte) ([]Declaration, error) {
	f := declarationsFile{}
	if err := yaml.Unmarshal(content, &f); err != nil {
		return nil, err
	}
	decls := make([]Declaration, 0, len(f.Pages))
	names := map[string]bool{}
	for i, p := range f.Pages {
		if p.Name == "" {
			return nil, errors.Errorf("page #%d has no name", i+1)
		}
		if names[p.Name] {
			return nil, errors.Errorf("page '%s' is declared more than once", p.Name)
		}
		names[p.Name] = true
		if p.URL == "" {
			return nil, errors.Errorf("page '%s' has no url", p.Name)
		}
		elements := toElements(p.Elements)
		if err := elements.Validate(); err != nil {
			return nil, errors.Wrapf(err, "page '%s'", p.Name)
		}
		if err := validateSetups(elements, p.Setups); err != nil {
			return nil, errors.Wrapf(err, "page '%s'", p.Name)
		}
		decls = append(decls, Declaration{
			Name:     p.Name,
			URL:      p.URL,
			Elements: elements,
			Setups:   p.Setups,
		})
	}
	return decls, nil
}

func toElements(specs map[string]locatorSpec) Elements {
	elements := make(Elements, len(specs))
	for name, s := range specs {
		options := []Option{Children(toElements(s.Elements))}
		if s.Count != nil {
			options = append(options, N(*s.Count))
		}
		if s.Exclude {
			options = append(options, Exclude())
		}
		if s.TestSetup != "" {
			options = append(options, TestSetup(s.TestSetup))
		}
		elements[name] = New(s.By, s.Value, options...)
	}
	return elements
}
