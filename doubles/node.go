// Package doubles provides an in-memory document implementing the driver
// capability, so that page objects can be tested without a browser.
package doubles

import (
	"strings"
)

// Node is an element of the in-memory document
type Node struct {
	Tag        string
	ID         string
	Name       string
	Classes    []string
	Attributes map[string]string
	Properties map[string]string
	Text       string
	Hidden     bool
	Disabled   bool
	Selected   bool
	// OnClick is called (without holding the document lock) when the node is clicked
	OnClick func()
	// OnHover is called (without holding the document lock) when the pointer moves onto the node
	OnHover func()

	children []*Node
	parent   *Node
}

// NodeOption configures a Node
type NodeOption func(*Node)

// El returns a new node with the given tag
func El(tag string, options ...NodeOption) *Node {
	n := &Node{
		Tag:        tag,
		Attributes: map[string]string{},
		Properties: map[string]string{},
	}
	for _, apply := range options {
		apply(n)
	}
	return n
}

func ID(id string) NodeOption {
	return func(n *Node) {
		n.ID = id
	}
}

func Name(name string) NodeOption {
	return func(n *Node) {
		n.Name = name
	}
}

func Class(classes ...string) NodeOption {
	return func(n *Node) {
		n.Classes = append(n.Classes, classes...)
	}
}

func Text(text string) NodeOption {
	return func(n *Node) {
		n.Text = text
	}
}

func Attr(name, value string) NodeOption {
	return func(n *Node) {
		n.Attributes[name] = value
	}
}

func Prop(name, value string) NodeOption {
	return func(n *Node) {
		n.Properties[name] = value
	}
}

func Hidden() NodeOption {
	return func(n *Node) {
		n.Hidden = true
	}
}

func Disabled() NodeOption {
	return func(n *Node) {
		n.Disabled = true
	}
}

func Selected() NodeOption {
	return func(n *Node) {
		n.Selected = true
	}
}

func OnClick(f func()) NodeOption {
	return func(n *Node) {
		n.OnClick = f
	}
}

func OnHover(f func()) NodeOption {
	return func(n *Node) {
		n.OnHover = f
	}
}

// Containing appends the given children
func Containing(children ...*Node) NodeOption {
	return func(n *Node) {
		for _, c := range children {
			c.parent = n
			n.children = append(n.children, c)
		}
	}
}

func (n *Node) attribute(name string) string {
	switch name {
	case "id":
		return n.ID
	case "name":
		return n.Name
	case "class":
		return strings.Join(n.Classes, " ")
	}
	return n.Attributes[name]
}

func (n *Node) hasClass(class string) bool {
	for _, c := range n.Classes {
		if c == class {
			return true
		}
	}
	return false
}

func (n *Node) textContent() string {
	parts := []string{}
	if n.Text != "" {
		parts = append(parts, n.Text)
	}
	for _, c := range n.children {
		if t := c.textContent(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func (n *Node) displayed() bool {
	for current := n; current != nil; current = current.parent {
		if current.Hidden {
			return false
		}
	}
	return true
}

// descendants returns the descendants of the node in document order
func (n *Node) descendants() []*Node {
	var result []*Node
	for _, c := range n.children {
		result = append(result, c)
		result = append(result, c.descendants()...)
	}
	return result
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	siblings := n.parent.children
	for i, c := range siblings {
		if c == n {
			n.parent.children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
}
