package document

// Attr is a single attribute of a Node.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of a parsed or generated document.
type Node struct {
	Name     string
	Attrs    []Attr
	Children []*Node
	// Line is the source line of the element, zero for generated nodes.
	Line int
}

// NewNode creates an element with the given attributes in order.
func NewNode(name string, attrs ...Attr) *Node {
	return &Node{Name: name, Attrs: attrs}
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// SetAttr replaces the named attribute or appends it.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Append adds children and returns n for chaining.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// ChildrenNamed returns the direct children with the given element name.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, child := range n.Children {
		if child.Name == name {
			out = append(out, child)
		}
	}
	return out
}
