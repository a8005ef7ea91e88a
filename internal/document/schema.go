package document

import (
	"fmt"
	"slices"
	"sort"
)

// Unbounded marks a ChildRule without an upper limit.
const Unbounded = -1

// AttrRule describes one attribute of an element.
type AttrRule struct {
	Required bool
	// Values restricts the attribute to an enumeration when non-empty.
	Values []string
}

// ChildRule is one step of an element's child sequence.
type ChildRule struct {
	Name string
	Min  int
	Max  int
}

// ElementRule describes the attributes and children an element accepts.
// Children must appear in the order of the rules.
type ElementRule struct {
	Attrs    map[string]AttrRule
	Children []ChildRule
}

// Schema describes the elements of a document type.
type Schema struct {
	Root     string
	Elements map[string]ElementRule
}

// check reports schemas that cannot validate a document.
func (s *Schema) check() error {
	if s == nil {
		return &StructureError{Reason: "no schema definition"}
	}
	if s.Root == "" {
		return &StructureError{Reason: "root element not set"}
	}
	if _, ok := s.Elements[s.Root]; !ok {
		return &StructureError{Reason: fmt.Sprintf("root element <%s> not declared", s.Root)}
	}
	names := make([]string, 0, len(s.Elements))
	for name := range s.Elements {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, child := range s.Elements[name].Children {
			if _, ok := s.Elements[child.Name]; !ok {
				return &StructureError{Reason: fmt.Sprintf("<%s> references undeclared element <%s>", name, child.Name)}
			}
			if child.Min < 0 || (child.Max != Unbounded && child.Max < child.Min) {
				return &StructureError{Reason: fmt.Sprintf("<%s> has invalid cardinality for <%s>", name, child.Name)}
			}
		}
	}
	return nil
}

// Validate checks an in-memory tree against schema.
func Validate(root *Node, schema *Schema) error {
	if err := schema.check(); err != nil {
		return err
	}
	var violations []Violation
	validateTree(root, schema, &violations)
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

func validateTree(root *Node, schema *Schema, out *[]Violation) {
	if root == nil {
		*out = append(*out, Violation{Message: "document has no root element"})
		return
	}
	if root.Name != schema.Root {
		*out = append(*out, Violation{
			Line:    root.Line,
			Message: fmt.Sprintf("root element is <%s>, expected <%s>", root.Name, schema.Root),
		})
		return
	}
	validateNode(root, schema, out)
}

func validateNode(n *Node, schema *Schema, out *[]Violation) {
	report := func(line int, format string, args ...any) {
		*out = append(*out, Violation{Line: line, Message: fmt.Sprintf(format, args...)})
	}

	rule, ok := schema.Elements[n.Name]
	if !ok {
		report(n.Line, "undeclared element <%s>", n.Name)
		return
	}

	seen := make(map[string]struct{}, len(n.Attrs))
	for _, attr := range n.Attrs {
		if _, dup := seen[attr.Name]; dup {
			report(n.Line, "attribute %q repeated on <%s>", attr.Name, n.Name)
			continue
		}
		seen[attr.Name] = struct{}{}
		attrRule, ok := rule.Attrs[attr.Name]
		if !ok {
			report(n.Line, "attribute %q not allowed on <%s>", attr.Name, n.Name)
			continue
		}
		if len(attrRule.Values) > 0 && !slices.Contains(attrRule.Values, attr.Value) {
			report(n.Line, "attribute %q on <%s> has invalid value %q", attr.Name, n.Name, attr.Value)
		}
	}
	required := make([]string, 0, len(rule.Attrs))
	for name, attrRule := range rule.Attrs {
		if attrRule.Required {
			required = append(required, name)
		}
	}
	sort.Strings(required)
	for _, name := range required {
		if _, ok := seen[name]; !ok {
			report(n.Line, "<%s> is missing required attribute %q", n.Name, name)
		}
	}

	pos := 0
	for _, childRule := range rule.Children {
		count := 0
		for pos < len(n.Children) && n.Children[pos].Name == childRule.Name {
			count++
			pos++
		}
		if count < childRule.Min {
			report(n.Line, "<%s> requires at least %d <%s>, found %d", n.Name, childRule.Min, childRule.Name, count)
		}
		if childRule.Max != Unbounded && count > childRule.Max {
			report(n.Line, "<%s> allows at most %d <%s>, found %d", n.Name, childRule.Max, childRule.Name, count)
		}
	}
	for ; pos < len(n.Children); pos++ {
		child := n.Children[pos]
		if slices.ContainsFunc(rule.Children, func(c ChildRule) bool { return c.Name == child.Name }) {
			report(child.Line, "element <%s> out of order in <%s>", child.Name, n.Name)
		} else {
			report(child.Line, "element <%s> not allowed in <%s>", child.Name, n.Name)
		}
	}

	for _, child := range n.Children {
		validateNode(child, schema, out)
	}
}
