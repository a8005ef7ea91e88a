package document

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Parse reads one XML document from r and validates it against schema.
func Parse(r io.Reader, schema *Schema) (*Node, error) {
	if err := schema.check(); err != nil {
		return nil, err
	}

	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	var (
		root       *Node
		stack      []*Node
		violations []Violation
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var syntaxErr *xml.SyntaxError
			if errors.As(err, &syntaxErr) {
				return nil, &ValidationError{Violations: append(violations, Violation{
					Line:    syntaxErr.Line,
					Message: syntaxErr.Msg,
				})}
			}
			line, _ := decoder.InputPos()
			return nil, &ValidationError{Violations: append(violations, Violation{
				Line:    line,
				Message: fmt.Sprintf("unreadable document: %v", err),
			})}
		}

		line, _ := decoder.InputPos()
		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{Name: qualifiedName(t.Name), Line: line}
			for _, attr := range t.Attr {
				node.Attrs = append(node.Attrs, Attr{Name: qualifiedName(attr.Name), Value: attr.Value})
			}
			switch {
			case len(stack) > 0:
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			case root == nil:
				root = node
			default:
				violations = append(violations, Violation{Line: line, Message: fmt.Sprintf("second root element <%s>", node.Name)})
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if text := strings.TrimSpace(string(t)); text != "" {
				where := "document"
				if len(stack) > 0 {
					where = "<" + stack[len(stack)-1].Name + ">"
				}
				violations = append(violations, Violation{Line: line, Message: fmt.Sprintf("unexpected text %q in %s", abbreviate(text), where)})
			}
		}
	}

	validateTree(root, schema, &violations)
	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	return root, nil
}

func qualifiedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

func abbreviate(text string) string {
	const limit = 32
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
