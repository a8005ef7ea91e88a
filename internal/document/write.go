package document

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// WriteOptions controls serialization.
type WriteOptions struct {
	// DoctypeSystem, when set, emits <!DOCTYPE root SYSTEM "...">.
	DoctypeSystem string
	// Indent defaults to two spaces.
	Indent string
}

// Write serializes root as an XML document.
func Write(w io.Writer, root *Node, opts WriteOptions) error {
	if root == nil {
		return fmt.Errorf("write document: no root element")
	}
	indent := opts.Indent
	if indent == "" {
		indent = "  "
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(xml.Header)
	if opts.DoctypeSystem != "" {
		fmt.Fprintf(bw, "<!DOCTYPE %s SYSTEM \"%s\">\n", root.Name, escape(opts.DoctypeSystem))
	}
	writeNode(bw, root, indent, 0)
	return bw.Flush()
}

func writeNode(bw *bufio.Writer, n *Node, indent string, depth int) {
	prefix := strings.Repeat(indent, depth)
	bw.WriteString(prefix)
	bw.WriteByte('<')
	bw.WriteString(n.Name)
	for _, attr := range n.Attrs {
		bw.WriteByte(' ')
		bw.WriteString(attr.Name)
		bw.WriteString(`="`)
		bw.WriteString(escape(attr.Value))
		bw.WriteByte('"')
	}
	if len(n.Children) == 0 {
		bw.WriteString("/>\n")
		return
	}
	bw.WriteString(">\n")
	for _, child := range n.Children {
		writeNode(bw, child, indent, depth+1)
	}
	bw.WriteString(prefix)
	bw.WriteString("</")
	bw.WriteString(n.Name)
	bw.WriteString(">\n")
}

func escape(value string) string {
	var buf bytes.Buffer
	// EscapeText only fails on writer errors; bytes.Buffer never returns one.
	_ = xml.EscapeText(&buf, []byte(value))
	return buf.String()
}
