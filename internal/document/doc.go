// Package document reads and writes small validated XML documents as trees of
// named nodes with attributes.
//
// A Schema plays the role of a DTD: it names the root element and, for every
// element, the attributes it accepts (required or optional, optionally from a
// fixed value list) and the child elements it may contain in sequence with
// their cardinality. Parse streams the input with encoding/xml, builds the
// tree, and checks it against the schema in one pass, collecting every
// violation with its line number instead of stopping at the first one.
//
// Two error types are returned:
//   - *StructureError when the schema itself is missing or inconsistent
//   - *ValidationError when the document is malformed or breaks the schema
//
// A failed Parse never returns a partial tree. Write serializes a tree back to
// indented XML with an optional DOCTYPE line.
package document
