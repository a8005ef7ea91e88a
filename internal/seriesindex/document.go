package seriesindex

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"sindex/internal/document"
	"sindex/internal/logging"
)

// DoctypeSystem is the system identifier written into exported documents.
const DoctypeSystem = "seriesindex.dtd"

const (
	elemIndex    = "seriesindex"
	elemSeries   = "series"
	elemAlias    = "alias"
	elemEpisodes = "episodes"
	elemEpisode  = "episode"
)

var boolValues = []string{"true", "false"}

// Schema describes the seriesindex document:
//
//	seriesindex
//	  series (name, receive_updates?)
//	    alias (to)*
//	    episodes (lang)*
//	      episode (name, all_before?)*
var Schema = &document.Schema{
	Root: elemIndex,
	Elements: map[string]document.ElementRule{
		elemIndex: {
			Children: []document.ChildRule{{Name: elemSeries, Max: document.Unbounded}},
		},
		elemSeries: {
			Attrs: map[string]document.AttrRule{
				"name":            {Required: true},
				"receive_updates": {Values: boolValues},
			},
			Children: []document.ChildRule{
				{Name: elemAlias, Max: document.Unbounded},
				{Name: elemEpisodes, Max: document.Unbounded},
			},
		},
		elemAlias: {
			Attrs: map[string]document.AttrRule{"to": {Required: true}},
		},
		elemEpisodes: {
			Attrs:    map[string]document.AttrRule{"lang": {Required: true}},
			Children: []document.ChildRule{{Name: elemEpisode, Max: document.Unbounded}},
		},
		elemEpisode: {
			Attrs: map[string]document.AttrRule{
				"name":       {Required: true},
				"all_before": {Values: boolValues},
			},
		},
	},
}

// Import parses and validates a seriesindex document and builds a new index
// from it. Invalid documents yield a *document.ValidationError and no index.
func Import(r io.Reader, opts ...Option) (*Index, error) {
	root, err := document.Parse(r, Schema)
	if err != nil {
		return nil, fmt.Errorf("import index: %w", err)
	}
	ix := New(opts...)
	if err := ix.ImportDocument(root); err != nil {
		return nil, err
	}
	return ix, nil
}

// ImportDocument validates root and adds its series and aliases to ix.
// Episodes are replayed in document order so all_before backfills apply where
// they appear. Series with a blank name are skipped. Nothing is changed when
// root is invalid.
func (ix *Index) ImportDocument(root *document.Node) error {
	if err := document.Validate(root, Schema); err != nil {
		return fmt.Errorf("import index: %w", err)
	}

	type imported struct {
		series *Series
		node   *document.Node
	}
	var all []imported

	for _, node := range root.ChildrenNamed(elemSeries) {
		name, _ := node.Attr("name")
		if strings.TrimSpace(name) == "" {
			ix.logger.Debug("series without name skipped", logging.Int("line", node.Line))
			continue
		}
		series := ix.ensureSeries(name)
		if value, _ := node.Attr("receive_updates"); value == "false" {
			series.ReceiveUpdates = false
		}
		for _, episodes := range node.ChildrenNamed(elemEpisodes) {
			lang, _ := episodes.Attr("lang")
			series.language(lang)
			for _, ep := range episodes.ChildrenNamed(elemEpisode) {
				filename, _ := ep.Attr("name")
				allBefore, _ := ep.Attr("all_before")
				if !series.AddEpisode(filename, lang, allBefore == "true") {
					ix.logger.Debug("episode without identifier skipped",
						logging.String(logging.FieldSeries, series.Name),
						logging.String(logging.FieldEpisode, filename),
						logging.Int("line", ep.Line))
				}
			}
		}
		all = append(all, imported{series: series, node: node})
	}

	// Aliases are registered once every series of the document exists.
	for _, item := range all {
		for _, alias := range item.node.ChildrenNamed(elemAlias) {
			to, _ := alias.Attr("to")
			if err := ix.AddAlias(to, item.series.Name); err != nil {
				logging.WarnWithContext(ix.logger, "alias skipped", "alias_skipped",
					logging.String("alias", to),
					logging.String(logging.FieldSeries, item.series.Name),
					logging.Int("line", alias.Line),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "rename the alias or the series in the index document"),
					logging.String(logging.FieldImpact, "queries using the alias will not resolve"))
			}
		}
	}

	ix.logger.Debug("index document imported",
		logging.Int("series", ix.Len()),
		logging.Int("aliases", len(ix.aliases)))
	return nil
}

// ensureSeries returns the series stored under name ignoring case, creating
// it when absent. The first casing seen is kept.
func (ix *Index) ensureSeries(name string) *Series {
	if existing, ok := ix.canonicalName(name); ok {
		return ix.series[existing]
	}
	series := NewSeries(name)
	ix.putSeries(series)
	return series
}

// ExportDocument renders the index as a seriesindex document tree. Virtual
// entries are not written; the real entry following a run of them carries
// all_before="true" instead. Trailing virtual entries are dropped.
func (ix *Index) ExportDocument() *document.Node {
	aliasesByTarget := make(map[string][]string)
	for _, alias := range slices.Sorted(maps.Keys(ix.aliases)) {
		target := ix.aliases[alias]
		aliasesByTarget[target] = append(aliasesByTarget[target], alias)
	}

	root := document.NewNode(elemIndex)
	for _, name := range ix.SeriesNames() {
		series := ix.series[name]
		node := document.NewNode(elemSeries, document.Attr{Name: "name", Value: name})
		if !series.ReceiveUpdates {
			node.SetAttr("receive_updates", "false")
		}
		for _, alias := range aliasesByTarget[name] {
			node.Append(document.NewNode(elemAlias, document.Attr{Name: "to", Value: alias}))
		}
		for _, lang := range series.Languages() {
			node.Append(exportLanguage(series, lang))
		}
		root.Append(node)
	}
	return root
}

func exportLanguage(series *Series, lang string) *document.Node {
	node := document.NewNode(elemEpisodes, document.Attr{Name: "lang", Value: lang})
	skipped := false
	for _, item := range series.Entries(lang) {
		filename, ok := item.Entry.Filename()
		if !ok {
			skipped = true
			continue
		}
		ep := document.NewNode(elemEpisode, document.Attr{Name: "name", Value: filename})
		if skipped {
			ep.SetAttr("all_before", "true")
			skipped = false
		}
		node.Append(ep)
	}
	return node
}

// Export writes the index as a validated seriesindex document.
func (ix *Index) Export(w io.Writer) error {
	root := ix.ExportDocument()
	if err := document.Validate(root, Schema); err != nil {
		return fmt.Errorf("export index: %w", err)
	}
	if err := document.Write(w, root, document.WriteOptions{DoctypeSystem: DoctypeSystem}); err != nil {
		return fmt.Errorf("export index: %w", err)
	}
	return nil
}
