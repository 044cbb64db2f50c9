package sqlextract

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteOptions controls how WriteTables treats an existing output file.
type WriteOptions struct {
	// Append adds tables whose id is not yet in the file and leaves
	// existing entries alone.
	Append bool
	// Update additionally merges into existing entries: null data_type
	// and data_level fields are filled and missing select_from references
	// appended.
	Update bool
}

// WriteStats summarizes what WriteTables changed.
type WriteStats struct {
	NodesAdded       int
	NodesUpdated     int
	ConnectionsAdded int
}

func (s WriteStats) String() string {
	return fmt.Sprintf("Extraction summary: %d nodes added, %d nodes updated, %d connections added",
		s.NodesAdded, s.NodesUpdated, s.ConnectionsAdded)
}

// WriteTables writes extracted tables to a lineage YAML file. A fresh file
// is created when none exists. When the file exists, Append or Update must
// be set or the call fails rather than clobbering user edits; both modes
// round-trip the existing document through a node tree so comments and key
// order survive. Extracted entries carry a null data_level for manual
// completion.
func WriteTables(tables []Table, path string, opts WriteOptions) (WriteStats, error) {
	var stats WriteStats

	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		var doc yaml.Node
		doc.Kind = yaml.DocumentNode
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		doc.Content = []*yaml.Node{{
			Kind:    yaml.MappingNode,
			Tag:     "!!map",
			Content: []*yaml.Node{strScalar("nodes"), seq},
		}}
		for _, t := range tables {
			seq.Content = append(seq.Content, tableYAML(t))
			stats.NodesAdded++
		}
		return stats, writeDocument(path, &doc)
	}
	if err != nil {
		return stats, fmt.Errorf("reading %s: %w", path, err)
	}
	if !opts.Append && !opts.Update {
		return stats, fmt.Errorf("%s already exists (use append or update mode)", path)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(existing, &doc); err != nil {
		return stats, fmt.Errorf("parsing %s: %w", path, err)
	}
	seq := nodesSequence(&doc)
	if seq == nil {
		return stats, fmt.Errorf("%s has no top-level nodes list", path)
	}

	byID := make(map[string]*yaml.Node)
	for _, item := range seq.Content {
		if id, ok := mappingValue(item, "id"); ok {
			byID[id.Value] = item
		}
	}

	for _, t := range tables {
		entry, ok := byID[t.ID]
		if !ok {
			seq.Content = append(seq.Content, tableYAML(t))
			stats.NodesAdded++
			continue
		}
		if opts.Update && mergeTable(entry, t, &stats) {
			stats.NodesUpdated++
		}
	}
	return stats, writeDocument(path, &doc)
}

// mergeTable fills null fields and appends missing references on an
// existing entry. Reports whether anything changed.
func mergeTable(entry *yaml.Node, t Table, stats *WriteStats) bool {
	changed := false

	if v, ok := mappingValue(entry, "data_type"); ok && isNull(v) {
		*v = *strScalar(string(t.Type))
		changed = true
	}

	refs, ok := mappingValue(entry, "select_from")
	if !ok {
		refs = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		entry.Content = append(entry.Content, strScalar("select_from"), refs)
	} else if isNull(refs) {
		*refs = yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	}

	have := make(map[string]bool)
	for _, item := range refs.Content {
		if item.Kind == yaml.ScalarNode {
			have[item.Value] = true
		}
		if id, ok := mappingValue(item, "id"); ok {
			have[id.Value] = true
		}
	}
	for _, ref := range t.SelectFrom {
		if have[ref] {
			continue
		}
		refs.Content = append(refs.Content, strScalar(ref))
		refs.Style = 0
		stats.ConnectionsAdded++
		changed = true
	}
	return changed
}

// tableYAML builds the YAML entry for one extracted table.
func tableYAML(t Table) *yaml.Node {
	refs := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, ref := range t.SelectFrom {
		refs.Content = append(refs.Content, strScalar(ref))
	}
	if len(refs.Content) == 0 {
		refs.Style = yaml.FlowStyle
	}

	return &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
		Content: []*yaml.Node{
			strScalar("id"), strScalar(t.ID),
			strScalar("label"), strScalar(t.ID),
			strScalar("data_type"), strScalar(string(t.Type)),
			strScalar("data_level"), nullScalar(),
			strScalar("select_from"), refs,
		},
	}
}

// nodesSequence finds the top-level "nodes" sequence in a parsed document.
func nodesSequence(doc *yaml.Node) *yaml.Node {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil
	}
	if v, ok := mappingValue(root, "nodes"); ok && v.Kind == yaml.SequenceNode {
		return v
	}
	return nil
}

// mappingValue returns the value node for key in a mapping node.
func mappingValue(m *yaml.Node, key string) (*yaml.Node, bool) {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil, false
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1], true
		}
	}
	return nil, false
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && (n.Tag == "!!null" || n.Value == "")
}

func strScalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func nullScalar() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func writeDocument(path string, doc *yaml.Node) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
