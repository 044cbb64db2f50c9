package impute

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Stats reports what an imputation run added.
type Stats struct {
	NodesAdded     int
	MissingNodeIDs []string
}

// String renders a human-readable summary.
func (s *Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Imputation summary:\n  - Missing nodes added: %d", s.NodesAdded)
	if len(s.MissingNodeIDs) > 0 {
		b.WriteString("\n  - Added node IDs:")
		for _, id := range s.MissingNodeIDs {
			fmt.Fprintf(&b, "\n    * %s", id)
		}
	}
	return b.String()
}

// File imputes missing connecting nodes in a YAML lineage file. The
// document round-trips through the yaml.v3 node tree, so comments, node
// order, and quoting survive. outputPath may equal inputPath for in-place
// modification.
func File(inputPath, outputPath string) (*Stats, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", inputPath, err)
	}

	stats, err := Document(&doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", inputPath, err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", outputPath, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", outputPath, err)
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	return stats, nil
}

// Document appends placeholder entries for every missing reference to the
// document's nodes sequence, in discovery order. A document without a
// nodes sequence is left untouched.
func Document(doc *yaml.Node) (*Stats, error) {
	stats := &Stats{MissingNodeIDs: []string{}}

	seq := nodesSequence(doc)
	if seq == nil || len(seq.Content) == 0 {
		return stats, nil
	}

	records := make([]any, 0, len(seq.Content))
	for _, item := range seq.Content {
		var rec any
		if err := item.Decode(&rec); err != nil {
			// Undecodable entries are treated like malformed records.
			records = append(records, nil)
			continue
		}
		records = append(records, rec)
	}

	for _, id := range MissingIDs(records) {
		seq.Content = append(seq.Content, placeholderYAML(id))
		stats.NodesAdded++
		stats.MissingNodeIDs = append(stats.MissingNodeIDs, id)
	}

	return stats, nil
}

// nodesSequence locates the top-level "nodes" sequence in a document tree.
func nodesSequence(doc *yaml.Node) *yaml.Node {
	root := doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Value == "nodes" && value.Kind == yaml.SequenceNode {
			return value
		}
	}
	return nil
}

// placeholderYAML builds the yaml node tree for NewPlaceholder(id).
func placeholderYAML(id string) *yaml.Node {
	scalar := func(tag, value string) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
	}

	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	pairs := []struct {
		key   string
		value *yaml.Node
	}{
		{"id", scalar("!!str", id)},
		{"label", scalar("!!str", id)},
		{"data_level", scalar("!!null", "null")},
		{"data_type", scalar("!!null", "null")},
		{"select_from", &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}},
	}
	for _, p := range pairs {
		node.Content = append(node.Content, scalar("!!str", p.key), p.value)
	}
	return node
}
