// Package loader reads declarative lineage documents (JSON or YAML) and
// normalizes them into entity lists.
//
// Two document shapes are accepted: the explicit form with separate nodes
// and connections arrays, and the inline form where each node carries its
// own select_from / connected_to references. Both normalize to the same
// Node/Connection lists here; downstream packages never branch on the
// source shape.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leaplineage/internal/model"
	"gopkg.in/yaml.v3"
)

// FormatError reports an unsupported input file extension.
type FormatError struct {
	Path string
	Ext  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q for %s (supported: .json, .yaml, .yml)", e.Ext, e.Path)
}

// document is the raw decoded shape before normalization. Connections is a
// pointer so an explicitly empty connections array still selects the
// explicit form.
type document struct {
	Nodes       []rawNode        `yaml:"nodes" json:"nodes"`
	Connections *[]rawConnection `yaml:"connections" json:"connections"`
}

// rawNode mirrors a node record as written in the document.
type rawNode struct {
	ID          string  `yaml:"id" json:"id"`
	Label       string  `yaml:"label" json:"label"`
	DataType    string  `yaml:"data_type" json:"data_type"`
	DataLevel   string  `yaml:"data_level" json:"data_level"`
	SelectFrom  refList `yaml:"select_from" json:"select_from"`
	ConnectedTo refList `yaml:"connected_to" json:"connected_to"`
}

// rawConnection mirrors a connection record as written in the document.
type rawConnection struct {
	FromID string `yaml:"from_id" json:"from_id"`
	ToID   string `yaml:"to_id" json:"to_id"`
	Type   string `yaml:"connection_type" json:"connection_type"`
}

// LoadFile loads and normalizes a lineage document from disk, selecting
// the decoder by file extension.
func LoadFile(path string) ([]model.Node, []model.Connection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, nil, &FormatError{Path: path, Ext: ext}
	}
}

// ParseYAML decodes a YAML lineage document and normalizes it.
func ParseYAML(data []byte) ([]model.Node, []model.Connection, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return normalize(&doc)
}

// ParseJSON decodes a JSON lineage document and normalizes it.
func ParseJSON(data []byte) ([]model.Node, []model.Connection, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return normalize(&doc)
}

// normalize converts the raw document to validated entity lists.
// Validation is fail-fast: the first bad record aborts the whole load.
func normalize(doc *document) ([]model.Node, []model.Connection, error) {
	if doc.Nodes == nil {
		return nil, nil, fmt.Errorf("missing required 'nodes' key in lineage data")
	}

	nodes := make([]model.Node, 0, len(doc.Nodes))
	seen := make(map[string]bool, len(doc.Nodes))
	for _, raw := range doc.Nodes {
		n, err := model.NewNode(raw.ID, raw.Label, model.DataType(raw.DataType),
			model.DataLevel(raw.DataLevel), raw.SelectFrom.ids)
		if err != nil {
			return nil, nil, err
		}
		if seen[n.ID] {
			return nil, nil, fmt.Errorf("duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
		nodes = append(nodes, n)
	}

	var conns []model.Connection
	var err error
	if doc.Connections != nil {
		// Explicit form: the connections array is authoritative.
		conns, err = parseConnections(*doc.Connections)
	} else {
		// Inline form: derive connections from node reference fields.
		conns, err = connectionsFromNodes(doc.Nodes)
	}
	if err != nil {
		return nil, nil, err
	}

	return nodes, conns, nil
}

func parseConnections(raws []rawConnection) ([]model.Connection, error) {
	conns := make([]model.Connection, 0, len(raws))
	for _, raw := range raws {
		c, err := model.NewConnection(raw.FromID, raw.ToID, model.ConnectionType(raw.Type))
		if err != nil {
			return nil, err
		}
		conns = append(conns, c)
	}
	return conns, nil
}

// connectionsFromNodes extracts connections from inline reference fields.
// select_from references point at the node (source feeds it); connected_to
// references point away from it. A connected_to edge is rendered without
// an arrowhead, but structurally it is still directed from the declaring
// node.
func connectionsFromNodes(raws []rawNode) ([]model.Connection, error) {
	conns := []model.Connection{}
	for _, raw := range raws {
		for _, sourceID := range raw.SelectFrom.ids {
			c, err := model.NewConnection(sourceID, raw.ID, model.ConnSelectFrom)
			if err != nil {
				return nil, fmt.Errorf("node %q: %w", raw.ID, err)
			}
			conns = append(conns, c)
		}
		for _, targetID := range raw.ConnectedTo.ids {
			c, err := model.NewConnection(raw.ID, targetID, model.ConnConnectedTo)
			if err != nil {
				return nil, fmt.Errorf("node %q: %w", raw.ID, err)
			}
			conns = append(conns, c)
		}
	}
	return conns, nil
}
