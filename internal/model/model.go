// Package model defines the entities that describe warehouse lineage:
// nodes (tables, views, external sources) and the directed connections
// between them.
package model

import "fmt"

// DataType classifies a node and selects its diagram shape.
type DataType string

// Known data types.
const (
	TypeTable                DataType = "table"
	TypeView                 DataType = "view"
	TypeExternalSource       DataType = "external-source"
	TypeExternalResourceLink DataType = "external-resourcelink"
	TypeManualSource         DataType = "manual-source"
	TypeUnknown              DataType = "unknown"
)

// DataLevel places a node in the data architecture and selects its color.
type DataLevel string

// Known data levels.
const (
	LevelSource    DataLevel = "source"
	LevelStaging   DataLevel = "staging"
	LevelBase      DataLevel = "base"
	LevelDimension DataLevel = "dimension"
	LevelFact      DataLevel = "fact"
	LevelExport    DataLevel = "export"
	LevelUnknown   DataLevel = "unknown"
)

// ConnectionType classifies an edge and selects its arrow style.
type ConnectionType string

// Known connection types.
const (
	ConnSelectFrom  ConnectionType = "select_from"
	ConnConnectedTo ConnectionType = "connected_to"
)

// DefaultConnectionType is applied when a connection record carries no type.
const DefaultConnectionType = ConnSelectFrom

// DataTypes lists all known data types in display order.
func DataTypes() []DataType {
	return []DataType{
		TypeTable,
		TypeView,
		TypeExternalSource,
		TypeExternalResourceLink,
		TypeManualSource,
		TypeUnknown,
	}
}

// DataLevels lists all known data levels in display order.
func DataLevels() []DataLevel {
	return []DataLevel{
		LevelSource,
		LevelStaging,
		LevelBase,
		LevelDimension,
		LevelFact,
		LevelExport,
		LevelUnknown,
	}
}

// ConnectionTypes lists all known connection types in display order.
func ConnectionTypes() []ConnectionType {
	return []ConnectionType{ConnSelectFrom, ConnConnectedTo}
}

// Node is a data object in the warehouse lineage. Nodes are constructed
// once per invocation and never mutated afterwards.
type Node struct {
	// ID is the unique identifier (typically schema.table)
	ID string
	// Label is the display name shown in diagrams
	Label string
	// DataType determines the node shape
	DataType DataType
	// DataLevel determines the node color
	DataLevel DataLevel
	// SelectFrom lists the IDs this node selects from, in declaration order
	SelectFrom []string
}

// NewNode validates and normalizes a node. Empty DataType or DataLevel
// normalize to "unknown"; a nil SelectFrom becomes an empty list.
func NewNode(id, label string, dataType DataType, dataLevel DataLevel, selectFrom []string) (Node, error) {
	if id == "" {
		return Node{}, fmt.Errorf("node id must be a non-empty string")
	}
	if label == "" {
		return Node{}, fmt.Errorf("node %q: label must be a non-empty string", id)
	}
	if dataType == "" {
		dataType = TypeUnknown
	}
	if dataLevel == "" {
		dataLevel = LevelUnknown
	}
	if selectFrom == nil {
		selectFrom = []string{}
	}
	return Node{
		ID:         id,
		Label:      label,
		DataType:   dataType,
		DataLevel:  dataLevel,
		SelectFrom: selectFrom,
	}, nil
}

// Connection is a directed edge between two node IDs. The endpoints need
// not exist as declared nodes; dangling references are tolerated and
// surfaced by the impute tooling instead.
type Connection struct {
	// FromID is the source node identifier
	FromID string
	// ToID is the target node identifier
	ToID string
	// Type determines the arrow style
	Type ConnectionType
}

// NewConnection validates a connection. An empty type defaults to
// DefaultConnectionType.
func NewConnection(fromID, toID string, connType ConnectionType) (Connection, error) {
	if fromID == "" {
		return Connection{}, fmt.Errorf("connection from_id must be a non-empty string")
	}
	if toID == "" {
		return Connection{}, fmt.Errorf("connection to_id must be a non-empty string")
	}
	if connType == "" {
		connType = DefaultConnectionType
	}
	return Connection{FromID: fromID, ToID: toID, Type: connType}, nil
}
