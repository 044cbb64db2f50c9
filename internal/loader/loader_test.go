package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leaplineage/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYAML_ExplicitForm(t *testing.T) {
	data := []byte(`
nodes:
  - id: raw.orders
    label: Raw Orders
    data_type: external-source
    data_level: source
  - id: stg.orders
    label: Staged Orders
    data_type: table
    data_level: staging
connections:
  - from_id: raw.orders
    to_id: stg.orders
    connection_type: select_from
`)

	nodes, conns, err := ParseYAML(data)
	require.NoError(t, err)

	require.Len(t, nodes, 2)
	assert.Equal(t, "raw.orders", nodes[0].ID)
	assert.Equal(t, model.TypeExternalSource, nodes[0].DataType)
	assert.Equal(t, model.LevelSource, nodes[0].DataLevel)

	require.Len(t, conns, 1)
	assert.Equal(t, "raw.orders", conns[0].FromID)
	assert.Equal(t, "stg.orders", conns[0].ToID)
	assert.Equal(t, model.ConnSelectFrom, conns[0].Type)
}

func TestParseYAML_InlineForm(t *testing.T) {
	data := []byte(`
nodes:
  - id: stg.orders
    label: Staged Orders
    data_type: table
    data_level: staging
    select_from:
      - raw.orders
      - raw.customers
  - id: docs.orders
    label: Orders Doc
    data_type: external-resourcelink
    data_level: export
    connected_to: stg.orders
`)

	nodes, conns, err := ParseYAML(data)
	require.NoError(t, err)

	require.Len(t, nodes, 2)
	assert.Equal(t, []string{"raw.orders", "raw.customers"}, nodes[0].SelectFrom)

	require.Len(t, conns, 3)

	// select_from points at the declaring node.
	assert.Equal(t, model.Connection{FromID: "raw.orders", ToID: "stg.orders", Type: model.ConnSelectFrom}, conns[0])
	assert.Equal(t, model.Connection{FromID: "raw.customers", ToID: "stg.orders", Type: model.ConnSelectFrom}, conns[1])

	// connected_to points away from the declaring node.
	assert.Equal(t, model.Connection{FromID: "docs.orders", ToID: "stg.orders", Type: model.ConnConnectedTo}, conns[2])
}

func TestParseYAML_MappingReferences(t *testing.T) {
	data := []byte(`
nodes:
  - id: stg.orders
    label: Staged Orders
    select_from:
      - id: raw.orders
`)

	nodes, conns, err := ParseYAML(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"raw.orders"}, nodes[0].SelectFrom)
	require.Len(t, conns, 1)
	assert.Equal(t, "raw.orders", conns[0].FromID)
}

func TestParseYAML_EmptyConnectionsIsExplicitForm(t *testing.T) {
	// An explicitly empty connections array must not fall back to inline
	// extraction.
	data := []byte(`
nodes:
  - id: stg.orders
    label: Staged Orders
    select_from: [raw.orders]
connections: []
`)

	_, conns, err := ParseYAML(data)
	require.NoError(t, err)
	assert.Empty(t, conns)
}

func TestParseYAML_MissingNodesKey(t *testing.T) {
	_, _, err := ParseYAML([]byte("connections: []\n"))
	assert.ErrorContains(t, err, "nodes")
}

func TestParseYAML_DefaultsNormalized(t *testing.T) {
	data := []byte(`
nodes:
  - id: mystery
    label: Mystery
    data_type: null
    data_level:
`)

	nodes, _, err := ParseYAML(data)
	require.NoError(t, err)
	assert.Equal(t, model.TypeUnknown, nodes[0].DataType)
	assert.Equal(t, model.LevelUnknown, nodes[0].DataLevel)
}

func TestParseYAML_ValidationFailsFast(t *testing.T) {
	data := []byte(`
nodes:
  - id: ok
    label: OK
  - id: broken
    label: ""
`)

	_, _, err := ParseYAML(data)
	assert.ErrorContains(t, err, "label")
}

func TestParseYAML_DuplicateID(t *testing.T) {
	data := []byte(`
nodes:
  - id: dup
    label: First
  - id: dup
    label: Second
`)

	_, _, err := ParseYAML(data)
	assert.ErrorContains(t, err, "duplicate node id")
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{
  "nodes": [
    {"id": "a", "label": "A", "select_from": ["b", {"id": "c"}]},
    {"id": "b", "label": "B"}
  ]
}`)

	nodes, conns, err := ParseJSON(data)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, []string{"b", "c"}, nodes[0].SelectFrom)
	require.Len(t, conns, 2)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "lineage.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("nodes:\n  - id: a\n    label: A\n"), 0644))

	nodes, _, err := LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Len(t, nodes, 1)
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lineage.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	_, _, err := LoadFile(path)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, ".toml", formatErr.Ext)
}
