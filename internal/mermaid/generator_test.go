package mermaid

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/leaplineage/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNodes() []model.Node {
	return []model.Node{
		{ID: "stg.orders", Label: "Staged Orders", DataType: model.TypeTable, DataLevel: model.LevelStaging},
		{ID: "raw.orders", Label: "Raw Orders", DataType: model.TypeExternalSource, DataLevel: model.LevelSource},
		{ID: "dim.customer", Label: "Customer", DataType: model.TypeView, DataLevel: model.LevelDimension},
	}
}

func testConns() []model.Connection {
	return []model.Connection{
		{FromID: "stg.orders", ToID: "dim.customer", Type: model.ConnSelectFrom},
		{FromID: "raw.orders", ToID: "stg.orders", Type: model.ConnSelectFrom},
	}
}

func TestGenerate_Header(t *testing.T) {
	out := NewGenerator(testNodes(), testConns(), TopBottom).Generate()
	assert.True(t, strings.HasPrefix(out, "graph TB\n"), "output should start with graph header")
}

func TestGenerate_NodeShapesAndSanitizedIDs(t *testing.T) {
	out := NewGenerator(testNodes(), testConns(), LeftRight).Generate()

	assert.Contains(t, out, `stg_orders["Staged Orders"]`)
	assert.Contains(t, out, `raw_orders[("Raw Orders")]`)
	assert.Contains(t, out, `dim_customer(["Customer"])`)
}

func TestGenerate_Connections(t *testing.T) {
	out := NewGenerator(testNodes(), testConns(), LeftRight).Generate()

	assert.Contains(t, out, "raw_orders --> stg_orders")
	assert.Contains(t, out, "stg_orders --> dim_customer")
}

func TestGenerate_ConnectedToHasNoArrowhead(t *testing.T) {
	nodes := []model.Node{
		{ID: "a", Label: "A", DataType: model.TypeTable, DataLevel: model.LevelUnknown},
		{ID: "b", Label: "B", DataType: model.TypeTable, DataLevel: model.LevelUnknown},
	}
	conns := []model.Connection{{FromID: "a", ToID: "b", Type: model.ConnConnectedTo}}

	out := NewGenerator(nodes, conns, LeftRight).Generate()
	assert.Contains(t, out, "a --- b")
}

func TestGenerate_Deterministic(t *testing.T) {
	forward := NewGenerator(testNodes(), testConns(), LeftRight).Generate()

	reversedNodes := []model.Node{testNodes()[2], testNodes()[0], testNodes()[1]}
	reversedConns := []model.Connection{testConns()[1], testConns()[0]}
	backward := NewGenerator(reversedNodes, reversedConns, LeftRight).Generate()

	assert.Equal(t, forward, backward, "output must not depend on input order")
}

func TestGenerate_ClassDefsOnlyForPresentLevels(t *testing.T) {
	out := NewGenerator(testNodes(), nil, LeftRight).Generate()

	assert.Contains(t, out, "classDef stagingStyle")
	assert.Contains(t, out, "classDef sourceStyle")
	assert.Contains(t, out, "classDef dimensionStyle")
	assert.NotContains(t, out, "classDef factStyle")
}

func TestGenerate_ClassAssignmentsGroupByLevel(t *testing.T) {
	nodes := []model.Node{
		{ID: "a", Label: "A", DataType: model.TypeTable, DataLevel: model.LevelFact},
		{ID: "b", Label: "B", DataType: model.TypeTable, DataLevel: model.LevelFact},
	}

	out := NewGenerator(nodes, nil, LeftRight).Generate()
	assert.Contains(t, out, "class a,b factStyle")
}

func TestGenerate_StyleOverride(t *testing.T) {
	g := NewGenerator(testNodes(), nil, LeftRight)
	g.SetLevelStyle(model.LevelStaging, "fill:#123456")

	out := g.Generate()
	assert.Contains(t, out, "classDef stagingStyle fill:#123456")
	// Other levels keep their defaults.
	assert.Contains(t, out, "classDef sourceStyle "+levelStyles[model.LevelSource])
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("lr")
	require.NoError(t, err)
	assert.Equal(t, LeftRight, d)

	_, err = ParseDirection("diagonal")
	assert.Error(t, err)
}

func TestLegend(t *testing.T) {
	out := Legend()

	assert.True(t, strings.HasPrefix(out, "graph LR"))
	assert.Contains(t, out, "subgraph shapes [Node Shapes by Data Type]")
	assert.Contains(t, out, "subgraph levels [Data Levels and Colors]")
	assert.Contains(t, out, "subgraph connections [Connection Types]")

	// Every data level gets a classDef and an assignment.
	for _, level := range model.DataLevels() {
		assert.Contains(t, out, "classDef "+string(level)+"Style")
	}
	assert.Contains(t, out, `"External Source"`)
	assert.Contains(t, out, "conn_from_0 --> conn_to_0")
	assert.Contains(t, out, "conn_from_1 --- conn_to_1")
}
