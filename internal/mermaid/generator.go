// Package mermaid renders lineage entities as Mermaid flowchart text.
package mermaid

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/leaplineage/internal/model"
)

// Direction is the diagram flow direction.
type Direction string

// Supported flow directions.
const (
	LeftRight Direction = "LR"
	RightLeft Direction = "RL"
	TopBottom Direction = "TB"
	BottomTop Direction = "BT"
)

// ParseDirection validates a direction token, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToUpper(s)) {
	case LeftRight, RightLeft, TopBottom, BottomTop:
		return Direction(strings.ToUpper(s)), nil
	}
	return "", fmt.Errorf("invalid diagram direction %q (expected LR, RL, TB, or BT)", s)
}

// Generator renders a node/connection selection as a Mermaid flowchart.
// Output is deterministic: nodes sort by id and connections by endpoint
// pair regardless of input order.
type Generator struct {
	nodes     []model.Node
	conns     []model.Connection
	direction Direction
	overrides map[model.DataLevel]string
}

// NewGenerator creates a generator for the given selection.
func NewGenerator(nodes []model.Node, conns []model.Connection, direction Direction) *Generator {
	return &Generator{
		nodes:     nodes,
		conns:     conns,
		direction: direction,
	}
}

// SetLevelStyle overrides the classDef style for a data level.
func (g *Generator) SetLevelStyle(level model.DataLevel, style string) {
	if g.overrides == nil {
		g.overrides = make(map[model.DataLevel]string)
	}
	g.overrides[level] = style
}

// levelStyle resolves the classDef style for a level: override first, then
// package default, then the unknown style.
func (g *Generator) levelStyle(level model.DataLevel) string {
	if style, ok := g.overrides[level]; ok {
		return style
	}
	if style, ok := levelStyles[level]; ok {
		return style
	}
	return levelStyles[model.LevelUnknown]
}

// sanitizeID rewrites a node id into an identifier safe for Mermaid.
func sanitizeID(id string) string {
	r := strings.NewReplacer("-", "_", ".", "_", " ", "_")
	return r.Replace(id)
}

// nodeDefinition renders a single node with its shape.
func nodeDefinition(n model.Node) string {
	s, ok := nodeShapes[n.DataType]
	if !ok {
		s = defaultShape
	}
	return fmt.Sprintf("%s%s%q%s", sanitizeID(n.ID), s.Prefix, n.Label, s.Suffix)
}

// connectionDefinition renders a single edge with its arrow style.
func connectionDefinition(c model.Connection) string {
	arrow, ok := connectionArrows[c.Type]
	if !ok {
		arrow = defaultArrow
	}
	return fmt.Sprintf("%s %s %s", sanitizeID(c.FromID), arrow, sanitizeID(c.ToID))
}

// Generate renders the complete diagram.
func (g *Generator) Generate() string {
	var lines []string

	lines = append(lines, fmt.Sprintf("graph %s", g.direction))

	nodes := make([]model.Node, len(g.nodes))
	copy(nodes, g.nodes)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	for _, n := range nodes {
		lines = append(lines, nodeDefinition(n))
	}
	lines = append(lines, "")

	conns := make([]model.Connection, len(g.conns))
	copy(conns, g.conns)
	sort.SliceStable(conns, func(i, j int) bool {
		if conns[i].FromID != conns[j].FromID {
			return conns[i].FromID < conns[j].FromID
		}
		return conns[i].ToID < conns[j].ToID
	})
	for _, c := range conns {
		lines = append(lines, connectionDefinition(c))
	}
	lines = append(lines, "")

	classDefs := g.classDefinitions(nodes)
	lines = append(lines, classDefs...)
	if len(classDefs) > 0 {
		lines = append(lines, "")
	}

	lines = append(lines, g.classAssignments(nodes)...)

	return strings.Join(lines, "\n")
}

// classDefinitions emits one classDef per data level present in the
// selection, sorted by level name.
func (g *Generator) classDefinitions(nodes []model.Node) []string {
	present := make(map[model.DataLevel]bool)
	for _, n := range nodes {
		present[n.DataLevel] = true
	}

	levels := make([]string, 0, len(present))
	for level := range present {
		levels = append(levels, string(level))
	}
	sort.Strings(levels)

	defs := make([]string, 0, len(levels))
	for _, level := range levels {
		defs = append(defs, fmt.Sprintf("classDef %sStyle %s", level, g.levelStyle(model.DataLevel(level))))
	}
	return defs
}

// classAssignments groups node ids by data level, sorted by level name.
func (g *Generator) classAssignments(nodes []model.Node) []string {
	groups := make(map[model.DataLevel][]string)
	for _, n := range nodes {
		groups[n.DataLevel] = append(groups[n.DataLevel], sanitizeID(n.ID))
	}

	levels := make([]string, 0, len(groups))
	for level := range groups {
		levels = append(levels, string(level))
	}
	sort.Strings(levels)

	assignments := make([]string, 0, len(levels))
	for _, level := range levels {
		ids := groups[model.DataLevel(level)]
		assignments = append(assignments, fmt.Sprintf("class %s %sStyle", strings.Join(ids, ","), level))
	}
	return assignments
}
