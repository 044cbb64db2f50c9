package mermaid

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaplineage/internal/model"
)

// Legend renders a diagram showing every node shape, data level color, and
// connection style. Subgraphs stack vertically; content inside each flows
// top to bottom.
func Legend() string {
	var lines []string

	lines = append(lines, "graph LR", "")

	lines = append(lines, "subgraph shapes [Node Shapes by Data Type]", "direction TB")
	for i, dataType := range model.DataTypes() {
		s, ok := nodeShapes[dataType]
		if !ok {
			s = defaultShape
		}
		label := titleCase(strings.ReplaceAll(string(dataType), "-", " "))
		lines = append(lines, fmt.Sprintf("shape_%d%s%q%s", i, s.Prefix, label, s.Suffix))
	}
	lines = append(lines, "end", "")

	levels := model.DataLevels()
	lines = append(lines, "subgraph levels [Data Levels and Colors]", "direction TB")
	for i, level := range levels {
		label := titleCase(string(level))
		lines = append(lines, fmt.Sprintf("level_%d[%q]", i, label))
	}
	lines = append(lines, "end", "")

	lines = append(lines, "subgraph connections [Connection Types]", "direction TB")
	for i, connType := range model.ConnectionTypes() {
		arrow, ok := connectionArrows[connType]
		if !ok {
			arrow = defaultArrow
		}
		label := titleCase(strings.ReplaceAll(string(connType), "_", " "))
		lines = append(lines, fmt.Sprintf("conn_from_%d[%q]", i, label))
		lines = append(lines, fmt.Sprintf("conn_to_%d[\" \"]", i))
		lines = append(lines, fmt.Sprintf("conn_from_%d %s conn_to_%d", i, arrow, i))
	}
	lines = append(lines, "end", "")

	for _, level := range levels {
		lines = append(lines, fmt.Sprintf("classDef %sStyle %s", level, levelStyles[level]))
	}
	lines = append(lines, "")

	for i, level := range levels {
		lines = append(lines, fmt.Sprintf("class level_%d %sStyle", i, level))
	}

	return strings.Join(lines, "\n")
}

// titleCase uppercases the first letter of every space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
