package mermaid

import "github.com/leapstack-labs/leaplineage/internal/model"

// shape is the bracket pair that selects a Mermaid node shape.
type shape struct {
	Prefix string
	Suffix string
}

// defaultShape is used for unknown data types.
var defaultShape = shape{Prefix: "[", Suffix: "]"}

// nodeShapes maps data types to Mermaid shapes.
var nodeShapes = map[model.DataType]shape{
	model.TypeTable:                {Prefix: "[", Suffix: "]"},    // rectangle
	model.TypeView:                 {Prefix: "([", Suffix: "])"},  // stadium
	model.TypeExternalSource:       {Prefix: "[(", Suffix: ")]"},  // cylinder
	model.TypeExternalResourceLink: {Prefix: "{{", Suffix: "}}"},  // hexagon
	model.TypeManualSource:         {Prefix: "[/", Suffix: "\\]"}, // trapezoid
	model.TypeUnknown:              defaultShape,
}

// levelStyles maps data levels to classDef styles.
var levelStyles = map[model.DataLevel]string{
	model.LevelSource:    "fill:#e1f5ff,stroke:#01579b,stroke-width:2px",
	model.LevelStaging:   "fill:#fff3e0,stroke:#e65100,stroke-width:2px",
	model.LevelBase:      "fill:#f3e5f5,stroke:#4a148c,stroke-width:2px",
	model.LevelDimension: "fill:#e8f5e9,stroke:#1b5e20,stroke-width:3px",
	model.LevelFact:      "fill:#fce4ec,stroke:#880e4f,stroke-width:3px",
	model.LevelExport:    "fill:#fff9c4,stroke:#f57f17,stroke-width:2px",
	model.LevelUnknown:   "fill:#ffffff,stroke:#000000,stroke-width:1px",
}

// connectionArrows maps connection types to Mermaid edge syntax.
// connected_to renders without arrowheads even though the underlying edge
// is directed.
var connectionArrows = map[model.ConnectionType]string{
	model.ConnSelectFrom:  "-->",
	model.ConnConnectedTo: "---",
}

// defaultArrow is used for unknown connection types.
const defaultArrow = "-->"
