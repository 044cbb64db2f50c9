package output

// InspectOutput is the JSON payload for the inspect command.
type InspectOutput struct {
	Root       string       `json:"root"`
	Upstream   []string     `json:"upstream,omitempty"`
	Downstream []string     `json:"downstream,omitempty"`
	Stats      InspectStats `json:"stats"`
}

// InspectStats summarizes an inspect result.
type InspectStats struct {
	UpstreamCount   int `json:"upstream_count"`
	DownstreamCount int `json:"downstream_count"`
}

// CheckOutput is the JSON payload for the check command.
type CheckOutput struct {
	Acyclic        bool       `json:"acyclic"`
	Cycles         [][]string `json:"cycles"`
	MissingNodeIDs []string   `json:"missing_node_ids"`
	NodeCount      int        `json:"node_count"`
	EdgeCount      int        `json:"edge_count"`
}

// PathsOutput is the JSON payload for the paths command.
type PathsOutput struct {
	From  string     `json:"from"`
	To    string     `json:"to"`
	Paths [][]string `json:"paths"`
}

// ListOutput is the JSON payload for the list command.
type ListOutput struct {
	Nodes   []NodeInfo  `json:"nodes"`
	Summary ListSummary `json:"summary"`
}

// NodeInfo describes one node in list output.
type NodeInfo struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	DataType   string   `json:"data_type"`
	DataLevel  string   `json:"data_level"`
	Upstream   []string `json:"upstream"`
	Downstream []string `json:"downstream"`
}

// ListSummary aggregates list output counts.
type ListSummary struct {
	TotalNodes int            `json:"total_nodes"`
	TotalEdges int            `json:"total_edges"`
	ByLevel    map[string]int `json:"by_level"`
}
