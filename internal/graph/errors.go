package graph

import "fmt"

// UnknownNodeError reports a query for a node id that is not in the graph.
// Graph queries themselves return empty results for absent ids; this error
// is for callers that treat an absent id as user input worth rejecting.
type UnknownNodeError struct {
	ID string
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("node not found: %s", e.ID)
}
