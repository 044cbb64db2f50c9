package graph

import "github.com/leapstack-labs/leaplineage/internal/model"

// FilteredSubgraph computes the node/connection selection induced by a set
// of focus ids. The selection always starts as exactly the focus ids; each
// focus id present in the graph is then expanded upstream and/or downstream
// according to direction, bounded by maxDepth (<= 0 for unlimited).
//
// The returned slices are fresh collections over the original entity
// values: declared nodes whose id is in the selection (in input order) and
// every connection whose both endpoints are in the selection (in input
// order, multi-edges preserved). Focus ids absent from the graph are not an
// error here; they simply contribute nothing. Existence checks belong to
// the caller.
func (g *Graph) FilteredSubgraph(focusIDs []string, direction Direction, maxDepth int) ([]model.Node, []model.Connection) {
	selected := make(map[string]bool, len(focusIDs))
	for _, id := range focusIDs {
		selected[id] = true
	}

	for _, id := range focusIDs {
		if !g.HasNode(id) {
			continue
		}
		if direction == DirectionUpstream || direction == DirectionBoth {
			for _, up := range g.Upstream(id, maxDepth) {
				selected[up] = true
			}
		}
		if direction == DirectionDownstream || direction == DirectionBoth {
			for _, down := range g.Downstream(id, maxDepth) {
				selected[down] = true
			}
		}
	}

	return g.induce(selected)
}

// DirectSubgraph computes the selection restricted to depth-1 neighbors in
// both directions. It is a distinct operation rather than a depth parameter
// because "direct connections only" is a first-class filter mode; any
// caller-supplied depth is irrelevant to it.
func (g *Graph) DirectSubgraph(focusIDs []string) ([]model.Node, []model.Connection) {
	selected := make(map[string]bool, len(focusIDs))
	for _, id := range focusIDs {
		selected[id] = true
	}

	for _, id := range focusIDs {
		for _, neighbor := range g.DirectNeighbors(id) {
			selected[neighbor] = true
		}
	}

	return g.induce(selected)
}

// induce materializes the subgraph on a selected id set: declared node
// payloads in input order, plus every connection with both endpoints
// selected. An empty overlap yields two empty slices.
func (g *Graph) induce(selected map[string]bool) ([]model.Node, []model.Connection) {
	nodes := []model.Node{}
	for _, id := range g.nodeOrder {
		if selected[id] {
			nodes = append(nodes, g.payload[id])
		}
	}

	conns := []model.Connection{}
	for _, c := range g.conns {
		if selected[c.FromID] && selected[c.ToID] {
			conns = append(conns, c)
		}
	}

	return nodes, conns
}
