// Package graph provides directed graph operations for lineage analysis.
// It supports bounded and unbounded ancestor/descendant traversal, cycle
// enumeration, simple-path enumeration, and focus-driven subgraph
// extraction.
package graph

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/leaplineage/internal/model"
)

// Direction selects which way a subgraph filter traverses.
type Direction string

// Filter directions.
const (
	DirectionUpstream   Direction = "upstream"
	DirectionDownstream Direction = "downstream"
	DirectionBoth       Direction = "both"
)

// ParseDirection validates a direction string.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionUpstream, DirectionDownstream, DirectionBoth:
		return Direction(s), nil
	}
	return "", fmt.Errorf("invalid filter direction %q (expected upstream, downstream, or both)", s)
}

// Graph is a directed lineage graph built once from nodes and connections
// and queried read-only afterwards.
//
// Connection endpoints that were never declared as nodes still become
// vertices. Queries treat them like any other vertex; they simply carry no
// node payload and are dropped from subgraph node lists. This leniency is
// deliberate: half-maintained lineage documents are common, and the impute
// tooling exists to repair them.
type Graph struct {
	payload   map[string]model.Node
	nodeOrder []string
	conns     []model.Connection

	succ     map[string][]string // vertex -> unique successors, insertion order
	pred     map[string][]string // vertex -> unique predecessors, insertion order
	vertices map[string]struct{}
}

// New builds a graph from a node list and a connection list.
// Duplicate node IDs fail construction; multiple connections between the
// same ordered pair are kept as payloads but traversed as a single edge.
func New(nodes []model.Node, connections []model.Connection) (*Graph, error) {
	g := &Graph{
		payload:  make(map[string]model.Node, len(nodes)),
		conns:    make([]model.Connection, 0, len(connections)),
		succ:     make(map[string][]string),
		pred:     make(map[string][]string),
		vertices: make(map[string]struct{}, len(nodes)),
	}

	for _, n := range nodes {
		if _, exists := g.payload[n.ID]; exists {
			return nil, fmt.Errorf("duplicate node id %q", n.ID)
		}
		g.payload[n.ID] = n
		g.nodeOrder = append(g.nodeOrder, n.ID)
		g.vertices[n.ID] = struct{}{}
	}

	for _, c := range connections {
		g.conns = append(g.conns, c)
		g.vertices[c.FromID] = struct{}{}
		g.vertices[c.ToID] = struct{}{}
		if !contains(g.succ[c.FromID], c.ToID) {
			g.succ[c.FromID] = append(g.succ[c.FromID], c.ToID)
		}
		if !contains(g.pred[c.ToID], c.FromID) {
			g.pred[c.ToID] = append(g.pred[c.ToID], c.FromID)
		}
	}

	return g, nil
}

// HasNode reports whether id is a vertex (declared node or edge endpoint).
func (g *Graph) HasNode(id string) bool {
	_, ok := g.vertices[id]
	return ok
}

// Node returns the payload for a declared node id.
func (g *Graph) Node(id string) (model.Node, bool) {
	n, ok := g.payload[id]
	return n, ok
}

// NodeCount returns the number of vertices, dangling endpoints included.
func (g *Graph) NodeCount() int {
	return len(g.vertices)
}

// EdgeCount returns the number of distinct directed edges.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, next := range g.succ {
		count += len(next)
	}
	return count
}

// Upstream returns every id reachable by following edges backward from id,
// excluding id itself, sorted. maxDepth <= 0 means unlimited; otherwise the
// traversal is breadth-first and stops after maxDepth hops. An absent id
// yields an empty result.
func (g *Graph) Upstream(id string, maxDepth int) []string {
	return g.reachable(id, maxDepth, g.pred)
}

// Downstream returns every id reachable by following edges forward from id,
// excluding id itself, sorted. Depth semantics match Upstream.
func (g *Graph) Downstream(id string, maxDepth int) []string {
	return g.reachable(id, maxDepth, g.succ)
}

// DirectNeighbors returns the union of immediate predecessors and
// successors of id, sorted. An absent id yields an empty result.
func (g *Graph) DirectNeighbors(id string) []string {
	if !g.HasNode(id) {
		return []string{}
	}
	seen := make(map[string]bool)
	for _, p := range g.pred[id] {
		seen[p] = true
	}
	for _, s := range g.succ[id] {
		seen[s] = true
	}
	return sortedKeys(seen)
}

// reachable runs a BFS over the given adjacency index. BFS keeps the depth
// bound meaningful: the first visit to a vertex is via a shortest hop path,
// so a vertex within the bound is never missed via a longer alternate route.
func (g *Graph) reachable(id string, maxDepth int, adjacency map[string][]string) []string {
	if !g.HasNode(id) {
		return []string{}
	}

	found := make(map[string]bool)
	visited := map[string]bool{id: true}

	type item struct {
		id    string
		depth int
	}
	queue := []item{{id: id, depth: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if maxDepth > 0 && cur.depth >= maxDepth {
			continue
		}
		for _, next := range adjacency[cur.id] {
			if !visited[next] {
				visited[next] = true
				found[next] = true
				queue = append(queue, item{id: next, depth: cur.depth + 1})
			}
		}
	}

	return sortedKeys(found)
}

// sortedVertices returns all vertex ids in sorted order.
func (g *Graph) sortedVertices() []string {
	ids := make([]string, 0, len(g.vertices))
	for id := range g.vertices {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// sortedKeys returns the keys of a membership map in sorted order.
func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// contains checks if a slice contains a string.
func contains(slice []string, str string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
