package graph

import "sort"

// IsAcyclic reports whether the graph contains no directed cycle.
func (g *Graph) IsAcyclic() bool {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	var dfs func(id string) bool
	dfs = func(id string) bool {
		visited[id] = true
		recStack[id] = true
		for _, next := range g.succ[id] {
			if !visited[next] {
				if dfs(next) {
					return true
				}
			} else if recStack[next] {
				return true
			}
		}
		recStack[id] = false
		return false
	}

	for _, id := range g.sortedVertices() {
		if !visited[id] {
			if dfs(id) {
				return false
			}
		}
	}
	return true
}

// FindCycles enumerates all elementary cycles using Johnson's algorithm.
// Each cycle is the ordered walk of vertex ids, starting at the cycle's
// smallest id and without repeating it at the end. Returns an empty list
// for acyclic graphs.
//
// Worst-case cost is exponential in the number of overlapping cycles.
// Lineage graphs are human-curated and small, so no iteration cap is
// applied.
func (g *Graph) FindCycles() [][]string {
	order := g.sortedVertices()
	index := make(map[string]int, len(order))
	for i, id := range order {
		index[id] = i
	}

	cycles := [][]string{}

	for start, s := range order {
		// Only consider vertices at or after the start vertex so each
		// elementary cycle is found exactly once, rooted at its smallest id.
		blocked := make(map[string]bool)
		blockedBy := make(map[string]map[string]bool)
		var stack []string

		var unblock func(v string)
		unblock = func(v string) {
			blocked[v] = false
			for w := range blockedBy[v] {
				delete(blockedBy[v], w)
				if blocked[w] {
					unblock(w)
				}
			}
		}

		var circuit func(v string) bool
		circuit = func(v string) bool {
			found := false
			stack = append(stack, v)
			blocked[v] = true

			for _, w := range g.successorsFrom(v, index, start) {
				if w == s {
					cycle := make([]string, len(stack))
					copy(cycle, stack)
					cycles = append(cycles, cycle)
					found = true
				} else if !blocked[w] {
					if circuit(w) {
						found = true
					}
				}
			}

			if found {
				unblock(v)
			} else {
				for _, w := range g.successorsFrom(v, index, start) {
					if blockedBy[w] == nil {
						blockedBy[w] = make(map[string]bool)
					}
					blockedBy[w][v] = true
				}
			}

			stack = stack[:len(stack)-1]
			return found
		}

		circuit(s)
	}

	return cycles
}

// successorsFrom returns the successors of v whose index is >= min,
// in sorted order for deterministic enumeration.
func (g *Graph) successorsFrom(v string, index map[string]int, min int) []string {
	var out []string
	for _, w := range g.succ[v] {
		if index[w] >= min {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}
