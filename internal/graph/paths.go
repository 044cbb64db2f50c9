package graph

// AllSimplePaths enumerates every path from fromID to toID with no repeated
// vertex. Each path is an ordered id sequence starting with fromID and
// ending with toID. Returns an empty list when either endpoint is absent or
// no path exists. A self-path (fromID == toID) only exists via a cycle and
// is not enumerated: simple paths revisit no vertex.
func (g *Graph) AllSimplePaths(fromID, toID string) [][]string {
	if !g.HasNode(fromID) || !g.HasNode(toID) {
		return [][]string{}
	}

	paths := [][]string{}
	onPath := map[string]bool{fromID: true}
	path := []string{fromID}

	var dfs func(v string)
	dfs = func(v string) {
		for _, next := range g.succ[v] {
			if next == toID {
				found := make([]string, len(path)+1)
				copy(found, path)
				found[len(path)] = toID
				paths = append(paths, found)
				continue
			}
			if onPath[next] {
				continue
			}
			onPath[next] = true
			path = append(path, next)
			dfs(next)
			path = path[:len(path)-1]
			onPath[next] = false
		}
	}

	if fromID != toID {
		dfs(fromID)
	}
	return paths
}
