package engine

// Graph tracks which variables each variable's expression reads. Edges
// point from a dependent to its sources; cycle checks walk sources
// transitively before an assignment commits.
type Graph struct {
	sources map[string]map[string]struct{}
}

// NewGraph builds an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{sources: make(map[string]map[string]struct{})}
}

// SetSources replaces the source set of a dependent.
func (g *Graph) SetSources(dependent string, sources []string) {
	set := make(map[string]struct{}, len(sources))
	for _, s := range sources {
		set[s] = struct{}{}
	}

	g.sources[dependent] = set
}

// Remove drops a variable's outgoing edges.
func (g *Graph) Remove(name string) {
	delete(g.sources, name)
}

// DependsOn reports whether name reads target, directly or transitively.
func (g *Graph) DependsOn(name, target string) bool {
	return g.dependsOn(name, target, map[string]struct{}{})
}

func (g *Graph) dependsOn(name, target string, visited map[string]struct{}) bool {
	if _, ok := visited[name]; ok {
		return false
	}

	visited[name] = struct{}{}

	for source := range g.sources[name] {
		if source == target {
			return true
		}

		if g.dependsOn(source, target, visited) {
			return true
		}
	}

	return false
}

// WouldCycle reports whether assigning dependent with the given sources
// would close a loop: the dependent reading itself, or reading anything
// that already (transitively) reads the dependent.
func (g *Graph) WouldCycle(dependent string, sources []string) bool {
	for _, s := range sources {
		if s == dependent {
			return true
		}

		if g.DependsOn(s, dependent) {
			return true
		}
	}

	return false
}
