package concepts

import "sort"

// Node is a concept placed in the hierarchy.
type Node struct {
	Concept  string   `json:"concept"`
	Level    int      `json:"level"`
	Children []string `json:"children"`
}

// Graph is the adjacency view of a relationship set: each concept maps to
// its distinct targets in first-seen order.
type Graph struct {
	edges map[string][]string
}

// NewGraph builds the adjacency view, collapsing repeated edges regardless
// of multiplicity or type.
func NewGraph(rels []Relationship) *Graph {
	g := &Graph{edges: make(map[string][]string)}
	seen := make(map[[2]string]struct{})
	for _, r := range rels {
		key := [2]string{r.Source, r.Target}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		g.edges[r.Source] = append(g.edges[r.Source], r.Target)
	}
	return g
}

// Successors returns the direct targets of concept.
func (g *Graph) Successors(concept string) []string {
	return g.edges[concept]
}

// Level returns the depth of concept: 0 for sinks, otherwise one more than
// the deepest successor.
//
// Cycles are broken with a single visited set shared by the whole top-level
// call, sibling branches included. A concept reached again (by a cycle or by
// a second path) counts as 0, so in graphs with cycles or shared descendants
// the level is an approximation that depends on traversal order. Rendering
// relies on these values, so keep the behaviour as is.
func (g *Graph) Level(concept string) int {
	return g.level(concept, make(map[string]struct{}))
}

func (g *Graph) level(concept string, visited map[string]struct{}) int {
	if _, ok := visited[concept]; ok {
		return 0
	}
	visited[concept] = struct{}{}

	children := g.edges[concept]
	if len(children) == 0 {
		return 0
	}

	deepest := 0
	for _, child := range children {
		if l := g.level(child, visited); l > deepest {
			deepest = l
		}
	}
	return 1 + deepest
}

// BuildHierarchy assigns every concept its level and direct children and
// returns the nodes sorted by ascending level (stable in concept order).
func BuildHierarchy(concepts []string, rels []Relationship) []Node {
	g := NewGraph(rels)

	nodes := make([]Node, 0, len(concepts))
	for _, c := range concepts {
		children := append([]string{}, g.Successors(c)...)
		nodes = append(nodes, Node{
			Concept:  c,
			Level:    g.Level(c),
			Children: children,
		})
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Level < nodes[j].Level
	})
	return nodes
}
