// Package network provides the social graph households communicate over.
// Nodes are household indices; edges are "friend" relations. The simulation
// core only reads neighbor sets; topology is fixed after generation.
package network

// Graph is an undirected adjacency-list graph over n nodes.
type Graph struct {
	n   int
	adj [][]int
}

// NewGraph creates an edgeless graph with n nodes.
func NewGraph(n int) *Graph {
	return &Graph{n: n, adj: make([][]int, n)}
}

// Nodes returns the number of nodes in the graph.
func (g *Graph) Nodes() int { return g.n }

// AddEdge links two nodes. Self-loops and duplicate edges are ignored.
func (g *Graph) AddEdge(a, b int) {
	if a == b || a < 0 || b < 0 || a >= g.n || b >= g.n || g.HasEdge(a, b) {
		return
	}
	g.adj[a] = append(g.adj[a], b)
	g.adj[b] = append(g.adj[b], a)
}

// HasEdge reports whether two nodes are linked.
func (g *Graph) HasEdge(a, b int) bool {
	if a < 0 || a >= g.n {
		return false
	}
	for _, v := range g.adj[a] {
		if v == b {
			return true
		}
	}
	return false
}

// Neighbors returns the nodes adjacent to node i. The returned slice is the
// graph's own storage and must not be mutated.
func (g *Graph) Neighbors(i int) []int {
	if i < 0 || i >= g.n {
		return nil
	}
	return g.adj[i]
}

// Degree returns the number of neighbors of node i.
func (g *Graph) Degree(i int) int {
	return len(g.Neighbors(i))
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, nb := range g.adj {
		total += len(nb)
	}
	return total / 2
}
