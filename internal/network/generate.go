// Random graph generators for the household social network.
package network

import (
	"fmt"
	"math/rand"
	"strings"
)

// Supported network kinds.
const (
	KindErdosRenyi     = "erdos_renyi"
	KindBarabasiAlbert = "barabasi_albert"
	KindWattsStrogatz  = "watts_strogatz"
	KindNone           = "no_network"
)

// ValidKinds lists the supported network kinds.
var ValidKinds = []string{KindErdosRenyi, KindBarabasiAlbert, KindWattsStrogatz, KindNone}

// Params carries the generator knobs; each kind reads only its own fields.
type Params struct {
	ConnectionProbability float64 // erdos_renyi edge / watts_strogatz rewire probability
	Edges                 int     // barabasi_albert edges per new node
	NearestNeighbours     int     // watts_strogatz ring degree
}

// Generate builds a social network of the given kind over n nodes. Unknown
// kinds are a configuration error carrying the valid choices.
func Generate(kind string, n int, p Params, seed int64) (*Graph, error) {
	rng := rand.New(rand.NewSource(seed))
	switch kind {
	case KindErdosRenyi:
		return erdosRenyi(n, p.ConnectionProbability, rng), nil
	case KindBarabasiAlbert:
		return barabasiAlbert(n, p.Edges, rng), nil
	case KindWattsStrogatz:
		return wattsStrogatz(n, p.NearestNeighbours, p.ConnectionProbability, rng), nil
	case KindNone:
		return NewGraph(n), nil
	default:
		return nil, fmt.Errorf("unknown network kind %q (valid kinds: %s)",
			kind, strings.Join(ValidKinds, ", "))
	}
}

// erdosRenyi links every node pair independently with probability p.
func erdosRenyi(n int, p float64, rng *rand.Rand) *Graph {
	g := NewGraph(n)
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			if rng.Float64() < p {
				g.AddEdge(a, b)
			}
		}
	}
	return g
}

// barabasiAlbert grows the graph by preferential attachment: each new node
// links to m existing nodes with probability proportional to their degree.
func barabasiAlbert(n, m int, rng *rand.Rand) *Graph {
	g := NewGraph(n)
	if n == 0 {
		return g
	}
	if m < 1 {
		m = 1
	}
	if m >= n {
		m = n - 1
	}

	// Seed clique over the first m+1 nodes.
	for a := 0; a <= m && a < n; a++ {
		for b := a + 1; b <= m && b < n; b++ {
			g.AddEdge(a, b)
		}
	}

	// Repeated-targets list: a node appears once per incident edge, so a
	// uniform draw from it is a degree-weighted draw.
	var targets []int
	for a := 0; a <= m && a < n; a++ {
		for range g.Neighbors(a) {
			targets = append(targets, a)
		}
	}

	for v := m + 1; v < n; v++ {
		added := 0
		for added < m && len(targets) > 0 {
			t := targets[rng.Intn(len(targets))]
			if t == v || g.HasEdge(v, t) {
				continue
			}
			g.AddEdge(v, t)
			targets = append(targets, v, t)
			added++
		}
	}
	return g
}

// wattsStrogatz starts from a ring lattice where each node links to its k
// nearest neighbours, then rewires each edge with probability p.
func wattsStrogatz(n, k int, p float64, rng *rand.Rand) *Graph {
	g := NewGraph(n)
	if n < 2 {
		return g
	}
	if k >= n {
		k = n - 1
	}
	half := k / 2
	for a := 0; a < n; a++ {
		for d := 1; d <= half; d++ {
			b := (a + d) % n
			if rng.Float64() < p {
				// Rewire to a uniform random non-neighbor.
				for tries := 0; tries < n; tries++ {
					c := rng.Intn(n)
					if c != a && !g.HasEdge(a, c) {
						b = c
						break
					}
				}
			}
			g.AddEdge(a, b)
		}
	}
	return g
}
