package capture

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/adalundhe/layerkit/core/naming"
)

// StageIndex returns the one-based breadth-first distance of every node
// reachable from start. Nodes that cannot be reached are left out.
func StageIndex(adj *Adjacency, start string) map[string]int {
	stages := make(map[string]int)

	g, ids, names := directed(adj)
	from, ok := ids[start]
	if !ok {
		return stages
	}

	var bfs traverse.BreadthFirst
	bfs.Walk(g, g.Node(from), func(n graph.Node, depth int) bool {
		stages[names[n.ID()]] = depth + 1
		return false
	})
	return stages
}

// directed mirrors adj into a gonum graph. Node IDs follow first-seen order.
// Self links are dropped since they never shorten a distance.
func directed(adj *Adjacency) (*simple.DirectedGraph, map[string]int64, []string) {
	g := simple.NewDirectedGraph()
	ids := make(map[string]int64, len(adj.nodes))
	names := make([]string, len(adj.nodes))

	for i, n := range adj.nodes {
		ids[n] = int64(i)
		names[i] = n
		g.AddNode(simple.Node(i))
	}
	for _, from := range adj.nodes {
		for _, to := range adj.next[from] {
			if from == to {
				continue
			}
			g.SetEdge(g.NewEdge(simple.Node(ids[from]), simple.Node(ids[to])))
		}
	}
	return g, ids, names
}

// withDisplayKeys adds display-name keys to raw stages. When several raw
// nodes share a display name the smallest stage wins.
func withDisplayKeys(stages map[string]int) map[string]int {
	out := make(map[string]int, len(stages)*2)
	for raw, stage := range stages {
		out[raw] = stage
	}
	for raw, stage := range stages {
		display := naming.DisplayName(raw)
		if display == raw {
			continue
		}
		if _, isRaw := stages[display]; isRaw {
			continue
		}
		if cur, ok := out[display]; !ok || stage < cur {
			out[display] = stage
		}
	}
	return out
}
