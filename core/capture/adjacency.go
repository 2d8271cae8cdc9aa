package capture

// Adjacency is a directed graph that remembers node and edge insertion order.
type Adjacency struct {
	nodes []string
	next  map[string][]string

	// Start is the only node without incoming links; End the only node
	// without outgoing links.
	Start string
	End   string
}

// BuildAdjacency indexes links and detects the unique start and end nodes.
// Sinks get an empty successor list so every endpoint is visitable.
func BuildAdjacency(links []Link) (*Adjacency, error) {
	adj := &Adjacency{next: make(map[string][]string)}
	incoming := make(map[string]bool)
	outgoing := make(map[string]bool)

	for _, link := range links {
		adj.touch(link.NodeA)
		adj.touch(link.NodeB)
		adj.next[link.NodeA] = append(adj.next[link.NodeA], link.NodeB)
		outgoing[link.NodeA] = true
		incoming[link.NodeB] = true
	}

	starts := adj.filter(func(n string) bool { return !incoming[n] })
	if len(starts) != 1 {
		return nil, &TopologyError{Err: ErrAmbiguousStart, Candidates: starts}
	}
	ends := adj.filter(func(n string) bool { return !outgoing[n] })
	if len(ends) != 1 {
		return nil, &TopologyError{Err: ErrAmbiguousEnd, Candidates: ends}
	}

	adj.Start, adj.End = starts[0], ends[0]
	return adj, nil
}

func (a *Adjacency) touch(node string) {
	if _, ok := a.next[node]; ok {
		return
	}
	a.next[node] = []string{}
	a.nodes = append(a.nodes, node)
}

func (a *Adjacency) filter(keep func(string) bool) []string {
	var out []string
	for _, n := range a.nodes {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}

// Nodes returns every node in first-seen order.
func (a *Adjacency) Nodes() []string {
	out := make([]string, len(a.nodes))
	copy(out, a.nodes)
	return out
}

// Successors returns the targets of node's outgoing links in insertion order.
func (a *Adjacency) Successors(node string) []string {
	return a.next[node]
}
