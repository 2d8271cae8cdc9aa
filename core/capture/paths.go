package capture

import (
	"sort"
	"strings"

	"github.com/adalundhe/layerkit/core/naming"
)

// DefaultSeparator joins display names when ordering paths.
const DefaultSeparator = "->"

// EnumeratePaths returns every simple path from start to end, depth-first in
// link insertion order. A node may appear on several paths but never twice on
// one.
func EnumeratePaths(adj *Adjacency, start, end string) ([][]string, error) {
	return enumerate(adj, start, end, 0)
}

// enumerate stops after limit paths when limit is positive.
func enumerate(adj *Adjacency, start, end string, limit int) ([][]string, error) {
	w := walker{
		adj:     adj,
		target:  end,
		limit:   limit,
		visited: make(map[string]bool),
	}
	w.visit(start)

	if len(w.paths) == 0 {
		return nil, &TopologyError{Err: ErrNoPath, Start: start, End: end}
	}
	return w.paths, nil
}

type walker struct {
	adj     *Adjacency
	target  string
	limit   int
	visited map[string]bool
	path    []string
	paths   [][]string
}

func (w *walker) done() bool {
	return w.limit > 0 && len(w.paths) >= w.limit
}

func (w *walker) visit(node string) {
	w.path = append(w.path, node)
	defer func() { w.path = w.path[:len(w.path)-1] }()

	if node == w.target {
		w.paths = append(w.paths, append([]string(nil), w.path...))
		return
	}

	w.visited[node] = true
	defer delete(w.visited, node)

	for _, next := range w.adj.Successors(node) {
		if w.done() {
			return
		}
		if !w.visited[next] {
			w.visit(next)
		}
	}
}

// SortPaths orders paths by their display names joined with sep. The sort is
// stable so equal keys keep enumeration order.
func SortPaths(paths [][]string, sep string) {
	keys := make([]string, len(paths))
	for i, p := range paths {
		keys[i] = pathKey(p, sep)
	}
	sort.Stable(byKey{paths: paths, keys: keys})
}

type byKey struct {
	paths [][]string
	keys  []string
}

func (b byKey) Len() int           { return len(b.paths) }
func (b byKey) Less(i, j int) bool { return b.keys[i] < b.keys[j] }
func (b byKey) Swap(i, j int) {
	b.paths[i], b.paths[j] = b.paths[j], b.paths[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}

func pathKey(path []string, sep string) string {
	names := make([]string, len(path))
	for i, raw := range path {
		names[i] = naming.DisplayName(raw)
	}
	return strings.Join(names, sep)
}

// Flatten concatenates paths into one traversal. Every path but the last
// drops its final node, since all paths end on the same node.
func Flatten(paths [][]string) []string {
	var order []string
	for i, p := range paths {
		if i < len(paths)-1 && len(p) > 0 {
			p = p[:len(p)-1]
		}
		order = append(order, p...)
	}
	return order
}
