package capture

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/adalundhe/layerkit/core/naming"
)

// Config tunes an Extractor.
type Config struct {
	// Separator joins display names when ordering paths. Defaults to "->".
	Separator string
}

// Extractor derives topologies from link records.
type Extractor struct {
	separator string
	logger    *slog.Logger
}

// NewExtractor returns an extractor.
func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	sep := cfg.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	return &Extractor{separator: sep, logger: logger}
}

// Extract derives the topology of a single layer-wide graph: every simple
// start-to-end path is kept, ordered by joined display names, and stages are
// counted from the graph's start node.
func Extract(links []Link) (*Topology, error) {
	return NewExtractor(Config{}, nil).Extract(links)
}

// Extract is the package-level Extract with e's configuration.
func (e *Extractor) Extract(links []Link) (*Topology, error) {
	adj, err := BuildAdjacency(links)
	if err != nil {
		return nil, err
	}

	paths, err := EnumeratePaths(adj, adj.Start, adj.End)
	if err != nil {
		return nil, err
	}
	SortPaths(paths, e.separator)

	t := assemble(adj, links, paths)
	t.Stages = withDisplayKeys(StageIndex(adj, adj.Start))

	e.logger.Debug("capture graph extracted",
		slog.String("start", t.Start),
		slog.String("end", t.End),
		slog.Int("paths", len(paths)),
		slog.Int("points", len(t.PointsOrder)),
		slog.Int("mains", len(t.Mains)))
	return t, nil
}

// ExtractLanes derives one topology per lane. Lanes are expected to be simple
// chains, so only the first path found is kept and stages are counted from
// the first point of the lane's own order. The first failing lane aborts the
// whole graph.
func (e *Extractor) ExtractLanes(lg LaneGraph) ([]*Topology, error) {
	out := make([]*Topology, 0, len(lg.Lanes))
	for i, lane := range lg.Lanes {
		name := lane.Name
		if name == "" {
			name = fmt.Sprintf("Lane%d", i)
		}

		t, err := e.extractLane(name, lane.Links)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (e *Extractor) extractLane(name string, links []Link) (*Topology, error) {
	adj, err := BuildAdjacency(links)
	if err != nil {
		return nil, inLane(err, name)
	}

	paths, err := enumerate(adj, adj.Start, adj.End, 1)
	if err != nil {
		return nil, inLane(err, name)
	}

	t := assemble(adj, links, paths)
	t.Lane = name
	t.Stages = withDisplayKeys(StageIndex(adj, t.RawOrder[0]))

	e.logger.Debug("capture lane extracted",
		slog.String("lane", name),
		slog.Int("points", len(t.PointsOrder)))
	return t, nil
}

func inLane(err error, lane string) error {
	var te *TopologyError
	if errors.As(err, &te) {
		te.Lane = lane
		return te
	}
	return fmt.Errorf("lane %q: %w", lane, err)
}

// assemble fills everything but stages from ordered paths.
func assemble(adj *Adjacency, links []Link, paths [][]string) *Topology {
	raw := Flatten(paths)

	t := &Topology{
		Start:       adj.Start,
		End:         adj.End,
		Links:       make([]Link, len(links)),
		Paths:       paths,
		RawOrder:    raw,
		PointsOrder: make([]string, len(raw)),
	}

	for i, l := range links {
		t.Links[i] = Link{Name: l.Name, NodeA: naming.DisplayName(l.NodeA), NodeB: naming.DisplayName(l.NodeB)}
	}

	seen := make(map[string]bool)
	for i, node := range raw {
		display := naming.DisplayName(node)
		t.PointsOrder[i] = display
		if naming.IsMain(display) && !seen[display] {
			seen[display] = true
			t.Mains = append(t.Mains, display)
		}
	}

	var rawMains []string
	for _, node := range adj.nodes {
		if naming.IsMain(naming.DisplayName(node)) {
			rawMains = append(rawMains, node)
		}
	}
	t.Names = naming.Canonicalize(rawMains)
	return t
}
