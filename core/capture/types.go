// Package capture derives the traversal order, main bases and stage indices of
// a capture-point graph from its link records.
package capture

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adalundhe/layerkit/core/naming"
)

// =============================================================================
// Inputs
// =============================================================================

// Link is a directed edge between two bare node identifiers.
type Link struct {
	Name  string `json:"name"`
	NodeA string `json:"node_a"`
	NodeB string `json:"node_b"`
}

// Lane is an independent sub-graph with its own start and end.
type Lane struct {
	Name  string `json:"name"`
	Links []Link `json:"links"`
}

// LaneGraph is the ordered set of lanes of a lane-based layer.
type LaneGraph struct {
	Lanes []Lane `json:"lanes"`
}

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrAmbiguousStart means the graph does not have exactly one node
	// without incoming links.
	ErrAmbiguousStart = errors.New("graph must have exactly one start node")

	// ErrAmbiguousEnd means the graph does not have exactly one node without
	// outgoing links.
	ErrAmbiguousEnd = errors.New("graph must have exactly one end node")

	// ErrNoPath means no route connects the start node to the end node.
	ErrNoPath = errors.New("no path from start node to end node")
)

// TopologyError reports a violated graph-shape invariant. It unwraps to one of
// the sentinel errors above.
type TopologyError struct {
	Err        error
	Lane       string
	Start      string
	End        string
	Candidates []string
}

func (e *TopologyError) Error() string {
	var b strings.Builder
	if e.Lane != "" {
		fmt.Fprintf(&b, "lane %q: ", e.Lane)
	}
	b.WriteString(e.Err.Error())

	switch {
	case errors.Is(e.Err, ErrNoPath):
		fmt.Fprintf(&b, " (%s -> %s)", e.Start, e.End)
	case len(e.Candidates) == 0:
		b.WriteString(" (found none)")
	default:
		fmt.Fprintf(&b, " (found %d: %s)", len(e.Candidates), strings.Join(e.Candidates, ", "))
	}
	return b.String()
}

func (e *TopologyError) Unwrap() error {
	return e.Err
}

// =============================================================================
// Results
// =============================================================================

// Topology is the derived structure of one graph or lane.
type Topology struct {
	// Lane is empty for the layer-wide graph.
	Lane string `json:"lane,omitempty"`

	Start string `json:"start"`
	End   string `json:"end"`

	// Links carries the input links with display-name endpoints.
	Links []Link `json:"links"`

	// Paths holds the kept start-to-end paths of raw node names in canonical
	// order.
	Paths [][]string `json:"paths"`

	// RawOrder and PointsOrder are the flattened traversal in raw and display
	// names.
	RawOrder    []string `json:"raw_order"`
	PointsOrder []string `json:"points_order"`

	// Mains lists main display names in first-seen traversal order.
	Mains []string `json:"mains"`

	// Names maps every raw main node of the graph to its display name.
	Names map[string]string `json:"names"`

	// Stages holds one-based breadth-first distances keyed by raw and by
	// display name. Unreached nodes are absent.
	Stages map[string]int `json:"stages"`
}

// Stage returns the one-based stage of a raw or display node name, or 0 when
// the node was not reached from the start.
func (t *Topology) Stage(name string) int {
	return t.Stages[name]
}

// Display returns the display name of a raw node.
func (t *Topology) Display(raw string) string {
	if display, ok := t.Names[raw]; ok {
		return display
	}
	return naming.DisplayName(raw)
}
