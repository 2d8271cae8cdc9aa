package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adalundhe/layerkit/core/capture"
	"github.com/adalundhe/layerkit/core/document"
)

var graphJSON bool

var graphCmd = &cobra.Command{
	Use:   "graph <export.json>",
	Short: "Show the capture-point order, mains and stages",
	Long: `Derive the capture-point graph of a level export.

Prints the canonical points order, the main bases, the stage index of every
point and, for lane-based layers, the same per lane.`,
	Args: cobra.ExactArgs(1),
	RunE: runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().BoolVar(&graphJSON, "json", false, "Output as JSON")
}

// graphOutput is the JSON output of the graph command.
type graphOutput struct {
	Source    string              `json:"source"`
	Graph     *capture.Topology   `json:"graph,omitempty"`
	Lanes     []*capture.Topology `json:"lanes,omitempty"`
	TeamMains map[string]string   `json:"team_mains,omitempty"`
}

func runGraph(cmd *cobra.Command, args []string) error {
	doc, err := document.Load(context.Background(), args[0], cfg, logger)
	if err != nil {
		return err
	}
	if doc.Topology == nil && len(doc.Lanes) == 0 {
		return fmt.Errorf("%s: no capture graph in export", args[0])
	}

	out := cmd.OutOrStdout()
	if wantJSON(out, graphJSON) {
		return writeJSON(out, graphOutput{
			Source:    doc.Source,
			Graph:     doc.Topology,
			Lanes:     doc.Lanes,
			TeamMains: doc.TeamMains,
		})
	}

	if doc.Topology != nil {
		if err := printTopology(out, doc.Topology); err != nil {
			return err
		}
	}
	for _, lane := range doc.Lanes {
		if err := printTopology(out, lane); err != nil {
			return err
		}
	}
	return nil
}

func printTopology(w io.Writer, t *capture.Topology) error {
	title := "Graph"
	if t.Lane != "" {
		title = "Lane " + t.Lane
	}
	fmt.Fprintf(w, "%s: %s -> %s (%d paths)\n", title, t.Start, t.End, len(t.Paths))
	fmt.Fprintf(w, "  order: %s\n", strings.Join(t.PointsOrder, ", "))
	fmt.Fprintf(w, "  mains: %s\n", strings.Join(t.Mains, ", "))

	tw := newTable(w)
	fmt.Fprintln(tw, "  NODE\tSTAGE")
	for _, node := range stageOrder(t) {
		fmt.Fprintf(tw, "  %s\t%d\n", node, t.Stage(node))
	}
	return tw.Flush()
}

// stageOrder lists raw nodes by stage, then name.
func stageOrder(t *capture.Topology) []string {
	seen := make(map[string]bool)
	var nodes []string
	for _, path := range t.Paths {
		for _, n := range path {
			if !seen[n] {
				seen[n] = true
				nodes = append(nodes, n)
			}
		}
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		si, sj := t.Stage(nodes[i]), t.Stage(nodes[j])
		if si != sj {
			return si < sj
		}
		return nodes[i] < nodes[j]
	})
	return nodes
}
