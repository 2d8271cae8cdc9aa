package capture_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adalundhe/layerkit/core/capture"
)

func links(pairs ...string) []capture.Link {
	out := make([]capture.Link, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, capture.Link{NodeA: pairs[i], NodeB: pairs[i+1]})
	}
	return out
}

func diamond() []capture.Link {
	return links("A", "B", "B", "C", "A", "D", "D", "C")
}

// =============================================================================
// Adjacency
// =============================================================================

func TestBuildAdjacency(t *testing.T) {
	adj, err := capture.BuildAdjacency(diamond())
	require.NoError(t, err)

	assert.Equal(t, "A", adj.Start)
	assert.Equal(t, "C", adj.End)
	assert.Equal(t, []string{"A", "B", "C", "D"}, adj.Nodes())
	assert.Equal(t, []string{"B", "D"}, adj.Successors("A"))
	assert.Empty(t, adj.Successors("C"))
}

func TestBuildAdjacency_Ambiguous(t *testing.T) {
	t.Run("two starts", func(t *testing.T) {
		_, err := capture.BuildAdjacency(links("A", "C", "B", "C"))
		require.ErrorIs(t, err, capture.ErrAmbiguousStart)

		var te *capture.TopologyError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, []string{"A", "B"}, te.Candidates)
		assert.Contains(t, err.Error(), "found 2: A, B")
	})

	t.Run("two ends", func(t *testing.T) {
		_, err := capture.BuildAdjacency(links("A", "B", "A", "C"))
		require.ErrorIs(t, err, capture.ErrAmbiguousEnd)
	})

	t.Run("no start", func(t *testing.T) {
		_, err := capture.BuildAdjacency(links("A", "B", "B", "A"))
		require.ErrorIs(t, err, capture.ErrAmbiguousStart)
		assert.Contains(t, err.Error(), "found none")
	})

	t.Run("empty graph", func(t *testing.T) {
		_, err := capture.BuildAdjacency(nil)
		require.ErrorIs(t, err, capture.ErrAmbiguousStart)
	})
}

// =============================================================================
// Paths
// =============================================================================

func TestEnumeratePaths(t *testing.T) {
	adj, err := capture.BuildAdjacency(diamond())
	require.NoError(t, err)

	paths, err := capture.EnumeratePaths(adj, adj.Start, adj.End)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B", "C"}, {"A", "D", "C"}}, paths)
}

func TestEnumeratePaths_SkipsRevisits(t *testing.T) {
	// B and C link both ways; neither may repeat on a path.
	adj, err := capture.BuildAdjacency(links("A", "B", "B", "C", "C", "B", "C", "E", "B", "E"))
	require.NoError(t, err)

	paths, err := capture.EnumeratePaths(adj, adj.Start, adj.End)
	require.NoError(t, err)
	assert.ElementsMatch(t, [][]string{{"A", "B", "C", "E"}, {"A", "B", "E"}}, paths)
}

func TestEnumeratePaths_NoPath(t *testing.T) {
	// The end hangs off a cycle that the start never reaches.
	adj, err := capture.BuildAdjacency(links("S", "X", "X", "Y", "Y", "X", "P", "Q", "Q", "P", "Q", "E"))
	require.NoError(t, err)
	require.Equal(t, "S", adj.Start)
	require.Equal(t, "E", adj.End)

	_, err = capture.EnumeratePaths(adj, adj.Start, adj.End)
	require.ErrorIs(t, err, capture.ErrNoPath)
	assert.Contains(t, err.Error(), "(S -> E)")
}

func TestSortPaths(t *testing.T) {
	paths := [][]string{{"S", "Y", "E"}, {"S", "X", "E"}}
	capture.SortPaths(paths, capture.DefaultSeparator)
	assert.Equal(t, [][]string{{"S", "X", "E"}, {"S", "Y", "E"}}, paths)
}

func TestSortPaths_UsesDisplayNames(t *testing.T) {
	// "Alpha_Main_9" sorts as "Alpha Main", ahead of "Alpha_2".
	paths := [][]string{{"S", "Alpha_2", "E"}, {"S", "Alpha_Main_9", "E"}}
	capture.SortPaths(paths, capture.DefaultSeparator)
	assert.Equal(t, "Alpha_Main_9", paths[0][1])
}

func TestFlatten(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "A", "D", "C"}, capture.Flatten([][]string{{"A", "B", "C"}, {"A", "D", "C"}}))
	assert.Equal(t, []string{"A", "C"}, capture.Flatten([][]string{{"A", "C"}}))
	assert.Empty(t, capture.Flatten(nil))
}

// =============================================================================
// Extract
// =============================================================================

func TestExtract_Diamond(t *testing.T) {
	topo, err := capture.Extract(diamond())
	require.NoError(t, err)

	assert.Equal(t, "A", topo.Start)
	assert.Equal(t, "C", topo.End)
	assert.Equal(t, [][]string{{"A", "B", "C"}, {"A", "D", "C"}}, topo.Paths)
	assert.Equal(t, []string{"A", "B", "A", "D", "C"}, topo.PointsOrder)
	assert.Empty(t, topo.Mains)

	assert.Equal(t, 1, topo.Stage("A"))
	assert.Equal(t, 2, topo.Stage("B"))
	assert.Equal(t, 2, topo.Stage("D"))
	assert.Equal(t, 3, topo.Stage("C"))
	assert.Zero(t, topo.Stage("missing"))
}

func TestExtract_SortsEnumeratedPaths(t *testing.T) {
	topo, err := capture.Extract(links("S", "Y", "Y", "E", "S", "X", "X", "E"))
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "X", "S", "Y", "E"}, topo.PointsOrder)
}

func TestExtract_Mains(t *testing.T) {
	topo, err := capture.Extract(links(
		"Team1_Main_1", "Obj1",
		"Obj1", "Obj2",
		"Obj2", "Team2Main",
	))
	require.NoError(t, err)

	assert.Equal(t, []string{"Team1 Main", "Obj1", "Obj2", "Team2 Main"}, topo.PointsOrder)
	assert.Equal(t, []string{"Team1_Main_1", "Obj1", "Obj2", "Team2Main"}, topo.RawOrder)
	assert.Equal(t, []string{"Team1 Main", "Team2 Main"}, topo.Mains)
	assert.Equal(t, map[string]string{
		"Team1_Main_1": "Team1 Main",
		"Team2Main":    "Team2 Main",
	}, topo.Names)

	assert.Equal(t, "Team1 Main", topo.Links[0].NodeA)
	assert.Equal(t, "Team2 Main", topo.Links[2].NodeB)

	assert.Equal(t, 1, topo.Stage("Team1_Main_1"))
	assert.Equal(t, 1, topo.Stage("Team1 Main"))
	assert.Equal(t, 4, topo.Stage("Team2 Main"))

	assert.Equal(t, "Team1 Main", topo.Display("Team1_Main_1"))
	assert.Equal(t, "Obj1", topo.Display("Obj1"))
}

func TestExtract_DisplayStageTakesMinimum(t *testing.T) {
	// Two raw instances of the same main; the closer one sets the display stage.
	topo, err := capture.Extract(links(
		"S", "Far_Main_1",
		"S", "Mid",
		"Mid", "Far_Main_2",
		"Far_Main_1", "E",
		"Far_Main_2", "E",
	))
	require.NoError(t, err)

	assert.Equal(t, 2, topo.Stage("Far_Main_1"))
	assert.Equal(t, 3, topo.Stage("Far_Main_2"))
	assert.Equal(t, 2, topo.Stage("Far Main"))
	assert.Equal(t, []string{"Far Main"}, topo.Mains)
}

func TestExtract_Errors(t *testing.T) {
	_, err := capture.Extract(links("A", "C", "B", "C"))
	assert.ErrorIs(t, err, capture.ErrAmbiguousStart)

	_, err = capture.Extract(links("S", "X", "X", "Y", "Y", "X", "P", "Q", "Q", "P", "Q", "E"))
	assert.ErrorIs(t, err, capture.ErrNoPath)
}

// =============================================================================
// Lanes
// =============================================================================

func TestExtractLanes(t *testing.T) {
	ex := capture.NewExtractor(capture.Config{}, nil)

	lanes, err := ex.ExtractLanes(capture.LaneGraph{Lanes: []capture.Lane{
		{Links: diamond()},
		{Name: "North", Links: links("N1", "N2", "N2", "N3")},
	}})
	require.NoError(t, err)
	require.Len(t, lanes, 2)

	first := lanes[0]
	assert.Equal(t, "Lane0", first.Lane)
	assert.Equal(t, [][]string{{"A", "B", "C"}}, first.Paths)
	assert.Equal(t, []string{"A", "B", "C"}, first.PointsOrder)
	assert.Equal(t, 2, first.Stage("D"), "stages cover the whole lane graph")

	north := lanes[1]
	assert.Equal(t, "North", north.Lane)
	assert.Equal(t, []string{"N1", "N2", "N3"}, north.PointsOrder)
	assert.Equal(t, 3, north.Stage("N3"))
}

func TestExtractLanes_FailingLane(t *testing.T) {
	ex := capture.NewExtractor(capture.Config{Separator: " > "}, nil)

	_, err := ex.ExtractLanes(capture.LaneGraph{Lanes: []capture.Lane{
		{Name: "Good", Links: links("A", "B")},
		{Name: "Bad", Links: links("A", "C", "B", "C")},
	}})
	require.ErrorIs(t, err, capture.ErrAmbiguousStart)

	var te *capture.TopologyError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "Bad", te.Lane)
	assert.Contains(t, err.Error(), `lane "Bad"`)
}
