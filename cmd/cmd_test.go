package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const levelJSON = `[
  {"Type": "SceneComponent", "Name": "DefaultSceneRoot", "Outer": "BP_Spawner_1",
   "Properties": {"RelativeLocation": {"X": 10, "Y": 20, "Z": 30}}},
  {"Type": "SphereComponent", "Name": "Trigger", "Outer": "BP_Spawner_1",
   "Properties": {
     "AttachParent": {"ObjectName": "SceneComponent'L:PersistentLevel.BP_Spawner_1.DefaultSceneRoot'"},
     "SphereRadius": 250
   }},
  {"Type": "SceneComponent", "Name": "Root", "Outer": "Flag_Village",
   "Properties": {"RelativeLocation": {"X": -5, "Y": 0, "Z": 0}}},
  {"Type": "SQGraphRAASInitializerComponent", "Name": "G", "Outer": "Graph",
   "Properties": {"DesignOutgoingLinks": [
     {"NodeA": {"ObjectName": "M'L:PersistentLevel.Alpha_Main_1'"}, "NodeB": {"ObjectName": "C'L:PersistentLevel.Village'"}},
     {"NodeA": {"ObjectName": "C'L:PersistentLevel.Village'"}, "NodeB": {"ObjectName": "M'L:PersistentLevel.OmegaMain'"}}
   ]}}
]`

func writeLevel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "level.json")
	require.NoError(t, os.WriteFile(path, []byte(levelJSON), 0o644))
	return path
}

func captureOutput(t *testing.T, c *cobra.Command) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	c.SetOut(&buf)
	t.Cleanup(func() { c.SetOut(nil) })
	return &buf
}

// =============================================================================
// Command Definitions
// =============================================================================

func TestRootCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["transform"])
	assert.True(t, names["graph"])
	assert.True(t, names["batch"])

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("log-level"))
}

func TestTransformCmd_Definition(t *testing.T) {
	assert.Equal(t, "transform <export.json>", transformCmd.Use)

	flags := transformCmd.Flags()

	owner := flags.Lookup("owner")
	require.NotNil(t, owner)
	assert.Equal(t, "o", owner.Shorthand)
	assert.Equal(t, "*", owner.DefValue)

	comp := flags.Lookup("component")
	require.NotNil(t, comp)
	assert.Equal(t, "c", comp.Shorthand)

	require.NotNil(t, flags.Lookup("volumes"))
	require.NotNil(t, flags.Lookup("json"))
}

func TestGraphCmd_Definition(t *testing.T) {
	assert.Equal(t, "graph <export.json>", graphCmd.Use)
	require.NotNil(t, graphCmd.Flags().Lookup("json"))
	assert.Error(t, graphCmd.Args(graphCmd, nil))
}

func TestBatchCmd_Definition(t *testing.T) {
	assert.Equal(t, "batch <export.json>...", batchCmd.Use)

	concurrency := batchCmd.Flags().Lookup("concurrency")
	require.NotNil(t, concurrency)
	assert.Equal(t, "0", concurrency.DefValue)
	assert.Error(t, batchCmd.Args(batchCmd, nil))
}

// =============================================================================
// Command Execution
// =============================================================================

func TestRunTransform(t *testing.T) {
	path := writeLevel(t)

	t.Run("table", func(t *testing.T) {
		transformOwner, transformVolumes, transformJSON = "BP_*", true, false
		t.Cleanup(func() { transformOwner, transformVolumes = "*", false })

		out := captureOutput(t, transformCmd)
		require.NoError(t, runTransform(transformCmd, []string{path}))

		assert.Contains(t, out.String(), "BP_Spawner_1")
		assert.Contains(t, out.String(), "(10.00, 20.00, 30.00)")
		assert.Contains(t, out.String(), "Trigger")
		assert.NotContains(t, out.String(), "Flag_Village")
	})

	t.Run("json", func(t *testing.T) {
		transformOwner, transformJSON = "*", true
		t.Cleanup(func() { transformJSON = false })

		out := captureOutput(t, transformCmd)
		require.NoError(t, runTransform(transformCmd, []string{path}))

		var rows []transformRow
		require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, "Flag_Village", rows[1].Owner)
		assert.Equal(t, "Root", rows[1].Component)
		assert.InDelta(t, -5.0, rows[1].Transform.Location.X, 1e-9)
	})

	t.Run("bad pattern", func(t *testing.T) {
		transformOwner = "["
		t.Cleanup(func() { transformOwner = "*" })
		assert.Error(t, runTransform(transformCmd, []string{path}))
	})
}

func TestRunGraph(t *testing.T) {
	path := writeLevel(t)

	out := captureOutput(t, graphCmd)
	require.NoError(t, runGraph(graphCmd, []string{path}))

	assert.Contains(t, out.String(), "Graph: Alpha_Main_1 -> OmegaMain (1 paths)")
	assert.Contains(t, out.String(), "order: Alpha Main, Village, Omega Main")
	assert.Contains(t, out.String(), "mains: Alpha Main, Omega Main")
}

func TestRunBatch(t *testing.T) {
	good := writeLevel(t)
	missing := filepath.Join(t.TempDir(), "missing.json")

	batchJSON = true
	t.Cleanup(func() { batchJSON = false })

	out := captureOutput(t, batchCmd)
	err := runBatch(batchCmd, []string{good, missing})
	assert.EqualError(t, err, "1 of 2 documents failed")

	var result batchOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, 1, result.Processed)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, missing, result.Failed[0].Path)
}
